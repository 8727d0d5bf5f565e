package core

// Note is the central entity of the domain.
// It is immutable once stored: the store assigns the ID at creation time and
// no operation ever rewrites an existing note.
type Note struct {
	ID      int      `json:"id" yaml:"id"`
	Content string   `json:"content" yaml:"content"`
	Tags    []string `json:"tags" yaml:"tags"`
}

// EventType represents the type of change observed on the backing store.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the backing store made outside this process
// (or by this process, the watcher cannot tell them apart).
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}

// Normalize guarantees an empty tag set is a non-nil slice so every
// serializer writes it as an empty list.
func Normalize(n Note) Note {
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}

// NextID returns the id the store assigns to the next created note:
// one more than the highest id in use, or 0 for an empty collection.
func NextID(notes []Note) int {
	next := 0
	for _, n := range notes {
		if n.ID >= next {
			next = n.ID + 1
		}
	}
	return next
}
