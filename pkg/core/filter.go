package core

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match returns every note whose content contains substr, in stored order.
// The match is a case-sensitive literal substring; "" matches everything.
func Match(notes []Note, substr string) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(n.Content, substr) {
			out = append(out, n)
		}
	}
	return out
}

// FilterTags keeps the notes carrying at least one tag matching the glob
// pattern (doublestar syntax, so "work/**" matches "work/q3/review").
// An empty pattern keeps every note.
func FilterTags(notes []Note, pattern string) ([]Note, error) {
	if pattern == "" {
		return notes, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad tag pattern %q", ErrValidation, pattern)
	}

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		for _, tag := range n.Tags {
			if ok, _ := doublestar.Match(pattern, tag); ok {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}
