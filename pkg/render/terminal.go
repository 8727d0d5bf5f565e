// Package render turns notes into terminal text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/notes/pkg/core"
)

// TagSeparator joins tags on a single line. Tags may themselves contain it;
// the terminal view is for reading, the store keeps the real list.
const TagSeparator = ", "

// EmptyMessage is printed instead of an empty listing.
const EmptyMessage = "No notes to show."

// Notes writes one block per note, separated by a blank line.
func Notes(w io.Writer, notes []core.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	for _, n := range notes {
		if _, err := fmt.Fprintf(w, "id: %d\ntags: %s\nnote: %s\n\n",
			n.ID, strings.Join(n.Tags, TagSeparator), n.Content); err != nil {
			return err
		}
	}
	return nil
}

// Created reports a freshly stored note.
func Created(w io.Writer, n core.Note) error {
	data, err := json.Marshal(core.Normalize(n))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "New note added: %s\n", data)
	return err
}

// Removed reports the outcome of a remove; found is false for an unknown id.
func Removed(w io.Writer, id int, found bool) error {
	if !found {
		_, err := fmt.Fprintln(w, "No note removed.")
		return err
	}
	_, err := fmt.Fprintf(w, "%d removed.\n", id)
	return err
}

// JSON writes v as indented JSON, for scripts.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
