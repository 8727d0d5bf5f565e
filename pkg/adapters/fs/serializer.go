package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/notes/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write the note collection in a specific file format.
type Serializer interface {
	// Decode reads the whole collection from r.
	Decode(r io.Reader) ([]core.Note, error)
	// Encode converts the collection to bytes.
	Encode(notes []core.Note) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
		".csv":  NewCSVSerializer(),
	}
}

// collection is the on-disk envelope shared by the JSON and YAML formats.
type collection struct {
	Notes []core.Note `json:"notes" yaml:"notes"`
}

func envelope(notes []core.Note) collection {
	c := collection{Notes: make([]core.Note, 0, len(notes))}
	for _, n := range notes {
		c.Notes = append(c.Notes, core.Normalize(n))
	}
	return c
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Decode(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var c collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return c.Notes, nil
}

func (s *JSONSerializer) Encode(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope(notes)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Decode(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var c collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return c.Notes, nil
}

func (s *YAMLSerializer) Encode(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(envelope(notes)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- CSV Serializer ---

// csvHeader is the fixed column layout. Tags are stored as a JSON array so
// commas and quotes inside a tag survive.
var csvHeader = []string{"id", "content", "tags"}

// CSVSerializer handles reading and writing CSV files, one note per row.
//
// CAVEAT: encoding/csv turns "\r\n" inside a quoted field into "\n", so note
// content with Windows line endings does not round-trip byte for byte.
type CSVSerializer struct{}

// NewCSVSerializer creates a new CSV serializer.
func NewCSVSerializer() *CSVSerializer {
	return &CSVSerializer{}
}

func (s *CSVSerializer) Decode(r io.Reader) ([]core.Note, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, h := range headers {
		if !strings.EqualFold(strings.TrimSpace(h), csvHeader[i]) {
			return nil, fmt.Errorf("unexpected csv column %q, want %q", h, csvHeader[i])
		}
	}

	var notes []core.Note
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid csv id %q: %w", row[0], err)
		}

		var tags []string
		if raw := strings.TrimSpace(row[2]); raw != "" {
			if err := json.Unmarshal([]byte(raw), &tags); err != nil {
				return nil, fmt.Errorf("invalid csv tags for note %d: %w", id, err)
			}
		}

		notes = append(notes, core.Note{ID: id, Content: row[1], Tags: tags})
	}
	return notes, nil
}

func (s *CSVSerializer) Encode(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, n := range envelope(notes).Notes {
		tags, err := json.Marshal(n.Tags)
		if err != nil {
			return nil, err
		}
		if err := w.Write([]string{strconv.Itoa(n.ID), n.Content, string(tags)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
