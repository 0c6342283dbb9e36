package schemamap

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema is the accumulator filled by Map: an insertion-ordered mapping from
// dotted field path to type label. Entries are only ever added.
//
// The zero value is an empty Schema ready to use. A Schema is not safe for
// concurrent use.
type Schema struct {
	fields *orderedmap.OrderedMap[string, string]
}

// Entry is a single path and its type label.
type Entry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// NewSchema returns an empty accumulator.
func NewSchema() *Schema {
	return &Schema{fields: orderedmap.New[string, string]()}
}

// Has reports whether path already has a type label.
func (s *Schema) Has(path string) bool {
	_, ok := s.Get(path)
	return ok
}

// Get returns the type label for path.
func (s *Schema) Get(path string) (string, bool) {
	if s.fields == nil {
		return "", false
	}
	return s.fields.Get(path)
}

// Add records label for path unless path is already resolved.
// It reports whether the entry was added.
func (s *Schema) Add(path, label string) bool {
	if s.Has(path) {
		return false
	}
	if s.fields == nil {
		s.fields = orderedmap.New[string, string]()
	}
	s.fields.Set(path, label)
	return true
}

// Len returns the number of resolved paths.
func (s *Schema) Len() int {
	if s.fields == nil {
		return 0
	}
	return s.fields.Len()
}

// oldest returns the first entry, or nil when the schema is empty.
func (s *Schema) oldest() *orderedmap.Pair[string, string] {
	if s.fields == nil {
		return nil
	}
	return s.fields.Oldest()
}

// Paths returns the resolved paths in insertion order.
func (s *Schema) Paths() []string {
	paths := make([]string, 0, s.Len())
	for pair := s.oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Entries returns all entries in insertion order.
func (s *Schema) Entries() []Entry {
	entries := make([]Entry, 0, s.Len())
	for pair := s.oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, Entry{Path: pair.Key, Type: pair.Value})
	}
	return entries
}

// ToMap copies the entries into a plain map.
func (s *Schema) ToMap() map[string]string {
	m := make(map[string]string, s.Len())
	for pair := s.oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// Clone returns an independent copy with the same order.
func (s *Schema) Clone() *Schema {
	c := NewSchema()
	for pair := s.oldest(); pair != nil; pair = pair.Next() {
		c.fields.Set(pair.Key, pair.Value)
	}
	return c
}

// MarshalJSON encodes the schema as a JSON object in insertion order. Labels
// such as array<string> are written without HTML escaping.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := s.oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.MarshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.MarshalNoEscape(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a schema saved with MarshalJSON, keeping key order.
// Entries already present in s are kept.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s.fields == nil {
		s.fields = orderedmap.New[string, string]()
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("schema must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading schema key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("schema key must be a string, got %T", tok)
		}
		var label string
		if err := dec.Decode(&label); err != nil {
			return fmt.Errorf("reading type of %q: %w", key, err)
		}
		s.Add(key, label)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading schema end: %w", err)
	}
	return nil
}
