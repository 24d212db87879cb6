package space

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoSerializedSpace is returned when the envelope carries no embedded document text.
	ErrNoSerializedSpace = errors.New("serialized_space missing or empty")
	// ErrUnexpectedShape is returned when a field the mutation touches has the wrong JSON type.
	ErrUnexpectedShape = errors.New("unexpected document shape")
)

// Document is a decoded serialized space. Unknown fields are kept as-is so that
// encoding it again only changes what was mutated.
type Document struct {
	root map[string]any
}

// Match describes one column entry that received a description.
type Match struct {
	Table       string   `json:"table"`
	Column      string   `json:"column"`
	Description []string `json:"description"`
}

// Decode parses the serialized_space text. Numbers are kept as json.Number so
// they round-trip without float conversion.
func Decode(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoSerializedSpace
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode serialized_space: %w", err)
	}
	// A second value (or garbage) after the object would be dropped on Encode.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode serialized_space: trailing data after top-level value")
	}
	if root == nil {
		return nil, fmt.Errorf("decode serialized_space: %w: top level is null", ErrUnexpectedShape)
	}
	return &Document{root: root}, nil
}

// Encode returns the compact JSON text of the document.
func (d *Document) Encode() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d.root); err != nil {
		return "", fmt.Errorf("encode serialized_space: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Root exposes the decoded structure. Callers must not keep references across mutations.
func (d *Document) Root() map[string]any { return d.root }

// tables returns the data_sources.tables entries that are JSON objects.
// Missing containers yield nil; entries of other types are skipped.
func (d *Document) tables() []map[string]any {
	ds, _ := d.root["data_sources"].(map[string]any)
	if ds == nil {
		return nil
	}
	raw, _ := ds["tables"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, t := range raw {
		if m, ok := t.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func columnConfigs(table map[string]any) []map[string]any {
	raw, _ := table["column_configs"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, c := range raw {
		if m, ok := c.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// AppendColumnDescription appends desc to the description list of every column
// named column inside every table whose identifier equals table. The list is
// created when absent. An empty result means nothing matched and the document
// is unchanged.
//
// Shape errors are detected before any entry is modified, so a failed call
// leaves the document untouched.
func (d *Document) AppendColumnDescription(table, column, desc string) ([]Match, error) {
	if desc == "" {
		return nil, errors.New("description must not be empty")
	}

	var targets []map[string]any
	for _, t := range d.tables() {
		if id, _ := t["identifier"].(string); id != table {
			continue
		}
		for _, c := range columnConfigs(t) {
			if name, _ := c["column_name"].(string); name != column {
				continue
			}
			if _, err := descriptionList(c); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", table, column, err)
			}
			targets = append(targets, c)
		}
	}

	matches := make([]Match, 0, len(targets))
	for _, c := range targets {
		list, _ := descriptionList(c)
		list = append(list, desc)
		c["description"] = list
		matches = append(matches, Match{Table: table, Column: column, Description: toStrings(list)})
	}
	return matches, nil
}

// descriptionList returns the existing description list (nil when absent).
func descriptionList(col map[string]any) ([]any, error) {
	v, ok := col["description"]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: description is %T, want list", ErrUnexpectedShape, v)
	}
	for _, e := range list {
		if _, ok := e.(string); !ok {
			return nil, fmt.Errorf("%w: description entry is %T, want string", ErrUnexpectedShape, e)
		}
	}
	return list, nil
}

func toStrings(list []any) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		s, _ := e.(string)
		out = append(out, s)
	}
	return out
}
