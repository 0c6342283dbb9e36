package report

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/usestring/schemamap/pkg/schemamap"
)

// arrayItem is the path segment Map uses for the sampled element of an array.
const arrayItem = "0"

// JSONSchema builds a draft 2020-12 JSON Schema from flat entries. Dotted
// paths become nested object properties and a "0" segment becomes the items of
// an array. required, if not nil, reports the paths present in every
// document; those leaves and all of their ancestors are marked required.
func JSONSchema(entries []schemamap.Entry, required func(path string) bool) *jsonschema.Schema {
	root := objectSchema()
	root.Version = jsonschema.Version

	type step struct {
		parent *jsonschema.Schema
		name   string
	}

	for _, e := range entries {
		segs := strings.Split(e.Path, ".")
		node := root
		var chain []step

		for i, seg := range segs {
			last := i == len(segs)-1

			if seg == arrayItem && node.Type == "array" {
				if last {
					if node.Items == nil {
						node.Items = labelSchema(e.Type)
					}
					break
				}
				if node.Items == nil {
					node.Items = containerSchema(segs[i+1])
				}
				node = node.Items
				continue
			}

			// a scalar leaf cannot hold children
			if node.Properties == nil {
				chain = nil
				break
			}

			child, ok := node.Properties.Get(seg)
			if !ok {
				if last {
					child = labelSchema(e.Type)
				} else {
					child = containerSchema(segs[i+1])
				}
				node.Properties.Set(seg, child)
			}
			chain = append(chain, step{parent: node, name: seg})
			node = child
		}

		if required == nil || !required(e.Path) {
			continue
		}
		for _, st := range chain {
			if !slices.Contains(st.parent.Required, st.name) {
				st.parent.Required = append(st.parent.Required, st.name)
			}
		}
	}

	return root
}

// WriteJSONSchema writes the JSON Schema for schema, with no required fields.
func WriteJSONSchema(w io.Writer, schema *schemamap.Schema) error {
	return EncodeJSONSchema(w, JSONSchema(schema.Entries(), nil))
}

// EncodeJSONSchema writes s as indented JSON.
func EncodeJSONSchema(w io.Writer, s *jsonschema.Schema) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding json schema: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func objectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
}

func containerSchema(next string) *jsonschema.Schema {
	if next == arrayItem {
		return &jsonschema.Schema{Type: "array"}
	}
	return objectSchema()
}

// labelSchema maps a type label to a leaf schema.
func labelSchema(label string) *jsonschema.Schema {
	switch label {
	case schemamap.LabelUnknownArray:
		return &jsonschema.Schema{Type: "array"}
	case schemamap.LabelDate:
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	case schemamap.LabelBigInt:
		return &jsonschema.Schema{Type: "integer"}
	case schemamap.LabelString, schemamap.LabelNumber, schemamap.LabelBoolean:
		return &jsonschema.Schema{Type: label}
	case schemamap.LabelSymbol:
		return &jsonschema.Schema{Type: "string", Description: "symbol"}
	}

	if elem, ok := strings.CutPrefix(label, "array<"); ok {
		if elem, ok = strings.CutSuffix(elem, ">"); ok {
			return &jsonschema.Schema{Type: "array", Items: labelSchema(elem)}
		}
	}

	// object, function and undefined elements carry no usable type
	return &jsonschema.Schema{}
}
