package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of Out passes
// the JSON schema the SDK infers for it.
//
// Panics if it does not.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema marshals the zero value of T the way the SDK does and
// validates it against the schema inferred from T.
//
// A nil slice marshals as null while the inferred schema says "array", so a
// handler that returns an empty result would be rejected at call time. Slice
// fields need omitzero, or must always be initialized.
//
// Types holding json.RawMessage are rejected too: the schema sees []byte.
//
// Panics on either problem. Returns quietly for "any" or when inference
// itself fails, which the SDK reports on its own.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has json.RawMessage at %s\n"+
				"  the inferred schema is an array of integers, not the embedded JSON\n"+
				"  Fix: use any (or []any) and decode the raw bytes before returning",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of %s fails its output schema: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add omitzero to slice fields that may be nil",
			toolName, rt, err, data,
		))
	}
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the field paths of t that hold a json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, append(path, f.Name), visiting)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, rawMessagePaths(t.Elem(), append(path, "[]"), visiting)...)
	case reflect.Map:
		found = append(found, rawMessagePaths(t.Elem(), append(path, "[value]"), visiting)...)
	}
	return found
}
