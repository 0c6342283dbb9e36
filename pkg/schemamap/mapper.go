// Package schemamap infers a flattened type schema from arbitrary nested data.
//
// Map walks objects, arrays and scalars and records one entry per terminal
// field path, e.g. "user.address.city" -> "string". Arrays are typed from their
// first element only; arrays of objects are flattened under a literal "0"
// segment ("items.0.id"). Passing the same Schema to repeated calls merges the
// shapes of several documents without ever rewriting a resolved path.
package schemamap

import (
	"reflect"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Type labels.
const (
	LabelString       = "string"
	LabelNumber       = "number"
	LabelBigInt       = "bigint"
	LabelBoolean      = "boolean"
	LabelSymbol       = "symbol"
	LabelDate         = "date"
	LabelUnknownArray = "array?"
)

// ArrayOf returns the label of an array whose sampled element is of type elem.
func ArrayOf(elem string) string {
	return "array<" + elem + ">"
}

// Map infers the schema of value into acc and returns it. A nil acc starts a
// new Schema.
func Map(value any, acc *Schema) *Schema {
	return MapPrefix(value, acc, "")
}

// MapPrefix is Map with the paths of value rooted at prefix. If acc already
// resolved prefix itself, nothing is added.
func MapPrefix(value any, acc *Schema, prefix string) *Schema {
	if acc == nil {
		acc = NewSchema()
	}
	m := &mapper{acc: acc, visiting: make(map[containerID]struct{})}
	m.walk(value, prefix)
	return acc
}

// containerID identifies a map or slice by its backing storage.
type containerID struct {
	ptr uintptr
	n   int
}

type mapper struct {
	acc *Schema
	// containers on the current descent path; a container met again is a cycle
	visiting map[containerID]struct{}
}

func (m *mapper) walk(value any, prefix string) {
	if m.acc.Has(prefix) {
		return
	}

	kind := Classify(value)
	if !kind.IsContainer() {
		return
	}

	if id, ok := identify(value); ok {
		if _, seen := m.visiting[id]; seen {
			return
		}
		m.visiting[id] = struct{}{}
		defer delete(m.visiting, id)
	}

	eachField(value, kind, func(key string, val any) bool {
		if m.acc.Has(prefix) {
			return false
		}
		m.field(joinPath(prefix, key), val)
		return true
	})
}

func (m *mapper) field(path string, val any) {
	switch kind := Classify(val); kind {
	case KindDate:
		m.acc.Add(path, LabelDate)

	case KindArray:
		if lenOf(val) == 0 {
			m.acc.Add(path, LabelUnknownArray)
			return
		}
		elem := first(val)
		elemKind := Classify(elem)
		if elemKind.IsContainer() {
			m.walk(elem, path+".0")
			return
		}
		m.acc.Add(path, ArrayOf(elemKind.TypeOf()))

	case KindObject:
		m.walk(val, path)

	default:
		if kind.IsScalar() {
			m.acc.Add(path, kind.String())
		}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// eachField calls fn for every own key of an object, or every index of an
// array, until fn returns false. Go maps are visited in sorted key order.
func eachField(value any, kind Kind, fn func(key string, val any) bool) {
	switch v := value.(type) {
	case *orderedmap.OrderedMap[string, any]:
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			if !fn(pair.Key, pair.Value) {
				return
			}
		}
		return
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !fn(k, v[k]) {
				return
			}
		}
		return
	case []any:
		for i, elem := range v {
			if !fn(strconv.Itoa(i), elem) {
				return
			}
		}
		return
	}

	rv := reflect.ValueOf(value)
	if kind == KindArray {
		for i := 0; i < rv.Len(); i++ {
			if !fn(strconv.Itoa(i), rv.Index(i).Interface()) {
				return
			}
		}
		return
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		if !fn(k.String(), rv.MapIndex(k).Interface()) {
			return
		}
	}
}

func lenOf(value any) int {
	if v, ok := value.([]any); ok {
		return len(v)
	}
	return reflect.ValueOf(value).Len()
}

func first(value any) any {
	if v, ok := value.([]any); ok {
		return v[0]
	}
	return reflect.ValueOf(value).Index(0).Interface()
}

// identify returns the identity of reference-backed containers. Fixed-size
// arrays are values and cannot form cycles.
func identify(value any) (containerID, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		return containerID{ptr: rv.Pointer()}, true
	case reflect.Slice:
		return containerID{ptr: rv.Pointer(), n: rv.Len() + 1}, true
	}
	return containerID{}, false
}
