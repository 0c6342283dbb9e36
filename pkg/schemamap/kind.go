package schemamap

import (
	"encoding/json"
	"math/big"
	"reflect"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the closed classification of a value seen during mapping.
type Kind int

const (
	KindOther Kind = iota
	KindObject
	KindArray
	KindDate
	KindString
	KindNumber
	KindBigInt
	KindBoolean
	KindSymbol
	KindFunction
	KindAbsent
	KindNull
)

var kindNames = [...]string{
	KindOther:    "other",
	KindObject:   "object",
	KindArray:    "array",
	KindDate:     "date",
	KindString:   "string",
	KindNumber:   "number",
	KindBigInt:   "bigint",
	KindBoolean:  "boolean",
	KindSymbol:   "symbol",
	KindFunction: "function",
	KindAbsent:   "undefined",
	KindNull:     "null",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "other"
	}
	return kindNames[k]
}

// IsScalar reports whether values of this kind produce their own type label.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindBigInt, KindBoolean, KindSymbol:
		return true
	}
	return false
}

// IsContainer reports whether the mapper descends into values of this kind.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindArray
}

// TypeOf returns the element name used inside an array<T> label. Dates, nulls
// and unrecognized values all report "object".
func (k Kind) TypeOf() string {
	switch k {
	case KindString, KindNumber, KindBigInt, KindBoolean, KindSymbol, KindFunction:
		return kindNames[k]
	case KindAbsent:
		return "undefined"
	}
	return "object"
}

// Symbol is an atomic tag value. It maps to the "symbol" label.
type Symbol string

type undefined struct{}

// Undefined marks a field as present but without a value. Fields holding it
// are skipped, like function values.
var Undefined any = undefined{}

var (
	timeType      = reflect.TypeOf(time.Time{})
	bigIntType    = reflect.TypeOf(big.Int{})
	jsonNumType   = reflect.TypeOf(json.Number(""))
	symbolType    = reflect.TypeOf(Symbol(""))
	undefinedType = reflect.TypeOf(undefined{})
)

// Classify reports the Kind of v.
func Classify(v any) Kind {
	switch val := v.(type) {
	case nil:
		return KindNull
	case undefined:
		return KindAbsent
	case time.Time:
		return KindDate
	case *time.Time:
		if val == nil {
			return KindNull
		}
		return KindDate
	case map[string]any:
		if val == nil {
			return KindNull
		}
		return KindObject
	case *orderedmap.OrderedMap[string, any]:
		if val == nil {
			return KindNull
		}
		return KindObject
	case []any:
		if val == nil {
			return KindNull
		}
		return KindArray
	case Symbol:
		return KindSymbol
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number:
		return KindNumber
	case *big.Int:
		if val == nil {
			return KindNull
		}
		return KindBigInt
	case big.Int:
		return KindBigInt
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return KindNumber
	}
	return classifyReflect(reflect.ValueOf(v))
}

// classifyReflect handles named types and containers with concrete element
// types, e.g. map[string]int or []string.
func classifyReflect(rv reflect.Value) Kind {
	switch rv.Type() {
	case timeType:
		return KindDate
	case bigIntType:
		return KindBigInt
	case jsonNumType:
		return KindNumber
	case symbolType:
		return KindSymbol
	case undefinedType:
		return KindAbsent
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return KindNull
		}
		switch rv.Type().Elem() {
		case timeType:
			return KindDate
		case bigIntType:
			return KindBigInt
		}
		return KindOther
	case reflect.Map:
		if rv.IsNil() {
			return KindNull
		}
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
		return KindOther
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}
		return KindArray
	case reflect.Array:
		return KindArray
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindFunction
	}
	return KindOther
}
