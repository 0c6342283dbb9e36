package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema_nilSlicePanics(t *testing.T) {
	type out struct {
		Paths []string `json:"paths"`
	}
	assert.Panics(t, func() { CheckOutputSchema[out]("nil_slice") })
}

func TestCheckOutputSchema_omitzeroSlice(t *testing.T) {
	type out struct {
		Paths []string `json:"paths,omitzero"`
	}
	assert.NotPanics(t, func() { CheckOutputSchema[out]("omitzero") })
}

func TestCheckOutputSchema_rawMessagePanics(t *testing.T) {
	type inner struct {
		Doc json.RawMessage `json:"doc,omitempty"`
	}
	type nested struct {
		Inner inner `json:"inner"`
	}
	assert.Panics(t, func() { CheckOutputSchema[nested]("raw_nested") })
	assert.Panics(t, func() {
		CheckOutputSchema[struct {
			Docs []json.RawMessage `json:"docs,omitzero"`
		}]("raw_slice")
	})
}

func TestCheckOutputSchema_anyOutput(t *testing.T) {
	assert.NotPanics(t, func() { CheckOutputSchema[any]("any") })
}

func TestCheckOutputSchema_builtinOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[MapDocumentsOutput]("map")
		CheckOutputSchema[GetSchemaOutput]("get")
		CheckOutputSchema[ListCollectionsOutput]("list")
		CheckOutputSchema[DeleteCollectionOutput]("delete")
		CheckOutputSchema[InferOutput]("infer")
	})
}
