package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemamap/pkg/schemamap"
	"github.com/usestring/schemamap/pkg/source"
)

func TestInfer_MergesDocuments(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolInfer(d)(context.Background(), nil, InferInput{
		Document:   "{\"at\": \"2024-01-15T10:30:00Z\", \"n\": 1}\n{\"n\": \"later\", \"big\": 123456789012345678901234567890}\n",
		ParseDates: true,
		BigInts:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Documents)
	assert.Equal(t, []schemamap.Entry{
		{Path: "at", Type: "date"},
		{Path: "n", Type: "number"},
		{Path: "big", Type: "bigint"},
	}, out.Fields)
	assert.Equal(t, 3, out.TotalPaths)
	assert.NotEmpty(t, out.Hint)
	assert.Equal(t, 0, d.Store.Len())
}

func TestInfer_NoFieldsHint(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolInfer(d)(context.Background(), nil, InferInput{Document: `"just a string"`})
	require.NoError(t, err)
	assert.Empty(t, out.Fields)
	assert.Contains(t, out.Hint, "No fields found")
}

func TestInfer_ContentTypeSelectsFormat(t *testing.T) {
	d := newTestDeps(t)

	// "a: 1" would be sniffed as YAML; the content type forces JSON
	_, _, err := ToolInfer(d)(context.Background(), nil, InferInput{
		Document:    "a: 1",
		ContentType: "application/json; charset=utf-8",
	})
	requireCode(t, err, ErrCodeDecodeError)
}

func TestWrapDecodeError(t *testing.T) {
	assert.Nil(t, WrapDecodeError(nil))

	err := WrapDecodeError(source.ErrDocumentTooLarge)
	requireCode(t, err, ErrCodeInvalidInput)
	assert.True(t, errors.Is(err, source.ErrDocumentTooLarge))

	requireCode(t, WrapDecodeError(errors.New("syntax")), ErrCodeDecodeError)

	already := ErrNotFound("collection", "x")
	assert.Same(t, already, WrapDecodeError(already))
}

func TestValidateCollection(t *testing.T) {
	assert.NoError(t, ValidateCollection("api.v2_users-1"))
	assert.Error(t, ValidateCollection(""))
	assert.Error(t, ValidateCollection(".hidden"))
	assert.Error(t, ValidateCollection("has space"))
}
