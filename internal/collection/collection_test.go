package collection

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemamap/pkg/schemamap"
)

func byPath(fields []FieldCoverage) map[string]FieldCoverage {
	out := make(map[string]FieldCoverage, len(fields))
	for _, f := range fields {
		out[f.Path] = f
	}
	return out
}

func TestCollection_AddReportsNewPaths(t *testing.T) {
	col := New("users")

	first := col.Add(map[string]any{"id": 1, "name": "Alice"})
	assert.Equal(t, 1, first.DocumentsAdded)
	assert.Equal(t, []schemamap.Entry{
		{Path: "id", Type: "number"},
		{Path: "name", Type: "string"},
	}, first.NewPaths)

	second := col.Add(map[string]any{"id": "x", "email": "a@b.c"})
	assert.Equal(t, []schemamap.Entry{{Path: "email", Type: "string"}}, second.NewPaths)
	assert.Equal(t, 3, second.TotalPaths)
	assert.Equal(t, 2, second.TotalDocuments)

	typ, _ := col.Schema().Get("id")
	assert.Equal(t, "number", typ)
}

func TestCollection_AddNothingNew(t *testing.T) {
	col := New("c")
	col.Add(map[string]any{"a": 1})

	res := col.Add(map[string]any{"a": 2})
	assert.Empty(t, res.NewPaths)
	assert.NotNil(t, res.NewPaths)
}

func TestCollection_SnapshotCoverage(t *testing.T) {
	col := New("orders")
	col.Add(
		map[string]any{"id": 1, "items": []any{map[string]any{"sku": "a"}}},
		map[string]any{"id": 2, "note": "rush"},
		map[string]any{"id": 3, "items": []any{}},
		map[string]any{"id": 4},
	)

	snap := col.Snapshot(0)
	require.Equal(t, 4, snap.Documents)

	fields := byPath(snap.Fields)
	assert.Equal(t, 4, fields["id"].Documents)
	assert.Equal(t, 1.0, fields["id"].Frequency)
	assert.Equal(t, 1, fields["items.0.sku"].Documents)
	assert.Equal(t, 0.25, fields["note"].Frequency)
	// the empty array of the third document resolves "items" itself
	assert.Equal(t, "array?", fields["items"].Type)
	assert.Equal(t, 1, fields["items"].Documents)
}

func TestCollection_SnapshotMinFrequency(t *testing.T) {
	col := New("c")
	col.Add(map[string]any{"a": 1, "b": 1}, map[string]any{"a": 1})

	snap := col.Snapshot(0.75)
	require.Len(t, snap.Fields, 1)
	assert.Equal(t, "a", snap.Fields[0].Path)
	assert.Len(t, col.Snapshot(0.5).Fields, 2)
}

func TestCollection_Seed(t *testing.T) {
	saved := schemamap.NewSchema()
	saved.Add("id", "string")
	saved.Add("tags", "array<string>")

	col := New("c")
	assert.Equal(t, 2, col.Seed(saved))
	col.Add(map[string]any{"id": 10, "extra": true})

	snap := col.Snapshot(0)
	fields := byPath(snap.Fields)
	assert.Equal(t, "string", fields["id"].Type)
	assert.Equal(t, 1, fields["id"].Documents)
	assert.Equal(t, 0, fields["tags"].Documents)
	assert.Equal(t, []string{"id", "tags", "extra"}, col.Schema().Paths())
}

func TestCollection_ConcurrentAdd(t *testing.T) {
	col := New("c")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				col.Add(map[string]any{"shared": j, fmt.Sprintf("w%d", i): true})
			}
		}(i)
	}
	wg.Wait()

	snap := col.Snapshot(0)
	assert.Equal(t, 400, snap.Documents)
	assert.Len(t, snap.Fields, 9)
	assert.Equal(t, 400, byPath(snap.Fields)["shared"].Documents)
}
