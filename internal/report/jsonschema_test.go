package report

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemamap/pkg/schemamap"
)

func property(t *testing.T, s *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	require.NotNil(t, s.Properties, "no properties for %q", name)
	p, ok := s.Properties.Get(name)
	require.True(t, ok, "missing property %q", name)
	return p
}

func TestJSONSchema_NestsPaths(t *testing.T) {
	s := schemamap.NewSchema()
	s.Add("id", "number")
	s.Add("address.city", "string")
	s.Add("tags", "array<string>")
	s.Add("created", "date")
	s.Add("orders.0.sku", "string")
	s.Add("orders.0.qty", "bigint")
	s.Add("empty", "array?")

	root := JSONSchema(s.Entries(), nil)
	assert.Equal(t, jsonschema.Version, root.Version)
	assert.Equal(t, "object", root.Type)
	assert.Empty(t, root.Required)

	var names []string
	for pair := root.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"id", "address", "tags", "created", "orders", "empty"}, names)

	assert.Equal(t, "number", property(t, root, "id").Type)

	address := property(t, root, "address")
	assert.Equal(t, "object", address.Type)
	assert.Equal(t, "string", property(t, address, "city").Type)

	tags := property(t, root, "tags")
	assert.Equal(t, "array", tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, "string", tags.Items.Type)

	created := property(t, root, "created")
	assert.Equal(t, "string", created.Type)
	assert.Equal(t, "date-time", created.Format)

	orders := property(t, root, "orders")
	assert.Equal(t, "array", orders.Type)
	require.NotNil(t, orders.Items)
	assert.Equal(t, "object", orders.Items.Type)
	assert.Equal(t, "string", property(t, orders.Items, "sku").Type)
	assert.Equal(t, "integer", property(t, orders.Items, "qty").Type)

	empty := property(t, root, "empty")
	assert.Equal(t, "array", empty.Type)
	assert.Nil(t, empty.Items)
}

func TestJSONSchema_Required(t *testing.T) {
	entries := []schemamap.Entry{
		{Path: "id", Type: "number"},
		{Path: "note", Type: "string"},
		{Path: "orders.0.sku", Type: "string"},
		{Path: "orders.0.qty", Type: "number"},
		{Path: "user.name", Type: "string"},
		{Path: "user.email", Type: "string"},
	}
	always := map[string]bool{"id": true, "orders.0.sku": true, "user.name": true, "user.email": true}

	root := JSONSchema(entries, func(path string) bool { return always[path] })

	assert.Equal(t, []string{"id", "orders", "user"}, root.Required)
	assert.Equal(t, []string{"sku"}, property(t, root, "orders").Items.Required)
	assert.Equal(t, []string{"name", "email"}, property(t, root, "user").Required)
}

func TestJSONSchema_NestedArrays(t *testing.T) {
	s := schemamap.Map(map[string]any{"m": []any{[]any{1, 2}}}, nil)
	require.Equal(t, []string{"m.0.0", "m.0.1"}, s.Paths())

	m := property(t, JSONSchema(s.Entries(), nil), "m")
	assert.Equal(t, "array", m.Type)
	require.NotNil(t, m.Items)
	assert.Equal(t, "array", m.Items.Type)
	require.NotNil(t, m.Items.Items)
	assert.Equal(t, "number", m.Items.Items.Type)
}
