package source

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/schemamap/pkg/schemamap"
)

func decode(t *testing.T, opts Options, input string) []any {
	t.Helper()
	d, err := NewDecoder(opts)
	require.NoError(t, err)
	docs, err := d.DecodeBytes(context.Background(), []byte(input))
	require.NoError(t, err)
	return docs
}

func keys(t *testing.T, v any) []string {
	t.Helper()
	om, ok := v.(*orderedmap.OrderedMap[string, any])
	require.True(t, ok, "expected ordered map, got %T", v)
	var out []string
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestDecode_JSONKeepsKeyOrder(t *testing.T) {
	docs := decode(t, Options{Format: JSON}, `{"zeta": 1, "alpha": {"y": true, "x": null}, "mid": [1]}`)
	require.Len(t, docs, 1)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys(t, docs[0]))
	alpha, _ := docs[0].(*orderedmap.OrderedMap[string, any]).Get("alpha")
	assert.Equal(t, []string{"y", "x"}, keys(t, alpha))
}

func TestDecode_JSONNumbersStayLiteral(t *testing.T) {
	docs := decode(t, Options{Format: JSON}, `{"n": 12.50}`)
	n, _ := docs[0].(*orderedmap.OrderedMap[string, any]).Get("n")
	assert.Equal(t, json.Number("12.50"), n)
}

func TestDecode_JSONRejectsTrailingData(t *testing.T) {
	d, err := NewDecoder(Options{Format: JSON})
	require.NoError(t, err)

	_, err = d.DecodeBytes(context.Background(), []byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)
}

func TestDecode_JSONInvalid(t *testing.T) {
	d, err := NewDecoder(Options{Format: JSON})
	require.NoError(t, err)

	_, err = d.DecodeBytes(context.Background(), []byte(`{"a": `))
	assert.Error(t, err)
}

func TestDecode_NDJSON(t *testing.T) {
	input := "{\"a\": 1}\n{\"b\": \"x\"}\n\n[1, 2]\n"
	docs := decode(t, Options{Format: NDJSON}, input)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"a"}, keys(t, docs[0]))
	assert.Equal(t, []string{"b"}, keys(t, docs[1]))
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, docs[2])
}

func TestDecode_BigInts(t *testing.T) {
	input := `{"small": 42, "huge": 123456789012345678901234567890, "float": 1e30}`

	plain := decode(t, Options{Format: JSON}, input)
	huge, _ := plain[0].(*orderedmap.OrderedMap[string, any]).Get("huge")
	assert.Equal(t, json.Number("123456789012345678901234567890"), huge)

	promoted := decode(t, Options{Format: JSON, BigInts: true}, input)
	obj := promoted[0].(*orderedmap.OrderedMap[string, any])
	huge, _ = obj.Get("huge")
	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, want, huge)

	small, _ := obj.Get("small")
	assert.Equal(t, json.Number("42"), small)
	float, _ := obj.Get("float")
	assert.Equal(t, json.Number("1e30"), float)
}

func TestDecode_YAML(t *testing.T) {
	input := `
name: svc
replicas: 3
created: 2024-01-15T10:30:00Z
ratio: 0.5
enabled: true
nothing: ~
ports:
  - 80
  - 443
`
	docs := decode(t, Options{Format: YAML}, input)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"name", "replicas", "created", "ratio", "enabled", "nothing", "ports"}, keys(t, docs[0]))

	obj := docs[0].(*orderedmap.OrderedMap[string, any])
	created, _ := obj.Get("created")
	assert.IsType(t, time.Time{}, created)
	replicas, _ := obj.Get("replicas")
	assert.Equal(t, int64(3), replicas)
	nothing, _ := obj.Get("nothing")
	assert.Nil(t, nothing)
}

func TestDecode_YAMLMultipleDocuments(t *testing.T) {
	docs := decode(t, Options{Format: YAML}, "a: 1\n---\nb: 2\n")
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"a"}, keys(t, docs[0]))
	assert.Equal(t, []string{"b"}, keys(t, docs[1]))
}

func TestDecode_YAMLMergeKeys(t *testing.T) {
	input := `
base: &base
  host: localhost
  port: 80
service:
  <<: *base
  port: 8080
  name: api
`
	docs := decode(t, Options{Format: YAML}, input)
	service, _ := docs[0].(*orderedmap.OrderedMap[string, any]).Get("service")
	assert.Equal(t, []string{"port", "name", "host"}, keys(t, service))

	port, _ := service.(*orderedmap.OrderedMap[string, any]).Get("port")
	assert.Equal(t, int64(8080), port)
}

func TestDecode_AutoSniffing(t *testing.T) {
	jsonDocs := decode(t, Options{}, "  {\"a\": 1}\n{\"b\": 2}")
	assert.Len(t, jsonDocs, 2)

	yamlDocs := decode(t, Options{}, "a: 1\nb: two\n")
	require.Len(t, yamlDocs, 1)
	assert.Equal(t, []string{"a", "b"}, keys(t, yamlDocs[0]))
}

func TestDecode_Select(t *testing.T) {
	input := `{"data": {"items": [{"id": 1, "name": "a"}, {"id": 2}]}}`
	docs := decode(t, Options{Format: JSON, Select: ".data.items[]"}, input)

	require.Len(t, docs, 2)
	assert.Equal(t, map[string]any{"id": 1, "name": "a"}, docs[0])
	assert.Equal(t, map[string]any{"id": 2}, docs[1])
}

func TestDecode_SelectSkipsNull(t *testing.T) {
	docs := decode(t, Options{Format: NDJSON, Select: ".missing"}, `{"a": 1}`)
	assert.Empty(t, docs)
}

func TestDecode_SelectRuntimeError(t *testing.T) {
	d, err := NewDecoder(Options{Format: JSON, Select: ".a.b"})
	require.NoError(t, err)

	_, err = d.DecodeBytes(context.Background(), []byte(`{"a": "not an object"}`))
	assert.Error(t, err)
}

func TestNewDecoder_InvalidSelect(t *testing.T) {
	_, err := NewDecoder(Options{Select: ".items[["})
	assert.Error(t, err)
}

func TestNewDecoder_InvalidFormat(t *testing.T) {
	_, err := NewDecoder(Options{Format: "toml"})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecode_ParseDates(t *testing.T) {
	input := `{"created": "2024-01-15T10:30:00Z", "day": "2024-01-15", "name": "2024 report", "tags": ["2024-02-01"]}`
	docs := decode(t, Options{Format: JSON, ParseDates: true}, input)

	obj := docs[0].(*orderedmap.OrderedMap[string, any])
	created, _ := obj.Get("created")
	assert.IsType(t, time.Time{}, created)
	day, _ := obj.Get("day")
	assert.IsType(t, time.Time{}, day)
	name, _ := obj.Get("name")
	assert.Equal(t, "2024 report", name)
	tags, _ := obj.Get("tags")
	assert.IsType(t, time.Time{}, tags.([]any)[0])
}

func TestDecode_MaxBytes(t *testing.T) {
	d, err := NewDecoder(Options{MaxBytes: 8})
	require.NoError(t, err)

	_, err = d.Decode(context.Background(), strings.NewReader(`{"a": "0123456789"}`))
	assert.True(t, errors.Is(err, ErrDocumentTooLarge))

	docs, err := d.Decode(context.Background(), strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDecode_FeedsMapper(t *testing.T) {
	input := `{"a": "a", "b": 1, "c": "2024-01-15T10:30:00Z", "d": true, "e": ["hello"], "f": {"g": "g", "h": [123]}}`
	docs := decode(t, Options{Format: JSON, ParseDates: true}, input)

	schema := schemamap.Map(docs[0], nil)
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"a":"string","b":"number","c":"date","d":"boolean","e":"array<string>","f.g":"string","f.h":"array<number>"}`,
		string(data))
}

func TestDecoder_WithFormat(t *testing.T) {
	d, err := NewDecoder(Options{Select: ".a"})
	require.NoError(t, err)

	y := d.WithFormat(YAML)
	assert.Equal(t, YAML, y.Options().Format)
	assert.Equal(t, Auto, d.Options().Format)
	assert.Same(t, d, d.WithFormat(""))

	docs, err := y.DecodeBytes(context.Background(), []byte("a: hi\n"))
	require.NoError(t, err)
	assert.Equal(t, []any{"hi"}, docs)
}

func TestDecode_XML(t *testing.T) {
	input := `<?xml version="1.0"?>
<order id="7">
  <item>a</item>
  <item>b</item>
  <customer tier="gold">Ada</customer>
  <note/>
</order>`
	docs := decode(t, Options{Format: XML}, input)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"order"}, keys(t, docs[0]))

	order, _ := docs[0].(*orderedmap.OrderedMap[string, any]).Get("order")
	assert.Equal(t, []string{"@id", "item", "customer", "note"}, keys(t, order))

	om := order.(*orderedmap.OrderedMap[string, any])
	id, _ := om.Get("@id")
	assert.Equal(t, "7", id)
	items, _ := om.Get("item")
	assert.Equal(t, []any{"a", "b"}, items)
	note, _ := om.Get("note")
	assert.Equal(t, "", note)

	customer, _ := om.Get("customer")
	assert.Equal(t, []string{"@tier", "#text"}, keys(t, customer))
	text, _ := customer.(*orderedmap.OrderedMap[string, any]).Get("#text")
	assert.Equal(t, "Ada", text)
}

func TestDecode_XMLSniffed(t *testing.T) {
	docs := decode(t, Options{}, `  <user><name>Ada</name><address><city>London</city></address></user>`)
	require.Len(t, docs, 1)

	schema := schemamap.Map(docs[0], nil)
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"user.name":"string","user.address.city":"string"}`, string(data))
}

func TestDecode_XMLInvalid(t *testing.T) {
	d, err := NewDecoder(Options{Format: XML})
	require.NoError(t, err)

	_, err = d.DecodeBytes(context.Background(), []byte(`<a><b></a>`))
	assert.Error(t, err)
}

func TestDecode_SelectKeepsLabels(t *testing.T) {
	mapped := func(opts Options, input string) map[string]string {
		t.Helper()
		docs := decode(t, opts, input)
		require.Len(t, docs, 1)
		return schemamap.Map(docs[0], nil).ToMap()
	}

	huge := `{"big": 123456789012345678901234567890, "small": 7}`
	assert.Equal(t,
		map[string]string{"big": "number", "small": "number"},
		mapped(Options{Format: JSON, Select: "."}, huge))
	assert.Equal(t,
		map[string]string{"big": "bigint", "small": "number"},
		mapped(Options{Format: JSON, BigInts: true, Select: "."}, huge))

	yamlDoc := "t: 2020-01-01\nname: ada\n"
	assert.Equal(t,
		mapped(Options{Format: YAML}, yamlDoc),
		mapped(Options{Format: YAML, Select: "."}, yamlDoc))
	assert.Equal(t,
		map[string]string{"t": "date", "name": "string"},
		mapped(Options{Format: YAML, Select: "."}, yamlDoc))
}

func TestDecode_SelectRestoresNestedDates(t *testing.T) {
	docs := decode(t, Options{Format: YAML, Select: ".events[]"}, "events:\n  - at: 2021-03-04T05:06:07Z\n    tags: [2022-01-01]\n")
	require.Len(t, docs, 1)

	event, ok := docs[0].(map[string]any)
	require.True(t, ok)
	assert.IsType(t, time.Time{}, event["at"])
	assert.IsType(t, time.Time{}, event["tags"].([]any)[0])
}
