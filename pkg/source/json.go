package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// decodeJSON reads JSON values from data. Objects keep their key order. With
// stream set, any number of concatenated or newline-delimited values is
// accepted; otherwise exactly one.
func decodeJSON(data []byte, stream, bigInts bool) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	b := &jsonBuilder{dec: dec, bigInts: bigInts}

	var docs []any
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("json document %d: %w", len(docs)+1, err)
		}

		doc, err := b.value(tok)
		if err != nil {
			return nil, fmt.Errorf("json document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)

		if !stream {
			if _, err := dec.Token(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("json: unexpected data after top-level value")
			}
			break
		}
	}

	return docs, nil
}

type jsonBuilder struct {
	dec     *json.Decoder
	bigInts bool
}

func (b *jsonBuilder) next() (any, error) {
	tok, err := b.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return b.value(tok)
}

func (b *jsonBuilder) value(tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return b.object()
		case '[':
			return b.array()
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		return b.number(t), nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func (b *jsonBuilder) object() (any, error) {
	obj := orderedmap.New[string, any]()
	for b.dec.More() {
		tok, err := b.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %T", tok)
		}
		val, err := b.next()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		// duplicate keys: last value wins, first position is kept
		obj.Set(key, val)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (b *jsonBuilder) array() (any, error) {
	arr := make([]any, 0)
	for b.dec.More() {
		val, err := b.next()
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(arr), err)
		}
		arr = append(arr, val)
	}
	if _, err := b.dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// number keeps the literal as json.Number, promoting integers that do not fit
// in int64 to *big.Int when bigInts is set.
func (b *jsonBuilder) number(n json.Number) any {
	if !b.bigInts || strings.ContainsAny(string(n), ".eE") {
		return n
	}
	if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return n
	}
	if bi, ok := new(big.Int).SetString(string(n), 10); ok {
		return bi
	}
	return n
}
