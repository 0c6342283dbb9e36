package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/itchyny/gojq"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// selector runs a compiled jq expression over decoded documents.
type selector struct {
	expr    string
	code    *gojq.Code
	bigInts bool
}

func compileSelector(expr string, bigInts bool) (*selector, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return &selector{expr: expr, code: code, bigInts: bigInts}, nil
}

// apply returns every non-null output of the expression for doc. Objects in
// the output are plain maps, so their key order is lost. Timestamps reach jq
// as RFC 3339 strings and are turned back into time.Time on the way out.
func (s *selector) apply(ctx context.Context, doc any) ([]any, error) {
	p := &plainer{bigInts: s.bigInts}
	iter := s.code.RunWithContext(ctx, p.convert(doc))

	var out []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq %q: %w", s.expr, err)
		}
		if v == nil {
			continue
		}
		out = append(out, p.restore(v))
	}
	return out, nil
}

// plainer converts decoded values to the types gojq accepts, remembering the
// timestamps it had to render as strings.
type plainer struct {
	bigInts bool
	times   map[string]time.Time
}

func (p *plainer) convert(v any) any {
	switch val := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		m := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = p.convert(pair.Value)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = p.convert(item)
		}
		return m
	case []any:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = p.convert(item)
		}
		return arr
	case json.Number:
		if i, err := strconv.Atoi(string(val)); err == nil {
			return i
		}
		if p.bigInts {
			if bi, ok := new(big.Int).SetString(string(val), 10); ok {
				return bi
			}
		}
		f, _ := val.Float64()
		return f
	case int64:
		return int(val)
	case time.Time:
		s := val.Format(time.RFC3339Nano)
		if p.times == nil {
			p.times = make(map[string]time.Time)
		}
		p.times[s] = val
		return s
	}
	return v
}

// restore turns strings that were rendered from timestamps back into
// time.Time.
func (p *plainer) restore(v any) any {
	if len(p.times) == 0 {
		return v
	}
	switch val := v.(type) {
	case string:
		if t, ok := p.times[val]; ok {
			return t
		}
	case map[string]any:
		for k, item := range val {
			val[k] = p.restore(item)
		}
	case []any:
		for i, item := range val {
			val[i] = p.restore(item)
		}
	}
	return v
}
