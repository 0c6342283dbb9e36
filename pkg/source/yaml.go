package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// decodeYAML reads every document of a YAML stream. Mappings keep their key
// order and !!timestamp scalars become time.Time.
func decodeYAML(data []byte, bigInts bool) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	c := &yamlConverter{bigInts: bigInts}

	var docs []any
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("yaml document %d: %w", len(docs)+1, err)
		}

		doc, err := c.convert(&node)
		if err != nil {
			return nil, fmt.Errorf("yaml document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

type yamlConverter struct {
	bigInts bool
}

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.MappingNode:
		obj := orderedmap.New[string, any]()
		if err := c.fillMapping(obj, n); err != nil {
			return nil, err
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		return c.scalar(n)
	}
	return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

// fillMapping copies key/value pairs into obj. Merge keys (<<) contribute
// only keys not set explicitly.
func (c *yamlConverter) fillMapping(obj *orderedmap.OrderedMap[string, any], n *yaml.Node) error {
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.ShortTag() == "!!merge" {
			merges = append(merges, valNode)
			continue
		}

		key := keyNode.Value
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			key = keyNode.Alias.Value
		}
		val, err := c.convert(valNode)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		obj.Set(key, val)
	}

	for _, m := range merges {
		if m.Kind == yaml.AliasNode {
			m = m.Alias
		}
		sources := []*yaml.Node{m}
		if m.Kind == yaml.SequenceNode {
			sources = m.Content
		}
		for _, src := range sources {
			if src.Kind == yaml.AliasNode {
				src = src.Alias
			}
			if src.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
			}
			merged := orderedmap.New[string, any]()
			if err := c.fillMapping(merged, src); err != nil {
				return err
			}
			for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
				if _, exists := obj.Get(pair.Key); !exists {
					obj.Set(pair.Key, pair.Value)
				}
			}
		}
	}

	return nil
}

func (c *yamlConverter) scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		if c.bigInts {
			if bi, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0); ok {
				return bi, nil
			}
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return n.Value, nil
		}
		return t, nil
	}
	return n.Value, nil
}
