package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// XML documents become nested ordered maps keyed by element name:
//
//	<order id="7"><item>a</item><item>b</item><note/></order>
//
// decodes to {"order": {"@id": "7", "item": ["a", "b"], "note": ""}}.
// Attributes are prefixed with "@", repeated sibling elements collapse into
// an array, and an element holding only text becomes that text. Text next to
// attributes or child elements is kept under "#text".
const (
	xmlAttrPrefix = "@"
	xmlTextKey    = "#text"
)

func decodeXML(data []byte) ([]any, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid XML: %w", err)
	}

	var docs []any
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		root := orderedmap.New[string, any]()
		root.Set(xmlName(n), xmlElement(n))
		docs = append(docs, root)
	}
	return docs, nil
}

func xmlElement(n *xmlquery.Node) any {
	obj := orderedmap.New[string, any]()
	for _, attr := range n.Attr {
		name := attr.Name.Local
		if attr.Name.Space != "" {
			name = attr.Name.Space + ":" + name
		}
		obj.Set(xmlAttrPrefix+name, attr.Value)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		case xmlquery.ElementNode:
			name := xmlName(c)
			child := xmlElement(c)
			existing, ok := obj.Get(name)
			if !ok {
				obj.Set(name, child)
				continue
			}
			if list, isList := existing.([]any); isList {
				obj.Set(name, append(list, child))
			} else {
				obj.Set(name, []any{existing, child})
			}
		}
	}

	content := strings.TrimSpace(text.String())
	if obj.Len() == 0 {
		return content
	}
	if content != "" {
		obj.Set(xmlTextKey, content)
	}
	return obj
}

func xmlName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}
