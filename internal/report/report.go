// Package report renders schemas for terminals and files.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/schemamap/pkg/schemamap"
)

// Output selects how a schema is rendered.
type Output string

const (
	OutputJSON       Output = "json"
	OutputTable      Output = "table"
	OutputJSONSchema Output = "jsonschema"
)

// ParseOutput validates an output name. Empty means JSON.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OutputJSON, nil
	case OutputJSON, OutputTable, OutputJSONSchema:
		return o, nil
	}
	return "", fmt.Errorf("unknown output %q (want json, table or jsonschema)", s)
}

// Write renders schema to w in the given output.
func Write(w io.Writer, out Output, schema *schemamap.Schema) error {
	switch out {
	case OutputTable:
		return WriteTable(w, schema)
	case OutputJSONSchema:
		return WriteJSONSchema(w, schema)
	case OutputJSON, "":
		return WriteJSON(w, schema)
	}
	return fmt.Errorf("unknown output %q", out)
}

// WriteJSON writes schema as an indented JSON object in path order.
func WriteJSON(w io.Writer, schema *schemamap.Schema) error {
	data, err := schema.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)
	return err
}

// WriteTable writes one aligned "path  type" line per entry.
func WriteTable(w io.Writer, schema *schemamap.Schema) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTYPE")
	for _, e := range schema.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Path, e.Type)
	}
	return tw.Flush()
}

// printer formats counts with English digit grouping.
var printer = message.NewPrinter(language.English)

// Summary returns a one-line description of a mapping run.
func Summary(inputs, documents, paths int) string {
	return printer.Sprintf("mapped %d %s from %d %s, %d %s",
		documents, plural(documents, "document", "documents"),
		inputs, plural(inputs, "input", "inputs"),
		paths, plural(paths, "path", "paths"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
