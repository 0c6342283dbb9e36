// Package source decodes semi-structured documents (JSON, NDJSON, YAML, XML) into
// values that schemamap.Map accepts, keeping object key order so that
// inferred schemas list fields in document order.
package source

import (
	"context"
	"fmt"
	"io"
)

// DefaultMaxBytes caps a single input when Options.MaxBytes is zero.
const DefaultMaxBytes = 4_000_000

// Options controls decoding.
type Options struct {
	// Format of the input. Empty or Auto sniffs the content.
	Format Format
	// MaxBytes rejects larger inputs with ErrDocumentTooLarge.
	// Zero means DefaultMaxBytes, negative means unlimited.
	MaxBytes int64
	// BigInts decodes integers beyond int64 as *big.Int ("bigint").
	BigInts bool
	// ParseDates turns ISO-8601 strings into time.Time ("date").
	ParseDates bool
	// Select is a jq expression applied to each document; every output
	// value becomes a document of its own.
	Select string
}

// Decoder turns raw input into documents. It is safe for concurrent use.
type Decoder struct {
	opts     Options
	selector *selector
}

// NewDecoder validates opts and compiles the Select expression.
func NewDecoder(opts Options) (*Decoder, error) {
	if opts.Format == "" {
		opts.Format = Auto
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = DefaultMaxBytes
	}

	d := &Decoder{opts: opts}
	if opts.Select != "" {
		sel, err := compileSelector(opts.Select, opts.BigInts)
		if err != nil {
			return nil, err
		}
		d.selector = sel
	}
	return d, nil
}

// Options returns the effective options.
func (d *Decoder) Options() Options {
	return d.opts
}

// WithFormat returns a decoder that shares d's options and compiled Select
// expression but decodes f.
func (d *Decoder) WithFormat(f Format) *Decoder {
	if f == "" || f == d.opts.Format {
		return d
	}
	cp := *d
	cp.opts.Format = f
	return &cp
}

// Decode reads all of r and returns its documents.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) ([]any, error) {
	if d.opts.MaxBytes > 0 {
		r = io.LimitReader(r, d.opts.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return d.DecodeBytes(ctx, data)
}

// DecodeBytes returns the documents in data.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) ([]any, error) {
	if d.opts.MaxBytes > 0 && int64(len(data)) > d.opts.MaxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrDocumentTooLarge, d.opts.MaxBytes)
	}

	format := d.opts.Format
	if format == Auto {
		format = sniff(data)
	}

	var docs []any
	var err error
	switch format {
	case JSON:
		docs, err = decodeJSON(data, false, d.opts.BigInts)
	case NDJSON:
		docs, err = decodeJSON(data, true, d.opts.BigInts)
	case YAML:
		docs, err = decodeYAML(data, d.opts.BigInts)
	case XML:
		docs, err = decodeXML(data)
	default:
		return nil, &FormatError{Name: string(format)}
	}
	if err != nil {
		return nil, err
	}

	if d.selector != nil {
		var selected []any
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := d.selector.apply(ctx, doc)
			if err != nil {
				return nil, err
			}
			selected = append(selected, out...)
		}
		docs = selected
	}

	if d.opts.ParseDates {
		for i, doc := range docs {
			docs[i] = parseDates(doc)
		}
	}

	return docs, nil
}
