// Package tools contains the schemamap MCP tool implementations.
package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/usestring/schemamap/pkg/source"
)

// MIME type constant.
const MimeJSON = "application/json"

// collectionName keeps names safe to embed in resource URIs.
var collectionName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidateCollection checks a collection name from tool input.
func ValidateCollection(name string) error {
	if name == "" {
		return ErrInvalidInput("collection is required")
	}
	if !collectionName.MatchString(name) {
		return ErrInvalidInput(fmt.Sprintf("invalid collection name %q: use up to 64 letters, digits, '.', '_' or '-'", name))
	}
	return nil
}

// decodeParams are the decoding fields shared by tool inputs.
type decodeParams struct {
	Format      string
	ContentType string
	Select      string
	ParseDates  bool
	BigInts     bool
}

// decoder builds a source decoder from the configured defaults and p.
// The format comes from p.Format, then p.ContentType, then sniffing.
func (d *Deps) decoder(p decodeParams) (*source.Decoder, error) {
	format, err := source.ParseFormat(p.Format)
	if err != nil {
		return nil, WrapDecodeError(err)
	}
	if format == source.Auto && p.ContentType != "" {
		format = source.Classify(p.ContentType)
	}

	opts := d.Config.SourceOptions()
	opts.Format = format
	opts.Select = p.Select
	opts.ParseDates = opts.ParseDates || p.ParseDates
	opts.BigInts = opts.BigInts || p.BigInts

	dec, err := source.NewDecoder(opts)
	if err != nil {
		if p.Select != "" {
			return nil, ErrInvalidInput(err.Error())
		}
		return nil, WrapDecodeError(err)
	}
	return dec, nil
}

// decode turns raw tool input into documents, enforcing the per-call limit.
func (d *Deps) decode(ctx context.Context, p decodeParams, text string) ([]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput("documents is required")
	}

	dec, err := d.decoder(p)
	if err != nil {
		return nil, err
	}

	docs, err := dec.DecodeBytes(ctx, []byte(text))
	if err != nil {
		return nil, WrapDecodeError(err)
	}

	if limit := d.Config.MaxDocumentsPerCall; limit > 0 && len(docs) > limit {
		return nil, ErrInvalidInput(fmt.Sprintf("%d documents exceed the limit of %d per call", len(docs), limit))
	}
	return docs, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
