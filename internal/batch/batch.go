// Package batch maps many inputs into one schema. Inputs are decoded in
// parallel and mapped in input order, so the result does not depend on which
// decode finishes first.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/schemamap/pkg/schemamap"
	"github.com/usestring/schemamap/pkg/source"
)

// StdinName is the input name that reads standard input.
const StdinName = "-"

// Input is a named source of documents.
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileInput reads the file at path, or standard input when path is "-".
func FileInput(path string) Input {
	if path == StdinName {
		return ReaderInput(StdinName, os.Stdin)
	}
	return Input{
		Name: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// ReaderInput wraps an already open reader. The reader is not closed.
func ReaderInput(name string, r io.Reader) Input {
	return Input{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

// Result describes a completed batch.
type Result struct {
	Schema    *schemamap.Schema
	Inputs    int
	Documents int
	Elapsed   time.Duration
}

// Mapper decodes and maps batches of inputs.
type Mapper struct {
	decoder *source.Decoder
	workers int
}

// New creates a Mapper. workers below 1 means one worker.
func New(decoder *source.Decoder, workers int) *Mapper {
	if workers < 1 {
		workers = 1
	}
	return &Mapper{decoder: decoder, workers: workers}
}

// Run decodes every input and maps all documents into acc, which may be nil.
// The first failing input cancels the rest and its name is part of the error.
func (m *Mapper) Run(ctx context.Context, inputs []Input, acc *schemamap.Schema) (*Result, error) {
	start := time.Now()
	if acc == nil {
		acc = schemamap.NewSchema()
	}

	decoded := make([][]any, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for i, in := range inputs {
		g.Go(func() error {
			docs, err := m.decode(ctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			decoded[i] = docs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Schema: acc, Inputs: len(inputs)}
	for i, docs := range decoded {
		before := acc.Len()
		for _, doc := range docs {
			schemamap.Map(doc, acc)
		}
		res.Documents += len(docs)
		slog.Debug("input mapped",
			slog.String("input", inputs[i].Name),
			slog.Int("documents", len(docs)),
			slog.Int("new_paths", acc.Len()-before),
		)
	}
	res.Elapsed = time.Since(start)

	return res, nil
}

func (m *Mapper) decode(ctx context.Context, in Input) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec := m.decoder
	if dec.Options().Format == source.Auto {
		dec = dec.WithFormat(source.FormatFromPath(in.Name))
	}

	rc, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return dec.Decode(ctx, rc)
}
