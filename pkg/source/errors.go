package source

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for unknown format names.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrDocumentTooLarge is returned when input exceeds Options.MaxBytes.
	ErrDocumentTooLarge = errors.New("document too large")
)

// FormatError reports an unknown format name.
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q (want auto, json, ndjson, yaml or xml)", ErrUnsupportedFormat, e.Name)
}

func (e *FormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
