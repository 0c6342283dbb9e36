package source

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"
)

// Format identifies a document encoding.
type Format string

const (
	Auto   Format = "auto"
	JSON   Format = "json"
	NDJSON Format = "ndjson"
	YAML   Format = "yaml"
	XML    Format = "xml"
)

// ParseFormat validates a user-supplied format name. Empty means Auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Auto, nil
	case Auto, JSON, NDJSON, YAML, XML:
		return f, nil
	case "jsonl":
		return NDJSON, nil
	case "yml":
		return YAML, nil
	}
	return "", &FormatError{Name: s}
}

// Classify maps a content-type header value to a Format. Parameters such as
// charset are ignored. Unknown types map to Auto.
func Classify(contentType string) Format {
	if contentType == "" {
		return Auto
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// application/x-ndjson, application/jsonl, application/json-seq
	if strings.Contains(mediaType, "ndjson") || strings.Contains(mediaType, "jsonl") ||
		strings.Contains(mediaType, "json-seq") {
		return NDJSON
	}

	// application/json, application/vnd.*+json
	if strings.Contains(mediaType, "json") {
		return JSON
	}

	// application/yaml, text/yaml, application/x-yaml
	if strings.Contains(mediaType, "yaml") {
		return YAML
	}

	// application/xml, text/xml, application/atom+xml
	if strings.Contains(mediaType, "xml") {
		return XML
	}

	return Auto
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".ndjson", ".jsonl":
		return NDJSON
	case ".yaml", ".yml":
		return YAML
	case ".xml":
		return XML
	}
	return Auto
}

// sniff picks a concrete format for Auto input. JSON text is read as a stream
// so that both single documents and NDJSON are accepted.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return NDJSON
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return NDJSON
	case '<':
		return XML
	}
	return YAML
}
