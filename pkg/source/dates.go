package source

import (
	"regexp"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// dateLayouts are tried in order. Offsetless forms are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 / RFC 3339 date or timestamp string.
func ParseDate(s string) (time.Time, bool) {
	if !isoDatePrefix.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDates replaces date-like strings inside v with time.Time values and
// returns the result. Containers are updated in place.
func parseDates(v any) any {
	switch val := v.(type) {
	case string:
		if t, ok := ParseDate(val); ok {
			return t
		}
		return val
	case *orderedmap.OrderedMap[string, any]:
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			pair.Value = parseDates(pair.Value)
		}
		return val
	case map[string]any:
		for k, item := range val {
			val[k] = parseDates(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = parseDates(item)
		}
		return val
	}
	return v
}
