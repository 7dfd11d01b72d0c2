// Package record resolves dotted paths against nested row data and
// shapes arbitrary values into cell strings.
package record

import (
	"strconv"
	"strings"
)

// Row is one input record. Rows are never mutated during resolution.
type Row = map[string]any

// Resolve walks a dot-separated path through nested maps. Digit segments
// index into slices. The second return value reports presence: absent at
// any segment yields (nil, false), which is distinct from a present but
// nil value.
func Resolve(row Row, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = row
	for _, seg := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			current = v[idx]
		default:
			return nil, false
		}
	}
	return current, true
}
