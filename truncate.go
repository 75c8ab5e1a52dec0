package toolcall

import (
	"reflect"
)

// DefaultTruncateMarker is appended to truncated text and sequences.
const DefaultTruncateMarker = "... (truncated)"

// Truncate returns a Processor that cuts oversized payloads down to
// maxSize: text to maxSize characters plus marker, sequences to maxSize
// elements plus a trailing marker element, mappings to the first maxSize
// keys (iteration-order dependent) plus a truncation flag. Payloads whose
// size cannot be estimated are never truncated. An empty marker selects
// DefaultTruncateMarker.
func Truncate(maxSize int, marker string) Processor {
	if marker == "" {
		marker = DefaultTruncateMarker
	}
	return func(entries []ResultEntry) []ResultEntry {
		return mapOk(entries, func(v any) any {
			return truncateValue(v, maxSize, marker)
		})
	}
}

func truncateValue(v any, maxSize int, marker string) any {
	if estimateSize(v) <= maxSize {
		return v
	}
	switch val := v.(type) {
	case string:
		return string([]rune(val)[:maxSize]) + marker
	case map[string]any:
		out := make(map[string]any, maxSize+1)
		kept := 0
		for k, item := range val {
			if kept == maxSize {
				break
			}
			out[k] = item
			kept++
		}
		out["truncated"] = true
		return out
	default:
		items := toAnySlice(v)
		if items == nil {
			return v
		}
		out := append([]any(nil), items[:maxSize]...)
		return append(out, marker)
	}
}

// estimateSize measures a payload: character count for text, element count
// for sequences, key count for mappings, 0 for anything else.
func estimateSize(v any) int {
	switch val := v.(type) {
	case string:
		return len([]rune(val))
	case []any:
		return len(val)
	case map[string]any:
		return len(val)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	return 0
}

// toAnySlice converts any slice or array value to []any, or nil when v is
// not sequence-shaped.
func toAnySlice(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
