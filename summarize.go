package toolcall

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// SummarizeStrategy pins Summarize to one payload shape. SummarizeAuto
// dispatches on the runtime shape; a pinned strategy restricts dispatch to
// matching payloads and sends mismatches to the generic "other" branch.
type SummarizeStrategy string

const (
	SummarizeAuto SummarizeStrategy = "auto"
	SummarizeList SummarizeStrategy = "list"
	SummarizeMap  SummarizeStrategy = "map"
	SummarizeText SummarizeStrategy = "text"
)

// SummarizeOptions configures the Summarize processor. Zero fields take
// the defaults documented on each field.
type SummarizeOptions struct {
	// Strategy defaults to SummarizeAuto.
	Strategy SummarizeStrategy
	// SampleSize is how many items/keys are carried into the summary.
	// Defaults to 5.
	SampleSize int
	// MaxSummarySize bounds the serialized size of a built summary in
	// bytes. Summaries over the ceiling drop their sample field and carry a
	// flag plus reason instead. Defaults to 500.
	MaxSummarySize int
	// MaxRecursionDepth bounds nested summarization; past it raw sample
	// values are returned instead of summaries. Defaults to 3.
	MaxRecursionDepth int
}

func (o *SummarizeOptions) defaults() {
	if o.Strategy == "" {
		o.Strategy = SummarizeAuto
	}
	if o.SampleSize <= 0 {
		o.SampleSize = 5
	}
	if o.MaxSummarySize <= 0 {
		o.MaxSummarySize = 500
	}
	if o.MaxRecursionDepth <= 0 {
		o.MaxRecursionDepth = 3
	}
}

// Summarize returns a Processor that replaces successful payloads with
// compact shape-aware summaries suitable for reinsertion into a
// conversation.
func Summarize(opts SummarizeOptions) Processor {
	opts.defaults()
	return func(entries []ResultEntry) []ResultEntry {
		return mapOk(entries, func(v any) any {
			return summarizeValue(v, opts, 0)
		})
	}
}

// shape is the closed classification Summarize dispatches on, computed once
// per value.
type shape int

const (
	shapeScalar shape = iota
	shapeSequence
	shapeMapping
	shapeText
	shapeComposite
)

func classify(v any) shape {
	switch v.(type) {
	case nil:
		return shapeScalar
	case string:
		return shapeText
	case map[string]any:
		return shapeMapping
	case []any:
		return shapeSequence
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return shapeScalar
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return shapeSequence
	case reflect.Map:
		return shapeMapping
	case reflect.Struct:
		return shapeComposite
	default:
		return shapeScalar
	}
}

func summarizeValue(v any, opts SummarizeOptions, depth int) any {
	sh := classify(v)
	if opts.Strategy != SummarizeAuto && !strategyMatches(opts.Strategy, sh) {
		return summarizeOther(v)
	}
	switch sh {
	case shapeSequence:
		return capSummary(summarizeList(toAnySlice(v), opts, depth), opts)
	case shapeMapping:
		return capSummary(summarizeMap(toStringMap(v), opts, depth, ""), opts)
	case shapeText:
		return capSummary(summarizeText(v.(string), opts), opts)
	case shapeComposite:
		fields, name := flattenComposite(v)
		return capSummary(summarizeMap(fields, opts, depth, name), opts)
	default:
		return summarizeOther(v)
	}
}

func strategyMatches(strategy SummarizeStrategy, sh shape) bool {
	switch strategy {
	case SummarizeList:
		return sh == shapeSequence
	case SummarizeMap:
		return sh == shapeMapping || sh == shapeComposite
	case SummarizeText:
		return sh == shapeText
	default:
		return true
	}
}

// summarizeNested summarizes sample members one level deeper. Scalars are
// their own summary; past the recursion bound raw values are returned
// instead of summaries.
func summarizeNested(v any, opts SummarizeOptions, depth int) any {
	if classify(v) == shapeScalar {
		return v
	}
	if depth+1 >= opts.MaxRecursionDepth {
		return v
	}
	return summarizeValue(v, opts, depth+1)
}

func summarizeList(items []any, opts SummarizeOptions, depth int) map[string]any {
	n := min(opts.SampleSize, len(items))
	sample := make([]any, n)
	for i := range n {
		sample[i] = summarizeNested(items[i], opts, depth)
	}
	return map[string]any{
		"type":    "list",
		"count":   len(items),
		"sample":  sample,
		"summary": fmt.Sprintf("list with %d items", len(items)),
	}
}

func summarizeMap(fields map[string]any, opts SummarizeOptions, depth int, recordType string) map[string]any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	n := min(opts.SampleSize, len(keys))
	keys = keys[:n]
	sample := make(map[string]any, n)
	for _, k := range keys {
		sample[k] = summarizeNested(fields[k], opts, depth)
	}
	out := map[string]any{
		"type":    "map",
		"count":   len(fields),
		"keys":    keys,
		"sample":  sample,
		"summary": fmt.Sprintf("map with %d keys", len(fields)),
	}
	if recordType != "" {
		out["record"] = recordType
		out["summary"] = fmt.Sprintf("%s record with %d fields", recordType, len(fields))
	}
	return out
}

func summarizeText(s string, opts SummarizeOptions) map[string]any {
	runes := []rune(s)
	excerptLen := min(100, opts.MaxSummarySize-50)
	excerptLen = max(excerptLen, 0)
	excerptLen = min(excerptLen, len(runes))
	return map[string]any{
		"type":    "text",
		"length":  len(runes),
		"excerpt": string(runes[:excerptLen]),
		"summary": fmt.Sprintf("text of %d characters", len(runes)),
	}
}

func summarizeOther(v any) map[string]any {
	desc := fmt.Sprintf("%T value", v)
	if v == nil {
		desc = "nil value"
	}
	return map[string]any{
		"type":    "other",
		"summary": desc + ": " + preview(v, 80),
	}
}

func preview(v any, limit int) string {
	s := fmt.Sprint(v)
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}

// capSummary enforces the summary size ceiling: a built summary whose
// serialized form exceeds MaxSummarySize loses its sample field and carries
// a flag plus reason, so summaries never silently exceed the ceiling.
func capSummary(summary map[string]any, opts SummarizeOptions) map[string]any {
	if serializedSize(summary) <= opts.MaxSummarySize {
		return summary
	}
	delete(summary, "sample")
	summary["sampleOmitted"] = true
	summary["reason"] = fmt.Sprintf("summary exceeded %d bytes", opts.MaxSummarySize)
	return summary
}

// serializedSize is the canonical JSON byte count of the summary, falling
// back to the formatted length for unmarshalable values.
func serializedSize(v any) int {
	data, err := json.Marshal(v)
	if err != nil {
		return len(fmt.Sprint(v))
	}
	return len(data)
}

// toStringMap converts mapping-shaped values to map[string]any.
func toStringMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map {
		return nil
	}
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
	}
	return out
}

// flattenComposite converts a struct (or pointer to one) into a plain field
// mapping plus its type name. JSON tags win over field names; unexported
// fields are skipped.
func flattenComposite(v any) (map[string]any, string) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	rt := rv.Type()
	fields := make(map[string]any, rt.NumField())
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
			name = tag
		}
		fields[name] = rv.Field(i).Interface()
	}
	return fields, rt.Name()
}
