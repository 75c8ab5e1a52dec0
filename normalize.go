package toolcall

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// normalizeArgs canonicalizes every argument key and coerces values against
// the definition's parameter specs. Coercion is lenient: a value that cannot
// be parsed into the declared type passes through unchanged; the missing
// required check and the tool itself decide what to do with it. Values with
// no matching spec get an opportunistic integer parse, else pass through.
func normalizeArgs(args map[string]any, def *ToolDefinition) map[string]any {
	out := make(map[string]any, len(args))
	for key, val := range args {
		ck := canonicalKey(key)
		if spec, ok := def.param(ck); ok {
			out[ck] = coerceValue(val, spec.Type, spec.Elem)
			continue
		}
		out[ck] = coerceLoose(val)
	}
	return out
}

// missingRequired returns the names of required parameters present neither
// under their canonical key in normalized args nor under their literal
// string form in the raw args.
func missingRequired(raw, normalized map[string]any, def *ToolDefinition) []string {
	var missing []string
	for _, p := range def.params {
		if !p.Required {
			continue
		}
		if _, ok := normalized[p.Name]; ok {
			continue
		}
		if _, ok := raw[p.Name]; ok {
			continue
		}
		missing = append(missing, p.Name)
	}
	return missing
}

// canonicalKey lowers a key to snake_case: "customerId", "CustomerID" and
// "customer_id" all canonicalize to "customer_id".
func canonicalKey(key string) string {
	key = strings.TrimSpace(key)
	var b strings.Builder
	b.Grow(len(key) + 4)
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '_' &&
				(unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
					(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func coerceValue(v any, typ ParamType, elem ParamType) any {
	switch typ {
	case TypeInteger:
		return coerceInteger(v)
	case TypeFloat:
		return coerceFloat(v)
	case TypeBoolean:
		return coerceBoolean(v)
	case TypeUUID:
		return coerceUUID(v)
	case TypeArray:
		return coerceArray(v, elem)
	default:
		// string, atom, map and unrecognized types pass through.
		return v
	}
}

func coerceInteger(v any) any {
	switch n := v.(type) {
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i
		}
		return v
	case float64:
		// JSON numbers decode as float64; keep integral values as int64.
		if n == float64(int64(n)) {
			return int64(n)
		}
		return v
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		return v
	case int:
		return int64(n)
	default:
		return v
	}
}

func coerceFloat(v any) any {
	switch n := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return v
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return v
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return v
	}
}

func coerceBoolean(v any) any {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return v
}

// coerceUUID normalizes valid UUID strings to canonical lowercase form;
// anything else passes through for the tool to reject.
func coerceUUID(v any) any {
	if s, ok := v.(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			return id.String()
		}
	}
	return v
}

func coerceArray(v any, elem ParamType) any {
	items, ok := v.([]any)
	if !ok || elem == "" {
		return v
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = coerceValue(item, elem, "")
	}
	return out
}

// coerceLoose is applied to arguments with no matching parameter spec.
func coerceLoose(v any) any {
	if s, ok := v.(string); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i
		}
	}
	return v
}
