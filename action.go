package toolcall

import (
	"context"
	"strings"
)

// ActionEngine is the external resource-action runtime invoked by
// action-backed tools. Implementations own the business logic; the executor
// only builds requests, locates mutation targets, and normalizes results.
type ActionEngine interface {
	// Run executes the action and returns one of the shapes understood by
	// normalizeActionResult (BulkResult, PageResult, RecordResult, a plain
	// field map) or any other value, which is wrapped as {"result": v}.
	Run(ctx context.Context, req ActionRequest) (any, error)
	// Find locates a record by id for update/destroy dispatch. A nil record
	// without error is treated as not found.
	Find(ctx context.Context, resource string, id any) (map[string]any, error)
}

// ActionRequest is the fully-resolved input handed to the ActionEngine.
type ActionRequest struct {
	Resource string
	Action   string
	Kind     ActionKind
	Args     map[string]any
	// Record is the located mutation target; nil for create/read actions.
	Record map[string]any
	Actor  any
	Tenant any
}

// BulkResult is the heterogeneous return shape of bulk actions.
type BulkResult struct {
	Records []map[string]any
	Errors  []string
}

// PageResult is the return shape of paginated reads. Count is meaningful
// only when HasCount is set; offset-less pagination reports More instead.
type PageResult struct {
	Results  []map[string]any
	Count    int
	HasCount bool
	More     bool
}

// RecordResult is a single structured record with engine bookkeeping kept
// separate from user-visible fields.
type RecordResult struct {
	Fields map[string]any
	Meta   map[string]any
}

// bookkeepingPrefix marks engine-internal keys stripped from record maps
// before results re-enter the conversation.
const bookkeepingPrefix = "__"

// normalizeActionResult flattens the engine's heterogeneous return shapes
// into plain field mappings.
func normalizeActionResult(v any) any {
	switch res := v.(type) {
	case BulkResult:
		return normalizeBulk(&res)
	case *BulkResult:
		return normalizeBulk(res)
	case PageResult:
		return normalizePage(&res)
	case *PageResult:
		return normalizePage(res)
	case RecordResult:
		return stripBookkeeping(res.Fields)
	case *RecordResult:
		return stripBookkeeping(res.Fields)
	case map[string]any:
		return stripBookkeeping(res)
	default:
		return v
	}
}

func normalizeBulk(res *BulkResult) map[string]any {
	records := make([]any, 0, len(res.Records))
	for _, rec := range res.Records {
		records = append(records, stripBookkeeping(rec))
	}
	return map[string]any{
		"records": records,
		"count":   len(res.Records),
		"errors":  append([]string(nil), res.Errors...),
	}
}

func normalizePage(res *PageResult) map[string]any {
	results := make([]any, 0, len(res.Results))
	for _, rec := range res.Results {
		results = append(results, stripBookkeeping(rec))
	}
	out := map[string]any{"results": results}
	if res.HasCount {
		out["count"] = res.Count
	} else {
		out["more"] = res.More
	}
	return out
}

func stripBookkeeping(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.HasPrefix(k, bookkeepingPrefix) {
			continue
		}
		out[k] = v
	}
	return out
}
