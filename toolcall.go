package toolcall

import (
	"time"
)

// ToolCall is a single invocation request as produced by the LLM.
// Args holds the raw arguments exactly as the model issued them; the
// executor canonicalizes and coerces them against the tool's parameter
// specs before dispatch.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ResultEntry is the outcome of one tool call, keyed by its correlation ID.
// Exactly one of Value and Err is meaningful: Err == nil means success and
// Value carries the (usually map-shaped) payload. Post-processors never
// touch entries with a non-nil Err.
type ResultEntry struct {
	CallID   string
	ToolName string
	Value    any
	Err      error
}

// IsError reports whether the entry carries a failure.
func (e ResultEntry) IsError() bool { return e.Err != nil }

// ErrorMessage returns the failure message, or "" for successful entries.
// This is the string form handed back to the conversation boundary.
func (e ResultEntry) ErrorMessage() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// ExecutionContext carries per-batch ambient data: who is calling, under
// which tenant, an optional deadline, and an optional pre-resolved target
// record for update/destroy actions. The zero value is valid.
type ExecutionContext struct {
	Actor    any
	Tenant   any
	Deadline time.Time
	// Record, when set, is used as the mutation target for update/destroy
	// actions instead of an id-keyed engine lookup.
	Record map[string]any
}
