package toolcall

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type executorOptions struct {
	engine         ActionEngine
	maxConcurrency int
	recoverPanics  bool
	strict         bool
	logger         zerolog.Logger
	onBefore       func(context.Context, ToolCall)
	onAfter        func(context.Context, ToolCall, ResultEntry, time.Duration)
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorOptions)

// WithActionEngine sets the resource-action runtime for action-backed
// tools. Executors without an engine report ErrNoActionEngine for such calls.
func WithActionEngine(engine ActionEngine) ExecutorOption {
	return func(o *executorOptions) {
		o.engine = engine
	}
}

// WithMaxConcurrency limits concurrent per-call executions in a batch.
// Pass 0 or negative to disable the semaphore (unlimited concurrency).
func WithMaxConcurrency(n int) ExecutorOption {
	return func(o *executorOptions) {
		o.maxConcurrency = n
	}
}

// WithRecoverPanics enables per-call panic recovery (returns FaultError).
func WithRecoverPanics(enable bool) ExecutorOption {
	return func(o *executorOptions) {
		o.recoverPanics = enable
	}
}

// WithStrictValidation validates raw arguments against the tool's generated
// JSON Schema before coercion. Off by default: the lenient coercion path is
// the standard behavior, strict mode is for providers with structured output
// guarantees.
func WithStrictValidation() ExecutorOption {
	return func(o *executorOptions) {
		o.strict = true
	}
}

// WithLogger sets a zerolog logger for per-call start/end/error events.
// Default is a nop logger.
func WithLogger(logger zerolog.Logger) ExecutorOption {
	return func(o *executorOptions) {
		o.logger = logger
	}
}

// WithOnBeforeExecute sets a hook called before each call is dispatched.
func WithOnBeforeExecute(fn func(context.Context, ToolCall)) ExecutorOption {
	return func(o *executorOptions) {
		o.onBefore = fn
	}
}

// WithOnAfterExecute sets a hook called after each call finishes with its
// result entry and duration, on both success and error paths.
func WithOnAfterExecute(fn func(context.Context, ToolCall, ResultEntry, time.Duration)) ExecutorOption {
	return func(o *executorOptions) {
		o.onAfter = fn
	}
}
