package toolcall

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Executor resolves model-issued calls against known definitions,
// normalizes arguments, dispatches to a resource action or a callable, and
// isolates failures per call. It is stateless apart from its options and a
// compiled-schema cache, and safe for concurrent use.
type Executor struct {
	opts executorOptions

	schemaMu sync.Mutex
	schemas  map[*ToolDefinition]*compiledSchema
}

// NewExecutor creates an Executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	o := executorOptions{
		maxConcurrency: 10,
		recoverPanics:  true,
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Executor{
		opts:    o,
		schemas: make(map[*ToolDefinition]*compiledSchema),
	}
}

// ExecuteBatch runs all calls against defs and returns one ResultEntry per
// call, in input order regardless of execution order. Calls run
// concurrently up to WithMaxConcurrency; a fault in one call never prevents
// the others from running to completion and being reported.
func (x *Executor) ExecuteBatch(ctx context.Context, calls []ToolCall, defs []*ToolDefinition, ec ExecutionContext) []ResultEntry {
	if len(calls) == 0 {
		return nil
	}
	byName := make(map[string]*ToolDefinition, len(defs))
	for _, def := range defs {
		if def != nil {
			byName[def.Name()] = def
		}
	}

	var sem chan struct{}
	if x.opts.maxConcurrency > 0 {
		sem = make(chan struct{}, x.opts.maxConcurrency)
	}

	results := make([]ResultEntry, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Go(func() {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = x.executeOne(ctx, call, byName, ec)
		})
	}
	wg.Wait()
	return results
}

// Execute runs a single call. Equivalent to a one-element ExecuteBatch.
func (x *Executor) Execute(ctx context.Context, call ToolCall, defs []*ToolDefinition, ec ExecutionContext) ResultEntry {
	res := x.ExecuteBatch(ctx, []ToolCall{call}, defs, ec)
	return res[0]
}

func (x *Executor) executeOne(ctx context.Context, call ToolCall, byName map[string]*ToolDefinition, ec ExecutionContext) ResultEntry {
	if !ec.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, ec.Deadline)
		defer cancel()
	}

	if x.opts.onBefore != nil {
		x.opts.onBefore(ctx, call)
	}
	x.opts.logger.Debug().Str("tool", call.Name).Str("call_id", call.ID).Msg("tool call start")

	start := time.Now()
	entry := x.dispatch(ctx, call, byName, ec)
	dur := time.Since(start)

	if entry.Err != nil {
		x.opts.logger.Error().Str("tool", call.Name).Str("call_id", call.ID).
			Dur("duration", dur).Err(entry.Err).Msg("tool call failed")
	} else {
		x.opts.logger.Debug().Str("tool", call.Name).Str("call_id", call.ID).
			Dur("duration", dur).Msg("tool call end")
	}
	if x.opts.onAfter != nil {
		x.opts.onAfter(ctx, call, entry, dur)
	}
	return entry
}

func (x *Executor) dispatch(ctx context.Context, call ToolCall, byName map[string]*ToolDefinition, ec ExecutionContext) (entry ResultEntry) {
	entry = ResultEntry{CallID: call.ID, ToolName: call.Name}

	def, ok := byName[call.Name]
	if !ok {
		entry.Err = errors.WithMessagef(ErrToolNotFound, "%q", call.Name)
		return entry
	}

	if x.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				entry.Value = nil
				entry.Err = &FaultError{Err: &panicError{p: p}}
			}
		}()
	}

	if x.opts.strict {
		if err := x.validateStrict(def, call.Args); err != nil {
			entry.Err = err
			return entry
		}
	}

	args := normalizeArgs(call.Args, def)
	if missing := missingRequired(call.Args, args, def); len(missing) > 0 {
		entry.Err = &MissingParamsError{Names: missing}
		return entry
	}

	var (
		result any
		err    error
	)
	switch target := def.Target().(type) {
	case ActionTarget:
		result, err = x.runAction(ctx, target, args, ec)
	case FuncTarget:
		result, err = runFunc(ctx, target, args)
	default:
		// unreachable: NewDefinition rejects unknown targets
		err = errors.WithMessagef(ErrInvalidToolConfiguration, "tool %q", def.Name())
	}
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Value = wrapResult(result)
	return entry
}

func (x *Executor) runAction(ctx context.Context, target ActionTarget, args map[string]any, ec ExecutionContext) (any, error) {
	if x.opts.engine == nil {
		return nil, errors.WithMessagef(ErrNoActionEngine, "action %s.%s", target.Resource, target.Action)
	}
	kind := target.Kind
	if kind == "" {
		kind = ActionRead
	}
	req := ActionRequest{
		Resource: target.Resource,
		Action:   target.Action,
		Kind:     kind,
		Args:     args,
		Actor:    ec.Actor,
		Tenant:   ec.Tenant,
	}
	if kind == ActionUpdate || kind == ActionDestroy {
		record, err := x.locateRecord(ctx, target.Resource, args, ec)
		if err != nil {
			return nil, err
		}
		req.Record = record
	}
	result, err := x.opts.engine.Run(ctx, req)
	if err != nil {
		return nil, &FaultError{Err: err}
	}
	return normalizeActionResult(result), nil
}

// locateRecord resolves the mutation target: a context-supplied record wins,
// else an id-keyed engine lookup. Lookup failure is fatal to this call only.
func (x *Executor) locateRecord(ctx context.Context, resource string, args map[string]any, ec ExecutionContext) (map[string]any, error) {
	if ec.Record != nil {
		return ec.Record, nil
	}
	id, ok := args["id"]
	if !ok {
		return nil, errors.WithMessagef(ErrRecordNotFound, "%s: no target record and no id argument", resource)
	}
	record, err := x.opts.engine.Find(ctx, resource, id)
	if err != nil {
		return nil, errors.WithMessagef(ErrRecordNotFound, "%s id=%v: %v", resource, id, err)
	}
	if record == nil {
		return nil, errors.WithMessagef(ErrRecordNotFound, "%s id=%v", resource, id)
	}
	return record, nil
}

func runFunc(ctx context.Context, target FuncTarget, args map[string]any) (any, error) {
	if len(target.ExtraArgs) > 0 {
		merged := make(map[string]any, len(args)+len(target.ExtraArgs))
		for k, v := range args {
			merged[k] = v
		}
		for k, v := range target.ExtraArgs {
			merged[k] = v
		}
		args = merged
	}
	result, err := target.Fn(ctx, args)
	if err != nil {
		return nil, &FaultError{Err: err}
	}
	return result, nil
}

// wrapResult uniformly shapes successful payloads: mappings pass through,
// everything else is wrapped as {"result": v}.
func wrapResult(v any) any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{"result": v}
}
