// Package toolcall dispatches model-issued tool calls against declared tool
// definitions and reshapes oversized results before they re-enter the
// model's context window.
//
// # Overview
//
// LLMs produce tool calls as loosely-typed name/argument pairs. This package
// resolves each call against a registered ToolDefinition, canonicalizes and
// coerces the raw arguments, dispatches to a resource action or an
// in-process callable, and reports one ResultEntry per call with failures
// isolated per call: one fault never aborts the batch or the host process.
//
// Pipeline: ToolDefinition → Registry → Executor.ExecuteBatch (resolve,
// normalize, validate required, dispatch, wrap) → []ResultEntry →
// post-processors (Truncate, Sample, Summarize) → conversation context.
//
// # Key concepts
//
//   - Tagged execution target: a definition routes to exactly one of a
//     resource action (ActionTarget, run by an external ActionEngine) or a
//     callable (FuncTarget). Misconfiguration is rejected at build time.
//   - Partial success: ExecuteBatch reports every call in input order; error
//     entries carry structured, inspectable values keyed by call id.
//   - Result shaping: Truncate, Sample, and Summarize are pure, composable
//     Processor stages; error entries always pass through untouched.
//
// # Example
//
//	def, err := toolcall.NewDefinition("weather", "Get weather",
//	    toolcall.FuncTarget{Fn: func(_ context.Context, args map[string]any) (any, error) {
//	        return map[string]any{"temp": 22.5}, nil
//	    }},
//	    toolcall.ParameterSpec{Name: "city", Type: toolcall.TypeString, Required: true},
//	)
//	if err != nil { ... }
//	reg := toolcall.NewRegistry()
//	reg.Register("demo", def)
//	exec := toolcall.NewExecutor()
//	results := exec.ExecuteBatch(ctx,
//	    []toolcall.ToolCall{{ID: "1", Name: "weather", Args: map[string]any{"city": "Moscow"}}},
//	    reg.List("demo"), toolcall.ExecutionContext{})
package toolcall
