package toolcall

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoDef(t *testing.T, name string, params ...ParameterSpec) *ToolDefinition {
	t.Helper()
	def, err := NewDefinition(name, "echoes its args",
		FuncTarget{Fn: func(_ context.Context, args map[string]any) (any, error) {
			return args, nil
		}}, params...)
	require.NoError(t, err)
	return def
}

func TestExecutor_ToolNotFound(t *testing.T) {
	exec := NewExecutor()
	res := exec.Execute(context.Background(),
		ToolCall{ID: "1", Name: "missing", Args: map[string]any{}},
		nil, ExecutionContext{})
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrToolNotFound)
	assert.Contains(t, res.ErrorMessage(), "not found")
	assert.Equal(t, "1", res.CallID)
}

func TestExecutor_MissingRequiredParameters(t *testing.T) {
	def := echoDef(t, "lookup",
		ParameterSpec{Name: "customer_id", Type: TypeString, Required: true})
	exec := NewExecutor()

	res := exec.Execute(context.Background(),
		ToolCall{ID: "1", Name: "lookup", Args: map[string]any{}},
		[]*ToolDefinition{def}, ExecutionContext{})
	require.Error(t, res.Err)
	var mpe *MissingParamsError
	require.ErrorAs(t, res.Err, &mpe)
	assert.Equal(t, []string{"customer_id"}, mpe.Names)
	assert.Contains(t, res.ErrorMessage(), "missing required parameters")

	// canonical key form succeeds
	res = exec.Execute(context.Background(),
		ToolCall{ID: "2", Name: "lookup", Args: map[string]any{"customer_id": "c-1"}},
		[]*ToolDefinition{def}, ExecutionContext{})
	require.NoError(t, res.Err)

	// camelCase string form succeeds too
	res = exec.Execute(context.Background(),
		ToolCall{ID: "3", Name: "lookup", Args: map[string]any{"customerId": "c-1"}},
		[]*ToolDefinition{def}, ExecutionContext{})
	require.NoError(t, res.Err)
}

func TestExecutor_BatchOrderAndIsolation(t *testing.T) {
	healthy := echoDef(t, "healthy")
	failing, err := NewDefinition("failing", "always fails",
		FuncTarget{Fn: func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		}})
	require.NoError(t, err)
	panicking, err := NewDefinition("panicking", "panics internally",
		FuncTarget{Fn: func(_ context.Context, _ map[string]any) (any, error) {
			panic("oops")
		}})
	require.NoError(t, err)

	exec := NewExecutor()
	defs := []*ToolDefinition{healthy, failing, panicking}
	calls := []ToolCall{
		{ID: "1", Name: "failing", Args: map[string]any{}},
		{ID: "2", Name: "healthy", Args: map[string]any{"k": "v"}},
		{ID: "3", Name: "panicking", Args: map[string]any{}},
		{ID: "4", Name: "healthy", Args: map[string]any{}},
	}
	results := exec.ExecuteBatch(context.Background(), calls, defs, ExecutionContext{})
	require.Len(t, results, 4)
	for i, call := range calls {
		assert.Equal(t, call.ID, results[i].CallID)
	}
	require.Error(t, results[0].Err)
	assert.True(t, IsFault(results[0].Err))
	require.NoError(t, results[1].Err)
	assert.Equal(t, map[string]any{"k": "v"}, results[1].Value)
	require.Error(t, results[2].Err)
	assert.Contains(t, results[2].ErrorMessage(), "panic")
	require.NoError(t, results[3].Err)
}

func TestExecutor_WrapsNonMapResults(t *testing.T) {
	def, err := NewDefinition("count", "returns a number",
		FuncTarget{Fn: func(_ context.Context, _ map[string]any) (any, error) {
			return 42, nil
		}})
	require.NoError(t, err)
	exec := NewExecutor()
	res := exec.Execute(context.Background(),
		ToolCall{ID: "1", Name: "count", Args: map[string]any{}},
		[]*ToolDefinition{def}, ExecutionContext{})
	require.NoError(t, res.Err)
	assert.Equal(t, map[string]any{"result": 42}, res.Value)
}

func TestExecutor_FuncExtraArgs(t *testing.T) {
	var seen map[string]any
	def, err := NewDefinition("configured", "callable with extra args",
		FuncTarget{
			Fn: func(_ context.Context, args map[string]any) (any, error) {
				seen = args
				return nil, nil
			},
			ExtraArgs: map[string]any{"region": "eu-west", "limit": 10},
		},
		ParameterSpec{Name: "limit", Type: TypeInteger})
	require.NoError(t, err)
	exec := NewExecutor()
	res := exec.Execute(context.Background(),
		ToolCall{ID: "1", Name: "configured", Args: map[string]any{"limit": "3"}},
		[]*ToolDefinition{def}, ExecutionContext{})
	require.NoError(t, res.Err)
	// extra args win over call args
	assert.Equal(t, 10, seen["limit"])
	assert.Equal(t, "eu-west", seen["region"])
}

func TestExecutor_Hooks(t *testing.T) {
	def := echoDef(t, "echo")
	var before, after atomic.Int32
	var lastEntry ResultEntry
	var lastDur time.Duration
	exec := NewExecutor(
		WithOnBeforeExecute(func(_ context.Context, call ToolCall) {
			before.Add(1)
		}),
		WithOnAfterExecute(func(_ context.Context, _ ToolCall, entry ResultEntry, dur time.Duration) {
			after.Add(1)
			lastEntry = entry
			lastDur = dur
		}),
	)
	res := exec.Execute(context.Background(),
		ToolCall{ID: "h1", Name: "echo", Args: map[string]any{}},
		[]*ToolDefinition{def}, ExecutionContext{})
	require.NoError(t, res.Err)
	assert.Equal(t, int32(1), before.Load())
	assert.Equal(t, int32(1), after.Load())
	assert.Equal(t, "h1", lastEntry.CallID)
	assert.GreaterOrEqual(t, lastDur, time.Duration(0))
}

func TestExecutor_DeadlineHonored(t *testing.T) {
	def, err := NewDefinition("slow", "waits for ctx",
		FuncTarget{Fn: func(ctx context.Context, _ map[string]any) (any, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return map[string]any{}, nil
			}
		}})
	require.NoError(t, err)
	exec := NewExecutor()
	res := exec.Execute(context.Background(),
		ToolCall{ID: "1", Name: "slow", Args: map[string]any{}},
		[]*ToolDefinition{def},
		ExecutionContext{Deadline: time.Now().Add(20 * time.Millisecond)})
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestExecutor_MaxConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	def, err := NewDefinition("slow", "tracks concurrency",
		FuncTarget{Fn: func(_ context.Context, _ map[string]any) (any, error) {
			now := running.Add(1)
			for {
				p := peak.Load()
				if now <= p || peak.CompareAndSwap(p, now) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return map[string]any{}, nil
		}})
	require.NoError(t, err)
	exec := NewExecutor(WithMaxConcurrency(2))
	calls := make([]ToolCall, 8)
	for i := range calls {
		calls[i] = ToolCall{ID: string(rune('a' + i)), Name: "slow", Args: map[string]any{}}
	}
	results := exec.ExecuteBatch(context.Background(), calls, []*ToolDefinition{def}, ExecutionContext{})
	require.Len(t, results, 8)
	for _, res := range results {
		require.NoError(t, res.Err)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestExecutor_EmptyBatch(t *testing.T) {
	exec := NewExecutor()
	assert.Empty(t, exec.ExecuteBatch(context.Background(), nil, nil, ExecutionContext{}))
}

func TestExecutor_RecoverPanicsDisabled(t *testing.T) {
	def, err := NewDefinition("panicking", "panics",
		FuncTarget{Fn: func(_ context.Context, _ map[string]any) (any, error) {
			panic("boom")
		}})
	require.NoError(t, err)
	exec := NewExecutor(WithRecoverPanics(false), WithMaxConcurrency(1))
	assert.Panics(t, func() {
		exec.dispatch(context.Background(),
			ToolCall{ID: "1", Name: "panicking", Args: map[string]any{}},
			map[string]*ToolDefinition{"panicking": def}, ExecutionContext{})
	})
}
