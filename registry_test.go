package toolcall

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defNamed(t *testing.T, name string) *ToolDefinition {
	t.Helper()
	def, err := NewDefinition(name, "test tool", FuncTarget{Fn: nopFn})
	require.NoError(t, err)
	return def
}

func TestRegistry_RegisterGet(t *testing.T) {
	reg := NewRegistry()
	def := defNamed(t, "weather")
	reg.Register("support", def)

	got, ok := reg.Get("support", "weather")
	require.True(t, ok)
	require.Same(t, def, got)

	_, ok = reg.Get("support", "missing")
	assert.False(t, ok)
	_, ok = reg.Get("billing", "weather")
	assert.False(t, ok)
}

func TestRegistry_Register_Upsert(t *testing.T) {
	reg := NewRegistry()
	first := defNamed(t, "same")
	second := defNamed(t, "same")
	reg.Register("s", first)
	reg.Register("s", second)
	got, ok := reg.Get("s", "same")
	require.True(t, ok)
	require.Same(t, second, got)
	require.Len(t, reg.List("s"), 1)
}

func TestRegistry_List_SortedByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register("s", defNamed(t, "charlie"))
	reg.Register("s", defNamed(t, "alpha"))
	reg.Register("s", defNamed(t, "bravo"))
	defs := reg.List("s")
	require.Len(t, defs, 3)
	assert.Equal(t, "alpha", defs[0].Name())
	assert.Equal(t, "bravo", defs[1].Name())
	assert.Equal(t, "charlie", defs[2].Name())

	assert.Empty(t, reg.List("unknown"))
}

func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry()
	reg.Register("s", defNamed(t, "weather"))
	reg.Unregister("s", "weather")
	_, ok := reg.Get("s", "weather")
	assert.False(t, ok)

	// no-op when absent
	reg.Unregister("s", "weather")
	reg.Unregister("nope", "weather")
}

func TestRegistry_ClearScopes(t *testing.T) {
	reg := NewRegistry()
	reg.Register("a", defNamed(t, "one"))
	reg.Register("a", defNamed(t, "two"))
	reg.Register("b", defNamed(t, "three"))

	reg.Clear("a")
	assert.Empty(t, reg.List("a"))
	require.Len(t, reg.List("b"), 1)

	reg.ClearAll()
	assert.Empty(t, reg.List("b"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			reg.Register("s", defNamed(t, fmt.Sprintf("tool_%d", i)))
		})
		wg.Go(func() {
			reg.List("s")
		})
		wg.Go(func() {
			reg.Get("s", fmt.Sprintf("tool_%d", i))
		})
	}
	wg.Wait()
	assert.Len(t, reg.List("s"), 50)
}

func TestRegistry_Schemas(t *testing.T) {
	reg := NewRegistry()
	def, err := NewDefinition("lookup", "Lookup",
		FuncTarget{Fn: nopFn},
		ParameterSpec{Name: "city", Type: TypeString, Required: true},
	)
	require.NoError(t, err)
	reg.Register("s", def)

	schemas := reg.Schemas("s")
	require.Len(t, schemas, 1)
	assert.Equal(t, "lookup", schemas[0].Name)
	assert.Equal(t, []string{"city"}, schemas[0].Parameters.Required)
}
