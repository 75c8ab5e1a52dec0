package toolcall

import (
	"math/rand/v2"
	"slices"
)

// SampleStrategy selects which elements survive sampling.
type SampleStrategy string

const (
	// SampleFirst keeps the leading n elements in order.
	SampleFirst SampleStrategy = "first"
	// SampleRandom keeps n elements chosen without a fixed seed.
	// Inject a source via WithSampleRand when reproducibility is required.
	SampleRandom SampleStrategy = "random"
	// SampleDistributed keeps n elements at stride floor(total/n) starting
	// at index 0.
	SampleDistributed SampleStrategy = "distributed"
)

type samplerOptions struct {
	rng *rand.Rand
}

// SampleOption configures the Sample processor.
type SampleOption func(*samplerOptions)

// WithSampleRand injects a random source so SampleRandom selection becomes
// reproducible (e.g. in tests or replayed conversations).
func WithSampleRand(rng *rand.Rand) SampleOption {
	return func(o *samplerOptions) {
		o.rng = rng
	}
}

// Sample returns a Processor that reduces oversized ordered sequences to n
// elements. Non-sequence payloads and sequences of length ≤ n pass through
// unchanged and unwrapped; sampled sequences are wrapped as
// {items, totalCount, sampled, strategy}.
func Sample(n int, strategy SampleStrategy, opts ...SampleOption) Processor {
	var o samplerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(entries []ResultEntry) []ResultEntry {
		return mapOk(entries, func(v any) any {
			return sampleValue(v, n, strategy, o.rng)
		})
	}
}

func sampleValue(v any, n int, strategy SampleStrategy, rng *rand.Rand) any {
	items := toAnySlice(v)
	if items == nil || n <= 0 || len(items) <= n {
		return v
	}
	var sampled []any
	switch strategy {
	case SampleRandom:
		sampled = pickRandom(items, n, rng)
	case SampleDistributed:
		sampled = pickDistributed(items, n)
	default:
		sampled = append([]any(nil), items[:n]...)
		strategy = SampleFirst
	}
	return map[string]any{
		"items":      sampled,
		"totalCount": len(items),
		"sampled":    true,
		"strategy":   string(strategy),
	}
}

// pickRandom selects n distinct elements, preserving their original order.
func pickRandom(items []any, n int, rng *rand.Rand) []any {
	var perm []int
	if rng != nil {
		perm = rng.Perm(len(items))
	} else {
		perm = rand.Perm(len(items))
	}
	idx := append([]int(nil), perm[:n]...)
	slices.Sort(idx)
	out := make([]any, n)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

func pickDistributed(items []any, n int) []any {
	stride := len(items) / n
	out := make([]any, 0, n)
	for i := 0; len(out) < n && i < len(items); i += stride {
		out = append(out, items[i])
	}
	return out
}
