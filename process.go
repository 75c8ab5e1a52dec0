package toolcall

// Processor is a pure transform over an ordered list of result entries.
// Every stage preserves length and order, reshapes only successful
// payloads, and passes error entries through untouched. Stages compose in
// any caller-chosen order and are safe to call from any goroutine.
type Processor func(entries []ResultEntry) []ResultEntry

// Chain composes stages left to right into one Processor.
func Chain(stages ...Processor) Processor {
	return func(entries []ResultEntry) []ResultEntry {
		for _, stage := range stages {
			entries = stage(entries)
		}
		return entries
	}
}

// mapOk applies transform to the payload of each successful entry, copying
// the slice so callers' input is never mutated.
func mapOk(entries []ResultEntry, transform func(any) any) []ResultEntry {
	out := make([]ResultEntry, len(entries))
	for i, entry := range entries {
		if entry.Err != nil {
			out[i] = entry
			continue
		}
		entry.Value = transform(entry.Value)
		out[i] = entry
	}
	return out
}
