// Package results provides an ephemeral, thread-safe, in-memory store for
// per-preset run outcomes.
//
// The store is created fresh for each sweep and holds mutable run state
// (status, error, duration) in a sync.Map. Workers write independent keys
// concurrently while the summary reader snapshots at the end, which is
// exactly the write-heavy, stable-key-space pattern sync.Map is built for.
package results

import (
	"sort"
	"sync"
	"time"
)

// Status is the lifecycle state of one preset run.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one preset run.
type Result struct {
	Preset   string
	Status   Status
	Err      error
	Duration time.Duration
}

// Store holds run results keyed by preset name.
type Store struct {
	results sync.Map // string -> Result
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Set records the result for a preset, replacing any previous state.
func (s *Store) Set(res Result) {
	s.results.Store(res.Preset, res)
}

// Get returns the result for a preset, if recorded.
func (s *Store) Get(preset string) (Result, bool) {
	v, ok := s.results.Load(preset)
	if !ok {
		return Result{}, false
	}
	return v.(Result), true
}

// Snapshot returns all recorded results, sorted by preset name for
// deterministic summaries.
func (s *Store) Snapshot() []Result {
	var out []Result
	s.results.Range(func(_, v any) bool {
		out = append(out, v.(Result))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Preset < out[j].Preset })
	return out
}

// Failed returns the results with StatusFailed, in name order.
func (s *Store) Failed() []Result {
	var out []Result
	for _, res := range s.Snapshot() {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}
