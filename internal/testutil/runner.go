package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/vk/seqsweep/internal/launcher"
)

// RecordingRunner is a launcher.Runner fake that records every invocation
// instead of executing anything. It is safe for concurrent use by sweep
// workers.
type RecordingRunner struct {
	// FailFor maps preset names to the error their run should return.
	FailFor map[string]error
	// Delay simulates run time, letting cancellation tests order events.
	Delay time.Duration

	mu          sync.Mutex
	invocations []launcher.Invocation
}

// Run implements launcher.Runner.
func (r *RecordingRunner) Run(ctx context.Context, inv launcher.Invocation) error {
	r.mu.Lock()
	r.invocations = append(r.invocations, inv)
	r.mu.Unlock()

	if r.Delay > 0 {
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err, ok := r.FailFor[inv.Preset]; ok {
		return err
	}
	return nil
}

// Invocations returns a copy of everything recorded so far.
func (r *RecordingRunner) Invocations() []launcher.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]launcher.Invocation(nil), r.invocations...)
}
