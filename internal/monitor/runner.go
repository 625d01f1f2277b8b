package monitor

import (
	"context"
	"time"

	"github.com/vk/seqsweep/internal/launcher"
)

// reportingRunner decorates a launcher.Runner with run lifecycle events.
type reportingRunner struct {
	inner    launcher.Runner
	reporter *Reporter
}

// WrapRunner returns a Runner that reports run:start/run:finish around the
// inner runner. With a nil reporter the inner runner is returned as-is.
func WrapRunner(reporter *Reporter, inner launcher.Runner) launcher.Runner {
	if reporter == nil {
		return inner
	}
	return &reportingRunner{inner: inner, reporter: reporter}
}

// Run implements launcher.Runner.
func (r *reportingRunner) Run(ctx context.Context, inv launcher.Invocation) error {
	r.reporter.RunStart(inv.Preset)
	start := time.Now()
	err := r.inner.Run(ctx, inv)
	r.reporter.RunFinish(inv.Preset, err, time.Since(start))
	return err
}
