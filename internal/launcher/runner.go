package launcher

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/seqsweep/internal/ctxlog"
)

// Runner executes one rendered invocation. Implementations: ExecRunner
// (real subprocess), DryRunner (print only) and the recording fake in
// testutil.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// DryRunner prints the rendered command line instead of executing it.
type DryRunner struct {
	Out io.Writer
}

// Run implements Runner.
func (r *DryRunner) Run(ctx context.Context, inv Invocation) error {
	ctxlog.FromContext(ctx).Info("Dry run, not invoking trainer.", "preset", inv.Preset)
	_, err := fmt.Fprintln(r.Out, inv.String())
	return err
}
