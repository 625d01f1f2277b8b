// Package sweep runs a set of presets through the launcher with a bounded
// worker pool. Runs are independent (no data flows between presets), so
// the pool is flat: a buffered ready channel drained by N workers, with
// fail-fast cancellation on the first error.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/launcher"
	"github.com/vk/seqsweep/internal/model"
	"github.com/vk/seqsweep/internal/results"
)

// Executor orchestrates a multi-preset run.
type Executor struct {
	trainer model.Trainer
	mode    model.Mode
	runner  launcher.Runner
	store   *results.Store
	workers int

	wg sync.WaitGroup
}

// New creates an Executor. workers below 1 is clamped to 1: training runs
// are GPU-bound, so concurrency stays opt-in.
func New(trainer model.Trainer, mode model.Mode, runner launcher.Runner, store *results.Store, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		trainer: trainer,
		mode:    mode,
		runner:  runner,
		store:   store,
		workers: workers,
	}
}

// Run executes every preset and blocks until all workers drain. The first
// failure cancels the context; presets not yet started are recorded as
// skipped. Returns an error when any run failed.
func (e *Executor) Run(ctx context.Context, presets []*model.Preset) error {
	logger := ctxlog.FromContext(ctx)
	if len(presets) == 0 {
		logger.Warn("No presets to run, execution not required.")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readyChan := make(chan *model.Preset, len(presets))
	for _, p := range presets {
		readyChan <- p
	}
	close(readyChan)

	e.wg.Add(len(presets))
	logger.Info("Starting sweep.", "presets", len(presets), "workers", e.workers, "mode", e.mode)
	for i := 0; i < e.workers; i++ {
		go e.worker(ctx, readyChan, cancel, i)
	}
	e.wg.Wait()

	failed := e.store.Failed()
	if len(failed) > 0 {
		return fmt.Errorf("sweep finished with %d failed run(s), first failure: %w", len(failed), failed[0].Err)
	}
	return nil
}
