package sweep

import (
	"context"
	"time"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/launcher"
	"github.com/vk/seqsweep/internal/model"
	"github.com/vk/seqsweep/internal/results"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan <-chan *model.Preset, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for p := range readyChan {
		workerLogger := logger.With("workerID", workerID, "preset", p.Name)

		if ctx.Err() != nil {
			workerLogger.Debug("Sweep cancelled, skipping preset.")
			e.store.Set(results.Result{Preset: p.Name, Status: results.StatusSkipped, Err: ctx.Err()})
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Worker picked up preset for execution.")
		e.store.Set(results.Result{Preset: p.Name, Status: results.StatusRunning})

		inv := launcher.BuildInvocation(e.trainer, p, e.mode)
		start := time.Now()
		err := e.runner.Run(ctx, inv)
		elapsed := time.Since(start)

		if err != nil {
			workerLogger.Error("Preset run failed.", "error", err, "duration", elapsed)
			e.store.Set(results.Result{Preset: p.Name, Status: results.StatusFailed, Err: err, Duration: elapsed})
			cancel()
			e.wg.Done()
			continue
		}

		workerLogger.Info("Preset run succeeded.", "duration", elapsed)
		e.store.Set(results.Result{Preset: p.Name, Status: results.StatusDone, Duration: elapsed})
		e.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}
