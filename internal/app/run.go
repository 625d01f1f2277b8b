package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/dataset"
	"github.com/vk/seqsweep/internal/model"
	"github.com/vk/seqsweep/internal/monitor"
	"github.com/vk/seqsweep/internal/preset"
	"github.com/vk/seqsweep/internal/sweep"
)

// Run executes the main application logic for the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	if a.config.Mode == model.ModePrepare {
		return a.runPrepare(ctx)
	}
	return a.runLaunch(ctx)
}

// runPrepare runs the dataset pipeline instead of the trainer.
func (a *App) runPrepare(ctx context.Context) error {
	dataDir := a.sweep.Trainer.DataDir

	if a.config.Fetch {
		if err := dataset.FetchCorpus(ctx, http.DefaultClient, dataset.DefaultCorpusURL, dataDir); err != nil {
			return fmt.Errorf("corpus fetch failed: %w", err)
		}
	}

	fromVocab, toVocab := a.vocabSizes(ctx)
	_, err := dataset.Prepare(ctx, dataset.Config{
		WorkingDir:      dataDir,
		DialogsDir:      filepath.Join(dataDir, "dialogs"),
		FromVocabSize:   fromVocab,
		ToVocabSize:     toVocab,
		NormalizeDigits: true,
	})
	if err != nil {
		return fmt.Errorf("dataset preparation failed: %w", err)
	}
	return nil
}

// vocabSizes picks the vocabulary caps for prepare mode: the selected
// preset's when a selector was given, the documented defaults otherwise.
func (a *App) vocabSizes(ctx context.Context) (int, int) {
	if a.config.Selector != "" {
		if p, err := preset.Resolve(a.sweep, a.config.Selector); err == nil {
			return p.FromVocabSize, p.ToVocabSize
		}
		ctxlog.FromContext(ctx).Warn("Selector not found, preparing with default vocabulary sizes.", "selector", a.config.Selector)
	}
	return model.DefaultVocabSize, model.DefaultVocabSize
}

// runLaunch resolves the presets to run and drives the sweep executor.
func (a *App) runLaunch(ctx context.Context) error {
	var presets []*model.Preset
	if a.config.All {
		presets = a.sweep.Presets
	} else {
		p, err := preset.Resolve(a.sweep, a.config.Selector)
		if err != nil {
			// The trainer must not be invoked for an unrecognized selector.
			return err
		}
		presets = []*model.Preset{p}
	}

	runner := a.runner
	var reporter *monitor.Reporter
	if a.config.MonitorURL != "" {
		var err error
		reporter, err = monitor.Connect(ctx, a.config.MonitorURL)
		if err != nil {
			a.logger.Warn("Sweep monitor unavailable, continuing without it.", "error", err)
		} else {
			defer reporter.Close()
			runner = monitor.WrapRunner(reporter, runner)
		}
	}

	a.logger.Info("🚀 Starting sweep execution...", "presets", len(presets), "mode", a.config.Mode)
	reporter.SweepStart(string(a.config.Mode), len(presets))

	exec := sweep.New(a.sweep.Trainer, a.config.Mode, runner, a.store, a.config.WorkerCount)
	runErr := exec.Run(ctx, presets)

	for _, res := range a.store.Snapshot() {
		a.logger.Info("Run result.", "preset", res.Preset, "status", res.Status, "duration", res.Duration)
	}
	reporter.SweepFinish(len(a.store.Failed()))

	if runErr != nil {
		return fmt.Errorf("execution failed: %w", runErr)
	}
	a.logger.Info("🏁 Execution finished.")
	return nil
}
