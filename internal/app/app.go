package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/hclcfg"
	"github.com/vk/seqsweep/internal/launcher"
	"github.com/vk/seqsweep/internal/model"
	"github.com/vk/seqsweep/internal/preset"
	"github.com/vk/seqsweep/internal/results"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	sweep      *model.Sweep
	runner     launcher.Runner
	store      *results.Store
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger and the complete set of
// known presets (builtin plus sweep files). A nil runner selects the
// default for the config (dry-run printer or the real exec runner);
// tests inject a recording fake here.
func NewApp(outW io.Writer, cfg *Config, loader *hclcfg.Loader, runner launcher.Runner) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	sweep := model.NewSweep()
	for _, p := range preset.Builtin() {
		sweep.Upsert(p)
	}

	vars := hclcfg.Variables{
		Mode:      string(cfg.Mode),
		DataDir:   firstNonEmpty(cfg.DataDir, sweep.Trainer.DataDir),
		ModelRoot: firstNonEmpty(cfg.ModelRoot, sweep.Trainer.ModelRoot),
	}

	var paths []string
	if cfg.SweepPath != "" {
		paths = append(paths, cfg.SweepPath)
	}
	sweep, err := loader.Load(ctx, sweep, vars, paths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load sweep configuration: %w", err))
	}
	logger.Debug("Sweep configuration loaded.", "presets", len(sweep.Presets))

	// CLI trainer overrides win over sweep files.
	applyTrainerOverrides(&sweep.Trainer, cfg)

	if runner == nil {
		if cfg.DryRun {
			runner = &launcher.DryRunner{Out: outW}
		} else {
			runner = launcher.NewExecRunner()
		}
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		sweep:  sweep,
		runner: runner,
		store:  results.New(),
	}
}

// Sweep returns the loaded sweep model. This is primarily for testing.
func (a *App) Sweep() *model.Sweep {
	return a.sweep
}

// Results returns the run result store. This is primarily for testing.
func (a *App) Results() *results.Store {
	return a.store
}

// applyTrainerOverrides copies non-empty CLI overrides onto the trainer.
func applyTrainerOverrides(t *model.Trainer, cfg *Config) {
	if cfg.Python != "" {
		t.Python = cfg.Python
	}
	if cfg.Script != "" {
		t.Script = cfg.Script
	}
	if cfg.DataDir != "" {
		t.DataDir = cfg.DataDir
	}
	if cfg.ModelRoot != "" {
		t.ModelRoot = cfg.ModelRoot
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
