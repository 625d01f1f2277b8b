// Package testutil provides the shared harness and fakes for integration
// tests: a thread-safe log buffer, a recording launcher.Runner, and a
// helper that assembles an App from fixture sweep files in a temp dir.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/seqsweep/internal/app"
	"github.com/vk/seqsweep/internal/hclcfg"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Runner    *RecordingRunner
}

// RunLauncherTest provides a standardized harness for integration tests:
// it writes the given sweep fixture files into a temp dir, builds an App
// around a RecordingRunner, and executes it with a background context.
func RunLauncherTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunLauncherTestWithContext(context.Background(), t, files, cfg)
}

// RunLauncherTestWithRunner is RunLauncherTest with a caller-provided
// recording runner, letting tests plant failures or delays.
func RunLauncherTestWithRunner(t *testing.T, files map[string]string, cfg app.Config, runner *RecordingRunner) *HarnessResult {
	t.Helper()
	return runLauncherTest(context.Background(), t, files, cfg, runner)
}

// RunLauncherTestWithContext is RunLauncherTest with a caller-provided
// context.
func RunLauncherTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return runLauncherTest(ctx, t, files, cfg, &RecordingRunner{})
}

func runLauncherTest(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, runner *RecordingRunner) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	sweepDir := filepath.Join(tmpDir, "sweeps")
	require.NoError(t, os.Mkdir(sweepDir, 0o755))

	for name, content := range files {
		filePath := filepath.Join(sweepDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if len(files) > 0 && cfg.SweepPath == "" {
		cfg.SweepPath = sweepDir
	}
	if cfg.ModelRoot == "" {
		cfg.ModelRoot = filepath.Join(tmpDir, "models")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	validated, err := app.NewConfig(cfg)
	require.NoError(t, err, "harness received an invalid app config")

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, validated, hclcfg.NewLoader(), runner)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			Runner:    runner,
		}
	}

	runErr := testApp.Run(ctx)

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Runner:    runner,
	}
}
