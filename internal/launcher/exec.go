package launcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/vk/seqsweep/internal/checkpoint"
	"github.com/vk/seqsweep/internal/ctxlog"
)

// ExecRunner launches the external entry point as a subprocess, creating
// the checkpoint directory first and streaming the trainer's output into
// the structured log.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner. The subprocess inherits the environment; its
// stdout is logged at info and stderr at warn, both tagged with the
// preset name so interleaved sweep output stays attributable.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	logger := ctxlog.FromContext(ctx).With("preset", inv.Preset)

	if err := os.MkdirAll(inv.ModelDir, 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory %s: %w", inv.ModelDir, err)
	}
	idx, err := checkpoint.Latest(inv.ModelDir)
	if err != nil {
		return err
	}
	if idx.Latest != "" {
		logger.Info("Resuming from existing checkpoint.", "model_dir", inv.ModelDir, "latest", idx.Latest)
	} else {
		logger.Info("No checkpoint found, starting fresh.", "model_dir", inv.ModelDir)
	}

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Env = os.Environ()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to attach stderr pipe: %w", err)
	}

	logger.Info("Invoking trainer.", "command", inv.String())
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start trainer for preset %q: %w", inv.Preset, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		streamLines(stdout, logger, slog.LevelInfo)
	}()
	go func() {
		defer wg.Done()
		streamLines(stderr, logger, slog.LevelWarn)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("trainer for preset %q cancelled: %w", inv.Preset, ctx.Err())
		}
		return fmt.Errorf("trainer for preset %q failed: %w", inv.Preset, err)
	}
	logger.Info("Trainer exited cleanly.")
	return nil
}

// streamLines forwards each output line to the logger at the given level.
func streamLines(r io.Reader, logger *slog.Logger, level slog.Level) {
	scanner := bufio.NewScanner(r)
	// Trainer progress lines can be long; grow the scanner buffer.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logger.Log(context.Background(), level, "trainer: "+scanner.Text())
	}
}
