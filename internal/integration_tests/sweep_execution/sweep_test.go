package sweep_execution

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/seqsweep/internal/app"
	"github.com/vk/seqsweep/internal/model"
	"github.com/vk/seqsweep/internal/results"
	"github.com/vk/seqsweep/internal/testutil"
)

func TestAllPresetsRun(t *testing.T) {
	t.Parallel()

	result := testutil.RunLauncherTest(t, nil, app.Config{
		All:         true,
		Mode:        model.ModeTrain,
		WorkerCount: 3,
	})
	require.NoError(t, result.Err)

	invocations := result.Runner.Invocations()
	require.Len(t, invocations, 6, "-all must launch every builtin preset")

	seen := make(map[string]struct{})
	for _, inv := range invocations {
		seen[inv.Preset] = struct{}{}
	}
	require.Len(t, seen, 6, "every preset must be launched exactly once")

	for _, res := range result.App.Results().Snapshot() {
		require.Equal(t, results.StatusDone, res.Status)
	}
}

func TestSweepFailFast(t *testing.T) {
	t.Parallel()

	boom := errors.New("oom on gpu 0")

	// Build the harness pieces by hand to plant a failure in the runner.
	cfg := app.Config{
		All:         true,
		Mode:        model.ModeTrain,
		WorkerCount: 1,
	}
	result := runWithFailure(t, cfg, map[string]error{"base-gru": boom})

	require.Error(t, result.Err)
	require.ErrorIs(t, result.Err, boom)

	// base-gru is first in declaration order with a single worker, so
	// nothing else may have been launched.
	require.Len(t, result.Runner.Invocations(), 1)

	snap := result.App.Results().Snapshot()
	require.Len(t, snap, 6)
	var failed, skipped int
	for _, res := range snap {
		switch res.Status {
		case results.StatusFailed:
			failed++
		case results.StatusSkipped:
			skipped++
		}
	}
	require.Equal(t, 1, failed)
	require.Equal(t, 5, skipped)
}

func TestSweepFileExtraPresets(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"team.hcl": `
preset "extra-a" {
  size = 300
}

preset "extra-b" {
  size = 301
}
`,
	}
	result := testutil.RunLauncherTest(t, files, app.Config{
		All:         true,
		Mode:        model.ModeDecode,
		WorkerCount: 2,
	})
	require.NoError(t, result.Err)
	require.Len(t, result.Runner.Invocations(), 8, "six builtins plus two file presets")
}

// runWithFailure mirrors testutil.RunLauncherTest but pre-loads the
// recording runner with planted failures.
func runWithFailure(t *testing.T, cfg app.Config, failFor map[string]error) *testutil.HarnessResult {
	t.Helper()
	return testutil.RunLauncherTestWithRunner(t, nil, cfg, &testutil.RecordingRunner{FailFor: failFor})
}
