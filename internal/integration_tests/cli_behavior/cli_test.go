package cli_behavior

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/seqsweep/internal/app"
	"github.com/vk/seqsweep/internal/cli"
	"github.com/vk/seqsweep/internal/model"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"-sweep", "/test/sweeps",
				"--mode=decode",
				"--workers=4",
				"--dry-run",
				"--python=python3.11",
				"--script=/opt/exec.py",
				"--data-dir=/data",
				"--model-root=/ckpt",
				"--monitor-url=http://localhost:3000/socket.io",
				"--healthcheck-port=8080",
				"--log-level=debug",
				"--log-format=text",
				"3",
			},
			expectedConfig: &app.Config{
				Selector:        "3",
				Mode:            model.ModeDecode,
				SweepPath:       "/test/sweeps",
				Python:          "python3.11",
				Script:          "/opt/exec.py",
				DataDir:         "/data",
				ModelRoot:       "/ckpt",
				DryRun:          true,
				WorkerCount:     4,
				MonitorURL:      "http://localhost:3000/socket.io",
				HealthcheckPort: 8080,
				LogLevel:        "debug",
				LogFormat:       "text",
			},
		},
		{
			name: "Selector with defaults",
			args: []string{"1"},
			expectedConfig: &app.Config{
				Selector:    "1",
				Mode:        model.ModeTrain,
				WorkerCount: 1,
				LogLevel:    "info",
				LogFormat:   "json",
			},
		},
		{
			name: "Shorthand sweep flag",
			args: []string{"-s", "/short/path", "base-lstm"},
			expectedConfig: &app.Config{
				Selector:    "base-lstm",
				Mode:        model.ModeTrain,
				SweepPath:   "/short/path",
				WorkerCount: 1,
				LogLevel:    "info",
				LogFormat:   "json",
			},
		},
		{
			name: "All flag instead of selector",
			args: []string{"-all", "-workers", "2"},
			expectedConfig: &app.Config{
				All:         true,
				Mode:        model.ModeTrain,
				WorkerCount: 2,
				LogLevel:    "info",
				LogFormat:   "json",
			},
		},
		{
			name: "Prepare mode needs no selector",
			args: []string{"-mode", "prepare", "-fetch"},
			expectedConfig: &app.Config{
				Mode:        model.ModePrepare,
				Fetch:       true,
				WorkerCount: 1,
				LogLevel:    "info",
				LogFormat:   "json",
			},
		},
		{
			name:       "No selector prints usage and exits cleanly",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
			},
		},
		{
			name:       "Help flag exits cleanly",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
			},
		},
		{
			name:      "Selector and all are mutually exclusive",
			args:      []string{"-all", "2"},
			expectErr: true,
		},
		{
			name:      "Invalid mode rejected",
			args:      []string{"-mode", "compile", "1"},
			expectErr: true,
		},
		{
			name:      "Invalid log format rejected",
			args:      []string{"--log-format=yaml", "1"},
			expectErr: true,
		},
		{
			name:      "Invalid log level rejected",
			args:      []string{"--log-level=loud", "1"},
			expectErr: true,
		},
		{
			name:      "Unknown flag rejected",
			args:      []string{"--definitely-not-a-flag"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			config, shouldExit, err := cli.Parse(tc.args, out)

			if tc.expectErr {
				require.Error(t, err)
				var exitErr *cli.ExitError
				require.ErrorAs(t, err, &exitErr)
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, config); diff != "" {
					t.Fatalf("config mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParse_UsageMentionsSelector(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := cli.Parse(nil, out)
	require.NoError(t, err)
	require.True(t, shouldExit)

	usage := out.String()
	require.True(t, strings.Contains(usage, "SELECTOR"), "usage must document the positional selector")
	require.True(t, strings.Contains(usage, "-all"), "usage must document the -all alternative")
}
