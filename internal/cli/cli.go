package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/seqsweep/internal/app"
	"github.com/vk/seqsweep/internal/model"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("seqsweep", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
seqsweep - parameter-sweep launcher for a seq2seq chatbot trainer.

Usage:
  seqsweep [options] [SELECTOR]

Arguments:
  SELECTOR
    Preset to launch: a 1-based number or a preset name. Run with
    -all to launch every known preset instead.

Options:
`)
		flagSet.PrintDefaults()
	}

	sweepFlag := flagSet.String("sweep", "", "Path to a sweep .hcl file or a directory containing them.")
	sFlag := flagSet.String("s", "", "Path to a sweep .hcl file or directory (shorthand).")
	modeFlag := flagSet.String("mode", "train", "Run mode. Options: 'train', 'decode', 'test', 'self-test' or 'prepare'.")
	allFlag := flagSet.Bool("all", false, "Launch every known preset instead of a single selector.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent runs for -all sweeps.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the rendered trainer command without invoking it.")
	pythonFlag := flagSet.String("python", "", "Interpreter used to launch the trainer entry point.")
	scriptFlag := flagSet.String("script", "", "Path to the trainer entry point script.")
	dataDirFlag := flagSet.String("data-dir", "", "Dataset root directory.")
	modelRootFlag := flagSet.String("model-root", "", "Directory that anchors relative checkpoint directories.")
	fetchFlag := flagSet.Bool("fetch", false, "Allow prepare mode to download the corpus archive.")
	monitorURLFlag := flagSet.String("monitor-url", "", "socket.io endpoint for sweep lifecycle events. Empty is disabled.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	mode, err := model.ParseMode(*modeFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	selector := ""
	if flagSet.NArg() > 0 {
		selector = flagSet.Arg(0)
	}

	if selector == "" && !*allFlag && mode != model.ModePrepare {
		flagSet.Usage()
		return nil, true, nil
	}

	sweepPath := *sweepFlag
	if sweepPath == "" {
		sweepPath = *sFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Selector:        selector,
		All:             *allFlag,
		Mode:            mode,
		SweepPath:       sweepPath,
		Python:          *pythonFlag,
		Script:          *scriptFlag,
		DataDir:         *dataDirFlag,
		ModelRoot:       *modelRootFlag,
		Fetch:           *fetchFlag,
		DryRun:          *dryRunFlag,
		WorkerCount:     *workersFlag,
		MonitorURL:      *monitorURLFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
