package app

import (
	"errors"

	"github.com/vk/seqsweep/internal/model"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Selector picks one preset by 1-based number or name. Empty when
	// All is set or Mode is prepare.
	Selector string
	// All runs every known preset.
	All bool
	// Mode is what the trainer does with each preset.
	Mode model.Mode

	// SweepPath points at a .hcl sweep file or a directory of them.
	SweepPath string

	// Trainer overrides; empty fields keep the loaded/derived values.
	Python    string
	Script    string
	DataDir   string
	ModelRoot string

	// Fetch allows prepare mode to download the corpus archive.
	Fetch bool
	// DryRun prints rendered commands instead of invoking the trainer.
	DryRun bool

	WorkerCount     int
	MonitorURL      string
	HealthcheckPort int
	LogFormat       string
	LogLevel        string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Mode != model.ModePrepare && cfg.Selector == "" && !cfg.All {
		return nil, errors.New("a preset selector (or -all) is required outside prepare mode")
	}
	if cfg.Selector != "" && cfg.All {
		return nil, errors.New("a preset selector and -all are mutually exclusive")
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return &cfg, nil
}
