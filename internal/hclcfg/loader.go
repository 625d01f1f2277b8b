package hclcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/model"
)

// Loader parses sweep definition files into a model.Sweep.
type Loader struct{}

// NewLoader creates a new sweep file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Variables are exposed to expressions inside sweep files.
type Variables struct {
	Mode      string
	DataDir   string
	ModelRoot string
}

// fileRoot is the top-level structure decoded from every sweep file.
type fileRoot struct {
	Trainer  *trainerBlock  `hcl:"trainer,block"`
	Defaults *defaultsBlock `hcl:"defaults,block"`
	Presets  []*presetBlock `hcl:"preset,block"`
}

type trainerBlock struct {
	Python    string   `hcl:"python,optional"`
	Script    string   `hcl:"script,optional"`
	DataDir   string   `hcl:"data_dir,optional"`
	ModelRoot string   `hcl:"model_root,optional"`
	ExtraArgs []string `hcl:"extra_args,optional"`
}

type defaultsBlock struct {
	Size               int   `hcl:"size,optional"`
	NumLayers          int   `hcl:"num_layers,optional"`
	NumAttns           int   `hcl:"num_attns,optional"`
	NumAttnsOutput     int   `hcl:"num_attns_output,optional"`
	UseLSTM            *bool `hcl:"use_lstm,optional"`
	FromVocabSize      int   `hcl:"from_vocab_size,optional"`
	ToVocabSize        int   `hcl:"to_vocab_size,optional"`
	StepsPerCheckpoint int   `hcl:"steps_per_checkpoint,optional"`
}

type presetBlock struct {
	Name               string         `hcl:"name,label"`
	Size               int            `hcl:"size,optional"`
	NumLayers          int            `hcl:"num_layers,optional"`
	NumAttns           int            `hcl:"num_attns,optional"`
	NumAttnsOutput     int            `hcl:"num_attns_output,optional"`
	UseLSTM            *bool          `hcl:"use_lstm,optional"`
	FromVocabSize      int            `hcl:"from_vocab_size,optional"`
	ToVocabSize        int            `hcl:"to_vocab_size,optional"`
	StepsPerCheckpoint int            `hcl:"steps_per_checkpoint,optional"`
	ModelDir           hcl.Expression `hcl:"model_dir,optional"`
}

// Load parses every sweep file reachable from paths and merges the result
// into base (typically a sweep pre-populated with the builtin presets).
// Later files win over earlier ones; file presets reusing a builtin name
// replace the builtin.
func (l *Loader) Load(ctx context.Context, base *model.Sweep, vars Variables, paths ...string) (*model.Sweep, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Sweep file loader started.", "path_count", len(paths))

	files, err := findSweepFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered sweep files.", "count", len(files))

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"mode":       cty.StringVal(vars.Mode),
			"data_dir":   cty.StringVal(vars.DataDir),
			"model_root": cty.StringVal(vars.ModelRoot),
		},
	}

	parser := hclparse.NewParser()
	defaults := model.BaseDefaults()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse sweep file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode sweep file %s: %w", file, diags)
		}

		if root.Trainer != nil {
			mergeTrainer(&base.Trainer, root.Trainer)
		}
		if root.Defaults != nil {
			mergeDefaults(&defaults, root.Defaults)
		}
		for _, pb := range root.Presets {
			p, err := translatePreset(pb, defaults, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in sweep file %s: %w", file, err)
			}
			base.Upsert(p)
		}
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Sweep loading complete.", "presets", len(base.Presets))
	return base, nil
}

// translatePreset converts a decoded preset block into the model type,
// evaluating the model_dir expression and filling defaults.
func translatePreset(pb *presetBlock, defaults model.Preset, evalCtx *hcl.EvalContext) (*model.Preset, error) {
	p := &model.Preset{
		Name:               pb.Name,
		Size:               pb.Size,
		NumLayers:          pb.NumLayers,
		NumAttns:           pb.NumAttns,
		NumAttnsOutput:     pb.NumAttnsOutput,
		FromVocabSize:      pb.FromVocabSize,
		ToVocabSize:        pb.ToVocabSize,
		StepsPerCheckpoint: pb.StepsPerCheckpoint,
	}
	switch {
	case pb.UseLSTM != nil:
		p.UseLSTM = *pb.UseLSTM
	default:
		p.UseLSTM = defaults.UseLSTM
	}

	if pb.ModelDir != nil {
		val, diags := pb.ModelDir.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("preset %q: failed to evaluate model_dir: %w", pb.Name, diags)
		}
		if !val.IsNull() {
			if val.Type() != cty.String {
				return nil, fmt.Errorf("preset %q: model_dir must be a string, got %s", pb.Name, val.Type().FriendlyName())
			}
			p.ModelDir = val.AsString()
		}
	}

	p.ApplyDefaults(defaults)
	if p.ModelDir == "" {
		p.ModelDir = p.DeriveModelDir()
	}
	return p, nil
}

// mergeTrainer applies non-empty fields of a trainer block.
func mergeTrainer(dst *model.Trainer, tb *trainerBlock) {
	if tb.Python != "" {
		dst.Python = tb.Python
	}
	if tb.Script != "" {
		dst.Script = tb.Script
	}
	if tb.DataDir != "" {
		dst.DataDir = tb.DataDir
	}
	if tb.ModelRoot != "" {
		dst.ModelRoot = tb.ModelRoot
	}
	if len(tb.ExtraArgs) > 0 {
		dst.ExtraArgs = append([]string(nil), tb.ExtraArgs...)
	}
}

// mergeDefaults applies non-zero fields of a defaults block.
func mergeDefaults(dst *model.Preset, db *defaultsBlock) {
	if db.Size != 0 {
		dst.Size = db.Size
	}
	if db.NumLayers != 0 {
		dst.NumLayers = db.NumLayers
	}
	if db.NumAttns != 0 {
		dst.NumAttns = db.NumAttns
	}
	if db.NumAttnsOutput != 0 {
		dst.NumAttnsOutput = db.NumAttnsOutput
	}
	if db.UseLSTM != nil {
		dst.UseLSTM = *db.UseLSTM
	}
	if db.FromVocabSize != 0 {
		dst.FromVocabSize = db.FromVocabSize
	}
	if db.ToVocabSize != 0 {
		dst.ToVocabSize = db.ToVocabSize
	}
	if db.StepsPerCheckpoint != 0 {
		dst.StepsPerCheckpoint = db.StepsPerCheckpoint
	}
}

// findSweepFiles walks all given paths and returns a deduplicated, flat
// list of .hcl files. A configured path that does not exist is skipped.
func findSweepFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return allFiles, nil
}
