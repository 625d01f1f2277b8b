package model

import (
	"fmt"
	"strings"
)

// Documented trainer defaults. A Preset field left at zero is filled from
// these (or from a sweep file's defaults block) before validation.
const (
	DefaultSize               = 1024
	DefaultNumLayers          = 1
	DefaultNumAttns           = 1
	DefaultNumAttnsOutput     = 0
	DefaultVocabSize          = 40000
	DefaultStepsPerCheckpoint = 50
)

// Preset is one hyperparameter tuple for the external trainer together
// with the checkpoint directory that run reads and writes.
type Preset struct {
	Name string

	// Hidden units per recurrent layer.
	Size int
	// Stacked recurrent layers.
	NumLayers int
	// Input-side attention vectors.
	NumAttns int
	// Output-side attention vectors.
	NumAttnsOutput int
	// Cell type: LSTM when true, GRU otherwise.
	UseLSTM bool

	// Vocabulary caps for the encoder and decoder sides.
	FromVocabSize int
	ToVocabSize   int

	// Training steps between checkpoint writes.
	StepsPerCheckpoint int

	// ModelDir is the checkpoint directory, relative to the trainer's
	// model root unless absolute. Defaulted from the tuple when empty.
	ModelDir string
}

// ApplyDefaults fills zero-valued fields from d. Boolean fields are not
// defaulted: UseLSTM false means GRU, which is a legitimate setting.
func (p *Preset) ApplyDefaults(d Preset) {
	if p.Size == 0 {
		p.Size = d.Size
	}
	if p.NumLayers == 0 {
		p.NumLayers = d.NumLayers
	}
	if p.NumAttns == 0 {
		p.NumAttns = d.NumAttns
	}
	if p.NumAttnsOutput == 0 {
		p.NumAttnsOutput = d.NumAttnsOutput
	}
	if p.FromVocabSize == 0 {
		p.FromVocabSize = d.FromVocabSize
	}
	if p.ToVocabSize == 0 {
		p.ToVocabSize = d.ToVocabSize
	}
	if p.StepsPerCheckpoint == 0 {
		p.StepsPerCheckpoint = d.StepsPerCheckpoint
	}
	if p.ModelDir == "" {
		p.ModelDir = d.ModelDir
	}
}

// BaseDefaults returns the documented trainer defaults as a Preset suitable
// for ApplyDefaults.
func BaseDefaults() Preset {
	return Preset{
		Size:               DefaultSize,
		NumLayers:          DefaultNumLayers,
		NumAttns:           DefaultNumAttns,
		NumAttnsOutput:     DefaultNumAttnsOutput,
		FromVocabSize:      DefaultVocabSize,
		ToVocabSize:        DefaultVocabSize,
		StepsPerCheckpoint: DefaultStepsPerCheckpoint,
	}
}

// DeriveModelDir builds the conventional checkpoint directory name for the
// tuple, e.g. "model_1024_2_1_0_lstm". Used when a preset does not name
// one explicitly; keeps every tuple addressed by a distinct directory.
func (p *Preset) DeriveModelDir() string {
	cell := "gru"
	if p.UseLSTM {
		cell = "lstm"
	}
	return fmt.Sprintf("model_%d_%d_%d_%d_%s", p.Size, p.NumLayers, p.NumAttns, p.NumAttnsOutput, cell)
}

// Validate checks the tuple for values the trainer would reject.
func (p *Preset) Validate() error {
	var problems []string
	if p.Name == "" {
		problems = append(problems, "name must not be empty")
	}
	if p.Size <= 0 {
		problems = append(problems, "size must be positive")
	}
	if p.NumLayers <= 0 {
		problems = append(problems, "num_layers must be positive")
	}
	if p.NumAttns < 0 {
		problems = append(problems, "num_attns must not be negative")
	}
	if p.NumAttnsOutput < 0 {
		problems = append(problems, "num_attns_output must not be negative")
	}
	if p.FromVocabSize <= 0 || p.ToVocabSize <= 0 {
		problems = append(problems, "vocabulary sizes must be positive")
	}
	if p.StepsPerCheckpoint <= 0 {
		problems = append(problems, "steps_per_checkpoint must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("preset %q: %s", p.Name, strings.Join(problems, "; "))
	}
	return nil
}
