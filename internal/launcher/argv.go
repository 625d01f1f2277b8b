package launcher

import (
	"strconv"
	"strings"

	"github.com/vk/seqsweep/internal/checkpoint"
	"github.com/vk/seqsweep/internal/model"
)

// Invocation is one fully rendered external-program command.
type Invocation struct {
	// Preset names the run for logging and result tracking.
	Preset string
	// Program is the interpreter binary.
	Program string
	// Args starts with the entry-point script, then the flag set.
	Args []string
	// ModelDir is the resolved checkpoint directory the run uses.
	ModelDir string
}

// String renders the invocation as a shell-style command line.
func (inv Invocation) String() string {
	return inv.Program + " " + strings.Join(inv.Args, " ")
}

// BuildInvocation renders the exact argv for one preset and mode. The
// flag order is fixed so that each selector always produces an identical
// command line: hyperparameters, vocabulary caps, checkpoint cadence,
// model path, then the mode selector flag (absent for train) and any
// trainer extra args.
func BuildInvocation(trainer model.Trainer, p *model.Preset, mode model.Mode) Invocation {
	modelDir := checkpoint.Dir(trainer, p)

	args := []string{
		trainer.Script,
		"--size", strconv.Itoa(p.Size),
		"--num_layers", strconv.Itoa(p.NumLayers),
		"--num_attns", strconv.Itoa(p.NumAttns),
		"--num_attns_output", strconv.Itoa(p.NumAttnsOutput),
		"--use_lstm", strconv.FormatBool(p.UseLSTM),
		"--from_vocab_size", strconv.Itoa(p.FromVocabSize),
		"--to_vocab_size", strconv.Itoa(p.ToVocabSize),
		"--steps_per_checkpoint", strconv.Itoa(p.StepsPerCheckpoint),
		"--model", modelDir,
	}
	if flag := mode.Flag(); flag != "" {
		args = append(args, flag)
	}
	args = append(args, trainer.ExtraArgs...)

	return Invocation{
		Preset:   p.Name,
		Program:  trainer.Python,
		Args:     args,
		ModelDir: modelDir,
	}
}
