package hclcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/seqsweep/internal/model"
)

func writeSweepFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseSweep() *model.Sweep {
	return model.NewSweep()
}

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSweepFile(t, dir, "main.hcl", `
trainer {
  python     = "python3.11"
  script     = "train/exec.py"
  model_root = "runs"
  extra_args = ["--gpu", "0"]
}

defaults {
  steps_per_checkpoint = 5
}

preset "tiny-gru" {
  size       = 256
  num_layers = 1
}

preset "tiny-lstm" {
  size     = 256
  use_lstm = true
}
`)

	sweep, err := NewLoader().Load(context.Background(), baseSweep(), Variables{Mode: "train"}, dir)
	require.NoError(t, err)

	require.Equal(t, "python3.11", sweep.Trainer.Python)
	require.Equal(t, "train/exec.py", sweep.Trainer.Script)
	require.Equal(t, "runs", sweep.Trainer.ModelRoot)
	require.Equal(t, []string{"--gpu", "0"}, sweep.Trainer.ExtraArgs)

	require.Len(t, sweep.Presets, 2)

	tiny := sweep.Lookup("tiny-gru")
	require.NotNil(t, tiny)
	require.Equal(t, 256, tiny.Size)
	require.Equal(t, 5, tiny.StepsPerCheckpoint, "defaults block must apply to file presets")
	require.Equal(t, model.DefaultVocabSize, tiny.FromVocabSize, "unset fields fall back to documented defaults")
	require.False(t, tiny.UseLSTM)
	require.Equal(t, "model_256_1_1_0_gru", tiny.ModelDir, "model dir derives from the tuple when unset")

	lstm := sweep.Lookup("tiny-lstm")
	require.NotNil(t, lstm)
	require.True(t, lstm.UseLSTM)
}

func TestLoad_ModelDirExpression(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSweepFile(t, dir, "expr.hcl", `
preset "expr" {
  model_dir = "${model_root}/expr-${mode}"
}
`)

	vars := Variables{Mode: "decode", ModelRoot: "/ckpt"}
	sweep, err := NewLoader().Load(context.Background(), baseSweep(), vars, dir)
	require.NoError(t, err)
	require.Equal(t, "/ckpt/expr-decode", sweep.Lookup("expr").ModelDir)
}

func TestLoad_OverridesBase(t *testing.T) {
	t.Parallel()

	base := baseSweep()
	existing := &model.Preset{Name: "base-gru"}
	existing.ApplyDefaults(model.BaseDefaults())
	existing.ModelDir = existing.DeriveModelDir()
	base.Upsert(existing)

	dir := t.TempDir()
	writeSweepFile(t, dir, "override.hcl", `
preset "base-gru" {
  size      = 512
  model_dir = "overridden"
}
`)

	sweep, err := NewLoader().Load(context.Background(), base, Variables{}, dir)
	require.NoError(t, err)
	require.Len(t, sweep.Presets, 1, "a file preset reusing a name must replace, not append")
	require.Equal(t, 512, sweep.Lookup("base-gru").Size)
	require.Equal(t, "overridden", sweep.Lookup("base-gru").ModelDir)
}

func TestLoad_InvalidHCLRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSweepFile(t, dir, "broken.hcl", `preset "x" {`)

	_, err := NewLoader().Load(context.Background(), baseSweep(), Variables{}, dir)
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to parse")
}

func TestLoad_UnknownBlockRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSweepFile(t, dir, "odd.hcl", `
mystery "thing" {
  value = 1
}
`)

	_, err := NewLoader().Load(context.Background(), baseSweep(), Variables{}, dir)
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to decode")
}

func TestLoad_DuplicateModelDirRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSweepFile(t, dir, "dup.hcl", `
preset "a" {
  model_dir = "same"
}

preset "b" {
  model_dir = "same"
}
`)

	_, err := NewLoader().Load(context.Background(), baseSweep(), Variables{}, dir)
	require.Error(t, err)
	require.ErrorContains(t, err, "share checkpoint directory")
}

func TestLoad_MissingPathSkipped(t *testing.T) {
	t.Parallel()

	sweep, err := NewLoader().Load(context.Background(), baseSweep(), Variables{}, "/nonexistent/sweeps")
	require.NoError(t, err, "a configured path that does not exist is not an error")
	require.Empty(t, sweep.Presets)
}

func TestLoad_SingleFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeSweepFile(t, dir, "one.hcl", `
preset "solo" {
  size = 128
}
`)

	sweep, err := NewLoader().Load(context.Background(), baseSweep(), Variables{}, file)
	require.NoError(t, err)
	require.NotNil(t, sweep.Lookup("solo"))
}
