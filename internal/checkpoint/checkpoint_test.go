package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/seqsweep/internal/model"
)

func TestDir(t *testing.T) {
	t.Parallel()

	trainer := model.Trainer{ModelRoot: "runs"}

	t.Run("relative dir joins the model root", func(t *testing.T) {
		t.Parallel()
		p := &model.Preset{ModelDir: "model_a"}
		require.Equal(t, filepath.Join("runs", "model_a"), Dir(trainer, p))
	})

	t.Run("absolute dir is used as-is", func(t *testing.T) {
		t.Parallel()
		p := &model.Preset{ModelDir: "/ckpt/model_a"}
		require.Equal(t, "/ckpt/model_a", Dir(trainer, p))
	})

	t.Run("empty dir derives from the tuple", func(t *testing.T) {
		t.Parallel()
		p := &model.Preset{Size: 512, NumLayers: 1, NumAttns: 1}
		require.Equal(t, filepath.Join("runs", "model_512_1_1_0_gru"), Dir(trainer, p))
	})
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	trainer := model.Trainer{ModelRoot: t.TempDir()}
	p := &model.Preset{Name: "x", ModelDir: "nested/model_x"}

	dir, err := EnsureDir(trainer, p)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestLatest(t *testing.T) {
	t.Parallel()

	t.Run("missing index means fresh training", func(t *testing.T) {
		t.Parallel()
		idx, err := Latest(t.TempDir())
		require.NoError(t, err)
		require.Empty(t, idx.Latest)
		require.Empty(t, idx.All)
	})

	t.Run("parses the trainer-maintained index", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := `model_checkpoint_path: "translate.ckpt-5200"
all_model_checkpoint_paths: "translate.ckpt-5100"
all_model_checkpoint_paths: "translate.ckpt-5200"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "checkpoint"), []byte(content), 0o644))

		idx, err := Latest(dir)
		require.NoError(t, err)
		require.Equal(t, "translate.ckpt-5200", idx.Latest)
		require.Equal(t, []string{"translate.ckpt-5100", "translate.ckpt-5200"}, idx.All)
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := "garbage line\nmodel_checkpoint_path: \"ckpt-1\"\n:\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "checkpoint"), []byte(content), 0o644))

		idx, err := Latest(dir)
		require.NoError(t, err)
		require.Equal(t, "ckpt-1", idx.Latest)
	})
}
