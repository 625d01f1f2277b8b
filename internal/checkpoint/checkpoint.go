// Package checkpoint manages the checkpoint directories the external
// trainer reads and writes. It knows just enough about the trainer's
// on-disk layout to create directories before a run and to report the
// snapshot a resumed run will pick up.
package checkpoint

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/seqsweep/internal/model"
)

// indexFileName is the trainer-maintained index inside every checkpoint
// directory. Its first line names the snapshot a resume starts from.
const indexFileName = "checkpoint"

// Dir resolves a preset's checkpoint directory against the trainer's
// model root. Absolute ModelDirs are used as-is.
func Dir(trainer model.Trainer, p *model.Preset) string {
	dir := p.ModelDir
	if dir == "" {
		dir = p.DeriveModelDir()
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	root := trainer.ModelRoot
	if root == "" {
		root = "."
	}
	return filepath.Join(root, dir)
}

// EnsureDir resolves and creates the preset's checkpoint directory.
func EnsureDir(trainer model.Trainer, p *model.Preset) (string, error) {
	dir := Dir(trainer, p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create checkpoint directory %s: %w", dir, err)
	}
	return dir, nil
}

// Index describes the contents of a checkpoint index file.
type Index struct {
	// Latest is the snapshot a resumed run starts from.
	Latest string
	// All lists every snapshot the index still references.
	All []string
}

// Latest parses the index file in dir. A missing index is not an error:
// it means the directory is fresh and training starts from scratch.
func Latest(dir string) (Index, error) {
	f, err := os.Open(filepath.Join(dir, indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Index{}, nil
		}
		return Index{}, fmt.Errorf("failed to open checkpoint index in %s: %w", dir, err)
	}
	defer f.Close()

	var idx Index
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseIndexLine(scanner.Text())
		if !ok {
			continue
		}
		switch key {
		case "model_checkpoint_path":
			idx.Latest = value
		case "all_model_checkpoint_paths":
			idx.All = append(idx.All, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Index{}, fmt.Errorf("failed to read checkpoint index in %s: %w", dir, err)
	}
	return idx, nil
}

// parseIndexLine splits a `key: "value"` line of the index file.
func parseIndexLine(line string) (key, value string, ok bool) {
	key, rest, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.Trim(strings.TrimSpace(rest), `"`)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
