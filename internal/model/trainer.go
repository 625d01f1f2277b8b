package model

// Trainer describes how to reach the external training/decoding entry
// point. The entry point is an opaque collaborator: everything seqsweep
// knows about it is this struct plus the flag set rendered by the
// launcher.
type Trainer struct {
	// Python is the interpreter binary, e.g. "python3".
	Python string
	// Script is the path to the entry point, e.g. "exec.py".
	Script string
	// DataDir is the dataset root handed to prepare mode.
	DataDir string
	// ModelRoot anchors relative preset ModelDirs.
	ModelRoot string
	// ExtraArgs are appended verbatim after the rendered flag set.
	ExtraArgs []string
}

// ApplyDefaults fills empty fields from d.
func (t *Trainer) ApplyDefaults(d Trainer) {
	if t.Python == "" {
		t.Python = d.Python
	}
	if t.Script == "" {
		t.Script = d.Script
	}
	if t.DataDir == "" {
		t.DataDir = d.DataDir
	}
	if t.ModelRoot == "" {
		t.ModelRoot = d.ModelRoot
	}
}

// DefaultTrainer returns the conventional trainer wiring.
func DefaultTrainer() Trainer {
	return Trainer{
		Python:    "python3",
		Script:    "exec.py",
		DataDir:   "data",
		ModelRoot: ".",
	}
}
