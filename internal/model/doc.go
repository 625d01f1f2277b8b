// Package model provides the Go struct representation of a seqsweep
// configuration. It is the format-agnostic layer between the HCL loader
// and the launcher: the loader produces a Sweep, the launcher and the
// executor consume it without ever touching HCL.
//
// The model is built around three structures:
//
//   - Preset: one hyperparameter tuple for the external trainer, plus the
//     checkpoint directory that run writes to. The six builtin presets and
//     any presets declared in sweep files are both expressed as Presets.
//
//   - Trainer: how to reach the external training/decoding entry point
//     (interpreter, script path, data and model roots).
//
//   - Sweep: the root container aggregating all presets known to a run,
//     with name lookup and workspace-wide validation (unique names, unique
//     checkpoint directories).
package model
