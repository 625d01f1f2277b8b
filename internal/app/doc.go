// Package app wires the application together: it owns the validated
// runtime configuration, builds the isolated logger, loads sweep
// definitions on top of the builtin presets, and dispatches a run to the
// dataset pipeline or the sweep executor.
package app
