// Package hclcfg loads sweep definition files written in HCL and
// translates them into the format-agnostic model. A sweep file can adjust
// the trainer wiring, set defaults for hyperparameter fields, and declare
// presets that extend or override the builtin six.
//
// Example:
//
//	trainer {
//	  python     = "python3"
//	  script     = "exec.py"
//	  model_root = "runs"
//	}
//
//	defaults {
//	  steps_per_checkpoint = 5
//	}
//
//	preset "tiny-gru" {
//	  size       = 256
//	  num_layers = 1
//	  model_dir  = "${model_root}/tiny"
//	}
//
// The model_dir attribute is an expression evaluated against variables
// describing the current run (mode, data_dir, model_root); everything
// else decodes structurally via gohcl.
package hclcfg
