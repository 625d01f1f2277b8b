// Package preset holds the six builtin hyperparameter presets and resolves
// a user-supplied selector (number or name) against a loaded sweep.
package preset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vk/seqsweep/internal/model"
)

// ErrUnknownSelector is returned when a selector matches no preset. The
// caller must not invoke the external trainer in that case.
var ErrUnknownSelector = errors.New("unknown preset selector")

// builtin is the fixed launcher matrix. Selectors 1..6 address it by
// position; names address it directly. Each tuple derives a distinct
// checkpoint directory.
var builtin = []model.Preset{
	{Name: "base-gru", Size: 1024, NumLayers: 1, NumAttns: 1, NumAttnsOutput: 0, UseLSTM: false},
	{Name: "base-lstm", Size: 1024, NumLayers: 1, NumAttns: 1, NumAttnsOutput: 0, UseLSTM: true},
	{Name: "deep-gru", Size: 1024, NumLayers: 2, NumAttns: 1, NumAttnsOutput: 0, UseLSTM: false},
	{Name: "deep-lstm", Size: 1024, NumLayers: 2, NumAttns: 1, NumAttnsOutput: 0, UseLSTM: true},
	{Name: "wide-attn", Size: 1024, NumLayers: 1, NumAttns: 2, NumAttnsOutput: 1, UseLSTM: false},
	{Name: "big-lstm", Size: 2048, NumLayers: 2, NumAttns: 2, NumAttnsOutput: 1, UseLSTM: true},
}

// Builtin returns fresh copies of the builtin presets with defaults and
// checkpoint directories filled in.
func Builtin() []*model.Preset {
	defaults := model.BaseDefaults()
	out := make([]*model.Preset, 0, len(builtin))
	for _, p := range builtin {
		p := p
		p.ApplyDefaults(defaults)
		if p.ModelDir == "" {
			p.ModelDir = p.DeriveModelDir()
		}
		out = append(out, &p)
	}
	return out
}

// Resolve maps a selector to a preset in the sweep. Numeric selectors are
// 1-based positions in declaration order, matching the original launcher
// scripts' numeric argument; anything else is a name lookup.
func Resolve(sweep *model.Sweep, selector string) (*model.Preset, error) {
	if n, err := strconv.Atoi(selector); err == nil {
		if n < 1 || n > len(sweep.Presets) {
			return nil, fmt.Errorf("%w: %q is out of range 1..%d", ErrUnknownSelector, selector, len(sweep.Presets))
		}
		return sweep.Presets[n-1], nil
	}
	if p := sweep.Lookup(selector); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, selector)
}
