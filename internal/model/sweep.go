package model

import "fmt"

// Sweep is the root container for a seqsweep run: every preset known to
// the launcher, in declaration order, plus the trainer wiring.
type Sweep struct {
	Trainer Trainer
	Presets []*Preset
}

// NewSweep returns an initialized, empty Sweep.
func NewSweep() *Sweep {
	return &Sweep{Trainer: DefaultTrainer()}
}

// Lookup returns the preset with the given name, or nil.
func (s *Sweep) Lookup(name string) *Preset {
	for _, p := range s.Presets {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Upsert replaces the preset with the same name, or appends. Sweep files
// may override builtin presets by reusing their name.
func (s *Sweep) Upsert(p *Preset) {
	for i, existing := range s.Presets {
		if existing.Name == p.Name {
			s.Presets[i] = p
			return
		}
	}
	s.Presets = append(s.Presets, p)
}

// Validate checks every preset and the workspace-wide invariants: names
// and checkpoint directories must be unique, since two runs sharing a
// directory would clobber each other's checkpoints.
func (s *Sweep) Validate() error {
	names := make(map[string]struct{}, len(s.Presets))
	dirs := make(map[string]string, len(s.Presets))
	for _, p := range s.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("duplicate preset name %q", p.Name)
		}
		names[p.Name] = struct{}{}

		dir := p.ModelDir
		if dir == "" {
			dir = p.DeriveModelDir()
		}
		if other, dup := dirs[dir]; dup {
			return fmt.Errorf("presets %q and %q share checkpoint directory %q", other, p.Name, dir)
		}
		dirs[dir] = p.Name
	}
	return nil
}
