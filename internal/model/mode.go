package model

import "fmt"

// Mode selects what the external entry point does with a preset. Train is
// the zero value and maps to no mode flag on the wire; the others map to
// the entry point's mutually exclusive selector flags.
type Mode string

const (
	ModeTrain    Mode = "train"
	ModeDecode   Mode = "decode"
	ModeTest     Mode = "test"
	ModeSelfTest Mode = "self-test"

	// ModePrepare is internal to seqsweep: it runs the dataset pipeline
	// and never reaches the trainer.
	ModePrepare Mode = "prepare"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTrain, ModeDecode, ModeTest, ModeSelfTest, ModePrepare:
		return Mode(s), nil
	case "":
		return ModeTrain, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be 'train', 'decode', 'test', 'self-test' or 'prepare'", s)
}

// Flag returns the trainer CLI flag for the mode, or "" for train, which
// the entry point treats as the default when no selector flag is present.
func (m Mode) Flag() string {
	switch m {
	case ModeDecode:
		return "--decode"
	case ModeTest:
		return "--test"
	case ModeSelfTest:
		return "--self_test"
	}
	return ""
}

// Launches reports whether the mode results in an external process
// invocation at all.
func (m Mode) Launches() bool {
	return m != ModePrepare
}
