package dataset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/seqsweep/internal/ctxlog"
)

// Config describes one preparation run.
type Config struct {
	// WorkingDir receives vocabularies and the paired turn files.
	WorkingDir string
	// DialogsDir holds the unpacked corpus tsv tree.
	DialogsDir string
	// FromVocabSize and ToVocabSize cap the encoder and decoder
	// vocabularies.
	FromVocabSize int
	ToVocabSize   int
	// NormalizeDigits replaces digits with 0 before vocabulary lookups.
	NormalizeDigits bool
}

// Paths lists every artifact a preparation run produces.
type Paths struct {
	TrainEnc, TrainDec       string
	TestEnc, TestDec         string
	EncVocab, DecVocab       string
	TrainEncIDs, TrainDecIDs string
	TestEncIDs, TestDecIDs   string
}

// Prepare runs the full pipeline: corpus conversion, vocabulary creation
// and token-id rewriting, for both the train and test splits. Each stage
// skips artifacts that already exist.
func Prepare(ctx context.Context, cfg Config) (Paths, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Preparing dataset.", "working_dir", cfg.WorkingDir, "dialogs", cfg.DialogsDir)

	p := Paths{
		TrainEnc: filepath.Join(cfg.WorkingDir, "train.enc"),
		TrainDec: filepath.Join(cfg.WorkingDir, "train.dec"),
		TestEnc:  filepath.Join(cfg.WorkingDir, "test.enc"),
		TestDec:  filepath.Join(cfg.WorkingDir, "test.dec"),
		EncVocab: filepath.Join(cfg.WorkingDir, fmt.Sprintf("vocab%d.enc", cfg.FromVocabSize)),
		DecVocab: filepath.Join(cfg.WorkingDir, fmt.Sprintf("vocab%d.dec", cfg.ToVocabSize)),
	}
	p.TrainEncIDs = fmt.Sprintf("%s.ids%d", p.TrainEnc, cfg.FromVocabSize)
	p.TrainDecIDs = fmt.Sprintf("%s.ids%d", p.TrainDec, cfg.ToVocabSize)
	p.TestEncIDs = fmt.Sprintf("%s.ids%d", p.TestEnc, cfg.FromVocabSize)
	p.TestDecIDs = fmt.Sprintf("%s.ids%d", p.TestDec, cfg.ToVocabSize)

	if err := BuildPairs(ctx, cfg.DialogsDir, p.TrainEnc, p.TrainDec, p.TestEnc, p.TestDec); err != nil {
		return Paths{}, err
	}

	if err := CreateVocabulary(ctx, p.EncVocab, p.TrainEnc, cfg.FromVocabSize, cfg.NormalizeDigits); err != nil {
		return Paths{}, err
	}
	if err := CreateVocabulary(ctx, p.DecVocab, p.TrainDec, cfg.ToVocabSize, cfg.NormalizeDigits); err != nil {
		return Paths{}, err
	}

	for _, conv := range []struct{ data, target, vocab string }{
		{p.TrainEnc, p.TrainEncIDs, p.EncVocab},
		{p.TrainDec, p.TrainDecIDs, p.DecVocab},
		{p.TestEnc, p.TestEncIDs, p.EncVocab},
		{p.TestDec, p.TestDecIDs, p.DecVocab},
	} {
		if err := DataToIDs(ctx, conv.data, conv.target, conv.vocab, cfg.NormalizeDigits); err != nil {
			return Paths{}, err
		}
	}

	logger.Info("Dataset preparation finished.")
	return p, nil
}
