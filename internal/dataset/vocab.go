package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/fsutil"
)

// scanBufSize caps a single corpus line; dialogue turns can get long.
const scanBufSize = 1024 * 1024

// CreateVocabulary builds a vocabulary file from a one-sentence-per-line
// data file, if it does not exist yet. The vocabulary starts with the
// special symbols and continues with tokens in descending frequency
// order (first occurrence breaks ties), truncated to maxSize entries,
// one token per line so that line number equals token id.
func CreateVocabulary(ctx context.Context, vocabPath, dataPath string, maxSize int, normalizeDigits bool) error {
	logger := ctxlog.FromContext(ctx)
	if fsutil.FileExists(vocabPath) {
		logger.Debug("Vocabulary already exists, skipping.", "path", vocabPath)
		return nil
	}
	if maxSize <= len(StartVocab) {
		return fmt.Errorf("max vocabulary size %d cannot hold the %d special symbols", maxSize, len(StartVocab))
	}
	logger.Info("Creating vocabulary.", "path", vocabPath, "data", dataPath, "max_size", maxSize)

	f, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	counts := make(map[string]int)
	order := make(map[string]int)
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		lineNo++
		if lineNo%100000 == 0 {
			logger.Debug("Processing corpus.", "line", lineNo)
		}
		for _, token := range Tokenize(scanner.Text()) {
			if normalizeDigits {
				token = NormalizeDigits(token)
			}
			if _, seen := counts[token]; !seen {
				order[token] = len(order)
			}
			counts[token]++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return order[tokens[i]] < order[tokens[j]]
	})

	vocabList := append(append([]string(nil), StartVocab...), tokens...)
	if len(vocabList) > maxSize {
		vocabList = vocabList[:maxSize]
	}

	out, err := os.Create(vocabPath)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary file: %w", err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	for _, token := range vocabList {
		if _, err := w.WriteString(token + "\n"); err != nil {
			return fmt.Errorf("failed to write vocabulary file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush vocabulary file: %w", err)
	}
	logger.Info("Vocabulary created.", "path", vocabPath, "tokens", len(vocabList))
	return nil
}

// LoadVocabulary reads a one-token-per-line vocabulary file and returns the
// token→id map plus the reverse id→token slice.
func LoadVocabulary(vocabPath string) (map[string]int, []string, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, nil, fmt.Errorf("vocabulary file %s not found: %w", vocabPath, err)
	}
	defer f.Close()

	var rev []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		rev = append(rev, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read vocabulary file %s: %w", vocabPath, err)
	}

	vocab := make(map[string]int, len(rev))
	for id, token := range rev {
		vocab[token] = id
	}
	return vocab, rev, nil
}

// SentenceToIDs converts a sentence into token ids, mapping unknown tokens
// to UnkID.
func SentenceToIDs(sentence string, vocab map[string]int, normalizeDigits bool) []int {
	words := Tokenize(sentence)
	ids := make([]int, 0, len(words))
	for _, w := range words {
		if normalizeDigits {
			w = NormalizeDigits(w)
		}
		id, ok := vocab[w]
		if !ok {
			id = UnkID
		}
		ids = append(ids, id)
	}
	return ids
}

// DataToIDs rewrites a data file as token ids using the given vocabulary,
// one space-separated line of ids per input sentence. Skipped when the
// target already exists.
func DataToIDs(ctx context.Context, dataPath, targetPath, vocabPath string, normalizeDigits bool) error {
	logger := ctxlog.FromContext(ctx)
	if fsutil.FileExists(targetPath) {
		logger.Debug("Token-id file already exists, skipping.", "path", targetPath)
		return nil
	}
	logger.Info("Tokenizing data.", "data", dataPath, "target", targetPath)

	vocab, _, err := LoadVocabulary(vocabPath)
	if err != nil {
		return err
	}

	in, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create token-id file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	lineNo := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		lineNo++
		if lineNo%100000 == 0 {
			logger.Debug("Tokenizing data.", "line", lineNo)
		}
		ids := SentenceToIDs(scanner.Text(), vocab, normalizeDigits)
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		if _, err := w.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return fmt.Errorf("failed to write token-id file: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	return w.Flush()
}
