package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/seqsweep/internal/ctxlog"
	"github.com/vk/seqsweep/internal/fsutil"
)

// oneWayStamp marks a dialogs directory whose one-way conversations have
// already been removed, so repeated preparations skip the scan.
const oneWayStamp = ".one_way_conv_removed"

// turn is one speaker's consecutive messages folded into a single line.
type turn struct {
	speaker string
	text    string
}

// RemoveOneWayConversations deletes every tsv under dialogsPath in which
// fewer than two distinct speakers appear. Such files cannot yield
// encoder/decoder pairs. A stamp file makes the pass run once.
func RemoveOneWayConversations(ctx context.Context, dialogsPath string) error {
	logger := ctxlog.FromContext(ctx)
	stampPath := filepath.Join(dialogsPath, oneWayStamp)
	if fsutil.FileExists(stampPath) {
		logger.Debug("One-way conversations already removed.")
		return nil
	}
	logger.Info("Removing one-way conversations.", "path", dialogsPath)

	files, err := fsutil.FindFilesByExtension(dialogsPath, ".tsv")
	if err != nil {
		return fmt.Errorf("failed to scan dialogs directory: %w", err)
	}

	removed := 0
	for _, tsv := range files {
		speakers, err := distinctSpeakers(tsv)
		if err != nil {
			return err
		}
		if speakers < 2 {
			if err := os.Remove(tsv); err != nil {
				return fmt.Errorf("failed to remove one-way conversation %s: %w", tsv, err)
			}
			removed++
		}
	}
	logger.Info("One-way conversations removed.", "count", removed)

	stamp, err := os.Create(stampPath)
	if err != nil {
		return fmt.Errorf("failed to create stamp file: %w", err)
	}
	return stamp.Close()
}

// distinctSpeakers counts the different values of the speaker column.
func distinctSpeakers(tsvPath string) (int, error) {
	f, err := os.Open(tsvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", tsvPath, err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		seen[fields[1]] = struct{}{}
		if len(seen) >= 2 {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", tsvPath, err)
	}
	return len(seen), nil
}

// BuildPairs converts the dialogs under dialogsPath into paired .enc/.dec
// files: each complete (question, answer) turn pair becomes one line in
// the encoder file and one in the decoder file. The first three quarters
// of the pairs go to the train files, the remainder to the test files.
// Skipped entirely when the train files already exist.
func BuildPairs(ctx context.Context, dialogsPath, trainEnc, trainDec, testEnc, testDec string) error {
	logger := ctxlog.FromContext(ctx)
	if fsutil.FileExists(trainEnc) && fsutil.FileExists(trainDec) {
		logger.Info("Dataset already created, skipping.")
		return nil
	}

	if err := RemoveOneWayConversations(ctx, dialogsPath); err != nil {
		return err
	}

	files, err := fsutil.FindFilesByExtension(dialogsPath, ".tsv")
	if err != nil {
		return fmt.Errorf("failed to scan dialogs directory: %w", err)
	}
	logger.Info("Creating dataset from dialog corpus.", "files", len(files))

	var encLines, decLines []string
	for i, tsv := range files {
		if (i+1)%1000 == 0 {
			logger.Debug("Parsing dialog files.", "done", i+1, "total", len(files))
		}
		turns, err := readTurns(tsv)
		if err != nil {
			return err
		}
		// Only complete pairs survive; a trailing unanswered turn is dropped.
		for k := 0; k+1 < len(turns); k += 2 {
			encLines = append(encLines, turns[k].text)
			decLines = append(decLines, turns[k+1].text)
		}
	}

	split := len(encLines) * 3 / 4
	if err := writeLines(trainEnc, encLines[:split]); err != nil {
		return err
	}
	if err := writeLines(testEnc, encLines[split:]); err != nil {
		return err
	}
	if err := writeLines(trainDec, decLines[:split]); err != nil {
		return err
	}
	if err := writeLines(testDec, decLines[split:]); err != nil {
		return err
	}
	logger.Info("Dataset created.", "train_pairs", split, "test_pairs", len(encLines)-split)
	return nil
}

// readTurns parses one conversation tsv into alternating-speaker turns,
// folding consecutive messages from the same speaker into one line. A
// row is `timestamp \t from \t [to \t] text`; the text is always the last
// column.
func readTurns(tsvPath string) ([]turn, error) {
	f, err := os.Open(tsvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", tsvPath, err)
	}
	defer f.Close()

	var turns []turn
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 3 {
			continue
		}
		speaker := fields[1]
		text := strings.TrimSpace(fields[len(fields)-1])
		if text == "" {
			continue
		}
		if len(turns) > 0 && turns[len(turns)-1].speaker == speaker {
			turns[len(turns)-1].text += " " + text
			continue
		}
		turns = append(turns, turn{speaker: speaker, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tsvPath, err)
	}
	return turns, nil
}

// writeLines writes lines to path, one per line.
func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return w.Flush()
}
