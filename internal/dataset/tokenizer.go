package dataset

import (
	"regexp"
	"strings"
)

// Special vocabulary symbols. They always occupy the first four ids, in
// this order, of every vocabulary file.
const (
	PadToken = "_PAD"
	GoToken  = "_GO"
	EOSToken = "_EOS"
	UnkToken = "_UNK"

	PadID = 0
	GoID  = 1
	EOSID = 2
	UnkID = 3
)

// StartVocab is the fixed vocabulary header.
var StartVocab = []string{PadToken, GoToken, EOSToken, UnkToken}

var (
	// wordSplit separates sentence punctuation into standalone tokens.
	wordSplit = regexp.MustCompile(`[.,!?"':;)(]`)
	// digitRE matches single digits for normalization.
	digitRE = regexp.MustCompile(`\d`)
)

// Tokenize splits a sentence into tokens: whitespace first, then each
// fragment is split around punctuation with the punctuation kept as its
// own token. Empty fragments are dropped.
func Tokenize(sentence string) []string {
	var words []string
	for _, fragment := range strings.Fields(sentence) {
		words = append(words, splitKeepingSeparators(fragment)...)
	}
	return words
}

// splitKeepingSeparators splits s around wordSplit matches, keeping the
// matched separators as elements and discarding empty segments.
func splitKeepingSeparators(s string) []string {
	var out []string
	last := 0
	for _, loc := range wordSplit.FindAllStringIndex(s, -1) {
		if seg := s[last:loc[0]]; seg != "" {
			out = append(out, seg)
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if seg := s[last:]; seg != "" {
		out = append(out, seg)
	}
	return out
}

// NormalizeDigits replaces every digit in the token with "0", so that all
// numbers share vocabulary entries.
func NormalizeDigits(token string) string {
	return digitRE.ReplaceAllString(token, "0")
}
