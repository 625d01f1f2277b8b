package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain words",
			input:    "I have a dog",
			expected: []string{"I", "have", "a", "dog"},
		},
		{
			name:     "punctuation split into tokens",
			input:    "Hello, world!",
			expected: []string{"Hello", ",", "world", "!"},
		},
		{
			name:     "adjacent punctuation",
			input:    `"quoted?"`,
			expected: []string{`"`, "quoted", "?", `"`},
		},
		{
			name:     "parentheses and colon",
			input:    "see (this): now",
			expected: []string{"see", "(", "this", ")", ":", "now"},
		},
		{
			name:     "surrounding whitespace ignored",
			input:    "  spaced   out  ",
			expected: []string{"spaced", "out"},
		},
		{
			name:     "empty sentence",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Fatalf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeDigits(t *testing.T) {
	t.Parallel()

	require.Equal(t, "v0.0.0", NormalizeDigits("v1.2.3"))
	require.Equal(t, "000", NormalizeDigits("427"))
	require.Equal(t, "word", NormalizeDigits("word"))
}

func TestSpecialTokenIDs(t *testing.T) {
	t.Parallel()

	// The trainer hardcodes these ids; they are part of the data format.
	require.Equal(t, []string{"_PAD", "_GO", "_EOS", "_UNK"}, StartVocab)
	require.Equal(t, 0, PadID)
	require.Equal(t, 1, GoID)
	require.Equal(t, 2, EOSID)
	require.Equal(t, 3, UnkID)
}
