package preset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/seqsweep/internal/model"
)

func builtinSweep() *model.Sweep {
	s := model.NewSweep()
	for _, p := range Builtin() {
		s.Upsert(p)
	}
	return s
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	presets := Builtin()
	require.Len(t, presets, 6, "the launcher defines exactly six presets")

	names := make([]string, 0, len(presets))
	dirs := make(map[string]struct{})
	for _, p := range presets {
		names = append(names, p.Name)
		require.NoError(t, p.Validate())
		require.NotEmpty(t, p.ModelDir)
		dirs[p.ModelDir] = struct{}{}
	}
	require.Equal(t, []string{"base-gru", "base-lstm", "deep-gru", "deep-lstm", "wide-attn", "big-lstm"}, names)
	require.Len(t, dirs, 6, "every preset must address a distinct checkpoint directory")
}

func TestBuiltinReturnsCopies(t *testing.T) {
	t.Parallel()

	first := Builtin()
	first[0].Size = 1
	require.Equal(t, 1024, Builtin()[0].Size, "mutating a returned preset must not leak into the table")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	sweep := builtinSweep()

	testCases := []struct {
		name     string
		selector string
		expected string
		wantErr  bool
	}{
		{name: "first numeric selector", selector: "1", expected: "base-gru"},
		{name: "last numeric selector", selector: "6", expected: "big-lstm"},
		{name: "name selector", selector: "deep-lstm", expected: "deep-lstm"},
		{name: "zero is out of range", selector: "0", wantErr: true},
		{name: "seven is out of range", selector: "7", wantErr: true},
		{name: "negative is out of range", selector: "-1", wantErr: true},
		{name: "unknown name", selector: "colossal", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, err := Resolve(sweep, tc.selector)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownSelector)
				require.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, p.Name)
		})
	}
}
