package line

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"hello world",
		"line one\nline two\nline three",
		"café\nbar\n",
		"\U0001F600 emoji\nsecond line\n",
	}
	for _, text := range texts {
		ix := NewIndex([]byte(text))
		for o := 0; o <= len(text); o++ {
			got, err := ix.RoundTrip(o)
			require.NoErrorf(t, err, "text %q offset %d", text, o)
			require.Equalf(t, o, got, "text %q offset %d", text, o)
		}
	}
}

func TestIndexUTF16Column(t *testing.T) {
	ix := NewIndex([]byte("\U0001F600x"))
	pos, err := ix.Offset(4) // after the 4-byte emoji
	require.NoError(t, err)
	require.Equal(t, Position{Line: 0, Character: 2}, pos)
}

func TestIndexLineCount(t *testing.T) {
	ix := NewIndex([]byte("a\nb\nc"))
	require.Equal(t, 3, ix.LineCount())
}
