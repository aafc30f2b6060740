package formatting

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/workspace"
)

func parseBib(t *testing.T, src string) *file.Document {
	t.Helper()
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws.Open(file.Normalize("file:///tmp/refs.bib"), src, file.LangBib)
}

func TestBibtexFormatsEntryWithAlignedFields(t *testing.T) {
	doc := parseBib(t, "@article{knuth1984,title={x},year={1984}}")
	edits, ok := Bibtex(doc, DefaultOptions())
	require.True(t, ok)
	require.Len(t, edits, 1)

	out := edits[0].NewText
	require.Contains(t, out, "@article{knuth1984,")
	require.Contains(t, out, "title = {x},")
	require.Contains(t, out, "year  = {1984}")
}

func TestBibtexFullDocumentReplacementRange(t *testing.T) {
	src := "@article{k,title={x}}"
	doc := parseBib(t, src)
	edits, ok := Bibtex(doc, DefaultOptions())
	require.True(t, ok)
	require.Equal(t, 0, edits[0].Range.Start)
	require.Equal(t, len(src), edits[0].Range.End)
}

func TestBibtexOrdersStringsAndEntriesBySourcePosition(t *testing.T) {
	src := `@string{foo = "bar"}` + "\n" + `@article{k,title={x}}`
	doc := parseBib(t, src)
	edits, ok := Bibtex(doc, DefaultOptions())
	require.True(t, ok)

	out := edits[0].NewText
	fooIdx := indexOf(out, "@string{foo")
	articleIdx := indexOf(out, "@article{k")
	require.Greater(t, articleIdx, fooIdx)
}

func TestNonBibtexDocumentReturnsFalse(t *testing.T) {
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	doc := ws.Open(file.Normalize("file:///tmp/main.tex"), `\section{x}`, file.LangTex)

	_, ok := Bibtex(doc, DefaultOptions())
	require.False(t, ok)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
