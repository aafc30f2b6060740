package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texlab.dev/core/internal/file"
	latexsem "texlab.dev/core/internal/semantic/latex"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestOpenParsesLatexOverlay(t *testing.T) {
	ws := newTestWorkspace(t)
	uri := file.Normalize("file:///tmp/main.tex")
	doc := ws.Open(uri, `\section{Intro}\label{sec:intro}`, file.LangTex)

	require.Equal(t, file.OwnerClient, doc.Owner)
	ov, ok := doc.Payload.(*latexsem.Overlay)
	require.True(t, ok)
	require.Len(t, ov.Labels, 1)

	got, ok := ws.Lookup(uri)
	require.True(t, ok)
	require.Same(t, doc, got)
}

func TestClientOwnershipWinsOverServerLoad(t *testing.T) {
	ws := newTestWorkspace(t)
	uri := file.Normalize("file:///tmp/owned.tex")
	client := ws.Open(uri, `\section{A}`, file.LangTex)

	// Load should refuse to clobber a client-owned document even if the
	// path doesn't exist on disk (it should return early before os.ReadFile).
	got, err := ws.Load(uri)
	require.NoError(t, err)
	require.Same(t, client, got)
}

func TestCloseDocumentRemovesEntry(t *testing.T) {
	ws := newTestWorkspace(t)
	uri := file.Normalize("file:///tmp/closing.tex")
	ws.Open(uri, "hello", file.LangTex)
	ws.CloseDocument(uri)

	_, ok := ws.Lookup(uri)
	require.False(t, ok)
}

func TestIterVisitsAllDocuments(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Open(file.Normalize("file:///tmp/a.tex"), "a", file.LangTex)
	ws.Open(file.Normalize("file:///tmp/b.tex"), "b", file.LangTex)

	seen := map[string]bool{}
	ws.Iter(func(d *file.Document) { seen[string(d.URI)] = true })
	require.Len(t, seen, 2)
}
