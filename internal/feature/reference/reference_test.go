package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texlab.dev/core/internal/feature/cursor"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/view"
	"texlab.dev/core/internal/workspace"
)

func newView(t *testing.T, docs map[string]string, langs map[string]file.Language) (*view.View, map[string]*file.Document) {
	t.Helper()
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	out := map[string]*file.Document{}
	var all []*file.Document
	for name, src := range docs {
		uri := file.Normalize("file:///tmp/" + name)
		d := ws.Open(uri, src, langs[name])
		out[name] = d
		all = append(all, d)
	}
	return &view.View{Start: out["main.tex"], Docs: all}, out
}

func TestFindLabelAcrossDocuments(t *testing.T) {
	v, docs := newView(t,
		map[string]string{"main.tex": `\label{sec:a}\ref{sec:a}`},
		map[string]file.Language{"main.tex": file.LangTex},
	)
	target, ok := cursor.In(docs["main.tex"], len(`\label{sec:`))
	require.True(t, ok)

	withDecl := Find(v, target, true)
	assert.Len(t, withDecl, 2)

	withoutDecl := Find(v, target, false)
	assert.Len(t, withoutDecl, 1)
}

func TestFindCitationLinksToEntryKey(t *testing.T) {
	v, docs := newView(t,
		map[string]string{
			"main.tex": `\cite{knuth1984}`,
			"refs.bib": `@article{knuth1984,title={x}}`,
		},
		map[string]file.Language{"main.tex": file.LangTex, "refs.bib": file.LangBib},
	)
	target, ok := cursor.In(docs["main.tex"], len(`\cite{knuth`))
	require.True(t, ok)

	locs := Find(v, target, true)
	assert.Len(t, locs, 2)
}

func TestRenameProducesWorkspaceEditPerURI(t *testing.T) {
	v, docs := newView(t,
		map[string]string{"main.tex": `\label{sec:a}\ref{sec:a}`},
		map[string]file.Language{"main.tex": file.LangTex},
	)
	target, ok := cursor.In(docs["main.tex"], len(`\label{sec:`))
	require.True(t, ok)

	we, err := Rename(v, target, "sec:b")
	require.NoError(t, err)
	require.Contains(t, we.Changes, docs["main.tex"].URI)
	assert.Len(t, we.Changes[docs["main.tex"].URI], 2)
	for _, e := range we.Changes[docs["main.tex"].URI] {
		assert.Equal(t, "sec:b", e.NewText)
	}
}

func TestRenameRejectsEmptyNewName(t *testing.T) {
	v, docs := newView(t,
		map[string]string{"main.tex": `\label{sec:a}`},
		map[string]file.Language{"main.tex": file.LangTex},
	)
	target, ok := cursor.In(docs["main.tex"], len(`\label{sec:`))
	require.True(t, ok)

	_, err := Rename(v, target, "")
	assert.Error(t, err)
}

func TestPrepareRangeFailsOutsideIdentifier(t *testing.T) {
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	doc := ws.Open(file.Normalize("file:///tmp/main.tex"), "plain text", file.LangTex)

	_, ok := PrepareRange(doc, 3)
	assert.False(t, ok)
}
