package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/view"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/workspace"
)

func newView(t *testing.T, src string) (*view.View, *file.Document) {
	t.Helper()
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	doc := ws.Open(file.Normalize("file:///tmp/main.tex"), src, file.LangTex)
	return &view.View{Start: doc, Docs: []*file.Document{doc}}, doc
}

func TestRenderSectionLabel(t *testing.T) {
	v, _ := newView(t, `\section{Introduction}\label{sec:intro}`)
	got, ok := Render(v, latexsyn.DefaultConfig(), "sec:intro")
	require.True(t, ok)
	assert.Equal(t, KindSection, got.Kind)
	assert.Contains(t, got.Text, "Introduction")
}

func TestRenderFigureLabel(t *testing.T) {
	src := "\\begin{figure}\\caption{A cat}\\label{fig:cat}\\end{figure}"
	v, _ := newView(t, src)
	got, ok := Render(v, latexsyn.DefaultConfig(), "fig:cat")
	require.True(t, ok)
	assert.Equal(t, KindFloat, got.Kind)
	assert.Contains(t, got.Text, "Figure")
	assert.Contains(t, got.Text, "A cat")
}

func TestRenderUnknownLabelFails(t *testing.T) {
	v, _ := newView(t, `\section{Introduction}`)
	_, ok := Render(v, latexsyn.DefaultConfig(), "nope")
	assert.False(t, ok)
}
