package symbol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"texlab.dev/core/internal/project/order"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/workspace"

	"texlab.dev/core/internal/file"
)

func parseDoc(t *testing.T, src string) *file.Document {
	t.Helper()
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws.Open(file.Normalize("file:///tmp/doc.tex"), src, file.LangTex)
}

func TestDocumentNestsSectionsByLevel(t *testing.T) {
	doc := parseDoc(t, `\section{One}\subsection{Two}\section{Three}`)
	roots := Document(doc, latexsyn.DefaultConfig())

	require.Len(t, roots, 2)
	require.Equal(t, "One", roots[0].Name)
	require.Len(t, roots[0].Children, 1)
	require.Equal(t, "Two", roots[0].Children[0].Name)
	require.Equal(t, "Three", roots[1].Name)
}

func TestDocumentAttachesFigureToEnclosingSection(t *testing.T) {
	src := "\\section{Intro}\\begin{figure}\\label{fig:a}\\end{figure}"
	doc := parseDoc(t, src)
	roots := Document(doc, latexsyn.DefaultConfig())

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	require.Equal(t, KindFigure, roots[0].Children[0].Kind)
}

func TestDocumentOrphanLabelBecomesLeaf(t *testing.T) {
	doc := parseDoc(t, `\label{standalone}`)
	roots := Document(doc, latexsyn.DefaultConfig())

	require.Len(t, roots, 1)
	require.Equal(t, KindLabel, roots[0].Kind)
	require.Equal(t, "standalone", roots[0].Name)
}

func TestDocumentLabelInsideFigureIsNotDuplicated(t *testing.T) {
	src := "\\begin{figure}\\label{fig:a}\\end{figure}"
	doc := parseDoc(t, src)
	roots := Document(doc, latexsyn.DefaultConfig())

	require.Len(t, roots, 1)
	require.Equal(t, KindFigure, roots[0].Kind)
}

func TestDocumentTreeShapeMatchesExpected(t *testing.T) {
	doc := parseDoc(t, `\section{Top}\label{sec:top}`)
	roots := Document(doc, latexsyn.DefaultConfig())

	want := []*Symbol{
		{
			Name: "Top",
			Kind: KindSection,
			Children: []*Symbol{
				{Name: "sec:top", Kind: KindLabel},
			},
		},
	}
	diff := cmp.Diff(want, roots,
		cmpIgnoreRanges()...,
	)
	if diff != "" {
		t.Errorf("symbol tree shape mismatch (-want +got):\n%s", diff)
	}
}

func cmpIgnoreRanges() []cmp.Option {
	return []cmp.Option{
		cmp.Comparer(func(a, b file.Range) bool { return true }),
	}
}

func TestMatchesQueryWordSequence(t *testing.T) {
	require.True(t, matchesQuery("Section Introduction", "sec intro"))
	require.False(t, matchesQuery("Section Introduction", "intro sec"))
	require.True(t, matchesQuery("anything", ""))
}

func TestWorkspaceFiltersByQuery(t *testing.T) {
	doc := parseDoc(t, `\section{Alpha}\section{Beta}`)
	o := order.Build(nil, func(file.URI) []file.URI { return nil }, []file.URI{doc.URI})
	flat := Workspace([]*file.Document{doc}, latexsyn.DefaultConfig(), o, "beta")

	require.Len(t, flat, 1)
	require.Equal(t, "Beta", flat[0].Symbol.Name)
}
