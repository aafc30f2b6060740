package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"texlab.dev/core/internal/file"
	latexsem "texlab.dev/core/internal/semantic/latex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

type fakeResolver struct {
	overlays map[file.URI]*latexsem.Overlay
	docs     map[file.URI]bool
}

func (r *fakeResolver) Lookup(uri file.URI) (*latexsem.Overlay, bool) {
	ov, ok := r.overlays[uri]
	return ov, ok
}
func (r *fakeResolver) Exists(uri file.URI) bool { return r.docs[uri] }
func (r *fakeResolver) DatabaseLookup(string) (file.URI, bool) { return "", false }

func overlayFor(src string) *latexsem.Overlay {
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())
	return latexsem.Extract(root, latexsyn.DefaultConfig())
}

func TestBuildResolvesExplicitLinks(t *testing.T) {
	base := file.Normalize("file:///proj/")
	main := base.Join("main.tex")
	chapter := base.Join("chapter.tex")

	r := &fakeResolver{
		overlays: map[file.URI]*latexsem.Overlay{
			main:    overlayFor(`\include{chapter}`),
			chapter: overlayFor(`hello`),
		},
		docs: map[file.URI]bool{main: true, chapter: true},
	}
	g := Build(main, base, r)
	require.Len(t, g.Edges, 1)
	require.Equal(t, chapter, g.Edges[0].To)
	require.Equal(t, taxonomy.IncludeLatex, g.Edges[0].Link.Kind)
	require.Empty(t, g.Missing)
}

func TestBuildRecordsMissingLinks(t *testing.T) {
	base := file.Normalize("file:///proj/")
	main := base.Join("main.tex")
	r := &fakeResolver{
		overlays: map[file.URI]*latexsem.Overlay{main: overlayFor(`\include{ghost}`)},
		docs:     map[file.URI]bool{main: true},
	}
	g := Build(main, base, r)
	require.Empty(t, g.Edges)
	require.Len(t, g.Missing, 1)
}

func TestBuildAddsImplicitAuxLogSiblings(t *testing.T) {
	base := file.Normalize("file:///proj/")
	main := base.Join("main.tex")
	auxU := base.Join("main.aux")
	logU := base.Join("main.log")
	r := &fakeResolver{
		overlays: map[file.URI]*latexsem.Overlay{main: overlayFor(`hello`)},
		docs:     map[file.URI]bool{main: true, auxU: true, logU: true},
	}
	g := Build(main, base, r)
	require.Len(t, g.Edges, 2)
}

func TestPreorderDeduplicates(t *testing.T) {
	base := file.Normalize("file:///proj/")
	a := base.Join("a.tex")
	b := base.Join("b.tex")
	r := &fakeResolver{
		overlays: map[file.URI]*latexsem.Overlay{
			a: overlayFor(`\input{b}\input{b}`),
			b: overlayFor(`hello`),
		},
		docs: map[file.URI]bool{a: true, b: true},
	}
	g := Build(a, base, r)
	order := g.Preorder()
	require.Equal(t, []file.URI{a, b}, order)
}

func TestCyclesTerminate(t *testing.T) {
	base := file.Normalize("file:///proj/")
	a := base.Join("a.tex")
	b := base.Join("b.tex")
	r := &fakeResolver{
		overlays: map[file.URI]*latexsem.Overlay{
			a: overlayFor(`\input{b}`),
			b: overlayFor(`\input{a}`),
		},
		docs: map[file.URI]bool{a: true, b: true},
	}
	g := Build(a, base, r)
	require.Len(t, g.Preorder(), 2)
}
