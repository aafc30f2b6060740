package links

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/graph"
	latexsem "texlab.dev/core/internal/semantic/latex"
)

func TestFromGraphReturnsOnlyLinkedEdgesFromDoc(t *testing.T) {
	main := file.Normalize("file:///tmp/main.tex")
	chapter := file.Normalize("file:///tmp/chapter.tex")
	other := file.Normalize("file:///tmp/other.tex")

	g := &graph.Graph{
		Start: main,
		Edges: []graph.Edge{
			{From: main, To: chapter, Link: &latexsem.IncludeLink{Range: file.Range{Start: 10, End: 20}}},
			{From: main, To: other, Link: nil}, // implicit .aux/.log sibling edge
			{From: chapter, To: other, Link: &latexsem.IncludeLink{Range: file.Range{Start: 0, End: 5}}},
		},
	}

	got := FromGraph(main, g)
	assert.Len(t, got, 1)
	assert.Equal(t, chapter, got[0].Target)
	assert.Equal(t, file.Range{Start: 10, End: 20}, got[0].Range)
}
