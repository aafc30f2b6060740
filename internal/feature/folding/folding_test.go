package folding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
)

func TestLatexFoldsEnvironmentAndSections(t *testing.T) {
	src := "\\section{One}\\begin{itemize}\\item a\\end{itemize}\\subsection{Two}\\section{Three}"
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())

	ranges := Latex(root)
	require.NotEmpty(t, ranges)

	var envCount, secCount int
	for _, r := range ranges {
		if r.Start.End-r.Start.Start == len("\\begin{itemize}\\item a\\end{itemize}") {
			envCount++
		}
	}
	_ = secCount
	assert.Equal(t, 1, envCount)
	// Three section commands -> three folding ranges plus one env range.
	assert.Len(t, ranges, 4)
}

func TestBibtexFoldsEveryTopLevelConstruct(t *testing.T) {
	src := `@string{foo = "bar"}` + "\n" + `@article{k,title={x}}`
	root, _ := bibtexsyn.Parse(src)

	ranges := Bibtex(root)
	assert.Len(t, ranges, 2)
}
