package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
)

func TestInLatexClassifiesLabelDefinition(t *testing.T) {
	src := `\label{sec:intro}`
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())

	target, ok := InLatex(root, len(`\label{sec:`))
	require.True(t, ok)
	assert.Equal(t, Label, target.Kind)
	assert.Equal(t, "sec:intro", target.Name)
}

func TestInLatexClassifiesCitation(t *testing.T) {
	src := `\cite{foo,bar}`
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())

	target, ok := InLatex(root, len(`\cite{foo,b`))
	require.True(t, ok)
	assert.Equal(t, Citation, target.Kind)
	assert.Equal(t, "bar", target.Name)
}

func TestInLatexClassifiesEnvironmentName(t *testing.T) {
	src := "\\begin{itemize}\\end{itemize}"
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())

	target, ok := InLatex(root, len("\\begin{item"))
	require.True(t, ok)
	assert.Equal(t, Environment, target.Kind)
	assert.Equal(t, "itemize", target.Name)
}

func TestInLatexClassifiesUserDefinedCommand(t *testing.T) {
	src := `\mycommand{x}`
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())

	target, ok := InLatex(root, len(`\mycom`))
	require.True(t, ok)
	assert.Equal(t, Command, target.Kind)
	assert.Equal(t, `\mycommand`, target.Name)
}

func TestInLatexBuiltinCommandIsNotATarget(t *testing.T) {
	src := `\section{x}`
	root, _ := latexsyn.Parse(src, latexsyn.DefaultConfig())

	_, ok := InLatex(root, len(`\sec`))
	assert.False(t, ok)
}

func TestInBibtexClassifiesEntryKey(t *testing.T) {
	src := "@article{knuth1984,title={x}}"
	root, _ := bibtexsyn.Parse(src)

	target, ok := InBibtex(root, len("@article{knuth"))
	require.True(t, ok)
	assert.Equal(t, BibEntryKey, target.Kind)
	assert.Equal(t, "knuth1984", target.Name)
}
