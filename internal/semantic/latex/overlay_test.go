package latex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"texlab.dev/core/internal/syntax/latex"
)

func TestExtractLabelsAndCitations(t *testing.T) {
	src := `\section{Intro}\label{sec:intro}\cite{foo,bar}`
	root, _ := latex.Parse(src, latex.DefaultConfig())
	ov := Extract(root, latex.DefaultConfig())

	require.Len(t, ov.Labels, 1)
	require.Equal(t, "sec:intro", ov.Labels[0].Name)
	require.Equal(t, LabelDefinition, ov.Labels[0].Kind)

	require.Len(t, ov.Citations, 2)
	require.Equal(t, "foo", ov.Citations[0].Name)
	require.Equal(t, "bar", ov.Citations[1].Name)
}

func TestExtractIncludesAndCanBeRoot(t *testing.T) {
	src := `\documentclass{article}\usepackage{amsmath}\include{chapters/intro}\addbibresource{refs.bib}`
	root, _ := latex.Parse(src, latex.DefaultConfig())
	ov := Extract(root, latex.DefaultConfig())

	require.True(t, ov.CanBeRoot)
	require.Len(t, ov.Includes, 4)
}

func TestExtractEnvironments(t *testing.T) {
	src := "\\begin{itemize}\\item a\\item b\\end{itemize}"
	root, _ := latex.Parse(src, latex.DefaultConfig())
	ov := Extract(root, latex.DefaultConfig())
	require.Len(t, ov.Environments, 1)
	require.Equal(t, "itemize", ov.Environments[0].Name)
}

func TestCrossDocumentCitationRange(t *testing.T) {
	// Mirrors spec.md §8 scenario 1: "\cite{foo}\n\addbibresource{foo.bib}"
	// with a request at line 0 column 7 (the "foo" key).
	src := "\\cite{foo}\n\\addbibresource{foo.bib}"
	root, _ := latex.Parse(src, latex.DefaultConfig())
	ov := Extract(root, latex.DefaultConfig())
	require.Len(t, ov.Citations, 1)
	require.Equal(t, "foo", ov.Citations[0].Name)
	require.Equal(t, 6, ov.Citations[0].Range.Start)
	require.Equal(t, 9, ov.Citations[0].Range.End)
}
