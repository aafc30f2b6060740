package codeaction

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/workspace"
)

func parseDoc(t *testing.T, src string) *file.Document {
	t.Helper()
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws.Open(file.Normalize("file:///tmp/main.tex"), src, file.LangTex)
}

func TestRemoveDuplicateImportsKeepsFirstOccurrence(t *testing.T) {
	src := `\usepackage{amsmath}\usepackage{graphicx}\usepackage{amsmath}`
	doc := parseDoc(t, src)

	edits := RemoveDuplicateImports(doc)
	require.Len(t, edits, 1)

	secondAmsmath := len(`\usepackage{amsmath}\usepackage{graphicx}`)
	require.Equal(t, secondAmsmath, edits[0].Range.Start)
	require.Equal(t, len(src), edits[0].Range.End)
	require.Empty(t, edits[0].NewText)
}

func TestRemoveDuplicateImportsNoneWhenAllDistinct(t *testing.T) {
	doc := parseDoc(t, `\usepackage{amsmath}\usepackage{graphicx}`)
	require.Empty(t, RemoveDuplicateImports(doc))
}

func TestRemoveDuplicateImportsIgnoresDocumentClass(t *testing.T) {
	doc := parseDoc(t, `\documentclass{article}\documentclass{article}`)
	require.Empty(t, RemoveDuplicateImports(doc))
}
