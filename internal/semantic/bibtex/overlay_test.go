package bibtex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"texlab.dev/core/internal/syntax/bibtex"
)

func TestExtractEntry(t *testing.T) {
	src := `@article{foo, title = {A Title}, author = "A. B." # " and C. D."}`
	root, _ := bibtex.Parse(src)
	ov := Extract(root)

	require.Len(t, ov.Entries, 1)
	e := ov.Entries[0]
	require.Equal(t, "article", e.Type)
	require.Equal(t, "foo", e.Key)
	require.Equal(t, "A Title", e.Fields["title"].Text)
	require.Equal(t, "A. B.  and C. D.", e.Fields["author"].Text)
	require.Equal(t, []string{"title", "author"}, e.FieldOrder)
}

func TestExtractStringDef(t *testing.T) {
	src := `@string{anthropic = "Anthropic"}`
	root, _ := bibtex.Parse(src)
	ov := Extract(root)

	require.Len(t, ov.Strings, 1)
	require.Equal(t, "anthropic", ov.Strings[0].Name)
	require.Equal(t, "Anthropic", ov.Strings[0].Text)
}

func TestExtractPreamble(t *testing.T) {
	src := `@preamble{"\newcommand{\noop}{}"}`
	root, _ := bibtex.Parse(src)
	ov := Extract(root)
	require.Len(t, ov.Preambles, 1)
}

func TestEntryKeyRange(t *testing.T) {
	src := `@article{foo, title = {x}}`
	root, _ := bibtex.Parse(src)
	ov := Extract(root)
	require.Len(t, ov.Entries, 1)
	key := ov.Entries[0].KeyRange
	require.Equal(t, "foo", src[key.Start:key.End])
}
