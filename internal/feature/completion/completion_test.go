package completion

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

type fakeDatabase struct {
	packages, classes, entryTypes, fieldNames, tikzLibs []string
}

func (f fakeDatabase) Packages() []string      { return f.packages }
func (f fakeDatabase) Classes() []string       { return f.classes }
func (f fakeDatabase) EntryTypes() []string    { return f.entryTypes }
func (f fakeDatabase) FieldNames() []string    { return f.fieldNames }
func (f fakeDatabase) TikzLibraries() []string { return f.tikzLibs }

func parseDoc(t *testing.T, uri, src string, lang file.Language) *file.Document {
	t.Helper()
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws.Open(file.Normalize(uri), src, lang)
}

func TestFinalizeSortsAndDedups(t *testing.T) {
	items := []Item{
		{Label: "b", Score: 1},
		{Label: "a", Score: 2},
		{Label: "a", Score: 1}, // duplicate label, dropped
		{Label: "c", Score: 2, Preselect: true},
	}
	out := finalize(items)
	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].Label) // preselect first
	assert.Equal(t, "a", out[1].Label) // then score desc
	assert.Equal(t, "b", out[2].Label)
}

func TestFinalizeCapsAtMaxItems(t *testing.T) {
	items := make([]Item, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, Item{Label: string(rune('a' + i%26)) + string(rune(i))})
	}
	out := finalize(items)
	assert.LessOrEqual(t, len(out), maxItems)
}

func TestDispatchCommandNameCompletion(t *testing.T) {
	doc := parseDoc(t, "file:///tmp/main.tex", `\sec`, file.LangTex)
	v := &view.View{Start: doc, Docs: []*file.Document{doc}}

	items := Dispatch(v, latexsyn.DefaultConfig(), nil, nil, nil, doc, len(`\sec`))
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "section")
}

func TestDispatchCitationCompletion(t *testing.T) {
	tex := parseDoc(t, "file:///tmp/main.tex", `\cite{}`, file.LangTex)
	bib := parseDoc(t, "file:///tmp/refs.bib", "@article{knuth1984, title = {x}}", file.LangBib)
	v := &view.View{Start: tex, Docs: []*file.Document{tex, bib}}

	offset := len(`\cite{`)
	items := Dispatch(v, latexsyn.DefaultConfig(), nil, nil, nil, tex, offset)
	require.Len(t, items, 1)
	assert.Equal(t, "knuth1984", items[0].Label)
	assert.Equal(t, CategoryCitation, items[0].Category)
}

func TestDispatchEnvironmentNamePreselectsMatchingBegin(t *testing.T) {
	src := "\\begin{itemize}\\end{}"
	doc := parseDoc(t, "file:///tmp/main.tex", src, file.LangTex)
	v := &view.View{Start: doc, Docs: []*file.Document{doc}}

	offset := len("\\begin{itemize}\\end{")
	items := Dispatch(v, latexsyn.DefaultConfig(), nil, nil, nil, doc, offset)
	var preselected string
	for _, it := range items {
		if it.Preselect {
			preselected = it.Label
		}
	}
	assert.Equal(t, "itemize", preselected)
}

func TestDispatchBibtexEntryTypeCompletion(t *testing.T) {
	doc := parseDoc(t, "file:///tmp/refs.bib", "@art", file.LangBib)
	db := fakeDatabase{entryTypes: []string{"article", "book"}}

	items := Dispatch(nil, nil, db, nil, nil, doc, len("@art"))
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "article")
}
