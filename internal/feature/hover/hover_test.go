package hover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/view"
	bibtexsem "texlab.dev/core/internal/semantic/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/workspace"
)

func TestHoverCitationFormatsAuthorYearTitle(t *testing.T) {
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	tex := ws.Open(file.Normalize("file:///tmp/main.tex"), `\cite{knuth1984}`, file.LangTex)
	bib := ws.Open(file.Normalize("file:///tmp/refs.bib"),
		`@article{knuth1984,author={Donald Knuth},year={1984},title={The TeXbook}}`, file.LangBib)
	v := &view.View{Start: tex, Docs: []*file.Document{tex, bib}}

	result, ok := Hover(v, latexsyn.DefaultConfig(), nil, tex, len(`\cite{knuth`))
	require.True(t, ok)
	assert.Contains(t, result.Markdown, "Donald Knuth")
	assert.Contains(t, result.Markdown, "1984")
	assert.Contains(t, result.Markdown, "The TeXbook")
}

func TestHoverEnvironmentNameShowsRawName(t *testing.T) {
	ws, err := workspace.New(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	doc := ws.Open(file.Normalize("file:///tmp/main.tex"), "\\begin{itemize}\\end{itemize}", file.LangTex)
	v := &view.View{Start: doc, Docs: []*file.Document{doc}}

	result, ok := Hover(v, latexsyn.DefaultConfig(), nil, doc, len("\\begin{item"))
	require.True(t, ok)
	assert.Contains(t, result.Markdown, "itemize")
}

func TestFormatCitationFallsBackToBareKey(t *testing.T) {
	entry := bibtexsem.Entry{Type: "misc", Key: "x", Fields: map[string]bibtexsem.Field{}}
	assert.Equal(t, "@misc{x}", FormatCitation(entry))
}
