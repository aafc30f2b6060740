package latex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"texlab.dev/core/internal/cst"
)

func roundTrip(t *testing.T, src string) *cst.Node {
	t.Helper()
	root, _ := Parse(src, DefaultConfig())
	require.Equal(t, src, root.Text(), "lossless round trip")
	return root
}

func TestLosslessRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello world",
		`\section{Intro}`,
		`\cite{foo,bar}`,
		"\\begin{itemize}\n\\item one\n\\item two\n\\end{itemize}",
		`$x + y$`,
		`\[ x = y \]`,
		"% a comment\n\\label{eq:1}",
		"\\begin{verbatim}\\notacommand{}\\end{verbatim}",
		"\\cite{foo} % trailing comment",
		"{unterminated",
		"\\begin{itemize}\\item a",
	}
	for _, src := range cases {
		roundTrip(t, src)
	}
}

func TestUnexpectedRCurlyDiagnostic(t *testing.T) {
	_, diags := Parse("foo}bar", DefaultConfig())
	require.Len(t, diags, 1)
	require.Equal(t, CodeUnexpectedRCurly, diags[0].Code)
}

func TestMismatchedEnvironmentDiagnostic(t *testing.T) {
	_, diags := Parse("\\begin{itemize}\\end{enumerate}", DefaultConfig())
	require.Len(t, diags, 1)
	require.Equal(t, CodeMismatchedEnvironment, diags[0].Code)
}

func TestCitationKeysParsed(t *testing.T) {
	root, _ := Parse(`\cite{foo,bar}`, DefaultConfig())
	cmds := cst.Tokens(root)
	var names []string
	for _, tok := range cmds {
		if tok.Kind() == TokCommandName {
			names = append(names, tok.RawText())
		}
	}
	require.Contains(t, names, `\cite`)
}
