package buildlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFatalError(t *testing.T) {
	log := "This is pdfTeX\n" +
		"(./main.tex\n" +
		"! Undefined control sequence.\n" +
		"l.12 \\foo\n" +
		"          \n" +
		")\n"
	errs := Parse(log)
	require.Len(t, errs, 1)
	require.Equal(t, SeverityError, errs[0].Severity)
	require.Equal(t, "main.tex", errs[0].RelativePath)
	require.Equal(t, 11, errs[0].Line)
}

func TestParseWarning(t *testing.T) {
	log := "(./main.tex\n" +
		"LaTeX Warning: Reference `fig:missing' on page 1 undefined on input line 7.\n" +
		")\n"
	errs := Parse(log)
	require.Len(t, errs, 1)
	require.Equal(t, SeverityWarning, errs[0].Severity)
	require.Equal(t, 6, errs[0].Line)
}

func TestParseBadBox(t *testing.T) {
	log := "(./main.tex\n" +
		"Overfull \\hbox (15.0pt too wide) in paragraph at lines 4--5\n" +
		")\n"
	errs := Parse(log)
	require.Len(t, errs, 1)
	require.Equal(t, SeverityWarning, errs[0].Severity)
}

func TestFileStackNesting(t *testing.T) {
	log := "(./main.tex (./chapters/intro.tex\n" +
		"! Missing $ inserted.\n" +
		"l.3 x\n" +
		")\n" +
		"! Undefined control sequence.\n" +
		"l.20 \\bar\n" +
		")\n"
	errs := Parse(log)
	require.Len(t, errs, 2)
	require.Equal(t, "chapters/intro.tex", errs[0].RelativePath)
	require.Equal(t, "main.tex", errs[1].RelativePath)
}

func TestDecodePassthrough(t *testing.T) {
	out := Decode([]byte("plain ascii log\n"))
	require.Equal(t, "plain ascii log\n", out)
}
