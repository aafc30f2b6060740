package aux

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractNewLabel(t *testing.T) {
	src := `\newlabel{sec:intro}{{1.2}{3}{Introduction}{section.1.2}{}}`
	ov := Extract(src)
	require.Equal(t, "1.2", ov.LabelNumbers["sec:intro"])
}

func TestExtractWriteFileCaptions(t *testing.T) {
	src := `\@writefile{lof}{\contentsline {figure}{\numberline {1}{\ignorespaces A figure}}{3}{}}`
	ov := Extract(src)
	require.Len(t, ov.Captions, 1)
	require.Equal(t, CaptionFigure, ov.Captions[0].Kind)
	require.Equal(t, "3", ov.Captions[0].Page)
}

func TestExtractMultipleLabels(t *testing.T) {
	src := "\\newlabel{a}{{1}{1}}\n\\newlabel{b}{{2}{1}}"
	ov := Extract(src)
	require.Equal(t, "1", ov.LabelNumbers["a"])
	require.Equal(t, "2", ov.LabelNumbers["b"])
}
