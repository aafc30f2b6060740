package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	o := Default()
	require.Equal(t, ".", o.AuxDirectory)
	require.Equal(t, FormatterTexlab, o.BibtexFormatter)
	require.Equal(t, FormatterLatexindent, o.LatexFormatter)
	require.Equal(t, 80, o.FormatterLineLength)
	require.Equal(t, 300, o.DiagnosticsDelayMS)
	require.Equal(t, "latexmk", o.Build.Executable)
	require.Equal(t, []string{"-pdf", "-interaction=nonstopmode", "-synctex=1", "%f"}, o.Build.Args)
}

func TestDecodeYAMLOverridesDefaults(t *testing.T) {
	raw := []byte("formatterLineLength: 100\nbuild:\n  onSave: true\n")
	o, err := DecodeYAML(raw)
	require.NoError(t, err)
	require.Equal(t, 100, o.FormatterLineLength)
	require.True(t, o.Build.OnSave)
	require.Equal(t, "latexmk", o.Build.Executable, "unset fields keep the default")
}

func TestDecodeYAMLRejectsUnknownFormatter(t *testing.T) {
	raw := []byte("bibtexFormatter: prettier\n")
	_, err := DecodeYAML(raw)
	require.Error(t, err)
}

func TestApplyJSONMergesPartialPayload(t *testing.T) {
	o := Default()
	err := o.ApplyJSON(map[string]any{
		"auxDirectory": "build",
		"chktex": map[string]any{
			"onEdit": true,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "build", o.AuxDirectory)
	require.True(t, o.Chktex.OnEdit)
	require.Equal(t, FormatterTexlab, o.BibtexFormatter, "untouched fields keep prior value")
}
