package bibtex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLosslessRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"@article{foo,}",
		"@article{foo,\n    bar = baz\n}",
		`@string{anthropic = "Anthropic"}`,
		`@article{foo, title = {A } # anthropic # { Title}}`,
		"@comment{ignored text here}",
		"% leading junk\n@article{foo, author = {A. B.}}",
		"@article{unterminated",
		`@article{foo, author = {M\"uller}}`,
	}
	for _, src := range cases {
		root, _ := Parse(src)
		require.Equal(t, src, root.Text(), "lossless round trip: %q", src)
	}
}

func TestEntryDiagnostics(t *testing.T) {
	_, diags := Parse("@article{foo bar = baz}")
	require.NotEmpty(t, diags)
}
