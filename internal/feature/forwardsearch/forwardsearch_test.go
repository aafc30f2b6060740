package forwardsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeSubstitutesPlaceholders(t *testing.T) {
	got := Describe("sioyek", []string{"--forward-search-file", "%f", "--forward-search-line", "%l", "%p"}, "main.tex", "main.pdf", 9)
	assert.Equal(t, "sioyek", got.Program)
	assert.Equal(t, []string{"--forward-search-file", "main.tex", "--forward-search-line", "10", "main.pdf"}, got.Args)
}

func TestDescribeLineIsOneBased(t *testing.T) {
	got := Describe("x", []string{"%l"}, "a.tex", "a.pdf", 0)
	assert.Equal(t, []string{"1"}, got.Args)
}

func TestDescribeEscapedPercent(t *testing.T) {
	got := Describe("x", []string{"100%%"}, "a.tex", "a.pdf", 0)
	assert.Equal(t, []string{"100%"}, got.Args)
}

func TestDescribeQuotedArgPassesThroughVerbatim(t *testing.T) {
	got := Describe("x", []string{`"%f stays literal"`}, "a.tex", "a.pdf", 0)
	assert.Equal(t, []string{`"%f stays literal"`}, got.Args)
}

func TestDescribeUnknownPlaceholderLeftAsIs(t *testing.T) {
	got := Describe("x", []string{"%q"}, "a.tex", "a.pdf", 0)
	assert.Equal(t, []string{"%q"}, got.Args)
}

func TestDescribeTrailingPercentKept(t *testing.T) {
	got := Describe("x", []string{"abc%"}, "a.tex", "a.pdf", 0)
	assert.Equal(t, []string{"abc%"}, got.Args)
}
