package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchSubsequence(t *testing.T) {
	ok, _ := Match("incgr", "includeGraphics")
	require.True(t, ok)

	ok, _ = Match("xyz", "includeGraphics")
	require.False(t, ok)
}

func TestMatchEmptyQueryAlwaysMatches(t *testing.T) {
	ok, score := Match("", "anything")
	require.True(t, ok)
	require.Equal(t, 0, score)
}

func TestMatchPrefersPrefixMatch(t *testing.T) {
	_, prefixScore := Match("sec", "section")
	_, midScore := Match("sec", "mainSection")
	require.Greater(t, prefixScore, midScore)
}

func TestMatchWordBoundaryBonus(t *testing.T) {
	_, boundaryScore := Match("i", "sec:intro")
	_, midScore := Match("n", "sec:intro")
	require.Greater(t, boundaryScore, midScore)
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	items := []string{"section", "mainSection", "other"}
	ranked := Rank("sec", items, func(s string) string { return s })
	require.Len(t, ranked, 2)
	require.Equal(t, "section", ranked[0].Item)
	require.Equal(t, "mainSection", ranked[1].Item)
}
