package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"texlab.dev/core/internal/file"
)

func TestBuildOrdersRootsLast(t *testing.T) {
	a := file.URI("file:///proj/a.tex")
	b := file.URI("file:///proj/b.tex")
	c := file.URI("file:///proj/c.tex")

	// a is the root and includes b: preorderOf(a) walks root-first ([a, b]),
	// but Build reverses it so the leaf (b) sorts before the root (a).
	pre := map[file.URI][]file.URI{
		a: {a, b},
	}
	o := Build([]file.URI{a}, func(u file.URI) []file.URI { return pre[u] }, []file.URI{a, b, c})

	require.Equal(t, 0, o.Get(b))
	require.Equal(t, 1, o.Get(a))
	require.Equal(t, 2, o.Get(c))
}

func TestGetUnknownIsInfinite(t *testing.T) {
	a := file.URI("file:///proj/a.tex")
	o := Build(nil, func(file.URI) []file.URI { return nil }, []file.URI{a})
	unknown := file.URI("file:///proj/ghost.tex")
	require.Greater(t, o.Get(unknown), o.Get(a))
}
