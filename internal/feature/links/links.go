// Package links implements document links (§4.3 "Document links"): one
// link per resolved include, with the path token's range and the
// resolved target URI taken straight from the dependency graph.
package links

import (
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/graph"
	latexsem "texlab.dev/core/internal/semantic/latex"
)

// Link is one document link: range in the source plus its resolved
// target.
type Link struct {
	Range  file.Range
	Target file.URI
}

// FromGraph returns one Link per edge in g whose From is doc and whose
// Link is non-nil (implicit .aux/.log sibling edges carry no range and
// are not surfaced as document links).
func FromGraph(doc file.URI, g *graph.Graph) []Link {
	var out []Link
	for _, e := range g.Edges {
		if e.From != doc || e.Link == nil {
			continue
		}
		out = append(out, Link{Range: rangeOf(e.Link), Target: e.To})
	}
	return out
}

func rangeOf(l *latexsem.IncludeLink) file.Range {
	return l.Range
}
