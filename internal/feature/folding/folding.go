// Package folding computes folding ranges (§4.3 "Folding"): one range
// per LaTeX environment and per section, one range per BibTeX
// @preamble/@string/entry.
package folding

import (
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

// RangeKind mirrors the LSP FoldingRangeKind enum's relevant members.
type RangeKind string

const RangeKindRegion RangeKind = "region"

// Range is one folding range as a byte-offset file.Range (callers convert
// it to line/column form with a *line.Index from the document).
type Range struct {
	Start file.Range
	Kind  RangeKind
}

// Latex computes folding ranges for a parsed LaTeX document: one per
// environment (\begin to matching \end) and one per section (its
// command to the start of the next section at the same-or-higher level,
// or EOF).
func Latex(root *cst.Node) []Range {
	var out []Range
	var sections []*cst.Node
	cst.Walk(root, func(n *cst.Node) bool {
		switch n.Kind() {
		case latexsyn.NodeEnvironment:
			s, e := n.Span()
			out = append(out, Range{Start: file.Range{Start: s, End: e}, Kind: RangeKindRegion})
		case latexsyn.NodeCommand:
			if isSectionCommand(n) {
				sections = append(sections, n)
			}
		}
		return true
	})
	_, rootEnd := root.Span()
	for i, sec := range sections {
		start, _ := sec.Span()
		end := rootEnd
		level := sectionLevel(sec)
		for j := i + 1; j < len(sections); j++ {
			if sectionLevel(sections[j]) <= level {
				end, _ = sections[j].Span()
				break
			}
		}
		out = append(out, Range{Start: file.Range{Start: start, End: end}, Kind: RangeKindRegion})
	}
	return out
}

func isSectionCommand(n *cst.Node) bool {
	children := n.Children()
	if len(children) == 0 {
		return false
	}
	tok, ok := children[0].(cst.Token)
	if !ok {
		return false
	}
	base := strings.TrimSuffix(tok.RawText(), "*")
	return taxonomy.Lookup(base).Role == taxonomy.RoleSection
}

func sectionLevel(n *cst.Node) int {
	tok := n.Children()[0].(cst.Token)
	base := strings.TrimSuffix(tok.RawText(), "*")
	return taxonomy.Lookup(base).SectionLevel
}

// Bibtex computes one folding range per @preamble/@string/entry
// construct, from the "@" to the matching closing delimiter.
func Bibtex(root *cst.Node) []Range {
	var out []Range
	for _, c := range root.Children() {
		n, ok := c.(*cst.Node)
		if !ok {
			continue
		}
		switch n.Kind() {
		case bibtexsyn.NodePreamble, bibtexsyn.NodeStringDef, bibtexsyn.NodeEntry:
			s, e := n.Span()
			out = append(out, Range{Start: file.Range{Start: s, End: e}, Kind: RangeKindRegion})
		}
	}
	return out
}
