// Package symbol builds per-document symbol trees and flattens them into
// workspace-wide symbol lists (§4.3 "Symbols"): root children are
// top-level sections; each section contains nested sections plus any
// labelled environments (equations, figures, tables, theorems) and
// leaves for labels without a recognised enclosing construct. Enumerate
// items get no symbol, and a label inside an enumerate-like environment
// gets no leaf.
package symbol

import (
	"sort"
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/order"
	latexsem "texlab.dev/core/internal/semantic/latex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

// Kind enumerates the symbol categories §4.3 names.
type Kind int

const (
	KindSection Kind = iota
	KindFigure
	KindTable
	KindTheorem
	KindEquation
	KindEnumItem
	KindLabel
)

// Symbol is one node of a per-document symbol tree.
type Symbol struct {
	Name           string
	Kind           Kind
	Range          file.Range // full span, for "select all of this symbol"
	SelectionRange file.Range // the name/heading token range
	Children       []*Symbol
}

type sectionEntry struct {
	node     *cst.Node
	level    int
	start    int
	bodyEnd  int
	symbol   *Symbol
}

// Document builds the symbol tree for one parsed LaTeX document.
func Document(doc *file.Document, cfg *latexsyn.Config) []*Symbol {
	ov, ok := doc.Payload.(*latexsem.Overlay)
	if !ok || doc.Tree == nil {
		return nil
	}

	sections := collectSections(doc.Tree)
	roots := buildSectionTree(sections)

	for _, e := range ov.Environments {
		sym, ok := constructSymbol(doc, cfg, e)
		if !ok {
			continue
		}
		roots = attach(sections, roots, e.Range.Start, sym)
	}

	// Leaf labels with no recognised enclosing construct.
	for _, l := range ov.Labels {
		if l.Kind != latexsem.LabelDefinition {
			continue
		}
		if hasRecognisedConstruct(doc.Tree, cfg, ov, l.Range.Start) {
			continue
		}
		sym := &Symbol{Name: l.Name, Kind: KindLabel, Range: l.Range, SelectionRange: l.Range}
		roots = attach(sections, roots, l.Range.Start, sym)
	}

	return roots
}

func collectSections(root *cst.Node) []*sectionEntry {
	var cmds []*cst.Node
	cst.Walk(root, func(n *cst.Node) bool {
		if n.Kind() == latexsyn.NodeCommand && isSectionCommand(n) {
			cmds = append(cmds, n)
		}
		return true
	})
	_, rootEnd := root.Span()
	out := make([]*sectionEntry, len(cmds))
	for i, n := range cmds {
		start, _ := n.Span()
		level := sectionLevel(n)
		end := rootEnd
		for j := i + 1; j < len(cmds); j++ {
			if sectionLevel(cmds[j]) <= level {
				end, _ = cmds[j].Span()
				break
			}
		}
		name := ""
		if g := latexsem.NthCurlyGroup(n, 0); g != nil {
			name = plainText(g)
		}
		nameStart, nameEnd := start, end
		if g := latexsem.NthCurlyGroup(n, 0); g != nil {
			nameStart, nameEnd = groupInner(g)
		}
		out[i] = &sectionEntry{
			node: n, level: level, start: start, bodyEnd: end,
			symbol: &Symbol{
				Name:           name,
				Kind:           KindSection,
				Range:          file.Range{Start: start, End: end},
				SelectionRange: file.Range{Start: nameStart, End: nameEnd},
			},
		}
	}
	return out
}

// buildSectionTree nests sectionEntries by level using a stack, the
// standard outline-builder algorithm.
func buildSectionTree(entries []*sectionEntry) []*Symbol {
	var roots []*Symbol
	var stack []*sectionEntry
	for _, e := range entries {
		for len(stack) > 0 && stack[len(stack)-1].level >= e.level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, e.symbol)
		} else {
			parent := stack[len(stack)-1]
			parent.symbol.Children = append(parent.symbol.Children, e.symbol)
		}
		stack = append(stack, e)
	}
	return roots
}

// attach appends sym as a child of the innermost section whose body
// range contains offset, or to roots directly if no section contains it.
func attach(sections []*sectionEntry, roots []*Symbol, offset int, sym *Symbol) []*Symbol {
	var best *sectionEntry
	for _, e := range sections {
		if offset < e.start || offset >= e.bodyEnd {
			continue
		}
		if best == nil || (e.bodyEnd-e.start) < (best.bodyEnd-best.start) {
			best = e
		}
	}
	if best != nil {
		best.symbol.Children = append(best.symbol.Children, sym)
		return roots
	}
	return append(roots, sym)
}

func constructSymbol(doc *file.Document, cfg *latexsyn.Config, e latexsem.EnvironmentUse) (*Symbol, bool) {
	switch {
	case e.Name == "figure" || e.Name == "figure*":
		return &Symbol{Name: "Figure", Kind: KindFigure, Range: e.Range, SelectionRange: e.BeginNameRange}, true
	case e.Name == "table" || e.Name == "table*":
		return &Symbol{Name: "Table", Kind: KindTable, Range: e.Range, SelectionRange: e.BeginNameRange}, true
	}
	if ov, ok := doc.Payload.(*latexsem.Overlay); ok {
		for _, t := range ov.TheoremDefs {
			if t.EnvName == e.Name {
				name := t.Heading
				if name == "" {
					name = e.Name
				}
				return &Symbol{Name: name, Kind: KindTheorem, Range: e.Range, SelectionRange: e.BeginNameRange}, true
			}
		}
	}
	if cfg != nil && cfg.MathEnvironments[e.Name] {
		return &Symbol{Name: "Equation", Kind: KindEquation, Range: e.Range, SelectionRange: e.BeginNameRange}, true
	}
	if cfg != nil && cfg.EnumEnvironments[e.Name] {
		return nil, false // enumerate-like environments and their items produce no symbol
	}
	return nil, false
}

// hasRecognisedConstruct reports whether offset falls inside an
// environment that already produces its own symbol (float/theorem/math),
// so that a label inside it shouldn't also get a duplicate leaf symbol.
// A label inside an enumerate-like environment is reported the same way,
// so it gets no leaf either, although that environment has no symbol.
func hasRecognisedConstruct(root *cst.Node, cfg *latexsyn.Config, ov *latexsem.Overlay, offset int) bool {
	chain := cst.FindContaining(root, offset)
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Kind() != latexsyn.NodeEnvironment {
			continue
		}
		name, _ := beginName(chain[i])
		if name == "figure" || name == "figure*" || name == "table" || name == "table*" {
			return true
		}
		if cfg != nil && (cfg.MathEnvironments[name] || cfg.EnumEnvironments[name]) {
			return true
		}
		for _, t := range ov.TheoremDefs {
			if t.EnvName == name {
				return true
			}
		}
		return false
	}
	return false
}

func beginName(env *cst.Node) (string, file.Range) {
	children := env.Children()
	if len(children) == 0 {
		return "", file.Range{}
	}
	begin, ok := children[0].(*cst.Node)
	if !ok {
		return "", file.Range{}
	}
	for _, c := range begin.Children() {
		if g, ok := c.(*cst.Node); ok && g.Kind() == latexsyn.NodeCurlyGroup {
			s, e := groupInner(g)
			return plainText(g), file.Range{Start: s, End: e}
		}
	}
	return "", file.Range{}
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

func groupInner(g *cst.Node) (int, int) {
	children := g.Children()
	if len(children) < 2 {
		s, e := g.Span()
		return s, e
	}
	inner := children[1 : len(children)-1]
	if len(inner) == 0 {
		_, openEnd := children[0].Span()
		return openEnd, openEnd
	}
	start, _ := inner[0].Span()
	_, end := inner[len(inner)-1].Span()
	return start, end
}

func plainText(g *cst.Node) string {
	children := g.Children()
	if len(children) >= 2 {
		children = children[1 : len(children)-1]
	}
	var b strings.Builder
	for _, c := range children {
		if t, ok := c.(cst.Token); ok {
			b.WriteString(t.RawText())
		}
	}
	return strings.TrimSpace(b.String())
}

// Flat is a workspace symbol: a Symbol plus the URI it lives in.
type Flat struct {
	URI    file.URI
	Symbol *Symbol
}

// Workspace flattens the symbol tree of every document in o's order,
// filtering by query (case-insensitive word-sequence containment, §4.3
// "filter by the client-provided query").
func Workspace(docs []*file.Document, cfg *latexsyn.Config, o *order.Order, query string) []Flat {
	sorted := append([]*file.Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool { return o.Get(sorted[i].URI) < o.Get(sorted[j].URI) })

	var out []Flat
	for _, d := range sorted {
		for _, root := range Document(d, cfg) {
			flattenInto(&out, d.URI, root, query)
		}
	}
	return out
}

func flattenInto(out *[]Flat, uri file.URI, sym *Symbol, query string) {
	if matchesQuery(sym.Name, query) {
		*out = append(*out, Flat{URI: uri, Symbol: sym})
	}
	for _, c := range sym.Children {
		flattenInto(out, uri, c, query)
	}
}

// matchesQuery implements "case-insensitive word-sequence containment":
// every whitespace-separated word of query must appear, in order, as a
// substring of name.
func matchesQuery(name, query string) bool {
	if query == "" {
		return true
	}
	lowerName := strings.ToLower(name)
	rest := lowerName
	for _, word := range strings.Fields(strings.ToLower(query)) {
		idx := strings.Index(rest, word)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(word):]
	}
	return true
}
