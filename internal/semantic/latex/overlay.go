// Package latex (semantic) extracts the per-document LaTeX overlay from
// a parsed CST in a single traversal (§3 "Semantic overlays", §4.1
// "Semantic extraction"): labels, citations, environments, commands,
// includes, theorem definitions, graphics paths, and glossary entries.
package latex

import (
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

// LabelKind classifies a label occurrence.
type LabelKind int

const (
	LabelDefinition LabelKind = iota
	LabelReference
	LabelReferenceRange
)

// Identifier is a named occurrence (label key, citation key, glossary
// entry, user command name, ...) with its source range.
type Identifier struct {
	Name  string
	Range file.Range
}

// Label is one \label/\ref/\Cref-family occurrence.
type Label struct {
	Identifier
	Kind LabelKind
}

// EnvironmentUse records one \begin{name}...\end{name} occurrence.
type EnvironmentUse struct {
	Name           string
	BeginRange     file.Range // the whole \begin{...} construct
	EndRange       file.Range // the whole \end{...} construct, zero if unmatched
	BeginNameRange file.Range // just the name token inside \begin{name}
	EndNameRange   file.Range // just the name token inside \end{name}, zero if unmatched
	Range          file.Range // full environment span, Begin..End inclusive
}

// IncludeLink is one resolved-or-not include directive.
type IncludeLink struct {
	Path    string
	Range   file.Range // the path token's range, for document-link features
	Kind    taxonomy.IncludeKind
	BaseDir string // always empty: \import-family commands (taxonomy.RoleImport) are not extracted
}

// TheoremDefinition maps an environment name to its configured heading,
// e.g. \newtheorem{lemma}{Lemma}.
type TheoremDefinition struct {
	EnvName string
	Heading string
}

// Overlay is the full LaTeX semantic summary of one document.
type Overlay struct {
	Labels          []Label
	Citations       []Identifier
	Commands        []Identifier // user-defined command names (\newcommand etc.)
	Environments    []EnvironmentUse
	Includes        []IncludeLink
	TheoremDefs     []TheoremDefinition
	GraphicsPaths   []string
	GlossaryEntries []Identifier
	CanBeRoot       bool // \documentclass present
}

// Extract walks root and populates an Overlay, using cfg's citation
// commands to recognise citations beyond the built-in taxonomy.
// Environment names are recorded as written, without classification.
func Extract(root *cst.Node, cfg *latex.Config) *Overlay {
	ov := &Overlay{}
	var currentImportDir string
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		switch n.Kind() {
		case latex.NodeCommand:
			extractCommand(ov, n, cfg, currentImportDir)
		case latex.NodeEnvironment:
			extractEnvironment(ov, n)
		}
		for _, c := range n.Children() {
			if child, ok := c.(*cst.Node); ok {
				walk(child)
			}
		}
	}
	walk(root)
	return ov
}

func extractCommand(ov *Overlay, n *cst.Node, cfg *latex.Config, importDir string) {
	children := n.Children()
	if len(children) == 0 {
		return
	}
	nameTok, ok := children[0].(cst.Token)
	if !ok {
		return
	}
	base := baseName(nameTok.RawText())
	entry := taxonomy.Lookup(base)
	if entry.Role == taxonomy.RoleGeneric && cfg.CitationCommands[strings.TrimPrefix(base, `\`)] {
		entry.Role = taxonomy.RoleCitation
	}

	switch entry.Role {
	case taxonomy.RoleSection:
		// Section boundaries are derived on demand by feature/symbol from
		// the CST directly; the overlay only needs the label graph.
	case taxonomy.RoleLabelDefinition:
		appendKeys(&ov.Labels, n, entry.ArgIndex, LabelDefinition)
	case taxonomy.RoleLabelReference:
		appendKeys(&ov.Labels, n, entry.ArgIndex, LabelReference)
	case taxonomy.RoleLabelReferenceRange:
		appendKeys(&ov.Labels, n, entry.ArgIndex, LabelReferenceRange)
	case taxonomy.RoleCitation:
		for _, id := range splitKeys(nthCurlyGroup(n, entry.ArgIndex)) {
			ov.Citations = append(ov.Citations, id)
		}
	case taxonomy.RoleInclude:
		group := nthCurlyGroup(n, entry.ArgIndex)
		if group != nil {
			for _, id := range splitKeys(group) {
				ov.Includes = append(ov.Includes, IncludeLink{
					Path:    id.Name,
					Range:   id.Range,
					Kind:    entry.IncludeKind,
					BaseDir: importDir,
				})
			}
		}
	case taxonomy.RoleCommandDefinition, taxonomy.RoleEnvironmentDefinition, taxonomy.RoleMathOperator:
		if id, ok := firstKey(nthCurlyGroup(n, entry.ArgIndex)); ok {
			ov.Commands = append(ov.Commands, id)
		}
	case taxonomy.RoleTheoremDefinition:
		envID, ok1 := firstKey(nthCurlyGroup(n, 0))
		headingGroup := nthCurlyGroup(n, 1)
		heading := ""
		if headingGroup != nil {
			heading = groupPlainText(headingGroup)
		}
		if ok1 {
			ov.TheoremDefs = append(ov.TheoremDefs, TheoremDefinition{EnvName: envID.Name, Heading: heading})
		}
	case taxonomy.RoleGlossaryEntryDefinition, taxonomy.RoleAcronymDefinition, taxonomy.RoleAcronymDeclaration:
		if id, ok := firstKey(nthCurlyGroup(n, entry.ArgIndex)); ok {
			ov.GlossaryEntries = append(ov.GlossaryEntries, id)
		}
	case taxonomy.RoleGlossaryEntryReference, taxonomy.RoleAcronymReference:
		// References are resolved against GlossaryEntries across the
		// project by feature/reference; nothing to record here beyond
		// what splitKeys on citations already demonstrates the pattern
		// for.
	case taxonomy.RoleGraphicsPath:
		group := nthCurlyGroup(n, 0)
		if group != nil {
			for _, c := range group.Children() {
				if inner, ok := c.(*cst.Node); ok && inner.Kind() == latex.NodeCurlyGroup {
					ov.GraphicsPaths = append(ov.GraphicsPaths, groupPlainText(inner))
				}
			}
		}
	}

	if base == `\documentclass` {
		ov.CanBeRoot = true
	}
}

func extractEnvironment(ov *Overlay, n *cst.Node) {
	children := n.Children()
	if len(children) == 0 {
		return
	}
	begin, ok := children[0].(*cst.Node)
	if !ok || begin.Kind() != latex.NodeBegin {
		return
	}
	var end *cst.Node
	if len(children) > 1 {
		if e, ok := children[len(children)-1].(*cst.Node); ok && e.Kind() == latex.NodeEnd {
			end = e
		}
	}
	name, beginNameRange := beginEnvName(begin)
	bs, be := begin.Span()
	full := file.Range{}
	fs, _ := n.Span()
	full.Start = fs
	if end != nil {
		_, endNameRange := beginEnvName(end)
		es, ee := end.Span()
		full.End = ee
		ov.Environments = append(ov.Environments, EnvironmentUse{
			Name:           name,
			BeginRange:     file.Range{Start: bs, End: be},
			EndRange:       file.Range{Start: es, End: ee},
			BeginNameRange: beginNameRange,
			EndNameRange:   endNameRange,
			Range:          full,
		})
	} else {
		_, fe := n.Span()
		full.End = fe
		ov.Environments = append(ov.Environments, EnvironmentUse{
			Name:           name,
			BeginRange:     file.Range{Start: bs, End: be},
			BeginNameRange: beginNameRange,
			Range:          full,
		})
	}
}

// beginEnvName extracts the environment name and its precise token range
// from a \begin or \end node's name group, e.g. the "itemize" (and its
// range, excluding braces) out of "{itemize}".
func beginEnvName(begin *cst.Node) (string, file.Range) {
	for _, c := range begin.Children() {
		if g, ok := c.(*cst.Node); ok && g.Kind() == latex.NodeCurlyGroup {
			return groupPlainText(g), groupInnerRange(g)
		}
	}
	return "", file.Range{}
}

// groupInnerRange returns the byte range of a group's contents,
// excluding the enclosing braces.
func groupInnerRange(g *cst.Node) file.Range {
	children := g.Children()
	if len(children) < 2 {
		s, e := g.Span()
		return file.Range{Start: s, End: e}
	}
	inner := children[1 : len(children)-1]
	if len(inner) == 0 {
		_, openEnd := children[0].Span()
		return file.Range{Start: openEnd, End: openEnd}
	}
	start, _ := inner[0].Span()
	_, end := inner[len(inner)-1].Span()
	return file.Range{Start: start, End: end}
}

func baseName(name string) string {
	return strings.TrimSuffix(name, "*")
}

// nthCurlyGroup returns the n-th (0-based) NodeCurlyGroup among a
// command's argument children, skipping bracket groups.
func nthCurlyGroup(cmd *cst.Node, n int) *cst.Node {
	count := 0
	for _, c := range cmd.Children()[1:] {
		node, ok := c.(*cst.Node)
		if !ok || node.Kind() != latex.NodeCurlyGroup {
			continue
		}
		if count == n {
			return node
		}
		count++
	}
	return nil
}

// groupPlainText concatenates the significant (non-trivia) text of every
// token inside a group, excluding the enclosing braces.
func groupPlainText(g *cst.Node) string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	children := g.Children()
	if len(children) >= 2 {
		children = children[1 : len(children)-1]
	}
	for _, c := range children {
		if t, ok := c.(cst.Token); ok {
			b.WriteString(t.RawText())
		}
	}
	return b.String()
}

// splitKeys splits a group's inner contents on TokComma, yielding one
// Identifier per comma-separated key, trimmed to its significant text
// span (§4.1 "the key list inside the group is split on commas").
func splitKeys(g *cst.Node) []Identifier {
	if g == nil {
		return nil
	}
	children := g.Children()
	if len(children) >= 2 {
		children = children[1 : len(children)-1]
	}
	var out []Identifier
	var cur []cst.Token
	flush := func() {
		if len(cur) == 0 {
			return
		}
		start := cur[0].Start()
		last := cur[len(cur)-1]
		end := last.Start() + len(last.RawText())
		var b strings.Builder
		for _, t := range cur {
			b.WriteString(t.RawText())
		}
		name := strings.TrimSpace(b.String())
		if name != "" {
			out = append(out, Identifier{Name: name, Range: file.Range{Start: start, End: end}})
		}
		cur = nil
	}
	for _, c := range children {
		t, ok := c.(cst.Token)
		if !ok {
			continue
		}
		if t.Kind() == latex.TokComma {
			flush()
			continue
		}
		cur = append(cur, t)
	}
	flush()
	return out
}

// FindKeyAt returns the comma-separated key inside group g whose range
// contains offset, if any — used by the cursor classifier (§4.3
// "Reference resolution and rename") to turn a cursor offset inside a
// \cite{a,b,c} or \label{name} group into the specific key under the
// cursor.
func FindKeyAt(g *cst.Node, offset int) (Identifier, bool) {
	for _, id := range splitKeys(g) {
		if offset >= id.Range.Start && offset <= id.Range.End {
			return id, true
		}
	}
	return Identifier{}, false
}

// NthCurlyGroup exposes nthCurlyGroup to other packages (cursor
// classification needs to know, for a given command node, which
// argument index a particular child group occupies).
func NthCurlyGroup(cmd *cst.Node, n int) *cst.Node { return nthCurlyGroup(cmd, n) }

// CurlyGroupIndex returns the 0-based index of group among cmd's curly
// group arguments, or -1 if group is not a curly-group child of cmd.
func CurlyGroupIndex(cmd *cst.Node, group *cst.Node) int {
	idx := 0
	for _, c := range cmd.Children()[1:] {
		node, ok := c.(*cst.Node)
		if !ok || node.Kind() != latex.NodeCurlyGroup {
			continue
		}
		if node == group {
			return idx
		}
		idx++
	}
	return -1
}

func firstKey(g *cst.Node) (Identifier, bool) {
	ids := splitKeys(g)
	if len(ids) == 0 {
		return Identifier{}, false
	}
	return ids[0], true
}

func appendKeys(labels *[]Label, cmd *cst.Node, argIndex int, kind LabelKind) {
	for _, id := range splitKeys(nthCurlyGroup(cmd, argIndex)) {
		*labels = append(*labels, Label{Identifier: id, Kind: kind})
	}
}
