// Package cursor implements the single cursor classifier spec.md §4.3
// describes for reference resolution, rename and hover: "A single
// cursor classifier identifies what the cursor points at: a label key,
// a citation key, a BibTeX entry key, a BibTeX @string name, an
// environment name, or a user-defined command."
//
// Completion uses a richer, per-provider classification of its own
// (walking the same CST but asking "is the cursor inside an empty
// command-name token", "inside \begin{" etc.) — see feature/completion —
// because completion needs to distinguish many more contexts than
// "what identifier is already here".
package cursor

import (
	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	latexsem "texlab.dev/core/internal/semantic/latex"
	"texlab.dev/core/internal/taxonomy"
)

// Kind enumerates what a cursor offset can resolve to.
type Kind int

const (
	None Kind = iota
	Label
	Citation
	Environment
	Command
	BibEntryKey
	BibString
)

// Target is the classification result: what kind of identifier the
// cursor sits on, its name, and the exact range of the identifier text
// (used as the rename "prepare" range and as the definition's own
// occurrence when include_declaration is requested).
type Target struct {
	Kind  Kind
	Name  string
	Range file.Range
}

// InLatex classifies offset within a parsed LaTeX document's tree,
// walking the innermost-to-outermost ancestor chain.
func InLatex(tree *cst.Node, offset int) (Target, bool) {
	if tree == nil {
		return Target{}, false
	}
	chain := cst.FindContaining(tree, offset)
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		switch n.Kind() {
		case latexsyn.NodeCurlyGroup:
			if i == 0 {
				continue
			}
			parent := chain[i-1]
			if parent.Kind() != latexsyn.NodeCommand {
				continue
			}
			if t, ok := classifyGroup(parent, n, offset); ok {
				return t, true
			}
		case latexsyn.NodeBegin, latexsyn.NodeEnd:
			if t, ok := classifyEnvNode(n, offset); ok {
				return t, true
			}
		case latexsyn.NodeCommand:
			if t, ok := classifyCommandName(n, offset); ok {
				return t, true
			}
		}
	}
	return Target{}, false
}

func classifyGroup(cmd, group *cst.Node, offset int) (Target, bool) {
	children := cmd.Children()
	if len(children) == 0 {
		return Target{}, false
	}
	nameTok, ok := children[0].(cst.Token)
	if !ok {
		return Target{}, false
	}
	base := baseCommandName(nameTok.RawText())
	entry := taxonomy.Lookup(base)
	idx := latexsem.CurlyGroupIndex(cmd, group)
	if idx != entry.ArgIndex {
		return Target{}, false
	}
	id, ok := latexsem.FindKeyAt(group, offset)
	if !ok {
		return Target{}, false
	}
	switch entry.Role {
	case taxonomy.RoleLabelDefinition, taxonomy.RoleLabelReference, taxonomy.RoleLabelReferenceRange, taxonomy.RoleLabelNumber:
		return Target{Kind: Label, Name: id.Name, Range: id.Range}, true
	case taxonomy.RoleCitation:
		return Target{Kind: Citation, Name: id.Name, Range: id.Range}, true
	}
	return Target{}, false
}

func classifyEnvNode(n *cst.Node, offset int) (Target, bool) {
	for _, c := range n.Children() {
		g, ok := c.(*cst.Node)
		if !ok || g.Kind() != latexsyn.NodeCurlyGroup {
			continue
		}
		name, rng := envGroupNameAt(g, offset)
		if name != "" {
			return Target{Kind: Environment, Name: name, Range: rng}, true
		}
	}
	return Target{}, false
}

// envGroupNameAt returns the environment name and its range if offset
// lies within g's inner contents.
func envGroupNameAt(g *cst.Node, offset int) (string, file.Range) {
	children := g.Children()
	if len(children) < 2 {
		return "", file.Range{}
	}
	inner := children[1 : len(children)-1]
	if len(inner) == 0 {
		return "", file.Range{}
	}
	start, _ := inner[0].Span()
	_, end := inner[len(inner)-1].Span()
	if offset < start || offset > end {
		return "", file.Range{}
	}
	var name string
	for _, c := range inner {
		if t, ok := c.(cst.Token); ok {
			name += t.RawText()
		}
	}
	return name, file.Range{Start: start, End: end}
}

func classifyCommandName(n *cst.Node, offset int) (Target, bool) {
	children := n.Children()
	if len(children) == 0 {
		return Target{}, false
	}
	tok, ok := children[0].(cst.Token)
	if !ok {
		return Target{}, false
	}
	start, end := tok.Start(), tok.Start()+len(tok.RawText())
	if offset < start || offset > end {
		return Target{}, false
	}
	base := baseCommandName(tok.RawText())
	if taxonomy.Lookup(base).Role != taxonomy.RoleGeneric {
		// Built-in commands aren't renameable targets.
		return Target{}, false
	}
	return Target{Kind: Command, Name: base, Range: file.Range{Start: start, End: end}}, true
}

func baseCommandName(name string) string {
	if len(name) > 0 && name[len(name)-1] == '*' {
		return name[:len(name)-1]
	}
	return name
}

// InBibtex classifies offset within a parsed BibTeX document's tree: an
// entry key (the identifier right after the opening delimiter) or a
// @string name.
func InBibtex(tree *cst.Node, offset int) (Target, bool) {
	if tree == nil {
		return Target{}, false
	}
	for _, c := range tree.Children() {
		n, ok := c.(*cst.Node)
		if !ok {
			continue
		}
		s, e := n.Span()
		if offset < s || offset > e {
			continue
		}
		switch n.Kind() {
		case bibtexsyn.NodeEntry:
			if t, ok := entryKeyAt(n, offset); ok {
				return t, true
			}
		case bibtexsyn.NodeStringDef:
			if t, ok := stringNameAt(n, offset); ok {
				return t, true
			}
		}
	}
	return Target{}, false
}

func entryKeyAt(n *cst.Node, offset int) (Target, bool) {
	children := n.Children()
	if len(children) < 4 {
		return Target{}, false
	}
	keyTok, ok := children[3].(cst.Token)
	if !ok {
		return Target{}, false
	}
	start, end := keyTok.Start(), keyTok.Start()+len(keyTok.RawText())
	if offset < start || offset > end {
		return Target{}, false
	}
	return Target{Kind: BibEntryKey, Name: keyTok.RawText(), Range: file.Range{Start: start, End: end}}, true
}

func stringNameAt(n *cst.Node, offset int) (Target, bool) {
	children := n.Children()
	if len(children) < 4 {
		return Target{}, false
	}
	nameTok, ok := children[3].(cst.Token)
	if !ok {
		return Target{}, false
	}
	start, end := nameTok.Start(), nameTok.Start()+len(nameTok.RawText())
	if offset < start || offset > end {
		return Target{}, false
	}
	return Target{Kind: BibString, Name: nameTok.RawText(), Range: file.Range{Start: start, End: end}}, true
}

// In classifies offset within doc, dispatching to InLatex or InBibtex
// based on doc's language.
func In(doc *file.Document, offset int) (Target, bool) {
	switch doc.Language {
	case file.LangBib:
		return InBibtex(doc.Tree, offset)
	default:
		return InLatex(doc.Tree, offset)
	}
}
