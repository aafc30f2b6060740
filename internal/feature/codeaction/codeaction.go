// Package codeaction implements the code actions named in §4.3/§9: the
// "remove duplicate imports" action, resolved per §9's stated
// resolution of its own open question — removes all but the first
// duplicate \usepackage{X} per package X.
package codeaction

import (
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	latexsem "texlab.dev/core/internal/semantic/latex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

// Edit is a single text deletion, following the LSP TextEdit shape.
type Edit struct {
	Range   file.Range
	NewText string
}

// RemoveDuplicateImports scans doc for \usepackage{X} commands, keeps
// the first occurrence of each package name and deletes every later
// occurrence (the whole command, trailing trivia included so no blank
// line is left behind).
func RemoveDuplicateImports(doc *file.Document) []Edit {
	if _, ok := doc.Payload.(*latexsem.Overlay); !ok || doc.Tree == nil {
		return nil
	}

	seen := map[string]bool{}
	var edits []Edit
	cst.Walk(doc.Tree, func(n *cst.Node) bool {
		if n.Kind() != latexsyn.NodeCommand {
			return true
		}
		children := n.Children()
		if len(children) == 0 {
			return true
		}
		tok, ok := children[0].(cst.Token)
		if !ok {
			return true
		}
		entry := taxonomy.Lookup(strings.TrimSuffix(tok.RawText(), "*"))
		if entry.Role != taxonomy.RoleInclude || entry.IncludeKind != taxonomy.IncludePackage {
			return true
		}
		group := latexsem.NthCurlyGroup(n, entry.ArgIndex)
		if group == nil {
			return true
		}
		name := plainText(group)
		if name == "" {
			return true
		}
		if seen[name] {
			start, end := n.Span()
			edits = append(edits, Edit{Range: file.Range{Start: start, End: end}, NewText: ""})
			return true
		}
		seen[name] = true
		return true
	})
	return edits
}

func plainText(g *cst.Node) string {
	children := g.Children()
	if len(children) >= 2 {
		children = children[1 : len(children)-1]
	}
	var out []byte
	for _, c := range children {
		if t, ok := c.(cst.Token); ok {
			out = append(out, t.RawText()...)
		}
	}
	return string(out)
}
