// Package aux extracts the two pieces of information TexLab's label
// renderer and caption resolver need from a compiler-generated .aux
// file: `\newlabel` number assignments and `\@writefile{lof|lot}`
// caption metadata (§4.1 "AUX (auxiliary)").
//
// AUX files are themselves LaTeX syntax, so they are lexed and parsed
// with the same lossless grammar used for .tex documents; this package
// only adds the semantic layer that knows the two command shapes a
// compiler emits into them.
package aux

import (
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/syntax/latex"
)

// CaptionKind distinguishes the two \@writefile targets a compiler
// writes caption entries into.
type CaptionKind int

const (
	CaptionFigure CaptionKind = iota // \@writefile{lof}
	CaptionTable                     // \@writefile{lot}
)

// Caption is one \contentsline{...}{...}{page} entry harvested from a
// .lof/.lot write captured inside the AUX file.
type Caption struct {
	Kind CaptionKind
	Text string
	Page string
}

// Overlay is the semantic summary of one parsed AUX document.
type Overlay struct {
	LabelNumbers map[string]string
	Captions     []Caption
}

// Extract parses src as LaTeX and mines it for \newlabel and
// \@writefile constructs.
func Extract(src string) *Overlay {
	root, _ := latex.Parse(src, latex.DefaultConfig())
	ov := &Overlay{LabelNumbers: map[string]string{}}
	cst.Walk(root, func(n *cst.Node) bool {
		if n.Kind() != latex.NodeCommand {
			return true
		}
		name := commandName(n)
		switch name {
		case `\newlabel`:
			extractNewLabel(n, ov)
		case `\@writefile`:
			extractWriteFile(n, ov)
		}
		return true
	})
	return ov
}

func commandName(n *cst.Node) string {
	children := n.Children()
	if len(children) == 0 {
		return ""
	}
	if t, ok := children[0].(cst.Token); ok {
		return t.RawText()
	}
	return ""
}

// extractNewLabel handles \newlabel{key}{{number}{page}...} — only the
// label key and the first brace group of the second argument (the
// rendered number, which may itself contain nested groups for
// sub-numbering such as "1.2") are needed.
func extractNewLabel(n *cst.Node, ov *Overlay) {
	key := nthGroupPlainText(n, 0)
	if key == "" {
		return
	}
	numberGroup := nthGroup(n, 1)
	if numberGroup == nil {
		return
	}
	inner := firstInnerGroup(numberGroup)
	number := ""
	if inner != nil {
		number = groupPlainText(inner)
	}
	ov.LabelNumbers[key] = number
}

// extractWriteFile handles \@writefile{lof|lot}{\contentsline{type}{text}{page}}.
func extractWriteFile(n *cst.Node, ov *Overlay) {
	target := nthGroupPlainText(n, 0)
	var kind CaptionKind
	switch target {
	case "lof":
		kind = CaptionFigure
	case "lot":
		kind = CaptionTable
	default:
		return
	}
	body := nthGroup(n, 1)
	if body == nil {
		return
	}
	cst.Walk(body, func(c *cst.Node) bool {
		if c.Kind() != latex.NodeCommand {
			return true
		}
		if commandName(c) != `\contentsline` {
			return true
		}
		text := nthGroupPlainText(c, 1)
		page := nthGroupPlainText(c, 2)
		if text != "" {
			ov.Captions = append(ov.Captions, Caption{Kind: kind, Text: text, Page: page})
		}
		return false
	})
}

// nthGroup returns the n-th NodeCurlyGroup child of a command node
// (0-based, skipping the command-name token).
func nthGroup(n *cst.Node, idx int) *cst.Node {
	count := 0
	for _, c := range n.Children() {
		g, ok := c.(*cst.Node)
		if !ok || g.Kind() != latex.NodeCurlyGroup {
			continue
		}
		if count == idx {
			return g
		}
		count++
	}
	return nil
}

func nthGroupPlainText(n *cst.Node, idx int) string {
	g := nthGroup(n, idx)
	if g == nil {
		return ""
	}
	return groupPlainText(g)
}

// firstInnerGroup returns the first NodeCurlyGroup nested directly
// inside a group's children, used to unwrap \newlabel's doubly-braced
// number argument: {{number}{page}...}.
func firstInnerGroup(g *cst.Node) *cst.Node {
	for _, c := range g.Children() {
		if inner, ok := c.(*cst.Node); ok && inner.Kind() == latex.NodeCurlyGroup {
			return inner
		}
	}
	return nil
}

// groupPlainText renders a curly group's contents as text, dropping the
// surrounding braces and trimming outer whitespace; trivia inside the
// group, comments included, is kept verbatim.
func groupPlainText(g *cst.Node) string {
	children := g.Children()
	if len(children) >= 2 {
		children = children[1 : len(children)-1]
	}
	var b strings.Builder
	for _, c := range children {
		b.WriteString(c.Text())
	}
	return strings.TrimSpace(b.String())
}
