// Package label implements label rendering (§4.3 "Label rendering"):
// for a label definition, locate the enclosing labelled construct by
// walking the CST from the label backwards, and format a human-readable
// preview using the construct kind plus the label's compiled number
// (from the AUX overlay).
package label

import (
	"fmt"
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/view"
	latexsem "texlab.dev/core/internal/semantic/latex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

// Kind classifies which labelled construct a label's rendering is based
// on (§4.3 "a section/chapter/…/paragraph, a float environment with a
// caption, a theorem environment, a numbered equation, an enumerate
// item").
type Kind int

const (
	KindNone Kind = iota
	KindSection
	KindFloat
	KindTheorem
	KindEquation
	KindEnumItem
)

// Rendered is the formatted preview of one label definition.
type Rendered struct {
	Kind   Kind
	Text   string
}

var floatEnvironments = map[string]string{
	"figure": "Figure", "figure*": "Figure",
	"table": "Table", "table*": "Table",
}

// Render finds name's definition across v and renders it, or returns
// false if name has no definition in the project view.
func Render(v *view.View, cfg *latexsyn.Config, name string) (Rendered, bool) {
	doc, labelRange, ok := findDefinition(v, name)
	if !ok {
		return Rendered{}, false
	}
	number := ""
	if aux := v.AuxOverlay(); aux != nil {
		number = aux.LabelNumbers[name]
	}
	chain := cst.FindContaining(doc.Tree, labelRange.Start)
	if env := innermostEnvironment(chain); env != nil {
		if r, ok := renderEnvironment(doc, cfg, env, labelRange, number); ok {
			return r, true
		}
	}
	if sec, ok := nearestPrecedingSection(doc.Tree, labelRange.Start); ok {
		return Rendered{Kind: KindSection, Text: renderSection(sec, number)}, true
	}
	if number != "" {
		return Rendered{Kind: KindNone, Text: number}, true
	}
	return Rendered{}, false
}

func findDefinition(v *view.View, name string) (*file.Document, file.Range, bool) {
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		for _, l := range ov.Labels {
			if l.Name == name && l.Kind == latexsem.LabelDefinition {
				return d, l.Range, true
			}
		}
	}
	return nil, file.Range{}, false
}

func innermostEnvironment(chain []*cst.Node) *cst.Node {
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Kind() == latexsyn.NodeEnvironment {
			return chain[i]
		}
	}
	return nil
}

func renderEnvironment(doc *file.Document, cfg *latexsyn.Config, env *cst.Node, labelRange file.Range, number string) (Rendered, bool) {
	name, optionName := environmentNameAndOption(env)
	if heading, ok := theoremHeading(doc, name); ok {
		text := heading
		if number != "" {
			text += " " + number
		}
		if optionName != "" {
			text += " (" + optionName + ")"
		}
		return Rendered{Kind: KindTheorem, Text: strings.TrimSpace(text)}, true
	}
	if display, ok := floatEnvironments[name]; ok {
		caption := findCaption(env)
		text := display
		if number != "" {
			text += " " + number
		}
		if caption != "" {
			text += ": " + caption
		}
		return Rendered{Kind: KindFloat, Text: text}, true
	}
	if cfg != nil && cfg.MathEnvironments[name] {
		text := "Equation"
		if number != "" {
			text += " (" + number + ")"
		}
		return Rendered{Kind: KindEquation, Text: text}, true
	}
	if cfg != nil && cfg.EnumEnvironments[name] {
		if item, ok := nearestPrecedingItem(env, labelRange.Start); ok {
			text := fmt.Sprintf("Item %d", item)
			return Rendered{Kind: KindEnumItem, Text: text}, true
		}
	}
	return Rendered{}, false
}

// environmentNameAndOption extracts the \begin{name}[option] shape: the
// environment name and, if present, the plain text of the first
// optional-argument group (e.g. \begin{lemma}[Foo] -> ("lemma", "Foo")).
func environmentNameAndOption(env *cst.Node) (string, string) {
	children := env.Children()
	if len(children) == 0 {
		return "", ""
	}
	begin, ok := children[0].(*cst.Node)
	if !ok || begin.Kind() != latexsyn.NodeBegin {
		return "", ""
	}
	var name, option string
	for _, c := range begin.Children() {
		switch g := c.(type) {
		case *cst.Node:
			if g.Kind() == latexsyn.NodeCurlyGroup && name == "" {
				name = plainText(g)
			} else if g.Kind() == latexsyn.NodeBrackGroup && option == "" {
				option = plainText(g)
			}
		}
	}
	return name, option
}

func theoremHeading(doc *file.Document, envName string) (string, bool) {
	ov, ok := doc.Payload.(*latexsem.Overlay)
	if !ok {
		return "", false
	}
	for _, t := range ov.TheoremDefs {
		if t.EnvName == envName {
			return t.Heading, true
		}
	}
	return "", false
}

func findCaption(env *cst.Node) string {
	var caption string
	cst.Walk(env, func(n *cst.Node) bool {
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
		base := strings.TrimSuffix(tok.RawText(), "*")
		if taxonomy.Lookup(base).Role != taxonomy.RoleCaption {
			return true
		}
		group := latexsem.NthCurlyGroup(n, 0)
		if group != nil {
			caption = plainText(group)
			return false
		}
		return true
	})
	return caption
}

// nearestPrecedingItem counts \item commands inside env up to and
// including the last one before offset, returning its 1-based index.
func nearestPrecedingItem(env *cst.Node, offset int) (int, bool) {
	count := 0
	found := false
	cst.Walk(env, func(n *cst.Node) bool {
		if n.Kind() != latexsyn.NodeCommand {
			return true
		}
		children := n.Children()
		if len(children) == 0 {
			return true
		}
		tok, ok := children[0].(cst.Token)
		if !ok || taxonomy.Lookup(strings.TrimSuffix(tok.RawText(), "*")).Role != taxonomy.RoleEnumItem {
			return true
		}
		if tok.Start() > offset {
			return true
		}
		count++
		found = true
		return true
	})
	return count, found
}

// nearestPrecedingSection scans the whole tree in document order for the
// last RoleSection command whose start offset precedes offset, since
// sections are flat siblings rather than containers in this grammar.
func nearestPrecedingSection(root *cst.Node, offset int) (*cst.Node, bool) {
	var best *cst.Node
	var bestStart = -1
	cst.Walk(root, func(n *cst.Node) bool {
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
		base := strings.TrimSuffix(tok.RawText(), "*")
		if taxonomy.Lookup(base).Role != taxonomy.RoleSection {
			return true
		}
		if tok.Start() >= offset || tok.Start() <= bestStart {
			return true
		}
		best, bestStart = n, tok.Start()
		return true
	})
	return best, best != nil
}

var sectionDisplay = map[int]string{
	0: "Part", 1: "Chapter", 2: "Section", 3: "Subsection",
	4: "Subsubsection", 5: "Paragraph", 6: "Subparagraph",
}

func renderSection(sec *cst.Node, number string) string {
	children := sec.Children()
	if len(children) == 0 {
		return number
	}
	tok, _ := children[0].(cst.Token)
	base := strings.TrimSuffix(tok.RawText(), "*")
	level := taxonomy.Lookup(base).SectionLevel
	title := ""
	if g := latexsem.NthCurlyGroup(sec, 0); g != nil {
		title = plainText(g)
	}
	display := sectionDisplay[level]
	if display == "" {
		display = "Section"
	}
	text := display
	if number != "" {
		text += " " + number
	}
	if title != "" {
		text += " (" + title + ")"
	}
	return text
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
