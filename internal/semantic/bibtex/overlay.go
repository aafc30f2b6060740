// Package bibtex (semantic) extracts entries, @string definitions and
// @preamble bodies from a parsed BibTeX CST (§3 "Semantic overlays").
package bibtex

import (
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/syntax/bibtex"
)

// Entry is one @type{key, field = value, ...} construct.
type Entry struct {
	Type      string
	Key       string
	KeyRange  file.Range
	Fields    map[string]Field
	FieldOrder []string // preserves declaration order for formatting
	Range     file.Range
}

// Field is one name = value pair inside an Entry.
type Field struct {
	Name  string
	Text  string // plain-text rendering of the value (braces/quotes stripped)
	Range file.Range
}

// StringDef is one @string{name = value} construct.
type StringDef struct {
	Name  string
	Text  string
	Range file.Range
}

// Overlay is the full BibTeX semantic summary of one document.
type Overlay struct {
	Entries    []Entry
	Strings    []StringDef
	Preambles  []string
}

// Extract walks root, populating an Overlay.
func Extract(root *cst.Node) *Overlay {
	ov := &Overlay{}
	for _, c := range root.Children() {
		n, ok := c.(*cst.Node)
		if !ok {
			continue
		}
		switch n.Kind() {
		case bibtex.NodeEntry:
			if e, ok := extractEntry(n); ok {
				ov.Entries = append(ov.Entries, e)
			}
		case bibtex.NodeStringDef:
			if s, ok := extractStringDef(n); ok {
				ov.Strings = append(ov.Strings, s)
			}
		case bibtex.NodePreamble:
			ov.Preambles = append(ov.Preambles, strings.TrimSpace(valueText(findValue(n))))
		}
	}
	return ov
}

func extractEntry(n *cst.Node) (Entry, bool) {
	children := n.Children()
	// [at, type, open, key, (comma, field)*, close]
	if len(children) < 4 {
		return Entry{}, false
	}
	typeTok, ok := children[1].(cst.Token)
	if !ok {
		return Entry{}, false
	}
	keyTok, ok := children[3].(cst.Token)
	if !ok {
		return Entry{}, false
	}
	e := Entry{
		Type:     strings.ToLower(typeTok.RawText()),
		Key:      keyTok.RawText(),
		KeyRange: file.Range{Start: keyTok.Start(), End: keyTok.Start() + len(keyTok.RawText())},
		Fields:   map[string]Field{},
	}
	start, end := n.Span()
	e.Range = file.Range{Start: start, End: end}
	for _, c := range children[4:] {
		field, ok := c.(*cst.Node)
		if !ok || field.Kind() != bibtex.NodeField {
			continue
		}
		fc := field.Children()
		if len(fc) == 0 {
			continue
		}
		nameTok, ok := fc[0].(cst.Token)
		if !ok {
			continue
		}
		name := strings.ToLower(nameTok.RawText())
		var value cst.Element
		if len(fc) >= 3 {
			value = fc[2]
		}
		fs, fe := field.Span()
		f := Field{Name: name, Text: strings.TrimSpace(valueText(value)), Range: file.Range{Start: fs, End: fe}}
		e.Fields[name] = f
		e.FieldOrder = append(e.FieldOrder, name)
	}
	return e, true
}

func extractStringDef(n *cst.Node) (StringDef, bool) {
	children := n.Children()
	if len(children) < 4 {
		return StringDef{}, false
	}
	nameTok, ok := children[3].(cst.Token)
	if !ok {
		return StringDef{}, false
	}
	var value cst.Element
	if len(children) >= 6 {
		value = children[5]
	}
	start, end := n.Span()
	return StringDef{
		Name:  nameTok.RawText(),
		Text:  strings.TrimSpace(valueText(value)),
		Range: file.Range{Start: start, End: end},
	}, true
}

func findValue(n *cst.Node) cst.Element {
	children := n.Children()
	if len(children) >= 4 {
		return children[3]
	}
	return nil
}

// valueText renders a NodeLiteral/NodeCurlyGroup/NodeQuoteGroup/NodeJoin
// value as plain text, stripping delimiters and "#" operators but keeping
// nested content and the whitespace between tokens (callers trim the
// outer whitespace), used for formatting, hover, and completion previews.
func valueText(e cst.Element) string {
	if e == nil {
		return ""
	}
	n, ok := e.(*cst.Node)
	if !ok {
		if t, ok := e.(cst.Token); ok {
			return t.Text()
		}
		return ""
	}
	switch n.Kind() {
	case bibtex.NodeLiteral:
		var b strings.Builder
		for _, c := range n.Children() {
			if t, ok := c.(cst.Token); ok {
				b.WriteString(t.Text())
			}
		}
		return b.String()
	case bibtex.NodeCurlyGroup, bibtex.NodeQuoteGroup:
		children := n.Children()
		var b strings.Builder
		closeTrivia := ""
		if len(children) >= 2 {
			if open, ok := children[0].(cst.Token); ok {
				b.WriteString(open.Trivia())
			}
			if cl, ok := children[len(children)-1].(cst.Token); ok {
				closeTrivia = cl.Trivia()
			}
			children = children[1 : len(children)-1]
		}
		for _, c := range children {
			b.WriteString(valueText(c))
		}
		b.WriteString(closeTrivia)
		return b.String()
	case bibtex.NodeJoin:
		var b strings.Builder
		for _, c := range n.Children() {
			if t, ok := c.(cst.Token); ok && t.Kind() == bibtex.TokPound {
				continue
			}
			b.WriteString(valueText(c))
		}
		return b.String()
	case bibtex.NodeCommand, bibtex.NodeAccent:
		var b strings.Builder
		for _, c := range n.Children() {
			b.WriteString(valueText(c))
		}
		return b.String()
	default:
		return ""
	}
}
