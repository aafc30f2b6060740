// Package formatting implements the BibTeX formatter (§4.3
// "Formatting", bibtexFormatter "texlab"): a deterministic re-emission
// of every @string/@preamble/entry from the semantic overlay, with
// aligned field values. Each value is emitted on one line; long values
// are not wrapped at the configured line length. LaTeX formatting delegates to the external latexindent
// collaborator (§1) and is out of core scope; this package only
// produces the BibTeX rewrite.
package formatting

import (
	"fmt"
	"sort"
	"strings"

	"texlab.dev/core/internal/file"
	bibtexsem "texlab.dev/core/internal/semantic/bibtex"
)

// Options mirrors the formatter-relevant configuration keys (§6).
type Options struct {
	InsertSpaces  bool
	TabSize       int
	LineLength    int
	TrailingComma bool
}

// DefaultOptions matches §6's documented defaults (tabSize and
// insertSpaces come from the client's formatting request, not a server
// default, but a sensible fallback is supplied for headless callers).
func DefaultOptions() Options {
	return Options{InsertSpaces: true, TabSize: 2, LineLength: 80, TrailingComma: true}
}

// Edit is a single text replacement, following the LSP TextEdit shape.
type Edit struct {
	Range   file.Range
	NewText string
}

// Bibtex formats doc's entire text, returning a single full-document
// replacement edit. Returns false if doc isn't a parsed BibTeX document.
func Bibtex(doc *file.Document, opts Options) ([]Edit, bool) {
	ov, ok := doc.Payload.(*bibtexsem.Overlay)
	if !ok {
		return nil, false
	}
	indent := indentString(opts)
	var b strings.Builder

	type item struct {
		offset int
		text   string
	}
	var items []item
	for _, p := range ov.Preambles {
		items = append(items, item{offset: -1, text: fmt.Sprintf("@preamble{%s}\n\n", p)})
	}
	for _, s := range ov.Strings {
		items = append(items, item{offset: s.Range.Start, text: formatString(s, indent)})
	}
	for _, e := range ov.Entries {
		items = append(items, item{offset: e.Range.Start, text: formatEntry(e, opts, indent)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].offset < items[j].offset })
	for _, it := range items {
		b.WriteString(it.text)
	}

	return []Edit{{
		Range:   file.Range{Start: 0, End: len(doc.Text)},
		NewText: b.String(),
	}}, true
}

func indentString(opts Options) string {
	if opts.InsertSpaces {
		n := opts.TabSize
		if n <= 0 {
			n = 2
		}
		return strings.Repeat(" ", n)
	}
	return "\t"
}

func formatString(s bibtexsem.StringDef, indent string) string {
	return fmt.Sprintf("@string{%s = %s}\n\n", s.Name, wrapValue(s.Text, 0))
}

func formatEntry(e bibtexsem.Entry, opts Options, indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", strings.ToLower(e.Type), e.Key)

	maxName := 0
	for _, name := range e.FieldOrder {
		if len(name) > maxName {
			maxName = len(name)
		}
	}
	tabWidth := len(indent)
	valueColumn := tabWidth + maxName + 3 // "name = " has one space before and after "="

	for i, name := range e.FieldOrder {
		field, ok := e.Fields[name]
		if !ok {
			continue
		}
		last := i == len(e.FieldOrder)-1
		pad := strings.Repeat(" ", maxName-len(name))
		prefix := indent + name + pad + " = "
		lineLen := opts.LineLength
		if lineLen <= 0 {
			lineLen = 80
		}
		value := wrapValue(field.Text, valueColumn)
		b.WriteString(prefix)
		b.WriteString("{")
		b.WriteString(value)
		b.WriteString("}")
		if !last || opts.TrailingComma {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
	return b.String()
}

// wrapValue re-emits a field's plain-text value. The semantic overlay
// strips the original "#" concatenation structure, so there's nothing
// left to break a long value across.
// TODO: carry the raw NodeJoin segments into Field so long values can
// wrap at formatterLineLength instead of overflowing the line.
func wrapValue(text string, column int) string {
	_ = column
	return text
}
