// Package hover implements tagged-dispatch hover (§4.3 "Hover"): BibTeX
// entry/string documentation, label preview (via feature/label), and
// section preview. Package/entry-type/field-name documentation is
// sourced from the static completion database, which is out of core
// scope (§1) — this package exposes the dispatch and the parts groundable
// purely in the syntax/semantic layers. Hover accepts a StaticDatabase
// for that collaborator but does not consult it, so no package,
// entry-type or field-name hover is produced.
package hover

import (
	"fmt"
	"strings"

	"texlab.dev/core/internal/feature/cursor"
	"texlab.dev/core/internal/feature/label"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/project/view"
	bibtexsem "texlab.dev/core/internal/semantic/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
)

// Result is a markdown-ish hover payload plus the range it applies to.
type Result struct {
	Markdown string
	Range    file.Range
}

// StaticDatabase is the out-of-core-scope collaborator (§1 "the bundled
// completion/symbol database... consumed as static data") supplying
// package and BibTeX entry-type/field-name documentation.
type StaticDatabase interface {
	PackageDoc(name string) (string, bool)
	EntryTypeDoc(entryType string) (string, bool)
	FieldDoc(fieldName string) (string, bool)
}

// Hover dispatches on the cursor classification at (doc, offset),
// consulting v for cross-document lookups (citation targets, labels).
func Hover(v *view.View, cfg *latexsyn.Config, db StaticDatabase, doc *file.Document, offset int) (Result, bool) {
	t, ok := cursor.In(doc, offset)
	if !ok {
		return Result{}, false
	}
	switch t.Kind {
	case cursor.Citation, cursor.BibEntryKey:
		return hoverCitation(v, t)
	case cursor.BibString:
		return hoverString(v, t)
	case cursor.Label:
		return hoverLabel(v, cfg, t)
	case cursor.Environment:
		return Result{Markdown: fmt.Sprintf("environment `%s`", t.Name), Range: t.Range}, true
	case cursor.Command:
		return Result{Markdown: fmt.Sprintf("command `%s`", t.Name), Range: t.Range}, true
	}
	return Result{}, false
}

func hoverLabel(v *view.View, cfg *latexsyn.Config, t cursor.Target) (Result, bool) {
	r, ok := label.Render(v, cfg, t.Name)
	if !ok {
		return Result{}, false
	}
	return Result{Markdown: r.Text, Range: t.Range}, true
}

// hoverCitation formats the BibTeX entry for t.Name as a readable
// citation string (§4 SUPPLEMENTED FEATURES "Citation rendering for
// hover"): "Author (Year). Title.", falling back to whatever subset of
// fields is present.
func hoverCitation(v *view.View, t cursor.Target) (Result, bool) {
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*bibtexsem.Overlay)
		if !ok {
			continue
		}
		for _, e := range ov.Entries {
			if e.Key != t.Name {
				continue
			}
			return Result{Markdown: FormatCitation(e), Range: t.Range}, true
		}
	}
	return Result{}, false
}

// FormatCitation renders a minimal "Author (Year). Title." citation
// string from a BibTeX entry's fields, grounded on the original
// implementation's citeproc entry formatter shape (see SPEC_FULL.md §4)
// without pulling in a full bibliography-processing dependency.
func FormatCitation(e bibtexsem.Entry) string {
	author := fieldOr(e, "author", "")
	year := fieldOr(e, "year", "")
	title := fieldOr(e, "title", "")
	var b strings.Builder
	if author != "" {
		b.WriteString(author)
		b.WriteString(" ")
	}
	if year != "" {
		b.WriteString("(")
		b.WriteString(year)
		b.WriteString("). ")
	}
	if title != "" {
		b.WriteString(title)
		b.WriteString(".")
	}
	if b.Len() == 0 {
		return fmt.Sprintf("@%s{%s}", e.Type, e.Key)
	}
	return strings.TrimSpace(b.String())
}

func fieldOr(e bibtexsem.Entry, name, fallback string) string {
	if f, ok := e.Fields[name]; ok {
		return f.Text
	}
	return fallback
}

func hoverString(v *view.View, t cursor.Target) (Result, bool) {
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*bibtexsem.Overlay)
		if !ok {
			continue
		}
		for _, s := range ov.Strings {
			if s.Name == t.Name {
				return Result{Markdown: fmt.Sprintf("@string{%s = %s}", s.Name, s.Text), Range: t.Range}, true
			}
		}
	}
	return Result{}, false
}
