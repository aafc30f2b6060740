// Package reference implements reference resolution and rename (§4.3
// "Reference resolution and rename"): given a cursor.Target classified
// at some position, scan every document in the project view and
// accumulate every range whose text denotes the same identifier.
package reference

import (
	"fmt"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/feature/cursor"
	"texlab.dev/core/internal/file"
	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsem "texlab.dev/core/internal/semantic/latex"
	bibtexsem "texlab.dev/core/internal/semantic/bibtex"
	"texlab.dev/core/internal/project/view"
)

// Location is one matched occurrence, ready to become an LSP Location.
type Location struct {
	URI   file.URI
	Range file.Range
}

// Find scans every document in v for occurrences of target, honoring
// includeDeclaration the way §4.3 specifies: "toggles whether the
// defining occurrence... is included."
func Find(v *view.View, target cursor.Target, includeDeclaration bool) []Location {
	switch target.Kind {
	case cursor.Label:
		return findLabel(v, target.Name, includeDeclaration)
	case cursor.Citation, cursor.BibEntryKey:
		return findCitationOrBibKey(v, target.Name, includeDeclaration)
	case cursor.Environment:
		return findEnvironment(v, target.Name)
	case cursor.Command:
		return findCommand(v, target.Name, includeDeclaration)
	case cursor.BibString:
		return findBibString(v, target.Name, includeDeclaration)
	default:
		return nil
	}
}

func findLabel(v *view.View, name string, includeDeclaration bool) []Location {
	var out []Location
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		for _, l := range ov.Labels {
			if l.Name != name {
				continue
			}
			if l.Kind == latexsem.LabelDefinition && !includeDeclaration {
				continue
			}
			out = append(out, Location{URI: d.URI, Range: l.Range})
		}
	}
	return out
}

// findCitationOrBibKey handles both directions of the \cite <-> @entry
// link, since they share a single identifier namespace (§8 scenario 1).
func findCitationOrBibKey(v *view.View, name string, includeDeclaration bool) []Location {
	var out []Location
	for _, d := range v.Docs {
		switch ov := d.Payload.(type) {
		case *latexsem.Overlay:
			for _, c := range ov.Citations {
				if c.Name == name {
					out = append(out, Location{URI: d.URI, Range: c.Range})
				}
			}
		case *bibtexsem.Overlay:
			if !includeDeclaration {
				continue
			}
			for _, e := range ov.Entries {
				if e.Key == name {
					out = append(out, Location{URI: d.URI, Range: e.KeyRange})
				}
			}
		}
	}
	return out
}

func findEnvironment(v *view.View, name string) []Location {
	var out []Location
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		for _, e := range ov.Environments {
			if e.Name != name {
				continue
			}
			out = append(out, Location{URI: d.URI, Range: e.BeginNameRange})
			if e.EndNameRange != (file.Range{}) {
				out = append(out, Location{URI: d.URI, Range: e.EndNameRange})
			}
		}
	}
	return out
}

func findCommand(v *view.View, name string, includeDeclaration bool) []Location {
	var out []Location
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		if includeDeclaration {
			for _, c := range ov.Commands {
				if c.Name == name {
					out = append(out, Location{URI: d.URI, Range: c.Range})
				}
			}
		}
		if d.Tree == nil {
			continue
		}
		cst.Walk(d.Tree, func(n *cst.Node) bool {
			children := n.Children()
			if len(children) == 0 {
				return true
			}
			tok, ok := children[0].(cst.Token)
			if !ok {
				return true
			}
			base := tok.RawText()
			if len(base) > 0 && base[len(base)-1] == '*' {
				base = base[:len(base)-1]
			}
			if base == name {
				start := tok.Start()
				out = append(out, Location{URI: d.URI, Range: file.Range{Start: start, End: start + len(tok.RawText())}})
			}
			return true
		})
	}
	return dedup(out)
}

func findBibString(v *view.View, name string, includeDeclaration bool) []Location {
	var out []Location
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*bibtexsem.Overlay)
		if !ok {
			continue
		}
		if includeDeclaration {
			for _, s := range ov.Strings {
				if s.Name == name {
					out = append(out, Location{URI: d.URI, Range: s.Range})
				}
			}
		}
		if d.Tree == nil {
			continue
		}
		cst.Walk(d.Tree, func(n *cst.Node) bool {
			if n.Kind() != bibtexsyn.NodeLiteral {
				return true
			}
			children := n.Children()
			if len(children) != 1 {
				return true
			}
			tok, ok := children[0].(cst.Token)
			if !ok || tok.RawText() != name {
				return true
			}
			start := tok.Start()
			out = append(out, Location{URI: d.URI, Range: file.Range{Start: start, End: start + len(tok.RawText())}})
			return true
		})
	}
	return dedup(out)
}

func dedup(locs []Location) []Location {
	seen := map[Location]bool{}
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Edit is one text replacement inside a single document, the unit a
// WorkspaceEdit groups per-URI (§4.3 "Rename... emits a WorkspaceEdit
// grouping per-URI text edits").
type Edit struct {
	URI     file.URI
	Range   file.Range
	NewText string
}

// WorkspaceEdit groups Edits by URI, the shape an LSP client expects.
type WorkspaceEdit struct {
	Changes map[file.URI][]Edit
}

// Rename classifies target's every occurrence (declaration included) and
// produces a WorkspaceEdit replacing each with newName.
func Rename(v *view.View, target cursor.Target, newName string) (*WorkspaceEdit, error) {
	if target.Kind == cursor.None {
		return nil, fmt.Errorf("reference: cursor does not point at a renameable identifier")
	}
	if newName == "" {
		return nil, fmt.Errorf("reference: new name must not be empty")
	}
	locs := Find(v, target, true)
	we := &WorkspaceEdit{Changes: map[file.URI][]Edit{}}
	for _, l := range locs {
		we.Changes[l.URI] = append(we.Changes[l.URI], Edit{URI: l.URI, Range: l.Range, NewText: newName})
	}
	return we, nil
}

// PrepareRange returns the range that should be highlighted for
// textDocument/prepareRename: simply the classified target's own range,
// or false if offset doesn't classify to a renameable identifier.
func PrepareRange(doc *file.Document, offset int) (file.Range, bool) {
	t, ok := cursor.In(doc, offset)
	if !ok || t.Kind == cursor.None {
		return file.Range{}, false
	}
	return t.Range, true
}
