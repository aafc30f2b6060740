// Package view assembles the "project view" spec.md §1/§4.3 describes:
// a start document plus every document transitively reachable from it
// through the dependency graph (§3 "Dependency graph", "Project view").
// It also exposes workspace-wide project ordering (§4.2 "Project
// ordering") built from every document's own view.
//
// This package is the glue layer spec.md's component design leaves
// implicit: it adapts internal/workspace.Workspace to the
// project/graph.Resolver and project/root.DirLister interfaces so the
// lower layers stay free of any dependency on the workspace package
// (avoiding the import cycle graph/root would otherwise have with
// workspace), per §9 "Cross-document back-references... derive the
// relation by running root discovery on demand".
package view

import (
	"sort"

	"texlab.dev/core/internal/config"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/filedb"
	"texlab.dev/core/internal/project/graph"
	"texlab.dev/core/internal/project/order"
	"texlab.dev/core/internal/project/root"
	auxsem "texlab.dev/core/internal/semantic/aux"
	bibtexsem "texlab.dev/core/internal/semantic/bibtex"
	latexsem "texlab.dev/core/internal/semantic/latex"
)

// Store is the subset of *workspace.Workspace this package needs. Kept
// as an interface (rather than importing workspace directly) so
// internal/workspace can, if it ever needs to, depend on this package
// without creating a cycle.
type Store interface {
	Lookup(uri file.URI) (*file.Document, bool)
	Iter(func(*file.Document))
}

// View is the start document plus every document reachable from it,
// deduplicated, in dependency-graph preorder (§3 "Project view: the
// start document plus the distinct documents reachable via its
// dependency graph").
type View struct {
	Start   *file.Document
	Docs    []*file.Document // includes Start, at index 0
	Root    root.Root
	Missing []file.URI
}

// resolverAdapter implements graph.Resolver and root.DirLister over a
// Store plus a Database. DatabaseLookup applies no restriction of its
// own: entries are limited to the home directory or ".bib" files (§4.2)
// only when db is a filedb.HomeRestricted.
type resolverAdapter struct {
	store Store
	db    filedb.Database
}

func (a resolverAdapter) Lookup(uri file.URI) (*latexsem.Overlay, bool) {
	d, ok := a.store.Lookup(uri)
	if !ok {
		return nil, false
	}
	ov, ok := d.Payload.(*latexsem.Overlay)
	return ov, ok
}

func (a resolverAdapter) Exists(uri file.URI) bool {
	_, ok := a.store.Lookup(uri)
	return ok
}

func (a resolverAdapter) DatabaseLookup(name string) (file.URI, bool) {
	if a.db == nil {
		return "", false
	}
	p, ok := a.db.Get(name)
	if !ok {
		return "", false
	}
	return file.Normalize("file://" + p), true
}

func (a resolverAdapter) EntriesIn(dir file.URI) []string {
	var out []string
	a.store.Iter(func(d *file.Document) {
		if d.Dir != dir {
			return
		}
		if p, ok := d.URI.Path(); ok {
			out = append(out, baseName(p))
		}
	})
	return out
}

func (a resolverAdapter) Contents(uri file.URI) (string, bool) {
	d, ok := a.store.Lookup(uri)
	if !ok {
		return "", false
	}
	return d.Text, true
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

// Build constructs the project view for start: it runs root discovery
// from start's directory, then a dependency-graph walk from start using
// the discovered src_dir as the initial base directory (§3, §4.2).
func Build(store Store, db filedb.Database, cfg *config.Options, start *file.Document) *View {
	adapter := resolverAdapter{store: store, db: db}
	rootCfg := root.Config{}
	if cfg != nil {
		rootCfg.OutputDir = cfg.Build.OutputDir
	}
	r := root.Discover(start.Dir, adapter, rootCfg)

	g := graph.Build(start.URI, r.SrcDir, adapter)
	uris := g.Preorder()

	docs := make([]*file.Document, 0, len(uris))
	for _, u := range uris {
		if d, ok := store.Lookup(u); ok {
			docs = append(docs, d)
		}
	}
	if len(docs) == 0 || docs[0].URI != start.URI {
		docs = append([]*file.Document{start}, docs...)
	}
	return &View{Start: start, Docs: docs, Root: r, Missing: g.Missing}
}

// Has reports whether uri is one of the documents in v.
func (v *View) Has(uri file.URI) bool {
	for _, d := range v.Docs {
		if d.URI == uri {
			return true
		}
	}
	return false
}

// BibEntries returns every BibTeX entry reachable from v, across all
// .bib documents in the view (used by citation completion/hover/rename).
func (v *View) BibEntries() []bibEntryRef {
	var out []bibEntryRef
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*bibtexsem.Overlay)
		if !ok {
			continue
		}
		for i := range ov.Entries {
			out = append(out, bibEntryRef{Doc: d, Entry: &ov.Entries[i]})
		}
	}
	return out
}

type bibEntryRef struct {
	Doc   *file.Document
	Entry *bibtexsem.Entry
}

func (r bibEntryRef) Key() string          { return r.Entry.Key }
func (r bibEntryRef) URI() file.URI        { return r.Doc.URI }
func (r bibEntryRef) KeyRange() file.Range { return r.Entry.KeyRange }

// Ordering computes the workspace-wide total order described in §4.2
// "Project ordering": every document whose overlay reports CanBeRoot
// (root documents, sorted by URI) contributes its own view's preorder,
// reversed, first; then every remaining document follows in URI order,
// deduplicated by first occurrence. Sorting by URI makes Ordering
// deterministic regardless of the Store's iteration order (§8
// "Dependency graph determinism").
func Ordering(store Store, db filedb.Database, cfg *config.Options) *order.Order {
	var roots []file.URI
	var all []file.URI
	store.Iter(func(d *file.Document) {
		all = append(all, d.URI)
		if ov, ok := d.Payload.(*latexsem.Overlay); ok && ov.CanBeRoot {
			roots = append(roots, d.URI)
		}
	})
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	adapter := resolverAdapter{store: store, db: db}
	preorderOf := func(u file.URI) []file.URI {
		d, ok := store.Lookup(u)
		if !ok {
			return nil
		}
		rootCfg := root.Config{}
		if cfg != nil {
			rootCfg.OutputDir = cfg.Build.OutputDir
		}
		r := root.Discover(d.Dir, adapter, rootCfg)
		return graph.Build(u, r.SrcDir, adapter).Preorder()
	}
	return order.Build(roots, preorderOf, all)
}

// AuxOverlay returns the AUX overlay of the first .aux document in v, if
// any, without matching its file name against the start document — used
// by label rendering to find a label's compiled number (§4.3 "Label
// rendering").
func (v *View) AuxOverlay() *auxsem.Overlay {
	for _, d := range v.Docs {
		if ov, ok := d.Payload.(*auxsem.Overlay); ok {
			return ov
		}
	}
	return nil
}
