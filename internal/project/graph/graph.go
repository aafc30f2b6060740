// Package graph builds the dependency graph described in §3
// ("Dependency graph construction"): a depth-first walk from a start
// document that resolves explicit links (\include, \input,
// \addbibresource, \bibliography, and commands the taxonomy tags as
// includes), plus implicit .aux/.log sibling edges. \import-family
// commands yield no links, since semantic/latex does not extract them.
package graph

import (
	"texlab.dev/core/internal/file"
	latexsem "texlab.dev/core/internal/semantic/latex"
	"texlab.dev/core/internal/taxonomy"
)

// Resolver abstracts the parts of the workspace the graph needs: a way
// to look up a document's parsed overlay by URI, and a file-name
// database for TeX-distribution files outside the workspace.
type Resolver interface {
	// Lookup returns the LaTeX overlay for uri and whether uri names a
	// workspace LaTeX document.
	Lookup(uri file.URI) (overlay *latexsem.Overlay, exists bool)
	// Exists reports whether uri names a workspace document of any
	// language (used for .aux/.log sibling probing).
	Exists(uri file.URI) bool
	// DatabaseLookup consults the local TeX distribution's file-name
	// database, returning candidates restricted to files under the
	// user's home directory or with a .bib extension (§3).
	DatabaseLookup(name string) (file.URI, bool)
}

// Edge records one resolved dependency; Link is nil for implicit
// .aux/.log sibling edges.
type Edge struct {
	From file.URI
	To   file.URI
	Link *latexsem.IncludeLink
}

// Graph is the DAG-shaped (cycle-tolerant) result of a dependency walk.
type Graph struct {
	Start   file.URI
	Edges   []Edge
	Missing []file.URI // link targets that did not resolve to any document
}

// extensionsFor returns the candidate extensions to try for a given
// include kind, mirroring the Extensions list already attached to each
// taxonomy entry that produced the link.
func extensionsFor(kind taxonomy.IncludeKind) []string {
	switch kind {
	case taxonomy.IncludePackage:
		return []string{".sty"}
	case taxonomy.IncludeClass:
		return []string{".cls"}
	case taxonomy.IncludeBibtex, taxonomy.IncludeBiblatex:
		return []string{".bib"}
	case taxonomy.IncludeGraphics:
		return []string{".pdf", ".png", ".jpg", ".jpeg", ".eps"}
	case taxonomy.IncludeSVG, taxonomy.IncludeInkscape:
		return []string{".svg"}
	case taxonomy.IncludeVerbatim:
		return []string{".txt"}
	default:
		return []string{".tex"}
	}
}

// Build performs the depth-first walk described in §3, starting at
// start and using baseDir as the initial current base directory (the
// project root's src_dir). A link with a non-empty BaseDir, read as a
// directory URI, replaces the base directory for the subtree it pulls
// in; semantic/latex leaves BaseDir empty, so the base directory stays
// fixed for the whole walk.
func Build(start file.URI, baseDir file.URI, r Resolver) *Graph {
	g := &Graph{Start: start}
	visited := map[file.URI]bool{}
	walk(start, baseDir, r, g, visited)
	return g
}

func walk(uri file.URI, baseDir file.URI, r Resolver, g *Graph, visited map[file.URI]bool) {
	if visited[uri] {
		return
	}
	visited[uri] = true

	ov, ok := r.Lookup(uri)
	if !ok {
		return
	}
	for i := range ov.Includes {
		link := ov.Includes[i]
		nextBase := baseDir
		if link.BaseDir != "" {
			nextBase = file.URI(link.BaseDir)
		}
		target, resolved := resolveExplicit(link, baseDir, r)
		if !resolved {
			g.Missing = append(g.Missing, baseDir.Join(link.Path))
			continue
		}
		g.Edges = append(g.Edges, Edge{From: uri, To: target, Link: &link})
		walk(target, nextBase, r, g, visited)
	}

	for _, candidate := range implicitSiblings(uri) {
		if !visited[candidate] && r.Exists(candidate) {
			g.Edges = append(g.Edges, Edge{From: uri, To: candidate})
			walk(candidate, baseDir, r, g, visited)
		}
	}
}

// resolveExplicit tries the raw link text, then the text plus each
// candidate extension, against baseDir; failing that, it consults the
// file-name database.
func resolveExplicit(link latexsem.IncludeLink, baseDir file.URI, r Resolver) (file.URI, bool) {
	candidates := []string{link.Path}
	for _, ext := range extensionsFor(link.Kind) {
		candidates = append(candidates, link.Path+ext)
	}
	for _, c := range candidates {
		u := baseDir.Join(c)
		if _, ok := r.Lookup(u); ok {
			return u, true
		}
		if r.Exists(u) {
			return u, true
		}
	}
	if u, ok := r.DatabaseLookup(link.Path); ok {
		return u, true
	}
	return "", false
}

// implicitSiblings returns the .aux and .log URIs derived from a
// LaTeX-source uri by replacing its extension.
func implicitSiblings(uri file.URI) []file.URI {
	base, ok := withoutExt(string(uri))
	if !ok {
		return nil
	}
	return []file.URI{file.URI(base + ".aux"), file.URI(base + ".log")}
}

func withoutExt(s string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return "", false
		}
		if s[i] == '.' {
			return s[:i], true
		}
	}
	return "", false
}

// Preorder returns the start document followed by every reachable
// target, deduplicated by URI, in depth-first order (§3 "preorder()
// iterator").
func (g *Graph) Preorder() []file.URI {
	children := map[file.URI][]file.URI{}
	for _, e := range g.Edges {
		children[e.From] = append(children[e.From], e.To)
	}
	var out []file.URI
	seen := map[file.URI]bool{}
	var visit func(file.URI)
	visit = func(u file.URI) {
		if seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
		for _, c := range children[u] {
			visit(c)
		}
	}
	visit(g.Start)
	return out
}
