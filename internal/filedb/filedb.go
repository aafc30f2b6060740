// Package filedb is the contract with the external file-name database
// collaborator named in spec.md §6 ("File-name database"): a mapping
// from TeX-distribution file name to absolute path, populated once at
// startup from the user's installed TeX distribution (kbytex/MiKTeX's
// ls-R or equivalent). The core never populates this table itself — it
// only calls Get — so this package defines the narrow interface plus an
// in-memory implementation usable by tests and by a caller that has
// already walked the distribution tree.
package filedb

import (
	"path/filepath"
	"strings"
)

// Database answers "does this file name exist somewhere in the user's
// TeX distribution, and if so where" (§3 "the file-name database is
// consulted for locally installed TeX distribution files").
type Database interface {
	Get(name string) (absPath string, ok bool)
}

// Static is a Database backed by a fixed map, built once (e.g. from a
// kpsewhich ls-R listing) and never mutated afterward, matching §5
// "populated once at startup behind an initialization guard; subsequent
// access is read-only".
type Static struct {
	byName map[string]string
}

// NewStatic builds a Static database from a name->path map. The map is
// retained, not copied; callers must not mutate it after passing it in.
func NewStatic(byName map[string]string) *Static {
	return &Static{byName: byName}
}

func (s *Static) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	p, ok := s.byName[name]
	return p, ok
}

// HomeRestricted wraps a Database so that only paths under home (the
// user's TeX tree, e.g. ~/texmf) or ending in ".bib" are surfaced, per
// §4.2 "only matches under the home directory (user-installed, not
// system) or with extension .bib are considered".
type HomeRestricted struct {
	Inner Database
	Home  string
}

func (h HomeRestricted) Get(name string) (string, bool) {
	p, ok := h.Inner.Get(name)
	if !ok {
		return "", false
	}
	if strings.EqualFold(filepath.Ext(p), ".bib") {
		return p, true
	}
	if h.Home != "" && strings.HasPrefix(p, h.Home) {
		return p, true
	}
	return "", false
}
