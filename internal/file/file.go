// Package file defines the Document type and the small closed
// enumerations (Owner, Language) that classify it, following the shape
// of gopls's internal/file package (file.Handle, file.Kind) adapted to
// TexLab's two source languages plus their build artifacts.
package file

import (
	"net/url"
	"path"
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/line"
)

// URI is a normalized document identity. Normalization lower-cases the
// scheme and host and removes a trailing slash from non-root paths, so
// that two spellings of the same file compare equal.
type URI string

// Normalize canonicalizes a raw URI string.
func Normalize(raw string) URI {
	u, err := url.Parse(raw)
	if err != nil {
		return URI(raw)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return URI(u.String())
}

// Dir returns the directory URI obtained by truncating the last path
// segment, always ending in "/".
func (u URI) Dir() URI {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return u
	}
	dir := path.Dir(parsed.Path)
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	parsed.Path = dir
	return URI(parsed.String())
}

// Join resolves name against the directory u (u need not end in "/";
// the last segment, if any, is treated as the base directory only when
// u already denotes a directory — callers are expected to call Dir first
// when joining against a file URI).
func (u URI) Join(name string) URI {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return URI(name)
	}
	ref, err := url.Parse(name)
	if err != nil {
		return u
	}
	return URI(parsed.ResolveReference(ref).String())
}

// Path returns the filesystem path for a file-scheme URI, or "" (and
// false) for any other scheme.
func (u URI) Path() (string, bool) {
	parsed, err := url.Parse(string(u))
	if err != nil || parsed.Scheme != "file" {
		return "", false
	}
	return parsed.Path, true
}

// Owner distinguishes documents opened by the editor from documents the
// server itself loaded from disk. Per spec.md §3 "Client-owned documents
// must never be overwritten by disk reloads."
type Owner int

const (
	OwnerClient Owner = iota
	OwnerServer
)

func (o Owner) String() string {
	if o == OwnerClient {
		return "client"
	}
	return "server"
}

// Language tags the payload variant stored on a Document.
type Language int

const (
	LangTex Language = iota
	LangBib
	LangAux
	LangLog
	LangRoot     // .texlabroot / texlabroot marker files
	LangTectonic // Tectonic.toml
)

func (l Language) String() string {
	switch l {
	case LangTex:
		return "tex"
	case LangBib:
		return "bib"
	case LangAux:
		return "aux"
	case LangLog:
		return "log"
	case LangRoot:
		return "root"
	case LangTectonic:
		return "tectonic"
	default:
		return "unknown"
	}
}

// LanguageFromExtension classifies a file by its extension, following the
// heuristic texlab itself uses (crates/base-db/src/document.rs): the set
// of recognised extensions is deliberately small and case-insensitive.
func LanguageFromExtension(name string) (Language, bool) {
	base := path.Base(name)
	switch {
	case base == ".texlabroot" || base == "texlabroot":
		return LangRoot, true
	case base == "Tectonic.toml":
		return LangTectonic, true
	}
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".tex", ".sty", ".cls", ".def", ".lco", ".clo":
		return LangTex, true
	case ".bib":
		return LangBib, true
	case ".aux":
		return LangAux, true
	case ".log":
		return LangLog, true
	default:
		return 0, false
	}
}

// Diagnostic is a single syntactic or semantic problem found in a
// Document, kept language-neutral so both the syntax and build-log
// layers can populate the same slice (§7).
type Diagnostic struct {
	Range    Range
	Severity Severity
	Code     string
	Message  string
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// Range is a pair of byte offsets into a Document's text.
type Range struct {
	Start, End int
}

// Document is an immutable snapshot of one URI's content plus derived
// state. Any text mutation produces a new Document (§3 "Documents are
// immutable per-version").
type Document struct {
	URI       URI
	Dir       URI
	Path      string // "" unless URI has a file: scheme
	HasPath   bool
	Text      string
	Index     *line.Index
	Owner     Owner
	Language  Language
	Cursor    int // byte offset, defaults to 0
	// Tree is the parsed CST root for Tex/Bib documents, nil otherwise.
	// Kept alongside Payload (the semantic overlay derived from it) so
	// feature analyses that need raw syntax — cursor classification,
	// folding, the label-rendering "enclosing construct" search — don't
	// have to re-parse.
	Tree        *cst.Node
	Payload     any // *latexsem.Overlay, *bibtexsem.Overlay, *aux.Overlay, or nil
	Diagnostics []Diagnostic
}

// New constructs a Document, deriving Dir, Path and the line Index from
// uri and text. The caller supplies language, owner and the parsed
// payload (parsing lives in the syntax/semantic layers, not here, to
// keep this package dependency-free of the grammars).
func New(uri URI, text string, language Language, owner Owner) *Document {
	p, ok := uri.Path()
	return &Document{
		URI:      uri,
		Dir:      uri.Dir(),
		Path:     p,
		HasPath:  ok,
		Text:     text,
		Index:    line.NewIndex([]byte(text)),
		Owner:    owner,
		Language: language,
	}
}

// WithPayload returns a copy of d with Tree, Payload and Diagnostics
// replaced, never mutating d. Every other derived-on-construction field
// (URI, Dir, Path, Text, Index, Owner, Language) stays fixed because it
// depends only on URI+text+owner+language, which cannot change without a
// new Document.
func (d *Document) WithPayload(tree *cst.Node, payload any, diags []Diagnostic) *Document {
	cp := *d
	cp.Tree = tree
	cp.Payload = payload
	cp.Diagnostics = diags
	return &cp
}

// WithCursor returns a copy of d with Cursor set to offset.
func (d *Document) WithCursor(offset int) *Document {
	cp := *d
	cp.Cursor = offset
	return &cp
}
