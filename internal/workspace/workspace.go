// Package workspace holds the in-memory document store: a map from URI
// to *file.Document, guarded by a single mutex, mirroring gopls's
// internal/cache.Session in shape (a map of overlays plus disk-backed
// fallbacks) but scoped down to TexLab's single-workspace model (§3
// "The workspace/project model").
package workspace

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"texlab.dev/core/internal/file"
	auxsem "texlab.dev/core/internal/semantic/aux"
	bibtexsem "texlab.dev/core/internal/semantic/bibtex"
	latexsem "texlab.dev/core/internal/semantic/latex"
	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
)

// Config is the subset of server options the workspace needs to parse
// documents (the math/enumerate/verbatim environment sets and citation
// command list feed the LaTeX parser's Config).
type Config struct {
	Latex *latexsyn.Config
}

func DefaultConfig() *Config {
	return &Config{Latex: latexsyn.DefaultConfig()}
}

// Workspace is the document store plus a background watcher for
// server-owned files. The zero value is not usable; construct with New.
type Workspace struct {
	mu      sync.RWMutex
	docs    map[file.URI]*file.Document
	cfg     *Config
	log     *zap.Logger
	watcher *fsnotify.Watcher
}

// New constructs an empty Workspace. Callers should defer Close to stop
// the filesystem watcher goroutine.
func New(log *zap.Logger) (*Workspace, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("workspace: create watcher: %w", err)
	}
	ws := &Workspace{
		docs:    map[file.URI]*file.Document{},
		cfg:     DefaultConfig(),
		log:     log,
		watcher: w,
	}
	go ws.watchLoop()
	return ws, nil
}

// Close stops the filesystem watcher.
func (w *Workspace) Close() error {
	return w.watcher.Close()
}

// SetConfig swaps the parse configuration used for subsequently-parsed
// documents. Already-stored documents keep their existing payload until
// next edited or reloaded.
func (w *Workspace) SetConfig(cfg *Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg
}

// Open inserts or replaces a client-owned document, always parsing
// fresh text (§3 "Documents are immutable per-version; an edit produces
// a new Document value, never a mutation").
func (w *Workspace) Open(uri file.URI, text string, lang file.Language) *file.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc := w.parse(uri, text, lang, file.OwnerClient)
	w.docs[uri] = doc
	if p, ok := uri.Path(); ok {
		if err := w.watcher.Add(dirOf(p)); err != nil {
			w.log.Debug("watch add failed", zap.String("path", p), zap.Error(err))
		}
	}
	return doc
}

// Load reads uri from disk and inserts it as a server-owned document,
// unless a client-owned document with the same URI already exists — per
// the invariant that client ownership always wins.
func (w *Workspace) Load(uri file.URI) (*file.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.docs[uri]; ok && existing.Owner == file.OwnerClient {
		return existing, nil
	}
	path, ok := uri.Path()
	if !ok {
		return nil, fmt.Errorf("workspace: uri %q is not a local file", uri)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workspace: read %s: %w", path, err)
	}
	lang, ok := file.LanguageFromExtension(path)
	if !ok {
		lang = file.LangTex
	}
	doc := w.parse(uri, string(raw), lang, file.OwnerServer)
	w.docs[uri] = doc
	return doc, nil
}

// Lookup returns the document stored for uri, if any.
func (w *Workspace) Lookup(uri file.URI) (*file.Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[uri]
	return d, ok
}

// Iter calls fn for every stored document in an unspecified order; fn
// must not mutate the Workspace.
func (w *Workspace) Iter(fn func(*file.Document)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, d := range w.docs {
		fn(d)
	}
}

// CloseDocument removes the document stored for uri, whatever its owner,
// e.g. on textDocument/didClose;
// a server-owned fallback is reloaded from disk lazily on next lookup
// miss by the caller (the workspace does not reload eagerly here).
func (w *Workspace) CloseDocument(uri file.URI) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

// parse dispatches to the right syntax/semantic layer by language and
// returns a fully populated Document. Must be called with w.mu held.
func (w *Workspace) parse(uri file.URI, text string, lang file.Language, owner file.Owner) *file.Document {
	doc := file.New(uri, text, lang, owner)
	switch lang {
	case file.LangTex:
		root, diags := latexsyn.Parse(text, w.cfg.Latex)
		ov := latexsem.Extract(root, w.cfg.Latex)
		return doc.WithPayload(root, ov, diags)
	case file.LangBib:
		root, diags := bibtexsyn.Parse(text)
		ov := bibtexsem.Extract(root)
		return doc.WithPayload(root, ov, diags)
	case file.LangAux:
		root, _ := latexsyn.Parse(text, latexsyn.DefaultConfig())
		ov := auxsem.Extract(text)
		return doc.WithPayload(root, ov, nil)
	default:
		return doc
	}
}

func (w *Workspace) watchLoop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("filesystem watch error", zap.Error(err))
		}
	}
}

// handleFSEvent reloads a server-owned document when its backing file
// changes on disk; client-owned documents are never touched here (§3
// "Client-owned documents must never be overwritten by disk reloads").
func (w *Workspace) handleFSEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	uri := file.Normalize("file://" + ev.Name)
	w.mu.RLock()
	existing, ok := w.docs[uri]
	w.mu.RUnlock()
	if ok && existing.Owner == file.OwnerClient {
		return
	}
	if _, err := w.Load(uri); err != nil {
		w.log.Debug("reload on fs event failed", zap.String("uri", string(uri)), zap.Error(err))
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return path
}
