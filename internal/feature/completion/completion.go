// Package completion implements the completion dispatcher (§4.3
// "Completion"): a set of per-category providers, each classifying the
// cursor context against the shared CST/taxonomy machinery and emitting
// scored, ranged candidates; the dispatcher merges, sorts, deduplicates
// and truncates their output to 50 items.
package completion

import (
	"path"
	"sort"
	"strings"

	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/filedb"
	"texlab.dev/core/internal/fuzzy"
	"texlab.dev/core/internal/project/view"
	latexsem "texlab.dev/core/internal/semantic/latex"
	bibtexsyn "texlab.dev/core/internal/syntax/bibtex"
	latexsyn "texlab.dev/core/internal/syntax/latex"
	"texlab.dev/core/internal/taxonomy"
)

// Category tags which provider produced an Item (§4.3 "data is a tagged
// variant naming the category").
type Category string

const (
	CategoryCommand       Category = "command"
	CategoryBeginSnippet  Category = "begin_snippet"
	CategoryEnvironment   Category = "environment"
	CategoryCitation      Category = "citation"
	CategoryGlossaryEntry Category = "glossary_entry"
	CategoryLabel         Category = "label"
	CategoryColorName     Category = "color_name"
	CategoryColorModel    Category = "color_model"
	CategoryFile          Category = "file"
	CategoryDirectory     Category = "directory"
	CategoryImport        Category = "import"
	CategoryEntryType     Category = "entry_type"
	CategoryFieldName     Category = "field_name"
	CategoryTikzLibrary   Category = "tikz_library"
)

// Item is one completion candidate (§4.3 "{ score, range, preselect, data }").
type Item struct {
	Label     string
	Score     int
	Range     file.Range
	Preselect bool
	Category  Category
}

const maxItems = 50

// Lister abstracts directory listing for the file/directory providers,
// the same shape project/root.DirLister uses, so this package doesn't
// need to import the workspace.
type Lister interface {
	EntriesIn(dir file.URI) []string
}

// Database is the out-of-core-scope static database (§1) supplying
// package/class names and the BibTeX entry-type/field-name lexicon.
type Database interface {
	Packages() []string
	Classes() []string
	EntryTypes() []string
	FieldNames() []string
	TikzLibraries() []string
}

// Dispatch runs every category provider applicable at (doc, offset) and
// returns their merged, sorted, deduplicated, truncated candidates.
func Dispatch(v *view.View, cfg *latexsyn.Config, db Database, lst Lister, fdb filedb.Database, doc *file.Document, offset int) []Item {
	if doc.Language == file.LangBib {
		return finalize(bibtexItems(doc, offset, db))
	}
	if doc.Tree == nil {
		return nil
	}
	chain := cst.FindContaining(doc.Tree, offset)
	var items []Item
	items = append(items, commandNameItems(chain, offset)...)
	items = append(items, environmentNameItems(v, chain, offset)...)
	items = append(items, argumentItems(v, cfg, db, lst, fdb, doc, chain, offset)...)
	return finalize(items)
}

// finalize applies §4.3's dispatcher contract: sort by (preselect desc,
// score desc, label asc), dedup by label, cap at 50. Items failing the
// fuzzy match are already excluded by fuzzy.Rank before reaching here;
// an empty query legitimately matches everything at score 0, so a
// non-positive score alone isn't treated as a rejection.
func finalize(items []Item) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Preselect != items[j].Preselect {
			return items[i].Preselect
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Label < items[j].Label
	})
	seen := map[string]bool{}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.Label] {
			continue
		}
		seen[it.Label] = true
		out = append(out, it)
		if len(out) == maxItems {
			break
		}
	}
	return out
}

// commandNameItems handles the cursor sitting inside a command-name
// token (after the backslash): every taxonomy entry plus "end" is a
// candidate, plus the synthetic "begin" snippet (§4.3 "\begin snippet").
// User-defined commands from the project are not offered.
func commandNameItems(chain []*cst.Node, offset int) []Item {
	innermost := innermostNode(chain)
	if innermost == nil || innermost.Kind() != latexsyn.NodeCommand {
		return nil
	}
	tok, ok := nameToken(innermost)
	if !ok || offset < tok.Start() || offset > tok.Start()+len(tok.RawText()) {
		return nil
	}
	r := file.Range{Start: tok.Start(), End: tok.Start() + len(tok.RawText())}
	query := strings.TrimPrefix(tok.RawText(), `\`)

	names := make([]string, 0, len(taxonomy.Table)+1)
	for name := range taxonomy.Table {
		names = append(names, strings.TrimPrefix(name, `\`))
	}
	names = append(names, "end")

	var out []Item
	for _, cand := range fuzzy.Rank(query, names, func(s string) string { return s }) {
		out = append(out, Item{Label: cand.Item, Score: cand.Score, Range: r, Category: CategoryCommand})
	}
	// "begin" gets its own snippet category instead of a plain command
	// item, since completing it also inserts the matching \end{…}.
	if ok, score := fuzzy.Match(query, "begin"); ok {
		out = append(out, Item{Label: "begin", Score: score, Range: r, Category: CategoryBeginSnippet})
	}
	return out
}

// environmentNameItems handles the cursor sitting inside \begin{…} or
// \end{…}'s name group: "document" plus every environment name already
// used anywhere in the project view is a candidate (the math, enum and
// verbatim sets of the parser config are not consulted); the candidate equal to
// the document's already-open \begin{foo} is preselected so \end{…}
// completion picks it up automatically.
func environmentNameItems(v *view.View, chain []*cst.Node, offset int) []Item {
	group := innermostNode(chain)
	if group == nil || group.Kind() != latexsyn.NodeCurlyGroup {
		return nil
	}
	parent := parentOf(chain, group)
	if parent == nil || (parent.Kind() != latexsyn.NodeBegin && parent.Kind() != latexsyn.NodeEnd) {
		return nil
	}
	r := groupInnerRange(group)
	if offset < r.Start || offset > r.End {
		return nil
	}
	query := textRange(group, r)

	names := map[string]bool{"document": true}
	// A preselect target: the enclosing environment's own name, so that
	// completing inside \end{…} immediately offers the matching \begin.
	var preselect string
	if env := enclosingEnvironment(chain, group); env != nil {
		if name, _ := beginEnvName(env); name != "" {
			preselect = name
		}
	}
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		for _, e := range ov.Environments {
			names[e.Name] = true
		}
	}

	candNames := make([]string, 0, len(names))
	for n := range names {
		candNames = append(candNames, n)
	}
	var out []Item
	for _, cand := range fuzzy.Rank(query, candNames, func(s string) string { return s }) {
		out = append(out, Item{
			Label:     cand.Item,
			Score:     cand.Score,
			Range:     r,
			Preselect: preselect != "" && cand.Item == preselect,
			Category:  CategoryEnvironment,
		})
	}
	return out
}

// argumentItems handles the cursor inside a curly-group argument of a
// taxonomy-classified command: citation keys, glossary entries, label
// names, color names, file paths/directories, package/class imports,
// tikz libraries.
func argumentItems(v *view.View, cfg *latexsyn.Config, db Database, lst Lister, fdb filedb.Database, doc *file.Document, chain []*cst.Node, offset int) []Item {
	group := innermostNode(chain)
	if group == nil || group.Kind() != latexsyn.NodeCurlyGroup {
		return nil
	}
	cmd := parentOf(chain, group)
	if cmd == nil || cmd.Kind() != latexsyn.NodeCommand {
		return nil
	}
	tok, ok := nameToken(cmd)
	if !ok {
		return nil
	}
	base := strings.TrimSuffix(tok.RawText(), "*")
	entry := taxonomy.Lookup(base)
	if latexsem.CurlyGroupIndex(cmd, group) != entry.ArgIndex {
		return nil
	}

	r := currentKeyRange(group, offset)
	query := textRange(group, r)

	switch entry.Role {
	case taxonomy.RoleCitation:
		return citationItems(v, r, query)
	case taxonomy.RoleGlossaryEntryReference, taxonomy.RoleAcronymReference:
		return glossaryItems(v, r, query)
	case taxonomy.RoleLabelReference, taxonomy.RoleLabelReferenceRange, taxonomy.RoleLabelNumber:
		return labelItems(v, r, query)
	case taxonomy.RoleColorReference:
		return colorItems(r, query)
	case taxonomy.RoleColorDefinition, taxonomy.RoleColorSetDefinition:
		return colorModelItems(r, query)
	case taxonomy.RoleTikzLibraryImport:
		if db == nil {
			return nil
		}
		return listItems(db.TikzLibraries(), r, query, CategoryTikzLibrary)
	case taxonomy.RoleInclude:
		if entry.IncludeKind == taxonomy.IncludePackage || entry.IncludeKind == taxonomy.IncludeClass {
			if db == nil {
				return nil
			}
			if entry.IncludeKind == taxonomy.IncludePackage {
				return listItems(db.Packages(), r, query, CategoryImport)
			}
			return listItems(db.Classes(), r, query, CategoryImport)
		}
		return includeItems(doc, lst, fdb, entry, r, query)
	}
	return nil
}

func citationItems(v *view.View, r file.Range, query string) []Item {
	var keys []string
	for _, ref := range v.BibEntries() {
		keys = append(keys, ref.Key())
	}
	var out []Item
	for _, cand := range fuzzy.Rank(query, keys, func(s string) string { return s }) {
		out = append(out, Item{Label: cand.Item, Score: cand.Score, Range: r, Category: CategoryCitation})
	}
	return out
}

func glossaryItems(v *view.View, r file.Range, query string) []Item {
	var names []string
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		for _, g := range ov.GlossaryEntries {
			names = append(names, g.Name)
		}
	}
	var out []Item
	for _, cand := range fuzzy.Rank(query, names, func(s string) string { return s }) {
		out = append(out, Item{Label: cand.Item, Score: cand.Score, Range: r, Category: CategoryGlossaryEntry})
	}
	return out
}

func labelItems(v *view.View, r file.Range, query string) []Item {
	var names []string
	for _, d := range v.Docs {
		ov, ok := d.Payload.(*latexsem.Overlay)
		if !ok {
			continue
		}
		for _, l := range ov.Labels {
			if l.Kind == latexsem.LabelDefinition {
				names = append(names, l.Name)
			}
		}
	}
	var out []Item
	for _, cand := range fuzzy.Rank(query, names, func(s string) string { return s }) {
		out = append(out, Item{Label: cand.Item, Score: cand.Score, Range: r, Category: CategoryLabel})
	}
	return out
}

var colorNames = []string{
	"red", "green", "blue", "cyan", "magenta", "yellow", "black", "white",
	"gray", "darkgray", "lightgray", "brown", "lime", "olive", "orange",
	"pink", "purple", "teal", "violet",
}

var colorModels = []string{"rgb", "RGB", "HTML", "gray", "cmyk", "hsb", "named"}

func colorItems(r file.Range, query string) []Item {
	return listItems(colorNames, r, query, CategoryColorName)
}

func colorModelItems(r file.Range, query string) []Item {
	return listItems(colorModels, r, query, CategoryColorModel)
}

func listItems(names []string, r file.Range, query string, cat Category) []Item {
	var out []Item
	for _, cand := range fuzzy.Rank(query, names, func(s string) string { return s }) {
		out = append(out, Item{Label: cand.Item, Score: cand.Score, Range: r, Category: cat})
	}
	return out
}

// includeItems lists files/directories under the current group's path
// prefix, also listing the document's \graphicspath directories for
// IncludeGraphics when no directory prefix is typed (§8 scenario 5), and
// falling back to the file-name database for bare names with no path
// separator (§4.2's "otherwise falls back to the
// file-name database").
func includeItems(doc *file.Document, lst Lister, fdb filedb.Database, entry taxonomy.Entry, r file.Range, query string) []Item {
	if lst == nil {
		return nil
	}
	dirPrefix, namePrefix := path.Split(query)
	base := doc.Dir
	if dirPrefix != "" {
		base = base.Join(dirPrefix)
	}
	names := lst.EntriesIn(base)
	if entry.IncludeKind == taxonomy.IncludeGraphics && dirPrefix == "" {
		if ov, ok := doc.Payload.(*latexsem.Overlay); ok {
			for _, gp := range ov.GraphicsPaths {
				names = append(names, lst.EntriesIn(doc.Dir.Join(gp))...)
			}
		}
	}
	var out []Item
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		ok, score := fuzzyMatchSimple(namePrefix, name)
		if !ok {
			continue
		}
		label := dirPrefix + name
		cat := CategoryFile
		if strings.HasSuffix(name, "/") {
			cat = CategoryDirectory
		} else if len(entry.Extensions) > 0 && !hasAnyExt(name, entry.Extensions) {
			continue
		}
		out = append(out, Item{Label: label, Score: score, Range: r, Category: cat})
	}
	if dirPrefix == "" && fdb != nil {
		if p, ok := fdb.Get(query + firstExt(entry.Extensions)); ok {
			out = append(out, Item{Label: p, Score: 0, Range: r, Category: CategoryFile})
		}
	}
	return out
}

func fuzzyMatchSimple(query, target string) (bool, int) {
	return fuzzy.Match(query, target)
}

func firstExt(exts []string) string {
	if len(exts) == 0 {
		return ""
	}
	return exts[0]
}

func hasAnyExt(name string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(strings.ToLower(name), strings.ToLower(e)) {
			return true
		}
	}
	return false
}

// bibtexItems handles the two completable spots in a BibTeX document:
// the entry's @type keyword and a field's name.
func bibtexItems(doc *file.Document, offset int, db Database) []Item {
	if doc.Tree == nil || db == nil {
		return nil
	}
	chain := cst.FindContaining(doc.Tree, offset)
	n := innermostNode(chain)
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case bibtexsyn.NodeEntry:
		return entryTypeItems(n, offset, db)
	case bibtexsyn.NodeField:
		return fieldNameItems(n, offset, db)
	}
	return nil
}

func entryTypeItems(n *cst.Node, offset int, db Database) []Item {
	children := n.Children()
	if len(children) < 2 {
		return nil
	}
	tok, ok := children[1].(cst.Token)
	if !ok || offset < tok.Start() || offset > tok.Start()+len(tok.RawText()) {
		return nil
	}
	r := file.Range{Start: tok.Start(), End: tok.Start() + len(tok.RawText())}
	return listItems(db.EntryTypes(), r, tok.RawText(), CategoryEntryType)
}

func fieldNameItems(n *cst.Node, offset int, db Database) []Item {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	tok, ok := children[0].(cst.Token)
	if !ok || offset < tok.Start() || offset > tok.Start()+len(tok.RawText()) {
		return nil
	}
	r := file.Range{Start: tok.Start(), End: tok.Start() + len(tok.RawText())}
	return listItems(db.FieldNames(), r, tok.RawText(), CategoryFieldName)
}

func innermostNode(chain []*cst.Node) *cst.Node {
	if len(chain) == 0 {
		return nil
	}
	return chain[len(chain)-1]
}

func parentOf(chain []*cst.Node, n *cst.Node) *cst.Node {
	for i, c := range chain {
		if c == n && i > 0 {
			return chain[i-1]
		}
	}
	return nil
}

func enclosingEnvironment(chain []*cst.Node, below *cst.Node) *cst.Node {
	found := false
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i] == below {
			found = true
			continue
		}
		if !found {
			continue
		}
		if chain[i].Kind() == latexsyn.NodeEnvironment {
			return chain[i]
		}
	}
	return nil
}

func beginEnvName(env *cst.Node) (string, file.Range) {
	children := env.Children()
	if len(children) == 0 {
		return "", file.Range{}
	}
	begin, ok := children[0].(*cst.Node)
	if !ok {
		return "", file.Range{}
	}
	for _, c := range begin.Children() {
		if g, ok := c.(*cst.Node); ok && g.Kind() == latexsyn.NodeCurlyGroup {
			r := groupInnerRange(g)
			return textRange(g, r), r
		}
	}
	return "", file.Range{}
}

func nameToken(cmd *cst.Node) (cst.Token, bool) {
	children := cmd.Children()
	if len(children) == 0 {
		return cst.Token{}, false
	}
	tok, ok := children[0].(cst.Token)
	return tok, ok
}

func groupInnerRange(g *cst.Node) file.Range {
	children := g.Children()
	if len(children) < 2 {
		s, e := g.Span()
		return file.Range{Start: s, End: e}
	}
	inner := children[1 : len(children)-1]
	if len(inner) == 0 {
		_, openEnd := children[0].Span()
		return file.Range{Start: openEnd, End: openEnd}
	}
	start, _ := inner[0].Span()
	_, end := inner[len(inner)-1].Span()
	return file.Range{Start: start, End: end}
}

// currentKeyRange narrows a possibly comma-separated group (e.g.
// \cite{a,b,|}) down to the range of the key containing offset, via the
// shared splitter exported from semantic/latex.
func currentKeyRange(g *cst.Node, offset int) file.Range {
	if id, ok := latexsem.FindKeyAt(g, offset); ok {
		return id.Range
	}
	return groupInnerRange(g)
}

func textRange(g *cst.Node, r file.Range) string {
	var b strings.Builder
	for _, t := range cst.Tokens(g) {
		start := t.Start()
		end := start + len(t.RawText())
		if start >= r.Start && end <= r.End {
			b.WriteString(t.RawText())
		}
	}
	return b.String()
}
