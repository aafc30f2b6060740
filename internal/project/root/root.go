// Package root discovers a document's compilation root by walking its
// directory chain upward, following the three recognized markers
// (.texlabroot/texlabroot, Tectonic.toml, .latexmkrc) before falling
// back to configuration (§3 "Root discovery").
package root

import (
	"bufio"
	"regexp"
	"strings"

	"texlab.dev/core/internal/file"
)

// Root is the tuple of directories used to resolve relative includes
// and locate build artifacts. Every field is a URI ending in "/".
type Root struct {
	CompileDir      file.URI
	SrcDir          file.URI
	AuxDir          file.URI
	LogDir          file.URI
	PdfDir          file.URI
	AdditionalFiles []file.URI
}

// fromCompileDir builds a Root whose five directories all equal dir,
// the default shape for a plain rootfile-marked or fallback project.
func fromCompileDir(dir file.URI) Root {
	return Root{CompileDir: dir, SrcDir: dir, AuxDir: dir, LogDir: dir, PdfDir: dir}
}

// DirLister abstracts over the workspace/filesystem so this package
// doesn't depend on internal/workspace (which would create an import
// cycle once workspace starts calling root.Discover).
type DirLister interface {
	// EntriesIn returns the base names of files known to exist in dir
	// (from open documents or a directory listing); dir ends in "/".
	EntriesIn(dir file.URI) []string
	// Contents returns the text of the file at uri, if known.
	Contents(uri file.URI) (string, bool)
}

// Config supplies the fallback when no marker is found while walking.
type Config struct {
	OutputDir string // build.output_dir, default "."
}

var homeDirMarker = "" // set via SetHomeForTest in tests; "" disables the stop condition

// SetHomeForTest overrides the home-directory stop condition used by
// Discover. Nothing else sets it, so outside tests the stop condition is
// disabled.
func SetHomeForTest(dir string) { homeDirMarker = dir }

// Discover walks upward from startDir (a directory URI) applying the
// three marker checks in order at each level, stopping at the
// filesystem root or the user's home directory.
func Discover(startDir file.URI, lister DirLister, cfg Config) Root {
	dir := startDir
	for {
		entries := lister.EntriesIn(dir)
		if hasRootMarker(entries) {
			return fromCompileDir(dir)
		}
		if hasTectonicMarker(entries) {
			return tectonicRoot(dir)
		}
		if latexmkrcText, ok := findLatexmkrc(dir, entries, lister); ok {
			if r, ok := parseLatexmkrc(dir, latexmkrcText); ok {
				return r
			}
		}
		parent := parentOf(dir)
		if parent == dir || isHome(dir) {
			break
		}
		dir = parent
	}
	return fallback(startDir, cfg)
}

func hasRootMarker(entries []string) bool {
	for _, e := range entries {
		if e == ".texlabroot" || e == "texlabroot" {
			return true
		}
	}
	return false
}

func hasTectonicMarker(entries []string) bool {
	for _, e := range entries {
		if e == "Tectonic.toml" {
			return true
		}
	}
	return false
}

// tectonicRoot returns the fixed Tectonic project shape described in
// §3: src under dir/src/, build artifacts under dir/build/, with the
// pre/postamble files Tectonic always injects.
func tectonicRoot(dir file.URI) Root {
	src := dir.Join("src/")
	build := dir.Join("build/")
	return Root{
		CompileDir: dir,
		SrcDir:     src,
		AuxDir:     build,
		LogDir:     build,
		PdfDir:     build,
		AdditionalFiles: []file.URI{
			src.Join("_preamble.tex"),
			src.Join("_postamble.tex"),
		},
	}
}

func findLatexmkrc(dir file.URI, entries []string, lister DirLister) (string, bool) {
	for _, e := range entries {
		if e == ".latexmkrc" {
			return lister.Contents(dir.Join(e))
		}
	}
	return "", false
}

var (
	reAssign      = regexp.MustCompile(`\$(out_dir|aux_dir)\s*=\s*["']([^"']+)["']`)
)

// parseLatexmkrc recognizes $out_dir/$aux_dir assignments (§3
// ".latexmkrc: line-based pseudo-Perl"). It does not attempt to
// evaluate the file as Perl; it only pattern-matches the handful of
// assignment shapes latexmk itself documents.
func parseLatexmkrc(dir file.URI, text string) (Root, bool) {
	var outDir, auxDir string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		if m := reAssign.FindStringSubmatch(line); m != nil {
			switch m[1] {
			case "out_dir":
				outDir = m[2]
			case "aux_dir":
				auxDir = m[2]
			}
		}
	}
	if outDir == "" && auxDir == "" {
		return Root{}, false
	}
	if auxDir == "" {
		auxDir = outDir
	}
	if outDir == "" {
		outDir = auxDir
	}
	r := fromCompileDir(dir)
	r.AuxDir = dir.Join(ensureSlash(auxDir))
	r.LogDir = r.AuxDir
	r.PdfDir = dir.Join(ensureSlash(outDir))
	return r, true
}

func ensureSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

func fallback(startDir file.URI, cfg Config) Root {
	out := cfg.OutputDir
	if out == "" {
		out = "."
	}
	dir := startDir.Join(ensureSlash(out))
	r := fromCompileDir(startDir)
	r.AuxDir = dir
	r.LogDir = dir
	r.PdfDir = dir
	return r
}

func parentOf(dir file.URI) file.URI {
	return dir.Join("..")
}

func isHome(dir file.URI) bool {
	if homeDirMarker == "" {
		return false
	}
	p, ok := dir.Path()
	return ok && strings.TrimSuffix(p, "/") == strings.TrimSuffix(homeDirMarker, "/")
}
