package root

import (
	"testing"

	"github.com/stretchr/testify/require"

	"texlab.dev/core/internal/file"
)

type fakeLister struct {
	entries map[file.URI][]string
	files   map[file.URI]string
}

func (f *fakeLister) EntriesIn(dir file.URI) []string { return f.entries[dir] }
func (f *fakeLister) Contents(uri file.URI) (string, bool) {
	s, ok := f.files[uri]
	return s, ok
}

func TestDiscoverRootFileMarker(t *testing.T) {
	SetHomeForTest("")
	proj := file.Normalize("file:///home/user/proj/")
	lister := &fakeLister{entries: map[file.URI][]string{
		proj: {"main.tex", ".texlabroot"},
	}}
	r := Discover(proj, lister, Config{})
	require.Equal(t, proj, r.CompileDir)
	require.Equal(t, proj, r.SrcDir)
}

func TestDiscoverTectonicMarker(t *testing.T) {
	SetHomeForTest("")
	proj := file.Normalize("file:///home/user/proj/")
	lister := &fakeLister{entries: map[file.URI][]string{
		proj: {"Tectonic.toml"},
	}}
	r := Discover(proj, lister, Config{})
	require.Equal(t, proj.Join("src/"), r.SrcDir)
	require.Equal(t, proj.Join("build/"), r.AuxDir)
	require.Len(t, r.AdditionalFiles, 2)
}

func TestDiscoverLatexmkrc(t *testing.T) {
	SetHomeForTest("")
	proj := file.Normalize("file:///home/user/proj/")
	rcFile := proj.Join(".latexmkrc")
	lister := &fakeLister{
		entries: map[file.URI][]string{proj: {".latexmkrc"}},
		files: map[file.URI]string{
			rcFile: "$out_dir = 'build';\n$aux_dir = 'build';\n",
		},
	}
	r := Discover(proj, lister, Config{})
	require.Equal(t, proj.Join("build/"), r.AuxDir)
	require.Equal(t, proj.Join("build/"), r.PdfDir)
}

func TestDiscoverWalksUpward(t *testing.T) {
	SetHomeForTest("")
	child := file.URI("file:///home/user/proj/chapters/")
	parent := file.URI("file:///home/user/proj/")
	lister := &fakeLister{entries: map[file.URI][]string{
		child:  {"intro.tex"},
		parent: {".texlabroot"},
	}}
	r := Discover(child, lister, Config{})
	require.Equal(t, parent, r.CompileDir)
}

func TestDiscoverFallback(t *testing.T) {
	SetHomeForTest("/home/user")
	dir := file.Normalize("file:///home/user/proj/")
	lister := &fakeLister{entries: map[file.URI][]string{dir: {"main.tex"}}}
	r := Discover(dir, lister, Config{OutputDir: "out"})
	require.Equal(t, dir, r.CompileDir)
	require.Equal(t, dir.Join("out/"), r.AuxDir)
}
