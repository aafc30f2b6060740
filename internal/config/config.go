// Package config defines the server's Options schema (§6 "Options") and
// decodes it from either YAML (via gopkg.in/yaml.v3, for the on-disk
// config file) or the generic map[string]any the LSP client sends in a
// workspace/didChangeConfiguration notification.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Options is the full, flattened server configuration. Every field has
// the default listed in §6 when absent from both the YAML file and the
// client-sent configuration.
type Options struct {
	RootDirectory *string `yaml:"rootDirectory"`
	AuxDirectory  string  `yaml:"auxDirectory"`

	BibtexFormatter Formatter `yaml:"bibtexFormatter"`
	LatexFormatter  Formatter `yaml:"latexFormatter"`

	FormatterLineLength int `yaml:"formatterLineLength"`

	Diagnostics DiagnosticsOptions `yaml:"diagnostics"`
	DiagnosticsDelayMS int          `yaml:"diagnosticsDelay"`

	Build   BuildOptions   `yaml:"build"`
	Chktex  ChktexOptions  `yaml:"chktex"`
	Symbols SymbolsOptions `yaml:"symbols"`

	Latexindent  LatexindentOptions  `yaml:"latexindent"`
	ForwardSearch ForwardSearchOptions `yaml:"forwardSearch"`
}

// Formatter is a closed enumeration; decoding an unrecognized string is
// an error rather than silently falling back, per §6's "closed
// enumeration" requirement.
type Formatter string

const (
	FormatterTexlab     Formatter = "texlab"
	FormatterLatexindent Formatter = "latexindent"
)

func (f Formatter) valid() bool {
	return f == FormatterTexlab || f == FormatterLatexindent
}

type DiagnosticsOptions struct {
	AllowedPatterns  []string `yaml:"allowedPatterns"`
	IgnoredPatterns  []string `yaml:"ignoredPatterns"`
}

type BuildOptions struct {
	Executable         string   `yaml:"executable"`
	Args               []string `yaml:"args"`
	OnSave             bool     `yaml:"onSave"`
	ForwardSearchAfter bool     `yaml:"forwardSearchAfter"`
	OutputDir          string   `yaml:"outputDir"`
}

type ChktexOptions struct {
	OnOpenAndSave bool `yaml:"onOpenAndSave"`
	OnEdit        bool `yaml:"onEdit"`
}

type SymbolsOptions struct {
	AllowedPatterns []string `yaml:"allowedPatterns"`
	IgnoredPatterns []string `yaml:"ignoredPatterns"`
}

type LatexindentOptions struct {
	Local             *string `yaml:"local"`
	ModifyLineBreaks  bool    `yaml:"modifyLineBreaks"`
}

type ForwardSearchOptions struct {
	Executable string   `yaml:"executable"`
	Args       []string `yaml:"args"`
}

// Default returns the Options populated with every default named in §6.
func Default() *Options {
	return &Options{
		AuxDirectory:        ".",
		BibtexFormatter:     FormatterTexlab,
		LatexFormatter:      FormatterLatexindent,
		FormatterLineLength: 80,
		DiagnosticsDelayMS:  300,
		Build: BuildOptions{
			Executable: "latexmk",
			Args:       []string{"-pdf", "-interaction=nonstopmode", "-synctex=1", "%f"},
			OutputDir:  ".",
		},
	}
}

// DecodeYAML parses raw as a YAML config file, starting from Default()
// so unset fields keep their documented default, and validating closed
// enumerations.
func DecodeYAML(raw []byte) (*Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(raw, opts); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// ApplyJSON merges a client-sent workspace/didChangeConfiguration
// payload (already decoded into a generic map by the caller's JSON-RPC
// layer) on top of the current Options, field by field, leaving any key
// the client omitted untouched.
func (o *Options) ApplyJSON(m map[string]any) error {
	if v, ok := m["rootDirectory"].(string); ok {
		o.RootDirectory = &v
	}
	if v, ok := m["auxDirectory"].(string); ok {
		o.AuxDirectory = v
	}
	if v, ok := m["bibtexFormatter"].(string); ok {
		o.BibtexFormatter = Formatter(v)
	}
	if v, ok := m["latexFormatter"].(string); ok {
		o.LatexFormatter = Formatter(v)
	}
	if v, ok := m["formatterLineLength"].(float64); ok {
		o.FormatterLineLength = int(v)
	}
	if v, ok := m["diagnosticsDelay"].(float64); ok {
		o.DiagnosticsDelayMS = int(v)
	}
	if sub, ok := m["diagnostics"].(map[string]any); ok {
		if v := stringSlice(sub["allowedPatterns"]); v != nil {
			o.Diagnostics.AllowedPatterns = v
		}
		if v := stringSlice(sub["ignoredPatterns"]); v != nil {
			o.Diagnostics.IgnoredPatterns = v
		}
	}
	if sub, ok := m["build"].(map[string]any); ok {
		applyBuild(&o.Build, sub)
	}
	if sub, ok := m["chktex"].(map[string]any); ok {
		if v, ok := sub["onOpenAndSave"].(bool); ok {
			o.Chktex.OnOpenAndSave = v
		}
		if v, ok := sub["onEdit"].(bool); ok {
			o.Chktex.OnEdit = v
		}
	}
	if sub, ok := m["symbols"].(map[string]any); ok {
		if v := stringSlice(sub["allowedPatterns"]); v != nil {
			o.Symbols.AllowedPatterns = v
		}
		if v := stringSlice(sub["ignoredPatterns"]); v != nil {
			o.Symbols.IgnoredPatterns = v
		}
	}
	if sub, ok := m["latexindent"].(map[string]any); ok {
		if v, ok := sub["local"].(string); ok {
			o.Latexindent.Local = &v
		}
		if v, ok := sub["modifyLineBreaks"].(bool); ok {
			o.Latexindent.ModifyLineBreaks = v
		}
	}
	if sub, ok := m["forwardSearch"].(map[string]any); ok {
		if v, ok := sub["executable"].(string); ok {
			o.ForwardSearch.Executable = v
		}
		if args := stringSlice(sub["args"]); args != nil {
			o.ForwardSearch.Args = args
		}
	}
	return o.validate()
}

func applyBuild(b *BuildOptions, sub map[string]any) {
	if v, ok := sub["executable"].(string); ok {
		b.Executable = v
	}
	if args := stringSlice(sub["args"]); args != nil {
		b.Args = args
	}
	if v, ok := sub["onSave"].(bool); ok {
		b.OnSave = v
	}
	if v, ok := sub["forwardSearchAfter"].(bool); ok {
		b.ForwardSearchAfter = v
	}
	if v, ok := sub["outputDir"].(string); ok {
		b.OutputDir = v
	}
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (o *Options) validate() error {
	if !o.BibtexFormatter.valid() {
		return fmt.Errorf("config: unrecognized bibtexFormatter %q", o.BibtexFormatter)
	}
	if !o.LatexFormatter.valid() {
		return fmt.Errorf("config: unrecognized latexFormatter %q", o.LatexFormatter)
	}
	return nil
}
