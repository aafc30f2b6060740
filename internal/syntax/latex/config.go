package latex

// Config customises LaTeX parsing per §4.1: which environment names are
// treated as math/enumerate/verbatim, and which command names are
// citation commands (extensible on top of the built-in taxonomy; see
// internal/taxonomy for the 70 built-in command classifications).
type Config struct {
	MathEnvironments     map[string]bool
	EnumEnvironments      map[string]bool
	VerbatimEnvironments map[string]bool
	CitationCommands     map[string]bool
}

// DefaultConfig returns the built-in environment/command classification
// used when no project-level override is supplied.
func DefaultConfig() *Config {
	return &Config{
		MathEnvironments: set(
			"equation", "equation*", "align", "align*", "gather", "gather*",
			"multline", "multline*", "flalign", "flalign*", "alignat", "alignat*",
			"math", "displaymath", "eqnarray", "eqnarray*",
		),
		EnumEnvironments: set(
			"itemize", "enumerate", "description",
		),
		VerbatimEnvironments: set(
			"verbatim", "verbatim*", "Verbatim", "lstlisting", "minted", "comment",
		),
		CitationCommands: set(
			"cite", "citep", "citet", "citeauthor", "citeyear", "nocite", "parencite", "textcite",
		),
	}
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
