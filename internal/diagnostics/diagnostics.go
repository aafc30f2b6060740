// Package diagnostics aggregates the four diagnostic sources named in
// §4.2 ("The error taxonomy has four kinds") into the single filtered
// list published for a document: syntactic errors (already attached to
// file.Document.Diagnostics by the syntax layer), build-log errors,
// external lint errors, and — by construction — I/O/process errors are
// excluded, since those are reported as log notifications, not
// diagnostics.
package diagnostics

import (
	"regexp"

	"texlab.dev/core/internal/buildlog"
	"texlab.dev/core/internal/config"
	"texlab.dev/core/internal/file"
	"texlab.dev/core/internal/line"
)

// Source distinguishes where a Diagnostic originated, for UI grouping
// and for future selective suppression.
type Source int

const (
	SourceSyntax Source = iota
	SourceBuildLog
	SourceLint
)

// Diagnostic augments file.Diagnostic with its origin.
type Diagnostic struct {
	file.Diagnostic
	Source Source
}

// FromBuildLog converts build-log errors attributed to one document
// into Diagnostics, using doc's line index to turn a 0-based line
// number into a byte range spanning that whole line.
func FromBuildLog(doc *file.Document, errs []buildlog.BuildError) []Diagnostic {
	var out []Diagnostic
	for _, e := range errs {
		rng := lineRange(doc, e.Line)
		sev := file.SeverityWarning
		if e.Severity == buildlog.SeverityError {
			sev = file.SeverityError
		}
		out = append(out, Diagnostic{
			Diagnostic: file.Diagnostic{Range: rng, Severity: sev, Code: "build", Message: e.Message},
			Source:     SourceBuildLog,
		})
	}
	return out
}

// LintError is one diagnostic imported from an external linter's
// output (chktex), identified by its own string code (§4.2 "External
// lint errors — imported from chktex output (string code)").
type LintError struct {
	Line    int
	Message string
	Code    string
}

// FromLint converts chktex-style results into Diagnostics.
func FromLint(doc *file.Document, errs []LintError) []Diagnostic {
	var out []Diagnostic
	for _, e := range errs {
		out = append(out, Diagnostic{
			Diagnostic: file.Diagnostic{
				Range:    lineRange(doc, e.Line),
				Severity: file.SeverityWarning,
				Code:     e.Code,
				Message:  e.Message,
			},
			Source: SourceLint,
		})
	}
	return out
}

func lineRange(doc *file.Document, lineNo int) file.Range {
	if doc.Index == nil || lineNo < 0 || lineNo >= doc.Index.LineCount() {
		return file.Range{}
	}
	start, err := doc.Index.ToOffset(line.Position{Line: lineNo, Character: 0})
	if err != nil {
		return file.Range{}
	}
	end := len(doc.Text)
	if endPos, err := doc.Index.ToOffset(line.Position{Line: lineNo + 1, Character: 0}); err == nil {
		end = endPos
	}
	return file.Range{Start: start, End: end}
}

// Filter applies the configured allowed/ignored regex lists to a
// combined diagnostic set: when allowedPatterns is non-empty, only
// diagnostics whose Message matches at least one pattern survive;
// diagnostics matching any ignoredPatterns entry are always dropped,
// even if also allowed.
func Filter(diags []Diagnostic, opts config.DiagnosticsOptions) ([]Diagnostic, error) {
	allowed, err := compileAll(opts.AllowedPatterns)
	if err != nil {
		return nil, err
	}
	ignored, err := compileAll(opts.IgnoredPatterns)
	if err != nil {
		return nil, err
	}

	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if matchesAny(ignored, d.Message) {
			continue
		}
		if len(allowed) > 0 && !matchesAny(allowed, d.Message) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
