package latex

import "texlab.dev/core/internal/file"

// Diagnostic codes, per spec.md §7.
const (
	CodeUnexpectedRCurly   = "UnexpectedRCurly"
	CodeRCurlyInserted     = "RCurlyInserted"
	CodeMismatchedEnvironment = "MismatchedEnvironment"
)

func newDiagnostic(code string, start, end int) file.Diagnostic {
	msg := map[string]string{
		CodeUnexpectedRCurly:      "unexpected `}`",
		CodeRCurlyInserted:        "missing closing `}`",
		CodeMismatchedEnvironment: "mismatched \\begin/\\end environment",
	}[code]
	return file.Diagnostic{
		Range:    file.Range{Start: start, End: end},
		Severity: file.SeverityWarning,
		Code:     code,
		Message:  msg,
	}
}
