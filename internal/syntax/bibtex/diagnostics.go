package bibtex

import "texlab.dev/core/internal/file"

// Diagnostic codes, per spec.md §7.
const (
	CodeExpectingLCurly    = "ExpectingLCurly"
	CodeExpectingKey       = "ExpectingKey"
	CodeExpectingRCurly    = "ExpectingRCurly"
	CodeExpectingEq        = "ExpectingEq"
	CodeExpectingFieldValue = "ExpectingFieldValue"
)

func newDiagnostic(code string, start, end int) file.Diagnostic {
	msg := map[string]string{
		CodeExpectingLCurly:     "expecting `{` or `(`",
		CodeExpectingKey:        "expecting a key",
		CodeExpectingRCurly:     "expecting `}` or `)`",
		CodeExpectingEq:         "expecting `=`",
		CodeExpectingFieldValue: "expecting a field value",
	}[code]
	return file.Diagnostic{
		Range:    file.Range{Start: start, End: end},
		Severity: file.SeverityError,
		Code:     code,
		Message:  msg,
	}
}
