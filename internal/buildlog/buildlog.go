// Package buildlog parses the text output of a LaTeX compiler into a
// sequence of structured BuildError values, attributing each to the
// source document active at that point in the file-stack (§4.1
// "Build-log parsing").
//
// Per SPEC_FULL.md §3, raw bytes are first pushed through a
// golang.org/x/text/encoding/transform pipeline that decodes them as
// UTF-8, replacing invalid byte sequences with U+FFFD instead of failing
// (§6, build-log encoding).
package buildlog

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Severity mirrors file.Severity without importing the file package, so
// buildlog stays usable from contexts (e.g. the forward-search
// collaborator contract) that don't need the full Document type.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// BuildError is one diagnostic extracted from a build log.
type BuildError struct {
	RelativePath string // path as it appeared in the log's file-stack, "" for root
	Line         int    // 0-based; 0 when the log gave no line number
	Severity     Severity
	Message      string
}

var (
	reFatal      = regexp.MustCompile(`^! (.+)$`)
	reLineNo     = regexp.MustCompile(`^l\.(\d+)`)
	reWarning    = regexp.MustCompile(`^LaTeX Warning: (.+)$`)
	reBadBox     = regexp.MustCompile(`^(Over|Under)full \\[hv]box (.+)$`)
	reFileOpen   = regexp.MustCompile(`\(([^()\s][^()]*)`)
)

// Decode normalizes raw build-log bytes to a UTF-8 string, replacing
// any invalid UTF-8 sequence with U+FFFD rather than failing (and
// returning raw unchanged if the transform itself errors), so a build
// log in an unexpected encoding still yields partial diagnostics.
func Decode(raw []byte) string {
	decoder := unicode.UTF8.NewDecoder()
	decoder.Transformer = encoding.ReplaceUnsupported(decoder.Transformer)
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// Parse scans log text for the families described in §4.1: fatal "!"
// errors, "LaTeX Warning:" warnings, under/overfull box warnings, and
// file-stack push/pop markers ("(filename" / ")"), tracking which source
// file is "current" so each error is attributed correctly.
func Parse(log string) []BuildError {
	var errs []BuildError
	stack := []string{""} // "" denotes the root document

	lines := strings.Split(log, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trackFileStack(&stack, line)

		if m := reFatal.FindStringSubmatch(line); m != nil {
			lineNo := 0
			for j := i + 1; j < len(lines) && j < i+6; j++ {
				if lm := reLineNo.FindStringSubmatch(lines[j]); lm != nil {
					lineNo, _ = strconv.Atoi(lm[1])
					break
				}
			}
			errs = append(errs, BuildError{
				RelativePath: current(stack),
				Line:         max0(lineNo - 1),
				Severity:     SeverityError,
				Message:      m[1],
			})
			continue
		}
		if m := reWarning.FindStringSubmatch(line); m != nil {
			errs = append(errs, BuildError{
				RelativePath: current(stack),
				Line:         extractLineHint(m[1]),
				Severity:     SeverityWarning,
				Message:      m[1],
			})
			continue
		}
		if m := reBadBox.FindStringSubmatch(line); m != nil {
			errs = append(errs, BuildError{
				RelativePath: current(stack),
				Line:         extractLineHint(line),
				Severity:     SeverityWarning,
				Message:      m[1] + "full box " + m[2],
			})
			continue
		}
	}
	return errs
}

// ParseReader is a convenience wrapper over Parse for callers streaming
// a build log line by line over a channel; it joins the lines and parses
// them once the channel is closed.
func ParseReader(lines <-chan string) []BuildError {
	var sb strings.Builder
	for l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return Parse(sb.String())
}

var reLineHint = regexp.MustCompile(`lines? (\d+)`)

func extractLineHint(msg string) int {
	if m := reLineHint.FindStringSubmatch(msg); m != nil {
		n, _ := strconv.Atoi(m[1])
		return max0(n - 1)
	}
	return 0
}

// trackFileStack updates stack in place for every balanced "(name" push
// and ")" pop on line, mirroring how latexmk/pdftex interleave file-stack
// notifications with diagnostic text on the same or adjacent lines.
func trackFileStack(stack *[]string, line string) {
	i := 0
	for i < len(line) {
		switch line[i] {
		case '(':
			rest := line[i:]
			if m := reFileOpen.FindStringSubmatch(rest); m != nil {
				name := strings.Fields(m[1])
				if len(name) > 0 {
					*stack = append(*stack, strings.TrimPrefix(name[0], "./"))
				} else {
					*stack = append(*stack, "")
				}
				i += len(m[0])
				continue
			}
			i++
		case ')':
			if len(*stack) > 1 {
				*stack = (*stack)[:len(*stack)-1]
			}
			i++
		default:
			i++
		}
	}
}

func current(stack []string) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != "" {
			return stack[i]
		}
	}
	return ""
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// scannerLines is a small helper retained for callers that already hold
// a *bufio.Scanner over a process's stdout (§5 "stdout/stderr captured
// on dedicated reader threads that forward each line").
func scannerLines(sc *bufio.Scanner) []string {
	var out []string
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out
}
