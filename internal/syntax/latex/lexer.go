package latex

import "strings"

type rawKind int

const (
	rawTrivia rawKind = iota // whitespace, line breaks and %-comments, always trailing
	rawCommandName
	rawWord
	rawLCurly
	rawRCurly
	rawLBrack
	rawRBrack
	rawDollar
	rawDollarDollar
	rawAmp
	rawComma
	rawMathShiftOpen  // \[
	rawMathShiftClose // \]
)

type rawToken struct {
	kind  rawKind
	start int
	text  string
}

// lex tokenizes src into a flat stream of raw tokens. Every byte of src
// is covered: trivia runs (whitespace, line breaks, %-comments) are
// emitted as rawTrivia tokens interleaved with significant tokens, and
// the parser later folds each trivia run into the TrailingTrivia of the
// token that precedes it (§4.1 "Comments and whitespace are always
// attached to the preceding token as trailing trivia, never dropped").
func lex(src string) []rawToken {
	var toks []rawToken
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			start := i
			for i < n && isTriviaByte(src[i]) {
				i++
			}
			toks = append(toks, rawToken{rawTrivia, start, src[start:i]})
		case c == '%':
			start := i
			for i < n && src[i] != '\n' {
				i++
			}
			// include the terminating newline in the trivia run, if present
			if i < n && src[i] == '\n' {
				i++
			}
			toks = append(toks, rawToken{rawTrivia, start, src[start:i]})
		case c == '\\':
			start := i
			i++
			if i < n && isLetter(src[i]) {
				for i < n && isLetter(src[i]) {
					i++
				}
				if i < n && src[i] == '*' {
					i++
				}
				name := src[start:i]
				toks = append(toks, rawToken{rawCommandName, start, name})
			} else if i < n {
				// control symbol: backslash followed by exactly one
				// non-letter byte, e.g. \\, \%, \$, \[, \].
				sym := src[start:i+1]
				i++
				switch sym {
				case `\[`:
					toks = append(toks, rawToken{rawMathShiftOpen, start, sym})
				case `\]`:
					toks = append(toks, rawToken{rawMathShiftClose, start, sym})
				default:
					toks = append(toks, rawToken{rawCommandName, start, sym})
				}
			} else {
				toks = append(toks, rawToken{rawCommandName, start, src[start:i]})
			}
		case c == '{':
			toks = append(toks, rawToken{rawLCurly, i, src[i : i+1]})
			i++
		case c == '}':
			toks = append(toks, rawToken{rawRCurly, i, src[i : i+1]})
			i++
		case c == '[':
			toks = append(toks, rawToken{rawLBrack, i, src[i : i+1]})
			i++
		case c == ']':
			toks = append(toks, rawToken{rawRBrack, i, src[i : i+1]})
			i++
		case c == '$':
			start := i
			i++
			if i < n && src[i] == '$' {
				i++
				toks = append(toks, rawToken{rawDollarDollar, start, src[start:i]})
			} else {
				toks = append(toks, rawToken{rawDollar, start, src[start:i]})
			}
		case c == '&':
			toks = append(toks, rawToken{rawAmp, i, src[i : i+1]})
			i++
		case c == ',':
			toks = append(toks, rawToken{rawComma, i, src[i : i+1]})
			i++
		default:
			start := i
			for i < n && !isSpecial(src[i]) {
				i++
			}
			if i == start {
				// Stray byte matching none of the above and not a word
				// start (shouldn't normally happen for ASCII-special
				// bytes already handled); consume one byte as a word to
				// guarantee forward progress.
				i++
			}
			toks = append(toks, rawToken{rawWord, start, src[start:i]})
		}
	}
	return toks
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isTriviaByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isSpecial(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '%', '\\', '{', '}', '[', ']', '$', '&', ',':
		return true
	default:
		return false
	}
}

// commandBaseName strips the trailing "*" from a command name token's
// text, e.g. "\section*" -> "\section".
func commandBaseName(text string) string {
	return strings.TrimSuffix(text, "*")
}
