package bibtex

import "strings"

type rawKind int

const (
	rawTrivia rawKind = iota
	rawAt
	rawType // letters immediately following '@', in source case (the parser lowercases a copy to dispatch)
	rawWord
	rawInteger
	rawLCurly
	rawRCurly
	rawLParen
	rawRParen
	rawEq
	rawComma
	rawPound
	rawQuote
	rawCommandName
	rawJunk
)

type rawToken struct {
	kind rawKind
	start int
	text string // original-cased source text
}

// lex tokenizes src outside of any entry-aware context; the parser
// reinterprets rawWord/rawInteger/rawJunk depending on structural
// position (e.g. whether we're scanning for an `@` construct or inside
// one), matching how a hand-written recursive-descent BibTeX lexer
// typically defers classification to the parser for context-sensitive
// tokens like "junk" (§4.1).
func lex(src string) []rawToken {
	var toks []rawToken
	i, n := 0, len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			start := i
			for i < n && isSpace(src[i]) {
				i++
			}
			toks = append(toks, rawToken{rawTrivia, start, src[start:i]})
		case c == '@':
			toks = append(toks, rawToken{rawAt, i, src[i : i+1]})
			i++
			start := i
			for i < n && isWordByte(src[i]) {
				i++
			}
			if i > start {
				toks = append(toks, rawToken{rawType, start, src[start:i]})
			}
		case c == '{':
			toks = append(toks, rawToken{rawLCurly, i, "{"})
			i++
		case c == '}':
			toks = append(toks, rawToken{rawRCurly, i, "}"})
			i++
		case c == '(':
			toks = append(toks, rawToken{rawLParen, i, "("})
			i++
		case c == ')':
			toks = append(toks, rawToken{rawRParen, i, ")"})
			i++
		case c == '=':
			toks = append(toks, rawToken{rawEq, i, "="})
			i++
		case c == ',':
			toks = append(toks, rawToken{rawComma, i, ","})
			i++
		case c == '#':
			toks = append(toks, rawToken{rawPound, i, "#"})
			i++
		case c == '"':
			toks = append(toks, rawToken{rawQuote, i, "\""})
			i++
		case c == '\\':
			start := i
			i++
			if i < n && isLetter(src[i]) {
				for i < n && isLetter(src[i]) {
					i++
				}
			} else if i < n {
				i++
			}
			toks = append(toks, rawToken{rawCommandName, start, src[start:i]})
		case isDigit(c):
			start := i
			for i < n && isDigit(src[i]) {
				i++
			}
			toks = append(toks, rawToken{rawInteger, start, src[start:i]})
		default:
			start := i
			for i < n && isWordByte(src[i]) {
				i++
			}
			if i == start {
				i++
			}
			toks = append(toks, rawToken{rawWord, start, src[start:i]})
		}
	}
	return toks
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWordByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '@', '{', '}', '(', ')', '=', ',', '#', '"', '\\':
		return false
	default:
		return true
	}
}

func normalizeType(text string) string {
	return strings.ToLower(text)
}
