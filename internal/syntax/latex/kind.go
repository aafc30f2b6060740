package latex

import "texlab.dev/core/internal/cst"

// Token kinds. Trivia (whitespace, line breaks, comments) is folded into
// the TrailingTrivia of the preceding significant token by the
// lexer/parser (§4.1); only trivia at the very start of the input, which
// has no preceding token, becomes a standalone TokTrivia element.
const (
	TokCommandName cst.Kind = iota + 1
	TokWord
	TokLCurly
	TokRCurly
	TokLBrack
	TokRBrack
	TokDollar
	TokDollarDollar
	TokAmp
	TokComma
	TokMathShift // \[ or \]
	TokVerbatim  // uninterpreted body of a verbatim environment
	TokTrivia    // leading whitespace/comments with no preceding token to attach to
)

// Node kinds. The grammar is deliberately structural: Command and
// Environment nodes carry their name as their first child token, and the
// *classification* of a command (section? label-definition? citation?)
// is derived by the semantic layer from the command-taxonomy table
// (§4.1 "its classification... is derived from the command name
// table"), not baked into a proliferation of per-command node kinds.
// This keeps the syntax alphabet closed and small while still letting
// semantic/latex assign every meaning spec.md §4.1 lists.
const (
	NodeRoot cst.Kind = iota + 100
	NodeCurlyGroup
	NodeBrackGroup
	NodeMixedGroup
	NodeCommand
	NodeEnvironment
	NodeBegin
	NodeEnd
	NodeFormula
	NodeKeyList // comma-separated identifier list; the parser does not produce it (\cite{a,b} bodies are NodeCurlyGroup)
	NodeText
)

// IsTrivia reports whether b is a byte that the lexer treats as part of
// inter-token trivia (used only for documentation; the lexer itself
// tracks this inline for speed).
func IsTrivia(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
