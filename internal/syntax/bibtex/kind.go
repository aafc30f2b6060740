package bibtex

import "texlab.dev/core/internal/cst"

// Token kinds (§4.1).
const (
	TokType cst.Kind = iota + 1 // type keyword following the '@' (TokAt), in source case
	TokWord
	TokInteger
	TokLCurly
	TokRCurly
	TokLParen
	TokRParen
	TokEq
	TokComma
	TokPound
	TokQuote
	TokCommandName
	TokAccentName
	TokJunk
	TokAt
)

// Node kinds (§4.1).
const (
	NodeRoot cst.Kind = iota + 100
	NodePreamble
	NodeStringDef
	NodeEntry
	NodeField
	NodeLiteral
	NodeCurlyGroup
	NodeQuoteGroup
	NodeJoin
	NodeAccent
	NodeCommand
	NodeComment
)
