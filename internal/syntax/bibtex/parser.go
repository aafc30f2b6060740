// Package bibtex implements the lossless, error-recovering BibTeX parser
// (§4.1), mirroring the shape of internal/syntax/latex: recursive
// descent over a peekable raw-token cursor producing a cst.Node tree
// that covers every byte of input.
package bibtex

import (
	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
)

const eofMarker rawKind = -1

type parser struct {
	toks  []rawToken
	pos   int
	diags []file.Diagnostic
}

// Parse tokenizes and parses src.
func Parse(src string) (*cst.Node, []file.Diagnostic) {
	p := &parser{toks: lex(src)}
	return p.parseRoot(), p.diags
}

// -- cursor helpers (identical shape to the LaTeX parser) --

func (p *parser) peekRaw(n int) (rawToken, bool) {
	idx := p.pos
	count := 0
	for idx < len(p.toks) {
		if p.toks[idx].kind == rawTrivia {
			idx++
			continue
		}
		if count == n {
			return p.toks[idx], true
		}
		count++
		idx++
	}
	return rawToken{}, false
}

func (p *parser) peekKind(n int) rawKind {
	t, ok := p.peekRaw(n)
	if !ok {
		return eofMarker
	}
	return t.kind
}

func (p *parser) bump() rawToken {
	for p.pos < len(p.toks) && p.toks[p.pos].kind == rawTrivia {
		p.pos++
	}
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) consumeTrivia() string {
	start := p.pos
	for p.pos < len(p.toks) && p.toks[p.pos].kind == rawTrivia {
		p.pos++
	}
	var out string
	for _, t := range p.toks[start:p.pos] {
		out += t.text
	}
	return out
}

func (p *parser) bumpToken(kind cst.Kind) cst.Token {
	raw := p.bump()
	trivia := p.consumeTrivia()
	return cst.NewToken(kind, raw.start, raw.text, trivia)
}

func (p *parser) offsetNow() int {
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].kind != rawTrivia {
			return p.toks[i].start
		}
	}
	if len(p.toks) == 0 {
		return 0
	}
	last := p.toks[len(p.toks)-1]
	return last.start + len(last.text)
}

func (p *parser) syntheticToken(kind cst.Kind) cst.Token {
	return cst.NewToken(kind, p.offsetNow(), "", "")
}

func (p *parser) diag(code string, start, end int) {
	p.diags = append(p.diags, newDiagnostic(code, start, end))
}

// -- grammar --

func (p *parser) parseRoot() *cst.Node {
	var children []cst.Element
	if leading := p.consumeTrivia(); leading != "" {
		children = append(children, cst.NewToken(TokJunk, 0, "", leading))
	}
	for p.peekKind(0) != eofMarker {
		if p.peekKind(0) == rawAt {
			children = append(children, p.parseAtConstruct())
		} else {
			raw, _ := p.peekRaw(0)
			children = append(children, p.bumpToken(genericTokKind(raw.kind)))
		}
	}
	return cst.NewNode(NodeRoot, children)
}

func (p *parser) parseAtConstruct() cst.Element {
	atTok := p.bumpToken(TokAt)
	typeRaw, ok := p.peekRaw(0)
	if !ok {
		return cst.NewNode(NodeEntry, []cst.Element{atTok})
	}
	typeTok := p.bumpToken(TokType)
	typeName := normalizeType(typeRaw.text)

	switch typeName {
	case "preamble":
		return p.parsePreamble(atTok, typeTok)
	case "string":
		return p.parseStringDef(atTok, typeTok)
	case "comment":
		return p.parseCommentConstruct(atTok, typeTok)
	default:
		return p.parseEntryBody(atTok, typeTok)
	}
}

func (p *parser) expectOpenDelim() (cst.Element, rawKind, bool) {
	switch p.peekKind(0) {
	case rawLCurly:
		return p.bumpToken(TokLCurly), rawLCurly, true
	case rawLParen:
		return p.bumpToken(TokLParen), rawLParen, true
	default:
		p.diag(CodeExpectingLCurly, p.offsetNow(), p.offsetNow())
		return p.syntheticToken(TokLCurly), rawLCurly, false
	}
}

func (p *parser) closeKindFor(openKind rawKind) (rawKind, cst.Kind) {
	if openKind == rawLParen {
		return rawRParen, TokRParen
	}
	return rawRCurly, TokRCurly
}

func (p *parser) expectCloseDelim(openKind rawKind) cst.Element {
	want, wantTokKind := p.closeKindFor(openKind)
	if p.peekKind(0) == want {
		return p.bumpToken(wantTokKind)
	}
	p.diag(CodeExpectingRCurly, p.offsetNow(), p.offsetNow())
	return p.syntheticToken(wantTokKind)
}

func (p *parser) parsePreamble(atTok, typeTok cst.Element) *cst.Node {
	children := []cst.Element{atTok, typeTok}
	open, openKind, _ := p.expectOpenDelim()
	children = append(children, open)
	if v := p.parseValueChain(); v != nil {
		children = append(children, v)
	} else {
		p.diag(CodeExpectingFieldValue, p.offsetNow(), p.offsetNow())
	}
	children = append(children, p.expectCloseDelim(openKind))
	return cst.NewNode(NodePreamble, children)
}

func (p *parser) parseCommentConstruct(atTok, typeTok cst.Element) *cst.Node {
	children := []cst.Element{atTok, typeTok}
	open, openKind, _ := p.expectOpenDelim()
	children = append(children, open)
	if v := p.parseValueChain(); v != nil {
		children = append(children, v)
	}
	children = append(children, p.expectCloseDelim(openKind))
	return cst.NewNode(NodeComment, children)
}

func (p *parser) parseStringDef(atTok, typeTok cst.Element) *cst.Node {
	children := []cst.Element{atTok, typeTok}
	open, openKind, _ := p.expectOpenDelim()
	children = append(children, open)
	if p.peekKind(0) == rawWord {
		children = append(children, p.bumpToken(TokWord))
	} else {
		p.diag(CodeExpectingKey, p.offsetNow(), p.offsetNow())
	}
	if p.peekKind(0) == rawEq {
		children = append(children, p.bumpToken(TokEq))
	} else {
		p.diag(CodeExpectingEq, p.offsetNow(), p.offsetNow())
	}
	if v := p.parseValueChain(); v != nil {
		children = append(children, v)
	} else {
		p.diag(CodeExpectingFieldValue, p.offsetNow(), p.offsetNow())
	}
	children = append(children, p.expectCloseDelim(openKind))
	return cst.NewNode(NodeStringDef, children)
}

func (p *parser) parseEntryBody(atTok, typeTok cst.Element) *cst.Node {
	children := []cst.Element{atTok, typeTok}
	open, openKind, _ := p.expectOpenDelim()
	children = append(children, open)
	closeRaw, _ := p.closeKindFor(openKind)

	if p.peekKind(0) == rawWord || p.peekKind(0) == rawInteger {
		raw, _ := p.peekRaw(0)
		children = append(children, p.bumpToken(genericTokKind(raw.kind)))
	} else {
		p.diag(CodeExpectingKey, p.offsetNow(), p.offsetNow())
	}

	for {
		k := p.peekKind(0)
		if k == closeRaw || k == eofMarker {
			break
		}
		if k != rawComma {
			break
		}
		children = append(children, p.bumpToken(TokComma))
		if p.peekKind(0) == closeRaw || p.peekKind(0) == eofMarker {
			break
		}
		field := p.parseField()
		if field == nil {
			break
		}
		children = append(children, field)
	}
	children = append(children, p.expectCloseDelim(openKind))
	return cst.NewNode(NodeEntry, children)
}

func (p *parser) parseField() *cst.Node {
	if p.peekKind(0) != rawWord {
		p.diag(CodeExpectingKey, p.offsetNow(), p.offsetNow())
		return nil
	}
	nameTok := p.bumpToken(TokWord)
	children := []cst.Element{nameTok}
	if p.peekKind(0) == rawEq {
		children = append(children, p.bumpToken(TokEq))
	} else {
		p.diag(CodeExpectingEq, p.offsetNow(), p.offsetNow())
	}
	if v := p.parseValueChain(); v != nil {
		children = append(children, v)
	} else {
		p.diag(CodeExpectingFieldValue, p.offsetNow(), p.offsetNow())
	}
	return cst.NewNode(NodeField, children)
}

func (p *parser) parseValueChain() cst.Element {
	v := p.parseValue()
	if v == nil {
		return nil
	}
	children := []cst.Element{v}
	joined := false
	for p.peekKind(0) == rawPound {
		joined = true
		children = append(children, p.bumpToken(TokPound))
		next := p.parseValue()
		if next == nil {
			break
		}
		children = append(children, next)
	}
	if !joined {
		return v
	}
	return cst.NewNode(NodeJoin, children)
}

func (p *parser) parseValue() cst.Element {
	switch p.peekKind(0) {
	case rawLCurly:
		return p.parseCurlyGroupValue()
	case rawQuote:
		return p.parseQuoteGroupValue()
	case rawWord, rawInteger:
		raw, _ := p.peekRaw(0)
		tok := p.bumpToken(genericTokKind(raw.kind))
		return cst.NewNode(NodeLiteral, []cst.Element{tok})
	default:
		return nil
	}
}

func (p *parser) parseCurlyGroupValue() *cst.Node {
	open := p.bumpToken(TokLCurly)
	children := []cst.Element{open}
	children = append(children, p.parseGroupContent(rawRCurly)...)
	if p.peekKind(0) == rawRCurly {
		children = append(children, p.bumpToken(TokRCurly))
	} else {
		p.diag(CodeExpectingRCurly, p.offsetNow(), p.offsetNow())
		children = append(children, p.syntheticToken(TokRCurly))
	}
	return cst.NewNode(NodeCurlyGroup, children)
}

func (p *parser) parseQuoteGroupValue() *cst.Node {
	open := p.bumpToken(TokQuote)
	children := []cst.Element{open}
	children = append(children, p.parseGroupContent(rawQuote)...)
	if p.peekKind(0) == rawQuote {
		children = append(children, p.bumpToken(TokQuote))
	} else {
		children = append(children, p.syntheticToken(TokQuote))
	}
	return cst.NewNode(NodeQuoteGroup, children)
}

// parseGroupContent parses the free-text body of a curly/quote group:
// nested balanced {..} groups, backslash command/accent sequences, and
// maximal literal runs, stopping before a raw token of kind closeKind
// (which the caller consumes) or at EOF.
func (p *parser) parseGroupContent(closeKind rawKind) []cst.Element {
	var out []cst.Element
	for {
		k := p.peekKind(0)
		if k == eofMarker || k == closeKind {
			return out
		}
		switch k {
		case rawLCurly:
			out = append(out, p.parseCurlyGroupValue())
		case rawCommandName:
			out = append(out, p.parseCommandOrAccent())
		default:
			out = append(out, p.parseLiteralRun(closeKind))
		}
	}
}

func (p *parser) parseLiteralRun(closeKind rawKind) *cst.Node {
	var toks []cst.Element
	for {
		k := p.peekKind(0)
		if k == eofMarker || k == closeKind || k == rawLCurly || k == rawCommandName {
			break
		}
		raw, _ := p.peekRaw(0)
		toks = append(toks, p.bumpToken(genericTokKind(raw.kind)))
	}
	return cst.NewNode(NodeLiteral, toks)
}

// accentPrefixes is the closed set of standard BibTeX/LaTeX accent
// command characters, e.g. \'e, \"o, \^i.
var accentPrefixes = map[byte]bool{
	'\'': true, '`': true, '^': true, '"': true, '~': true, '=': true, '.': true,
}

func (p *parser) parseCommandOrAccent() *cst.Node {
	raw := p.bump()
	trivia := p.consumeTrivia()
	isAccent := len(raw.text) == 2 && accentPrefixes[raw.text[1]]
	kind := TokCommandName
	nodeKind := NodeCommand
	if isAccent {
		kind = TokAccentName
		nodeKind = NodeAccent
	}
	nameTok := cst.NewToken(kind, raw.start, raw.text, trivia)
	children := []cst.Element{nameTok}
	switch p.peekKind(0) {
	case rawLCurly:
		children = append(children, p.parseCurlyGroupValue())
	case rawWord:
		raw2, _ := p.peekRaw(0)
		children = append(children, p.bumpToken(genericTokKind(raw2.kind)))
	}
	return cst.NewNode(nodeKind, children)
}

func genericTokKind(rk rawKind) cst.Kind {
	switch rk {
	case rawWord:
		return TokWord
	case rawInteger:
		return TokInteger
	case rawComma:
		return TokComma
	case rawEq:
		return TokEq
	case rawPound:
		return TokPound
	case rawAt:
		return TokAt
	case rawQuote:
		return TokQuote
	case rawLParen:
		return TokLParen
	case rawRParen:
		return TokRParen
	case rawLCurly:
		return TokLCurly
	case rawRCurly:
		return TokRCurly
	default:
		return TokJunk
	}
}
