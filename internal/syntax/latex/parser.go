// Package latex implements the lossless, error-recovering LaTeX parser
// (§4.1): a recursive-descent parser with unlimited lookahead over a
// peekable token cursor, producing a cst.Node tree that covers the
// entire input exactly once.
package latex

import (
	"texlab.dev/core/internal/cst"
	"texlab.dev/core/internal/file"
)

const eofMarker rawKind = -1

type parser struct {
	toks  []rawToken
	pos   int
	cfg   *Config
	diags []file.Diagnostic
}

// Parse tokenizes and parses src, returning the root CST node and any
// syntactic diagnostics collected during error recovery.
func Parse(src string, cfg *Config) (*cst.Node, []file.Diagnostic) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &parser{toks: lex(src), cfg: cfg}
	return p.parseRoot(), p.diags
}

// -- cursor helpers --

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
	if start == p.pos {
		return ""
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

// offsetNow returns the byte offset the cursor currently sits at (for
// diagnostics at EOF or insertion points).
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
		children = append(children, cst.NewToken(TokTrivia, 0, "", leading))
	}
	for p.peekKind(0) != eofMarker {
		children = append(children, p.parseElement())
	}
	return cst.NewNode(NodeRoot, children)
}

// parseElement parses one top-level-shaped syntax element: a command
// (possibly an environment), a math formula, a standalone group, or a
// plain token (word, punctuation, stray bracket/brace).
func (p *parser) parseElement() cst.Element {
	switch p.peekKind(0) {
	case rawCommandName:
		return p.parseCommandOrEnvironment()
	case rawMathShiftOpen:
		return p.parseDisplayFormula()
	case rawDollar:
		return p.parseInlineFormula(rawDollar, TokDollar)
	case rawDollarDollar:
		return p.parseInlineFormula(rawDollarDollar, TokDollarDollar)
	case rawLCurly:
		return p.parseCurlyGroup()
	case rawLBrack:
		return p.bumpToken(TokLBrack)
	case rawRBrack:
		return p.bumpToken(TokRBrack)
	case rawRCurly:
		start, _ := p.peekRaw(0)
		tok := p.bumpToken(TokRCurly)
		p.diag(CodeUnexpectedRCurly, start.start, start.start+1)
		return tok
	case rawAmp:
		return p.bumpToken(TokAmp)
	case rawComma:
		return p.bumpToken(TokComma)
	case rawWord:
		return p.bumpToken(TokWord)
	default:
		// Reached for a stray `\]` (rawMathShiftClose), the one
		// significant rawKind not handled above.
		raw := p.bump()
		return cst.NewToken(TokWord, raw.start, raw.text, p.consumeTrivia())
	}
}

// atEnvironmentEnd reports whether the next significant token is an
// `\end` command, which terminates the caller's environment-body or
// group loop rather than being parsed there.
func (p *parser) atEnvironmentEnd() bool {
	t, ok := p.peekRaw(0)
	return ok && t.kind == rawCommandName && commandBaseName(t.text) == `\end`
}

func (p *parser) parseCurlyGroup() *cst.Node {
	open := p.bumpToken(TokLCurly)
	children := []cst.Element{open}
	for {
		switch p.peekKind(0) {
		case eofMarker:
			p.diag(CodeRCurlyInserted, p.offsetNow(), p.offsetNow())
			children = append(children, p.syntheticToken(TokRCurly))
			return cst.NewNode(NodeCurlyGroup, children)
		case rawRCurly:
			children = append(children, p.bumpToken(TokRCurly))
			return cst.NewNode(NodeCurlyGroup, children)
		default:
			if p.atEnvironmentEnd() {
				// Don't swallow a sibling \end while recovering from an
				// unterminated group inside an environment body.
				p.diag(CodeRCurlyInserted, p.offsetNow(), p.offsetNow())
				children = append(children, p.syntheticToken(TokRCurly))
				return cst.NewNode(NodeCurlyGroup, children)
			}
			children = append(children, p.parseElement())
		}
	}
}

func (p *parser) parseBrackGroup() *cst.Node {
	open := p.bumpToken(TokLBrack)
	children := []cst.Element{open}
	for {
		switch p.peekKind(0) {
		case eofMarker, rawRCurly:
			// No diagnostic kind is defined for an unterminated optional
			// argument (see spec.md §7's closed taxonomy); recover
			// silently by synthesizing the close bracket.
			children = append(children, p.syntheticToken(TokRBrack))
			return cst.NewNode(NodeBrackGroup, children)
		case rawRBrack:
			children = append(children, p.bumpToken(TokRBrack))
			return cst.NewNode(NodeBrackGroup, children)
		default:
			if p.atEnvironmentEnd() {
				children = append(children, p.syntheticToken(TokRBrack))
				return cst.NewNode(NodeBrackGroup, children)
			}
			children = append(children, p.parseElement())
		}
	}
}

// parseCommandOrEnvironment parses a single \command token together
// with any immediately-following argument groups, specializing into a
// full Environment subtree when the command is \begin.
func (p *parser) parseCommandOrEnvironment() cst.Element {
	raw, _ := p.peekRaw(0)
	base := commandBaseName(raw.text)
	if base == `\begin` {
		return p.parseEnvironment()
	}
	if base == `\end` {
		// Unmatched \end with no enclosing \begin in this scope.
		nameTok := p.bumpToken(TokCommandName)
		children := []cst.Element{nameTok}
		if p.peekKind(0) == rawLCurly {
			children = append(children, p.parseCurlyGroup())
		}
		p.diag(CodeMismatchedEnvironment, raw.start, raw.start+len(raw.text))
		return cst.NewNode(NodeEnd, children)
	}
	return p.parseGenericCommand()
}

func (p *parser) parseGenericCommand() *cst.Node {
	nameTok := p.bumpToken(TokCommandName)
	children := []cst.Element{nameTok}
	for {
		switch p.peekKind(0) {
		case rawLCurly:
			children = append(children, p.parseCurlyGroup())
		case rawLBrack:
			children = append(children, p.parseBrackGroup())
		default:
			return cst.NewNode(NodeCommand, children)
		}
	}
}

// groupName extracts the plain-text contents of a curly/brack group,
// concatenating only its Word tokens (ignoring braces and trivia),
// e.g. the "itemize" out of "{itemize}".
func groupName(g *cst.Node) string {
	var out string
	for _, c := range g.Children() {
		if t, ok := c.(cst.Token); ok && (t.Kind() == TokWord) {
			out += t.RawText()
		}
	}
	return out
}

func (p *parser) parseEnvironment() *cst.Node {
	beginNameTok := p.bumpToken(TokCommandName)
	beginChildren := []cst.Element{beginNameTok}
	var nameGroup *cst.Node
	if p.peekKind(0) == rawLCurly {
		nameGroup = p.parseCurlyGroup()
		beginChildren = append(beginChildren, nameGroup)
	}
	// Any further groups after the name (e.g. \begin{tabular}{cc}) belong
	// to the begin node too.
	for p.peekKind(0) == rawLCurly || p.peekKind(0) == rawLBrack {
		if p.peekKind(0) == rawLCurly {
			beginChildren = append(beginChildren, p.parseCurlyGroup())
		} else {
			beginChildren = append(beginChildren, p.parseBrackGroup())
		}
	}
	begin := cst.NewNode(NodeBegin, beginChildren)

	name := ""
	if nameGroup != nil {
		name = groupName(nameGroup)
	}

	children := []cst.Element{begin}

	if p.cfg.VerbatimEnvironments[name] {
		children = append(children, p.parseVerbatimBody(name)...)
	} else {
		for !p.atEnvironmentEnd() && p.peekKind(0) != eofMarker {
			children = append(children, p.parseElement())
		}
	}

	if p.peekKind(0) == eofMarker {
		p.diag(CodeMismatchedEnvironment, p.offsetNow(), p.offsetNow())
		return cst.NewNode(NodeEnvironment, children)
	}

	endRaw, _ := p.peekRaw(0)
	endNameTok := p.bumpToken(TokCommandName)
	endChildren := []cst.Element{endNameTok}
	var endName string
	if p.peekKind(0) == rawLCurly {
		g := p.parseCurlyGroup()
		endName = groupName(g)
		endChildren = append(endChildren, g)
	}
	if endName != name {
		p.diag(CodeMismatchedEnvironment, endRaw.start, endRaw.start+len(endRaw.text))
	}
	end := cst.NewNode(NodeEnd, endChildren)
	children = append(children, end)

	return cst.NewNode(NodeEnvironment, children)
}

// parseVerbatimBody consumes raw source text up to (not including) the
// matching \end{name}, wrapping it in a single TokVerbatim token, per
// §4.1 "Verbatim environments' bodies become a single uninterpreted text
// token".
func (p *parser) parseVerbatimBody(name string) []cst.Element {
	start := p.offsetNow()
	for {
		t, ok := p.peekRaw(0)
		if !ok {
			break
		}
		if t.kind == rawCommandName && commandBaseName(t.text) == `\end` {
			// Peek ahead: does the following group name this environment?
			save := p.pos
			p.bump() // consume \end for lookahead
			matched := false
			if p.peekKind(0) == rawLCurly {
				savedInner := p.pos
				g := p.parseCurlyGroup()
				matched = groupName(g) == name
				if !matched {
					p.pos = savedInner
				}
			}
			p.pos = save
			if matched {
				break
			}
		}
		p.pos++
	}
	end := p.offsetNow()
	if start == end {
		return nil
	}
	return []cst.Element{cst.NewToken(TokVerbatim, start, rawSliceText(p.toks, start, end), "")}
}

// rawSliceText reassembles the exact source text spanning [start, end)
// from the raw token stream, since the parser only keeps token slices,
// not the original buffer.
func rawSliceText(toks []rawToken, start, end int) string {
	var out string
	for _, t := range toks {
		tStart := t.start
		tEnd := t.start + len(t.text)
		if tEnd <= start || tStart >= end {
			continue
		}
		lo, hi := tStart, tEnd
		if lo < start {
			lo = start
		}
		if hi > end {
			hi = end
		}
		out += t.text[lo-tStart : hi-tStart]
	}
	return out
}

func (p *parser) parseDisplayFormula() *cst.Node {
	open := p.bumpToken(TokMathShift)
	children := []cst.Element{open}
	for p.peekKind(0) != rawMathShiftClose && p.peekKind(0) != eofMarker && !p.atEnvironmentEnd() {
		children = append(children, p.parseElement())
	}
	if p.peekKind(0) == rawMathShiftClose {
		children = append(children, p.bumpToken(TokMathShift))
	}
	return cst.NewNode(NodeFormula, children)
}

func (p *parser) parseInlineFormula(closeRaw rawKind, tokKind cst.Kind) *cst.Node {
	open := p.bumpToken(tokKind)
	children := []cst.Element{open}
	for p.peekKind(0) != closeRaw && p.peekKind(0) != eofMarker && !p.atEnvironmentEnd() {
		children = append(children, p.parseElement())
	}
	if p.peekKind(0) == closeRaw {
		children = append(children, p.bumpToken(tokKind))
	}
	return cst.NewNode(NodeFormula, children)
}
