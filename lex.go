package culator

import (
	"math/big"
	"strconv"
	"unicode/utf8"
)

type lexToken struct {
	kind tokenKind
	// text is the source text of the token.
	text string
	// pos and end are the byte offsets of the token in the source.
	pos, end int
	// val is the value of a number or constant token.
	val *big.Float
	// fn is the function of a function token.
	fn Func
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// col is the 1-based column of the start of the token.
func (t lexToken) col() int {
	return t.pos + 1
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal literal.
	tokenNum
	tokenAdd
	tokenSub
	tokenMul
	tokenDiv
	// tokenPow is either ^ or **.
	tokenPow
	// tokenFunc is a name resolved to a registered function.
	tokenFunc
	// tokenConst is a name resolved to a registered constant.
	tokenConst
	tokenOpen
	tokenClose
	// tokenSep separates function arguments.
	tokenSep
	// tokenEOF indicates the end of the input.
	tokenEOF
)

var tokenNames = [...]string{
	tokenNone:  "None",
	tokenNum:   "Val",
	tokenAdd:   "+",
	tokenSub:   "-",
	tokenMul:   "*",
	tokenDiv:   "/",
	tokenPow:   "^",
	tokenFunc:  "Func",
	tokenConst: "Const",
	tokenOpen:  "(",
	tokenClose: ")",
	tokenSep:   ",",
	tokenEOF:   "EOF",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// lexer scans tokens from a single expression. Names are resolved against
// the context's registry as they are scanned, so the parser never sees an
// identifier that is not a function or constant.
type lexer struct {
	ctx *Context
	src string
	off int
}

func lex(ctx *Context, src string) *lexer {
	return &lexer{ctx: ctx, src: src}
}

// next scans the next token. Whitespace, unknown names, and invalid
// characters are skipped, the latter two with a warning. Once the input is
// exhausted, every call returns an EOF token.
func (l *lexer) next() lexToken {
	for {
		for l.off < len(l.src) && isSpace(l.src[l.off]) {
			l.off++
		}
		tok := lexToken{pos: l.off}
		if l.off >= len(l.src) {
			tok.kind = tokenEOF
			tok.end = l.off
			return tok
		}
		c := l.src[l.off]
		switch {
		case isDigit(c):
			l.scanNum()
			tok.kind = tokenNum
			tok.text = l.src[tok.pos:l.off]
			tok.val = l.ctx.num(tok.text)
		case c == '_', isLetter(c):
			l.scanIdent()
			tok.text = l.src[tok.pos:l.off]
			k, fn := l.ctx.reg.Lookup(tok.text)
			switch {
			case k != nil:
				tok.kind = tokenConst
				tok.val = l.ctx.constant(tok.text, k)
			case fn != nil:
				tok.kind = tokenFunc
				tok.fn = fn
			default:
				l.ctx.log.Warn().Int("col", tok.col()).Msgf("unknown name '%s', skipping", tok.text)
				continue
			}
		case c == '*':
			l.off++
			tok.kind = tokenMul
			if l.off < len(l.src) && l.src[l.off] == '*' {
				l.off++
				tok.kind = tokenPow
			}
			tok.text = l.src[tok.pos:l.off]
		default:
			k := punct(c)
			if k == tokenNone {
				// Skip a whole rune so that multibyte characters produce one
				// warning rather than one per byte.
				r, sz := utf8.DecodeRuneInString(l.src[l.off:])
				l.off += sz
				l.ctx.log.Warn().Int("col", tok.col()).Msgf("invalid %q token, skipping", r)
				continue
			}
			l.off++
			tok.kind = k
			tok.text = l.src[tok.pos:l.off]
		}
		tok.end = l.off
		return tok
	}
}

// scanNum scans a run of digits, optionally followed by a point and another
// run of digits.
func (l *lexer) scanNum() {
	l.digits()
	if l.off < len(l.src) && l.src[l.off] == '.' {
		l.off++
		l.digits()
	}
}

func (l *lexer) digits() {
	for l.off < len(l.src) && isDigit(l.src[l.off]) {
		l.off++
	}
}

func (l *lexer) scanIdent() {
	for l.off < len(l.src) && isIdent(l.src[l.off]) {
		l.off++
	}
}

func punct(c byte) tokenKind {
	switch c {
	case '+':
		return tokenAdd
	case '-':
		return tokenSub
	case '/':
		return tokenDiv
	case '^':
		return tokenPow
	case '(':
		return tokenOpen
	case ')':
		return tokenClose
	case ',':
		return tokenSep
	default:
		return tokenNone
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdent(c byte) bool {
	return c == '_' || isLetter(c) || isDigit(c)
}
