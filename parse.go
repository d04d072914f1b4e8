package culator

import (
	"errors"
	"math/big"
)

// Expr  = Prod { ('+' | '-') Prod }
// Prod  = Pow { ('*' | '/') Pow }
// Pow   = Unary [ ('^' | '**') Pow ]
// Unary = '-' Unary | '+' Unary | Atom
// Atom  = num | const | func '(' Expr { ',' Expr } ')' | '(' Expr ')'
//
// Each level evaluates as it parses; there is no syntax tree. A function
// call has exactly as many arguments as the function's arity.

// parser holds the state for evaluating one expression: the current token,
// the lexer over the rest of the input, and the nesting depth.
type parser struct {
	ctx   *Context
	scan  *lexer
	tok   lexToken
	depth int
	// nan is set once any operation produces NaN.
	nan bool
}

// advance discards the current token and scans the next.
func (p *parser) advance() {
	p.tok = p.scan.next()
}

// expect advances past a token of kind k, or returns a SyntaxError if the
// current token is anything else.
func (p *parser) expect(k tokenKind) error {
	if p.tok.kind != k {
		return &SyntaxError{Col: p.tok.col(), Want: k.String(), Got: p.tok.kind.String()}
	}
	p.advance()
	return nil
}

// enter increases the nesting depth, failing if it passes the limit. Each
// successful enter must be paired with a leave.
func (p *parser) enter() error {
	if p.depth >= p.ctx.depth {
		return &DepthError{Col: p.tok.col(), Max: p.ctx.depth}
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// arith runs op, which computes into z. If op panics with a NaN, the panic
// is absorbed, the expression is marked NaN, and z is set to zero so that
// evaluation can continue through the rest of the input.
func (p *parser) arith(z *big.Float, op func()) (r *big.Float) {
	r = z
	defer func() {
		if err := recover(); err != nil {
			if !isNaN(err) {
				panic(err)
			}
			p.nan = true
			r.SetInt64(0)
		}
	}()
	op()
	return r
}

// isNaN reports whether a recovered value or returned error is a NaN from
// package big or a DomainError.
func isNaN(v interface{}) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var nan big.ErrNaN
	return errors.As(err, &nan)
}

func (p *parser) parseSum() (*big.Float, error) {
	x, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenAdd || p.tok.kind == tokenSub {
		op := p.tok.kind
		p.advance()
		y, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == tokenAdd {
			p.arith(x, func() { x.Add(x, y) })
		} else {
			p.arith(x, func() { x.Sub(x, y) })
		}
	}
	return x, nil
}

func (p *parser) parseProduct() (*big.Float, error) {
	x, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenMul || p.tok.kind == tokenDiv {
		op := p.tok.kind
		p.advance()
		y, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		if op == tokenMul {
			p.arith(x, func() { x.Mul(x, y) })
		} else {
			p.arith(x, func() { x.Quo(x, y) })
		}
	}
	return x, nil
}

// parsePower parses exponentiation. The exponent is itself a full power
// expression, so chains group to the right: 2^3^2 is 2^9.
func (p *parser) parsePower() (*big.Float, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenPow {
		return x, nil
	}
	p.advance()
	if err := p.enter(); err != nil {
		return nil, err
	}
	y, err := p.parsePower()
	p.leave()
	if err != nil {
		return nil, err
	}
	z := new(big.Float).SetPrec(p.ctx.prec)
	r := z
	p.arith(z, func() { r = bigPow(z, x, y) })
	return r, nil
}

func (p *parser) parseUnary() (*big.Float, error) {
	op := p.tok.kind
	if op != tokenSub && op != tokenAdd {
		return p.parseAtom()
	}
	p.advance()
	if err := p.enter(); err != nil {
		return nil, err
	}
	x, err := p.parseUnary()
	p.leave()
	if err != nil {
		return nil, err
	}
	if op == tokenSub {
		x.Neg(x)
	}
	return x, nil
}

func (p *parser) parseAtom() (*big.Float, error) {
	switch tok := p.tok; tok.kind {
	case tokenNum, tokenConst:
		p.advance()
		return tok.val, nil
	case tokenFunc:
		p.advance()
		return p.parseCall(tok)
	case tokenOpen:
		p.advance()
		if err := p.enter(); err != nil {
			return nil, err
		}
		x, err := p.parseSum()
		p.leave()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenClose); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, &SyntaxError{Col: tok.col(), Got: tok.kind.String()}
	}
}

// parseCall parses the argument list of a call to the function named by fn
// and calls it.
func (p *parser) parseCall(fn lexToken) (*big.Float, error) {
	if err := p.expect(tokenOpen); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	args := make([]*big.Float, fn.fn.Arity())
	for i := range args {
		if i > 0 {
			if err := p.expect(tokenSep); err != nil {
				return nil, err
			}
		}
		x, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args[i] = x
	}
	if err := p.expect(tokenClose); err != nil {
		return nil, err
	}
	r := new(big.Float).SetPrec(p.ctx.prec)
	var err error
	p.arith(r, func() { err = fn.fn.Call(p.ctx, args, r) })
	if err != nil {
		if !isNaN(err) {
			return nil, &CallError{Col: fn.col(), Func: fn.text, Err: err}
		}
		p.nan = true
		r.SetInt64(0)
	}
	return r, nil
}
