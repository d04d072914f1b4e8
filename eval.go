package culator

import (
	"math/big"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultPrec is the default precision of calculations in bits, the width of
// an x87 extended-precision mantissa.
const DefaultPrec = 64

// DefaultMaxDepth is the default limit on nested subexpressions.
const DefaultMaxDepth = 10000

// Context holds the configuration for evaluating expressions: the registry
// names resolve against, the precision of calculations, and where warnings
// go. Each call to Eval uses fresh parser state, so evaluating the same
// expression twice gives the same result. It is not safe to use a Context
// concurrently.
type Context struct {
	reg    *Registry
	prec   uint
	depth  int
	log    zerolog.Logger
	consts map[string]*big.Float
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt  uint
	depthopt int
	regopt   struct{ reg *Registry }
	logopt   struct{ log zerolog.Logger }
)

func (precopt) ctxOption()  {}
func (depthopt) ctxOption() {}
func (regopt) ctxOption()   {}
func (logopt) ctxOption()   {}

// Prec sets the precision of calculations in bits. Panics if prec is zero or
// larger than big.MaxPrec.
func Prec(prec uint) ContextOption {
	if prec == 0 || prec > big.MaxPrec {
		panic("culator: invalid precision")
	}
	return precopt(prec)
}

// MaxDepth limits how deeply subexpressions may nest. Parentheses, function
// calls, unary operators, and exponents each count as one level.
func MaxDepth(n int) ContextOption {
	return depthopt(n)
}

// WithRegistry sets the constants and functions available to expressions.
func WithRegistry(reg *Registry) ContextOption {
	return regopt{reg}
}

// WithLogger sets the logger that receives warnings about skipped input.
func WithLogger(log zerolog.Logger) ContextOption {
	return logopt{log}
}

// NewContext creates a new evaluation context. By default it uses the
// builtin registry at DefaultPrec bits and discards warnings.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		reg:   builtins,
		prec:  DefaultPrec,
		depth: DefaultMaxDepth,
		log:   zerolog.Nop(),
	}
	return ctx.Clone(opts...)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Registry returns the registry names resolve against.
func (ctx *Context) Registry() *Registry {
	return ctx.reg
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		reg:   ctx.reg,
		prec:  ctx.prec,
		depth: ctx.depth,
		log:   ctx.log,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			n.prec = uint(opt)
		case depthopt:
			n.depth = int(opt)
		case regopt:
			n.reg = opt.reg
		case logopt:
			n.log = opt.log
		default:
			panic("culator: unknown option type")
		}
	}
	// Cached constants are only reusable with the same names and precision.
	n.consts = make(map[string]*big.Float, len(ctx.consts))
	if n.reg == ctx.reg && n.prec == ctx.prec {
		for k, v := range ctx.consts {
			n.consts[k] = v
		}
	}
	return &n
}

// num parses a decimal literal at the context's precision.
func (ctx *Context) num(s string) *big.Float {
	r, ok := new(big.Float).SetPrec(ctx.prec).SetString(strings.TrimSuffix(s, "."))
	if !ok {
		// The lexer only produces digits with at most one point.
		panic("culator: invalid number: " + s)
	}
	return r
}

// constant returns a copy of the value of a named constant, computing it at
// the context's precision the first time it is needed.
func (ctx *Context) constant(name string, c Constant) *big.Float {
	v := ctx.consts[name]
	if v == nil {
		v = new(big.Float).SetPrec(ctx.prec)
		v.Set(c(v))
		ctx.consts[name] = v
	}
	return new(big.Float).Copy(v)
}

// Eval parses and evaluates one expression. If src contains no tokens, the
// result is nil with no error. Otherwise, the error is non-nil if the input
// is malformed, in which case it implements InputError.
func (ctx *Context) Eval(src string) (*Value, error) {
	p := parser{ctx: ctx, scan: lex(ctx, src)}
	p.advance()
	if p.tok.kind == tokenEOF {
		return nil, nil
	}
	x, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		// Input after a complete expression is ignored.
		ctx.log.Debug().Int("col", p.tok.col()).Msgf("ignoring trailing input '%s'", src[p.tok.pos:])
	}
	return &Value{x: x, nan: p.nan}, nil
}

// EvalString is a shortcut to evaluate an expression with a new context.
func EvalString(src string, opts ...ContextOption) (*Value, error) {
	return NewContext(opts...).Eval(src)
}
