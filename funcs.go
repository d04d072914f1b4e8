package culator

import (
	"math/big"
	"sort"
	"strconv"
)

// MaxArgs is the largest arity a registered function may have.
const MaxArgs = 256

// Func is a function from reals to reals with a fixed number of arguments.
type Func interface {
	// Call evaluates the function. args has exactly Arity elements, each at
	// the context's precision; Call may modify them. Call must set r to its
	// result and should not use the value of r otherwise.
	//
	// An argument outside the function's domain is reported either by
	// panicking with a big.ErrNaN, or by returning an error that unwraps to
	// one, such as DomainError. Either way the expression evaluates to NaN.
	// Any other error aborts the evaluation.
	Call(ctx *Context, args []*big.Float, r *big.Float) error

	// Arity is the number of arguments the function takes. The parser
	// requires exactly that many comma-separated arguments in a call.
	Arity() int
}

// Constant computes a named constant at out's precision and returns it,
// normally in out.
type Constant func(out *big.Float) *big.Float

// Registry maps names to constants and functions. Constants and functions
// are separate namespaces; when a name is in both, the constant wins.
//
// A Registry is built once at startup and must not be modified after it is
// handed to a Context.
type Registry struct {
	consts map[string]Constant
	funcs  map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		consts: make(map[string]Constant),
		funcs:  make(map[string]Func),
	}
}

// Const registers a constant. Returns r for chaining. Panics if name is not
// a valid identifier or is already a constant in r.
func (r *Registry) Const(name string, c Constant) *Registry {
	checkName(name)
	if c == nil {
		panic("culator: nil constant " + strconv.Quote(name))
	}
	if _, ok := r.consts[name]; ok {
		panic("culator: constant " + strconv.Quote(name) + " registered twice")
	}
	r.consts[name] = c
	return r
}

// Func registers a function. Returns r for chaining. Panics if name is not a
// valid identifier or is already a function in r, or if the function's arity
// is not between 1 and MaxArgs.
func (r *Registry) Func(name string, fn Func) *Registry {
	checkName(name)
	if fn == nil {
		panic("culator: nil function " + strconv.Quote(name))
	}
	if n := fn.Arity(); n < 1 || n > MaxArgs {
		panic("culator: function " + strconv.Quote(name) + " has invalid arity " + strconv.Itoa(n))
	}
	if _, ok := r.funcs[name]; ok {
		panic("culator: function " + strconv.Quote(name) + " registered twice")
	}
	r.funcs[name] = fn
	return r
}

// Lookup finds a name. At most one of the results is non-nil.
func (r *Registry) Lookup(name string) (Constant, Func) {
	if c := r.consts[name]; c != nil {
		return c, nil
	}
	return nil, r.funcs[name]
}

// Consts returns the sorted names of the registered constants.
func (r *Registry) Consts() []string {
	v := make([]string, 0, len(r.consts))
	for k := range r.consts {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// Funcs returns the sorted names of the registered functions.
func (r *Registry) Funcs() []string {
	v := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// checkName panics if name could not be scanned as a single identifier.
func checkName(name string) {
	if name == "" || isDigit(name[0]) {
		panic("culator: invalid name " + strconv.Quote(name))
	}
	for i := 0; i < len(name); i++ {
		if !isIdent(name[i]) {
			panic("culator: invalid name " + strconv.Quote(name))
		}
	}
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	r.Set(m.f(r, args[0]))
	return nil
}

func (monadic) Arity() int {
	return 1
}

// Monadic wraps a function of one variable into a Func. f returns its result,
// normally in out, which has the context's precision. If f is called on
// an argument outside its domain, it should panic with a big.ErrNaN or a
// DomainError.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type dyadic struct {
	f func(out, x, y *big.Float) *big.Float
}

func (d dyadic) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	r.Set(d.f(r, args[0], args[1]))
	return nil
}

func (dyadic) Arity() int {
	return 2
}

// Dyadic wraps a function of two variables into a Func, with the same
// contract as Monadic.
func Dyadic(f func(out, x, y *big.Float) *big.Float) Func {
	return dyadic{f}
}

type float1 struct {
	f func(float64) float64
}

func (m float1) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	x, _ := args[0].Float64()
	// SetFloat64 panics with ErrNaN when f returns NaN.
	r.SetPrec(ctx.Prec()).SetFloat64(m.f(x))
	return nil
}

func (float1) Arity() int {
	return 1
}

// Float1 wraps a float64 function of one variable into a Func. The argument
// is rounded to the nearest float64, so the result has at most float64
// precision. A NaN result is a domain error.
func Float1(f func(float64) float64) Func {
	return float1{f}
}

type float2 struct {
	f func(float64, float64) float64
}

func (d float2) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	x, _ := args[0].Float64()
	y, _ := args[1].Float64()
	r.SetPrec(ctx.Prec()).SetFloat64(d.f(x, y))
	return nil
}

func (float2) Arity() int {
	return 2
}

// Float2 wraps a float64 function of two variables into a Func, with the
// same contract as Float1.
func Float2(f func(float64, float64) float64) Func {
	return float2{f}
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err DomainError) Error() string {
	r := "argument outside domain"
	if err.X != nil {
		r = err.X.String() + " outside domain"
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err DomainError) Unwrap() error {
	return big.ErrNaN{}
}
