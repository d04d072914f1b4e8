package culator

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

var builtins = NewRegistry().
	// constants
	Const("pi", constPi).
	Const("e", constE).
	Const("tau", scaled(constPi, 2, 1)).
	Const("inf", func(out *big.Float) *big.Float { return out.SetInf(false) }).
	Const("ln2", lnOf(2)).
	Const("ln10", lnOf(10)).
	Const("log2e", recip(lnOf(2))).
	Const("log10e", recip(lnOf(10))).
	Const("sqrt2", sqrtOf(2, 1)).
	Const("sqrt1_2", sqrtOf(1, 2)).
	// names from math.h
	Const("M_E", constE).
	Const("M_LOG2E", recip(lnOf(2))).
	Const("M_LOG10E", recip(lnOf(10))).
	Const("M_LN2", lnOf(2)).
	Const("M_LN10", lnOf(10)).
	Const("M_PI", constPi).
	Const("M_PI_2", scaled(constPi, 1, 2)).
	Const("M_PI_4", scaled(constPi, 1, 4)).
	Const("M_1_PI", recip(constPi)).
	Const("M_2_PI", scaled(recip(constPi), 2, 1)).
	Const("M_2_SQRTPI", scaled(recip(sqrtPi), 2, 1)).
	Const("M_SQRT2", sqrtOf(2, 1)).
	Const("M_SQRT1_2", sqrtOf(1, 2)).
	// functions with extended precision
	Func("sqrt", Monadic(bigSqrt)).
	Func("exp", Monadic(bigExp)).
	Func("exp2", Monadic(bigExp2)).
	Func("log", Monadic(bigLog)).
	Func("ln", Monadic(bigLog)).
	Func("log10", Monadic(logBase(10))).
	Func("log2", Monadic(logBase(2))).
	Func("pow", Dyadic(bigPow)).
	Func("floor", Monadic(bigFloor)).
	Func("ceil", Monadic(bigCeil)).
	Func("trunc", Monadic(bigTrunc)).
	Func("round", Monadic(bigRound)).
	Func("abs", Monadic((*big.Float).Abs)).
	Func("fabs", Monadic((*big.Float).Abs)).
	Func("min", Dyadic(bigMin)).
	Func("max", Dyadic(bigMax)).
	Func("fmin", Dyadic(bigMin)).
	Func("fmax", Dyadic(bigMax)).
	Func("hypot", Dyadic(bigHypot)).
	Func("torad", Monadic(toRad)).
	Func("todeg", Monadic(toDeg)).
	// functions with float64 precision
	Func("sin", Float1(math.Sin)).
	Func("cos", Float1(math.Cos)).
	Func("tan", Float1(math.Tan)).
	Func("asin", Float1(math.Asin)).
	Func("acos", Float1(math.Acos)).
	Func("atan", Float1(math.Atan)).
	Func("atan2", Float2(math.Atan2)).
	Func("sinh", Float1(math.Sinh)).
	Func("cosh", Float1(math.Cosh)).
	Func("tanh", Float1(math.Tanh)).
	Func("asinh", Float1(math.Asinh)).
	Func("acosh", Float1(math.Acosh)).
	Func("atanh", Float1(math.Atanh)).
	Func("cbrt", Float1(math.Cbrt)).
	Func("expm1", Float1(math.Expm1)).
	Func("log1p", Float1(math.Log1p)).
	Func("fmod", Float2(math.Mod)).
	Func("erf", Float1(math.Erf)).
	Func("erfc", Float1(math.Erfc)).
	Func("tgamma", Float1(math.Gamma)).
	Func("lgamma", Float1(func(x float64) float64 {
		r, _ := math.Lgamma(x)
		return r
	}))

// DefaultRegistry returns the builtin constants and functions. The result
// is shared and must not be modified.
func DefaultRegistry() *Registry {
	return builtins
}

// tmp creates a temporary at the same precision as z.
func tmp(z *big.Float) *big.Float {
	return new(big.Float).SetPrec(z.Prec())
}

// The bigfloat functions do not always return their first argument, so
// results are copied out of what they return.

func constPi(out *big.Float) *big.Float {
	return out.Set(bigfloat.Pi(tmp(out)))
}

func constE(out *big.Float) *big.Float {
	one := big.NewFloat(1)
	return out.Set(bigfloat.Exp(tmp(out), one))
}

func lnOf(n int64) Constant {
	return func(out *big.Float) *big.Float {
		x := tmp(out).SetInt64(n)
		return out.Set(bigfloat.Log(tmp(out), x))
	}
}

func sqrtOf(num, den int64) Constant {
	return func(out *big.Float) *big.Float {
		x := tmp(out).SetInt64(num)
		x.Quo(x, tmp(out).SetInt64(den))
		return out.Sqrt(x)
	}
}

func sqrtPi(out *big.Float) *big.Float {
	constPi(out)
	return out.Sqrt(out)
}

// recip computes 1/c.
func recip(c Constant) Constant {
	return func(out *big.Float) *big.Float {
		x := c(tmp(out))
		return out.Quo(out.SetInt64(1), x)
	}
}

// scaled computes c*num/den.
func scaled(c Constant, num, den int64) Constant {
	return func(out *big.Float) *big.Float {
		out.Set(c(out))
		out.Mul(out, tmp(out).SetInt64(num))
		return out.Quo(out, tmp(out).SetInt64(den))
	}
}

// nan reports a domain error for a function of one argument.
func nan(name string, x *big.Float) {
	panic(DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: name})
}

func bigSqrt(z, x *big.Float) *big.Float {
	if x.Sign() < 0 {
		nan("sqrt", x)
	}
	return z.Sqrt(x)
}

func bigExp(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(1)
	}
	if x.IsInf() {
		if x.Signbit() {
			return z.SetInt64(0)
		}
		return z.SetInf(false)
	}
	return z.Set(bigfloat.Exp(tmp(z), x))
}

func bigExp2(z, x *big.Float) *big.Float {
	return bigPow(z, tmp(z).SetInt64(2), x)
}

func bigLog(z, x *big.Float) *big.Float {
	switch {
	case x.Sign() < 0:
		nan("log", x)
	case x.Sign() == 0:
		return z.SetInf(true)
	case x.IsInf():
		return z.SetInf(false)
	case x.Cmp(big.NewFloat(1)) == 0:
		return z.SetInt64(0)
	}
	return z.Set(bigfloat.Log(tmp(z), x))
}

func logBase(b int64) func(z, x *big.Float) *big.Float {
	return func(z, x *big.Float) *big.Float {
		z.Set(bigLog(z, x))
		if z.IsInf() {
			return z
		}
		return z.Quo(z, lnOf(b)(tmp(z)))
	}
}

// bigPow computes x^y with C pow semantics for negative bases and for
// zeros and infinities.
func bigPow(z, x, y *big.Float) *big.Float {
	switch {
	case y.Sign() == 0:
		return z.SetInt64(1)
	case y.Cmp(big.NewFloat(1)) == 0:
		return z.Set(x)
	case x.Cmp(big.NewFloat(1)) == 0:
		return z.SetInt64(1)
	case x.Sign() == 0, x.IsInf(), y.IsInf():
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		return z.SetFloat64(math.Pow(xf, yf))
	case x.Sign() > 0:
		return z.Set(bigfloat.Pow(tmp(z), x, y))
	case !y.IsInt():
		panic(DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "pow"})
	}
	// Negative base with an integer exponent.
	z.Set(bigfloat.Pow(tmp(z), tmp(z).Abs(x), y))
	n, _ := y.Int(nil)
	if n.Bit(0) == 1 {
		z.Neg(z)
	}
	return z
}

func bigTrunc(z, x *big.Float) *big.Float {
	if x.IsInt() || x.IsInf() {
		return z.Set(x)
	}
	n, _ := x.Int(nil)
	z.SetInt(n)
	if n.Sign() == 0 && x.Signbit() {
		z.Neg(z)
	}
	return z
}

func bigFloor(z, x *big.Float) *big.Float {
	if x.IsInt() || x.IsInf() {
		return z.Set(x)
	}
	bigTrunc(z, x)
	if x.Sign() < 0 {
		z.Sub(z, tmp(z).SetInt64(1))
	}
	return z
}

func bigCeil(z, x *big.Float) *big.Float {
	if x.IsInt() || x.IsInf() {
		return z.Set(x)
	}
	bigTrunc(z, x)
	if x.Sign() > 0 {
		z.Add(z, tmp(z).SetInt64(1))
	}
	return z
}

// bigRound rounds half away from zero.
func bigRound(z, x *big.Float) *big.Float {
	if x.IsInt() || x.IsInf() {
		return z.Set(x)
	}
	t := bigTrunc(tmp(z), x)
	frac := new(big.Float).Sub(x, t)
	frac.Abs(frac)
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		if x.Sign() < 0 {
			t.Sub(t, tmp(z).SetInt64(1))
		} else {
			t.Add(t, tmp(z).SetInt64(1))
		}
	}
	return z.Set(t)
}

func bigMin(z, x, y *big.Float) *big.Float {
	if y.Cmp(x) < 0 {
		return z.Set(y)
	}
	return z.Set(x)
}

func bigMax(z, x, y *big.Float) *big.Float {
	if y.Cmp(x) > 0 {
		return z.Set(y)
	}
	return z.Set(x)
}

func bigHypot(z, x, y *big.Float) *big.Float {
	if x.IsInf() || y.IsInf() {
		return z.SetInf(false)
	}
	a := tmp(z).Mul(x, x)
	b := tmp(z).Mul(y, y)
	return z.Sqrt(a.Add(a, b))
}

func toRad(z, x *big.Float) *big.Float {
	constPi(z)
	z.Mul(z, x)
	return z.Quo(z, tmp(z).SetInt64(180))
}

func toDeg(z, x *big.Float) *big.Float {
	pi := constPi(tmp(z))
	z.Mul(x, tmp(z).SetInt64(180))
	return z.Quo(z, pi)
}
