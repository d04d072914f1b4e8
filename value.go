package culator

import (
	"math"
	"math/big"
)

// DefaultDigits is the default number of significant digits in formatted
// results.
const DefaultDigits = 15

// Value is the result of evaluating an expression. Since big.Float has no
// NaN, a Value records separately whether any step of the evaluation left
// the domain of real numbers.
type Value struct {
	x   *big.Float
	nan bool
}

// Float returns the value as a big.Float. The result is meaningless if
// IsNaN reports true.
func (v *Value) Float() *big.Float {
	return v.x
}

// IsNaN reports whether the value is not a number.
func (v *Value) IsNaN() bool {
	return v.nan
}

// Float64 returns the float64 nearest the value.
func (v *Value) Float64() float64 {
	if v.nan {
		return math.NaN()
	}
	f, _ := v.x.Float64()
	return f
}

// Text formats the value like C's %.*g: digits significant digits with
// trailing zeros removed, in exponent form when the exponent is less than -4
// or at least digits. A digits of 0 is treated as 1, and a negative digits
// as 6. Non-finite values are "nan", "inf", and "-inf".
func (v *Value) Text(digits int) string {
	switch {
	case v.nan:
		return "nan"
	case v.x.IsInf():
		if v.x.Signbit() {
			return "-inf"
		}
		return "inf"
	}
	if digits < 0 {
		digits = 6
	}
	if digits == 0 {
		digits = 1
	}
	return v.x.Text('g', digits)
}

// String formats the value with DefaultDigits significant digits.
func (v *Value) String() string {
	return v.Text(DefaultDigits)
}
