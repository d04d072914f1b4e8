//go:build go1.18
// +build go1.18

package culator_test

import (
	"testing"

	"github.com/zephyrtronium/culator"
)

func FuzzEval(f *testing.F) {
	f.Add("1+2*3")
	f.Add("2^3^2")
	f.Add("max(1+1, sqrt(9))")
	f.Add("-(-pi)/0")
	f.Add("foo $ (")
	f.Fuzz(func(t *testing.T, s string) {
		ctx := culator.NewContext(culator.MaxDepth(100))
		a, aerr := ctx.Eval(s)
		b, berr := ctx.Eval(s)
		if (aerr == nil) != (berr == nil) {
			t.Fatalf("inconsistent errors for %q: %v, %v", s, aerr, berr)
		}
		if aerr != nil {
			if _, ok := aerr.(culator.InputError); !ok {
				t.Errorf("error for %q is not an InputError: %v", s, aerr)
			}
			return
		}
		if (a == nil) != (b == nil) {
			t.Fatalf("inconsistent results for %q", s)
		}
		if a != nil && a.Text(20) != b.Text(20) {
			t.Errorf("different results for %q: %s, %s", s, a.Text(20), b.Text(20))
		}
	})
}
