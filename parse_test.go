package culator

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(src string, opts ...ContextOption) *parser {
	ctx := NewContext(opts...)
	p := &parser{ctx: ctx, scan: lex(ctx, src)}
	p.advance()
	return p
}

func TestParserDepthBalanced(t *testing.T) {
	srcs := []string{
		"((1))",
		"-(-(+1))",
		"2^-2^(3)",
		"max(abs(-1), sqrt((4)))",
		"((1) + 2",
		"max(1 2)",
		"-",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			p := newParser(src)
			p.parseSum()
			assert.Zero(t, p.depth)
		})
	}
}

func TestParserDepthLimit(t *testing.T) {
	cases := []struct {
		src string
		max int
		ok  bool
		col int
	}{
		{"1", 0, true, 0},
		{"(1)", 0, false, 2},
		{"(1)", 1, true, 0},
		{"((1))", 1, false, 3},
		{"-1", 0, false, 2},
		{"2^3", 0, false, 3},
		{"2^3", 1, true, 0},
		{"2^3^4", 1, false, 5},
		{"abs(1)", 0, false, 5},
		{"abs(1)", 1, true, 0},
		{"abs(-1)", 1, false, 6},
		{"(1)+(2)", 1, true, 0},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			p := newParser(c.src, MaxDepth(c.max))
			_, err := p.parseSum()
			if c.ok {
				assert.NoError(t, err)
				return
			}
			var de *DepthError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.col, de.Col)
			assert.Equal(t, c.max, de.Max)
		})
	}
}

func TestParserStopsAtTrailing(t *testing.T) {
	cases := []struct {
		src  string
		kind tokenKind
		pos  int
	}{
		{"1", tokenEOF, 1},
		{"1 2", tokenNum, 2},
		{"(1))", tokenClose, 3},
		{"1,2", tokenSep, 1},
		{"pi e", tokenConst, 3},
		{"2 (3)", tokenOpen, 2},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			p := newParser(c.src)
			_, err := p.parseSum()
			require.NoError(t, err)
			assert.Equal(t, c.kind, p.tok.kind)
			assert.Equal(t, c.pos, p.tok.pos)
		})
	}
}

func TestArith(t *testing.T) {
	p := newParser("")
	z := big.NewFloat(3)
	r := p.arith(z, func() {})
	assert.Same(t, z, r)
	assert.False(t, p.nan)

	inf := new(big.Float).SetInf(false)
	r = p.arith(z, func() { z.Sub(inf, inf) })
	assert.Same(t, z, r)
	assert.True(t, p.nan)
	assert.Zero(t, z.Sign())

	p.nan = false
	p.arith(z, func() { nan("f", big.NewFloat(-1)) })
	assert.True(t, p.nan)

	assert.PanicsWithValue(t, "boom", func() {
		p.arith(z, func() { panic("boom") })
	})
	assert.Panics(t, func() {
		p.arith(z, func() { panic(errors.New("boom")) })
	})
}

func TestIsNaN(t *testing.T) {
	cases := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"ErrNaN", big.ErrNaN{}, true},
		{"DomainError", DomainError{Func: "f"}, true},
		{"wrapped", &CallError{Func: "f", Err: DomainError{}}, true},
		{"error", errors.New("no"), false},
		{"string", "nan", false},
		{"nil", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, isNaN(c.v))
		})
	}
}
