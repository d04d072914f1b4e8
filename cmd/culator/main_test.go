package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		stdin string
		code  int
		out   string
		diag  string
	}{
		{"args", []string{"1+2", "2^10"}, "", 0, "3\n1024\n", ""},
		{"stdin", nil, "1\n2+2\n\n3*", 0, "1\n4\n", ""},
		{"precision", []string{"-p", "3", "pi"}, "", 0, "3.14\n", ""},
		{"precision-joined", []string{"-p5", "pi"}, "", 0, "3.1416\n", ""},
		{"precision-long", []string{"--precision=3", "pi"}, "", 0, "3.14\n", ""},
		{"precision-long-sep", []string{"--precision", "3", "pi"}, "", 0, "3.14\n", ""},
		{"precision-atoi", []string{"-p", "2abc", "pi"}, "", 0, "3.1\n", ""},
		{"precision-garbage", []string{"-p", "abc", "pi"}, "", 0, "3\n", ""},
		{"bits", []string{"-b", "24", "1/3"}, "", 0, "0.333333343267441\n", ""},
		{"bits-long", []string{"--bits=24", "1/3"}, "", 0, "0.333333343267441\n", ""},
		{"dashdash", []string{"--", "-1"}, "", 0, "-1\n", ""},
		{"warning", []string{"2*foo 3"}, "", 0, "6\n", "WARNING: unknown name 'foo', skipping col=3\n"},
		{"error", []string{"1", "1+", "2"}, "", 1, "1\n", "ERROR: 3: unexpected token 'EOF'\n"},
		{"stdin-error", nil, "(1\n2\n", 1, "", "ERROR: 3: expected token ')', got 'EOF'\n"},
		{"keep-going", []string{"-k", "(", "2"}, "", 1, "2\n", "ERROR: 2: unexpected token 'EOF'\n"},
		{"keep-going-long", []string{"--keep-going", "*", "2"}, "", 1, "2\n", "ERROR: 1: unexpected token '*'\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out, diag bytes.Buffer
			argv := append([]string{"culator"}, c.args...)
			code := run(argv, strings.NewReader(c.stdin), &out, &diag)
			assert.Equal(t, c.code, code)
			assert.Equal(t, c.out, out.String())
			assert.Equal(t, c.diag, diag.String())
		})
	}
}

func TestRunHelp(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"-?"}, {"--help"}, {"-h", "-x"}, {"-?", "-5"}, {"-kh"}, {"-h", "-p"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var out, diag bytes.Buffer
			argv := append(append([]string{"culator"}, args...), "1+1")
			code := run(argv, strings.NewReader(""), &out, &diag)
			assert.Equal(t, 0, code)
			assert.True(t, strings.HasPrefix(out.String(), "usage: culator [OPTIONS] [EXPRESSION ...]\n"), out.String())
			assert.Contains(t, out.String(), "--precision=NUM")
			assert.Contains(t, out.String(), " sqrt ")
			assert.Contains(t, out.String(), " M_PI ")
			assert.Empty(t, diag.String())
		})
	}
}

func TestRunBadOptions(t *testing.T) {
	cases := []struct {
		name string
		args []string
		diag string
	}{
		{"unknown", []string{"-x", "1"}, "invalid option '-x'"},
		{"unknown-digit", []string{"-5"}, "invalid option '-5'"},
		{"unknown-after-valid", []string{"-k", "-x", "1"}, "invalid option '-x'"},
		{"unknown-question", []string{"-x", "-?"}, "invalid option '-x'"},
		{"unknown-long", []string{"--frob", "1"}, "unrecognized option '--frob'"},
		{"unknown-long-eq", []string{"--frob=1"}, "unrecognized option '--frob=1'"},
		{"missing", []string{"-p"}, "option requires an argument '-p'"},
		{"missing-long", []string{"--bits"}, "option requires an argument '-b'"},
		{"bits-zero", []string{"-b", "0", "1"}, "invalid precision in bits '0'"},
		{"bits-garbage", []string{"-b", "lots", "1"}, "invalid precision in bits 'lots'"},
		{"bits-negative", []string{"--bits=-8", "1"}, "invalid precision in bits '-8'"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out, diag bytes.Buffer
			argv := append([]string{"culator"}, c.args...)
			code := run(argv, strings.NewReader("1\n"), &out, &diag)
			assert.Equal(t, 1, code)
			assert.Empty(t, out.String())
			want := "culator: " + c.diag + "\nTry 'culator --help' for more information.\n"
			assert.Equal(t, want, diag.String())
		})
	}
}

func TestShortopts(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", []string{}, []string{}},
		{"none", []string{"c"}, []string{"c"}},
		{"help", []string{"c", "--help"}, []string{"c", "-h"}},
		{"keep-going", []string{"c", "--keep-going", "1"}, []string{"c", "-k", "1"}},
		{"eq", []string{"c", "--precision=5", "1"}, []string{"c", "-p", "5", "1"}},
		{"sep", []string{"c", "--bits", "80", "x"}, []string{"c", "-b", "80", "x"}},
		{"no-value", []string{"c", "--precision"}, []string{"c", "-p"}},
		{"short-value", []string{"c", "-p", "--help"}, []string{"c", "-p", "--help"}},
		{"group-value", []string{"c", "-kp", "--bits"}, []string{"c", "-kp", "--bits"}},
		{"group-joined", []string{"c", "-pb", "--help"}, []string{"c", "-pb", "-h"}},
		{"operand", []string{"c", "1", "--help"}, []string{"c", "1", "--help"}},
		{"dashdash", []string{"c", "--", "--help"}, []string{"c", "--", "--help"}},
		{"short-unknown", []string{"c", "-x", "--help"}, []string{"c", "-x", "-h"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := shortopts(c.in)
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestShortoptsUnknown(t *testing.T) {
	for _, arg := range []string{"--frob", "--precisio=3", "--keep", "--Help"} {
		t.Run(arg, func(t *testing.T) {
			got, err := shortopts([]string{"c", arg, "1"})
			assert.Nil(t, got)
			assert.EqualError(t, err, "unrecognized option '"+arg+"'")
		})
	}
}

func TestAtoi(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"0":     0,
		"12":    12,
		" 7x":   7,
		"\t-3":  -3,
		"+4":    4,
		"x1":    0,
		"-":     0,
		"1.5":   1,
		"08":    8,
		"- 1":   0,
		"15 20": 15,
	}
	for in, want := range cases {
		assert.Equal(t, want, atoi(in), "atoi(%q)", in)
	}
}
