package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/culator"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole program. It returns the exit status.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	argv0 := "culator"
	if len(argv) > 0 {
		argv0 = argv[0]
	}
	argv, err := shortopts(argv)
	if err != nil {
		fail(stderr, argv0, err.Error())
		return 1
	}
	opts, optind, err := getopt.Getopts(argv, "h?kp:b:")
	if err != nil {
		// getopt marks an unknown option with a trailing '?'.
		if n := len(opts); n > 0 && opts[n-1].Option == '?' && opts[n-1].Value == "" {
			opts = opts[:n-1]
		}
	}
	// Options are handled in order, so help given before a bad option wins.
	for _, opt := range opts {
		if opt.Option == 'h' || opt.Option == '?' {
			usage(stdout, argv0)
			return 0
		}
	}
	if err != nil {
		fail(stderr, argv0, optmsg(err))
		return 1
	}

	var (
		digits = culator.DefaultDigits
		bits   = uint(culator.DefaultPrec)
		keep   bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'p':
			digits = atoi(opt.Value)
		case 'b':
			n, err := strconv.ParseUint(opt.Value, 10, 32)
			if err != nil || n == 0 || n > big.MaxPrec {
				fail(stderr, argv0, "invalid precision in bits '"+opt.Value+"'")
				return 1
			}
			bits = uint(n)
		case 'k':
			keep = true
		}
	}

	log := culator.NewConsoleLogger(stderr, colorable(stderr))
	d := culator.Driver{
		Ctx:       culator.NewContext(culator.Prec(bits), culator.WithLogger(log)),
		Out:       stdout,
		Digits:    digits,
		KeepGoing: keep,
		Log:       log,
	}
	if args := argv[optind:]; len(args) > 0 {
		err = d.Args(args)
	} else {
		err = d.Stream(stdin)
	}
	if err != nil {
		return 1
	}
	return 0
}

// fail reports a usage error.
func fail(w io.Writer, argv0, msg string) {
	fmt.Fprintf(w, "%s: %s\nTry '%s --help' for more information.\n", argv0, msg, argv0)
}

// optmsg describes a getopt error without the program name getopt puts in
// its own messages.
func optmsg(err error) string {
	switch err := err.(type) {
	case getopt.UnknownOptionError:
		return fmt.Sprintf("invalid option '-%c'", rune(err))
	case getopt.MissingOptionError:
		return fmt.Sprintf("option requires an argument '-%c'", rune(err))
	default:
		return err.Error()
	}
}

// shortopts rewrites long options to the equivalent short options so that
// getopt can parse them. Arguments after the first operand or "--" are left
// alone.
func shortopts(argv []string) ([]string, error) {
	if len(argv) == 0 {
		return argv, nil
	}
	r := make([]string, 1, len(argv))
	r[0] = argv[0]
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" || arg == "-" || !strings.HasPrefix(arg, "-") {
			return append(r, argv[i:]...), nil
		}
		if !strings.HasPrefix(arg, "--") {
			r = append(r, arg)
			// An option taking a value at the end of a group consumes the
			// next argument, which must not be rewritten.
			if c := arg[len(arg)-1]; (c == 'p' || c == 'b') && i+1 < len(argv) && !strings.ContainsAny(arg[1:len(arg)-1], "pb") {
				i++
				r = append(r, argv[i])
			}
			continue
		}
		name, val, eq := strings.Cut(arg[2:], "=")
		switch name {
		case "help":
			r = append(r, "-h")
		case "keep-going":
			r = append(r, "-k")
		case "precision", "bits":
			short := "-" + name[:1]
			switch {
			case eq:
				r = append(r, short, val)
			case i+1 < len(argv):
				i++
				r = append(r, short, argv[i])
			default:
				r = append(r, short)
			}
		default:
			return nil, fmt.Errorf("unrecognized option '%s'", arg)
		}
	}
	return r, nil
}

// atoi converts the leading decimal integer in s, like C's atoi. Text that
// does not start with an integer converts to 0.
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && '0' <= s[end] && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// colorable reports whether w is a terminal.
func colorable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func usage(w io.Writer, argv0 string) {
	fmt.Fprintf(w, "usage: %s [OPTIONS] [EXPRESSION ...]\n", argv0)
	fmt.Fprintln(w, "A simple infix notation floating-point cli calculator.")
	fmt.Fprintln(w, "Reads from stdin if no EXPRESSION is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -p, --precision=NUM  print results with NUM significant digits (default 15)")
	fmt.Fprintln(w, "  -b, --bits=NUM       compute with NUM bits of precision (default 64)")
	fmt.Fprintln(w, "  -k, --keep-going     report malformed expressions and continue")
	fmt.Fprintln(w, "  -h, --help           display this help and exit")
	fmt.Fprintln(w)
	reg := culator.DefaultRegistry()
	fmt.Fprintln(w, "Constants:", strings.Join(reg.Consts(), " "))
	fmt.Fprintln(w, "Functions:", strings.Join(reg.Funcs(), " "))
}
