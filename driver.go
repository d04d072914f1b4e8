package culator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Driver evaluates a sequence of expressions, printing one result per line.
type Driver struct {
	// Ctx is the context expressions are evaluated in.
	Ctx *Context
	// Out receives results.
	Out io.Writer
	// Digits is the number of significant digits in results. See Value.Text.
	Digits int
	// KeepGoing makes the driver report malformed expressions and continue
	// with the next one. Normally the first malformed expression stops the
	// driver.
	KeepGoing bool
	// Log receives errors for malformed expressions.
	Log zerolog.Logger
}

// Line evaluates one expression and prints its value. Input with no tokens
// prints nothing. A malformed expression is logged and returned.
func (d *Driver) Line(src string) error {
	v, err := d.Ctx.Eval(src)
	if err != nil {
		d.Log.Error().Msg(err.Error())
		return err
	}
	if v == nil {
		return nil
	}
	_, err = fmt.Fprintln(d.Out, v.Text(d.Digits))
	return err
}

// Args evaluates each argument as one expression, in order. It returns the
// first error; unless KeepGoing is set, no expression after it is evaluated.
func (d *Driver) Args(args []string) error {
	var first error
	for _, arg := range args {
		if err := d.Line(arg); err != nil {
			if !d.KeepGoing || !isInput(err) {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Stream evaluates each line read from r as one expression, with the same
// error handling as Args.
//
// A final line without a terminating newline is discarded, not evaluated.
func (d *Driver) Stream(r io.Reader) error {
	var first error
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return first
			}
			return err
		}
		if err := d.Line(strings.TrimSuffix(line, "\n")); err != nil {
			if !d.KeepGoing || !isInput(err) {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}
}

// isInput reports whether err came from malformed input, as opposed to a
// failure to write results.
func isInput(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}
