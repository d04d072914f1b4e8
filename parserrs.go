package culator

import "strconv"

// SyntaxError is an error indicating a token that the parser cannot accept
// at its position. It implements InputError.
type SyntaxError struct {
	// Col is the position of the offending token.
	Col int
	// Want is the name of the token the parser required, or the empty string
	// if no token could have started a term there.
	Want string
	// Got is the name of the token the parser found.
	Got string
}

func (err *SyntaxError) Error() string {
	if err.Want == "" {
		return errpos(err.Col, "unexpected token '"+err.Got+"'")
	}
	return errpos(err.Col, "expected token '"+err.Want+"', got '"+err.Got+"'")
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// DepthError is an error indicating an expression nested more deeply than
// the context allows. It implements InputError.
type DepthError struct {
	// Col is the position of the token that exceeded the limit.
	Col int
	// Max is the context's nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression too deeply nested (limit "+strconv.Itoa(err.Max)+")")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// CallError is an error returned by a function during a call, other than a
// domain error. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Err is the error the function returned.
	Err error
}

func (err *CallError) Error() string {
	return errpos(err.Col, "calling "+err.Func+": "+err.Err.Error())
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the start of the token that caused
	// the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*CallError)(nil)
)
