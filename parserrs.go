package tinyexpr

import "strconv"

// ParseError describes why Compile failed. It is the only error type
// Compile returns.
type ParseError struct {
	pos int
	msg string
}

// newParseError builds a ParseError, clamping pos to at least 1 so that
// Position never reports a nonsensical offset for errors detected right at
// the start of the input.
func newParseError(pos int, msg string) *ParseError {
	if pos < 1 {
		pos = 1
	}
	return &ParseError{pos: pos, msg: msg}
}

func (e *ParseError) Error() string {
	return strconv.Itoa(e.pos) + ": " + e.msg
}

// Pos returns the 1-based byte offset into the source at which the error was
// detected.
func (e *ParseError) Pos() int {
	return e.pos
}

// InputError is implemented by *ParseError. It exists so callers can depend
// on the position-reporting behavior without depending on the concrete
// error type.
type InputError interface {
	error
	Pos() int
}

var _ InputError = (*ParseError)(nil)

// Position returns the byte offset carried by err, or 0 if err is nil or
// does not implement InputError. It is a convenience for callers that only
// have an error value from Compile and want the position without a type
// assertion.
func Position(err error) int {
	if err == nil {
		return 0
	}
	if ie, ok := err.(InputError); ok {
		return ie.Pos()
	}
	return 0
}
