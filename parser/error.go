package parser

import (
	"fmt"
)

// Kind classifies a parse failure.
type Kind int

// These are the kinds of failure a parser reports.
const (
	UnexpectedChar   Kind = iota // a character was found that no rule accepts
	ExpectedChar                 // a specific character was required
	UnexpectedString             // a specific string was required
	NothingToDo                  // no rule applies at this position
	EndOfInput                   // input ended where more was required
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case ExpectedChar:
		return "expected character"
	case UnexpectedString:
		return "expected string"
	case NothingToDo:
		return "nothing to do"
	case EndOfInput:
		return "unexpected end of input"
	}
	return "unknown failure"
}

// Error is a parse failure with the absolute position it happened at.
type Error struct {
	Kind Kind

	// Char is the offending character for UnexpectedChar and the wanted
	// character for ExpectedChar.
	Char byte

	// String is the wanted string for UnexpectedString.
	String string

	Offset int // absolute byte offset, 0-based
	Line   int // 1-based, set once the failure ends the parse
	Column int // 1-based, set once the failure ends the parse
}

// Error returns the error message.
func (e *Error) Error() string {
	where := fmt.Sprintf("line %d, column %d (offset %d)", e.Line, e.Column, e.Offset)
	switch e.Kind {
	case UnexpectedChar:
		return fmt.Sprintf("unexpected character %q at %s", e.Char, where)
	case ExpectedChar:
		return fmt.Sprintf("expected %q at %s", e.Char, where)
	case UnexpectedString:
		return fmt.Sprintf("expected %q at %s", e.String, where)
	}
	return fmt.Sprintf("%s at %s", e.Kind, where)
}

// failure records a failure at the cursor. Most failures are rolled back and
// forgotten, so the line and column are left for locate.
func (in *Input) failure(kind Kind) *Error {
	return &Error{
		Kind:   kind,
		Offset: in.pos,
	}
}

// locate fills in the line and column of a failure that ended the parse.
func (in *Input) locate(err *Error) {
	err.Line, err.Column = in.Position(err.Offset)
}

func (in *Input) unexpected() *Error {
	if in.available() == 0 {
		return in.failure(EndOfInput)
	}
	err := in.failure(UnexpectedChar)
	err.Char = in.at(0)
	return err
}
