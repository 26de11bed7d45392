package parser

import (
	"errors"
	"fmt"

	"github.com/voidlang/void/token"
)

// ErrUnexpectedToken is wrapped by every cursor assertion failure; callers
// can errors.Is against it without caring about the offending position.
var ErrUnexpectedToken = errors.New("unexpected token")

// ErrDisallowedModifier is wrapped by buildModifierMask when a recognized
// modifier word is used on a node kind that doesn't accept it (e.g. native
// on a field).
var ErrDisallowedModifier = errors.New("modifier not allowed here")

// ParseError is a recoverable syntax error: the parser records one of these
// as an ast.ErrorNode and resumes at the next statement/brace boundary
// instead of aborting the rest of the file.
type ParseError struct {
	At      token.Token
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error at %s: %s: %v", e.At, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error at %s: %s", e.At, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newParseError(at token.Token, cause error) *ParseError {
	return &ParseError{At: at, Message: "could not parse declaration", Cause: cause}
}
