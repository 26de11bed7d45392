// Package parser turns a flat token.Token stream into the ast.Node tree
// defined in package ast. It never panics on malformed input: a syntax
// error is recorded as an ast.ErrorNode and parsing resumes after the next
// statement terminator or closing brace (see Parser.recover).
package parser

import (
	"fmt"

	"github.com/voidlang/void/token"
)

// Cursor is a read-only, bounds-safe window over a token slice. It is the
// only way the rest of the package touches tokens; nothing mutates the
// slice once a Cursor is built.
type Cursor struct {
	tokens []token.Token
	index  int
}

// NewCursor wraps a token slice (normally ending in a token.Eof() sentinel).
func NewCursor(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// at returns the token at index, or the deterministic EOF sentinel once
// index runs past the end (spec.md §4.1).
func (c *Cursor) at(index int) token.Token {
	if index < 0 || index >= len(c.tokens) {
		return token.Eof()
	}
	return c.tokens[index]
}

// At is the exported equivalent of NodeParser::at — returns the token at an
// absolute index without touching the cursor position.
func (c *Cursor) At(index int) token.Token { return c.at(index) }

// Has reports whether index is within the token slice's bounds.
func (c *Cursor) Has(index int) bool { return index >= 0 && index < len(c.tokens) }

// Peek returns the current token without advancing the cursor.
func (c *Cursor) Peek() token.Token { return c.at(c.index) }

// PeekKind returns the current token, erroring if it doesn't have kind.
func (c *Cursor) PeekKind(kind token.Kind) (token.Token, error) {
	t := c.Peek()
	if !t.Is(kind) {
		return t, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedToken, kind, t)
	}
	return t, nil
}

// PeekAny returns the current token, erroring unless it matches one of kinds.
func (c *Cursor) PeekAny(kinds ...token.Kind) (token.Token, error) {
	t := c.Peek()
	if !t.IsAny(kinds...) {
		return t, fmt.Errorf("%w: expected one of %v, got %s", ErrUnexpectedToken, kinds, t)
	}
	return t, nil
}

// Get returns the current token and advances the cursor by one.
func (c *Cursor) Get() token.Token {
	t := c.at(c.index)
	c.index++
	return t
}

// GetKind advances the cursor, erroring if the consumed token isn't kind.
func (c *Cursor) GetKind(kind token.Kind) (token.Token, error) {
	t := c.Get()
	if !t.Is(kind) {
		return t, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedToken, kind, t)
	}
	return t, nil
}

// GetLiteral advances the cursor, erroring unless the consumed token matches
// both kind and literal value (used for keyword/operator spelling checks).
func (c *Cursor) GetLiteral(kind token.Kind, literal string) (token.Token, error) {
	t := c.Get()
	if !t.Is(kind) || t.Value != literal {
		return t, fmt.Errorf("%w: expected %s %q, got %s", ErrUnexpectedToken, kind, literal, t)
	}
	return t, nil
}

// GetAny advances the cursor, erroring unless the consumed token matches one
// of kinds.
func (c *Cursor) GetAny(kinds ...token.Kind) (token.Token, error) {
	t := c.Get()
	if !t.IsAny(kinds...) {
		return t, fmt.Errorf("%w: expected one of %v, got %s", ErrUnexpectedToken, kinds, t)
	}
	return t, nil
}

// Skip advances the cursor by amount tokens without returning them.
func (c *Cursor) Skip(amount int) { c.index += amount }

// Index returns the cursor's current absolute position.
func (c *Cursor) Index() int { return c.index }

// AtEnd reports whether the cursor has reached (or passed) the EOF token.
func (c *Cursor) AtEnd() bool { return c.Peek().Is(token.EOF) }
