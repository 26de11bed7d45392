package token_test

import (
	"testing"

	"github.com/voidlang/void/token"
)

func TestEofIsDeterministic(t *testing.T) {
	a, b := token.Eof(), token.Eof()
	if a != b {
		t.Fatalf("expected two Eof() calls to be equal, got %v vs %v", a, b)
	}
	if !a.Is(token.EOF) {
		t.Fatalf("expected Eof() to carry the EOF kind")
	}
}

func TestIsAny(t *testing.T) {
	tok := token.New(token.Operator, "+", 1)

	if !tok.IsAny(token.Integer, token.Operator) {
		t.Fatalf("expected IsAny to match when one kind matches")
	}
	if tok.IsAny(token.Integer, token.String) {
		t.Fatalf("expected IsAny to reject when no kind matches")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Identifier: "IDENTIFIER",
		token.Integer:    "INTEGER",
		token.Keyword:    "KEYWORD",
		token.Kind(99):   "UNKNOWN",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
