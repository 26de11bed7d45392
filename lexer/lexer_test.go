package lexer

import (
	"testing"

	"github.com/voidlang/void/token"
)

func scan(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := New([]byte(source)).Scan()
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestScanAppendsDeterministicEof(t *testing.T) {
	tokens := scan(t, "")
	if len(tokens) != 1 {
		t.Fatalf("expected exactly the EOF sentinel for empty input, got %d tokens", len(tokens))
	}
	if tokens[0] != token.Eof() {
		t.Fatalf("expected the deterministic EOF sentinel, got %v", tokens[0])
	}
}

func TestScanClassifiesIdentifiersKeywordsAndTypes(t *testing.T) {
	tokens := scan(t, "public class Foo")
	if len(tokens) != 4 { // public, class, Foo, EOF
		t.Fatalf("expected 4 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != token.Keyword || tokens[0].Value != "public" {
		t.Fatalf("expected public to classify as a keyword, got %v", tokens[0])
	}
	if tokens[1].Kind != token.Keyword || tokens[1].Value != "class" {
		t.Fatalf("expected class to classify as a keyword, got %v", tokens[1])
	}
	if tokens[2].Kind != token.Identifier || tokens[2].Value != "Foo" {
		t.Fatalf("expected Foo to classify as an identifier, got %v", tokens[2])
	}
}

func TestScanClassifiesPrimitiveTypesSeparatelyFromIdentifiers(t *testing.T) {
	tokens := scan(t, "int x")
	if tokens[0].Kind != token.Type || tokens[0].Value != "int" {
		t.Fatalf("expected int to classify as a type, got %v", tokens[0])
	}
	if tokens[1].Kind != token.Identifier || tokens[1].Value != "x" {
		t.Fatalf("expected x to classify as an identifier, got %v", tokens[1])
	}
}

func TestScanOrdersFloatBeforeInt(t *testing.T) {
	tokens := scan(t, "3.14 42")
	if tokens[0].Kind != token.Float || tokens[0].Value != "3.14" {
		t.Fatalf("expected a whole float literal 3.14, got %v", tokens[0])
	}
	if tokens[1].Kind != token.Integer || tokens[1].Value != "42" {
		t.Fatalf("expected a plain integer literal 42, got %v", tokens[1])
	}
}

func TestScanStringLiteral(t *testing.T) {
	tokens := scan(t, `"hello world"`)
	if tokens[0].Kind != token.String || tokens[0].Value != `"hello world"` {
		t.Fatalf("expected a string literal, got %v", tokens[0])
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens := scan(t, "(a, b) { x = y + z; }")
	want := []token.Kind{
		token.Open, token.Identifier, token.Comma, token.Identifier, token.Close,
		token.Open, token.Identifier, token.Operator, token.Identifier, token.Operator,
		token.Identifier, token.Terminator, token.Close, token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), tokens)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected kind %s, got %s (%v)", i, want[i], got[i], tokens[i])
		}
	}
}

func TestScanVarargsOperator(t *testing.T) {
	tokens := scan(t, "...")
	if tokens[0].Kind != token.Operator || tokens[0].Value != "..." {
		t.Fatalf("expected the varargs operator to scan as a single OP token, got %v", tokens[0])
	}
}

func TestScanCommentsProduceNoTokens(t *testing.T) {
	tokens := scan(t, "// a comment\nint x")
	if len(tokens) != 3 { // int, x, EOF
		t.Fatalf("expected comments to be dropped, got %d tokens: %v", len(tokens), tokens)
	}
	if tokens[0].Line != 2 {
		t.Fatalf("expected int to be on line 2 after the comment's newline, got line %d", tokens[0].Line)
	}
}
