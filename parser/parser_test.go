package parser_test

import (
	"strings"
	"testing"

	"github.com/voidlang/void/ast"
	"github.com/voidlang/void/parser"
	"github.com/voidlang/void/token"
)

func tok(kind token.Kind, value string) token.Token {
	return token.New(kind, value, 1)
}

func TestCursorPeekGetSkip(t *testing.T) {
	c := parser.NewCursor([]token.Token{
		tok(token.Identifier, "a"),
		tok(token.Identifier, "b"),
	})

	if c.Peek().Value != "a" {
		t.Fatalf("expected peek to return 'a' without advancing")
	}
	if got := c.Get(); got.Value != "a" {
		t.Fatalf("expected get to return 'a', got %q", got.Value)
	}
	if c.Peek().Value != "b" {
		t.Fatalf("expected cursor to have advanced to 'b'")
	}
}

func TestCursorPastEndReturnsDeterministicEof(t *testing.T) {
	c := parser.NewCursor([]token.Token{tok(token.Identifier, "a")})
	c.Get()
	first := c.Get()
	second := c.Get()
	if !first.Is(token.EOF) || !second.Is(token.EOF) || first != second {
		t.Fatalf("expected reading past the end to deterministically return EOF, got %v and %v", first, second)
	}
}

func TestCursorGetKindMismatchErrors(t *testing.T) {
	c := parser.NewCursor([]token.Token{tok(token.Integer, "1")})
	if _, err := c.GetKind(token.Identifier); err == nil {
		t.Fatalf("expected a kind mismatch to error")
	}
}

// buildTokens appends a deterministic EOF sentinel, mirroring lexer.Scan.
func buildTokens(toks ...token.Token) []token.Token {
	return append(toks, token.Eof())
}

func TestParsePackageAndImport(t *testing.T) {
	toks := buildTokens(
		tok(token.Keyword, "package"), tok(token.Identifier, "demo"), tok(token.Terminator, ";"),
		tok(token.Keyword, "import"), tok(token.Identifier, "std"), tok(token.Dot, "."), tok(token.Identifier, "io"), tok(token.Terminator, ";"),
	)

	nodes := parser.New(toks).ParseAll()
	if len(nodes) != 3 { // package, import, finish
		t.Fatalf("expected 3 nodes, got %d: %+v", len(nodes), nodes)
	}
	pkg, ok := nodes[0].(*ast.PackageNode)
	if !ok || pkg.Name != "demo" {
		t.Fatalf("expected PackageNode{demo}, got %#v", nodes[0])
	}
	imp, ok := nodes[1].(*ast.ImportNode)
	if !ok || imp.Path != "std.io" {
		t.Fatalf("expected ImportNode{std.io}, got %#v", nodes[1])
	}
	if _, ok := nodes[2].(*ast.FinishNode); !ok {
		t.Fatalf("expected trailing FinishNode, got %#v", nodes[2])
	}
}

func TestParseFieldWithInitializer(t *testing.T) {
	// int x = 1;
	toks := buildTokens(
		tok(token.Type, "int"), tok(token.Identifier, "x"),
		tok(token.Operator, "="), tok(token.Integer, "1"), tok(token.Terminator, ";"),
	)
	nodes := parser.New(toks).ParseAll()
	field, ok := nodes[0].(*ast.FieldNode)
	if !ok {
		t.Fatalf("expected FieldNode, got %#v", nodes[0])
	}
	if field.Name != "x" || field.Type.Name != "int" {
		t.Fatalf("unexpected field shape: %#v", field)
	}
	val, ok := field.Value.(*ast.ValueNode)
	if !ok || val.Value.Value != "1" {
		t.Fatalf("expected initial value 1, got %#v", field.Value)
	}
}

func TestMalformedDeclarationRecordsErrorNodeAndRecovers(t *testing.T) {
	// First field is malformed (missing name), second is fine.
	toks := buildTokens(
		tok(token.Type, "int"), tok(token.Operator, "="), tok(token.Terminator, ";"),
		tok(token.Type, "int"), tok(token.Identifier, "y"), tok(token.Terminator, ";"),
	)
	nodes := parser.New(toks).ParseAll()
	if _, ok := nodes[0].(*ast.ErrorNode); !ok {
		t.Fatalf("expected first node to be an ErrorNode, got %#v", nodes[0])
	}
	field, ok := nodes[1].(*ast.FieldNode)
	if !ok || field.Name != "y" {
		t.Fatalf("expected parsing to recover and parse field y, got %#v", nodes[1])
	}
}

func TestNativeModifierRejectedOnField(t *testing.T) {
	// `native int x;` — native is only recognized on methods.
	toks := buildTokens(
		tok(token.Keyword, "native"), tok(token.Type, "int"), tok(token.Identifier, "x"), tok(token.Terminator, ";"),
	)
	nodes := parser.New(toks).ParseAll()
	errNode, ok := nodes[0].(*ast.ErrorNode)
	if !ok {
		t.Fatalf("expected an ErrorNode for a disallowed modifier, got %#v", nodes[0])
	}
	if !strings.Contains(errNode.Message, "native") {
		t.Fatalf("expected the error to name the offending modifier, got %q", errNode.Message)
	}
}

func TestVolatileModifierRejectedOnClass(t *testing.T) {
	// `volatile class Foo {}` — volatile is only recognized on fields.
	toks := buildTokens(
		tok(token.Keyword, "volatile"), tok(token.Keyword, "class"), tok(token.Identifier, "Foo"),
		tok(token.Open, "{"), tok(token.Close, "}"),
	)
	nodes := parser.New(toks).ParseAll()
	if _, ok := nodes[0].(*ast.ErrorNode); !ok {
		t.Fatalf("expected an ErrorNode for a disallowed modifier, got %#v", nodes[0])
	}
}

func TestFixOperationTreePrecedence(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3), not (1 + 2) * 3.
	toks := buildTokens(
		tok(token.Type, "int"), tok(token.Identifier, "x"), tok(token.Operator, "="),
		tok(token.Integer, "1"), tok(token.Operator, "+"), tok(token.Integer, "2"), tok(token.Operator, "*"), tok(token.Integer, "3"),
		tok(token.Terminator, ";"),
	)
	nodes := parser.New(toks).ParseAll()
	decl, ok := nodes[0].(*ast.LocalDeclareAssignNode)
	if !ok {
		t.Fatalf("expected LocalDeclareAssignNode, got %#v", nodes[0])
	}
	top, ok := decl.Value.(*ast.OperationNode)
	if !ok || top.Target != "+" {
		t.Fatalf("expected top-level '+' operation, got %#v", decl.Value)
	}
	right, ok := top.Right.(*ast.OperationNode)
	if !ok || right.Target != "*" {
		t.Fatalf("expected right side to be the '*' operation, got %#v", top.Right)
	}
}

func TestFixOperationTreeRightAssociativeEqualPrecedence(t *testing.T) {
	// 2 ^ 3 ^ 2 should bind as 2 ^ (3 ^ 2), not (2 ^ 3) ^ 2.
	toks := buildTokens(
		tok(token.Type, "int"), tok(token.Identifier, "x"), tok(token.Operator, "="),
		tok(token.Integer, "2"), tok(token.Operator, "^"), tok(token.Integer, "3"), tok(token.Operator, "^"), tok(token.Integer, "2"),
		tok(token.Terminator, ";"),
	)
	nodes := parser.New(toks).ParseAll()
	decl, ok := nodes[0].(*ast.FieldNode)
	if !ok {
		t.Fatalf("expected FieldNode, got %#v", nodes[0])
	}
	top, ok := decl.Value.(*ast.OperationNode)
	if !ok || top.Target != "^" {
		t.Fatalf("expected top-level '^' operation, got %#v", decl.Value)
	}
	if _, ok := top.Left.(*ast.ValueNode); !ok {
		t.Fatalf("expected left side to stay the literal 2, got %#v", top.Left)
	}
	right, ok := top.Right.(*ast.OperationNode)
	if !ok || right.Target != "^" {
		t.Fatalf("expected right side to be the nested '^' operation, got %#v", top.Right)
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	// void m() { if (x) { return; } else if (y) { return; } else { return; } }
	toks := buildTokens(
		tok(token.Type, "void"), tok(token.Identifier, "m"), tok(token.Open, "("), tok(token.Close, ")"),
		tok(token.Open, "{"),
		tok(token.Keyword, "if"), tok(token.Open, "("), tok(token.Identifier, "x"), tok(token.Close, ")"),
		tok(token.Open, "{"), tok(token.Keyword, "return"), tok(token.Terminator, ";"), tok(token.Close, "}"),
		tok(token.Keyword, "else"), tok(token.Keyword, "if"), tok(token.Open, "("), tok(token.Identifier, "y"), tok(token.Close, ")"),
		tok(token.Open, "{"), tok(token.Keyword, "return"), tok(token.Terminator, ";"), tok(token.Close, "}"),
		tok(token.Keyword, "else"),
		tok(token.Open, "{"), tok(token.Keyword, "return"), tok(token.Terminator, ";"), tok(token.Close, "}"),
		tok(token.Close, "}"),
	)

	nodes := parser.New(toks).ParseAll()
	method, ok := nodes[0].(*ast.MethodNode)
	if !ok {
		t.Fatalf("expected MethodNode, got %#v", nodes[0])
	}
	ifNode, ok := method.Body[0].(*ast.IfNode)
	if !ok {
		t.Fatalf("expected IfNode, got %#v", method.Body[0])
	}
	if len(ifNode.Chain) != 2 {
		t.Fatalf("expected an ElseIf and an Else, got %d chain entries", len(ifNode.Chain))
	}
	if _, ok := ifNode.Chain[0].(*ast.ElseIfNode); !ok {
		t.Fatalf("expected first chain entry to be ElseIf, got %#v", ifNode.Chain[0])
	}
	if _, ok := ifNode.Chain[1].(*ast.ElseNode); !ok {
		t.Fatalf("expected second chain entry to be Else, got %#v", ifNode.Chain[1])
	}
}
