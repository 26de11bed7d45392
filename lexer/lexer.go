// Package lexer is a reference implementation of the external token source
// the parser is specified against (spec.md marks the concrete lexer as an
// external collaborator, specified only by the token.Token contract). It
// exists so the rest of the toolchain is runnable end to end and so parser
// tests can be fed real source text instead of hand-built token slices.
//
// It drives goparsec's token-level combinators (the same leaf parsers the
// teacher assembles into a full AST-combinator grammar in its jack/vm
// parsing.go) directly in a scan loop, rather than via the AST/OrdChoice
// builder: the parser package needs a flat token slice with an explicit
// cursor, not a parsed tree.
package lexer

import (
	"fmt"
	"strings"

	pc "github.com/prataprc/goparsec"

	"github.com/voidlang/void/token"
)

// keywords recognized by the language (spec.md §6 and §4.3).
var keywords = map[string]bool{
	"package": true, "import": true,
	"class": true, "struct": true, "enum": true, "interface": true,
	"extends": true, "implements": true,
	"return": true, "defer": true, "new": true,
	"if": true, "else": true, "while": true, "do": true, "for": true, "each": true,
	"true": true, "false": true, "null": true,
	"public": true, "private": true, "protected": true, "static": true, "final": true,
	"abstract": true, "native": true, "synchronized": true, "default": true,
	"volatile": true, "transient": true,
}

// primitive type names, tagged token.Type rather than token.Identifier.
var primitiveTypes = map[string]bool{
	"void": true, "int": true, "long": true, "float": true, "double": true,
	"bool": true, "byte": true, "short": true, "char": true, "var": true,
}

var ast = pc.NewAST("void_tokens", 100)

var (
	pIdent   = pc.Token(`[A-Za-z_][0-9a-zA-Z_]*`, "IDENT")
	pString  = pc.Token(`"(?:\\.|[^"\\])*"`, "STRING")
	pComment = pc.Token(`//[^\n]*`, "COMMENT")

	pPunct = ast.OrdChoice("punct", nil,
		pc.Atom("(", "LPAREN"), pc.Atom(")", "RPAREN"),
		pc.Atom("{", "LBRACE"), pc.Atom("}", "RBRACE"),
		pc.Atom("[", "LBRACK"), pc.Atom("]", "RBRACK"),
		pc.Atom(",", "COMMA"), pc.Atom(";", "SEMI"), pc.Atom(":", "COLON"), pc.Atom(".", "DOT"),
	)

	pOperator = ast.OrdChoice("operator", nil,
		pc.Atom("...", "OP"),
		pc.Atom("==", "OP"), pc.Atom("!=", "OP"), pc.Atom("<=", "OP"), pc.Atom(">=", "OP"),
		pc.Atom("&&", "OP"), pc.Atom("||", "OP"), pc.Atom("++", "OP"), pc.Atom("--", "OP"),
		pc.Atom("^", "OP"), pc.Atom("%", "OP"), pc.Atom("*", "OP"), pc.Atom("/", "OP"),
		pc.Atom("+", "OP"), pc.Atom("-", "OP"), pc.Atom("!", "OP"), pc.Atom("<", "OP"),
		pc.Atom(">", "OP"), pc.Atom("=", "OP"),
	)

	// Order matters twice over: Float before Int (see the teacher's pLiteral
	// comment in pkg/jack/parsing.go — Int() would otherwise swallow the
	// integer part of a float literal before Float() gets a chance to run),
	// and pOperator before pPunct — pPunct's single "." alternative would
	// otherwise win on the first character of "..." before the longer
	// varargs operator ever gets tried.
	pLexeme = ast.OrdChoice("lexeme", nil, pComment, pc.Float(), pc.Int(), pString, pIdent, pOperator, pPunct)

	pStream = ast.Kleene("stream", nil, pLexeme)
)

// Lexer scans source bytes into a flat token.Token slice.
type Lexer struct{ source []byte }

// New returns a Lexer over the given source bytes.
func New(source []byte) Lexer { return Lexer{source: source} }

// Scan tokenizes the full source and appends a deterministic token.EOF
// sentinel, matching the parser's "reading past the end returns an
// end-of-file token deterministically" contract (spec.md §4.1).
func (l Lexer) Scan() ([]token.Token, error) {
	root, _ := ast.Parsewith(pStream, pc.NewScanner(l.source))
	if root == nil {
		return nil, fmt.Errorf("lexer: unable to tokenize input")
	}

	tokens := make([]token.Token, 0, len(root.GetChildren())+1)
	cursor := 0
	line := uint(1)

	for _, child := range root.GetChildren() {
		value := child.GetValue()

		// goparsec's scanner silently skips whitespace (including newlines)
		// between matches, so it never reaches this loop as its own node;
		// re-locate the token in the source to fold those skipped newlines
		// into the running line count before counting the token's own.
		if idx := strings.Index(string(l.source[cursor:]), value); idx >= 0 {
			line += countNewlines(l.source[cursor : cursor+idx])
			cursor += idx
		}
		startLine := line
		line += countNewlines([]byte(value))
		cursor += len(value)

		kind, ok := classify(child.GetName(), value)
		if !ok {
			continue // comments carry no token
		}

		tokens = append(tokens, token.New(kind, value, startLine))
	}

	tokens = append(tokens, token.Eof())
	return tokens, nil
}

func countNewlines(s []byte) uint {
	var n uint
	for _, b := range s {
		if b == '\n' {
			n++
		}
	}
	return n
}

// classify maps a goparsec leaf node name/value pair to a token.Kind. Returns
// ok=false for nodes that produce no token (comments).
func classify(name, value string) (token.Kind, bool) {
	switch name {
	case "COMMENT":
		return 0, false
	case "FLOAT":
		return token.Float, true
	case "INT":
		return token.Integer, true
	case "STRING":
		return token.String, true
	case "IDENT":
		if keywords[value] {
			return token.Keyword, true
		}
		if primitiveTypes[value] {
			return token.Type, true
		}
		return token.Identifier, true
	case "LPAREN", "LBRACE", "LBRACK":
		return token.Open, true
	case "RPAREN", "RBRACE", "RBRACK":
		return token.Close, true
	case "COMMA":
		return token.Comma, true
	case "DOT":
		return token.Dot, true
	case "SEMI":
		return token.Terminator, true
	case "COLON":
		return token.Colon, true
	case "OP":
		return token.Operator, true
	default:
		return 0, false
	}
}
