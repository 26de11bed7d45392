package parser

import (
	"github.com/voidlang/void/ast"
	"github.com/voidlang/void/token"
)

// Parser drives a Cursor to produce top-level ast.Node declarations one at
// a time, the way a caller would pull them off a file.
type Parser struct {
	cursor *Cursor
}

// New builds a Parser over tokens (normally lexer.Scan's output).
func New(tokens []token.Token) *Parser {
	return &Parser{cursor: NewCursor(tokens)}
}

// ParseAll drains the parser to a slice of top-level nodes, stopping once a
// FinishNode is produced. ParseErrors are recorded as ast.ErrorNode values
// inline rather than aborting the rest of the file.
func (p *Parser) ParseAll() []ast.Node {
	var nodes []ast.Node
	for {
		n := p.Next()
		if _, ok := n.(*ast.FinishNode); ok {
			nodes = append(nodes, n)
			return nodes
		}
		nodes = append(nodes, n)
	}
}

// Next parses the next top-level declaration: a package clause, an import,
// or a (possibly modified) type/method/field declaration.
func (p *Parser) Next() ast.Node {
	if p.cursor.AtEnd() {
		return &ast.FinishNode{}
	}

	t := p.cursor.Peek()
	if t.Is(token.Keyword) {
		switch t.Value {
		case "package":
			return p.recoverable(p.nextPackage)
		case "import":
			return p.recoverable(p.nextImport)
		}
	}

	return p.recoverable(p.nextTypeOrMethod)
}

// recoverable runs fn and turns any error into an ast.ErrorNode, resuming
// the cursor at the next statement/brace boundary so the rest of the file
// still has a chance to parse (spec.md §7: ParseError is recoverable).
func (p *Parser) recoverable(fn func() (ast.Node, error)) ast.Node {
	before := p.cursor.Index()
	n, err := fn()
	if err == nil {
		return n
	}

	at := p.cursor.At(before)
	p.recover()
	return &ast.ErrorNode{Message: err.Error(), At: at}
}

// recover advances the cursor to the next token.Terminator or closing brace
// it finds, so a malformed statement doesn't poison the rest of the block.
func (p *Parser) recover() {
	depth := 0
	for !p.cursor.AtEnd() {
		t := p.cursor.Get()
		switch {
		case t.Is(token.Open) && t.Value == "{":
			depth++
		case t.Is(token.Close) && t.Value == "}":
			if depth == 0 {
				return
			}
			depth--
		case t.Is(token.Terminator) && depth == 0:
			return
		}
	}
}

func (p *Parser) nextPackage() (ast.Node, error) {
	if _, err := p.cursor.GetLiteral(token.Keyword, "package"); err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return &ast.PackageNode{Name: name}, nil
}

func (p *Parser) nextImport() (ast.Node, error) {
	if _, err := p.cursor.GetLiteral(token.Keyword, "import"); err != nil {
		return nil, err
	}
	path, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return &ast.ImportNode{Path: path}, nil
}

// parseQualifiedName parses a dotted identifier chain (`a.b.c`).
func (p *Parser) parseQualifiedName() (string, error) {
	first, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return "", err
	}
	name := first.Value
	for p.cursor.Peek().Is(token.Dot) {
		p.cursor.Get()
		part, err := p.cursor.GetKind(token.Identifier)
		if err != nil {
			return "", err
		}
		name += "." + part.Value
	}
	return name, nil
}

var typeKeywords = map[string]ast.Kind{
	"class":      ast.Class,
	"struct":     ast.Struct,
	"enum":       ast.Enum,
	"interface":  ast.Interface,
	"annotation": ast.Annotation,
}

// nextTypeOrMethod parses a leading modifier list, then dispatches to a
// type declaration, a method declaration, or a field declaration based on
// the next keyword/shape. The modifier words are validated against the
// recognized set for whichever of those three kinds is actually parsed,
// since that isn't known until after the words themselves are read.
func (p *Parser) nextTypeOrMethod() (ast.Node, error) {
	words := p.parseModifierWords()

	t := p.cursor.Peek()
	if t.Is(token.Keyword) {
		if kind, ok := typeKeywords[t.Value]; ok {
			return p.nextClassLike(kind, words)
		}
	}

	return p.nextContent(words)
}

func (p *Parser) nextClassLike(kind ast.Kind, words []token.Token) (ast.Node, error) {
	mask, err := buildModifierMask(words, classDecl)
	if err != nil {
		return nil, err
	}

	p.cursor.Get() // consume the class/struct/enum/interface/annotation keyword

	name, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}

	node := &ast.ClassLikeNode{NodeKind: kind, Modifiers: mask, Name: name.Value}

	if generics, err := p.parseGenericNames(); err != nil {
		return nil, err
	} else {
		node.Generics = generics
	}

	if p.cursor.Peek().Is(token.Keyword) && p.cursor.Peek().Value == "extends" {
		p.cursor.Get()
		ref, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node.Extends = append(node.Extends, ref)
	}

	if p.cursor.Peek().Is(token.Keyword) && p.cursor.Peek().Value == "implements" {
		p.cursor.Get()
		for {
			ref, err := p.parseType()
			if err != nil {
				return nil, err
			}
			node.Implements = append(node.Implements, ref)
			if p.cursor.Peek().Is(token.Comma) {
				p.cursor.Get()
				continue
			}
			break
		}
	}

	if _, err := p.cursor.GetLiteral(token.Open, "{"); err != nil {
		return nil, err
	}

	for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == "}") && !p.cursor.AtEnd() {
		node.Members = append(node.Members, p.recoverable(func() (ast.Node, error) {
			return p.nextTypeOrMethod()
		}))
	}

	if _, err := p.cursor.GetLiteral(token.Close, "}"); err != nil {
		return nil, err
	}

	return node, nil
}

// nextContent parses a method or field declaration once a type/method
// keyword has already been ruled out: `<type> name(` is a method, anything
// else ending in `;` (or `, name2, ...;`) is a field or multi-field.
func (p *Parser) nextContent(words []token.Token) (ast.Node, error) {
	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	name, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}

	if p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "(" {
		return p.nextMethod(words, returnType, name.Value)
	}

	return p.nextField(words, returnType, name.Value)
}

func (p *Parser) nextMethod(words []token.Token, returnType ast.TypeRef, name string) (ast.Node, error) {
	mask, err := buildModifierMask(words, methodDecl)
	if err != nil {
		return nil, err
	}

	if _, err := p.cursor.GetLiteral(token.Open, "("); err != nil {
		return nil, err
	}

	var params []ast.Parameter
	for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == ")") {
		variadic := p.testVarargs()
		if variadic {
			p.cursor.Get()
		}
		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		paramName, err := p.cursor.GetKind(token.Identifier)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Parameter{Type: paramType, Name: paramName.Value, Variadic: variadic})

		if p.cursor.Peek().Is(token.Comma) {
			p.cursor.Get()
			continue
		}
		break
	}
	if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
		return nil, err
	}

	node := &ast.MethodNode{Modifiers: mask, Name: name, Parameters: params, Return: returnType}

	// Abstract/native methods have no body, just a terminator.
	if p.cursor.Peek().Is(token.Terminator) {
		p.cursor.Get()
		return node, nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) nextField(words []token.Token, fieldType ast.TypeRef, name string) (ast.Node, error) {
	mask, err := buildModifierMask(words, fieldDecl)
	if err != nil {
		return nil, err
	}

	names := []string{name}
	for p.cursor.Peek().Is(token.Comma) {
		p.cursor.Get()
		next, err := p.cursor.GetKind(token.Identifier)
		if err != nil {
			return nil, err
		}
		names = append(names, next.Value)
	}

	if len(names) > 1 {
		if _, err := p.cursor.GetKind(token.Terminator); err != nil {
			return nil, err
		}
		return &ast.MultiFieldNode{Modifiers: mask, Type: fieldType, Names: names}, nil
	}

	field := &ast.FieldNode{Modifiers: mask, Type: fieldType, Name: name}
	if p.cursor.Peek().Is(token.Operator) && p.cursor.Peek().Value == "=" {
		p.cursor.Get()
		value, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		field.Value = value
	}

	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return field, nil
}

// parseBlock parses a `{ ... }` sequence of statements.
func (p *Parser) parseBlock() ([]ast.Node, error) {
	if _, err := p.cursor.GetLiteral(token.Open, "{"); err != nil {
		return nil, err
	}

	var stmts []ast.Node
	for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == "}") && !p.cursor.AtEnd() {
		stmts = append(stmts, p.recoverable(p.nextStatement))
	}

	if _, err := p.cursor.GetLiteral(token.Close, "}"); err != nil {
		return nil, err
	}
	return stmts, nil
}
