package parser

import "github.com/voidlang/void/ast"
import "github.com/voidlang/void/token"

// parseType parses a (possibly generic, possibly array) type reference such
// as `Map<String, int[]>[]`.
func (p *Parser) parseType() (ast.TypeRef, error) {
	name, err := p.cursor.GetAny(token.Type, token.Identifier)
	if err != nil {
		return ast.TypeRef{}, err
	}

	ref := ast.TypeRef{Name: name.Value}

	if p.cursor.Peek().Is(token.Operator) && p.cursor.Peek().Value == "<" {
		generics, err := p.parseGenerics()
		if err != nil {
			return ast.TypeRef{}, err
		}
		ref.Generics = generics
	}

	if p.parseArrayDims() > 0 {
		ref.Array = true
	}

	return ref, nil
}

// parseGenerics parses the `<T, U, ...>` suffix of a generic type reference.
func (p *Parser) parseGenerics() ([]ast.TypeRef, error) {
	if _, err := p.cursor.GetLiteral(token.Operator, "<"); err != nil {
		return nil, err
	}

	var generics []ast.TypeRef
	for {
		ref, err := p.parseType()
		if err != nil {
			return nil, err
		}
		generics = append(generics, ref)

		if p.cursor.Peek().Is(token.Comma) {
			p.cursor.Get()
			continue
		}
		break
	}

	if _, err := p.cursor.GetLiteral(token.Operator, ">"); err != nil {
		return nil, err
	}
	return generics, nil
}

// parseGenericNames parses the bare `<T, U>` generic parameter list declared
// on a class or method (no bounds/types, just names).
func (p *Parser) parseGenericNames() ([]string, error) {
	if !p.cursor.Peek().Is(token.Operator) || p.cursor.Peek().Value != "<" {
		return nil, nil
	}
	p.cursor.Get()

	var names []string
	for {
		name, err := p.cursor.GetKind(token.Identifier)
		if err != nil {
			return nil, err
		}
		names = append(names, name.Value)

		if p.cursor.Peek().Is(token.Comma) {
			p.cursor.Get()
			continue
		}
		break
	}

	if _, err := p.cursor.GetLiteral(token.Operator, ">"); err != nil {
		return nil, err
	}
	return names, nil
}

// parseArrayDims consumes zero or more trailing `[]` pairs, returning how
// many dimensions were declared.
func (p *Parser) parseArrayDims() int {
	dims := 0
	for p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "[" &&
		p.cursor.At(p.cursor.Index()+1).Is(token.Close) && p.cursor.At(p.cursor.Index()+1).Value == "]" {
		p.cursor.Skip(2)
		dims++
	}
	return dims
}

// testVarargs reports whether the upcoming parameter declares a variadic
// tail (`...`), without consuming it.
func (p *Parser) testVarargs() bool {
	return p.cursor.Peek().Is(token.Operator) && p.cursor.Peek().Value == "..."
}
