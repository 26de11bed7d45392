package parser

import (
	"fmt"

	"github.com/voidlang/void/ast"
	"github.com/voidlang/void/token"
)

// nextStatement parses a single statement inside a method/lambda body.
func (p *Parser) nextStatement() (ast.Node, error) {
	t := p.cursor.Peek()

	if t.Is(token.Keyword) {
		switch t.Value {
		case "return":
			return p.nextReturn()
		case "defer":
			return p.nextDefer()
		case "if":
			return p.nextIf()
		case "while":
			return p.nextWhile()
		case "do":
			return p.nextDoWhile()
		case "for":
			return p.nextFor()
		case "each":
			return p.nextForEach()
		}
	}

	if t.Is(token.Type) || (t.Is(token.Identifier) && p.looksLikeLocalDeclare()) {
		return p.nextLocalDeclaration()
	}

	if t.Is(token.Identifier) {
		return p.nextLocalAssignmentOrExpression()
	}

	expr, err := p.nextExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return expr, nil
}

// looksLikeLocalDeclare performs a bounded lookahead to distinguish
// `Identifier name = ...;` (a local declaration using a user type) from a
// bare expression statement starting with an identifier.
func (p *Parser) looksLikeLocalDeclare() bool {
	i := p.cursor.Index()
	t1 := p.cursor.At(i + 1)
	return t1.Is(token.Identifier)
}

func (p *Parser) nextLocalDeclaration() (ast.Node, error) {
	declType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	first, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}

	if p.cursor.Peek().Is(token.Comma) {
		names := []string{first.Value}
		for p.cursor.Peek().Is(token.Comma) {
			p.cursor.Get()
			n, err := p.cursor.GetKind(token.Identifier)
			if err != nil {
				return nil, err
			}
			names = append(names, n.Value)
		}
		if _, err := p.cursor.GetKind(token.Terminator); err != nil {
			return nil, err
		}
		return &ast.MultiLocalDeclareNode{Type: declType, Names: names}, nil
	}

	if p.cursor.Peek().Is(token.Operator) && p.cursor.Peek().Value == "=" {
		p.cursor.Get()
		value, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.cursor.GetKind(token.Terminator); err != nil {
			return nil, err
		}
		return &ast.LocalDeclareAssignNode{Type: declType, Name: first.Value, Value: value}, nil
	}

	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return &ast.LocalDeclareNode{Type: declType, Name: first.Value}, nil
}

// nextLocalAssignmentOrExpression disambiguates `name = value;` and
// `name[i] = value;` assignments from a bare expression statement (a call
// like `foo();`). It requires a leading identifier; a destructuring
// statement such as `(a, b) = pair();` is not parsed by it, and no other
// statement path produces a LocalDeclareDestructureNode either.
func (p *Parser) nextLocalAssignmentOrExpression() (ast.Node, error) {
	name, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}

	if p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "[" {
		p.cursor.Get()
		index, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.cursor.GetLiteral(token.Close, "]"); err != nil {
			return nil, err
		}
		if p.cursor.Peek().Is(token.Operator) && p.cursor.Peek().Value == "=" {
			p.cursor.Get()
			value, err := p.nextExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.cursor.GetKind(token.Terminator); err != nil {
				return nil, err
			}
			return &ast.IndexAssignNode{Name: name.Value, Index: index, Value: value}, nil
		}
		if _, err := p.cursor.GetKind(token.Terminator); err != nil {
			return nil, err
		}
		return &ast.IndexFetchNode{Name: name.Value, Index: index}, nil
	}

	if p.cursor.Peek().Is(token.Operator) && p.cursor.Peek().Value == "=" {
		p.cursor.Get()
		value, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.cursor.GetKind(token.Terminator); err != nil {
			return nil, err
		}
		return &ast.LocalAssignNode{Name: name.Value, Value: value}, nil
	}

	// Not an assignment: the cursor already consumed `name`, so resolve any
	// call/dot/index suffix first, then continue into the operator loop.
	primary, err := p.nextIdentifierExprFrom(name)
	if err != nil {
		return nil, err
	}
	expr, err := p.nextExpressionFrom(primary)
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) nextReturn() (ast.Node, error) {
	p.cursor.Get() // 'return'
	if p.cursor.Peek().Is(token.Terminator) {
		p.cursor.Get()
		return &ast.ReturnNode{}, nil
	}
	value, err := p.nextExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return &ast.ReturnNode{Value: value}, nil
}

func (p *Parser) nextDefer() (ast.Node, error) {
	p.cursor.Get() // 'defer'
	instruction, err := p.nextStatement()
	if err != nil {
		return nil, err
	}
	return &ast.DeferNode{Instruction: instruction}, nil
}

func (p *Parser) parseParenCondition() (ast.Node, error) {
	if _, err := p.cursor.GetLiteral(token.Open, "("); err != nil {
		return nil, err
	}
	cond, err := p.nextExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) nextIf() (ast.Node, error) {
	p.cursor.Get() // 'if'
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.IfNode{Condition: cond, Body: body}
	for p.cursor.Peek().Is(token.Keyword) && p.cursor.Peek().Value == "else" {
		p.cursor.Get()
		if p.cursor.Peek().Is(token.Keyword) && p.cursor.Peek().Value == "if" {
			p.cursor.Get()
			branchCond, err := p.parseParenCondition()
			if err != nil {
				return nil, err
			}
			branchBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Chain = append(node.Chain, &ast.ElseIfNode{Condition: branchCond, Body: branchBody})
			continue
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Chain = append(node.Chain, &ast.ElseNode{Body: elseBody})
		break
	}
	return node, nil
}

func (p *Parser) nextWhile() (ast.Node, error) {
	p.cursor.Get() // 'while'
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileNode{Condition: cond, Body: body}, nil
}

func (p *Parser) nextDoWhile() (ast.Node, error) {
	p.cursor.Get() // 'do'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetLiteral(token.Keyword, "while"); err != nil {
		return nil, err
	}
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}
	return &ast.DoWhileNode{Body: body, Condition: cond}, nil
}

func (p *Parser) nextFor() (ast.Node, error) {
	p.cursor.Get() // 'for'
	if _, err := p.cursor.GetLiteral(token.Open, "("); err != nil {
		return nil, err
	}

	node := &ast.ForNode{}

	if !p.cursor.Peek().Is(token.Terminator) {
		init, err := p.nextStatement() // consumes its own ';'
		if err != nil {
			return nil, err
		}
		node.Init = init
	} else {
		p.cursor.Get()
	}

	if !p.cursor.Peek().Is(token.Terminator) {
		cond, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		node.Condition = cond
	}
	if _, err := p.cursor.GetKind(token.Terminator); err != nil {
		return nil, err
	}

	if !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == ")") {
		update, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		node.Update = update
	}
	if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) nextForEach() (ast.Node, error) {
	p.cursor.Get() // 'each'
	if _, err := p.cursor.GetLiteral(token.Open, "("); err != nil {
		return nil, err
	}
	name, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}
	// "in" is a contextual keyword: the lexer has no reserved-word entry for
	// it, so it always arrives tagged Identifier.
	if in := p.cursor.Get(); in.Value != "in" {
		return nil, fmt.Errorf("%w: expected 'in', got %s", ErrUnexpectedToken, in)
	}
	iterable, err := p.nextExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForEachNode{Name: name.Value, Iterable: iterable, Body: body}, nil
}
