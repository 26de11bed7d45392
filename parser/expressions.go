package parser

import (
	"fmt"

	"github.com/voidlang/void/ast"
	"github.com/voidlang/void/token"
)

// nextExpression parses a full expression, applying operator precedence
// fix-up to the resulting (possibly chained) operation tree.
func (p *Parser) nextExpression() (ast.Node, error) {
	left, err := p.nextUnary()
	if err != nil {
		return nil, err
	}
	return p.nextExpressionFrom(left)
}

// nextExpressionFrom continues expression parsing with left already parsed
// as the leading operand — used by statement parsing, which must commit to
// an identifier token before it knows whether it started an assignment or
// an expression.
func (p *Parser) nextExpressionFrom(left ast.Node) (ast.Node, error) {
	root := left
	for {
		t := p.cursor.Peek()
		if !t.Is(token.Operator) || !isBinaryOperator(t.Value) {
			break
		}
		p.cursor.Get()

		right, err := p.nextUnary()
		if err != nil {
			return nil, err
		}

		root = fixOperationTree(&ast.OperationNode{Left: root, Target: t.Value, Right: right})
	}
	return root, nil
}

func isBinaryOperator(op string) bool {
	_, ok := operationTable[op]
	if ok {
		return true
	}
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return true
	}
	return false
}

// nextUnary parses prefix side-operations (`++x`, `!x`, `-x`) and postfix
// ones (`x++`) around a primary expression.
func (p *Parser) nextUnary() (ast.Node, error) {
	t := p.cursor.Peek()
	if t.Is(token.Operator) && (t.Value == "!" || t.Value == "-" || t.Value == "++" || t.Value == "--") {
		p.cursor.Get()
		operand, err := p.nextUnary()
		if err != nil {
			return nil, err
		}
		return &ast.SideOperationNode{Target: t.Value, Operand: operand, Left: true}, nil
	}

	primary, err := p.nextPrimary()
	if err != nil {
		return nil, err
	}

	if p.cursor.Peek().Is(token.Operator) && (p.cursor.Peek().Value == "++" || p.cursor.Peek().Value == "--") {
		op := p.cursor.Get()
		return &ast.SideOperationNode{Target: op.Value, Operand: primary, Left: false}, nil
	}
	return primary, nil
}

// nextPrimary parses a literal, identifier-rooted expression (variable read,
// method call, index fetch), grouped expression, tuple, or `new` expression.
func (p *Parser) nextPrimary() (ast.Node, error) {
	t := p.cursor.Peek()

	switch {
	case t.IsAny(token.Integer, token.Float, token.String):
		p.cursor.Get()
		return &ast.ValueNode{Value: t}, nil

	case t.Is(token.Keyword) && t.Value == "new":
		return p.nextNew()

	case t.Is(token.Open) && t.Value == "(":
		return p.nextGroupOrTuple()

	case t.Is(token.Identifier):
		return p.nextIdentifierExpr()

	default:
		return nil, fmt.Errorf("%w: unexpected token in expression position: %s", ErrUnexpectedToken, t)
	}
}

func (p *Parser) nextGroupOrTuple() (ast.Node, error) {
	p.cursor.Get() // '('
	first, err := p.nextExpression()
	if err != nil {
		return nil, err
	}

	if p.cursor.Peek().Is(token.Comma) {
		members := []ast.Node{first}
		for p.cursor.Peek().Is(token.Comma) {
			p.cursor.Get()
			next, err := p.nextExpression()
			if err != nil {
				return nil, err
			}
			members = append(members, next)
		}
		if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
			return nil, err
		}
		return &ast.TupleNode{Members: members}, nil
	}

	if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
		return nil, err
	}
	return &ast.GroupNode{Value: first}, nil
}

func (p *Parser) nextNew() (ast.Node, error) {
	p.cursor.Get() // 'new'
	name, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}

	node := &ast.NewNode{Name: name.Value, ConstructKind: ast.ConstructDefault}

	if p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "(" {
		p.cursor.Get()
		for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == ")") {
			arg, err := p.nextExpression()
			if err != nil {
				return nil, err
			}
			node.Arguments = append(node.Arguments, arg)
			if p.cursor.Peek().Is(token.Comma) {
				p.cursor.Get()
				continue
			}
			break
		}
		if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
			return nil, err
		}
	}

	if p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "{" {
		init, kind, err := p.nextInitializator()
		if err != nil {
			return nil, err
		}
		node.Initializator = init
		node.ConstructKind = kind
	}

	return node, nil
}

// nextInitializator parses the `{ ... }` body of a `new` expression, which
// is either a struct-literal field list (`x: 1, y: 2`) or an abstract
// member override block (method declarations) — distinguished by whether
// the first token inside looks like `identifier :`.
func (p *Parser) nextInitializator() (ast.Node, ast.ConstructKind, error) {
	if _, err := p.cursor.GetLiteral(token.Open, "{"); err != nil {
		return nil, 0, err
	}

	isStruct := p.cursor.Peek().Is(token.Identifier) && p.cursor.At(p.cursor.Index()+1).Is(token.Colon)

	if isStruct {
		var members []ast.InitializatorMember
		for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == "}") {
			name, err := p.cursor.GetKind(token.Identifier)
			if err != nil {
				return nil, 0, err
			}
			if _, err := p.cursor.GetKind(token.Colon); err != nil {
				return nil, 0, err
			}
			value, err := p.nextExpression()
			if err != nil {
				return nil, 0, err
			}
			members = append(members, ast.InitializatorMember{Name: name.Value, Value: value})
			if p.cursor.Peek().Is(token.Comma) {
				p.cursor.Get()
				continue
			}
			break
		}
		if _, err := p.cursor.GetLiteral(token.Close, "}"); err != nil {
			return nil, 0, err
		}
		return &ast.InitializatorNode{Members: members}, ast.ConstructStruct, nil
	}

	var overrides []ast.Node
	for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == "}") && !p.cursor.AtEnd() {
		overrides = append(overrides, p.recoverable(p.nextTypeOrMethod))
	}
	if _, err := p.cursor.GetLiteral(token.Close, "}"); err != nil {
		return nil, 0, err
	}
	return &ast.TupleNode{Members: overrides}, ast.ConstructAbstract, nil
}

// nextIdentifierExpr parses a reference starting with an identifier: a bare
// variable read, an index fetch, or a (possibly qualified) method call.
func (p *Parser) nextIdentifierExpr() (ast.Node, error) {
	name, err := p.cursor.GetKind(token.Identifier)
	if err != nil {
		return nil, err
	}
	return p.nextIdentifierExprFrom(name)
}

func (p *Parser) nextIdentifierExprFrom(name token.Token) (ast.Node, error) {
	var target ast.Node = &ast.ValueNode{Value: name}

	for {
		switch {
		case p.cursor.Peek().Is(token.Dot):
			p.cursor.Get()
			member, err := p.cursor.GetKind(token.Identifier)
			if err != nil {
				return nil, err
			}
			if p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "(" {
				call, err := p.nextCallArguments(target, member.Value)
				if err != nil {
					return nil, err
				}
				target = call
				continue
			}
			target = &ast.MethodCallNode{Target: target, Name: member.Value}

		case p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "(":
			call, err := p.nextCallArguments(nil, name.Value)
			if err != nil {
				return nil, err
			}
			target = call

		case p.cursor.Peek().Is(token.Open) && p.cursor.Peek().Value == "[":
			p.cursor.Get()
			index, err := p.nextExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.cursor.GetLiteral(token.Close, "]"); err != nil {
				return nil, err
			}
			target = &ast.IndexFetchNode{Name: name.Value, Index: index}

		default:
			return target, nil
		}
	}
}

func (p *Parser) nextCallArguments(receiver ast.Node, name string) (ast.Node, error) {
	p.cursor.Get() // '('
	var args []ast.Node
	for !(p.cursor.Peek().Is(token.Close) && p.cursor.Peek().Value == ")") {
		arg, err := p.nextExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cursor.Peek().Is(token.Comma) {
			p.cursor.Get()
			continue
		}
		break
	}
	if _, err := p.cursor.GetLiteral(token.Close, ")"); err != nil {
		return nil, err
	}
	return &ast.MethodCallNode{Target: receiver, Name: name, Arguments: args}, nil
}
