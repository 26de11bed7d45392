package ast

import (
	"fmt"
	"strings"

	"github.com/voidlang/void/token"
)

// ValueNode holds a single literal or identifier token — the leaf of every
// expression tree.
type ValueNode struct {
	Value token.Token
}

func (*ValueNode) Kind() Kind { return Value }
func (n *ValueNode) Debug(depth int) string {
	return fmt.Sprintf("Value{%s}", n.Value)
}

// OperationNode is a binary operator applied to two operands, already
// rotated into canonical precedence/associativity shape by the parser (see
// parser.fixOperationTree).
type OperationNode struct {
	Left   Node
	Target string
	Right  Node
}

func (*OperationNode) Kind() Kind { return Operation }
func (n *OperationNode) Debug(depth int) string {
	return fmt.Sprintf("Operation{target=%s\n%s\n%s\n%s}",
		n.Target,
		debugChild(depth+1, "left", n.Left),
		debugChild(depth+1, "right", n.Right),
		indent(depth))
}

// JoinOperationNode chains a target expression against several children
// sharing the same operator (e.g. `a < b < c` style range checks), folded
// into one node instead of nested Operation pairs.
type JoinOperationNode struct {
	Target   Node
	Children []Node
}

func (*JoinOperationNode) Kind() Kind { return JoinOperation }
func (n *JoinOperationNode) Debug(depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "JoinOperation{%s\n", debugChild(depth+1, "target", n.Target))
	for _, c := range n.Children {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), c.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// SideOperationNode is a prefix/postfix unary operator (`++x`, `x--`, `!x`).
type SideOperationNode struct {
	Target  string
	Operand Node
	Left    bool // true when the operator precedes the operand (prefix)
}

func (*SideOperationNode) Kind() Kind { return SideOperation }
func (n *SideOperationNode) Debug(depth int) string {
	side := "right"
	if n.Left {
		side = "left"
	}
	return fmt.Sprintf("SideOperation{target=%s, side=%s, %s}", n.Target, side, debugChild(depth, "operand", n.Operand))
}

// GroupNode is a parenthesized sub-expression, kept distinct from its inner
// Value so precedence fix-up never reaches inside it.
type GroupNode struct {
	Value Node
}

func (*GroupNode) Kind() Kind { return Group }
func (n *GroupNode) Debug(depth int) string {
	return fmt.Sprintf("Group{%s}", debugChild(depth, "value", n.Value))
}

// TemplateNode holds a raw, un-substituted string-template token whose
// interpolation is resolved later by lowering, not by the parser.
type TemplateNode struct {
	Value token.Token
}

func (*TemplateNode) Kind() Kind { return Template }
func (n *TemplateNode) Debug(depth int) string {
	return fmt.Sprintf("Template{%s}", n.Value)
}

// LambdaNode is an anonymous function literal.
type LambdaNode struct {
	Parameters []Parameter
	Body       []Node
}

func (*LambdaNode) Kind() Kind { return Lambda }
func (n *LambdaNode) Debug(depth int) string {
	var b strings.Builder
	b.WriteString("Lambda{\n")
	for _, s := range n.Body {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), s.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// MethodCallNode invokes a (possibly qualified) method with arguments.
type MethodCallNode struct {
	Target    Node // receiver expression, nil for an unqualified call
	Name      string
	Arguments []Node
}

func (*MethodCallNode) Kind() Kind { return MethodCall }
func (n *MethodCallNode) Debug(depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MethodCall{name=%s, %s\n", n.Name, debugChild(depth+1, "target", n.Target))
	for _, a := range n.Arguments {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), a.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// IndexFetchNode reads `name[index]`.
type IndexFetchNode struct {
	Name  string
	Index Node
}

func (*IndexFetchNode) Kind() Kind { return IndexFetch }
func (n *IndexFetchNode) Debug(depth int) string {
	return fmt.Sprintf("IndexFetch{name=%s, %s}", n.Name, debugChild(depth, "index", n.Index))
}

// IndexAssignNode writes `name[index] = value`.
type IndexAssignNode struct {
	Name  string
	Index Node
	Value Node
}

func (*IndexAssignNode) Kind() Kind { return IndexAssign }
func (n *IndexAssignNode) Debug(depth int) string {
	return fmt.Sprintf("IndexAssign{name=%s, %s, %s}", n.Name,
		debugChild(depth, "index", n.Index), debugChild(depth, "value", n.Value))
}

// TupleNode groups several expressions produced/consumed together.
type TupleNode struct {
	Members []Node
}

func (*TupleNode) Kind() Kind { return Tuple }
func (n *TupleNode) Debug(depth int) string {
	var b strings.Builder
	b.WriteString("Tuple{\n")
	for _, m := range n.Members {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), m.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// ConstructKind distinguishes the three shapes a New expression may take.
type ConstructKind uint8

const (
	ConstructDefault  ConstructKind = iota // new Foo()
	ConstructStruct                        // new Bar { x: true, y: 2 }
	ConstructAbstract                      // new Baz() { @Override void foo() { } }
)

// NewNode constructs an instance of Name.
type NewNode struct {
	Name          string
	ConstructKind ConstructKind
	Arguments     []Node
	Initializator Node // InitializatorNode, or an abstract method body list; nil for ConstructDefault
}

func (*NewNode) Kind() Kind { return New }
func (n *NewNode) Debug(depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New{name=%s\n", n.Name)
	for _, a := range n.Arguments {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), a.Debug(depth+1))
	}
	if n.Initializator != nil {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), debugChild(depth+1, "initializator", n.Initializator))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// InitializatorNode is the `{ field: value, ... }` body of a struct-style
// New expression, keyed by field name in source order.
type InitializatorNode struct {
	Members utilsOrderedPairs
}

// utilsOrderedPairs avoids importing package utils from ast (utils has no
// AST dependency and shouldn't gain one just for this); a plain slice keeps
// insertion order without the extra import.
type utilsOrderedPairs = []InitializatorMember

// InitializatorMember is one `name: value` pair inside an Initializator.
type InitializatorMember struct {
	Name  string
	Value Node
}

func (*InitializatorNode) Kind() Kind { return Initializator }
func (n *InitializatorNode) Debug(depth int) string {
	var b strings.Builder
	b.WriteString("Initializator{\n")
	for _, m := range n.Members {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), debugChild(depth+1, m.Name, m.Value))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}
