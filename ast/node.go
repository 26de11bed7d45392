// Package ast defines the closed taxonomy of nodes produced by the parser.
// Every node kind named in the language's grammar has exactly one Go type
// here; parser.Parser only ever returns (possibly nested) values of these
// types, and vm/codegen-style consumers type-switch over Kind to lower them.
package ast

import (
	"fmt"
	"strings"

	"github.com/voidlang/void/token"
)

// Kind tags which concrete node type a Node value holds.
type Kind uint8

const (
	ModifierList Kind = iota
	ModifierBlock
	Method
	Field
	MultiField
	Package
	Import
	Class
	Struct
	TupleStruct
	Enum
	Interface
	Annotation
	LocalDeclare
	MultiLocalDeclare
	LocalDeclareAssign
	LocalDeclareDestructure
	LocalAssign
	Value
	New
	Initializator
	Operation
	JoinOperation
	SideOperation
	MethodCall
	Group
	Template
	Lambda
	IndexFetch
	IndexAssign
	Return
	Defer
	Tuple
	If
	ElseIf
	Else
	While
	DoWhile
	For
	ForEach
	Error
	Finish
)

var kindNames = [...]string{
	"ModifierList", "ModifierBlock", "Method", "Field", "MultiField", "Package",
	"Import", "Class", "Struct", "TupleStruct", "Enum", "Interface", "Annotation",
	"LocalDeclare", "MultiLocalDeclare", "LocalDeclareAssign", "LocalDeclareDestructure",
	"LocalAssign", "Value", "New", "Initializator", "Operation", "JoinOperation",
	"SideOperation", "MethodCall", "Group", "Template", "Lambda", "IndexFetch",
	"IndexAssign", "Return", "Defer", "Tuple", "If", "ElseIf", "Else", "While",
	"DoWhile", "For", "ForEach", "Error", "Finish",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is the interface every AST variant satisfies. Debug renders the node
// at the given indentation depth, following the brace-delimited convention
// the parser uses to print a parsed tree (see the "parse" CLI subcommand).
type Node interface {
	Kind() Kind
	Debug(depth int) string
}

// Is reports whether n is of the given Kind; nil is never any kind.
func Is(n Node, kind Kind) bool {
	return n != nil && n.Kind() == kind
}

func indent(depth int) string { return strings.Repeat("    ", depth) }

func debugChild(depth int, label string, child Node) string {
	if child == nil {
		return fmt.Sprintf("%s%s: <nil>", indent(depth), label)
	}
	return fmt.Sprintf("%s%s: %s", indent(depth), label, strings.TrimLeft(child.Debug(depth), " \t"))
}

// ErrorNode records a ParseError: the parser recovered from malformed input
// at a specific token instead of aborting the rest of the file.
type ErrorNode struct {
	Message string
	At      token.Token
}

func (*ErrorNode) Kind() Kind { return Error }
func (n *ErrorNode) Debug(depth int) string {
	return fmt.Sprintf("Error{at=%s, message=%q}", n.At, n.Message)
}

// FinishNode marks the end of a successfully parsed token stream.
type FinishNode struct{}

func (*FinishNode) Kind() Kind           { return Finish }
func (*FinishNode) Debug(depth int) string { return "Finish{}" }
