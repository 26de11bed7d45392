package parser

import "github.com/voidlang/void/ast"

// operationInfo pairs an operator's precedence level with its associativity
// (rightAssoc is false for left-associative operators), mirroring
// OPERATION_INFO in the original compiler.
type operationInfo struct {
	precedence int
	rightAssoc bool
}

var operationTable = map[string]operationInfo{
	"+": {precedence: 1},
	"-": {precedence: 1},
	"*": {precedence: 2},
	"/": {precedence: 2},
	"%": {precedence: 2},
	"^": {precedence: 3, rightAssoc: true},
}

// hasPrecedence reports whether first binds tighter than second. At equal
// precedence, a left-associative operator keeps the existing left-leaning
// shape (no rotation), while a right-associative operator always rotates so
// a chain like 2^3^2 ends up right-leaning instead.
func hasPrecedence(first, second string) bool {
	a, aok := operationTable[first]
	b, bok := operationTable[second]
	if !aok || !bok {
		return false
	}
	if a.precedence != b.precedence {
		return a.precedence > b.precedence
	}
	return a.rightAssoc
}

// fixOperationTree rewrites a left-leaning chain of OperationNodes (the
// natural shape produced by naive left-to-right expression parsing) into
// the canonical precedence/associativity-correct tree. It only touches
// *ast.OperationNode root values; any other node is returned unchanged.
func fixOperationTree(root ast.Node) ast.Node {
	op, ok := root.(*ast.OperationNode)
	if !ok {
		return root
	}

	left, ok := op.Left.(*ast.OperationNode)
	if !ok {
		return op
	}

	// left is itself an operation: (left.Left left.Target left.Right) op.Target op.Right
	// Rotate right when op.Target should bind tighter than left.Target.
	if hasPrecedence(op.Target, left.Target) {
		rotated := &ast.OperationNode{
			Left:   left.Right,
			Target: op.Target,
			Right:  op.Right,
		}
		return fixOperationTree(&ast.OperationNode{
			Left:   left.Left,
			Target: left.Target,
			Right:  fixOperationTree(rotated),
		})
	}

	return op
}
