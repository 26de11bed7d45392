package ast

import (
	"fmt"
	"strings"
)

// Modifier is one packed bit of a ModifierList (spec.md §4.3).
type Modifier uint32

const (
	Public Modifier = 1 << iota
	Private
	Protected
	Static
	Final
	Abstract
	Native
	Synchronized
	Default
	Volatile
	Transient
)

var modifierNames = map[Modifier]string{
	Public: "public", Private: "private", Protected: "protected", Static: "static",
	Final: "final", Abstract: "abstract", Native: "native", Synchronized: "synchronized",
	Default: "default", Volatile: "volatile", Transient: "transient",
}

// Has reports whether bit is set in the packed modifier mask.
func (m Modifier) Has(bit Modifier) bool { return m&bit != 0 }

func (m Modifier) String() string {
	var names []string
	for bit, name := range modifierNames {
		if m.Has(bit) {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}

// ModifierListNode holds the packed modifier mask preceding a declaration.
type ModifierListNode struct {
	Mask Modifier
}

func (*ModifierListNode) Kind() Kind { return ModifierList }
func (n *ModifierListNode) Debug(depth int) string {
	return fmt.Sprintf("ModifierList{%s}", n.Mask)
}

// ModifierBlockNode is a `{ ... }` region that applies Mask to every
// declaration nested inside it, rather than to a single following one.
type ModifierBlockNode struct {
	Mask     Modifier
	Children []Node
}

func (*ModifierBlockNode) Kind() Kind { return ModifierBlock }
func (n *ModifierBlockNode) Debug(depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ModifierBlock{%s\n", n.Mask)
	for _, c := range n.Children {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), c.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// PackageNode names the package a file belongs to.
type PackageNode struct {
	Name string
}

func (*PackageNode) Kind() Kind             { return Package }
func (n *PackageNode) Debug(depth int) string { return fmt.Sprintf("Package{name=%s}", n.Name) }

// ImportNode brings another package's declarations into scope.
type ImportNode struct {
	Path string
}

func (*ImportNode) Kind() Kind             { return Import }
func (n *ImportNode) Debug(depth int) string { return fmt.Sprintf("Import{path=%s}", n.Path) }

// TypeRef is a (possibly generic, possibly array) reference to a type name,
// as it appears in a field/parameter/return-type position.
type TypeRef struct {
	Name     string
	Generics []TypeRef
	Array    bool
}

func (t TypeRef) String() string {
	s := t.Name
	if len(t.Generics) > 0 {
		parts := make([]string, len(t.Generics))
		for i, g := range t.Generics {
			parts[i] = g.String()
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	if t.Array {
		s += "[]"
	}
	return s
}

// ClassLikeNode covers Class, Struct, TupleStruct, Enum, Interface and
// Annotation declarations: all share name, generics, supertypes and a body,
// differing only in their Kind tag and which members are legal inside.
type ClassLikeNode struct {
	NodeKind   Kind
	Modifiers  Modifier
	Name       string
	Generics   []string
	Extends    []TypeRef
	Implements []TypeRef
	Members    []Node
}

func (n *ClassLikeNode) Kind() Kind { return n.NodeKind }
func (n *ClassLikeNode) Debug(depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s{name=%s", n.NodeKind, n.Name)
	if n.Modifiers != 0 {
		fmt.Fprintf(&b, ", modifiers=%s", n.Modifiers)
	}
	if len(n.Generics) > 0 {
		fmt.Fprintf(&b, ", generics=%s", strings.Join(n.Generics, ", "))
	}
	b.WriteString("\n")
	for _, m := range n.Members {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), m.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// MethodNode declares a method/function member.
type MethodNode struct {
	Modifiers  Modifier
	Name       string
	Generics   []string
	Parameters []Parameter
	Return     TypeRef
	Body       []Node
}

// Parameter is one formal argument of a method signature.
type Parameter struct {
	Type     TypeRef
	Name     string
	Variadic bool
}

func (*MethodNode) Kind() Kind { return Method }
func (n *MethodNode) Debug(depth int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Method{name=%s, return=%s\n", n.Name, n.Return)
	for _, s := range n.Body {
		fmt.Fprintf(&b, "%s%s\n", indent(depth+1), s.Debug(depth+1))
	}
	fmt.Fprintf(&b, "%s}", indent(depth))
	return b.String()
}

// FieldNode declares a single class-level field.
type FieldNode struct {
	Modifiers Modifier
	Type      TypeRef
	Name      string
	Value     Node // nil when uninitialized
}

func (*FieldNode) Kind() Kind { return Field }
func (n *FieldNode) Debug(depth int) string {
	if n.Value == nil {
		return fmt.Sprintf("Field{type=%s, name=%s}", n.Type, n.Name)
	}
	return fmt.Sprintf("Field{type=%s, name=%s, %s}", n.Type, n.Name, debugChild(depth, "value", n.Value))
}

// MultiFieldNode declares several fields of the same type in one statement
// (`int a, b, c;`).
type MultiFieldNode struct {
	Modifiers Modifier
	Type      TypeRef
	Names     []string
}

func (*MultiFieldNode) Kind() Kind { return MultiField }
func (n *MultiFieldNode) Debug(depth int) string {
	return fmt.Sprintf("MultiField{type=%s, names=%s}", n.Type, strings.Join(n.Names, ", "))
}
