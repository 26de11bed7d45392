package vm

import (
	"strings"

	"github.com/voidlang/void/utils"
)

// Modifier is the packed bit-mask of access/behavior modifiers carried by a
// Class, Method or Field, matching the parser's ast.Modifier bit layout so
// a compiled program's modifiers survive unchanged into bytecode.
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

var modifierWords = map[string]Modifier{
	"public": Public, "private": Private, "protected": Protected, "static": Static,
	"final": Final, "abstract": Abstract, "native": Native, "synchronized": Synchronized,
	"default": Default, "volatile": Volatile, "transient": Transient,
}

// maskModifiers packs a bytecode's space-separated modifier word list into
// a single bit-mask (mirrors Class.cpp's maskModifiers helper).
func maskModifiers(words []string) Modifier {
	var mask Modifier
	for _, w := range words {
		mask |= modifierWords[w]
	}
	return mask
}

// Has reports whether bit is set.
func (m Modifier) Has(bit Modifier) bool { return m&bit != 0 }

// Class is a loaded, fully-built class: its own methods and fields. Nested
// classes defined in its body are registered separately on the
// VirtualMachine under their own qualified names.
type Class struct {
	Name       string
	Superclass string
	Modifiers  Modifier
	Interfaces []string

	Methods utils.OrderedMap[string, *Method]
	Fields  utils.OrderedMap[string, *Field]

	vm *VirtualMachine
}

func newClass(name, superclass string, modifiers Modifier, interfaces []string, machine *VirtualMachine) *Class {
	return &Class{
		Name:       name,
		Superclass: superclass,
		Modifiers:  modifiers,
		Interfaces: interfaces,
		Methods:    utils.NewOrderedMap[string, *Method](),
		Fields:     utils.NewOrderedMap[string, *Field](),
		vm:         machine,
	}
}

// methodKey builds the lookup key used to detect redefinition: name plus
// the joined parameter type list, since overloads share a name.
func methodKey(name string, parameters []string) string {
	return name + "(" + strings.Join(parameters, ",") + ")"
}

// GetMethod looks up a method by exact name + parameter-type signature.
func (c *Class) GetMethod(name string, parameters []string) (*Method, bool) {
	return c.Methods.Get(methodKey(name, parameters))
}

// DefineMethod registers method on the class, failing if its signature is
// already taken (Class.cpp's MethodRedefineException).
func (c *Class) DefineMethod(method *Method) error {
	key := methodKey(method.Name, method.ParameterTypes())
	if c.Methods.Has(key) {
		return &LoadError{Class: c.Name, Message: "method " + key + " is already defined", Cause: ErrMethodRedefined}
	}
	c.Methods.Set(key, method)
	return nil
}

// Method is a loaded method: signature plus its parsed Instruction body.
type Method struct {
	Name       string
	ReturnType string
	Modifiers  Modifier
	Parameters []Parameter
	Body       []Instruction
	Class      *Class
}

// Parameter is one formal parameter's (type, name) pair.
type Parameter struct {
	Type string
	Name string
}

// ParameterTypes returns just the type half of Parameters, the part the
// signature-matching in GetMethod/DefineMethod compares against.
func (m *Method) ParameterTypes() []string {
	types := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type
	}
	return types
}

// Field is a loaded instance or static field declaration.
type Field struct {
	Name      string
	Type      string
	Modifiers Modifier
	Class     *Class
}
