package vm

import (
	"errors"
	"fmt"
)

// ErrRuntimeFault wraps any error raised while executing an instruction
// against a Context; it aborts the current execution but not the VM itself
// (spec.md §7).
var ErrRuntimeFault = errors.New("runtime fault")

// LoadError is fatal to VM startup: it is raised while a class's bytecode
// body is being parsed by the loader, before any code has run.
type LoadError struct {
	Class   string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error in class %q: %s: %v", e.Class, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error in class %q: %s", e.Class, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// LinkError is fatal to VM startup: it is raised once every class has
// loaded, while instruction operands that name other classes or methods
// (NEW's class, CALL_STATIC's callee) are being resolved. Superclass and
// interface names are not resolved.
type LinkError struct {
	Message string
	Cause   error
}

func (e *LinkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link error: %s", e.Message)
}

func (e *LinkError) Unwrap() error { return e.Cause }

// ErrClassRedefined fires when the loader encounters two class bodies with
// the same fully-qualified name (Class.cpp's ClassRedefineException).
var ErrClassRedefined = errors.New("class redefined")

// ErrMethodRedefined fires when a class defines two methods with the same
// name and parameter signature (Class.cpp's MethodRedefineException).
var ErrMethodRedefined = errors.New("method redefined")
