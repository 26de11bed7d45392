package vm

import (
	"fmt"

	"github.com/voidlang/void/utils"
)

// Instance is a heap-allocated object: its class plus its field values.
// InstanceDelete invalidates every alias to an Instance by marking it
// deleted rather than by actually freeing Go memory — any further access
// becomes a RuntimeFault instead of silently reading stale data.
type Instance struct {
	Class   *Class
	Fields  utils.OrderedMap[string, any]
	deleted bool
}

func newInstance(class *Class) *Instance {
	inst := &Instance{Class: class, Fields: utils.NewOrderedMap[string, any]()}
	for _, entry := range class.Fields.Entries() {
		inst.Fields.Set(entry.Key, nil)
	}
	return inst
}

// checkAlive reports a RuntimeFault if the instance was already deleted.
func (i *Instance) checkAlive() error {
	if i.deleted {
		return fmt.Errorf("%w: use of instance after InstanceDelete", ErrRuntimeFault)
	}
	return nil
}

// Context is a single method invocation's execution frame: its operand
// stack, local variable slots, the instance it runs against (nil for a
// static method), and the instruction cursor.
type Context struct {
	Machine  *VirtualMachine
	Method   *Method
	Class    *Class
	Instance *Instance

	Stack  OperandStack
	locals []any

	PC          int
	ReturnValue any
	finished    bool
}

// NewContext builds a fresh invocation frame for method, seeded with the
// given arguments in declared-parameter order.
func NewContext(machine *VirtualMachine, method *Method, instance *Instance, args []any) *Context {
	locals := make([]any, len(method.Parameters))
	copy(locals, args)
	return &Context{
		Machine:  machine,
		Method:   method,
		Class:    method.Class,
		Instance: instance,
		locals:   locals,
	}
}

// Local reads local slot index, growing the slot table lazily is not
// permitted: an out-of-declared-range read is a RuntimeFault.
func (ctx *Context) Local(index int) (any, error) {
	if index < 0 || index >= len(ctx.locals) {
		return nil, fmt.Errorf("%w: local slot %d out of range (have %d)", ErrRuntimeFault, index, len(ctx.locals))
	}
	return ctx.locals[index], nil
}

// SetLocal writes local slot index, growing the backing slice if a
// bytecode body declares more locals than parameters.
func (ctx *Context) SetLocal(index int, value any) {
	if index >= len(ctx.locals) {
		grown := make([]any, index+1)
		copy(grown, ctx.locals)
		ctx.locals = grown
	}
	ctx.locals[index] = value
}

// Finish marks the frame as having executed a Return instruction, so the
// interpreter loop in VirtualMachine.Invoke knows to stop stepping.
func (ctx *Context) Finish() { ctx.finished = true }

// Finished reports whether a Return instruction has run in this frame.
func (ctx *Context) Finished() bool { return ctx.finished }
