package vm

import (
	"fmt"

	"github.com/voidlang/void/utils"
)

// VirtualMachine owns the class registry (read-only once Initialize has
// run) and the object heap. It is the single entry point for loading
// bytecode and executing a method.
type VirtualMachine struct {
	classes   utils.OrderedMap[string, *Class]
	instances []*Instance
}

// New builds an empty VirtualMachine with no classes loaded.
func New() *VirtualMachine {
	return &VirtualMachine{classes: utils.NewOrderedMap[string, *Class]()}
}

// GetClass looks up a loaded class by its fully-qualified name.
func (vm *VirtualMachine) GetClass(name string) (*Class, bool) {
	return vm.classes.Get(name)
}

// defineClass registers a freshly-built class, failing on a name collision
// (Class.cpp's ClassRedefineException).
func (vm *VirtualMachine) defineClass(class *Class) error {
	if vm.classes.Has(class.Name) {
		return &LoadError{Class: class.Name, Message: "class is already defined", Cause: ErrClassRedefined}
	}
	vm.classes.Set(class.Name, class)
	return nil
}

// Load parses bytecode (one textual instruction line per element) into the
// class registry. It must run to completion — across every class in the
// program — before Initialize is called, since cross-class references
// (NEW classes, CALL_STATIC targets) can only resolve once every class exists.
func (vm *VirtualMachine) Load(bytecode []string) error {
	loader := newLoader(vm)
	return loader.build(bytecode, "")
}

// Initialize resolves every instruction's cross-class references across
// every loaded class. It must run exactly once, after all Load calls and
// before any Invoke.
func (vm *VirtualMachine) Initialize() error {
	for _, entry := range vm.classes.Entries() {
		class := entry.Value
		for _, m := range class.Methods.Entries() {
			executable := &Executable{Method: m.Value, Class: class}
			for _, instr := range m.Value.Body {
				if err := instr.Initialize(vm, executable); err != nil {
					return &LinkError{Message: fmt.Sprintf("class %s method %s", class.Name, m.Value.Name), Cause: err}
				}
			}
		}
	}
	return nil
}

// NewInstance allocates a heap object of the given class, registering it so
// the VM can track liveness across InstanceDelete.
func (vm *VirtualMachine) NewInstance(class *Class) *Instance {
	inst := newInstance(class)
	vm.instances = append(vm.instances, inst)
	return inst
}

// DeleteInstance invalidates every alias to instance; further access raises
// a RuntimeFault instead of reading stale field data.
func (vm *VirtualMachine) DeleteInstance(instance *Instance) {
	instance.deleted = true
}

// Invoke runs method to completion against instance (nil for a static
// call) with the given arguments, returning the value its body stored to
// the return target (nil if none was stored).
func (vm *VirtualMachine) Invoke(method *Method, instance *Instance, args []any) (any, error) {
	ctx := NewContext(vm, method, instance, args)

	for ctx.PC < len(method.Body) && !ctx.Finished() {
		instr := method.Body[ctx.PC]
		if err := instr.Execute(ctx); err != nil {
			return nil, fmt.Errorf("%w: in %s.%s at instruction %d: %v", ErrRuntimeFault, method.Class.Name, method.Name, ctx.PC, err)
		}
		ctx.PC++
	}

	return ctx.ReturnValue, nil
}
