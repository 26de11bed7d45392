package vm

import "fmt"

func init() {
	registerInstruction("CALL_STATIC", func() Instruction { return &CallStatic{} })
	registerInstruction("CALL_VIRTUAL", func() Instruction { return &CallVirtual{} })
	registerInstruction("CALL_INTERFACE", func() Instruction { return &CallVirtual{interfaceDispatch: true} })
}

// popArguments pops count operands off the stack and returns them in
// declared parameter order (the stack holds them pushed left-to-right, so
// the top is the last argument).
func popArguments(ctx *Context, count int) ([]any, error) {
	args := make([]any, count)
	for i := count - 1; i >= 0; i-- {
		v, err := ctx.Stack.Pop()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// CallStatic invokes a method with no receiver instance: className.method
// is resolved once during Initialize, just like NEW's class resolution.
type CallStatic struct {
	ClassName  string
	MethodName string
	ParamTypes []string
	methodRef  *Method
}

func (c *CallStatic) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 2 {
		return fmt.Errorf("CALL_STATIC requires a class and method name")
	}
	c.ClassName, c.MethodName = args[0], args[1]
	c.ParamTypes = args[2:]
	return nil
}

func (c *CallStatic) Initialize(machine *VirtualMachine, executable *Executable) error {
	class, ok := machine.GetClass(c.ClassName)
	if !ok {
		return fmt.Errorf("CALL_STATIC: unknown class %q", c.ClassName)
	}
	method, ok := class.GetMethod(c.MethodName, c.ParamTypes)
	if !ok {
		return fmt.Errorf("CALL_STATIC: unknown method %s(%v) on class %q", c.MethodName, c.ParamTypes, c.ClassName)
	}
	c.methodRef = method
	return nil
}

func (c *CallStatic) Execute(ctx *Context) error {
	if c.methodRef == nil {
		return fmt.Errorf("%w: CALL_STATIC executed before Initialize resolved its method", ErrRuntimeFault)
	}
	args, err := popArguments(ctx, len(c.ParamTypes))
	if err != nil {
		return err
	}
	result, err := ctx.Machine.Invoke(c.methodRef, nil, args)
	if err != nil {
		return err
	}
	ctx.Stack.Push(result)
	return nil
}

func (c *CallStatic) Debug() string {
	s := fmt.Sprintf("CALL_STATIC %s %s", c.ClassName, c.MethodName)
	for _, p := range c.ParamTypes {
		s += " " + p
	}
	return s
}

// CallVirtual invokes a method on a receiver instance popped off the
// stack, dispatching by the instance's actual runtime class (not the
// static type the bytecode was compiled against) the way an interface or
// virtual call must. interfaceDispatch only changes the Debug() mnemonic —
// the resolution rule is identical either way since both need the runtime
// type to pick the right override.
type CallVirtual struct {
	MethodName        string
	ParamTypes        []string
	interfaceDispatch bool
}

func (c *CallVirtual) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("CALL_VIRTUAL requires a method name")
	}
	c.MethodName = args[0]
	c.ParamTypes = args[1:]
	return nil
}

func (c *CallVirtual) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (c *CallVirtual) Execute(ctx *Context) error {
	args, err := popArguments(ctx, len(c.ParamTypes))
	if err != nil {
		return err
	}
	receiverVal, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}
	receiver, ok := receiverVal.(*Instance)
	if !ok {
		return fmt.Errorf("%w: %s requires an instance receiver, got %v", ErrRuntimeFault, c.mnemonic(), receiverVal)
	}
	if err := receiver.checkAlive(); err != nil {
		return err
	}

	method, ok := receiver.Class.GetMethod(c.MethodName, c.ParamTypes)
	if !ok {
		return fmt.Errorf("%w: unknown method %s(%v) on class %q", ErrRuntimeFault, c.MethodName, c.ParamTypes, receiver.Class.Name)
	}

	result, err := ctx.Machine.Invoke(method, receiver, args)
	if err != nil {
		return err
	}
	ctx.Stack.Push(result)
	return nil
}

func (c *CallVirtual) mnemonic() string {
	if c.interfaceDispatch {
		return "CALL_INTERFACE"
	}
	return "CALL_VIRTUAL"
}

func (c *CallVirtual) Debug() string {
	s := fmt.Sprintf("%s %s", c.mnemonic(), c.MethodName)
	for _, p := range c.ParamTypes {
		s += " " + p
	}
	return s
}
