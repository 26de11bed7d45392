package vm

import (
	"fmt"
	"strconv"
)

func init() {
	registerInstruction("INTEGER_PUSH", func() Instruction { return &IntegerPush{} })
	registerInstruction("LONG_PUSH", func() Instruction { return &LongPush{} })
	registerInstruction("FLOAT_PUSH", func() Instruction { return &FloatPush{} })
	registerInstruction("DOUBLE_PUSH", func() Instruction { return &DoublePush{} })
	registerInstruction("STRING_PUSH", func() Instruction { return &StringPush{} })
	registerInstruction("BOOL_PUSH", func() Instruction { return &BoolPush{} })
	registerInstruction("NULLPTR", func() Instruction { return &Nullptr{} })
	registerInstruction("POP", func() Instruction { return &Pop{} })
}

// IntegerPush pushes a constant int64 onto the operand stack.
type IntegerPush struct{ value int64 }

func (i *IntegerPush) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("INTEGER_PUSH requires a value operand")
	}
	v, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("INTEGER_PUSH: %w", err)
	}
	i.value = v
	return nil
}

func (i *IntegerPush) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (i *IntegerPush) Execute(ctx *Context) error {
	ctx.Stack.Push(i.value)
	return nil
}

func (i *IntegerPush) Debug() string { return fmt.Sprintf("INTEGER_PUSH %d", i.value) }

// LongPush pushes a constant long (also represented as int64, matching the
// VM's numeric model which only distinguishes integral from floating-point
// operands) onto the operand stack.
type LongPush struct{ value int64 }

func (l *LongPush) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("LONG_PUSH requires a value operand")
	}
	v, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("LONG_PUSH: %w", err)
	}
	l.value = v
	return nil
}

func (l *LongPush) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (l *LongPush) Execute(ctx *Context) error {
	ctx.Stack.Push(l.value)
	return nil
}
func (l *LongPush) Debug() string { return fmt.Sprintf("LONG_PUSH %d", l.value) }

// FloatPush pushes a constant float64 onto the operand stack.
type FloatPush struct{ value float64 }

func (f *FloatPush) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("FLOAT_PUSH requires a value operand")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("FLOAT_PUSH: %w", err)
	}
	f.value = v
	return nil
}

func (f *FloatPush) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (f *FloatPush) Execute(ctx *Context) error {
	ctx.Stack.Push(f.value)
	return nil
}
func (f *FloatPush) Debug() string { return fmt.Sprintf("FLOAT_PUSH %v", f.value) }

// DoublePush pushes a constant double (also represented as float64) onto
// the operand stack.
type DoublePush struct{ value float64 }

func (d *DoublePush) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("DOUBLE_PUSH requires a value operand")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("DOUBLE_PUSH: %w", err)
	}
	d.value = v
	return nil
}

func (d *DoublePush) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (d *DoublePush) Execute(ctx *Context) error {
	ctx.Stack.Push(d.value)
	return nil
}
func (d *DoublePush) Debug() string { return fmt.Sprintf("DOUBLE_PUSH %v", d.value) }

// StringPush pushes a constant string onto the operand stack.
type StringPush struct{ value string }

func (s *StringPush) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("STRING_PUSH requires a value operand")
	}
	s.value = args[0]
	return nil
}

func (s *StringPush) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (s *StringPush) Execute(ctx *Context) error {
	ctx.Stack.Push(s.value)
	return nil
}
func (s *StringPush) Debug() string { return fmt.Sprintf("STRING_PUSH %s", s.value) }

// BoolPush pushes a constant bool onto the operand stack.
type BoolPush struct{ value bool }

func (b *BoolPush) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("BOOL_PUSH requires a value operand")
	}
	v, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("BOOL_PUSH: %w", err)
	}
	b.value = v
	return nil
}

func (b *BoolPush) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (b *BoolPush) Execute(ctx *Context) error {
	ctx.Stack.Push(b.value)
	return nil
}
func (b *BoolPush) Debug() string { return fmt.Sprintf("BOOL_PUSH %t", b.value) }

// Nullptr pushes a null reference onto the operand stack.
type Nullptr struct{}

func (*Nullptr) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Nullptr) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Nullptr) Execute(ctx *Context) error {
	ctx.Stack.Push(nil)
	return nil
}
func (*Nullptr) Debug() string { return "NULLPTR" }

// Pop discards the top of the operand stack.
type Pop struct{}

func (*Pop) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Pop) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Pop) Execute(ctx *Context) error {
	_, err := ctx.Stack.Pop()
	return err
}
func (*Pop) Debug() string { return "POP" }
