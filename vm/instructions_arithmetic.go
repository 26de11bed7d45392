package vm

import "fmt"

func init() {
	registerInstruction("ADD", func() Instruction { return &Add{} })
	registerInstruction("SUB", func() Instruction { return &Sub{} })
	registerInstruction("MUL", func() Instruction { return &Mul{} })
	registerInstruction("DIV", func() Instruction { return &Div{} })
	registerInstruction("MOD", func() Instruction { return &Mod{} })
	registerInstruction("CMP_EQ", func() Instruction { return &Compare{op: cmpEq} })
	registerInstruction("CMP_NE", func() Instruction { return &Compare{op: cmpNe} })
	registerInstruction("CMP_LT", func() Instruction { return &Compare{op: cmpLt} })
	registerInstruction("CMP_GT", func() Instruction { return &Compare{op: cmpGt} })
	registerInstruction("CMP_LE", func() Instruction { return &Compare{op: cmpLe} })
	registerInstruction("CMP_GE", func() Instruction { return &Compare{op: cmpGe} })
}

// binaryNumeric pops two operands (right then left), applies fn, and
// pushes the result — the shared shape of every arithmetic instruction.
func binaryNumeric(ctx *Context, name string, fn func(l, r float64) float64) error {
	right, err := ctx.Stack.Pop()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	left, err := ctx.Stack.Pop()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	l, lok := asFloat(left)
	r, rok := asFloat(right)
	if !lok || !rok {
		return fmt.Errorf("%w: %s requires two numeric operands, got %v and %v", ErrRuntimeFault, name, left, right)
	}

	result := fn(l, r)
	if isIntOperands(left, right) {
		ctx.Stack.Push(int64(result))
	} else {
		ctx.Stack.Push(result)
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isIntOperands(l, r any) bool {
	_, lok := l.(int64)
	_, rok := r.(int64)
	return lok && rok
}

// Add pops two numeric operands and pushes their sum.
type Add struct{}

func (*Add) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Add) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Add) Execute(ctx *Context) error {
	return binaryNumeric(ctx, "ADD", func(l, r float64) float64 { return l + r })
}
func (*Add) Debug() string { return "ADD" }

// Sub pops two numeric operands and pushes their difference.
type Sub struct{}

func (*Sub) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Sub) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Sub) Execute(ctx *Context) error {
	return binaryNumeric(ctx, "SUB", func(l, r float64) float64 { return l - r })
}
func (*Sub) Debug() string { return "SUB" }

// Mul pops two numeric operands and pushes their product.
type Mul struct{}

func (*Mul) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Mul) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Mul) Execute(ctx *Context) error {
	return binaryNumeric(ctx, "MUL", func(l, r float64) float64 { return l * r })
}
func (*Mul) Debug() string { return "MUL" }

// Div pops two numeric operands and pushes their quotient.
type Div struct{}

func (*Div) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Div) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Div) Execute(ctx *Context) error {
	right, err := ctx.Stack.Top()
	if err == nil {
		if r, ok := asFloat(right); ok && r == 0 {
			return fmt.Errorf("%w: division by zero", ErrRuntimeFault)
		}
	}
	return binaryNumeric(ctx, "DIV", func(l, r float64) float64 { return l / r })
}
func (*Div) Debug() string { return "DIV" }

// Mod pops two numeric operands and pushes the remainder of their division.
type Mod struct{}

func (*Mod) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Mod) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }
func (*Mod) Execute(ctx *Context) error {
	right, err := ctx.Stack.Top()
	if err == nil {
		if r, ok := asFloat(right); ok && r == 0 {
			return fmt.Errorf("%w: MOD by zero", ErrRuntimeFault)
		}
	}
	return binaryNumeric(ctx, "MOD", func(l, r float64) float64 {
		return float64(int64(l) % int64(r))
	})
}
func (*Mod) Debug() string { return "MOD" }

type compareOp uint8

const (
	cmpEq compareOp = iota
	cmpNe
	cmpLt
	cmpGt
	cmpLe
	cmpGe
)

var compareNames = map[compareOp]string{
	cmpEq: "CMP_EQ", cmpNe: "CMP_NE", cmpLt: "CMP_LT", cmpGt: "CMP_GT", cmpLe: "CMP_LE", cmpGe: "CMP_GE",
}

// Compare pops two operands and pushes a bool result of op applied to them.
type Compare struct{ op compareOp }

func (*Compare) Parse(args []string, line int, executable *Executable) error { return nil }
func (*Compare) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (c *Compare) Execute(ctx *Context) error {
	right, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}
	left, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}

	l, lok := asFloat(left)
	r, rok := asFloat(right)
	if !lok || !rok {
		return fmt.Errorf("%w: %s requires two numeric operands", ErrRuntimeFault, compareNames[c.op])
	}

	var result bool
	switch c.op {
	case cmpEq:
		result = l == r
	case cmpNe:
		result = l != r
	case cmpLt:
		result = l < r
	case cmpGt:
		result = l > r
	case cmpLe:
		result = l <= r
	case cmpGe:
		result = l >= r
	}
	ctx.Stack.Push(result)
	return nil
}

func (c *Compare) Debug() string { return compareNames[c.op] }
