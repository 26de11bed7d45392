package vm

import "fmt"

func init() {
	registerInstruction("LOAD", func() Instruction { return &Load{} })
	registerInstruction("STORE", func() Instruction { return &Store{} })
}

// Load reads a value from Source and pushes it onto the operand stack.
// Used for local/field reads (`LOAD local:2`, `LOAD field:count`); reading
// straight off the stack is a no-op kept for bytecode symmetry.
type Load struct{ Source Target }

func (l *Load) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("LOAD requires a source target operand")
	}
	t, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	l.Source = t
	return nil
}

func (l *Load) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (l *Load) Execute(ctx *Context) error {
	v, err := l.Source.Load(ctx)
	if err != nil {
		return err
	}
	ctx.Stack.Push(v)
	return nil
}

func (l *Load) Debug() string { return fmt.Sprintf("LOAD %s", l.Source) }

// Store pops the top of the operand stack and writes it to Destination.
// Used for local/field writes (`STORE local:2`, `STORE field:count`) and
// for committing the method's return value (`STORE return`).
type Store struct{ Destination Target }

func (s *Store) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("STORE requires a destination target operand")
	}
	t, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	s.Destination = t
	return nil
}

func (s *Store) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (s *Store) Execute(ctx *Context) error {
	v, err := ctx.Stack.Pop()
	if err != nil {
		return err
	}
	return s.Destination.Store(ctx, v)
}

func (s *Store) Debug() string { return fmt.Sprintf("STORE %s", s.Destination) }
