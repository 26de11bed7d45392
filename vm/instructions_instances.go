package vm

import "fmt"

func init() {
	registerInstruction("NEW", func() Instruction { return &Instantiate{Result: Stack()} })
	registerInstruction("INSTANCE_DELETE", func() Instruction { return &InstanceDelete{Source: Stack()} })
	registerInstruction("INSTANCE_GET_ADDRESS", func() Instruction {
		return &InstanceGetAddress{Source: Stack(), Result: Stack()}
	})
}

// Instantiate constructs an instance of ClassName and writes it to Result.
type Instantiate struct {
	ClassName string
	classRef  *Class
	Result    Target
}

func (n *Instantiate) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return fmt.Errorf("NEW requires a class name operand")
	}
	n.ClassName = args[0]
	if len(args) > 1 {
		t, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		n.Result = t
	}
	return nil
}

// Initialize resolves ClassName to its loaded Class, same as a method
// call's callee resolution — both can only happen once every class in the
// program has been loaded.
func (n *Instantiate) Initialize(machine *VirtualMachine, executable *Executable) error {
	class, ok := machine.GetClass(n.ClassName)
	if !ok {
		return fmt.Errorf("NEW: unknown class %q", n.ClassName)
	}
	n.classRef = class
	return nil
}

func (n *Instantiate) Execute(ctx *Context) error {
	if n.classRef == nil {
		return fmt.Errorf("%w: NEW %s executed before Initialize resolved its class", ErrRuntimeFault, n.ClassName)
	}
	instance := ctx.Machine.NewInstance(n.classRef)
	return n.Result.Store(ctx, instance)
}

func (n *Instantiate) Debug() string { return fmt.Sprintf("NEW %s %s", n.ClassName, n.Result) }

// InstanceDelete frees the instance addressed by Source, invalidating every
// alias to it.
type InstanceDelete struct{ Source Target }

func (d *InstanceDelete) Parse(args []string, line int, executable *Executable) error {
	if len(args) < 1 {
		return nil // default Source (Stack) already set by the factory
	}
	t, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	d.Source = t
	return nil
}

func (d *InstanceDelete) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (d *InstanceDelete) Execute(ctx *Context) error {
	v, err := d.Source.Load(ctx)
	if err != nil {
		return err
	}
	instance, ok := v.(*Instance)
	if !ok {
		return fmt.Errorf("%w: INSTANCE_DELETE requires an instance operand, got %v", ErrRuntimeFault, v)
	}
	if err := instance.checkAlive(); err != nil {
		return err
	}
	ctx.Machine.DeleteInstance(instance)
	return nil
}

func (d *InstanceDelete) Debug() string { return fmt.Sprintf("INSTANCE_DELETE %s", d.Source) }

// InstanceGetAddress reads the instance reference at Source and writes the
// same reference to Result — used to pass an instance by handle between
// addressing modes (e.g. stack to a local slot) without copying fields.
type InstanceGetAddress struct {
	Source Target
	Result Target
}

func (g *InstanceGetAddress) Parse(args []string, line int, executable *Executable) error {
	if len(args) > 0 {
		t, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		g.Source = t
	}
	if len(args) > 1 {
		t, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		g.Result = t
	}
	return nil
}

func (g *InstanceGetAddress) Initialize(machine *VirtualMachine, executable *Executable) error { return nil }

func (g *InstanceGetAddress) Execute(ctx *Context) error {
	v, err := g.Source.Load(ctx)
	if err != nil {
		return err
	}
	instance, ok := v.(*Instance)
	if !ok {
		return fmt.Errorf("%w: INSTANCE_GET_ADDRESS requires an instance operand, got %v", ErrRuntimeFault, v)
	}
	if err := instance.checkAlive(); err != nil {
		return err
	}
	return g.Result.Store(ctx, instance)
}

func (g *InstanceGetAddress) Debug() string {
	return fmt.Sprintf("INSTANCE_GET_ADDRESS %s %s", g.Source, g.Result)
}
