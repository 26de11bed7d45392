package vm

import (
	"errors"
	"testing"

	"github.com/voidlang/void/utils"
)

func newTestContext(instance *Instance, localCount int) *Context {
	method := &Method{Name: "test", Class: &Class{Name: "Test"}, Parameters: make([]Parameter, localCount)}
	return NewContext(New(), method, instance, make([]any, localCount))
}

func TestTargetStackLoadStore(t *testing.T) {
	ctx := newTestContext(nil, 0)
	target := Stack()
	if err := target.Store(ctx, int64(7)); err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	v, err := target.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if v != int64(7) {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestTargetLocalLoadStore(t *testing.T) {
	ctx := newTestContext(nil, 2)
	target := Local(1)
	if err := target.Store(ctx, "hello"); err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	v, err := target.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if v != "hello" {
		t.Fatalf("expected hello, got %v", v)
	}
}

func TestTargetLocalOutOfRangeIsRuntimeFault(t *testing.T) {
	ctx := newTestContext(nil, 1)
	_, err := Local(5).Load(ctx)
	if !errors.Is(err, ErrRuntimeFault) {
		t.Fatalf("expected a runtime fault, got %v", err)
	}
}

func TestTargetFieldLoadStore(t *testing.T) {
	class := &Class{Name: "Point"}
	instance := newInstance(class)
	ctx := newTestContext(instance, 0)

	target := FieldTarget("x")
	if err := target.Store(ctx, int64(3)); err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	v, err := target.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if v != int64(3) {
		t.Fatalf("expected 3, got %v", v)
	}
}

func TestTargetFieldWithoutInstanceIsRuntimeFault(t *testing.T) {
	ctx := newTestContext(nil, 0)
	if _, err := FieldTarget("x").Load(ctx); !errors.Is(err, ErrRuntimeFault) {
		t.Fatalf("expected a runtime fault reading a field with no instance, got %v", err)
	}
}

func TestTargetReturnAndDiscard(t *testing.T) {
	ctx := newTestContext(nil, 0)
	if err := Return().Store(ctx, int64(42)); err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	if ctx.ReturnValue != int64(42) {
		t.Fatalf("expected return value 42, got %v", ctx.ReturnValue)
	}
	if err := Discard().Store(ctx, "anything"); err != nil {
		t.Fatalf("discard store should never fail, got %v", err)
	}
}

func TestParseTargetVariants(t *testing.T) {
	cases := map[string]Target{
		"stack":      Stack(),
		"return":     Return(),
		"discard":    Discard(),
		"local:3":    Local(3),
		"field:name": FieldTarget("name"),
	}
	for raw, want := range cases {
		got, err := parseTarget(raw)
		if err != nil {
			t.Fatalf("parseTarget(%q): unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parseTarget(%q) = %+v, want %+v", raw, got, want)
		}
	}
}

func TestParseTargetRejectsUnknown(t *testing.T) {
	if _, err := parseTarget("bogus"); err == nil {
		t.Fatalf("expected an error for an unknown target descriptor")
	}
}

func TestLongAndDoublePushParseAndExecute(t *testing.T) {
	ctx := newTestContext(nil, 0)

	l := &LongPush{}
	if err := l.Parse([]string{"9000000000"}, 0, nil); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := l.Execute(ctx); err != nil {
		t.Fatalf("unexpected execute error: %v", err)
	}
	if v, _ := ctx.Stack.Pop(); v != int64(9000000000) {
		t.Fatalf("expected 9000000000, got %v", v)
	}

	d := &DoublePush{}
	if err := d.Parse([]string{"2.5"}, 0, nil); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := d.Execute(ctx); err != nil {
		t.Fatalf("unexpected execute error: %v", err)
	}
	if v, _ := ctx.Stack.Pop(); v != 2.5 {
		t.Fatalf("expected 2.5, got %v", v)
	}
}

func TestArithmeticInstructions(t *testing.T) {
	cases := []struct {
		name        string
		instr       Instruction
		left, right any
		want        any
	}{
		{"ADD", &Add{}, int64(2), int64(3), int64(5)},
		{"SUB", &Sub{}, int64(5), int64(3), int64(2)},
		{"MUL", &Mul{}, int64(4), int64(3), int64(12)},
		{"DIV", &Div{}, int64(10), int64(2), int64(5)},
		{"MOD", &Mod{}, int64(10), int64(3), int64(1)},
		{"ADD floats", &Add{}, 1.5, 2.5, 4.0},
	}
	for _, c := range cases {
		ctx := newTestContext(nil, 0)
		ctx.Stack.Push(c.left)
		ctx.Stack.Push(c.right)
		if err := c.instr.Execute(ctx); err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		got, err := ctx.Stack.Pop()
		if err != nil {
			t.Fatalf("%s: expected a result on the stack: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDivideByZeroIsRuntimeFault(t *testing.T) {
	ctx := newTestContext(nil, 0)
	ctx.Stack.Push(int64(1))
	ctx.Stack.Push(int64(0))
	err := (&Div{}).Execute(ctx)
	if !errors.Is(err, ErrRuntimeFault) {
		t.Fatalf("expected a runtime fault dividing by zero, got %v", err)
	}
}

func TestModByZeroIsRuntimeFault(t *testing.T) {
	ctx := newTestContext(nil, 0)
	ctx.Stack.Push(int64(1))
	ctx.Stack.Push(int64(0))
	err := (&Mod{}).Execute(ctx)
	if !errors.Is(err, ErrRuntimeFault) {
		t.Fatalf("expected a runtime fault computing a remainder by zero, got %v", err)
	}
}

func TestCompareInstructions(t *testing.T) {
	cases := []struct {
		op          compareOp
		left, right any
		want        bool
	}{
		{cmpEq, int64(3), int64(3), true},
		{cmpNe, int64(3), int64(4), true},
		{cmpLt, int64(2), int64(3), true},
		{cmpGt, int64(3), int64(2), true},
		{cmpLe, int64(3), int64(3), true},
		{cmpGe, int64(4), int64(3), true},
	}
	for _, c := range cases {
		ctx := newTestContext(nil, 0)
		ctx.Stack.Push(c.left)
		ctx.Stack.Push(c.right)
		if err := (&Compare{op: c.op}).Execute(ctx); err != nil {
			t.Fatalf("compare: unexpected error: %v", err)
		}
		got, err := ctx.Stack.Pop()
		if err != nil {
			t.Fatalf("compare: expected a result: %v", err)
		}
		if got != c.want {
			t.Fatalf("compare %v: got %v, want %v", compareNames[c.op], got, c.want)
		}
	}
}

func TestJumpSetsProgramCounterBeforeLoopIncrement(t *testing.T) {
	ctx := newTestContext(nil, 0)
	j := &Jump{To: 5}
	if err := j.Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.PC != 4 {
		t.Fatalf("expected PC to land one before the target (5-1=4), got %d", ctx.PC)
	}
}

func TestJumpIfFalseBranchesOnlyWhenConditionIsFalse(t *testing.T) {
	ctx := newTestContext(nil, 0)
	ctx.Stack.Push(true)
	if err := (&JumpIfFalse{To: 9}).Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.PC != 0 {
		t.Fatalf("expected PC untouched when condition is true, got %d", ctx.PC)
	}

	ctx.Stack.Push(false)
	if err := (&JumpIfFalse{To: 9}).Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.PC != 8 {
		t.Fatalf("expected PC to land one before the target (9-1=8), got %d", ctx.PC)
	}
}

func TestReturnInstructionFinishesFrame(t *testing.T) {
	ctx := newTestContext(nil, 0)
	if ctx.Finished() {
		t.Fatalf("fresh context should not be finished")
	}
	if err := (&ReturnInstruction{}).Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ctx.Finished() {
		t.Fatalf("expected the frame to be finished after RETURN")
	}
}

func TestNewInstanceLifecycleAndDeleteInvalidatesAliases(t *testing.T) {
	machine := New()
	class := &Class{Name: "Box", Fields: utils.NewOrderedMap[string, *Field]()}
	n := &Instantiate{ClassName: "Box", classRef: class, Result: Stack()}

	ctx := NewContext(machine, &Method{Name: "make", Class: class}, nil, nil)
	if err := n.Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ctx.Stack.Pop()
	if err != nil {
		t.Fatalf("expected an instance on the stack: %v", err)
	}
	instance, ok := v.(*Instance)
	if !ok {
		t.Fatalf("expected a *Instance, got %T", v)
	}

	ctx.Stack.Push(instance)
	if err := (&InstanceDelete{Source: Stack()}).Execute(ctx); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}

	ctx.Stack.Push(instance)
	err = (&InstanceGetAddress{Source: Stack(), Result: Discard()}).Execute(ctx)
	if !errors.Is(err, ErrRuntimeFault) {
		t.Fatalf("expected accessing a deleted instance to raise a runtime fault, got %v", err)
	}
}

func TestNewInstructionWithoutInitializeIsRuntimeFault(t *testing.T) {
	ctx := newTestContext(nil, 0)
	n := &Instantiate{ClassName: "Unresolved", Result: Discard()}
	if err := n.Execute(ctx); !errors.Is(err, ErrRuntimeFault) {
		t.Fatalf("expected a runtime fault executing NEW before Initialize resolved its class, got %v", err)
	}
}

func TestCallVirtualDispatchesByRuntimeClass(t *testing.T) {
	machine := New()

	base := &Class{Name: "Base", Methods: utils.NewOrderedMap[string, *Method](), Fields: utils.NewOrderedMap[string, *Field]()}
	override := &Method{
		Name: "speak", Class: base,
		Body: []Instruction{&StringPush{value: "base"}, &Store{Destination: Return()}, &ReturnInstruction{}},
	}
	base.Methods.Set(methodKey("speak", nil), override)

	derived := &Class{Name: "Derived", Methods: utils.NewOrderedMap[string, *Method](), Fields: utils.NewOrderedMap[string, *Field]()}
	derivedOverride := &Method{
		Name: "speak", Class: derived,
		Body: []Instruction{&StringPush{value: "derived"}, &Store{Destination: Return()}, &ReturnInstruction{}},
	}
	derived.Methods.Set(methodKey("speak", nil), derivedOverride)

	instance := newInstance(derived)
	ctx := newTestContext(nil, 0)
	ctx.Machine = machine
	ctx.Stack.Push(instance)

	call := &CallVirtual{MethodName: "speak"}
	if err := call.Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := ctx.Stack.Pop()
	if err != nil {
		t.Fatalf("expected a result: %v", err)
	}
	if result != "derived" {
		t.Fatalf("expected dispatch to the receiver's actual class method, got %v", result)
	}
}
