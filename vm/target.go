package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// parseTarget parses a target descriptor as it appears in bytecode operand
// position: "stack", "return", "discard", "local:<index>", or "field:<name>".
func parseTarget(raw string) (Target, error) {
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		kind, rest := raw[:idx], raw[idx+1:]
		switch kind {
		case "local":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return Target{}, fmt.Errorf("invalid local target index %q: %w", rest, err)
			}
			return Local(n), nil
		case "field":
			return FieldTarget(rest), nil
		}
		return Target{}, fmt.Errorf("unknown target kind %q", kind)
	}

	switch raw {
	case "stack":
		return Stack(), nil
	case "return":
		return Return(), nil
	case "discard":
		return Discard(), nil
	}
	return Target{}, fmt.Errorf("unknown target %q", raw)
}

// TargetKind tags where an instruction reads an operand from, or writes a
// result to. Every instruction that needs addressing threads a Target
// instead of a loose (kind, index) pair (spec.md glossary, supplemented
// from the original Instruction subclasses, which otherwise repeat a
// Target/index pair per private field — see New, InstanceDelete,
// InstanceGetAddress).
type TargetKind uint8

const (
	// TargetStack reads/writes the top of the operand stack.
	TargetStack TargetKind = iota
	// TargetLocal reads/writes a numbered local slot.
	TargetLocal
	// TargetField reads/writes a named field on the current instance.
	TargetField
	// TargetReturn writes the method's return value.
	TargetReturn
	// TargetDiscard drops the value instead of storing it.
	TargetDiscard
)

// Target is a closed sum type addressing one operand location.
type Target struct {
	Kind  TargetKind
	Index int    // meaningful for TargetLocal
	Field string // meaningful for TargetField
}

// Stack builds a Target addressing the operand stack.
func Stack() Target { return Target{Kind: TargetStack} }

// Local builds a Target addressing local slot index.
func Local(index int) Target { return Target{Kind: TargetLocal, Index: index} }

// FieldTarget builds a Target addressing the named field on the current instance.
func FieldTarget(name string) Target { return Target{Kind: TargetField, Field: name} }

// Return builds a Target addressing the method's return slot.
func Return() Target { return Target{Kind: TargetReturn} }

// Discard builds a Target that drops its value.
func Discard() Target { return Target{Kind: TargetDiscard} }

func (t Target) String() string {
	switch t.Kind {
	case TargetStack:
		return "stack"
	case TargetLocal:
		return fmt.Sprintf("local:%d", t.Index)
	case TargetField:
		return fmt.Sprintf("field:%s", t.Field)
	case TargetReturn:
		return "return"
	case TargetDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// Load reads the value addressed by t out of the given Context.
func (t Target) Load(ctx *Context) (any, error) {
	switch t.Kind {
	case TargetStack:
		return ctx.Stack.Pop()
	case TargetLocal:
		return ctx.Local(t.Index)
	case TargetField:
		if ctx.Instance == nil {
			return nil, fmt.Errorf("%w: no instance in scope to read field %q", ErrRuntimeFault, t.Field)
		}
		v, ok := ctx.Instance.Fields.Get(t.Field)
		if !ok {
			return nil, fmt.Errorf("%w: instance has no field %q", ErrRuntimeFault, t.Field)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: target %s is not readable", ErrRuntimeFault, t)
	}
}

// Store writes value to the location addressed by t.
func (t Target) Store(ctx *Context, value any) error {
	switch t.Kind {
	case TargetStack:
		ctx.Stack.Push(value)
		return nil
	case TargetLocal:
		ctx.SetLocal(t.Index, value)
		return nil
	case TargetField:
		if ctx.Instance == nil {
			return fmt.Errorf("%w: no instance in scope to write field %q", ErrRuntimeFault, t.Field)
		}
		ctx.Instance.Fields.Set(t.Field, value)
		return nil
	case TargetReturn:
		ctx.ReturnValue = value
		return nil
	case TargetDiscard:
		return nil
	default:
		return fmt.Errorf("%w: target %s is not writable", ErrRuntimeFault, t)
	}
}
