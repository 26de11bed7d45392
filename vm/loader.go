package vm

import (
	"strconv"
	"strings"
)

// Bytecode mnemonics recognized by the loader's declaration-header state
// machine, as opposed to the per-instruction opcodes registered in
// instructionFactories (those only ever appear inside a METHOD_BEGIN/
// METHOD_END body, never at class/method/field declaration level).
const (
	classDefine     = "CLASS_DEFINE"
	classModifier   = "CLASS_MODIFIER"
	classExtends    = "CLASS_EXTENDS"
	classImplements = "CLASS_IMPLEMENTS"
	classBegin      = "CLASS_BEGIN"
	classEnd        = "CLASS_END"

	methodDefine     = "METHOD_DEFINE"
	methodModifier   = "METHOD_MODIFIER"
	methodReturnType = "METHOD_RETURN_TYPE"
	methodParameters = "METHOD_PARAMETERS"
	methodBegin      = "METHOD_BEGIN"
	methodEnd        = "METHOD_END"

	fieldDefine   = "FIELD_DEFINE"
	fieldBegin    = "FIELD_BEGIN"
	fieldEnd      = "FIELD_END"
)

type elementType uint8

const (
	elementNone elementType = iota
	elementClass
	elementMethod
	elementField
)

// loader is the class-body parsing state machine: one instance is created
// per class being built (including nested classes, recursively), mirroring
// Class::build in the original compiler. It tracks three independent
// nesting counters because a class body can declare nested classes,
// methods, and fields in any interleaving.
type loader struct {
	vm *VirtualMachine
}

func newLoader(machine *VirtualMachine) *loader { return &loader{vm: machine} }

// build parses bytecode as the body of a class named by the enclosing
// context (enclosingName is "" for the top-level program). It recurses into
// build for every nested class it discovers.
func (l *loader) build(bytecode []string, enclosingName string) error {
	className, classSuperclass := "<unk>", "Object"
	var classModifiers, classInterfaces []string

	methodName, methodReturnType_ := "<unk>", "V"
	var methodModifiers []string
	var methodParams []string

	fieldName := "<unk>"

	var content []string
	contentBegun := false

	var classOffset, methodOffset, fieldOffset uint
	current := elementNone

	for lineIndex, line := range bytecode {
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		instruction := args[0]

		switch {
		case contentBegun:
			switch {
			case instruction == classEnd:
				classOffset--
				if classOffset == 0 {
					contentBegun = false
					current = elementNone

					modifiers := maskModifiers(classModifiers)
					separator := "$"
					if modifiers.Has(Static) {
						separator = "."
					}
					nestedName := className
					if enclosingName != "" {
						nestedName = enclosingName + separator + className
					}

					if _, exists := l.vm.GetClass(nestedName); exists {
						return &LoadError{Class: nestedName, Message: "class is already defined", Cause: ErrClassRedefined}
					}

					nested := newClass(nestedName, classSuperclass, modifiers, classInterfaces, l.vm)
					if err := l.vm.defineClass(nested); err != nil {
						return err
					}
					if err := newLoader(l.vm).build(content, nestedName); err != nil {
						return err
					}

					className, classSuperclass = "<unk>", "Object"
					classModifiers, classInterfaces, content = nil, nil, nil
				} else {
					// This CLASS_END closes a class nested deeper than the one
					// we're currently buffering content for - keep it so the
					// recursive build() on this content sees a matching END.
					content = append(content, line)
				}

			case instruction == methodEnd && current == elementMethod:
				methodOffset--
				if methodOffset == 0 {
					contentBegun = false
					current = elementNone

					class, err := l.currentClass(enclosingName, className, classSuperclass, classModifiers, classInterfaces)
					if err != nil {
						return err
					}
					if _, exists := class.GetMethod(methodName, methodParams); exists {
						return &LoadError{Class: class.Name, Message: "method " + methodName + " is already defined", Cause: ErrMethodRedefined}
					}

					method := &Method{
						Name: methodName, ReturnType: methodReturnType_, Modifiers: maskModifiers(methodModifiers),
						Parameters: parseParameters(methodParams), Class: class,
					}
					executable := &Executable{Method: method, Class: class}
					body, err := parseInstructions(content, executable)
					if err != nil {
						return err
					}
					method.Body = body

					if err := class.DefineMethod(method); err != nil {
						return err
					}

					methodName, methodReturnType_ = "<unk>", "V"
					methodModifiers, methodParams, content = nil, nil, nil
				} else {
					content = append(content, line)
				}

			case instruction == fieldEnd && current == elementField:
				fieldOffset--
				if fieldOffset == 0 {
					contentBegun = false
					current = elementNone

					// Field body bytecode (static initializer instructions)
					// is intentionally left unparsed — see spec's open
					// question on Field semantics. We still register the
					// declaration itself so GetMethod/DefineMethod-style
					// lookups over a class's members stay complete.
					class, err := l.currentClass(enclosingName, className, classSuperclass, classModifiers, classInterfaces)
					if err != nil {
						return err
					}
					class.Fields.Set(fieldName, &Field{Name: fieldName, Class: class})

					fieldName = "<unk>"
					content = nil
				} else {
					content = append(content, line)
				}

			default:
				switch instruction {
				case classBegin:
					classOffset++
				case methodBegin:
					methodOffset++
				case fieldBegin:
					fieldOffset++
				}
				content = append(content, line)
			}

		case instruction == classDefine:
			if len(args) < 2 {
				return &LoadError{Class: enclosingName, Message: "CLASS_DEFINE missing a name", Cause: lineError(lineIndex)}
			}
			className = args[1]
			current = elementClass

		case instruction == methodDefine:
			if len(args) < 2 {
				return &LoadError{Class: enclosingName, Message: "METHOD_DEFINE missing a name", Cause: lineError(lineIndex)}
			}
			methodName = args[1]
			current = elementMethod

		case instruction == fieldDefine:
			if len(args) < 2 {
				return &LoadError{Class: enclosingName, Message: "FIELD_DEFINE missing a name", Cause: lineError(lineIndex)}
			}
			fieldName = args[1]
			current = elementField

		case current == elementClass:
			switch instruction {
			case classModifier:
				classModifiers = args[1:]
			case classExtends:
				if len(args) > 1 {
					classSuperclass = args[1]
				}
			case classImplements:
				classInterfaces = args[1:]
			case classBegin:
				classOffset++
				if classOffset == 1 {
					contentBegun = true
				}
			}

		case current == elementMethod:
			switch instruction {
			case methodModifier:
				methodModifiers = args[1:]
			case methodReturnType:
				if len(args) > 1 {
					methodReturnType_ = args[1]
				}
			case methodParameters:
				methodParams = args[1:]
			case methodBegin:
				methodOffset++
				if methodOffset == 1 {
					contentBegun = true
				}
			}

		case current == elementField:
			// Field modifier/type property setters are part of the open
			// FIELD_BEGIN/FIELD_END question (see fieldEnd handling above)
			// and are not parsed here, matching the original loader.
			if instruction == fieldBegin {
				fieldOffset++
				if fieldOffset == 1 {
					contentBegun = true
				}
			}
		}
	}

	// A top-level program (enclosingName == "") never registers itself as a
	// class; it only drives nested CLASS_DEFINE blocks through the state
	// machine above.
	return nil
}

// currentClass resolves (or, on the very first field/method of the
// top-level program body, builds) the Class these declarations belong to.
func (l *loader) currentClass(enclosingName, className, superclass string, modifiers, interfaces []string) (*Class, error) {
	name := enclosingName
	if name == "" {
		name = className
	}
	if class, ok := l.vm.GetClass(name); ok {
		return class, nil
	}
	class := newClass(name, superclass, maskModifiers(modifiers), interfaces, l.vm)
	if err := l.vm.defineClass(class); err != nil {
		return nil, err
	}
	return class, nil
}

// parseParameters converts METHOD_PARAMETERS' flat list of compact type
// signatures (spec's type-signature alphabet: V/I/J/F/D/Z/B/S/C, L<name>;,
// [T — e.g. "I I" for two ints) into Parameters. Bytecode carries no
// parameter names, so each is synthesized positionally for local-slot
// naming/debug output only; GetMethod/DefineMethod signature matching only
// ever compares Parameter.Type.
func parseParameters(raw []string) []Parameter {
	params := make([]Parameter, len(raw))
	for i, sig := range raw {
		params[i] = Parameter{Type: sig, Name: "arg" + strconv.Itoa(i)}
	}
	return params
}

// parseInstructions turns a method's raw bytecode lines into concrete
// Instruction values via the opcode registry.
func parseInstructions(lines []string, executable *Executable) ([]Instruction, error) {
	body := make([]Instruction, 0, len(lines))
	for i, line := range lines {
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		instr, ok := newInstruction(args[0])
		if !ok {
			return nil, &LoadError{Class: executable.Class.Name, Message: "unknown instruction " + args[0], Cause: lineError(i)}
		}
		if err := instr.Parse(args[1:], i, executable); err != nil {
			return nil, &LoadError{Class: executable.Class.Name, Message: "failed to parse instruction " + args[0], Cause: err}
		}
		body = append(body, instr)
	}
	return body, nil
}

type lineErr int

func (e lineErr) Error() string { return "at bytecode line " + strconv.Itoa(int(e)) }

func lineError(line int) error { return lineErr(line) }
