package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/voidlang/void/ast"
	"github.com/voidlang/void/lexer"
	"github.com/voidlang/void/parser"
	"github.com/voidlang/void/vm"
)

var Description = strings.ReplaceAll(`
Voidc is the reference toolchain for the Void language: it parses Void
source into an abstract syntax tree, and loads/executes the textual
bytecode the language's compiler backend would otherwise emit.
`, "\n", " ")

var Voidc = cli.New(Description).
	WithCommand(cli.NewCommand("parse", "Parses a source file and dumps its AST").
		WithArg(cli.NewArg("input", "The Void source (.void) file to parse").WithType(cli.TypeString)).
		WithAction(ParseHandler)).
	WithCommand(cli.NewCommand("run", "Loads a bytecode file and executes its Main.main()").
		WithArg(cli.NewArg("input", "The textual bytecode (.voidbc) file to run").WithType(cli.TypeString)).
		WithAction(RunHandler))

// ParseHandler lexes and parses the given source file, printing the
// resulting top-level declarations (and any recovered parse errors) to
// stdout in the AST's own debug format.
func ParseHandler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	tokens, err := lexer.New(content).Scan()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'lexing' pass: %s\n", err)
		return -1
	}

	nodes := parser.New(tokens).ParseAll()

	failures := 0
	for _, node := range nodes {
		if ast.Is(node, ast.Error) {
			failures++
		}
		fmt.Println(node.Debug(0))
	}
	if failures > 0 {
		fmt.Printf("ERROR: %d declaration(s) failed to parse\n", failures)
		return -1
	}

	return 0
}

// RunHandler loads a bytecode file's class definitions into a fresh
// VirtualMachine, resolves cross-class references, and invokes the
// program's entry point: a static, no-argument Main.main().
func RunHandler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	machine := vm.New()
	if err := machine.Load(strings.Split(string(content), "\n")); err != nil {
		fmt.Printf("ERROR: Unable to complete 'load' pass: %s\n", err)
		return -1
	}
	if err := machine.Initialize(); err != nil {
		fmt.Printf("ERROR: Unable to complete 'initialize' pass: %s\n", err)
		return -1
	}

	class, ok := machine.GetClass("Main")
	if !ok {
		fmt.Printf("ERROR: No Main class defined in %s\n", args[0])
		return -1
	}
	method, ok := class.GetMethod("main", nil)
	if !ok || !method.Modifiers.Has(vm.Static) {
		fmt.Printf("ERROR: Main class has no static main() method\n")
		return -1
	}

	result, err := machine.Invoke(method, nil, nil)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'execute' pass: %s\n", err)
		return -1
	}
	if result != nil {
		fmt.Printf("%v\n", result)
	}

	return 0
}

func main() { os.Exit(Voidc.Run(os.Args, os.Stdout)) }
