package parser

import (
	"fmt"

	"github.com/voidlang/void/ast"
	"github.com/voidlang/void/token"
)

var modifierWords = map[string]ast.Modifier{
	"public":       ast.Public,
	"private":      ast.Private,
	"protected":    ast.Protected,
	"static":       ast.Static,
	"final":        ast.Final,
	"abstract":     ast.Abstract,
	"native":       ast.Native,
	"synchronized": ast.Synchronized,
	"default":      ast.Default,
	"volatile":     ast.Volatile,
	"transient":    ast.Transient,
}

// declKind distinguishes the node kinds parseModifiers validates against;
// the recognized modifier set depends on which one is being parsed.
type declKind uint8

const (
	classDecl declKind = iota
	methodDecl
	fieldDecl
)

func (k declKind) String() string {
	switch k {
	case classDecl:
		return "a type declaration"
	case methodDecl:
		return "a method"
	case fieldDecl:
		return "a field"
	default:
		return "a declaration"
	}
}

// baseModifiers is shared by every node kind: visibility, static and final,
// plus abstract (types and methods; harmless to also allow on a field since
// it carries no separate meaning there, matching the original compiler's
// single shared "base set").
var baseModifiers = map[string]bool{
	"public": true, "private": true, "protected": true,
	"static": true, "final": true, "abstract": true,
}

// allowedModifiers maps each node kind to its recognized modifier words
// (spec.md §4.3: classes accept the base set; methods additionally accept
// native/synchronized/default; fields additionally accept volatile/transient).
var allowedModifiers = map[declKind]map[string]bool{
	classDecl:  baseModifiers,
	methodDecl: union(baseModifiers, "native", "synchronized", "default"),
	fieldDecl:  union(baseModifiers, "volatile", "transient"),
}

func union(base map[string]bool, extra ...string) map[string]bool {
	out := make(map[string]bool, len(base)+len(extra))
	for k := range base {
		out[k] = true
	}
	for _, k := range extra {
		out[k] = true
	}
	return out
}

// parseModifierWords consumes every leading modifier keyword, returning the
// raw tokens in encounter order. It stops at the first token that isn't a
// recognized modifier word, leaving it for the caller to parse next. The
// recognized set isn't known to be enforced here because the node kind
// (class/method/field) isn't determined until after these tokens and the
// declaration that follows them have been read; see buildModifierMask.
func (p *Parser) parseModifierWords() []token.Token {
	var words []token.Token
	for {
		t := p.cursor.Peek()
		if !t.Is(token.Keyword) {
			return words
		}
		if _, ok := modifierWords[t.Value]; !ok {
			return words
		}
		p.cursor.Get()
		words = append(words, t)
	}
}

// buildModifierMask packs a modifier word list into a bitmask, rejecting
// any word outside the set recognized for kind (spec.md §4.3: "the
// recognized set depends on the node kind ... Unknown modifiers fail").
func buildModifierMask(words []token.Token, kind declKind) (ast.Modifier, error) {
	allowed := allowedModifiers[kind]
	var mask ast.Modifier
	for _, t := range words {
		if !allowed[t.Value] {
			return 0, &ParseError{
				At:      t,
				Message: fmt.Sprintf("modifier %q is not allowed on %s", t.Value, kind),
				Cause:   ErrDisallowedModifier,
			}
		}
		mask |= modifierWords[t.Value]
	}
	return mask, nil
}
