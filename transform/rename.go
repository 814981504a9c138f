package transform

import (
	"strings"
	"unicode"

	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/types"
)

// csharpKeywords are the reserved words that can't be used as plain
// identifiers in emitted C# source (§4, "Renaming & Keyword Escape").
var csharpKeywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true,
	"default": true, "delegate": true, "do": true, "double": true,
	"else": true, "enum": true, "event": true, "explicit": true,
	"extern": true, "false": true, "finally": true, "fixed": true,
	"float": true, "for": true, "foreach": true, "goto": true, "if": true,
	"implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true,
	"namespace": true, "new": true, "null": true, "object": true,
	"operator": true, "out": true, "override": true, "params": true,
	"private": true, "protected": true, "public": true, "readonly": true,
	"ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true,
	"string": true, "struct": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true, "uint": true,
	"ulong": true, "unchecked": true, "unsafe": true, "ushort": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
}

// ToPascalCase converts a camelCase or snake_case source identifier to
// the PascalCase C# emits for public members (§4, "Case conversion").
func ToPascalCase(name string) string {
	return convertCase(name, true)
}

// ToCamelCase converts to the camelCase C# emits for parameters and
// locals.
func ToCamelCase(name string) string {
	return convertCase(name, false)
}

func convertCase(name string, upperFirst bool) string {
	if name == "" {
		return name
	}
	parts := splitWords(name)
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !upperFirst {
			b.WriteString(strings.ToLower(part[:1]))
		} else {
			b.WriteString(strings.ToUpper(part[:1]))
		}
		if len(part) > 1 {
			b.WriteString(strings.ToLower(part[1:]))
		}
	}
	return b.String()
}

// splitWords breaks a source identifier on underscores and
// camelCase/PascalCase boundaries.
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' {
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			words = append(words, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// EscapeKeyword prefixes a C# reserved word with "@" so it remains a
// valid identifier (§7, "Silent recovery... case conversion producing
// a reserved word (escaped)").
func EscapeKeyword(name string) string {
	if csharpKeywords[name] {
		return "@" + name
	}
	return name
}

// DeclareLocal runs the full rename pipeline for a local variable
// being introduced in s: camelCase conversion, keyword escape, then
// collision-avoidance numeric suffixing (§4.2). It reports whether a
// RenamedForCollision diagnostic should be raised.
func DeclareLocal(s *scope.Stack, srcName string, t types.Type) (string, bool) {
	candidate := EscapeKeyword(ToCamelCase(srcName))
	target := s.DeclareAs(srcName, candidate, t)
	return target, target != candidate
}
