// Package csharp turns compiler-level .NET identifiers into the names a developer wrote.
//
// Method identifiers are decoded with two rules, checked in this order:
//
//	asyncStateMachine: "<" Name ">" X "__" Y "MoveNext():" Z   (X, Y, Z non-empty)
//	                   e.g. "<Run>d__3MoveNext():System.Void"   -> "Run()"
//	lambda:            "<" X ">" Y "__"                        (X, Y non-empty)
//	                   e.g. "<Compute>b__4(int)"                -> rejected
//
// The lambda rule is only consulted when the async rule does not match, so async
// methods are reported under their source name while closures and local functions
// are dropped.
package csharp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/model"
)

const (
	moveNextMarker   = "MoveNext():"
	generatedMarker  = "__"
	signatureSep     = ':'
	propertyGetter   = "get_"
	propertySetter   = "set_"
	accessorPrefixes = 4
)

var (
	genericClassRegex        = regexp.MustCompile("^(?P<Name>.+)`(?P<Number>\\d+)$")
	nestedTypeSeparatorRegex = regexp.MustCompile(`[+/]`)
)

// NormalizeMethodName decodes a method of the given declaring type.
// It returns false when the method is compiler generated and must not be reported.
func NormalizeMethodName(typeName, methodName string) (string, model.CodeElementType, bool) {
	name, ok := matchAsyncStateMachine(typeName + methodName)
	if !ok {
		name = stripSignature(methodName)
		if matchLambda(name) {
			return "", model.MethodElementType, false
		}
	}

	if strings.HasPrefix(name, propertyGetter) || strings.HasPrefix(name, propertySetter) {
		return name[accessorPrefixes:], model.PropertyElementType, true
	}
	return name, model.MethodElementType, true
}

// IsCompilerGeneratedClass reports whether a type name belongs to a synthetic container
// such as "<>c", "<>c__DisplayClass1_0", "<Run>d__3" or "<PrivateImplementationDetails>".
func IsCompilerGeneratedClass(name string) bool {
	return strings.ContainsRune(name, '<')
}

// FormatClassName renders nested separators as dots and generic arity as type parameters:
// "Outer+Inner" -> "Outer.Inner", "List`1" -> "List<T>", "Map`2" -> "Map<T1, T2>".
func FormatClassName(name string) string {
	display := nestedTypeSeparatorRegex.ReplaceAllString(name, ".")
	match := genericClassRegex.FindStringSubmatch(display)
	if match == nil {
		return display
	}

	base := match[genericClassRegex.SubexpIndex("Name")]
	argCount, _ := strconv.Atoi(match[genericClassRegex.SubexpIndex("Number")])
	if argCount <= 0 {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("<")
	for i := 1; i <= argCount; i++ {
		if i > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString("T")
		if argCount > 1 {
			sb.WriteString(strconv.Itoa(i))
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// stripSignature removes the return type, "Add(System.Int32):System.Int32" -> "Add(System.Int32)".
func stripSignature(methodName string) string {
	if i := strings.LastIndexByte(methodName, signatureSep); i >= 0 {
		return methodName[:i]
	}
	return methodName
}

// matchAsyncStateMachine implements the asyncStateMachine rule. The captured name runs
// from the first '<' to the last '>' that still leaves room for X "__" Y before MoveNext.
func matchAsyncStateMachine(s string) (string, bool) {
	end := lastMoveNext(s)
	if end < 0 {
		return "", false
	}
	head := s[:end]

	open := strings.IndexByte(head, '<')
	if open < 0 {
		return "", false
	}
	for gt := len(head) - 1; gt >= open+2; gt-- {
		if head[gt] != '>' {
			continue
		}
		if hasInnerMarker(head[gt+1:]) {
			return head[open+1:gt] + "()", true
		}
	}
	return "", false
}

// lastMoveNext returns the start of the last "MoveNext():" that is followed by at least one character.
func lastMoveNext(s string) int {
	for end := len(s); end > 0; {
		i := strings.LastIndex(s[:end], moveNextMarker)
		if i < 0 {
			return -1
		}
		if i+len(moveNextMarker) < len(s) {
			return i
		}
		end = i + len(moveNextMarker) - 1
	}
	return -1
}

// hasInnerMarker reports whether s is X "__" Y with X and Y non-empty.
func hasInnerMarker(s string) bool {
	for i := 1; i+len(generatedMarker) < len(s); i++ {
		if strings.HasPrefix(s[i:], generatedMarker) {
			return true
		}
	}
	return false
}

// matchLambda implements the lambda rule. The first '<' and the first '>' after it
// leave the most room for the rest of the pattern.
func matchLambda(s string) bool {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return false
	}
	for gt := open + 2; gt < len(s); gt++ {
		if s[gt] != '>' {
			continue
		}
		if gt+2 > len(s) {
			return false
		}
		return strings.Contains(s[gt+2:], generatedMarker)
	}
	return false
}
