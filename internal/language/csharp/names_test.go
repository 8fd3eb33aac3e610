package csharp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/model"
)

func TestNormalizeMethodName(t *testing.T) {
	testCases := []struct {
		name         string
		typeName     string
		methodName   string
		expectedName string
		expectedType model.CodeElementType
		expectedOk   bool
	}{
		{
			name:         "Plain method keeps parameters and drops return type",
			typeName:     "Calc",
			methodName:   "Add(System.Int32,System.Int32):System.Int32",
			expectedName: "Add(System.Int32,System.Int32)",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
		{
			name:         "Async state machine resolves to source method",
			typeName:     "<Run>d__3",
			methodName:   "MoveNext():System.Void",
			expectedName: "Run()",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
		{
			name:         "Async state machine with spaced return type",
			typeName:     "<Run>d__3",
			methodName:   "MoveNext(): bool",
			expectedName: "Run()",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
		{
			name:         "Async state machine of a generic method",
			typeName:     "<Load<T>>d__12",
			methodName:   "MoveNext():System.Void",
			expectedName: "Load<T>()",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
		{
			// The outer '>' leaves only "d" before MoveNext, so the capture stops at the inner one.
			name:         "Async lambda keeps the closure prefix",
			typeName:     "<<Main>b__0>d",
			methodName:   "MoveNext():System.Void",
			expectedName: "<Main()",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
		{
			name:         "Lambda is rejected",
			typeName:     "Calc",
			methodName:   "<Compute>b__4(int)",
			expectedType: model.MethodElementType,
			expectedOk:   false,
		},
		{
			name:         "Closure method in display class is rejected",
			typeName:     "<>c",
			methodName:   "<Main>b__0_0(System.Object):System.Void",
			expectedType: model.MethodElementType,
			expectedOk:   false,
		},
		{
			name:         "Local function is rejected",
			typeName:     "Calc",
			methodName:   "<Sum>g__Inner|2_0(System.Int32):System.Int32",
			expectedType: model.MethodElementType,
			expectedOk:   false,
		},
		{
			name:         "Getter becomes property",
			typeName:     "Calc",
			methodName:   "get_Total",
			expectedName: "Total",
			expectedType: model.PropertyElementType,
			expectedOk:   true,
		},
		{
			name:         "Setter with signature becomes property",
			typeName:     "Calc",
			methodName:   "set_Total(System.Int32):System.Void",
			expectedName: "Total(System.Int32)",
			expectedType: model.PropertyElementType,
			expectedOk:   true,
		},
		{
			name:         "MoveNext outside a generated type is a normal method",
			typeName:     "Enumerator",
			methodName:   "MoveNext():System.Boolean",
			expectedName: "MoveNext()",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
		{
			name:         "MoveNext without return type is not async",
			typeName:     "<Run>d__3",
			methodName:   "MoveNext()",
			expectedName: "MoveNext()",
			expectedType: model.MethodElementType,
			expectedOk:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, elementType, ok := NormalizeMethodName(tc.typeName, tc.methodName)

			assert.Equal(t, tc.expectedOk, ok)
			if tc.expectedOk {
				assert.Equal(t, tc.expectedName, name)
				assert.Equal(t, tc.expectedType, elementType)
			}
		})
	}
}

func TestMatchAsyncStateMachine(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "<Run>d__3MoveNext():System.Void", expected: "Run()", ok: true},
		{input: "Calc<Run>d__3MoveNext():System.Void", expected: "Run()", ok: true},
		{input: "<Run>d__MoveNext():System.Void", expected: "", ok: false},
		{input: "<Run>__3MoveNext():System.Void", expected: "", ok: false},
		{input: "<>d__3MoveNext():System.Void", expected: "", ok: false},
		{input: "<Run>d__3MoveNext():", expected: "", ok: false},
		{input: "Run d__3MoveNext():System.Void", expected: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			name, ok := matchAsyncStateMachine(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, name)
		})
	}
}

func TestMatchLambda(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{input: "<Compute>b__4(int)", expected: true},
		{input: "<Main>b__0_0", expected: true},
		{input: "<Compute>__4", expected: false},
		{input: "<>b__4", expected: false},
		{input: "Compute(int)", expected: false},
		{input: "op_LessThan(A,A)", expected: false},
		{input: "<Compute>b_", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchLambda(tc.input))
		})
	}
}

func TestIsCompilerGeneratedClass(t *testing.T) {
	assert.True(t, IsCompilerGeneratedClass("App.<>c"))
	assert.True(t, IsCompilerGeneratedClass("App.<>c__DisplayClass1_0"))
	assert.True(t, IsCompilerGeneratedClass("App.<Run>d__3"))
	assert.True(t, IsCompilerGeneratedClass("<PrivateImplementationDetails>"))
	assert.False(t, IsCompilerGeneratedClass("App.Calc"))
	assert.False(t, IsCompilerGeneratedClass("App.List`1"))
}

func TestFormatClassName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "App.Calc", expected: "App.Calc"},
		{input: "App.Outer+Inner", expected: "App.Outer.Inner"},
		{input: "App.Outer/Inner", expected: "App.Outer.Inner"},
		{input: "App.List`1", expected: "App.List<T>"},
		{input: "App.Map`2", expected: "App.Map<T1, T2>"},
		{input: "App.Empty`0", expected: "App.Empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatClassName(tc.input))
		})
	}
}
