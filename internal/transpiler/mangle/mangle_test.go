package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xcpp/internal/transpiler"
)

var (
	tInt   = transpiler.CType{C: "int", Abbrev: "int"}
	tFloat = transpiler.CType{C: "float", Abbrev: "float"}
	tI32   = transpiler.CType{C: "int32_t", Abbrev: "i32"}
)

func TestSignature(t *testing.T) {
	assert.Equal(t, "", Signature(nil))
	assert.Equal(t, "int", Signature([]transpiler.CType{tInt}))
	assert.Equal(t, "int_float", Signature([]transpiler.CType{tInt, tFloat}))
}

func TestMethod(t *testing.T) {
	tests := []struct {
		name       string
		class      string
		method     string
		overloaded bool
		params     []transpiler.CType
		expected   string
	}{
		{
			name:     "plain method",
			class:    "LED",
			method:   "isOn",
			expected: "LED_isOn",
		},
		{
			name:       "overloaded int int",
			class:      "MathUtils",
			method:     "add",
			overloaded: true,
			params:     []transpiler.CType{tInt, tInt},
			expected:   "MathUtils_add_int_int",
		},
		{
			name:       "overloaded float float",
			class:      "MathUtils",
			method:     "add",
			overloaded: true,
			params:     []transpiler.CType{tFloat, tFloat},
			expected:   "MathUtils_add_float_float",
		},
		{
			name:       "overloaded but parameterless keeps plain name",
			class:      "Timer",
			method:     "reset",
			overloaded: true,
			expected:   "Timer_reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Method(tt.class, tt.method, tt.overloaded, tt.params))
		})
	}
}

func TestMethodCollidingMappedTypes(t *testing.T) {
	// Two source overloads whose parameter types map to the same target
	// type produce the same name; the builder turns this into NameCollision.
	a := Method("MathUtils", "add", true, []transpiler.CType{tI32, tI32})
	b := Method("MathUtils", "add", true, []transpiler.CType{tI32, tI32})
	assert.Equal(t, a, b)
}

func TestCtor(t *testing.T) {
	assert.Equal(t, "LED_init", Ctor("LED", true, nil))
	assert.Equal(t, "LED_init", Ctor("LED", true, []transpiler.CType{tInt}))
	assert.Equal(t, "LED_init_int", Ctor("LED", false, []transpiler.CType{tInt}))
	assert.Equal(t, "LED_init_int_float", Ctor("LED", false, []transpiler.CType{tInt, tFloat}))
}

func TestDtor(t *testing.T) {
	assert.Equal(t, "LED_cleanup", Dtor("LED"))
}

func TestFreeFunction(t *testing.T) {
	assert.Equal(t, "helper", FreeFunction("helper", false, nil))
	assert.Equal(t, "add_int_int", FreeFunction("add", true, []transpiler.CType{tInt, tInt}))
	assert.Equal(t, "main", FreeFunction("main", false, nil))
	assert.Equal(t, "main", FreeFunction("main", true, []transpiler.CType{tInt}))
}

func TestOperatorName(t *testing.T) {
	tests := []struct {
		op       string
		expected string
	}{
		{"+", "add"},
		{"-", "subtract"},
		{"==", "equals"},
		{"=", "assign"},
		{"+=", "compound_add"},
		{"[]", "index"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			name, ok := OperatorName(tt.op)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, name)
		})
	}

	_, ok := OperatorName("<=>")
	assert.False(t, ok)
}
