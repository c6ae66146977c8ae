package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSourceType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int", "int"},
		{" unsigned   int ", "unsigned int"},
		{"const int", "int"},
		{"int const", "int"},
		{"const Vec &", "Vec"},
		{"bool", "bool"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSourceType(tt.input))
		})
	}
}

func TestCTypeZero(t *testing.T) {
	assert.Equal(t, "false", CType{C: "bool"}.Zero())
	assert.Equal(t, "0.0f", CType{C: "float"}.Zero())
	assert.Equal(t, "0.0", CType{C: "double"}.Zero())
	assert.Equal(t, "'\\0'", CType{C: "char"}.Zero())
	assert.Equal(t, "0", CType{C: "int"}.Zero())
	assert.Equal(t, "0", CType{C: "uint8_t"}.Zero())
}

func TestClassStateString(t *testing.T) {
	assert.Equal(t, "Registered", StateRegistered.String())
	assert.Equal(t, "BaseResolving", StateBaseResolving.String())
	assert.Equal(t, "FieldsResolved", StateFieldsResolved.String())
	assert.Equal(t, "MethodsResolved", StateMethodsResolved.String())
	assert.Equal(t, "Emitted", StateEmitted.String())
	assert.Equal(t, "Skipped", StateSkipped.String())
}

func TestUnitClassByName(t *testing.T) {
	led := &ClassModel{Name: "LED"}
	u := &Unit{Classes: []*ClassModel{led}}
	assert.Equal(t, led, u.ClassByName("LED"))
	assert.Nil(t, u.ClassByName("Missing"))
}
