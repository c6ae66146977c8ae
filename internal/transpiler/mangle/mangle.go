// Package mangle synthesizes the final C identifiers for class members and
// free functions. Names are deterministic functions of the class name, the
// member name, and the mapped parameter types, so the same model always
// yields the same identifiers.
package mangle

import "xcpp/internal/transpiler"

// operatorNames is the fixed translation table for operator overloads.
// Operators without an entry are reported as UnsupportedConstruct by the
// model builder and dropped.
var operatorNames = map[string]string{
	"+":  "add",
	"-":  "subtract",
	"*":  "multiply",
	"/":  "divide",
	"%":  "modulo",
	"==": "equals",
	"!=": "not_equals",
	"<":  "less_than",
	">":  "greater_than",
	"<=": "less_equal",
	">=": "greater_equal",
	"=":  "assign",
	"+=": "compound_add",
	"-=": "compound_subtract",
	"*=": "compound_multiply",
	"/=": "compound_divide",
	"!":  "logical_not",
	"[]": "index",
	"()": "call",
	"++": "increment",
	"--": "decrement",
}

// OperatorName translates an operator token to its function-name form.
func OperatorName(op string) (string, bool) {
	name, ok := operatorNames[op]
	return name, ok
}

// Signature returns the positional parameter-type signature used for
// overload disambiguation: the mapped-type abbreviations joined with
// underscores. Empty for a parameterless member.
func Signature(params []transpiler.CType) string {
	sig := ""
	for i, p := range params {
		if i > 0 {
			sig += "_"
		}
		sig += p.Abbrev
	}
	return sig
}

// Method returns the emitted name for a method of class. Overloaded methods
// carry the signature suffix; a method whose name is unique in its class
// stays plain Class_name.
func Method(class, name string, overloaded bool, params []transpiler.CType) string {
	out := class + "_" + name
	if overloaded && len(params) > 0 {
		out += "_" + Signature(params)
	}
	return out
}

// Ctor returns the emitted lifecycle-init name for a constructor. The
// primary constructor owns Class_init; secondary constructors carry the
// signature suffix.
func Ctor(class string, primary bool, params []transpiler.CType) string {
	if primary || len(params) == 0 {
		return class + "_init"
	}
	return class + "_init_" + Signature(params)
}

// Dtor returns the emitted lifecycle-cleanup name for a class.
func Dtor(class string) string {
	return class + "_cleanup"
}

// FreeFunction returns the emitted name for a free function. main is never
// mangled; overloaded functions carry the signature suffix.
func FreeFunction(name string, overloaded bool, params []transpiler.CType) string {
	if name == "main" {
		return name
	}
	if overloaded && len(params) > 0 {
		return name + "_" + Signature(params)
	}
	return name
}
