// Package typemap maps source type spellings onto the fixed C target type
// vocabulary. Mapping is pure: the same input always yields the same CType,
// and unknown types resolve to a configured fallback integer type with a
// non-fatal TypeFallback diagnostic.
package typemap

import (
	"xcpp/internal/diag"
	"xcpp/internal/transpiler"
)

// ClassLookup answers whether a name is a registered class of the current
// unit. The class registry satisfies this.
type ClassLookup interface {
	Has(name string) bool
}

// builtins is the fixed table: boolean, the char/int families keyed by
// bit-width and signedness, the float family, void, and size_t. Source
// spellings that denote the same target width share one entry.
var builtins = map[string]transpiler.CType{
	"void":   {C: "void", Abbrev: "void"},
	"bool":   {C: "bool", Abbrev: "bool"},
	"char":   {C: "char", Abbrev: "char"},
	"float":  {C: "float", Abbrev: "float"},
	"double": {C: "double", Abbrev: "double"},

	"int":          {C: "int", Abbrev: "int"},
	"unsigned":     {C: "unsigned int", Abbrev: "uint"},
	"unsigned int": {C: "unsigned int", Abbrev: "uint"},

	"signed char":   {C: "int8_t", Abbrev: "i8"},
	"unsigned char": {C: "uint8_t", Abbrev: "u8"},

	"short":          {C: "int16_t", Abbrev: "i16"},
	"short int":      {C: "int16_t", Abbrev: "i16"},
	"unsigned short": {C: "uint16_t", Abbrev: "u16"},

	"long":          {C: "int32_t", Abbrev: "i32"},
	"long int":      {C: "int32_t", Abbrev: "i32"},
	"unsigned long": {C: "uint32_t", Abbrev: "u32"},

	"long long":          {C: "int64_t", Abbrev: "i64"},
	"unsigned long long": {C: "uint64_t", Abbrev: "u64"},

	"int8_t":   {C: "int8_t", Abbrev: "i8"},
	"uint8_t":  {C: "uint8_t", Abbrev: "u8"},
	"int16_t":  {C: "int16_t", Abbrev: "i16"},
	"uint16_t": {C: "uint16_t", Abbrev: "u16"},
	"int32_t":  {C: "int32_t", Abbrev: "i32"},
	"uint32_t": {C: "uint32_t", Abbrev: "u32"},
	"int64_t":  {C: "int64_t", Abbrev: "i64"},
	"uint64_t": {C: "uint64_t", Abbrev: "u64"},

	"size_t": {C: "size_t", Abbrev: "usize"},
}

// Mapper resolves source types for one translation unit.
type Mapper struct {
	fallback transpiler.CType
	aliases  map[string]string // user-configured source -> builtin spelling
	classes  ClassLookup
	diags    *diag.Collector
}

// NewMapper creates a mapper with the given fallback integer type spelling.
// An unknown fallback spelling falls back to plain int. Aliases let the
// caller map project-specific typedef names onto builtin spellings.
func NewMapper(fallback string, aliases map[string]string, classes ClassLookup, diags *diag.Collector) *Mapper {
	fb, ok := builtins[fallback]
	if !ok {
		fb = builtins["int"]
	}
	return &Mapper{
		fallback: fb,
		aliases:  aliases,
		classes:  classes,
		diags:    diags,
	}
}

// Fallback returns the configured fallback integer type.
func (m *Mapper) Fallback() transpiler.CType {
	return m.fallback
}

// Map resolves a source type spelling to a target type. Class and member
// name the declaration site for the TypeFallback diagnostic; either may be
// empty. Mapping never fails: anything outside the table and the class
// registry becomes the fallback type.
func (m *Mapper) Map(sourceType, class, member string) transpiler.CType {
	name := transpiler.NormalizeSourceType(sourceType)
	if name == "" {
		return builtins["void"]
	}

	if alias, ok := m.aliases[name]; ok {
		name = alias
	}
	if t, ok := builtins[name]; ok {
		return t
	}
	if m.classes != nil && m.classes.Has(name) {
		// Self-referential struct types map to themselves by identity.
		return transpiler.CType{C: name, Abbrev: name, IsClass: true}
	}

	m.diags.Warnf(diag.CodeTypeFallback, class, member,
		"type %q has no C mapping, defaulting to %s", sourceType, m.fallback.C)
	return m.fallback
}

// Builtin looks up a spelling in the fixed table without fallback handling.
func Builtin(name string) (transpiler.CType, bool) {
	t, ok := builtins[name]
	return t, ok
}
