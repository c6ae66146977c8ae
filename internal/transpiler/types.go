package transpiler

import "strings"

// Declaration is a single parsed construct extracted from the front-end's
// AST dump. The set of implementations is closed: consumers switch over the
// concrete types exhaustively instead of probing attributes.
type Declaration interface {
	declNode()
}

// Param is a single parameter of a method, constructor, or free function.
type Param struct {
	Name string // synthesized (a, b, c, ...) when the dump carries no name
	Type string // source type spelling, e.g. "unsigned int"
}

// FieldDecl is a data member of a class.
type FieldDecl struct {
	Name     string
	Type     string // source type spelling
	IsStatic bool
}

func (FieldDecl) declNode() {}

// MethodDecl is a member function of a class. Operator overloads are
// represented with IsOperator set and Operator holding the token ("+", "==").
type MethodDecl struct {
	Name       string
	Params     []Param
	ReturnType string
	IsConst    bool
	IsStatic   bool
	IsOperator bool
	Operator   string
	Body       string // raw source body, empty when unavailable
	HasBody    bool
}

func (MethodDecl) declNode() {}

// CtorDecl is a user-declared constructor.
type CtorDecl struct {
	Params  []Param
	Body    string
	HasBody bool
}

func (CtorDecl) declNode() {}

// DtorDecl is a user-declared destructor.
type DtorDecl struct {
	Body    string
	HasBody bool
}

func (DtorDecl) declNode() {}

// ClassDecl aggregates the members of one class in source order.
// Field order determines struct layout; method order determines emission
// order. ExtraBases holds any base beyond the first, which the model builder
// rejects as multiple inheritance.
type ClassDecl struct {
	Name       string
	Base       string // empty when the class has no base
	ExtraBases []string
	Fields     []FieldDecl
	Methods    []MethodDecl
	Ctors      []CtorDecl
	Dtor       *DtorDecl
}

func (ClassDecl) declNode() {}

// FreeFunctionDecl is a function declared at namespace scope, including main.
type FreeFunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       string
	HasBody    bool
}

func (FreeFunctionDecl) declNode() {}

// CType is an entry in the fixed target type vocabulary.
type CType struct {
	C       string // emitted spelling, e.g. "uint8_t"
	Abbrev  string // mangled-name abbreviation, e.g. "u8"
	IsClass bool   // user-defined struct type
}

// IsVoid reports whether the type is the void type.
func (t CType) IsVoid() bool { return t.C == "void" }

// Zero returns the C literal used to zero-initialize a value of this type.
// Class types have no literal; their lifecycle init is called instead.
func (t CType) Zero() string {
	switch t.C {
	case "bool":
		return "false"
	case "float":
		return "0.0f"
	case "double":
		return "0.0"
	case "char":
		return "'\\0'"
	}
	return "0"
}

// ClassState tracks a class through the resolution pipeline.
type ClassState int

const (
	StateRegistered ClassState = iota
	StateBaseResolving
	StateFieldsResolved
	StateMethodsResolved
	StateEmitted
	StateSkipped
)

func (s ClassState) String() string {
	switch s {
	case StateRegistered:
		return "Registered"
	case StateBaseResolving:
		return "BaseResolving"
	case StateFieldsResolved:
		return "FieldsResolved"
	case StateMethodsResolved:
		return "MethodsResolved"
	case StateEmitted:
		return "Emitted"
	case StateSkipped:
		return "Skipped"
	}
	return "Unknown"
}

// LayoutField is one entry of a class's resolved instance layout.
type LayoutField struct {
	Name   string
	Type   CType
	IsBase bool // embedded base layout, always the first entry when present
}

// StaticField is a class data member promoted to file-scope storage.
type StaticField struct {
	Name        string
	Type        CType
	EmittedName string // e.g. "Counter_total"
}

// ResolvedParam is a parameter with its mapped target type.
type ResolvedParam struct {
	Name string
	Type CType
}

// ResolvedMethod is a method with its final emitted name and mapped types.
type ResolvedMethod struct {
	Decl        MethodDecl
	EmittedName string
	Params      []ResolvedParam
	Return      CType
}

// ResolvedCtor is a constructor bound to its lifecycle function name.
// The primary constructor (the zero-argument one, or the first declared when
// no zero-argument constructor exists) owns the plain C_init name.
type ResolvedCtor struct {
	Decl        CtorDecl
	EmittedName string
	Params      []ResolvedParam
	Primary     bool
}

// MethodKey identifies one overload within a class's method table.
type MethodKey struct {
	Name      string
	Signature string // positional mapped-type signature, e.g. "int_float"
}

// ResolvedFunction is a free function with its final emitted name.
type ResolvedFunction struct {
	Decl        FreeFunctionDecl
	EmittedName string
	Params      []ResolvedParam
	Return      CType
}

// ClassModel is the resolved, layout-complete view of one class. Models are
// created once, in dependency order (base before derived), and are read-only
// after the builder places them in the registry.
type ClassModel struct {
	Name string
	Base *ClassModel // nil when the class has no base

	LayoutFields []LayoutField
	Statics      []StaticField
	Methods      []ResolvedMethod // source declaration order
	MethodTable  map[MethodKey]string
	Ctors        []ResolvedCtor
	Dtor         *DtorDecl

	HasDestructor bool
	HasUserCtors  bool
	State         ClassState
	SkipReason    string
}

// Unit is the fully resolved model of one translation unit.
type Unit struct {
	Classes   []*ClassModel // dependency order: base before derived
	Functions []ResolvedFunction
	Main      *ResolvedFunction
}

// ClassByName returns the resolved class with the given name, or nil.
func (u *Unit) ClassByName(name string) *ClassModel {
	for _, c := range u.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// NormalizeSourceType strips qualifiers and reference markers that do not
// affect the mapped target type: leading/trailing const, '&', and redundant
// whitespace. Pointers are left intact so the mapper can reject them.
func NormalizeSourceType(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "&")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "const ")
	s = strings.TrimSuffix(s, " const")
	return strings.Join(strings.Fields(s), " ")
}
