// Package model builds the resolved semantic model of one translation unit.
//
// Resolution is two-pass: pass 1 registers every class name as a placeholder
// so forward and dangling base references are detectable; pass 2 resolves
// each class in dependency order, base first. Inheritance cycles are
// detected with the registry state machine (a base found in BaseResolving
// state closes a cycle) and skip only the classes on the cycle.
package model

import (
	"fmt"
	"strings"

	"xcpp/internal/diag"
	"xcpp/internal/transpiler"
	"xcpp/internal/transpiler/mangle"
	"xcpp/internal/transpiler/registry"
	"xcpp/internal/transpiler/typemap"
)

// baseFieldName is the name of the embedded base layout field. It sits at
// offset 0 so a derived pointer reinterprets safely as a base pointer.
const baseFieldName = "base"

// Builder resolves declarations into class models and free functions.
type Builder struct {
	reg   *registry.ClassRegistry
	types *typemap.Mapper
	diags *diag.Collector

	decls map[string]transpiler.ClassDecl
	path  []string // base-resolution path for cycle reporting
}

// NewBuilder creates a model builder writing into the given registry.
func NewBuilder(reg *registry.ClassRegistry, types *typemap.Mapper, diags *diag.Collector) *Builder {
	return &Builder{
		reg:   reg,
		types: types,
		diags: diags,
		decls: make(map[string]transpiler.ClassDecl),
	}
}

// Build resolves the full declaration list into a unit model. Structural
// invalidity (duplicate class definitions) aborts the unit; everything else
// degrades to per-class or per-member diagnostics.
func (b *Builder) Build(decls []transpiler.Declaration) (*transpiler.Unit, error) {
	var classOrder []string
	var freeFns []transpiler.FreeFunctionDecl

	// Pass 1: register placeholders.
	for _, d := range decls {
		switch decl := d.(type) {
		case transpiler.ClassDecl:
			model, fresh := b.reg.Register(decl.Name)
			if !fresh {
				b.diags.Fatalf(diag.CodeMalformedInput, decl.Name, "",
					"class %q is defined more than once in this unit", decl.Name)
				return nil, fmt.Errorf("duplicate class definition %q", decl.Name)
			}
			b.decls[decl.Name] = decl
			classOrder = append(classOrder, decl.Name)

			if len(decl.ExtraBases) > 0 {
				b.diags.Warnf(diag.CodeMultipleInheritance, decl.Name, "",
					"class %q has %d base classes, only single inheritance is supported",
					decl.Name, 1+len(decl.ExtraBases))
				b.skip(model, "multiple inheritance")
			}
		case transpiler.FreeFunctionDecl:
			freeFns = append(freeFns, decl)
		}
	}

	// Pass 2: resolve in dependency order.
	for _, name := range classOrder {
		b.resolve(name)
	}

	unit := &transpiler.Unit{Classes: b.reg.Resolved()}
	b.resolveFreeFunctions(unit, freeFns)
	return unit, nil
}

// resolve brings one class to MethodsResolved, resolving its base first.
// Returns false when the class ended up skipped.
func (b *Builder) resolve(name string) bool {
	model, ok := b.reg.Lookup(name)
	if !ok {
		return false
	}
	switch model.State {
	case transpiler.StateSkipped:
		return false
	case transpiler.StateFieldsResolved, transpiler.StateMethodsResolved, transpiler.StateEmitted:
		return true
	}

	decl := b.decls[name]
	model.State = transpiler.StateBaseResolving
	b.path = append(b.path, name)
	defer func() { b.path = b.path[:len(b.path)-1] }()

	if decl.Base != "" {
		baseModel, registered := b.reg.Lookup(decl.Base)
		if !registered {
			b.diags.Warnf(diag.CodeUnsupportedConstruct, name, "",
				"base class %q of %q is not defined in this unit", decl.Base, name)
			b.skip(model, "undefined base "+decl.Base)
			return false
		}
		if baseModel.State == transpiler.StateBaseResolving {
			b.reportCycle(decl.Base)
			return false
		}
		if !b.resolve(decl.Base) {
			if model.State != transpiler.StateSkipped {
				b.diags.Warnf(diag.CodeUnsupportedConstruct, name, "",
					"base class %q of %q was skipped", decl.Base, name)
				b.skip(model, "base "+decl.Base+" skipped")
			}
			return false
		}
		model.Base = baseModel
		model.LayoutFields = append(model.LayoutFields, transpiler.LayoutField{
			Name:   baseFieldName,
			Type:   transpiler.CType{C: baseModel.Name, Abbrev: baseModel.Name, IsClass: true},
			IsBase: true,
		})
	}

	for _, f := range decl.Fields {
		t := b.types.Map(f.Type, name, f.Name)
		if f.IsStatic {
			model.Statics = append(model.Statics, transpiler.StaticField{
				Name:        f.Name,
				Type:        t,
				EmittedName: name + "_" + f.Name,
			})
			continue
		}
		model.LayoutFields = append(model.LayoutFields, transpiler.LayoutField{Name: f.Name, Type: t})
	}
	model.State = transpiler.StateFieldsResolved

	if !b.resolveMembers(model, decl) {
		return false
	}

	model.State = transpiler.StateMethodsResolved
	b.reg.MarkResolved(name)
	return true
}

// reportCycle marks every class on the active resolution path from the
// cycle entry point as skipped and records one InheritanceCycle diagnostic
// naming the chain.
func (b *Builder) reportCycle(backEdge string) {
	start := 0
	for i, p := range b.path {
		if p == backEdge {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, b.path[start:]...), backEdge)
	b.diags.Warnf(diag.CodeInheritanceCycle, backEdge, "",
		"inheritance cycle detected: %s", strings.Join(cycle, " -> "))
	for _, name := range b.path[start:] {
		if m, ok := b.reg.Lookup(name); ok {
			b.skip(m, "inheritance cycle")
		}
	}
}

func (b *Builder) skip(model *transpiler.ClassModel, reason string) {
	model.State = transpiler.StateSkipped
	model.SkipReason = reason
}

// resolveMembers builds the constructor set, the overload-grouped method
// table, and the destructor flag. A residual mangled-name collision is fatal
// for this class only: the class is skipped, siblings proceed.
func (b *Builder) resolveMembers(model *transpiler.ClassModel, decl transpiler.ClassDecl) bool {
	seen := map[string]string{
		mangle.Dtor(model.Name): "destructor",
	}

	model.HasUserCtors = len(decl.Ctors) > 0
	model.HasDestructor = decl.Dtor != nil
	model.Dtor = decl.Dtor

	primary := primaryCtorIndex(decl.Ctors)
	for i, ctor := range decl.Ctors {
		params, ctypes := b.mapParams(ctor.Params, model.Name, model.Name)
		emitted := mangle.Ctor(model.Name, i == primary, ctypes)
		if prev, dup := seen[emitted]; dup {
			b.diags.Fatalf(diag.CodeNameCollision, model.Name, model.Name,
				"constructor mangles to %q which is already taken by %s", emitted, prev)
			b.skip(model, "name collision")
			return false
		}
		seen[emitted] = "constructor " + emitted
		model.Ctors = append(model.Ctors, transpiler.ResolvedCtor{
			Decl:        ctor,
			EmittedName: emitted,
			Params:      params,
			Primary:     i == primary,
		})
	}

	// Overload counting uses the translated member name, so two different
	// operators never group together but repeated operator overloads do.
	counts := make(map[string]int)
	names := make([]string, len(decl.Methods))
	for i, m := range decl.Methods {
		n, ok := b.memberName(model.Name, m)
		if !ok {
			continue
		}
		names[i] = n
		counts[n]++
	}

	for i, m := range decl.Methods {
		if names[i] == "" {
			continue // unsupported operator, already diagnosed
		}
		params, ctypes := b.mapParams(m.Params, model.Name, m.Name)
		ret := b.types.Map(m.ReturnType, model.Name, m.Name)
		emitted := mangle.Method(model.Name, names[i], counts[names[i]] > 1, ctypes)
		if prev, dup := seen[emitted]; dup {
			b.diags.Fatalf(diag.CodeNameCollision, model.Name, m.Name,
				"overloads of %q mangle to the same name %q (%s)", m.Name, emitted, prev)
			b.skip(model, "name collision")
			return false
		}
		seen[emitted] = "method " + m.Name
		model.MethodTable[transpiler.MethodKey{Name: names[i], Signature: mangle.Signature(ctypes)}] = emitted
		model.Methods = append(model.Methods, transpiler.ResolvedMethod{
			Decl:        m,
			EmittedName: emitted,
			Params:      params,
			Return:      ret,
		})
	}
	return true
}

// memberName translates an operator to its table name; plain methods keep
// their own. Unknown operators are dropped with a warning.
func (b *Builder) memberName(class string, m transpiler.MethodDecl) (string, bool) {
	if !m.IsOperator {
		return m.Name, true
	}
	name, ok := mangle.OperatorName(m.Operator)
	if !ok {
		b.diags.Warnf(diag.CodeUnsupportedConstruct, class, m.Name,
			"operator%s has no translation, skipping", m.Operator)
		return "", false
	}
	return name, true
}

// primaryCtorIndex picks the constructor that owns the plain init name: the
// zero-argument one, or the first declared when no default exists.
func primaryCtorIndex(ctors []transpiler.CtorDecl) int {
	for i, c := range ctors {
		if len(c.Params) == 0 {
			return i
		}
	}
	return 0
}

func (b *Builder) mapParams(params []transpiler.Param, class, member string) ([]transpiler.ResolvedParam, []transpiler.CType) {
	resolved := make([]transpiler.ResolvedParam, 0, len(params))
	ctypes := make([]transpiler.CType, 0, len(params))
	for _, p := range params {
		t := b.types.Map(p.Type, class, member)
		resolved = append(resolved, transpiler.ResolvedParam{Name: p.Name, Type: t})
		ctypes = append(ctypes, t)
	}
	return resolved, ctypes
}

// resolveFreeFunctions mangles file-scope functions. main passes through
// unmangled; a residual collision drops the colliding overload with a fatal
// diagnostic but keeps the rest of the unit.
func (b *Builder) resolveFreeFunctions(unit *transpiler.Unit, fns []transpiler.FreeFunctionDecl) {
	counts := make(map[string]int)
	for _, f := range fns {
		counts[f.Name]++
	}

	seen := make(map[string]bool)
	for _, f := range fns {
		params, ctypes := b.mapParams(f.Params, "", f.Name)
		ret := b.types.Map(f.ReturnType, "", f.Name)
		emitted := mangle.FreeFunction(f.Name, counts[f.Name] > 1, ctypes)
		if seen[emitted] {
			b.diags.Fatalf(diag.CodeNameCollision, "", f.Name,
				"overloads of %q mangle to the same name %q", f.Name, emitted)
			continue
		}
		seen[emitted] = true

		resolved := transpiler.ResolvedFunction{
			Decl:        f,
			EmittedName: emitted,
			Params:      params,
			Return:      ret,
		}
		if f.Name == "main" {
			main := resolved
			unit.Main = &main
			continue
		}
		unit.Functions = append(unit.Functions, resolved)
	}
}

var _ transpiler.ModelBuilder = (*Builder)(nil)
