// Package emitter generates the C output text from a resolved unit model.
//
// Emission is pure text assembly over the model: given the same model the
// output is byte-identical across runs. All iteration walks slices in model
// order; maps are never ranged during emission.
package emitter

import (
	"bytes"
	"fmt"

	"xcpp/internal/transpiler"
)

const indent = "    "

// defaultHeader is the fixed comment block opening every generated file.
const defaultHeader = `/*
 * C++ to C transpilation
 * Generated by xcpp using semantic AST analysis
 */
`

type cEmitter struct {
	header string
}

// Option configures the emitter.
type Option func(*cEmitter)

// WithHeader overrides the fixed file header comment.
func WithHeader(header string) Option {
	return func(e *cEmitter) { e.header = header }
}

// NewCEmitter creates a new instance of CodeEmitter that generates C code.
func NewCEmitter(opts ...Option) transpiler.CodeEmitter {
	e := &cEmitter{header: defaultHeader}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit implements the CodeEmitter interface.
func (e *cEmitter) Emit(unit *transpiler.Unit) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(e.header)
	buf.WriteString("\n#include <stdint.h>\n#include <stdbool.h>\n#include <stddef.h>\n")

	for _, class := range unit.Classes {
		emitStruct(&buf, class)
	}
	for _, class := range unit.Classes {
		emitStatics(&buf, class)
	}
	for _, class := range unit.Classes {
		emitLifecycleInit(&buf, unit, class)
		emitMethods(&buf, unit, class)
		emitLifecycleCleanup(&buf, unit, class)
		class.State = transpiler.StateEmitted
	}

	if len(unit.Functions) > 0 {
		buf.WriteString("\n// === Free functions ===\n")
		for _, fn := range unit.Functions {
			emitFunction(&buf, unit, fn)
		}
	}
	if unit.Main != nil {
		buf.WriteString("\n// === Main function ===\n")
		emitFunction(&buf, unit, *unit.Main)
	}

	return buf.String(), nil
}

func emitStruct(buf *bytes.Buffer, class *transpiler.ClassModel) {
	fmt.Fprintf(buf, "\n// === Class %s ===\n\n", class.Name)
	fmt.Fprintf(buf, "typedef struct %s {\n", class.Name)
	if len(class.LayoutFields) == 0 {
		// C forbids empty structs; a class with no instance state still
		// needs a well-formed layout.
		buf.WriteString(indent + "char _empty;\n")
	}
	for _, f := range class.LayoutFields {
		fmt.Fprintf(buf, "%s%s %s;\n", indent, f.Type.C, f.Name)
	}
	fmt.Fprintf(buf, "} %s;\n", class.Name)
}

func emitStatics(buf *bytes.Buffer, class *transpiler.ClassModel) {
	for _, s := range class.Statics {
		if s.Type.IsClass {
			fmt.Fprintf(buf, "\nstatic %s %s;\n", s.Type.C, s.EmittedName)
			continue
		}
		fmt.Fprintf(buf, "\nstatic %s %s = %s;\n", s.Type.C, s.EmittedName, s.Type.Zero())
	}
}

// emitLifecycleInit writes every constructor of the class, synthesizing the
// zero-argument init when the class declares none. Each init first runs the
// base class's own init, then zero-initializes the class's fields in
// declaration order, then appends the translated user body.
func emitLifecycleInit(buf *bytes.Buffer, unit *transpiler.Unit, class *transpiler.ClassModel) {
	ctors := class.Ctors
	if len(ctors) == 0 {
		ctors = []transpiler.ResolvedCtor{{
			EmittedName: class.Name + "_init",
			Primary:     true,
		}}
	}

	for _, ctor := range ctors {
		fmt.Fprintf(buf, "\n// Constructor for %s\n", class.Name)
		fmt.Fprintf(buf, "void %s(%s* self%s) {\n", ctor.EmittedName, class.Name, paramList(ctor.Params))
		for _, f := range class.LayoutFields {
			switch {
			case f.IsBase:
				fmt.Fprintf(buf, "%s%s_init(&self->%s);\n", indent, f.Type.C, f.Name)
			case f.Type.IsClass:
				fmt.Fprintf(buf, "%s%s_init(&self->%s);\n", indent, f.Type.C, f.Name)
			default:
				fmt.Fprintf(buf, "%sself->%s = %s;\n", indent, f.Name, f.Type.Zero())
			}
		}
		if ctor.Decl.HasBody && ctor.Decl.Body != "" {
			tr := newBodyTranslator(unit, class)
			for _, line := range tr.translate(ctor.Decl.Body) {
				buf.WriteString(indent + line + "\n")
			}
		}
		buf.WriteString("}\n")
	}
}

func emitMethods(buf *bytes.Buffer, unit *transpiler.Unit, class *transpiler.ClassModel) {
	for _, m := range class.Methods {
		fmt.Fprintf(buf, "\n// Method: %s\n", m.Decl.Name)
		if m.Decl.IsStatic {
			fmt.Fprintf(buf, "%s %s(%s) {\n", m.Return.C, m.EmittedName, staticParamList(m.Params))
		} else {
			fmt.Fprintf(buf, "%s %s(%s* self%s) {\n", m.Return.C, m.EmittedName, class.Name, paramList(m.Params))
		}

		if m.Decl.HasBody && m.Decl.Body != "" {
			tr := newBodyTranslator(unit, class)
			for _, line := range tr.translate(m.Decl.Body) {
				buf.WriteString(indent + line + "\n")
			}
		} else {
			emitReturnStub(buf, m.Return)
		}
		buf.WriteString("}\n")
	}
}

// emitLifecycleCleanup writes C_cleanup: the translated destructor body,
// then teardown of class-typed owned fields in reverse declaration order,
// then the embedded base's cleanup. Classes without a destructor still get
// the function so call sites can rely on the lifecycle pair.
func emitLifecycleCleanup(buf *bytes.Buffer, unit *transpiler.Unit, class *transpiler.ClassModel) {
	fmt.Fprintf(buf, "\n// Destructor for %s\n", class.Name)
	fmt.Fprintf(buf, "void %s_cleanup(%s* self) {\n", class.Name, class.Name)

	wrote := false
	if class.Dtor != nil && class.Dtor.HasBody && class.Dtor.Body != "" {
		tr := newBodyTranslator(unit, class)
		for _, line := range tr.translate(class.Dtor.Body) {
			buf.WriteString(indent + line + "\n")
			wrote = true
		}
	}
	for i := len(class.LayoutFields) - 1; i >= 0; i-- {
		f := class.LayoutFields[i]
		if f.Type.IsClass {
			fmt.Fprintf(buf, "%s%s_cleanup(&self->%s);\n", indent, f.Type.C, f.Name)
			wrote = true
		}
	}
	if !wrote {
		buf.WriteString(indent + "(void)self;\n")
	}
	buf.WriteString("}\n")
}

func emitFunction(buf *bytes.Buffer, unit *transpiler.Unit, fn transpiler.ResolvedFunction) {
	fmt.Fprintf(buf, "\n// Function: %s\n", fn.Decl.Name)
	fmt.Fprintf(buf, "%s %s(%s) {\n", fn.Return.C, fn.EmittedName, staticParamList(fn.Params))
	if fn.Decl.HasBody && fn.Decl.Body != "" {
		tr := newBodyTranslator(unit, nil)
		for _, line := range tr.translate(fn.Decl.Body) {
			buf.WriteString(indent + line + "\n")
		}
	} else {
		emitReturnStub(buf, fn.Return)
	}
	buf.WriteString("}\n")
}

func emitReturnStub(buf *bytes.Buffer, ret transpiler.CType) {
	if ret.IsVoid() {
		return
	}
	if ret.IsClass {
		fmt.Fprintf(buf, "%s%s result;\n%s%s_init(&result);\n%sreturn result;\n", indent, ret.C, indent, ret.C, indent)
		return
	}
	fmt.Fprintf(buf, "%sreturn %s;\n", indent, ret.Zero())
}

// paramList renders ", type name" pairs appended after the instance
// parameter.
func paramList(params []transpiler.ResolvedParam) string {
	var buf bytes.Buffer
	for _, p := range params {
		fmt.Fprintf(&buf, ", %s %s", p.Type.C, p.Name)
	}
	return buf.String()
}

// staticParamList renders a full parameter list with no instance parameter;
// an empty list renders as void.
func staticParamList(params []transpiler.ResolvedParam) string {
	if len(params) == 0 {
		return "void"
	}
	var buf bytes.Buffer
	for i, p := range params {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s %s", p.Type.C, p.Name)
	}
	return buf.String()
}

var _ transpiler.CodeEmitter = (*cEmitter)(nil)
