package transpiler

import "xcpp/xcpperr"

// DeclarationExtractor turns the front-end's AST dump into a flat
// declaration list. The optional source text lets the extractor attach raw
// method and constructor bodies; it may be empty.
type DeclarationExtractor interface {
	Extract(dump string, source string) ([]Declaration, error)
}

// ModelBuilder resolves the declaration list into a unit model with class
// layouts, method tables, and final emitted names.
type ModelBuilder interface {
	Build(decls []Declaration) (*Unit, error)
}

// CodeEmitter generates C source text from a fully resolved unit model.
// Given the same model, the output is byte-identical across runs.
type CodeEmitter interface {
	Emit(unit *Unit) (string, error)
}

// Transpiler defines the high-level interface for one unit's conversion.
type Transpiler interface {
	Transpile(dump string, source string) (string, error)
}

// CppToCTranspiler orchestrates the transpilation pipeline.
type CppToCTranspiler struct {
	extractor DeclarationExtractor
	builder   ModelBuilder
	emitter   CodeEmitter
}

// NewCppToCTranspiler creates a new instance of CppToCTranspiler with its
// dependencies.
func NewCppToCTranspiler(
	extractor DeclarationExtractor,
	builder ModelBuilder,
	emitter CodeEmitter,
) *CppToCTranspiler {
	return &CppToCTranspiler{
		extractor: extractor,
		builder:   builder,
		emitter:   emitter,
	}
}

// Transpile executes the full pipeline for one translation unit. A fatal
// whole-unit failure returns an error and no output; localized failures are
// recorded in the diagnostics collector and transpilation continues.
func (t *CppToCTranspiler) Transpile(dump string, source string) (string, error) {
	decls, err := t.extractor.Extract(dump, source)
	if err != nil {
		return "", xcpperr.NewExtractError(err.Error())
	}

	unit, err := t.builder.Build(decls)
	if err != nil {
		return "", xcpperr.NewBuildError(err.Error())
	}

	out, err := t.emitter.Emit(unit)
	if err != nil {
		return "", xcpperr.NewEmitError(err.Error())
	}
	return out, nil
}

var _ Transpiler = (*CppToCTranspiler)(nil)
