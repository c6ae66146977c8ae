// Package driver runs the transpilation pipeline over one or more
// translation units.
//
// Each unit's run is independent: it gets its own registry, mapper, and
// diagnostics collector, so units fan out to parallel workers with no shared
// mutable state. Results come back in input order regardless of completion
// order, and a unit either yields a complete output blob or none.
package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"xcpp/internal/config"
	"xcpp/internal/diag"
	"xcpp/internal/transpiler"
	"xcpp/internal/transpiler/emitter"
	"xcpp/internal/transpiler/extractor"
	"xcpp/internal/transpiler/model"
	"xcpp/internal/transpiler/registry"
	"xcpp/internal/transpiler/typemap"
	"xcpp/xcpperr"
)

// UnitInput is one translation unit to process.
type UnitInput struct {
	Name   string // unit identifier, usually the dump file path
	Dump   string // front-end AST dump text
	Source string // original source text, may be empty
}

// UnitResult is the outcome of one unit's pipeline run.
type UnitResult struct {
	Name   string
	Output string // complete C text, empty when the unit aborted
	Diags  []diag.Diagnostic
	Err    error
}

// Fatal reports whether the unit failed: aborted outright or recorded a
// fatal diagnostic.
func (r UnitResult) Fatal() bool {
	if r.Err != nil {
		return true
	}
	for _, d := range r.Diags {
		if d.Severity == diag.SeverityFatal {
			return true
		}
	}
	return false
}

// NewPipeline wires a fresh per-unit pipeline and its diagnostics collector
// from the given configuration.
func NewPipeline(cfg *config.Config) (transpiler.Transpiler, *diag.Collector) {
	diags := diag.NewCollector()
	reg := registry.NewClassRegistry()
	ext := extractor.NewASTDumpExtractor(diags)
	types := typemapFor(cfg, reg, diags)
	builder := model.NewBuilder(reg, types, diags)

	var opts []emitter.Option
	if cfg.Header != "" {
		opts = append(opts, emitter.WithHeader(cfg.Header))
	}
	em := emitter.NewCEmitter(opts...)

	return transpiler.NewCppToCTranspiler(ext, builder, em), diags
}

func typemapFor(cfg *config.Config, reg *registry.ClassRegistry, diags *diag.Collector) *typemap.Mapper {
	return typemap.NewMapper(cfg.FallbackType, cfg.Types, reg, diags)
}

// ProcessUnits runs the full pipeline over every unit with up to cfg.Jobs
// parallel workers. The returned slice is indexed like the input.
func ProcessUnits(ctx context.Context, cfg *config.Config, units []UnitInput) []UnitResult {
	results := make([]UnitResult, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = UnitResult{Name: unit.Name, Err: err}
				return nil
			}
			results[i] = processUnit(cfg, unit)
			return nil
		})
	}
	// Workers only record per-unit failures; the group never sees an error.
	_ = g.Wait()

	return results
}

func processUnit(cfg *config.Config, unit UnitInput) UnitResult {
	pipeline, diags := NewPipeline(cfg)

	out, err := pipeline.Transpile(unit.Dump, unit.Source)
	result := UnitResult{
		Name:  unit.Name,
		Diags: diags.Items(),
	}
	if err != nil {
		// Whole-unit abort: no partial output leaves the driver.
		result.Err = xcpperr.NewUnitError(unit.Name, err)
		return result
	}
	result.Output = out
	return result
}

// MergeDiagnostics flattens per-unit diagnostics into one collector in unit
// input order.
func MergeDiagnostics(results []UnitResult) *diag.Collector {
	merged := diag.NewCollector()
	for _, r := range results {
		for _, d := range r.Diags {
			merged.Add(d)
		}
	}
	return merged
}

// AnyFatal reports whether any unit failed, for process exit status.
func AnyFatal(results []UnitResult) bool {
	for _, r := range results {
		if r.Fatal() {
			return true
		}
	}
	return false
}
