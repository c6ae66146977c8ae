package transpiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcpp/xcpperr"
)

type stubExtractor struct {
	decls []Declaration
	err   error
	dump  string
}

func (s *stubExtractor) Extract(dump string, source string) ([]Declaration, error) {
	s.dump = dump
	return s.decls, s.err
}

type stubBuilder struct {
	unit *Unit
	err  error
	got  []Declaration
}

func (s *stubBuilder) Build(decls []Declaration) (*Unit, error) {
	s.got = decls
	return s.unit, s.err
}

type stubEmitter struct {
	out string
	err error
	got *Unit
}

func (s *stubEmitter) Emit(unit *Unit) (string, error) {
	s.got = unit
	return s.out, s.err
}

func TestTranspilePipeline(t *testing.T) {
	decls := []Declaration{ClassDecl{Name: "LED"}}
	unit := &Unit{}
	ext := &stubExtractor{decls: decls}
	builder := &stubBuilder{unit: unit}
	em := &stubEmitter{out: "// c text"}

	tr := NewCppToCTranspiler(ext, builder, em)
	out, err := tr.Transpile("dump text", "")
	require.NoError(t, err)

	assert.Equal(t, "// c text", out)
	assert.Equal(t, "dump text", ext.dump)
	assert.Equal(t, decls, builder.got)
	assert.Same(t, unit, em.got)
}

func TestTranspileStageErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		ext      *stubExtractor
		builder  *stubBuilder
		em       *stubEmitter
		wantType xcpperr.ErrorType
	}{
		{
			name:     "extract failure",
			ext:      &stubExtractor{err: boom},
			builder:  &stubBuilder{},
			em:       &stubEmitter{},
			wantType: xcpperr.TypeExtract,
		},
		{
			name:     "build failure",
			ext:      &stubExtractor{},
			builder:  &stubBuilder{err: boom},
			em:       &stubEmitter{},
			wantType: xcpperr.TypeBuild,
		},
		{
			name:     "emit failure",
			ext:      &stubExtractor{},
			builder:  &stubBuilder{unit: &Unit{}},
			em:       &stubEmitter{err: boom},
			wantType: xcpperr.TypeEmit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewCppToCTranspiler(tt.ext, tt.builder, tt.em)
			out, err := tr.Transpile("", "")
			require.Error(t, err)
			assert.Empty(t, out)

			var te xcpperr.TranspileError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantType, te.Type())
			assert.Contains(t, err.Error(), "boom")
		})
	}
}
