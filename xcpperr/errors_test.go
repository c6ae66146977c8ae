package xcpperr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"xcpp/xcpperr"
)

func TestExtractError(t *testing.T) {
	err := xcpperr.NewExtractError("field declaration outside a class definition")
	assert.Equal(t, xcpperr.TypeExtract, err.Type())
	assert.Equal(t, "[ExtractError] field declaration outside a class definition", err.Error())
}

func TestBuildError(t *testing.T) {
	err := xcpperr.NewBuildError("duplicate class definition \"LED\"")
	assert.Equal(t, xcpperr.TypeBuild, err.Type())
	assert.Contains(t, err.Error(), "[BuildError] duplicate class definition")
}

func TestEmitError(t *testing.T) {
	err := xcpperr.NewEmitError("emission failed")
	assert.Equal(t, xcpperr.TypeEmit, err.Type())
	assert.Equal(t, "[EmitError] emission failed", err.Error())
}

func TestUnitError(t *testing.T) {
	inner := xcpperr.NewBuildError("duplicate class definition \"LED\"")
	err := xcpperr.NewUnitError("led.ast", inner)
	assert.Equal(t, xcpperr.TypeBuild, err.Type())
	assert.Equal(t, "led.ast", err.Unit)
	assert.Contains(t, err.Error(), "[BuildError] led.ast:")
}

func TestUnitErrorPlain(t *testing.T) {
	err := xcpperr.NewUnitError("led.ast", assert.AnError)
	assert.Equal(t, xcpperr.ErrorType("UnitError"), err.Type())
	assert.Contains(t, err.Error(), "led.ast")
}

func TestMultiError(t *testing.T) {
	e1 := xcpperr.NewExtractError("error 1")
	e2 := xcpperr.NewBuildError("error 2")
	multi := &xcpperr.MultiError{Errors: []error{e1, e2}}

	assert.Equal(t, xcpperr.TypeExtract, multi.Type())
	errMsg := multi.Error()
	assert.Contains(t, errMsg, "2 error(s) occurred:")
	assert.Contains(t, errMsg, "- [ExtractError] error 1")
	assert.Contains(t, errMsg, "- [BuildError] error 2")
}

func TestMultiErrorEmpty(t *testing.T) {
	multi := &xcpperr.MultiError{Errors: []error{}}
	assert.Equal(t, xcpperr.ErrorType("MultiError"), multi.Type())
	assert.True(t, strings.HasPrefix(multi.Error(), "0 error(s) occurred:"))
}
