package xcpperr

import (
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeExtract ErrorType = "ExtractError"
	TypeBuild   ErrorType = "BuildError"
	TypeEmit    ErrorType = "EmitError"
)

// TranspileError is the interface for all transpiler errors.
type TranspileError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for transpiler errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// UnitError wraps a pipeline error with the translation unit it came from.
type UnitError struct {
	BaseError
	Unit string
}

func (e *UnitError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("[%s] %s: %s", e.ErrType, e.Unit, e.Msg)
	}
	return e.BaseError.Error()
}

// MultiError collects errors from multiple translation units.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		if te, ok := m.Errors[0].(TranspileError); ok {
			return te.Type()
		}
	}
	return "MultiError"
}

// NewExtractError creates an error for a failure in the declaration extractor.
func NewExtractError(msg string) *BaseError {
	return &BaseError{Msg: msg, ErrType: TypeExtract}
}

// NewBuildError creates an error for a failure in the semantic model builder.
func NewBuildError(msg string) *BaseError {
	return &BaseError{Msg: msg, ErrType: TypeBuild}
}

// NewEmitError creates an error for a failure in the code generator.
func NewEmitError(msg string) *BaseError {
	return &BaseError{Msg: msg, ErrType: TypeEmit}
}

// NewUnitError wraps an error with the unit name that produced it.
func NewUnitError(unit string, err error) *UnitError {
	errType := ErrorType("UnitError")
	if te, ok := err.(TranspileError); ok {
		errType = te.Type()
	}
	return &UnitError{
		BaseError: BaseError{Msg: err.Error(), ErrType: errType},
		Unit:      unit,
	}
}
