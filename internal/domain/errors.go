package domain

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-intelligence-api/pkg/apiErrors"
)

// Erros do pipeline de análise. Todos são recuperáveis e restritos à operação pedida.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrMissingColumn    = errors.New("missing column")
	ErrInvalidValue     = errors.New("invalid value")
)

// InsufficientDataError indica histórico ou entidades insuficientes para o cálculo
type InsufficientDataError struct {
	Err      error
	Code     string
	Required int
	Found    int
	Details  string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s (required %d, found %d)", e.Err.Error(), e.Details, e.Required, e.Found)
}

func (e *InsufficientDataError) Unwrap() error {
	return e.Err
}

func (e *InsufficientDataError) ErrorCode() string {
	return e.Code
}

func NewInsufficientDataError(details string, required, found int) *InsufficientDataError {
	return &InsufficientDataError{
		Err:      ErrInsufficientData,
		Code:     apiErrors.ErrInsufficientData,
		Required: required,
		Found:    found,
		Details:  details,
	}
}

// MissingColumnError indica que uma coluna nomeada explicitamente não existe na tabela
type MissingColumnError struct {
	Err    error
	Code   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return e.Err
}

func (e *MissingColumnError) ErrorCode() string {
	return e.Code
}

func NewMissingColumnError(column string) *MissingColumnError {
	return &MissingColumnError{
		Err:    ErrMissingColumn,
		Code:   apiErrors.ErrMissingColumn,
		Column: column,
	}
}

// InvalidValueError indica configuração fora dos limites declarados
type InvalidValueError struct {
	Err     error
	Code    string
	Field   string
	Value   any
	Details string
}

func (e *InvalidValueError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s=%v: %s", e.Err.Error(), e.Field, e.Value, e.Details)
	}
	return fmt.Sprintf("%s: %s=%v", e.Err.Error(), e.Field, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

func (e *InvalidValueError) ErrorCode() string {
	return e.Code
}

func NewInvalidValueError(field string, value any, details string) *InvalidValueError {
	return &InvalidValueError{
		Err:     ErrInvalidValue,
		Code:    apiErrors.ErrInvalidParameter,
		Field:   field,
		Value:   value,
		Details: details,
	}
}

// CheckRange valida min <= value <= max
func CheckRange(field string, value, min, max int) error {
	if value < min || value > max {
		return NewInvalidValueError(field, value, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return nil
}
