package apiErrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{ code string }

func (e codedError) Error() string     { return "coded" }
func (e codedError) ErrorCode() string { return e.code }

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{code: ErrInvalidFormat, want: http.StatusBadRequest},
		{code: ErrUnsupportedFile, want: http.StatusUnsupportedMediaType},
		{code: ErrFileTooLarge, want: http.StatusRequestEntityTooLarge},
		{code: ErrNotFound, want: http.StatusNotFound},
		{code: ErrInsufficientData, want: http.StatusUnprocessableEntity},
		{code: "XYZ_999", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		wantCode string
	}{
		{name: "Erro nulo", err: nil, fallback: ErrInvalidRequest, wantCode: ErrInternalServer},
		{name: "Erro comum usa o código padrão", err: errors.New("falhou"), fallback: ErrInvalidRequest, wantCode: ErrInvalidRequest},
		{name: "Erro com código próprio", err: fmt.Errorf("contexto: %w", codedError{code: ErrMissingColumn}), fallback: ErrInternalServer, wantCode: ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, FromError(tt.err, tt.fallback).Code)
		})
	}
}

func TestWriteFromError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFromError(rec, codedError{code: ErrInsufficientData}, ErrInternalServer)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrInsufficientData, body.Code)
	assert.Equal(t, "coded", body.Message)
}
