package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewParsingError("could not find header row", nil)
	assert.Equal(t, "[PARSING] could not find header row", err.Error())

	cause := stderrors.New("file is locked")
	err = NewStorageError("failed to create JSON report file", cause)
	assert.Equal(t, "[STORAGE] failed to create JSON report file: file is locked", err.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := NewConfigError("config validation failed", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeConfig, appErr.Type)
}

func TestAppErrorWithContext(t *testing.T) {
	err := NewParsingError("failed to open workbook", nil).
		WithContext("path", "visitas.xlsx").
		WithContext("sheet", "Hoja1")

	assert.Equal(t, "visitas.xlsx", err.Context["path"])
	assert.Equal(t, "Hoja1", err.Context["sheet"])
}

func TestConstructorTypes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want ErrorType
	}{
		{"parsing", NewParsingError("m", nil), ErrTypeParsing},
		{"storage", NewStorageError("m", nil), ErrTypeStorage},
		{"config", NewConfigError("m", nil), ErrTypeConfig},
		{"validation", NewValidationError("m"), ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type)
		})
	}
}
