package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := Validation("invalid input")
	assert.Equal(t, "invalid input", err.Error())

	wrapped := Wrap(stderrors.New("boom"), ErrCodeNetwork, "request failed")
	assert.Equal(t, "request failed: boom", wrapped.Error())
}

func TestAppErrorFieldsInMessage(t *testing.T) {
	err := ValidationFields("invalid registration", map[string]string{
		"secret": "too short",
		"name":   "too short",
	})
	// Field names are listed deterministically.
	assert.Equal(t, "invalid registration (name, secret)", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeNetwork, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeNetwork, "ignored %d", 1))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeNetwork, "login request")

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrCodeNetwork, appErr.Code)
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", Validation("v"), IsValidation},
		{"invalid credentials", InvalidCredentials("ic"), IsInvalidCredentials},
		{"invalid session", InvalidSession("is"), IsInvalidSession},
		{"network", Network("n"), IsNetwork},
		{"forbidden", Forbidden("f"), IsForbidden},
		{"internal", Internal("i"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(stderrors.New("plain")))
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := InvalidCredentials("backend rejected login")
	outer := fmt.Errorf("login: %w", inner)

	assert.True(t, IsInvalidCredentials(outer))
	assert.False(t, IsNetwork(outer))
}

func TestFieldErrors(t *testing.T) {
	fields := map[string]string{"identifier": "must be an email address"}
	err := ValidationFields("invalid registration", fields)

	assert.Equal(t, fields, FieldErrors(fmt.Errorf("register: %w", err)))
	assert.Nil(t, FieldErrors(stderrors.New("plain")))
	assert.Nil(t, FieldErrors(Validation("no fields")))
}
