package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrInvalidContent", ErrInvalidContent},
		{"ErrNoSession", ErrNoSession},
		{"ErrEmptyIdea", ErrEmptyIdea},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestBackendError_Error(t *testing.T) {
	assert.Equal(t, "capture idea: quota exceeded",
		(&BackendError{Op: "capture idea", Message: "quota exceeded"}).Error())
	assert.Equal(t, "delete page: rejected by backend",
		(&BackendError{Op: "delete page"}).Error())
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("saving: %w", &TransportError{Op: "save page", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFailure_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no session", ErrNoSession, NoSessionMessage},
		{"wrapped no session", fmt.Errorf("persist: %w", ErrNoSession), NoSessionMessage},
		{"backend with message", &BackendError{Op: "save", Message: "Title too long"}, "Title too long"},
		{"backend without message", &BackendError{Op: "save"}, "Failed to save page."},
		{"transport", &TransportError{Op: "save", Err: errors.New("eof")}, "Error while saving the page."},
		{"unexpected", errors.New("boom"), "Error while saving the page."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SavePageFailure.Message(tt.err))
		})
	}
}

func TestFailure_MessageEmptyIdea(t *testing.T) {
	assert.Equal(t, "Please enter an idea.", SaveIdeaFailure.Message(ErrEmptyIdea))
}
