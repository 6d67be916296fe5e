package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidScene, "node %s is malformed", "a")

	if err.Code != ErrCodeInvalidScene {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidScene)
	}
	if err.Message != "node a is malformed" {
		t.Errorf("Message = %q", err.Message)
	}
	if got := err.Error(); got != "INVALID_SCENE: node a is malformed" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeFileNotFound, cause, "writing %s", "out.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if got := err.Error(); got != "FILE_NOT_FOUND: writing out.json: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidStrategy, "nope")

	if !Is(err, ErrCodeInvalidStrategy) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInvalidMode) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidStrategy) {
		t.Error("Is should not match a plain error")
	}

	// Code check survives fmt wrapping.
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeInvalidStrategy) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInternal)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode of plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Structured", New(ErrCodeInvalidScene, "duplicate node id: a"), "duplicate node id: a"},
		{"Wrapped", Wrap(ErrCodeLayoutGeneration, stderrors.New("boom"), "no usable base layout"), "no usable base layout"},
		{"Plain", stderrors.New("plain failure"), "plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}
