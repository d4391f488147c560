package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDataset, "node with empty ID at index %d", 3)
	if err.Code != ErrCodeInvalidDataset {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidDataset)
	}
	if err.Message != "node with empty ID at index 3" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INVALID_DATASET: node with empty ID at index 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open dataset %s", "data/graph.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
	want := "FILE_NOT_FOUND: open dataset data/graph.json: no such file"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"Match", New(ErrCodeDanglingLink, "bad link"), ErrCodeDanglingLink, true},
		{"NoMatch", New(ErrCodeDanglingLink, "bad link"), ErrCodeInternal, false},
		{"WrappedMatch", fmt.Errorf("outer: %w", New(ErrCodeNodeNotFound, "missing")), ErrCodeNodeNotFound, true},
		{"PlainError", fmt.Errorf("plain"), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidMode, "bad mode")); got != ErrCodeInvalidMode {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidMode)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidConfig, "port out of range")); got != "port out of range" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
