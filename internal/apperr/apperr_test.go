package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := New(ValidationError, "salary must be positive")
	if err.Error() != "salary must be positive" {
		t.Errorf("Error() = %q, want %q", err.Error(), "salary must be positive")
	}
}

func TestCodeOf_Found(t *testing.T) {
	err := New(AdminRequired, "admin authorization required")
	code, ok := CodeOf(err)
	if !ok {
		t.Fatal("CodeOf should find the code on a direct *Error")
	}
	if code != AdminRequired {
		t.Errorf("code = %q, want %q", code, AdminRequired)
	}
}

func TestCodeOf_WrappedError(t *testing.T) {
	original := New(NotFound, "attendance record not found")
	wrapped := fmt.Errorf("get attendance by id: %w", original)

	code, ok := CodeOf(wrapped)
	if !ok {
		t.Fatal("CodeOf should unwrap to find the code")
	}
	if code != NotFound {
		t.Errorf("code = %q, want %q", code, NotFound)
	}
}

func TestCodeOf_NotAnAppError(t *testing.T) {
	_, ok := CodeOf(errors.New("some infrastructure failure"))
	if ok {
		t.Error("CodeOf should return false for a plain error")
	}
}
