package errors

import (
	"fmt"
	"testing"
)

func TestCaptureError_Error(t *testing.T) {
	err := &CaptureError{
		Code:    ErrNotFound,
		Message: "capture not found: journal",
	}

	expected := "NOT_FOUND: capture not found: journal"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfiguration(t *testing.T) {
	err := NewConfiguration("path is required")

	if err.Code != ErrConfiguration {
		t.Errorf("Code = %q, want %q", err.Code, ErrConfiguration)
	}
	if err.Message != "path is required" {
		t.Errorf("Message = %q, want %q", err.Message, "path is required")
	}
}

func TestNewCaptureNotFound(t *testing.T) {
	err := NewCaptureNotFound("journal")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Details["capture"] != "journal" {
		t.Errorf("Details[capture] = %v, want %q", err.Details["capture"], "journal")
	}
}

func TestNewHeadingNotFound(t *testing.T) {
	err := NewHeadingNotFound("** Tasks")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Details["target"] != "** Tasks" {
		t.Errorf("Details[target] = %v, want %q", err.Details["target"], "** Tasks")
	}
}

func TestNewWorkspaceMismatch(t *testing.T) {
	err := NewWorkspaceMismatch("diary", "work")

	if err.Code != ErrWorkspaceMismatch {
		t.Errorf("Code = %q, want %q", err.Code, ErrWorkspaceMismatch)
	}
	if err.Details["required"] != "diary" || err.Details["current"] != "work" {
		t.Errorf("Details = %v, want required=diary current=work", err.Details)
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("disk full"))
	if err.Message != "disk full" {
		t.Errorf("Message = %q, want %q", err.Message, "disk full")
	}

	err = NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	err := NewCaptureNotFound("x")

	if !Is(err, ErrNotFound) {
		t.Error("Is(err, ErrNotFound) = false, want true")
	}
	if Is(err, ErrConfiguration) {
		t.Error("Is(err, ErrConfiguration) = true, want false")
	}
	if Is(fmt.Errorf("plain"), ErrNotFound) {
		t.Error("Is(plain error) = true, want false")
	}
}
