package errors

import "fmt"

// ErrorCode represents a norgcap error code.
type ErrorCode string

const (
	ErrConfiguration     ErrorCode = "CONFIGURATION_ERROR" // bad capture definition or target syntax
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // bad arguments to an operation
	ErrNotFound          ErrorCode = "NOT_FOUND"           // unknown capture or unresolved heading
	ErrWorkspaceMismatch ErrorCode = "WORKSPACE_MISMATCH"  // capture bound to a different workspace
	ErrInternal          ErrorCode = "INTERNAL"
)

// CaptureError represents a structured error with code and details.
// Every failure is terminal for the invocation that produced it;
// callers report the message and never retry.
type CaptureError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfiguration creates an error for invalid capture definitions.
func NewConfiguration(msg string) *CaptureError {
	return &CaptureError{
		Code:    ErrConfiguration,
		Message: msg,
	}
}

// NewInvalidRequest creates an error for invalid operation parameters.
func NewInvalidRequest(msg string) *CaptureError {
	return &CaptureError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewCaptureNotFound creates an error for an unknown capture name.
func NewCaptureNotFound(name string) *CaptureError {
	return &CaptureError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("capture not found: %s", name),
		Details: map[string]any{"capture": name},
	}
}

// NewHeadingNotFound creates an error for a target heading with no match.
func NewHeadingNotFound(target string) *CaptureError {
	return &CaptureError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("target heading not found: %s", target),
		Details: map[string]any{"target": target},
	}
}

// NewWorkspaceMismatch creates an error for an unmet workspace constraint.
func NewWorkspaceMismatch(want, current string) *CaptureError {
	return &CaptureError{
		Code:    ErrWorkspaceMismatch,
		Message: fmt.Sprintf("capture requires workspace %q but current workspace is %q", want, current),
		Details: map[string]any{"required": want, "current": current},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *CaptureError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CaptureError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a CaptureError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*CaptureError); ok {
		return cErr.Code == code
	}
	return false
}
