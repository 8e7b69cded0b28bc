package domain

import "fmt"

// ValidationError is a client-detected input error raised before any
// remote call is made. It is never written into store error state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given display
// message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// RemoteError is a failed HTTP call. Message carries the server-supplied
// detail when present; an empty Message means the payload had none.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// AuthError is a 401-class failure: the server rejected the bearer
// credential, or no credential was available to attach.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "not authenticated"
	}
	return e.Message
}
