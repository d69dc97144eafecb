package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies). Handlers map these to HTTP codes;
// ErrUnauthenticated and ErrForbidden stay distinct so callers can render
// 401 vs 403.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("access denied")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrValidation        = errors.New("invalid input")
	ErrItemUnavailable   = errors.New("menu item is currently unavailable")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 50")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
)

// TransitionError reports a rejected status change, carrying both the current
// and the attempted status for diagnostics. Matches ErrInvalidTransition
// under errors.Is.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
