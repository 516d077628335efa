package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// DeniedError covers ownership and cross-tenant violations. Handlers
// translate it into a generic denial so record existence is not leaked.
type DeniedError struct {
	Reason string
}

func (e DeniedError) Error() string {
	if e.Reason == "" {
		return "access denied"
	}
	return e.Reason
}

// Is enables errors.Is matching on DeniedError.
func (e DeniedError) Is(target error) bool {
	_, ok := target.(DeniedError)
	if ok {
		return true
	}
	_, ok = target.(*DeniedError)
	return ok
}

// ErrDenied is the sentinel error for ownership violations.
var ErrDenied = DeniedError{}

// LimitError signals that an institution hit its participant quota.
type LimitError struct {
	Limit int
}

func (e LimitError) Error() string {
	return fmt.Sprintf("participant limit reached (%d)", e.Limit)
}

// Is enables errors.Is matching on LimitError.
func (e LimitError) Is(target error) bool {
	_, ok := target.(LimitError)
	if ok {
		return true
	}
	_, ok = target.(*LimitError)
	return ok
}
