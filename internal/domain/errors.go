package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput wraps validation failures on admin input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStaleReference marks a cart line or focus that points at an entity no longer in the catalog.
	ErrStaleReference = errors.New("stale reference")
	// ErrInvalidQuantity is returned for quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrIndexOutOfRange is returned when a cart line index does not exist.
	ErrIndexOutOfRange = errors.New("cart line index out of range")
	// ErrTransitionRejected is returned when a navigation precondition does not hold.
	ErrTransitionRejected = errors.New("transition rejected")
)
