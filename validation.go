package hisab

import "errors"

var (
	// ErrInvalid reports a customer or transaction that failed validation.
	ErrInvalid = errors.New("invalid")

	// ErrUnavailable reports that the store is closed, typically while its
	// file is being swapped by a backup or restore.
	ErrUnavailable = errors.New("store temporarily unavailable")
)
