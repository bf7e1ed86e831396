package medium

import "errors"

// Sentinel kinds for medium errors.
var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrClosed        = errors.New("medium closed")
	ErrUnknownDriver = errors.New("unknown medium driver")
)
