package types

import "errors"

var (
	ErrServiceUnavailable = errors.New("extraction service unavailable")
	ErrInputTooLong       = errors.New("input exceeds model maximum length")
	ErrUnsupportedTask    = errors.New("unsupported task kind")
	ErrInvalidOptions     = errors.New("invalid extraction options")
	ErrMalformedResponse  = errors.New("malformed extraction response")
)
