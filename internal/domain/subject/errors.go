package subject

import "errors"

var (
	// ErrSubjectNotFound indicates the subject doesn't exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrInvalidInput indicates invalid subject input.
	ErrInvalidInput = errors.New("invalid subject input")
)
