package ledger

import "errors"

var (
	// ErrInvalidDate indicates a date that is not a valid ISO calendar date.
	ErrInvalidDate = errors.New("invalid attendance date")
	// ErrInvalidCount indicates lecture counts outside 0 <= present <= total.
	ErrInvalidCount = errors.New("invalid lecture counts")
	// ErrInvalidInput indicates missing required fields.
	ErrInvalidInput = errors.New("invalid ledger input")
)
