package assistant

import "errors"

var (
	// ErrEmptyMessage indicates a blank chat message.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageTooLong indicates a message over the configured limit.
	ErrMessageTooLong = errors.New("message too long")
	// ErrQuotaExceeded indicates the user's sliding-window quota is spent.
	ErrQuotaExceeded = errors.New("assistant quota exceeded")
	// ErrOracleUnavailable indicates the generation oracle failed or timed out.
	ErrOracleUnavailable = errors.New("oracle unavailable")
	// ErrExpiredState indicates no valid pending proposal exists for the session.
	ErrExpiredState = errors.New("no valid pending proposal")
)
