// Package oracle wraps the external text-generation service. Its output is
// untrusted: callers must parse and constrain it before any state changes.
package oracle

import "context"

// Oracle generates a free-form reply for a prompt. It may fail or time out;
// the reply is never applied to state directly.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
