// internal/core/domain/errors.go
package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed lookup request: empty batch, oversized
// batch, blank key, or duplicate key. Always caller-fixable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// NotFoundError reports part keys that did not resolve to an existing part.
// It carries every unresolved key from the batch, not just the first.
type NotFoundError struct {
	Keys []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown part keys: %s", strings.Join(e.Keys, ", "))
}
