// Package utils provides small helpers shared across the buildscan
// packages.
package utils

import (
	"fmt"
)

// MakeError wraps a sentinel error with formatted detail text, so callers
// can test the category with errors.Is while the message carries the
// specifics.
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}
