package standard

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrStandardNotFound means no source defines the requested standard.
	ErrStandardNotFound = errors.New("standard not found")
	// ErrExtendsCycle means a chain of extends refers back to itself.
	ErrExtendsCycle = errors.New("standard extends cycle")
	// ErrInvalidDefinition means a definition could not be decoded or validated.
	ErrInvalidDefinition = errors.New("invalid standard definition")
)

// NotFoundError reports a standard that neither source defines.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("standard %q not found", e.Name)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

// Unwrap returns ErrStandardNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrStandardNotFound
}
