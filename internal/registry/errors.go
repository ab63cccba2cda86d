package registry

import (
	"fmt"

	"github.com/leapstack-labs/sqlinc/pkg/core"
)

// KeyError reports a source or table key that is absent from the registry.
// Table is empty when the source itself is missing.
type KeyError struct {
	Source string
	Table  string
}

func (e *KeyError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("source %q not found in registry", e.Source)
	}
	return fmt.Sprintf("table %q not found in source %q", e.Table, e.Source)
}

// Unwrap lets errors.Is match core.ErrMissingKey.
func (e *KeyError) Unwrap() error {
	return core.ErrMissingKey
}

// DefinitionError reports a registry definition that failed a presence check.
type DefinitionError struct {
	Field   string
	Message string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("registry definition: %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match core.ErrInvalidDefinition.
func (e *DefinitionError) Unwrap() error {
	return core.ErrInvalidDefinition
}
