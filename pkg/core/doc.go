// Package core defines the shared language of the sqlinc module.
//
// This package contains the error taxonomy every other package reports
// against:
//   - ErrMissingKey: a source or table key is absent from the registry
//   - ErrMissingEnvironment: no settings resource exists for an environment
//   - ErrInvalidDefinition: a registry definition fails a presence check
//
// Concrete error types live next to the code that raises them and unwrap
// to one of these sentinels, so callers can branch with errors.Is.
//
// The Golden Rule: pkg/core imports ONLY the standard library.
package core
