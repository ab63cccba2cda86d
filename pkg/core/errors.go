package core

import "errors"

// Sentinel errors shared across packages.
var (
	ErrMissingKey         = errors.New("missing configuration key")
	ErrMissingEnvironment = errors.New("missing environment resource")
	ErrInvalidDefinition  = errors.New("invalid registry definition")
)
