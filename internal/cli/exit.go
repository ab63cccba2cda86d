package cli

import (
	"errors"

	"github.com/leapstack-labs/sqlinc/pkg/core"
)

// Exit codes of the sqlinc binary.
const (
	ExitOK                 = 0
	ExitError              = 1
	ExitMissingKey         = 2
	ExitMissingEnvironment = 3
	ExitInvalidDefinition  = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, core.ErrMissingKey):
		return ExitMissingKey
	case errors.Is(err, core.ErrMissingEnvironment):
		return ExitMissingEnvironment
	case errors.Is(err, core.ErrInvalidDefinition):
		return ExitInvalidDefinition
	default:
		return ExitError
	}
}
