package envconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/leapstack-labs/sqlinc/pkg/core"
)

// NotFoundError reports an environment with no registered settings.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no settings found for environment %q (no environments registered)", e.Name)
	}
	return fmt.Sprintf("no settings found for environment %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap lets errors.Is match core.ErrMissingEnvironment.
func (e *NotFoundError) Unwrap() error {
	return core.ErrMissingEnvironment
}

// LoadError reports a factory that failed to produce settings.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load settings for environment %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports a missing backing file as a missing environment resource.
func (e *LoadError) Is(target error) bool {
	return target == core.ErrMissingEnvironment && errors.Is(e.Err, fs.ErrNotExist)
}
