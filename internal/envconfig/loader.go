// Package envconfig selects per-environment settings.
//
// Each environment name ("dev", "prod", ...) is bound to a Factory at
// startup, either explicitly with Register or by scanning a configs
// directory with RegisterDir. Load runs the factory for one environment and
// returns its settings verbatim.
//
//	loader := envconfig.NewLoader()
//	if err := loader.RegisterDir("includes/configs", vars); err != nil {
//	    return err
//	}
//	settings, err := loader.Load(envconfig.EnvFromVars(vars))
//
// The loader does not cache; callers load once and keep the result.
package envconfig

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// DefaultEnvironment is used when no environment name is given.
const DefaultEnvironment = "dev"

// EnvVar is the project variable naming the environment.
const EnvVar = "env"

// Settings is the exported environment object of a settings resource.
type Settings map[string]any

// Factory produces the settings of one environment.
type Factory func() (Settings, error)

// Loader maps environment names to settings factories.
// Register all factories at startup; Load is safe for concurrent use once
// registration is done.
type Loader struct {
	factories map[string]Factory
	logger    *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates an empty loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		factories: make(map[string]Factory),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register binds name to factory. Registering a name twice is an error.
func (l *Loader) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("environment name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("environment %q: factory cannot be nil", name)
	}
	if _, exists := l.factories[name]; exists {
		return fmt.Errorf("environment %q is already registered", name)
	}
	l.factories[name] = factory
	l.logger.Debug("registered environment", "env", name)
	return nil
}

// Environments returns the registered environment names in sorted order.
func (l *Loader) Environments() []string {
	return slices.Sorted(maps.Keys(l.factories))
}

// Load returns the settings of the named environment.
// An empty name selects DefaultEnvironment.
func (l *Loader) Load(name string) (Settings, error) {
	if name == "" {
		name = DefaultEnvironment
	}

	factory, ok := l.factories[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Available: l.Environments()}
	}

	l.logger.Debug("loading environment settings", "env", name)
	settings, err := factory()
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return settings, nil
}

// EnvFromVars returns the environment selected by project variables,
// falling back to DefaultEnvironment.
func EnvFromVars(vars map[string]string) string {
	if env := vars[EnvVar]; env != "" {
		return env
	}
	return DefaultEnvironment
}
