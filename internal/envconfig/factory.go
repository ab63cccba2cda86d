package envconfig

import (
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	starctx "github.com/leapstack-labs/sqlinc/internal/starlark"
)

// ExportName is the key (YAML) or global (Starlark) holding the settings.
const ExportName = "environment"

// Static returns a factory that always yields a copy of settings.
func Static(settings Settings) Factory {
	return func() (Settings, error) {
		return maps.Clone(settings), nil
	}
}

// YAMLFile returns a factory reading the "environment" mapping of a YAML file:
//
//	environment:
//	  gcp:
//	    project:
//	      id: analytics-data-mart
func YAMLFile(path string) Factory {
	return func() (Settings, error) {
		// "/" keeps dotted keys such as table names intact.
		k := koanf.New("/")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}

		if !k.Exists(ExportName) {
			return nil, fmt.Errorf("%s: no %q key defined", path, ExportName)
		}
		raw, ok := k.Get(ExportName).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %q must be a mapping", path, ExportName)
		}
		return Settings(raw), nil
	}
}

// StarlarkFile returns a factory executing a Starlark settings file and
// reading its "environment" global. The file sees env and vars as
// predeclared globals.
func StarlarkFile(path, env string, vars map[string]string, logger *slog.Logger) Factory {
	return func() (Settings, error) {
		src, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the configs directory scan
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}

		globals, err := starctx.ExecFile(path, src, starctx.Predeclared(env, vars), logger)
		if err != nil {
			return nil, err
		}

		value, ok := globals[ExportName]
		if !ok {
			return nil, fmt.Errorf("%s: no %q global defined", path, ExportName)
		}
		converted, err := starctx.ToGo(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		settings, ok := converted.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %q must be a dict or struct, got %s", path, ExportName, value.Type())
		}
		return Settings(settings), nil
	}
}
