package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// configNames are the accepted config file names, in lookup order.
var configNames = []string{ConfigFileName, "sqlinc.yml"}

// configIn returns the config file in dir, or "" if there is none.
func configIn(dir string) string {
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findProjectRootUpward searches upward from startDir for a sqlinc config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configIn(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root.
// Priority:
//  1. Explicit --project-dir flag
//  2. Directory of an explicit --config file
//  3. Search upward from CWD for sqlinc.yaml
//  4. Current working directory
func inferProjectRoot(cfgFile string, flags *pflag.FlagSet) string {
	if flags != nil {
		if projectDir, _ := flags.GetString("project-dir"); projectDir != "" && flags.Changed("project-dir") {
			if abs, err := filepath.Abs(projectDir); err == nil {
				return abs
			}
			return filepath.Clean(projectDir)
		}
	}

	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}

	cwd, _ := os.Getwd()
	if cwd == "" {
		return "."
	}
	if root := findProjectRootUpward(cwd); root != "" {
		return root
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// envKey maps SQLINC_* variables to config keys. A double underscore
// separates nesting levels (SQLINC_VARS__SCHEDULE -> vars.schedule) and
// SQLINC_ENV is shorthand for vars.env.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "env" {
		return "vars.env"
	}
	return strings.ReplaceAll(key, "__", ".")
}

// flagKey maps a set flag onto its config key and value.
func flagKey(flags *pflag.FlagSet, f *pflag.Flag) (string, any) {
	if !f.Changed {
		return "", nil
	}

	switch f.Name {
	case "config", "project-dir", "var":
		return "", nil
	case "registry":
		return "registry_file", posflag.FlagVal(flags, f)
	case "env":
		return "vars.env", posflag.FlagVal(flags, f)
	}

	return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
}

// flagVars returns the --var pairs set on flags.
func flagVars(flags *pflag.FlagSet) map[string]any {
	if flags == nil {
		return nil
	}
	f := flags.Lookup("var")
	if f == nil || !f.Changed {
		return nil
	}
	pairs, err := flags.GetStringToString("var")
	if err != nil {
		return nil
	}
	vars := make(map[string]any, len(pairs))
	for k, v := range pairs {
		vars[k] = v
	}
	return vars
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > --var > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	projectRoot := inferProjectRoot(cfgFile, flags)

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"configs_dir": DefaultConfigs,
		"output":      DefaultOutput,
		"log_level":   DefaultLogLevel,
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = configIn(projectRoot)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. --var pairs, merged key by key into vars. Loaded on their own so
	// that --env, applied with the remaining flags, always wins for vars.env.
	if vars := flagVars(flags); len(vars) > 0 {
		if err := k.Load(confmap.Provider(map[string]any{"vars": vars}, ""), nil); err != nil {
			return nil, fmt.Errorf("failed to load --var flags: %w", err)
		}
	}

	// 5. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			return flagKey(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.ConfigFile = cfgFile
	cfg.ConfigsDir = resolvePathRelativeTo(cfg.ConfigsDir, projectRoot)
	cfg.RegistryFile = resolvePathRelativeTo(cfg.RegistryFile, projectRoot)
	if cfg.Vars == nil {
		cfg.Vars = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from ctx, falling back to defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	cwd, _ := os.Getwd()
	return &Config{
		ConfigsDir:   resolvePathRelativeTo(DefaultConfigs, cwd),
		Vars:         map[string]string{},
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		ProjectRoot:  cwd,
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
