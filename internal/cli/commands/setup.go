package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlinc/internal/cli/config"
	"github.com/leapstack-labs/sqlinc/internal/cli/output"
	"github.com/leapstack-labs/sqlinc/internal/envconfig"
	"github.com/leapstack-labs/sqlinc/internal/registry"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Loader   *envconfig.Loader
}

// NewCommandContext creates a CommandContext with the environment settings
// files of the project registered.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutLoader(cmd)

	loader := envconfig.NewLoader(envconfig.WithLogger(cmdCtx.Logger))
	if err := loader.RegisterDir(cmdCtx.Cfg.ConfigsDir, cmdCtx.Cfg.Vars); err != nil {
		return nil, err
	}
	cmdCtx.Loader = loader

	return cmdCtx, nil
}

// NewCommandContextWithoutLoader creates a CommandContext without scanning
// the configs directory. Useful for commands that only build SQL fragments.
func NewCommandContextWithoutLoader(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Registry builds the registry for the selected environment.
// Lookup order:
//  1. "sources" in the selected environment's settings
//  2. registry_file
//  3. gcp/sources in sqlinc.yaml
//  4. the built-in default registry
//
// Once any environment is registered, a missing selected environment is an error.
func (c *CommandContext) Registry() (*registry.Registry, error) {
	opts := []registry.Option{registry.WithLogger(c.Logger)}
	envName := c.Cfg.Environment()

	if c.Loader != nil && len(c.Loader.Environments()) > 0 {
		settings, err := c.Loader.Load(envName)
		if err != nil {
			return nil, err
		}
		if _, ok := settings["sources"]; ok {
			c.Logger.Debug("using registry from environment settings", "env", envName)
			return registry.FromSettings(settings, opts...)
		}
	}

	if c.Cfg.RegistryFile != "" {
		if err := c.Cfg.ValidateRegistryFile(); err != nil {
			return nil, err
		}
		c.Logger.Debug("using registry file", "path", c.Cfg.RegistryFile)
		return registry.LoadFile(c.Cfg.RegistryFile, opts...)
	}

	if c.Cfg.HasInlineRegistry() {
		c.Logger.Debug("using registry from config file", "path", c.Cfg.ConfigFile)
		reg, err := registry.New(c.Cfg.InlineDefinition(), opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ConfigFileName, err)
		}
		return reg, nil
	}

	c.Logger.Debug("using built-in registry")
	return registry.Default(opts...), nil
}
