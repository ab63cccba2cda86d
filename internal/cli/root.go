// Package cli provides the command-line interface for sqlinc.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlinc/internal/cli/commands"
	"github.com/leapstack-labs/sqlinc/internal/cli/config"
	"github.com/leapstack-labs/sqlinc/internal/cli/output"
	"github.com/leapstack-labs/sqlinc/internal/envconfig"
	"github.com/leapstack-labs/sqlinc/internal/logging"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlinc",
		Short: "sqlinc - table registry and SQL fragment builder",
		Long: `sqlinc holds the configuration layer of a warehouse transformation
pipeline.

It resolves logical (source, table) pairs to fully-qualified
project.dataset.table names, builds the CASE fragments shared across
transformation steps, and selects per-environment settings from the
project's configs directory.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := logging.New(cmd.ErrOrStderr(), level, "sqlinc")

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}
			logger.Debug("selected environment", "env", cfg.Environment(), "project_root", cfg.ProjectRoot)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./sqlinc.yaml)")
	pf.String("project-dir", "", "Project root (default: nearest directory with sqlinc.yaml)")
	pf.String("configs-dir", "", "Directory of per-environment settings files")
	pf.String("registry", "", "YAML registry file")
	pf.StringP("env", "e", "", "Environment name (default: dev)")
	pf.StringToString("var", nil, "Project variables as key=value pairs")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.BoolP("verbose", "v", false, "Verbose output (debug logging)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes, cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("env", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return completeEnvironments(cmd, cfgFile), cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewFQNCommand())
	rootCmd.AddCommand(commands.NewSourcesCommand())
	rootCmd.AddCommand(commands.NewCaseCommand())
	rootCmd.AddCommand(commands.NewEnvCommand())
	rootCmd.AddCommand(commands.NewFilesCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// completeEnvironments lists the environments of the project for shell completion.
func completeEnvironments(cmd *cobra.Command, cfgFile string) []string {
	cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return []string{envconfig.DefaultEnvironment}
	}
	loader := envconfig.NewLoader()
	if err := loader.RegisterDir(cfg.ConfigsDir, cfg.Vars); err != nil {
		return []string{envconfig.DefaultEnvironment}
	}
	return loader.Environments()
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqlinc.

To load completions:

Bash:
  $ source <(sqlinc completion bash)

Zsh:
  $ sqlinc completion zsh > "${fpath[1]}/_sqlinc"

Fish:
  $ sqlinc completion fish | source

PowerShell:
  PS> sqlinc completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
