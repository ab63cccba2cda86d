package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlinc/internal/cli/output"
	"github.com/leapstack-labs/sqlinc/internal/envconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// EnvInfo describes one registered environment.
type EnvInfo struct {
	Name     string `json:"name" yaml:"name"`
	Selected bool   `json:"selected" yaml:"selected"`
	Default  bool   `json:"default" yaml:"default"`
}

// EnvListOutput is the JSON/YAML shape of env list.
type EnvListOutput struct {
	ConfigsDir   string    `json:"configs_dir" yaml:"configs_dir"`
	Selected     string    `json:"selected" yaml:"selected"`
	Environments []EnvInfo `json:"environments" yaml:"environments"`
}

// EnvShowOutput is the JSON/YAML shape of env show.
type EnvShowOutput struct {
	Name     string             `json:"name" yaml:"name"`
	Settings envconfig.Settings `json:"settings" yaml:"settings"`
}

// NewEnvCommand creates the env command and its subcommands.
func NewEnvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect environment settings",
		Long: `Inspect the per-environment settings files of the project.

Settings are discovered in the configs directory (default includes/configs):
one <env>.yaml, <env>.yml or <env>.star file per environment. The selected
environment comes from vars.env (--env, SQLINC_ENV) and defaults to "dev".`,
	}

	cmd.AddCommand(newEnvListCommand())
	cmd.AddCommand(newEnvShowCommand())

	return cmd
}

func newEnvListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnvList(cmd)
		},
	}
}

func runEnvList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	selected := cmdCtx.Cfg.Environment()
	out := EnvListOutput{
		ConfigsDir:   cmdCtx.Cfg.ConfigsDir,
		Selected:     selected,
		Environments: []EnvInfo{},
	}
	for _, name := range cmdCtx.Loader.Environments() {
		out.Environments = append(out.Environments, EnvInfo{
			Name:     name,
			Selected: name == selected,
			Default:  name == envconfig.DefaultEnvironment,
		})
	}

	r := cmdCtx.Renderer
	if handled, err := r.Data(out); handled {
		return err
	}

	r.Header(1, fmt.Sprintf("Environments (%d)", len(out.Environments)))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("")
	}

	rows := make([][]string, 0, len(out.Environments))
	for _, env := range out.Environments {
		rows = append(rows, []string{env.Name, mark(env.Selected), mark(env.Default)})
	}
	r.Table([]string{"ENVIRONMENT", "SELECTED", "DEFAULT"}, rows)
	return nil
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func newEnvShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [env]",
		Short: "Show the settings of an environment",
		Long: `Load and print the settings of an environment, defaulting to the
selected one. Starlark settings are evaluated with the current vars.`,
		Example: `  sqlinc env show
  sqlinc env show prod -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return runEnvShow(cmd, name)
		},
	}
}

func runEnvShow(cmd *cobra.Command, name string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if name == "" {
		name = cmdCtx.Cfg.Environment()
	}

	settings, err := cmdCtx.Loader.Load(name)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if handled, err := r.Data(EnvShowOutput{Name: name, Settings: settings}); handled {
		return err
	}

	body, err := yaml.Marshal(map[string]any(settings))
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	r.Header(1, "Environment: "+name)
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("")
		r.Println("```yaml")
		r.Printf("%s", body)
		r.Println("```")
		return nil
	}
	r.Printf("%s", body)
	return nil
}
