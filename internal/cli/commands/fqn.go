package commands

import (
	"github.com/leapstack-labs/sqlinc/internal/registry"
	"github.com/spf13/cobra"
)

// NewFQNCommand creates the fqn command.
func NewFQNCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fqn <source> <table>",
		Short: "Resolve a logical table to its fully-qualified name",
		Long: `Resolve a (source, table) pair against the registry of the selected
environment and print project.dataset.table.

Unknown sources and tables are errors.`,
		Example: `  # Resolve with the default environment
  sqlinc fqn appsflyer installs

  # Resolve against prod settings
  sqlinc fqn ironsource impressions --env prod

  # Machine-readable
  sqlinc fqn appsflyer events -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFQN(cmd, args[0], args[1])
		},
	}

	return cmd
}

func runFQN(cmd *cobra.Command, source, table string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	reg, err := cmdCtx.Registry()
	if err != nil {
		return err
	}

	fqn, err := registry.Resolve(reg, source, table)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	ref := registry.TableRef{Source: source, Table: table, FQN: fqn}
	if handled, err := r.Data(ref); handled {
		return err
	}

	r.Println(fqn)
	return nil
}
