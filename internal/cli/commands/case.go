package commands

import (
	"github.com/leapstack-labs/sqlinc/internal/fragment"
	"github.com/spf13/cobra"
)

// FragmentOutput is the JSON/YAML shape of the case commands.
type FragmentOutput struct {
	SQL string `json:"sql" yaml:"sql"`
}

// AppNameOptions holds flags for the case app-name command.
type AppNameOptions struct {
	GroupA       []string
	GroupB       []string
	UnknownLabel string
	LabelA       string
	LabelB       string
	Separator    string
	SecondGroup  bool
}

// NewCaseCommand creates the case command and its fragment subcommands.
func NewCaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Build SQL CASE fragments",
		Long: `Build the repeated CASE expressions used across transformation steps.

The fragments are printed as literal SQL text, ready to be spliced into a
SELECT list.`,
	}

	cmd.AddCommand(newAppNameCommand())
	cmd.AddCommand(newNullableIDCommand())

	return cmd
}

func newAppNameCommand() *cobra.Command {
	opts := &AppNameOptions{}

	cmd := &cobra.Command{
		Use:   "app-name <column>",
		Short: "Classify application identifiers into an app_name column",
		Long: `Build a CASE expression mapping values of <column> to an app_name label.

Values of --group-a map to the first label. Values of --group-b are only
encoded when --second-group is set; otherwise they fall through to the
unknown label.`,
		Example: `  sqlinc case app-name package_name --group-a com.a.go,com.b.go --group-b com.c.tycoon

  # Also classify the second group
  sqlinc case app-name package_name --group-a com.a.go --group-b com.c.tycoon --second-group`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppName(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.GroupA, "group-a", nil, "Values mapped to the first label")
	cmd.Flags().StringSliceVar(&opts.GroupB, "group-b", nil, "Values of the second group")
	cmd.Flags().StringVar(&opts.UnknownLabel, "unknown-label", fragment.DefaultUnknownLabel, "Label for unmatched values")
	cmd.Flags().StringVar(&opts.LabelA, "label-a", fragment.DefaultLabelA, "Label of the first group")
	cmd.Flags().StringVar(&opts.LabelB, "label-b", fragment.DefaultLabelB, "Label of the second group")
	cmd.Flags().StringVar(&opts.Separator, "separator", fragment.DefaultTrailingSeparator, "Trailing separator after the alias")
	cmd.Flags().BoolVar(&opts.SecondGroup, "second-group", false, "Encode --group-b as its own WHEN branch")

	return cmd
}

func runAppName(cmd *cobra.Command, column string, opts *AppNameOptions) error {
	cmdCtx := NewCommandContextWithoutLoader(cmd)

	fragOpts := []fragment.AppNameOption{
		fragment.WithUnknownLabel(opts.UnknownLabel),
		fragment.WithLabels(opts.LabelA, opts.LabelB),
		fragment.WithTrailingSeparator(opts.Separator),
	}
	if opts.SecondGroup {
		fragOpts = append(fragOpts, fragment.WithSecondGroup())
	}

	sql := fragment.AppNameCase(column, opts.GroupA, opts.GroupB, fragOpts...)
	cmdCtx.Logger.Debug("built app_name fragment", "column", column, "group_a", len(opts.GroupA), "group_b", len(opts.GroupB))

	return printFragment(cmdCtx, sql)
}

func newNullableIDCommand() *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "nullable-id <column>",
		Short: "Cast a possibly empty identifier column to STRING or NULL",
		Long: `Build a CASE expression that yields NULL for NULL or empty values of
<column> and CAST(<column> AS STRING) otherwise, aliased back to the column.`,
		Example: `  sqlinc case nullable-id user_id
  sqlinc case nullable-id raw_user_id --as user_id`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutLoader(cmd)
			return printFragment(cmdCtx, fragment.NullableIDCaseAs(args[0], alias))
		},
	}

	cmd.Flags().StringVar(&alias, "as", "", "Output alias (defaults to the column name)")

	return cmd
}

func printFragment(cmdCtx *CommandContext, sql string) error {
	r := cmdCtx.Renderer
	if handled, err := r.Data(FragmentOutput{SQL: sql}); handled {
		return err
	}
	r.Println(sql)
	return nil
}
