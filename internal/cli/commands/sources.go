package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlinc/internal/cli/output"
	"github.com/leapstack-labs/sqlinc/internal/registry"
	"github.com/spf13/cobra"
)

// SourcesOutput is the JSON/YAML shape of the sources command.
type SourcesOutput struct {
	Project     string              `json:"project" yaml:"project"`
	Environment string              `json:"environment" yaml:"environment"`
	Tables      []registry.TableRef `json:"tables" yaml:"tables"`
}

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources [source]",
		Short: "List registered sources and their tables",
		Long: `List every (source, table) pair of the selected registry with its
fully-qualified name. Pass a source name to list only its tables.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # All tables
  sqlinc sources

  # Tables of one source as YAML
  sqlinc sources appsflyer -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) == 1 {
				source = args[0]
			}
			return runSources(cmd, source)
		},
	}

	return cmd
}

func runSources(cmd *cobra.Command, source string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	reg, err := cmdCtx.Registry()
	if err != nil {
		return err
	}

	refs := reg.All()
	if source != "" {
		if _, err := reg.TableNames(source); err != nil {
			return err
		}
		filtered := refs[:0]
		for _, ref := range refs {
			if ref.Source == source {
				filtered = append(filtered, ref)
			}
		}
		refs = filtered
	}

	r := cmdCtx.Renderer
	out := SourcesOutput{
		Project:     reg.Project(),
		Environment: cmdCtx.Cfg.Environment(),
		Tables:      refs,
	}
	if handled, err := r.Data(out); handled {
		return err
	}

	return sourcesTable(r, out)
}

func sourcesTable(r *output.Renderer, out SourcesOutput) error {
	r.Header(1, fmt.Sprintf("Sources (%s)", out.Project))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("")
		r.Println(output.FormatKeyValue("Environment", out.Environment))
		r.Println("")
	} else {
		r.Println(r.Muted("environment: " + out.Environment))
	}

	rows := make([][]string, 0, len(out.Tables))
	for _, ref := range out.Tables {
		rows = append(rows, []string{ref.Source, ref.Table, ref.FQN})
	}
	r.Table([]string{"SOURCE", "TABLE", "FQN"}, rows)
	return nil
}
