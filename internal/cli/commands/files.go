package commands

import (
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/sqlinc/internal/cli/output"
	"github.com/leapstack-labs/sqlinc/internal/ignore"
	"github.com/spf13/cobra"
)

// FilesOutput is the JSON/YAML shape of the files command.
type FilesOutput struct {
	Root  string   `json:"root" yaml:"root"`
	Files []string `json:"files" yaml:"files"`
}

// NewFilesCommand creates the files command.
func NewFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List project files not excluded by .gitignore",
		Long: `Walk the project root and list every file that the project's
.gitignore does not exclude. Ignored directories are skipped entirely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFiles(cmd)
		},
	}
}

func runFiles(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutLoader(cmd)
	root := cmdCtx.Cfg.ProjectRoot

	matcher, err := ignore.Load(filepath.Join(root, ignore.FileName))
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("loaded ignore patterns", "count", len(matcher.Patterns()))

	files, err := ignore.ListFiles(root, matcher)
	if err != nil {
		return err
	}
	if files == nil {
		files = []string{}
	}

	r := cmdCtx.Renderer
	if handled, err := r.Data(FilesOutput{Root: root, Files: files}); handled {
		return err
	}

	r.Header(1, fmt.Sprintf("Files (%d)", len(files)))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("")
		for _, f := range files {
			r.Println("- " + f)
		}
		return nil
	}
	for _, f := range files {
		r.Println(f)
	}
	return nil
}
