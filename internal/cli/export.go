package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/localtodo/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored list as json, csv, md or pdf",
		Example: strings.TrimSpace(`
  todo export --format md
  todo export --format pdf -o todos.pdf
`),
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format == "markdown" {
				format = "md"
			}
			if !slices.Contains(export.Formats, format) {
				return usageErr("export: unknown format %s (want %s)", format, strings.Join(export.Formats, "|"))
			}
			if format == "pdf" && output == "" {
				return usageErr("export: pdf needs -o <file>")
			}

			if err := app.open(cmd, false); err != nil {
				return err
			}
			defer app.close()

			todos, err := app.load(cmd)
			if err != nil {
				return err
			}
			b, err := export.Render(todos, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("export: %w", err)
				}
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			app.logger.Debug("exported", "format", format, "file", output, "items", len(todos))
			okLine(cmd, fmt.Sprintf("exported %d todos to %s", len(todos), output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|csv|md|pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
