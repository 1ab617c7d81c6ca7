package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/localtodo/internal/export"
	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/ui"
)

const maxListTitle = 80

func newListCmd(app *App) *cobra.Command {
	var group, markdown bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored todos",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(cmd, false); err != nil {
				return err
			}
			defer app.close()

			todos, err := app.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if markdown {
				s, err := renderMarkdown(export.Markdown(todos))
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
				return nil
			}
			fmt.Fprintln(out, listPanel(todos, group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group by pending/done")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render as a markdown checklist")
	return cmd
}

func listPanel(todos []model.Todo, group bool) string {
	t := ui.Current()
	d, p := model.Stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, flatLines(todos)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return ui.Panel(lines)
}

func flatLines(todos []model.Todo) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		box := t.Muted.Render(t.BoxUnchecked)
		name := td.Name
		if r := []rune(name); len(r) > maxListTitle {
			name = string(r[:maxListTitle-3]) + "..."
		}
		if td.IsCompleted {
			box = t.Success.Render(t.BoxChecked)
			name = t.Done.Render(name)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%3s", fmt.Sprintf("#%d", td.ID))), box, name))
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	t := ui.Current()
	var pend, done []model.Todo
	for _, td := range todos {
		if td.IsCompleted {
			done = append(done, td)
		} else {
			pend = append(pend, td)
		}
	}
	section := func(title string, list []model.Todo) []string {
		lines := []string{t.Accent.Render(title)}
		if len(list) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(list)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func renderMarkdown(md string) (string, error) {
	style := styles.DarkStyle
	if ui.Current().Name == "mono" {
		style = styles.NoTTYStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	s, err := r.Render(strings.TrimSpace(md))
	if err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return s, nil
}
