package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/todo"
)

const hintList = "Hint: run `todo ls` to see valid ids"

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a todo (the name can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usageErr("add: empty name")
			}
			return app.mutate(cmd, todo.Add(name), func(t model.Todo) string {
				return fmt.Sprintf("added #%d %s", t.ID, t.Name)
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <name...>",
		Short: "Rename a todo",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(cmd, args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if name == "" {
				return usageErr("edit: empty name")
			}
			return app.mutate(cmd, todo.Edit(id, name), func(t model.Todo) string {
				return fmt.Sprintf("updated #%d %s", t.ID, t.Name)
			})
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(cmd, args[0])
			if err != nil {
				return err
			}
			return app.mutate(cmd, todo.Complete(id), func(t model.Todo) string {
				if t.IsCompleted {
					return fmt.Sprintf("completed #%d", t.ID)
				}
				return fmt.Sprintf("reopened #%d", t.ID)
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a todo",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(cmd, args[0])
			if err != nil {
				return err
			}
			return app.mutate(cmd, todo.Delete(id), func(t model.Todo) string {
				return fmt.Sprintf("removed #%d", t.ID)
			})
		},
	}
}

func parseID(cmd *cobra.Command, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil {
		return 0, usageErr("%s: not a number: %s", cmd.Name(), s)
	}
	return n, nil
}

// load reads the stored list. Malformed data is an error here: a one-shot
// command must not overwrite it.
func (app *App) load(cmd *cobra.Command) ([]model.Todo, error) {
	res := app.bridge.LoadOnStart(cmd.Context())
	if res.Err != nil {
		if errors.Is(res.Err, persist.ErrMalformed) {
			return nil, withHint(ExitFailure, res.Err, "Hint: run `todo clear` to discard the stored list")
		}
		return nil, res.Err
	}
	return res.Todos, nil
}

// mutate is the one-shot load, reduce, persist cycle. done describes the
// affected todo for the success line.
func (app *App) mutate(cmd *cobra.Command, a todo.Action, done func(model.Todo) string) error {
	if err := app.open(cmd, false); err != nil {
		return err
	}
	defer app.close()

	stored, err := app.load(cmd)
	if err != nil {
		return err
	}
	state, err := todo.Reduce(todo.NewState(), todo.Load(stored))
	if err != nil {
		return err
	}

	target, found := todo.Find(state.Todos, a.ID)
	if a.Kind == todo.KindAdd {
		target, found = model.Todo{ID: state.NextID}, true
	}
	if !found {
		return withHint(ExitUsage, fmt.Errorf("no todo with id %d", a.ID), hintList)
	}

	state, err = todo.Reduce(state, a)
	if err != nil {
		return err
	}
	if a.Kind != todo.KindDelete {
		target, _ = todo.Find(state.Todos, target.ID)
	}

	ctx := cmd.Context()
	var msg string
	if len(state.Todos) == 0 {
		msg, err = app.bridge.Clear(ctx)
	} else {
		msg, err = app.bridge.Save(ctx, state.Todos)
	}
	if err != nil {
		return err
	}
	app.logger.Debug("persisted", "action", a.Kind, "id", target.ID, "result", msg)
	okLine(cmd, done(target))
	return nil
}
