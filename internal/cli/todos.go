package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todomvc/internal/logging/events"
	"todomvc/internal/router"
	"todomvc/internal/storage"
	"todomvc/internal/todo"
)

// session drives the same loop as the TUI without a screen: field effects
// are dropped and delayed follow-ups run immediately.
type session struct {
	store *storage.Driver
	loop  *todo.Loop
}

func (app *App) open() (*session, error) {
	store, err := app.openStore()
	if err != nil {
		return nil, err
	}
	s := &session{
		store: store,
		loop:  todo.NewLoop(todo.NewReducer(nil), todo.InitialState()),
	}
	s.loop.Trace = func(a todo.Action, _, after todo.State) {
		events.Action.Applied(a.Name(), after.Total(), after.Remaining())
	}
	records := storage.Load(store, todo.StoreKey, []todo.Record{})
	if err := s.dispatch(todo.FromStore{Todos: todo.FromRecords(records)}); err != nil {
		closeStore(store)
		return nil, err
	}
	return s, nil
}

func (s *session) close() {
	closeStore(s.store)
}

func (s *session) dispatch(a todo.Action) error {
	cmds, err := s.loop.Dispatch(a)
	for len(cmds) > 0 {
		c := cmds[0]
		cmds = cmds[1:]
		switch c := c.(type) {
		case todo.Persist:
			s.store.Put(c.Key, c.Records)
		case todo.Next:
			more, nextErr := s.loop.Dispatch(c.Action)
			err = errors.Join(err, nextErr)
			cmds = append(cmds, more...)
		case todo.Log:
			events.App.Message(c.Message)
		}
	}
	return err
}

// lookup resolves a todo id argument against the loaded list.
func (s *session) lookup(arg string) (todo.Todo, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("invalid todo id %q", arg)
	}
	t, ok := s.loop.State().Todos.Get(id)
	if !ok {
		return todo.Todo{}, errNotFound(id)
	}
	return t, nil
}

// withSession opens storage, runs fn and flushes every write before
// returning.
func withSession(app *App, fn func(s *session) error) error {
	s, err := app.open()
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

func newListCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the todos matching a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := filter
			if name == "" {
				name = router.Parse(app.cfg.Route)
			}
			f, ok := todo.ParseFilter(name)
			if !ok {
				return fmt.Errorf("unknown filter %q", name)
			}
			return withSession(app, func(s *session) error {
				if err := s.dispatch(todo.SetVisibility{Filter: f}); err != nil {
					return err
				}
				printList(cmd.OutOrStdout(), s.loop.State())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "all|active|completed (default: the configured route)")
	return cmd
}

func printList(w io.Writer, st todo.State) {
	if st.Total() == 0 {
		fmt.Fprintln(w, "No todos yet.")
		return
	}
	for _, t := range st.Visible() {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %s  #%d\n", box, t.Title, t.ID)
	}
	left := "items left"
	if st.Remaining() == 1 {
		left = "item left"
	}
	fmt.Fprintf(w, "%d %s\n", st.Remaining(), left)
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>...",
		Short: "Add one todo per argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(app, func(s *session) error {
				for _, arg := range args {
					title := strings.TrimSpace(arg)
					if title == "" {
						continue
					}
					if err := s.dispatch(todo.NewTodo{Title: title}); err != nil {
						return err
					}
					items := s.loop.State().Todos.Items()
					added := items[len(items)-1]
					fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s\n", added.ID, added.Title)
				}
				return nil
			})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(app, func(s *session) error {
				t, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				return s.dispatch(todo.Item{ID: t.ID, Op: todo.Toggle{}})
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"destroy"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(app, func(s *session) error {
				t, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				return s.dispatch(todo.Item{ID: t.ID, Op: todo.Destroy{}})
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title>...",
		Short: "Retitle a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return errors.New("title must not be empty")
			}
			return withSession(app, func(s *session) error {
				t, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				if err := s.dispatch(todo.Item{ID: t.ID, Op: todo.EditStart{}}); err != nil {
					return err
				}
				return s.dispatch(todo.Item{ID: t.ID, Op: todo.EditDone{Title: title}})
			})
		},
	}
}

func newToggleAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Complete every todo, or reopen them all if they already are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(app, func(s *session) error {
				return s.dispatch(todo.ToggleAll{})
			})
		},
	}
}

func newClearCompletedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(app, func(s *session) error {
				return s.dispatch(todo.ClearCompleted{})
			})
		},
	}
}
