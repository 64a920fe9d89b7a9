package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todomvc/internal/domfx"
	"todomvc/internal/logging/events"
	"todomvc/internal/todo"
)

func editKey(id int64) string {
	return fmt.Sprintf("edit-%d", id)
}

func editPath(id int64) string {
	return fmt.Sprintf(".todoapp .todo-list .todo.todo-%d .edit", id)
}

// syncSurface mounts an edit field for every visible todo and drops the
// fields of todos that are no longer shown.
func (m *Model) syncSurface() {
	shown := map[string]struct{}{newTodoKey: {}}
	for _, t := range m.loop.State().Visible() {
		k := editKey(t.ID)
		shown[k] = struct{}{}
		if _, ok := m.surface.Element(k); ok {
			continue
		}
		in := newInput("", "")
		in.Width = clampWidth(m.width - 12)
		if _, err := m.surface.Mount(k, editPath(t.ID), in); err != nil {
			events.Action.Error(err)
		}
	}
	for _, k := range m.surface.Keys() {
		if _, ok := shown[k]; !ok {
			m.surface.Unmount(k)
		}
	}
}

// execute runs the commands a dispatch returned, in order.
func (m *Model) execute(cmds []todo.Command) tea.Cmd {
	var out []tea.Cmd
	for _, c := range cmds {
		switch c := c.(type) {
		case todo.SetValue:
			out = append(out, m.effect(domfx.Effect{
				Type: domfx.SetValue,
				Data: domfx.Data{Selector: c.Selector, Value: c.Value},
			}))
		case todo.Focus:
			out = append(out, m.effect(domfx.Effect{
				Type: domfx.Focus,
				Data: domfx.Data{Selector: c.Selector},
			}))
		case todo.Persist:
			m.store.Put(c.Key, c.Records)
		case todo.WatchRoute:
			if name, ok := m.router.Watch(string(c.Filter)); ok {
				if f, known := todo.ParseFilter(name); known {
					out = append(out, dispatch(todo.SetVisibility{Filter: f}))
				}
			}
		case todo.Log:
			events.App.Message(c.Message)
			m.status = c.Message
		case todo.Next:
			out = append(out, later(c.Delay, c.Action))
		}
	}
	return tea.Batch(out...)
}

func (m *Model) effect(fx domfx.Effect) tea.Cmd {
	changes, cmd := m.fx.Apply(fx)
	return tea.Batch(domfx.Notify(changes), cmd)
}

func later(d time.Duration, a todo.Action) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dispatchMsg{action: a}
	})
}
