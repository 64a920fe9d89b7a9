package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todomvc/internal/config"
	"todomvc/internal/domfx"
	"todomvc/internal/logging/events"
	"todomvc/internal/router"
	"todomvc/internal/storage"
	"todomvc/internal/todo"
)

const (
	newTodoKey  = "new-todo"
	newTodoPath = ".todoapp .header .new-todo-form .new-todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type Model struct {
	loop    *todo.Loop
	store   *storage.Driver
	surface *domfx.Surface
	fx      *domfx.Driver
	router  *router.Router
	keys    keyMap
	help    help.Model

	cursor int
	status string
	width  int
}

// New wires the application component to its drivers.
func New(loop *todo.Loop, store *storage.Driver, r *router.Router, cfg config.Config) Model {
	surface := domfx.NewSurface()
	ti := newInput("What needs to be done?", "❯ ")
	// the new-todo field starts focused
	ti.Focus()
	if _, err := surface.Mount(newTodoKey, newTodoPath, ti); err != nil {
		events.Action.Error(err)
	}

	loop.Trace = func(a todo.Action, _, after todo.State) {
		events.Action.Applied(a.Name(), after.Total(), after.Remaining())
	}

	m := Model{
		loop:    loop,
		store:   store,
		surface: surface,
		fx:      domfx.NewDriver(surface),
		router:  r,
		keys:    newKeyMap(cfg.Keys),
		help:    help.New(),
		status:  "Type a todo and press enter. Esc to browse the list.",
	}

	// the stored list is in place before the first key press
	records := storage.Load(store, todo.StoreKey, []todo.Record{})
	if _, err := loop.Dispatch(todo.FromStore{Todos: todo.FromRecords(records)}); err != nil {
		events.Action.Error(err)
	}
	m.syncSurface()
	return m
}

// Run starts the terminal program and blocks until it exits.
func Run(loop *todo.Loop, store *storage.Driver, r *router.Router, cfg config.Config) error {
	program := tea.NewProgram(New(loop, store, r, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newInput(placeholder, prompt string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		dispatch(todo.Bootstrap{}),
		textinput.Blink,
	)
}

func dispatch(a todo.Action) tea.Cmd {
	return func() tea.Msg { return dispatchMsg{action: a} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			events.App.Quit()
			return m, tea.Quit
		}
		switch m.mode() {
		case modeEdit:
			return m.updateEditMode(msg)
		case modeAdd:
			return m.updateAddMode(msg)
		default:
			return m.updateListMode(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if el, ok := m.surface.Element(newTodoKey); ok {
			el.Input.Width = clampWidth(msg.Width - 10)
		}
	case dispatchMsg:
		return m.send(msg.action)
	case domfx.ChangeMsg:
		return m, nil
	default:
		// cursor blink and other input housekeeping
		if el, ok := m.surface.Focused(); ok {
			var cmd tea.Cmd
			el.Input, cmd = el.Input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) mode() mode {
	if _, ok := m.editingTodo(); ok {
		return modeEdit
	}
	if el, ok := m.surface.Element(newTodoKey); ok && el.Input.Focused() {
		return modeAdd
	}
	return modeList
}

func (m Model) editingTodo() (todo.Todo, bool) {
	for _, t := range m.loop.State().Visible() {
		if t.Editing {
			return t, true
		}
	}
	return todo.Todo{}, false
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	el, _ := m.surface.Element(newTodoKey)
	switch {
	case key.Matches(msg, m.keys.Submit):
		title := strings.TrimSpace(el.Input.Value())
		if title == "" {
			return m, nil
		}
		m.status = fmt.Sprintf("Added %q", title)
		return m.send(todo.NewTodo{Title: title})
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Blur):
		el.Input.Blur()
		m.status = "Browsing list"
		return m, nil
	default:
		var cmd tea.Cmd
		el.Input, cmd = el.Input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, _ := m.editingTodo()
	el, mounted := m.surface.Element(editKey(t.ID))
	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Blur):
		value := t.Title
		if mounted {
			value = el.Input.Value()
			el.Input.Blur()
		}
		m.status = "Saved"
		return m.send(todo.Item{ID: t.ID, Op: todo.EditDone{Title: value}})
	case key.Matches(msg, m.keys.Cancel):
		if mounted {
			el.Input.Blur()
		}
		m.status = "Edit cancelled"
		return m.send(todo.Item{ID: t.ID, Op: todo.EditCancel{}})
	default:
		if !mounted {
			return m, nil
		}
		var cmd tea.Cmd
		el.Input, cmd = el.Input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.loop.State().Visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		events.App.Quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.NewTodo):
		m.status = "Type a todo and press enter"
		cmd := m.effect(domfx.Effect{Type: domfx.Focus, Data: domfx.Data{Selector: ".new-todo"}})
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := current(visible, m.cursor); ok {
			return m.send(todo.Item{ID: t.ID, Op: todo.Toggle{}})
		}
	case key.Matches(msg, m.keys.Destroy):
		if t, ok := current(visible, m.cursor); ok {
			m.status = fmt.Sprintf("Deleted %q", t.Title)
			return m.send(todo.Item{ID: t.ID, Op: todo.Destroy{}})
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := current(visible, m.cursor); ok {
			m.status = "Editing: enter to save, esc to cancel"
			return m.send(todo.Item{ID: t.ID, Op: todo.EditStart{}})
		}
	case key.Matches(msg, m.keys.ToggleAll):
		if m.loop.State().Total() > 0 {
			return m.send(todo.ToggleAll{})
		}
	case key.Matches(msg, m.keys.ClearCompleted):
		if m.loop.State().CompletedCount() > 0 {
			return m.send(todo.ClearCompleted{})
		}
	case key.Matches(msg, m.keys.RouteAll):
		return m.navigate(todo.FilterAll)
	case key.Matches(msg, m.keys.RouteActive):
		return m.navigate(todo.FilterActive)
	case key.Matches(msg, m.keys.RouteCompleted):
		return m.navigate(todo.FilterCompleted)
	case key.Matches(msg, m.keys.PrevRoute):
		return m.navigate(m.cycleFilter(-1))
	case key.Matches(msg, m.keys.NextRoute):
		return m.navigate(m.cycleFilter(1))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// navigate moves the location hash; the router decides whether the
// application hears about it.
func (m Model) navigate(f todo.Filter) (tea.Model, tea.Cmd) {
	name, ok := m.router.Navigate(router.Hash(string(f)))
	if !ok {
		return m, nil
	}
	filter, known := todo.ParseFilter(name)
	if !known {
		return m, nil
	}
	return m.send(todo.SetVisibility{Filter: filter})
}

func (m Model) cycleFilter(step int) todo.Filter {
	filters := todo.Filters()
	cur := 0
	for i, f := range filters {
		if f == m.loop.State().Visibility {
			cur = i
		}
	}
	return filters[wrapIndex(cur+step, len(filters))]
}

// send runs a through the loop and executes what it emitted.
func (m Model) send(a todo.Action) (tea.Model, tea.Cmd) {
	cmds, err := m.loop.Dispatch(a)
	if err != nil {
		events.Action.Error(err)
		m.status = err.Error()
	}
	m.syncSurface()
	m.cursor = clampCursor(m.cursor, len(m.loop.State().Visible()))
	cmd := m.execute(cmds)
	return m, cmd
}

func current(todos []todo.Todo, cursor int) (todo.Todo, bool) {
	if len(todos) == 0 {
		return todo.Todo{}, false
	}
	return todos[clampCursor(cursor, len(todos))], true
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampWidth(w int) int {
	if w < 10 {
		return 10
	}
	return w
}
