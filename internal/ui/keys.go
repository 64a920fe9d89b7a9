package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todomvc/internal/config"
)

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Destroy        key.Binding
	Edit           key.Binding
	ToggleAll      key.Binding
	ClearCompleted key.Binding
	NewTodo        key.Binding
	Submit         key.Binding
	Cancel         key.Binding
	Blur           key.Binding
	RouteAll       key.Binding
	RouteActive    key.Binding
	RouteCompleted key.Binding
	PrevRoute      key.Binding
	NextRoute      key.Binding
	Help           key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:             key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(label(k.Up)+"/↑", "up")),
		Down:           key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(label(k.Down)+"/↓", "down")),
		Toggle:         key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(label(k.Toggle), "toggle")),
		Destroy:        key.NewBinding(key.WithKeys(k.Destroy, "delete"), key.WithHelp(label(k.Destroy), "delete")),
		Edit:           key.NewBinding(key.WithKeys(k.Edit, "enter"), key.WithHelp(label(k.Edit)+"/enter", "edit")),
		ToggleAll:      key.NewBinding(key.WithKeys(k.ToggleAll), key.WithHelp(label(k.ToggleAll), "toggle all")),
		ClearCompleted: key.NewBinding(key.WithKeys(k.ClearCompleted), key.WithHelp(label(k.ClearCompleted), "clear completed")),
		NewTodo:        key.NewBinding(key.WithKeys(k.NewTodo), key.WithHelp(label(k.NewTodo), "new todo")),
		Submit:         key.NewBinding(key.WithKeys(k.Submit), key.WithHelp(label(k.Submit), "save")),
		Cancel:         key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(label(k.Cancel), "cancel")),
		Blur:           key.NewBinding(key.WithKeys(k.Blur), key.WithHelp(label(k.Blur), "leave field")),
		RouteAll:       key.NewBinding(key.WithKeys(k.RouteAll), key.WithHelp(label(k.RouteAll), "all")),
		RouteActive:    key.NewBinding(key.WithKeys(k.RouteActive), key.WithHelp(label(k.RouteActive), "active")),
		RouteCompleted: key.NewBinding(key.WithKeys(k.RouteCompleted), key.WithHelp(label(k.RouteCompleted), "completed")),
		PrevRoute:      key.NewBinding(key.WithKeys(k.PrevRoute, "left"), key.WithHelp(label(k.PrevRoute)+"/←", "prev filter")),
		NextRoute:      key.NewBinding(key.WithKeys(k.NextRoute, "right"), key.WithHelp(label(k.NextRoute)+"/→", "next filter")),
		Help:           key.NewBinding(key.WithKeys(k.Help), key.WithHelp(label(k.Help), "help")),
		Quit:           key.NewBinding(key.WithKeys(k.Quit), key.WithHelp(label(k.Quit), "quit")),
		ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewTodo, k.Toggle, k.Edit, k.Destroy, k.RouteAll, k.RouteActive, k.RouteCompleted, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Destroy},
		{k.NewTodo, k.ToggleAll, k.ClearCompleted, k.Submit, k.Cancel, k.Blur},
		{k.RouteAll, k.RouteActive, k.RouteCompleted, k.PrevRoute, k.NextRoute},
		{k.Help, k.Quit},
	}
}
