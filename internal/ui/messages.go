package ui

import "todomvc/internal/todo"

// dispatchMsg feeds an action into the loop from outside a key press:
// bootstrap, route events and delayed follow-ups.
type dispatchMsg struct {
	action todo.Action
}
