package todo

import (
	"fmt"
	"time"
)

// Action is a request to transition the root state. The set of actions is
// closed; Reducer.Apply switches over every variant.
type Action interface {
	Name() string
	isAction()
}

// Bootstrap runs once when the application starts.
type Bootstrap struct{}

// AddRoute asks the router to watch a filter's route.
type AddRoute struct{ Filter Filter }

type SetVisibility struct{ Filter Filter }

// FromStore replaces the list with the todos read at startup.
type FromStore struct{ Todos []Todo }

type NewTodo struct{ Title string }

type ToggleAll struct{}

type ClearCompleted struct{}

// ClearForm empties the new-todo input.
type ClearForm struct{}

// ToStore persists the list.
type ToStore struct{}

// Item addresses an operation to the todo with ID.
type Item struct {
	ID int64
	Op ItemOp
}

func (Bootstrap) Name() string      { return "BOOTSTRAP" }
func (AddRoute) Name() string       { return "ADD_ROUTE" }
func (SetVisibility) Name() string  { return "VISIBILITY" }
func (FromStore) Name() string      { return "FROM_STORE" }
func (NewTodo) Name() string        { return "NEW_TODO" }
func (ToggleAll) Name() string      { return "TOGGLE_ALL" }
func (ClearCompleted) Name() string { return "CLEAR_COMPLETED" }
func (ClearForm) Name() string      { return "CLEAR_FORM" }
func (ToStore) Name() string        { return "TO_STORE" }
func (a Item) Name() string         { return fmt.Sprintf("TODO[%d].%s", a.ID, a.Op.Name()) }

func (Bootstrap) isAction()      {}
func (AddRoute) isAction()       {}
func (SetVisibility) isAction()  {}
func (FromStore) isAction()      {}
func (NewTodo) isAction()        {}
func (ToggleAll) isAction()      {}
func (ClearCompleted) isAction() {}
func (ClearForm) isAction()      {}
func (ToStore) isAction()        {}
func (Item) isAction()           {}

// ItemOp is an operation on a single todo.
type ItemOp interface {
	Name() string
	isItemOp()
}

type Toggle struct{}

// Destroy removes the todo from the list.
type Destroy struct{}

type EditStart struct{}

type EditDone struct{ Title string }

type EditCancel struct{}

// SetEditValue writes Value into the edit field matched by Selector.
type SetEditValue struct {
	Selector string
	Value    string
}

type FocusEditField struct{ Selector string }

func (Toggle) Name() string         { return "TOGGLE" }
func (Destroy) Name() string        { return "DESTROY" }
func (EditStart) Name() string      { return "EDIT_START" }
func (EditDone) Name() string       { return "EDIT_DONE" }
func (EditCancel) Name() string     { return "EDIT_CANCEL" }
func (SetEditValue) Name() string   { return "SET_EDIT_VALUE" }
func (FocusEditField) Name() string { return "FOCUS_EDIT_FIELD" }

func (Toggle) isItemOp()         {}
func (Destroy) isItemOp()        {}
func (EditStart) isItemOp()      {}
func (EditDone) isItemOp()       {}
func (EditCancel) isItemOp()     {}
func (SetEditValue) isItemOp()   {}
func (FocusEditField) isItemOp() {}

// Command is an output of a transition, applied after the new state is
// committed.
type Command interface {
	isCommand()
}

// Next queues a follow-up action. A zero Delay runs it right after the
// current action; otherwise the executor schedules it.
type Next struct {
	Action Action
	Delay  time.Duration
}

// SetValue sets the value of every input matching Selector.
type SetValue struct {
	Selector string
	Value    string
}

// Focus moves input focus to the first input matching Selector.
type Focus struct{ Selector string }

// Persist stores the records under Key.
type Persist struct {
	Key     string
	Records []Record
}

// WatchRoute registers a filter's route with the router.
type WatchRoute struct{ Filter Filter }

type Log struct{ Message string }

func (Next) isCommand()       {}
func (SetValue) isCommand()   {}
func (Focus) isCommand()      {}
func (Persist) isCommand()    {}
func (WatchRoute) isCommand() {}
func (Log) isCommand()        {}
