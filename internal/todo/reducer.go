package todo

import "fmt"

// StoreKey is the storage key the list is persisted under.
const StoreKey = "todos"

// Reducer holds the root action table.
type Reducer struct {
	IDs IDSource
}

func NewReducer(ids IDSource) Reducer {
	if ids == nil {
		ids = NewClockIDs()
	}
	return Reducer{IDs: ids}
}

// Apply runs a against s and returns the next state together with the
// commands the action emitted, in emission order.
func (r Reducer) Apply(s State, a Action) (State, []Command, error) {
	switch a := a.(type) {
	case Bootstrap:
		cmds := make([]Command, 0, len(Filters())+1)
		for _, f := range Filters() {
			cmds = append(cmds, Next{Action: AddRoute{Filter: f}})
		}
		cmds = append(cmds, Log{Message: "Starting application..."})
		return s, cmds, nil

	case AddRoute:
		return s, []Command{WatchRoute{Filter: a.Filter}}, nil

	case SetVisibility:
		if _, ok := ParseFilter(string(a.Filter)); !ok {
			return s, nil, fmt.Errorf("unknown visibility filter %q", a.Filter)
		}
		s.Visibility = a.Filter
		return s, nil, nil

	case FromStore:
		for _, t := range a.Todos {
			r.IDs.Observe(t.ID)
		}
		s.Todos = NewCollection(a.Todos...)
		return s, nil, nil

	case NewTodo:
		t := Todo{ID: r.IDs.Next(), Title: a.Title}
		s.Todos = s.Todos.Append(t)
		return s, []Command{Next{Action: ClearForm{}}}, nil

	case ToggleAll:
		done := !s.AllDone()
		s.Todos = s.Todos.Map(func(t Todo) Todo {
			t.Completed = done
			return t
		})
		return s, nil, nil

	case ClearCompleted:
		s.Todos = s.Todos.Filter(func(t Todo) bool { return !t.Completed })
		return s, nil, nil

	case ClearForm:
		return s, []Command{SetValue{Selector: ".new-todo", Value: ""}}, nil

	case ToStore:
		return s, []Command{Persist{Key: StoreKey, Records: s.Records()}}, nil

	case Item:
		t, ok := s.Todos.Get(a.ID)
		if !ok {
			return s, nil, nil
		}
		next, alive, cmds := ApplyItem(t, a.Op)
		if alive {
			s.Todos = s.Todos.Put(next)
		} else {
			s.Todos = s.Todos.Delete(a.ID)
		}
		return s, bind(a.ID, cmds), nil

	default:
		return s, nil, fmt.Errorf("unhandled action %T", a)
	}
}
