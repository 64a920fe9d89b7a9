package todo

// State is the root application state.
type State struct {
	Visibility Filter
	Todos      Collection
}

func InitialState() State {
	return State{Visibility: FilterAll, Todos: NewCollection()}
}

func (s State) Total() int {
	return s.Todos.Len()
}

func (s State) Remaining() int {
	return s.Todos.Count(func(t Todo) bool { return !t.Completed })
}

func (s State) CompletedCount() int {
	return s.Todos.Count(func(t Todo) bool { return t.Completed })
}

// AllDone reports whether every todo is completed. It is true for an
// empty list.
func (s State) AllDone() bool {
	return s.Todos.Every(func(t Todo) bool { return t.Completed })
}

// Visible returns the todos passing the visibility filter, in order.
func (s State) Visible() []Todo {
	return s.Todos.Filter(s.Visibility.Match).Items()
}

// Records returns the persisted form of the list.
func (s State) Records() []Record {
	items := s.Todos.Items()
	out := make([]Record, 0, len(items))
	for _, t := range items {
		out = append(out, t.Record())
	}
	return out
}

func (s State) Equal(o State) bool {
	return s.Visibility == o.Visibility && s.Todos.Equal(o.Todos)
}
