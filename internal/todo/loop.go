package todo

import "errors"

// Loop owns the application state for the lifetime of the process and runs
// actions through the Reducer one at a time.
type Loop struct {
	state   State
	reducer Reducer
	queue   []Action
	// Trace, when set, is called after every applied action.
	Trace func(a Action, before, after State)
}

func NewLoop(r Reducer, initial State) *Loop {
	return &Loop{state: initial, reducer: r}
}

func (l *Loop) State() State {
	return l.state
}

// Dispatch applies a and every undelayed follow-up it causes, in FIFO
// order. A follow-up runs only after the action that emitted it has
// finished. Effects and delayed follow-ups are returned in emission order
// for the caller to execute. Handler errors leave the state untouched for
// that action and are joined into the returned error.
func (l *Loop) Dispatch(a Action) ([]Command, error) {
	l.queue = append(l.queue, a)
	var out []Command
	var errs []error
	for len(l.queue) > 0 {
		next := l.queue[0]
		l.queue = l.queue[1:]

		before := l.state
		after, cmds, err := l.reducer.Apply(before, next)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l.state = after
		if l.Trace != nil {
			l.Trace(next, before, after)
		}
		for _, c := range cmds {
			if n, ok := c.(Next); ok && n.Delay <= 0 {
				l.queue = append(l.queue, n.Action)
				continue
			}
			out = append(out, c)
		}
		if persists(next) && !sameRecords(before.Records(), after.Records()) && !l.storeQueued() {
			l.queue = append(l.queue, ToStore{})
		}
	}
	return out, errors.Join(errs...)
}

func (l *Loop) storeQueued() bool {
	for _, a := range l.queue {
		if _, ok := a.(ToStore); ok {
			return true
		}
	}
	return false
}

// sameRecords compares the persisted form only; edit-mode fields are
// never stored.
func sameRecords(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// persists reports whether a change caused by a should be written back.
// The list read at startup is already what storage holds.
func persists(a Action) bool {
	switch a.(type) {
	case FromStore, ToStore:
		return false
	}
	return true
}
