package todo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoopRunsFollowUpsAfterCurrentAction(t *testing.T) {
	l := NewLoop(NewReducer(&SequenceIDs{Start: 10}), InitialState())
	var order []string
	l.Trace = func(a Action, _, _ State) { order = append(order, a.Name()) }

	cmds, err := l.Dispatch(NewTodo{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if diff := cmp.Diff([]string{"NEW_TODO", "CLEAR_FORM", "TO_STORE"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	want := []Command{
		SetValue{Selector: ".new-todo"},
		Persist{Key: StoreKey, Records: []Record{{ID: 10, Title: "Buy milk"}}},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopReturnsDelayedFollowUps(t *testing.T) {
	l := NewLoop(NewReducer(nil), seeded(Todo{ID: 2, Title: "x"}))
	cmds, err := l.Dispatch(Item{ID: 2, Op: EditStart{}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := []Command{
		Next{Action: Item{ID: 2, Op: FocusEditField{Selector: ".todo-2 .edit"}}, Delay: 100 * time.Millisecond},
		SetValue{Selector: ".todo-2 .edit", Value: "x"},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}

	delayed := cmds[0].(Next)
	cmds, err = l.Dispatch(delayed.Action)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if diff := cmp.Diff([]Command{Focus{Selector: ".todo-2 .edit"}}, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopPersistsOnlyStoredFieldChanges(t *testing.T) {
	l := NewLoop(NewReducer(nil), seeded(Todo{ID: 3, Title: "x"}))
	persisted := func(cmds []Command) bool {
		for _, c := range cmds {
			if _, ok := c.(Persist); ok {
				return true
			}
		}
		return false
	}

	cmds, _ := l.Dispatch(Item{ID: 3, Op: EditStart{}})
	if persisted(cmds) {
		t.Fatalf("entering edit mode should not write, got %v", cmds)
	}
	cmds, _ = l.Dispatch(Item{ID: 3, Op: EditDone{Title: "x"}})
	if persisted(cmds) {
		t.Fatalf("saving an unchanged title should not write, got %v", cmds)
	}
	l.Dispatch(Item{ID: 3, Op: EditStart{}})
	cmds, _ = l.Dispatch(Item{ID: 3, Op: EditDone{Title: "y"}})
	want := []Command{Persist{Key: StoreKey, Records: []Record{{ID: 3, Title: "y"}}}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopDoesNotPersistStartupLoadOrVisibility(t *testing.T) {
	l := NewLoop(NewReducer(nil), InitialState())
	cmds, err := l.Dispatch(FromStore{Todos: []Todo{{ID: 1, Title: "a"}}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(cmds) != 0 {
		t.Fatalf("expected no commands after FromStore, got %v", cmds)
	}
	cmds, _ = l.Dispatch(SetVisibility{Filter: FilterActive})
	if len(cmds) != 0 {
		t.Fatalf("expected no commands after visibility change, got %v", cmds)
	}
	if l.State().Visibility != FilterActive {
		t.Fatalf("expected active visibility, got %s", l.State().Visibility)
	}
}

func TestLoopKeepsStateOnHandlerError(t *testing.T) {
	l := NewLoop(NewReducer(nil), InitialState())
	if _, err := l.Dispatch(SetVisibility{Filter: "nope"}); err == nil {
		t.Fatalf("expected error")
	}
	if l.State().Visibility != FilterAll {
		t.Fatalf("state changed on error: %s", l.State().Visibility)
	}
}

func TestBootstrapThroughLoop(t *testing.T) {
	l := NewLoop(NewReducer(nil), InitialState())
	cmds, err := l.Dispatch(Bootstrap{})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := []Command{
		Log{Message: "Starting application..."},
		WatchRoute{Filter: FilterAll},
		WatchRoute{Filter: FilterActive},
		WatchRoute{Filter: FilterCompleted},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}
