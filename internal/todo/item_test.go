package todo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggleFlipsCompleted(t *testing.T) {
	td := Todo{ID: 1, Title: "a"}
	td, alive, _ := ApplyItem(td, Toggle{})
	if !alive || !td.Completed {
		t.Fatalf("expected completed, got %+v", td)
	}
	td, _, _ = ApplyItem(td, Toggle{})
	if td.Completed {
		t.Fatalf("expected incomplete after second toggle")
	}
}

func TestDestroyReturnsAbsent(t *testing.T) {
	if _, alive, _ := ApplyItem(Todo{ID: 1}, Destroy{}); alive {
		t.Fatalf("expected destroyed todo to be absent")
	}
}

func TestEditStartCachesTitleAndFocusesLater(t *testing.T) {
	td := Todo{ID: 5, Title: "walk dog"}
	td, _, cmds := ApplyItem(td, EditStart{})
	if !td.Editing || td.CachedTitle != "walk dog" {
		t.Fatalf("unexpected state %+v", td)
	}
	want := []Command{
		Next{Action: Item{ID: 5, Op: SetEditValue{Selector: ".todo-5 .edit", Value: "walk dog"}}},
		Next{Action: Item{ID: 5, Op: FocusEditField{Selector: ".todo-5 .edit"}}, Delay: FocusDelay},
	}
	if diff := cmp.Diff(want, bind(5, cmds)); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestEditDoneOnlyWhileEditing(t *testing.T) {
	td := Todo{ID: 1, Title: "a"}
	got, _, _ := ApplyItem(td, EditDone{Title: "b"})
	if got != td {
		t.Fatalf("EditDone outside edit mode must be a no-op, got %+v", got)
	}

	td, _, _ = ApplyItem(td, EditStart{})
	td, _, _ = ApplyItem(td, EditDone{Title: "b"})
	want := Todo{ID: 1, Title: "b"}
	if td != want {
		t.Fatalf("expected %+v, got %+v", want, td)
	}
}

func TestEditCancelRestoresTitle(t *testing.T) {
	r := NewReducer(nil)
	s := seeded(Todo{ID: 3, Title: "original"})
	s, _ = apply(t, r, s, Item{ID: 3, Op: EditStart{}})
	// uncommitted keystrokes only reach the edit field, never the state
	s, _ = apply(t, r, s, Item{ID: 3, Op: SetEditValue{Selector: ".todo-3 .edit", Value: "typo"}})
	s, cmds := apply(t, r, s, Item{ID: 3, Op: EditCancel{}})

	got, _ := s.Todos.Get(3)
	if want := (Todo{ID: 3, Title: "original"}); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	want := []Command{Next{Action: Item{ID: 3, Op: SetEditValue{Selector: ".todo-3 .edit", Value: "original"}}}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestEditCancelOutsideEditIsNoop(t *testing.T) {
	td := Todo{ID: 1, Title: "keep"}
	got, _, cmds := ApplyItem(td, EditCancel{})
	if got != td || len(cmds) != 0 {
		t.Fatalf("expected no-op, got %+v %v", got, cmds)
	}
}

func TestEffectOpsBecomeCommands(t *testing.T) {
	_, _, cmds := ApplyItem(Todo{ID: 1}, SetEditValue{Selector: ".x", Value: "v"})
	if diff := cmp.Diff([]Command{SetValue{Selector: ".x", Value: "v"}}, cmds); diff != "" {
		t.Fatalf("SetEditValue mismatch (-want +got):\n%s", diff)
	}
	_, _, cmds = ApplyItem(Todo{ID: 1, Editing: true}, FocusEditField{Selector: ".x"})
	if diff := cmp.Diff([]Command{Focus{Selector: ".x"}}, cmds); diff != "" {
		t.Fatalf("FocusEditField mismatch (-want +got):\n%s", diff)
	}
}

func TestFocusAfterEditEndedIsDropped(t *testing.T) {
	r := NewReducer(&SequenceIDs{Start: 1})
	s := seeded(Todo{ID: 4, Title: "a"})
	s, cmds := apply(t, r, s, Item{ID: 4, Op: EditStart{}})
	focus := cmds[1].(Next)
	s, _ = apply(t, r, s, Item{ID: 4, Op: EditDone{Title: "a"}})

	_, cmds = apply(t, r, s, focus.Action)
	if len(cmds) != 0 {
		t.Fatalf("focus for a finished edit should do nothing, got %v", cmds)
	}
}

func TestInputSelector(t *testing.T) {
	if got := (Todo{ID: 1700000000123}).InputSelector(); got != ".todo-1700000000123 .edit" {
		t.Fatalf("unexpected selector %q", got)
	}
}
