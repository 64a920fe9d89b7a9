package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todomvc/internal/config"
	"todomvc/internal/domfx"
	"todomvc/internal/logging"
	"todomvc/internal/router"
	"todomvc/internal/storage"
	"todomvc/internal/todo"
)

func testModel(t *testing.T, route string, stored []todo.Record) (Model, *storage.Driver) {
	t.Helper()
	m, store := newTestModel(t, route, stored)
	execCmd(t, &m, m.Init())
	return m, store
}

// newTestModel builds a sized model without running Init.
func newTestModel(t *testing.T, route string, stored []todo.Record) (Model, *storage.Driver) {
	t.Helper()
	var logs bytes.Buffer
	logging.SetOutput(&logs)
	t.Cleanup(func() { logging.SetOutput(nil) })

	store := storage.NewDriver(storage.NewMemory())
	t.Cleanup(func() { store.Close(context.Background()) })
	if stored != nil {
		store.Put(todo.StoreKey, stored)
	}

	loop := todo.NewLoop(todo.NewReducer(&todo.SequenceIDs{Start: 1}), todo.InitialState())
	m := New(loop, store, router.New(route), config.Default(t.TempDir()))
	m2, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m2.(Model), store
}

// execCmd runs cmd synchronously and feeds the application's own messages
// back into the model. Cursor blinks and other widget housekeeping are
// dropped so the run terminates.
func execCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			execCmd(t, m, sub)
		}
		return
	}
	switch msg.(type) {
	case dispatchMsg, domfx.ChangeMsg:
	default:
		return
	}
	m2, next := m.Update(msg)
	*m = m2.(Model)
	execCmd(t, m, next)
}

func press(t *testing.T, m *Model, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		m2, cmd := m.Update(k)
		*m = m2.(Model)
		execCmd(t, m, cmd)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func newTodoValue(m Model) string {
	el, _ := m.surface.Element(newTodoKey)
	return el.Input.Value()
}

func TestStartupWatchesRoutesAndLogs(t *testing.T) {
	m, _ := testModel(t, "#/active", nil)
	if m.loop.State().Visibility != todo.FilterActive {
		t.Fatalf("expected startup route to select active, got %q", m.loop.State().Visibility)
	}
	for _, f := range todo.Filters() {
		if !m.router.Watching(string(f)) {
			t.Fatalf("route %q not watched", f)
		}
	}
	if m.status != "Starting application..." {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.mode() != modeAdd {
		t.Fatalf("new-todo field should start focused")
	}
}

func TestStartupLoadsStoredTodos(t *testing.T) {
	m, _ := testModel(t, "#/all", []todo.Record{
		{ID: 7, Title: "water plants"},
		{ID: 9, Title: "file taxes", Completed: true},
	})
	s := m.loop.State()
	if s.Total() != 2 || s.Remaining() != 1 {
		t.Fatalf("unexpected loaded state total=%d remaining=%d", s.Total(), s.Remaining())
	}
	view := m.View()
	if !strings.Contains(view, "water plants") || !strings.Contains(view, "1 item left") {
		t.Fatalf("view missing loaded todos:\n%s", view)
	}
}

func TestAddToggleAndPersist(t *testing.T) {
	m, store := testModel(t, "#/all", nil)

	press(t, &m, runes("Buy milk"), enter)
	s := m.loop.State()
	if s.Total() != 1 || s.Visible()[0].Title != "Buy milk" {
		t.Fatalf("expected one todo, got %+v", s.Visible())
	}
	if got := newTodoValue(m); got != "" {
		t.Fatalf("new-todo field should be cleared, got %q", got)
	}

	press(t, &m, esc, space)
	if !m.loop.State().Visible()[0].Completed {
		t.Fatalf("space should toggle the selected todo")
	}
	view := m.View()
	if !strings.Contains(view, "0 items left") || !strings.Contains(view, "Clear completed") {
		t.Fatalf("unexpected footer:\n%s", view)
	}

	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	records := storage.Load(store, todo.StoreKey, []todo.Record(nil))
	if len(records) != 1 || records[0].Title != "Buy milk" || !records[0].Completed {
		t.Fatalf("unexpected stored records %+v", records)
	}
}

func TestBlankTitleIsIgnored(t *testing.T) {
	m, _ := testModel(t, "#/all", nil)
	press(t, &m, runes("   "), enter)
	if m.loop.State().Total() != 0 {
		t.Fatalf("blank title should not create a todo")
	}
	if strings.Contains(m.View(), "items left") {
		t.Fatalf("footer should be hidden for an empty list")
	}
}

func TestEditSaveAndCancel(t *testing.T) {
	m, _ := testModel(t, "#/all", nil)
	press(t, &m, runes("Buy milk"), enter, esc)

	press(t, &m, runes("e"))
	if !m.loop.State().Visible()[0].Editing {
		t.Fatalf("expected editing after e")
	}
	el, ok := m.surface.Element(editKey(1))
	if !ok || !el.Input.Focused() || el.Input.Value() != "Buy milk" {
		t.Fatalf("edit field should hold the title and be focused, got %+v", el)
	}

	press(t, &m, runes(" now"), enter)
	got := m.loop.State().Visible()[0]
	if got.Editing || got.Title != "Buy milk now" {
		t.Fatalf("unexpected todo after save %+v", got)
	}

	press(t, &m, runes("e"), runes("!!!"), esc)
	got = m.loop.State().Visible()[0]
	if got.Editing || got.Title != "Buy milk now" {
		t.Fatalf("cancel should restore the title, got %+v", got)
	}
	if el.Input.Value() != "Buy milk now" {
		t.Fatalf("cancel should reset the edit field, got %q", el.Input.Value())
	}
}

func TestRoutesFilterList(t *testing.T) {
	m, _ := testModel(t, "#/all", nil)
	press(t, &m, runes("one"), enter, runes("two"), enter, esc, space)

	press(t, &m, runes("2"))
	if m.loop.State().Visibility != todo.FilterActive || len(m.loop.State().Visible()) != 1 {
		t.Fatalf("expected active filter with one todo, got %+v", m.loop.State())
	}
	if m.router.Location() != "#/active" {
		t.Fatalf("unexpected location %q", m.router.Location())
	}

	press(t, &m, runes("l"))
	if m.loop.State().Visibility != todo.FilterCompleted {
		t.Fatalf("l should move to completed, got %q", m.loop.State().Visibility)
	}
	press(t, &m, runes("c"))
	if m.loop.State().Total() != 1 || len(m.loop.State().Visible()) != 0 {
		t.Fatalf("clear completed should leave only the active todo")
	}

	press(t, &m, runes("1"), runes("a"))
	if !m.loop.State().AllDone() {
		t.Fatalf("toggle all should complete every todo")
	}
}

func TestDestroyClampsCursor(t *testing.T) {
	m, _ := testModel(t, "#/all", nil)
	press(t, &m, runes("one"), enter, runes("two"), enter, esc, runes("j"), runes("d"))
	s := m.loop.State()
	if s.Total() != 1 || s.Visible()[0].Title != "one" {
		t.Fatalf("unexpected todos %+v", s.Visible())
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to the remaining row, got %d", m.cursor)
	}
	if _, ok := m.surface.Element(editKey(2)); ok {
		t.Fatalf("edit field of destroyed todo should be unmounted")
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct{ cur, n, want int }{
		{-1, 3, 0}, {5, 3, 2}, {1, 3, 1}, {2, 0, 0},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cur, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cur, tt.n, got, tt.want)
		}
	}
}

func TestLateEditFocusKeepsNewTodoField(t *testing.T) {
	m, _ := testModel(t, "#/all", []todo.Record{{ID: 1, Title: "a"}})
	press(t, &m, esc)

	// start and finish an edit before the deferred focus arrives
	m2, _ := m.Update(runes("e"))
	m = m2.(Model)
	press(t, &m, enter, runes("n"))
	if m.mode() != modeAdd {
		t.Fatalf("n should focus the new-todo field, mode=%d", m.mode())
	}

	stale := todo.Item{ID: 1, Op: todo.FocusEditField{Selector: ".todo-1 .edit"}}
	execCmd(t, &m, dispatch(stale))
	if m.mode() != modeAdd {
		t.Fatalf("late focus should not take the new-todo field, mode=%d", m.mode())
	}
	press(t, &m, runes("d"))
	if m.loop.State().Total() != 1 || newTodoValue(m) != "d" {
		t.Fatalf("typed d should land in the field, total=%d value=%q", m.loop.State().Total(), newTodoValue(m))
	}
}

func TestInputBeforeInitKeepsStoredTodos(t *testing.T) {
	m, store := newTestModel(t, "#/all", []todo.Record{{ID: 7, Title: "stored"}})
	if m.loop.State().Total() != 1 {
		t.Fatalf("stored list should be loaded by New, total=%d", m.loop.State().Total())
	}

	press(t, &m, runes("typed early"), enter)
	execCmd(t, &m, m.Init())
	if m.loop.State().Total() != 2 {
		t.Fatalf("expected stored and new todo, got %+v", m.loop.State().Visible())
	}

	records := storage.Load(store, todo.StoreKey, []todo.Record(nil))
	if len(records) != 2 || records[0].Title != "stored" || records[1].Title != "typed early" {
		t.Fatalf("unexpected stored records %+v", records)
	}
}
