package todo

import (
	"fmt"
	"strings"
)

// Todo is a single task. Editing and CachedTitle only live while the
// item is on screen and are never persisted.
type Todo struct {
	ID          int64
	Title       string
	Completed   bool
	Editing     bool
	CachedTitle string
}

// InputSelector addresses the edit field rendered for this todo.
func (t Todo) InputSelector() string {
	return fmt.Sprintf(".todo-%d .edit", t.ID)
}

// Record is the persisted shape of a Todo.
type Record struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (t Todo) Record() Record {
	return Record{ID: t.ID, Title: t.Title, Completed: t.Completed}
}

// FromRecords rebuilds todos from persisted records. Records sharing an id
// with an earlier record are dropped so the collection stays keyed.
func FromRecords(records []Record) []Todo {
	seen := make(map[int64]struct{}, len(records))
	todos := make([]Todo, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		todos = append(todos, Todo{ID: r.ID, Title: r.Title, Completed: r.Completed})
	}
	return todos
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the visibility filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

func ParseFilter(s string) (Filter, bool) {
	for _, f := range Filters() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Match reports whether t is shown under f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Label is the capitalised name used for filter links.
func (f Filter) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}
