package events

import "todomvc/internal/logging"

type ActionTracer struct{}

var Action = ActionTracer{}

// Applied records a committed transition.
func (ActionTracer) Applied(name string, total, remaining int) {
	logging.Trace("action.applied", map[string]any{
		"action":    name,
		"total":     total,
		"remaining": remaining,
	})
}

func (ActionTracer) Error(err error) {
	logging.Error(err)
	logging.Trace("action.error", map[string]any{"error": err.Error()})
}
