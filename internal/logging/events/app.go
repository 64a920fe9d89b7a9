package events

import "todomvc/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]any) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Message(msg string) {
	logging.Trace("app.message", map[string]any{"message": msg})
}

func (AppTracer) Quit() {
	logging.Trace("app.quit", nil)
}
