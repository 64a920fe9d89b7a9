package events

import "todomvc/internal/logging"

type DOMTracer struct{}

var DOM = DOMTracer{}

func (DOMTracer) Effect(kind, selector string, matched int) {
	logging.Trace("dom.effect", map[string]any{"type": kind, "selector": selector, "matched": matched})
}

func (DOMTracer) BadSelector(selector string, err error) {
	logging.Warn("dom selector %q: %v", selector, err)
}
