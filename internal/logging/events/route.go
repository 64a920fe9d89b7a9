package events

import "todomvc/internal/logging"

type RouteTracer struct{}

var Route = RouteTracer{}

func (RouteTracer) Watch(name string) {
	logging.Trace("route.watch", map[string]any{"route": name})
}

func (RouteTracer) Navigate(hash string, emitted bool) {
	logging.Trace("route.navigate", map[string]any{"hash": hash, "emitted": emitted})
}
