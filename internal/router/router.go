// Package router tracks the location hash (#/<name>) and reports changes
// to watched route names.
package router

import (
	"strings"

	"todomvc/internal/logging/events"
)

// Parse returns the route name of a hash fragment. "#/active", "/active"
// and "active" all name the route "active".
func Parse(hash string) string {
	hash = strings.TrimSpace(hash)
	hash = strings.TrimPrefix(hash, "#")
	return strings.TrimPrefix(hash, "/")
}

// Hash renders a route name as a hash fragment.
func Hash(name string) string {
	return "#/" + name
}

// Router emits a route name whenever the location moves to a watched
// route. Moves to names that are not watched are recorded but not
// emitted.
type Router struct {
	current string
	watched map[string]struct{}
}

func New(initial string) *Router {
	return &Router{current: Parse(initial), watched: map[string]struct{}{}}
}

// Watch registers name. If the location already points at it, the route is
// emitted so the startup location reaches the application once its routes
// are known.
func (r *Router) Watch(name string) (string, bool) {
	if _, ok := r.watched[name]; ok {
		return "", false
	}
	r.watched[name] = struct{}{}
	events.Route.Watch(name)
	if name != "" && name == r.current {
		return name, true
	}
	return "", false
}

// Navigate moves the location to hash. It emits the route name when the
// location changed and the name is watched.
func (r *Router) Navigate(hash string) (string, bool) {
	name := Parse(hash)
	if name == r.current {
		events.Route.Navigate(hash, false)
		return "", false
	}
	r.current = name
	_, ok := r.watched[name]
	events.Route.Navigate(hash, ok)
	if !ok {
		return "", false
	}
	return name, true
}

// Current returns the route name of the location.
func (r *Router) Current() string {
	return r.current
}

// Location returns the location as a hash fragment.
func (r *Router) Location() string {
	if r.current == "" {
		return ""
	}
	return Hash(r.current)
}

func (r *Router) Watching(name string) bool {
	_, ok := r.watched[name]
	return ok
}
