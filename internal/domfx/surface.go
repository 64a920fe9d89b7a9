package domfx

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
)

// Element is a mounted input field.
type Element struct {
	Key   string
	Path  []Node
	Input textinput.Model
}

// Surface holds the input fields currently on screen, in mount order.
type Surface struct {
	elems map[string]*Element
	order []string
}

func NewSurface() *Surface {
	return &Surface{elems: map[string]*Element{}}
}

// Mount places an input at path, written in selector syntax
// (".todo-list .todo.todo-5 .edit"). Mounting an existing key replaces its
// path and keeps its input state.
func (s *Surface) Mount(key, path string, in textinput.Model) (*Element, error) {
	p, err := ParseSelector(path)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", key, err)
	}
	if el, ok := s.elems[key]; ok {
		el.Path = p
		return el, nil
	}
	el := &Element{Key: key, Path: p, Input: in}
	s.elems[key] = el
	s.order = append(s.order, key)
	return el, nil
}

func (s *Surface) Unmount(key string) {
	if _, ok := s.elems[key]; !ok {
		return
	}
	delete(s.elems, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Surface) Element(key string) (*Element, bool) {
	el, ok := s.elems[key]
	return el, ok
}

// Query returns the elements matching selector in mount order.
func (s *Surface) Query(selector string) ([]*Element, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for _, k := range s.order {
		el := s.elems[k]
		if sel.Match(el.Path) {
			out = append(out, el)
		}
	}
	return out, nil
}

// Focused returns the element holding input focus, if any.
func (s *Surface) Focused() (*Element, bool) {
	for _, k := range s.order {
		if el := s.elems[k]; el.Input.Focused() {
			return el, true
		}
	}
	return nil, false
}

// BlurAll removes focus from every element.
func (s *Surface) BlurAll() {
	for _, el := range s.elems {
		el.Input.Blur()
	}
}

// Keys returns the mounted keys in mount order.
func (s *Surface) Keys() []string {
	return append([]string(nil), s.order...)
}

func (s *Surface) Len() int {
	return len(s.order)
}
