package domfx

import (
	"fmt"
	"strings"
)

// Node is the class list of one element.
type Node []string

func (n Node) has(class string) bool {
	for _, c := range n {
		if c == class {
			return true
		}
	}
	return false
}

// Selector is a chain of compound class selectors joined by the
// descendant combinator, e.g. ".todo-5 .edit".
type Selector []Node

// ParseSelector reads a selector. Only class selectors are supported.
func ParseSelector(s string) (Selector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	sel := make(Selector, 0, len(fields))
	for _, f := range fields {
		if !strings.HasPrefix(f, ".") {
			return nil, fmt.Errorf("unsupported selector %q", f)
		}
		classes := strings.Split(f[1:], ".")
		for _, c := range classes {
			if c == "" {
				return nil, fmt.Errorf("empty class in %q", f)
			}
		}
		sel = append(sel, Node(classes))
	}
	return sel, nil
}

// Match reports whether an element at path is selected. The last compound
// must match the element itself; the rest match ancestors in order.
func (s Selector) Match(path []Node) bool {
	if len(s) == 0 || len(path) == 0 {
		return false
	}
	if !compoundMatches(s[len(s)-1], path[len(path)-1]) {
		return false
	}
	i := len(s) - 2
	for j := len(path) - 2; i >= 0 && j >= 0; j-- {
		if compoundMatches(s[i], path[j]) {
			i--
		}
	}
	return i < 0
}

func compoundMatches(want, node Node) bool {
	for _, c := range want {
		if !node.has(c) {
			return false
		}
	}
	return true
}

// String renders the selector back in source form.
func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = "." + strings.Join(n, ".")
	}
	return strings.Join(parts, " ")
}
