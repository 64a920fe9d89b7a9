// Package domfx applies imperative input-field effects (set value, focus)
// requested by application logic to the fields on a Surface.
package domfx

import (
	tea "github.com/charmbracelet/bubbletea"

	"todomvc/internal/logging/events"
)

type EffectType string

const (
	SetValue EffectType = "SET_VALUE"
	Focus    EffectType = "FOCUS"
)

type Effect struct {
	Type EffectType `json:"type"`
	Data Data       `json:"data"`
}

type Data struct {
	Selector string `json:"selector"`
	Value    string `json:"value,omitempty"`
}

// ChangeMsg notifies that an element's value was set by an effect.
type ChangeMsg struct {
	Key   string
	Value string
}

type Driver struct {
	surface *Surface
}

func NewDriver(s *Surface) *Driver {
	return &Driver{surface: s}
}

// Apply runs fx against the surface. It returns a change notification per
// element whose value was set and the command produced by focusing, if any.
// Selectors that match nothing, or do not parse, do nothing.
func (d *Driver) Apply(fx Effect) ([]ChangeMsg, tea.Cmd) {
	matches, err := d.surface.Query(fx.Data.Selector)
	if err != nil {
		events.DOM.BadSelector(fx.Data.Selector, err)
		return nil, nil
	}
	events.DOM.Effect(string(fx.Type), fx.Data.Selector, len(matches))

	switch fx.Type {
	case SetValue:
		changes := make([]ChangeMsg, 0, len(matches))
		for _, el := range matches {
			el.Input.SetValue(fx.Data.Value)
			el.Input.CursorEnd()
			changes = append(changes, ChangeMsg{Key: el.Key, Value: fx.Data.Value})
		}
		return changes, nil
	case Focus:
		if len(matches) == 0 {
			return nil, nil
		}
		d.surface.BlurAll()
		return nil, matches[0].Input.Focus()
	default:
		return nil, nil
	}
}

// Notify turns change notifications into messages for the program.
func Notify(changes []ChangeMsg) tea.Cmd {
	if len(changes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(changes))
	for _, c := range changes {
		c := c
		cmds = append(cmds, func() tea.Msg { return c })
	}
	return tea.Batch(cmds...)
}
