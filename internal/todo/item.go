package todo

import "time"

// FocusDelay gives a freshly opened edit field time to render before it
// is focused.
const FocusDelay = 100 * time.Millisecond

// ApplyItem runs op against t. The returned bool is false when the todo has
// been destroyed and must be removed from its collection. Follow-up actions
// in the returned commands carry bare item operations; the caller
// addresses them back to t.
func ApplyItem(t Todo, op ItemOp) (Todo, bool, []Command) {
	switch op := op.(type) {
	case Toggle:
		t.Completed = !t.Completed
		return t, true, nil

	case Destroy:
		return Todo{}, false, nil

	case EditStart:
		sel := t.InputSelector()
		cmds := []Command{
			itemNext{Op: SetEditValue{Selector: sel, Value: t.Title}},
			itemNext{Op: FocusEditField{Selector: sel}, Delay: FocusDelay},
		}
		t.Editing = true
		t.CachedTitle = t.Title
		return t, true, cmds

	case EditDone:
		if !t.Editing {
			return t, true, nil
		}
		t.Title = op.Title
		t.Editing = false
		t.CachedTitle = ""
		return t, true, nil

	case EditCancel:
		if !t.Editing {
			return t, true, nil
		}
		cmds := []Command{
			itemNext{Op: SetEditValue{Selector: t.InputSelector(), Value: t.CachedTitle}},
		}
		t.Title = t.CachedTitle
		t.Editing = false
		t.CachedTitle = ""
		return t, true, cmds

	case SetEditValue:
		return t, true, []Command{SetValue{Selector: op.Selector, Value: op.Value}}

	case FocusEditField:
		// the focus arrives late; the field is gone once editing ended
		if !t.Editing {
			return t, true, nil
		}
		return t, true, []Command{Focus{Selector: op.Selector}}

	default:
		return t, true, nil
	}
}

// itemNext is a follow-up emitted by ApplyItem before it is bound to an id.
type itemNext struct {
	Op    ItemOp
	Delay time.Duration
}

func (itemNext) isCommand() {}

// bind rewrites item follow-ups into root Next commands addressed to id.
func bind(id int64, cmds []Command) []Command {
	for i, c := range cmds {
		if n, ok := c.(itemNext); ok {
			cmds[i] = Next{Action: Item{ID: id, Op: n.Op}, Delay: n.Delay}
		}
	}
	return cmds
}
