package todo

// Collection is an ordered set of todos keyed by id. Order is insertion
// order. A Collection is a value: operations that change it return a new
// Collection and leave the receiver untouched.
type Collection struct {
	order []int64
	items map[int64]Todo
}

func NewCollection(todos ...Todo) Collection {
	c := Collection{
		order: make([]int64, 0, len(todos)),
		items: make(map[int64]Todo, len(todos)),
	}
	for _, t := range todos {
		if _, ok := c.items[t.ID]; ok {
			continue
		}
		c.order = append(c.order, t.ID)
		c.items[t.ID] = t
	}
	return c
}

func (c Collection) Len() int {
	return len(c.order)
}

func (c Collection) Get(id int64) (Todo, bool) {
	t, ok := c.items[id]
	return t, ok
}

// Items returns the todos in order.
func (c Collection) Items() []Todo {
	out := make([]Todo, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// IDs returns the ids in order.
func (c Collection) IDs() []int64 {
	return append([]int64(nil), c.order...)
}

// Append adds t at the end. An id already present is replaced in place.
func (c Collection) Append(t Todo) Collection {
	if _, ok := c.items[t.ID]; ok {
		return c.Put(t)
	}
	next := c.clone()
	next.order = append(next.order, t.ID)
	next.items[t.ID] = t
	return next
}

// Put replaces the todo with t.ID, keeping its position. Unknown ids are
// ignored.
func (c Collection) Put(t Todo) Collection {
	if _, ok := c.items[t.ID]; !ok {
		return c
	}
	next := c.clone()
	next.items[t.ID] = t
	return next
}

// Delete removes id from both the index and the order.
func (c Collection) Delete(id int64) Collection {
	if _, ok := c.items[id]; !ok {
		return c
	}
	next := Collection{
		order: make([]int64, 0, len(c.order)-1),
		items: make(map[int64]Todo, len(c.items)-1),
	}
	for _, oid := range c.order {
		if oid == id {
			continue
		}
		next.order = append(next.order, oid)
		next.items[oid] = c.items[oid]
	}
	return next
}

// Filter keeps the todos for which keep returns true.
func (c Collection) Filter(keep func(Todo) bool) Collection {
	next := Collection{
		order: make([]int64, 0, len(c.order)),
		items: make(map[int64]Todo, len(c.items)),
	}
	for _, id := range c.order {
		t := c.items[id]
		if !keep(t) {
			continue
		}
		next.order = append(next.order, id)
		next.items[id] = t
	}
	return next
}

// Map applies fn to every todo. fn must not change the id.
func (c Collection) Map(fn func(Todo) Todo) Collection {
	next := c.clone()
	for _, id := range c.order {
		t := fn(c.items[id])
		t.ID = id
		next.items[id] = t
	}
	return next
}

func (c Collection) Every(pred func(Todo) bool) bool {
	for _, id := range c.order {
		if !pred(c.items[id]) {
			return false
		}
	}
	return true
}

func (c Collection) Count(pred func(Todo) bool) int {
	n := 0
	for _, id := range c.order {
		if pred(c.items[id]) {
			n++
		}
	}
	return n
}

// Equal compares order and contents.
func (c Collection) Equal(o Collection) bool {
	if len(c.order) != len(o.order) {
		return false
	}
	for i, id := range c.order {
		if o.order[i] != id || c.items[id] != o.items[id] {
			return false
		}
	}
	return true
}

func (c Collection) clone() Collection {
	next := Collection{
		order: append(make([]int64, 0, len(c.order)+1), c.order...),
		items: make(map[int64]Todo, len(c.items)+1),
	}
	for id, t := range c.items {
		next.items[id] = t
	}
	return next
}
