package ecs

// Commands buffers lifecycle operations requested during a frame. The
// Manager applies them once the post-update pass is over, so systems can
// retire entities without touching working sets that later systems of the
// same frame still rely on.
type Commands struct {
	retires    []Entity
	subscribes []Entity
	defers     []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Retire queues a Manager.RetireEntity call.
func (c *Commands) Retire(e Entity) {
	c.retires = append(c.retires, e)
}

// Subscribe queues a Manager.SubscribeEntity call, for entities whose
// components changed during the frame.
func (c *Commands) Subscribe(e Entity) {
	c.subscribes = append(c.subscribes, e)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.retires) + len(c.subscribes) + len(c.defers)
}

// Flush applies all queued operations to m and resets the buffer. Retired
// entities are not resubscribed. Operations queued while flushing are kept
// for the next flush.
func (c *Commands) Flush(m *Manager) {
	retires, subscribes, defers := c.retires, c.subscribes, c.defers
	c.retires, c.subscribes, c.defers = nil, nil, nil

	retired := make(map[Entity]bool, len(retires))
	for _, e := range retires {
		if m.RetireEntity(e) != nil {
			retired[e] = true
		}
	}

	for _, e := range subscribes {
		if !retired[e] {
			m.SubscribeEntity(e)
		}
	}

	for _, df := range defers {
		df.fn()
	}
}
