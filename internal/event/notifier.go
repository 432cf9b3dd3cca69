package event

// Notifier is a minimal change-listener list for document sub-components.
// It is not safe for concurrent use; the document is single-threaded.
type Notifier struct {
	nextID    int
	listeners []listener
}

type listener struct {
	id int
	fn func()
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (n *Notifier) Subscribe(fn func()) func() {
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every listener registered at the time of the call.
func (n *Notifier) Notify() {
	if len(n.listeners) == 0 {
		return
	}
	snapshot := make([]listener, len(n.listeners))
	copy(snapshot, n.listeners)
	for _, l := range snapshot {
		l.fn()
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int { return len(n.listeners) }
