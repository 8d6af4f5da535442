// Package watch provides the in-process observer hub behind the console's
// live list streams. A subscription registers a callback that fires once
// immediately (initial snapshot) and again after every mutation; the
// subscriber re-reads the full current result set on each fire. Cancelling
// unregisters the callback.
package watch

import "sync"

// Hub fans a change signal out to registered subscribers. One hub per
// watched collection.
type Hub struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func())}
}

// Subscribe registers fn and invokes it once synchronously so the subscriber
// starts from the current state. The returned cancel func unregisters fn;
// calling it more than once is harmless.
func (h *Hub) Subscribe(fn func()) (cancel func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	fn()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Notify invokes every registered callback. Callbacks run outside the lock
// so a subscriber may cancel itself or another subscription from within.
func (h *Hub) Notify() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len reports the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
