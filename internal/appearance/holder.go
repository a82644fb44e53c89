package appearance

import (
	"sync"

	"go.uber.org/atomic"
)

// Holder stores the current mode. A zero Holder is usable and starts
// uninitialized; consumers must check Ready before trusting Mode.
//
// Reads are lock-free. Writes notify subscribers synchronously on the
// writer's goroutine, in registration order, before Set returns. Writes are
// serialized through fan-out, so the last notification a subscriber sees is
// the holder's current mode. Subscribers must not write to the holder.
type Holder struct {
	mode  atomic.String
	ready atomic.Bool

	// writeMu orders store plus fan-out; mu guards the subscriber list.
	writeMu sync.Mutex
	mu      sync.Mutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(Mode)
}

// NewHolder returns an uninitialized holder.
func NewHolder() *Holder {
	return &Holder{}
}

// NewHolderWith returns a holder already initialized to m.
func NewHolderWith(m Mode) *Holder {
	h := &Holder{}
	h.store(m)
	return h
}

// Mode returns the current mode and whether the holder has been initialized.
func (h *Holder) Mode() (Mode, bool) {
	if !h.ready.Load() {
		return "", false
	}
	return Mode(h.mode.Load()), true
}

// Ready reports whether a mode has been set.
func (h *Holder) Ready() bool {
	return h.ready.Load()
}

// Init sets the first mode without notifying subscribers. It is a no-op once
// the holder is ready and reports whether it took effect.
func (h *Holder) Init(m Mode) bool {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ready.Load() {
		return false
	}
	h.store(m)
	return true
}

// Set writes a mode and notifies every subscriber with it.
func (h *Holder) Set(m Mode) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.set(m)
}

func (h *Holder) set(m Mode) {
	h.mu.Lock()
	h.store(m)
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(m)
	}
}

// Subscribe registers fn to run on every Set. The returned func removes it.
func (h *Holder) Subscribe(fn func(Mode)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (h *Holder) store(m Mode) {
	h.mode.Store(string(m))
	h.ready.Store(true)
}

// Toggle inverts the holder's mode. Subscribers have re-resolved by the time
// it returns.
func Toggle(h *Holder) (Mode, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	current, ok := h.Mode()
	if !ok {
		return "", ErrNotReady
	}
	next := current.Invert()
	h.set(next)
	return next, nil
}
