// Package events fans out chain activity to any number of listeners, such
// as websocket clients watching blocks being mined.
package events

import (
	"fmt"
	"sync"
)

// messageBuffer is the number of events a slow listener can fall behind by
// before events are dropped for it.
const messageBuffer = 100

// Events maintains the set of listener channels keyed by a unique id.
type Events struct {
	mu        sync.RWMutex
	listeners map[string]chan string
	closed    bool
}

// New constructs an Events value ready to register listeners.
func New() *Events {
	return &Events{
		listeners: make(map[string]chan string),
	}
}

// Shutdown closes and removes every listener channel. Acquire returns a
// closed channel once Shutdown has been called.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.listeners {
		delete(evt.listeners, id)
		close(ch)
	}
	evt.closed = true
}

// Acquire registers a listener under the id and returns the channel its
// events arrive on. Acquiring an existing id returns the same channel.
func (evt *Events) Acquire(id string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.listeners[id]; exists {
		return ch
	}

	ch := make(chan string, messageBuffer)
	if evt.closed {
		close(ch)
		return ch
	}

	evt.listeners[id] = ch
	return ch
}

// Release closes and removes the listener registered under the id.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.listeners[id]
	if !exists {
		return fmt.Errorf("listener %q does not exist", id)
	}

	delete(evt.listeners, id)
	close(ch)
	return nil
}

// Send delivers the message to every listener. Send never blocks; a
// listener with a full buffer misses the message.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.listeners {
		select {
		case ch <- s:
		default:
		}
	}
}

// Len returns the number of registered listeners.
func (evt *Events) Len() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.listeners)
}
