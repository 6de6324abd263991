// Package events provides typed in-process topics used to decouple the sync
// engine from whatever presents its state.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-note-sync/internal/metrics"
)

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 64

// Topic is a broadcast channel for events of type T.
type Topic[T any] struct {
	name string

	mu sync.RWMutex
	// the flag is set when an event was dropped for that subscriber
	subscribers map[chan T]*atomic.Bool
}

// NewTopic creates a topic. name labels its metrics.
func NewTopic[T any](name string) *Topic[T] {
	return &Topic[T]{
		name:        name,
		subscribers: make(map[chan T]*atomic.Bool),
	}
}

// Name returns the topic name.
func (t *Topic[T]) Name() string {
	return t.name
}

// Subscribe adds a new subscriber and returns its event channel.
// The caller must call Unsubscribe when done.
func (t *Topic[T]) Subscribe() chan T {
	ch := make(chan T, subscriberBuffer)
	t.mu.Lock()
	t.subscribers[ch] = new(atomic.Bool)
	t.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown channels
// are ignored.
func (t *Topic[T]) Unsubscribe(ch chan T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.subscribers[ch]; !ok {
		return
	}
	delete(t.subscribers, ch)
	close(ch)
}

// Publish sends an event to all subscribers. Non-blocking: drops events
// for slow consumers and marks them as lagged.
func (t *Topic[T]) Publish(event T) {
	dropped := 0
	t.mu.RLock()
	for ch, lagged := range t.subscribers {
		select {
		case ch <- event:
		default:
			dropped++
			lagged.Store(true)
		}
	}
	t.mu.RUnlock()
	metrics.RecordEvent(t.name, dropped)
}

// Lagged reports whether an event was dropped for ch since the previous
// call, and clears the mark.
func (t *Topic[T]) Lagged(ch chan T) bool {
	t.mu.RLock()
	lagged, ok := t.subscribers[ch]
	t.mu.RUnlock()
	return ok && lagged.Swap(false)
}

// Count returns the current number of subscribers.
func (t *Topic[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subscribers)
}
