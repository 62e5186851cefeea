// Package broadcast fans messages out to in-process subscribers.
//
// The editor publishes one message per preview mutation; every open preview
// stream subscribes and forwards messages to its browser. Slow subscribers
// lose messages instead of stalling the publisher.
package broadcast

import (
	"context"
	"sync"
)

// Hub delivers each published message to every live subscriber.
type Hub[T any] struct {
	mu     sync.RWMutex
	subs   map[*subscription[T]]struct{}
	buffer int
	closed bool
}

type subscription[T any] struct {
	ch   chan T
	once sync.Once
}

func (s *subscription[T]) close() {
	s.once.Do(func() { close(s.ch) })
}

// NewHub returns a hub whose subscribers buffer up to buffer messages (minimum 1).
func NewHub[T any](buffer int) *Hub[T] {
	return &Hub[T]{
		subs:   make(map[*subscription[T]]struct{}),
		buffer: max(buffer, 1),
	}
}

// Subscribe returns a channel of messages that is closed when ctx is done,
// the returned cancel func is called, or the hub is closed.
func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	sub := &subscription[T]{ch: make(chan T, h.buffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	stop := make(chan struct{})
	var stopOnce sync.Once
	cancel := func() {
		stopOnce.Do(func() {
			close(stop)
			h.remove(sub)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stop:
		}
	}()

	return sub.ch, cancel
}

// Publish sends msg to every subscriber with buffer space and returns how
// many received it.
func (h *Hub[T]) Publish(msg T) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.subs {
		select {
		case sub.ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of live subscriptions.
func (h *Hub[T]) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscription. Later subscriptions are born closed and
// later publishes are dropped.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		sub.close()
	}
	clear(h.subs)
}

func (h *Hub[T]) remove(sub *subscription[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		sub.close()
	}
}
