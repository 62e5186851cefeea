package statemachine

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

type transition[S, E comparable] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is safe for concurrent use. Guards and actions run under the
// machine lock and must not call back into it.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E][]transition[S, E]
	observers   []func(from, to S, event E)
}

// New returns a machine in the initial state.
func New[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine[S, E]) add(from, to S, event E, opts []TransitionOption[S, E]) {
	t := transition[S, E]{to: to}
	for _, opt := range opts {
		opt(&t)
	}
	if m.transitions[from] == nil {
		m.transitions[from] = make(map[E][]transition[S, E])
	}
	m.transitions[from][event] = append(m.transitions[from][event], t)
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the current state is one of states.
func (m *Machine[S, E]) Is(states ...S) bool {
	return slices.Contains(states, m.Current())
}

// Fire moves the machine along the first transition for event whose guards pass.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	m.mu.Lock()
	from := m.current
	t, err := m.pick(ctx, event)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for _, action := range t.actions {
		if err := action(ctx, from, t.to, event); err != nil {
			m.mu.Unlock()
			return err
		}
	}
	m.current = t.to
	observers := m.observers
	m.mu.Unlock()

	for _, fn := range observers {
		fn(from, t.to, event)
	}
	return nil
}

// CanFire reports whether Fire would find a transition for event.
// Actions are not run, so Fire may still fail.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.pick(ctx, event)
	return err == nil
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

// Must be called with the lock held.
func (m *Machine[S, E]) pick(ctx context.Context, event E) (transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return transition[S, E]{}, &NoTransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}
	for _, t := range candidates {
		if m.allow(ctx, t, event) {
			return t, nil
		}
	}
	return transition[S, E]{}, &RejectedError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
}

func (m *Machine[S, E]) allow(ctx context.Context, t transition[S, E], event E) bool {
	for _, g := range t.guards {
		if !g(ctx, m.current, event) {
			return false
		}
	}
	return true
}
