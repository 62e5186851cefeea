package statemachine

import "context"

// Guard vetoes a transition by returning false.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) bool

// Action runs a side effect while a transition fires.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E) error

// Option configures a Machine at construction.
type Option[S, E comparable] func(*Machine[S, E])

// TransitionOption attaches guards and actions to one transition.
type TransitionOption[S, E comparable] func(*transition[S, E])

// WithTransition registers from --event--> to.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		m.add(from, to, event, opts)
	}
}

// WithTransitionFrom registers the same event and target for several source states.
func WithTransitionFrom[S, E comparable](froms []S, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		for _, from := range froms {
			m.add(from, to, event, opts)
		}
	}
}

// WithGuard adds a guard. Nil guards are ignored.
func WithGuard[S, E comparable](g Guard[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if g != nil {
			t.guards = append(t.guards, g)
		}
	}
}

// WithAction adds an action. Nil actions are ignored.
func WithAction[S, E comparable](a Action[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if a != nil {
			t.actions = append(t.actions, a)
		}
	}
}

// WithObserver registers a callback invoked after every successful transition.
func WithObserver[S, E comparable](fn func(from, to S, event E)) Option[S, E] {
	return func(m *Machine[S, E]) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}
