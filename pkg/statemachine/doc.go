// Package statemachine is a small typed finite-state machine.
//
// States and events are any comparable types, usually string-based enums.
// Several transitions may share a (from, event) pair; the first one whose
// guards all pass wins, which is how a single event branches to different
// targets depending on runtime conditions:
//
//	m := statemachine.New(Idle,
//		statemachine.WithTransition(Loaded, Previewing, Commit, statemachine.WithGuard(overlayActive)),
//		statemachine.WithTransition(Loaded, Loaded, Commit),
//	)
//	if err := m.Fire(ctx, Commit); err != nil { ... }
//
// Actions run after guards pass and before the state changes. An action
// error aborts the transition and leaves the state untouched.
package statemachine
