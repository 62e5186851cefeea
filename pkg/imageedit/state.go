package imageedit

import (
	"context"

	"github.com/dmitrymomot/emailcraft/pkg/statemachine"
)

// State is the lifecycle state of a Session.
type State string

const (
	StateIdle              State = "idle"
	StateLoaded            State = "loaded"
	StateCropping          State = "cropping"
	StateTextEditing       State = "text_editing"
	StateOverlayPreviewing State = "overlay_previewing"
	StateSaved             State = "saved"
)

// Event is an operation on a Session.
type Event string

const (
	EventLoad           Event = "load"
	EventStartCrop      Event = "start_crop"
	EventSelect         Event = "select"
	EventApplyCrop      Event = "apply_crop"
	EventCancelCrop     Event = "cancel_crop"
	EventStartText      Event = "start_text"
	EventAddText        Event = "add_text"
	EventUndoText       Event = "undo_text"
	EventClearText      Event = "clear_text"
	EventFinishText     Event = "finish_text"
	EventPreviewOverlay Event = "preview_overlay"
	EventCommitOverlay  Event = "commit_overlay"
	EventRemoveOverlay  Event = "remove_overlay"
	EventReset          Event = "reset"
	EventSave           Event = "save"
)

// editing lists the states in which the image can be changed.
var editing = []State{StateLoaded, StateTextEditing, StateOverlayPreviewing}

func (s *Session) newMachine() *statemachine.Machine[State, Event] {
	overlay := func(context.Context, State, Event) bool { return s.overlayActive }
	plain := func(context.Context, State, Event) bool { return !s.overlayActive }

	opts := []statemachine.Option[State, Event]{
		statemachine.WithTransitionFrom([]State{StateIdle, StateLoaded}, StateLoaded, EventLoad),

		// Starting a crop closes the text tool; leaving crop returns to Loaded.
		statemachine.WithTransitionFrom(editing, StateCropping, EventStartCrop),
		statemachine.WithTransition(StateCropping, StateCropping, EventSelect),
		statemachine.WithTransition(StateCropping, StateOverlayPreviewing, EventApplyCrop, statemachine.WithGuard(overlay)),
		statemachine.WithTransition(StateCropping, StateLoaded, EventApplyCrop, statemachine.WithGuard(plain)),
		statemachine.WithTransition(StateCropping, StateOverlayPreviewing, EventCancelCrop, statemachine.WithGuard(overlay)),
		statemachine.WithTransition(StateCropping, StateLoaded, EventCancelCrop, statemachine.WithGuard(plain)),

		statemachine.WithTransition(StateLoaded, StateTextEditing, EventStartText),
		statemachine.WithTransition(StateTextEditing, StateLoaded, EventFinishText),

		statemachine.WithTransitionFrom(editing, StateOverlayPreviewing, EventPreviewOverlay),
		statemachine.WithTransition(StateOverlayPreviewing, StateLoaded, EventCommitOverlay),
		statemachine.WithTransition(StateOverlayPreviewing, StateLoaded, EventRemoveOverlay),

		statemachine.WithTransitionFrom([]State{StateLoaded, StateCropping, StateTextEditing, StateOverlayPreviewing}, StateLoaded, EventReset),
		statemachine.WithTransitionFrom([]State{StateLoaded, StateCropping, StateTextEditing, StateOverlayPreviewing}, StateSaved, EventSave),
	}
	// Text operations keep the current state.
	for _, st := range editing {
		for _, ev := range []Event{EventAddText, EventUndoText, EventClearText} {
			opts = append(opts, statemachine.WithTransition(st, st, ev))
		}
	}
	if s.log != nil {
		opts = append(opts, statemachine.WithObserver(s.observe))
	}
	return statemachine.New(StateIdle, opts...)
}
