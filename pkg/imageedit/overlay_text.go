package imageedit

import (
	"context"
	"strings"
)

// StartText opens the text tool.
func (s *Session) StartText(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventStartText, nil)
}

// FinishText closes the text tool.
func (s *Session) FinishText(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventFinishText, nil)
}

// AddTextOverlay draws text onto the working raster and records the
// previous pixels for undo. An active color overlay preview stays active
// on top of the new text.
func (s *Session) AddTextOverlay(ctx context.Context, text string, style TextStyle) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if err := style.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventAddText, func() error {
		next := clone(s.working)
		y := style.baseline(next.Bounds().Dy())
		if err := drawText(next, s.fonts, text, style, style.Size, y, style.strokeWidth()/2); err != nil {
			return err
		}
		s.history.push(s.working)
		s.working = next
		return nil
	})
}

// UndoTextOverlay removes the most recent text overlay. It does nothing
// when there is nothing to undo.
func (s *Session) UndoTextOverlay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventUndoText, func() error {
		if prev := s.history.pop(); prev != nil {
			s.working = prev
		}
		return nil
	})
}

// ClearAllTextOverlays restores the pixels from before the first text
// overlay. It needs confirmation unless there is nothing to clear.
func (s *Session) ClearAllTextOverlays(ctx context.Context, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventClearText, func() error {
		if s.history.empty() {
			return nil
		}
		if !confirmed {
			return ErrConfirmationRequired
		}
		s.working = s.history.clear()
		return nil
	})
}

// CanUndo reports whether UndoTextOverlay would remove an overlay.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.depth() > 0
}

// CanClear reports whether ClearAllTextOverlays would change the image. It
// stays true after undo has used up a history that dropped old entries,
// because the pixels from before the first overlay are still pinned.
func (s *Session) CanClear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.history.empty()
}
