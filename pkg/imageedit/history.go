package imageedit

import "image"

// DefaultHistoryLimit is the number of overlay snapshots kept for undo.
const DefaultHistoryLimit = 20

// history is a bounded undo stack. The snapshot taken before the first
// overlay is pinned outside the stack, so clearing always restores it even
// after older entries were dropped.
type history struct {
	limit   int
	origin  *image.RGBA
	stack   []*image.RGBA
	dropped bool
}

func (h *history) push(snap *image.RGBA) {
	if h.origin == nil {
		h.origin = snap
	}
	h.stack = append(h.stack, snap)
	if h.limit > 0 && len(h.stack) > h.limit {
		h.stack[0] = nil
		h.stack = h.stack[1:]
		h.dropped = true
	}
}

func (h *history) pop() *image.RGBA {
	if len(h.stack) == 0 {
		return nil
	}
	last := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = nil
	h.stack = h.stack[:len(h.stack)-1]
	if len(h.stack) == 0 && !h.dropped {
		h.origin = nil
	}
	return last
}

// clear empties the history and returns the pinned origin.
func (h *history) clear() *image.RGBA {
	origin := h.origin
	h.origin = nil
	h.stack = nil
	h.dropped = false
	return origin
}

func (h *history) depth() int { return len(h.stack) }

func (h *history) empty() bool { return h.origin == nil }
