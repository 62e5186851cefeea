package imageedit

import (
	"context"
	"image"
	"math"

	"github.com/fogleman/gg"
)

// MinCropSize is the smallest crop edge in pixels.
const MinCropSize = 10

// Selection feedback drawn while cropping.
const (
	selectionShade  = 0.5
	selectionColor  = "#667eea"
	selectionWidth  = 3
	selectionHandle = 10
)

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScalePoint maps p from a canvas displayed at displayW x displayH to the
// canvas' own pixel grid of canvasW x canvasH.
func ScalePoint(p Point, displayW, displayH float64, canvasW, canvasH int) Point {
	if displayW <= 0 || displayH <= 0 {
		return p
	}
	return Point{
		X: p.X * float64(canvasW) / displayW,
		Y: p.Y * float64(canvasH) / displayH,
	}
}

type crop struct {
	start, end Point
	dragging   bool
	active     bool
}

// rect returns the selection in canvas pixels, unclamped.
func (c crop) rect() (image.Rectangle, bool) {
	if !c.active {
		return image.Rectangle{}, false
	}
	x0 := int(math.Round(math.Min(c.start.X, c.end.X)))
	y0 := int(math.Round(math.Min(c.start.Y, c.end.Y)))
	x1 := int(math.Round(math.Max(c.start.X, c.end.X)))
	y1 := int(math.Round(math.Max(c.start.Y, c.end.Y)))
	return image.Rect(x0, y0, x1, y1), true
}

// StartCrop enters crop mode with no selection.
func (s *Session) StartCrop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventStartCrop, func() error {
		s.crop = crop{}
		return nil
	})
}

// DragStart begins a selection at p.
func (s *Session) DragStart(ctx context.Context, p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventSelect, func() error {
		s.crop = crop{start: p, end: p, dragging: true}
		return nil
	})
}

// DragMove extends the selection being dragged to p. Moves without a
// preceding DragStart are ignored.
func (s *Session) DragMove(ctx context.Context, p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventSelect, func() error {
		if s.crop.dragging {
			s.crop.end = p
			s.crop.active = true
		}
		return nil
	})
}

// DragEnd finishes the selection at p.
func (s *Session) DragEnd(ctx context.Context, p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventSelect, func() error {
		if s.crop.dragging {
			s.crop.end = p
			s.crop.active = s.crop.start != p
			s.crop.dragging = false
		}
		return nil
	})
}

// SetSelection replaces the selection with r.
func (s *Session) SetSelection(ctx context.Context, r image.Rectangle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventSelect, func() error {
		r = r.Canon()
		s.crop = crop{
			start:  Point{X: float64(r.Min.X), Y: float64(r.Min.Y)},
			end:    Point{X: float64(r.Max.X), Y: float64(r.Max.Y)},
			active: !r.Empty(),
		}
		return nil
	})
}

// ApplyCrop cuts the selection out of the working raster. The selection is
// taken from the committed pixels, never from the feedback frame or the
// overlay preview.
func (s *Session) ApplyCrop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventApplyCrop, func() error {
		r, ok := s.crop.rect()
		if !ok {
			return ErrNoSelection
		}
		r = r.Intersect(s.working.Bounds())
		if r.Dx() < MinCropSize || r.Dy() < MinCropSize {
			return ErrCropTooSmall
		}
		s.working = sub(s.working, r)
		// Snapshots no longer match the raster size.
		s.history.clear()
		s.crop = crop{}
		return nil
	})
}

// CancelCrop leaves crop mode and discards the selection.
func (s *Session) CancelCrop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventCancelCrop, func() error {
		s.crop = crop{}
		return nil
	})
}

func drawSelection(dst *image.RGBA, r image.Rectangle) {
	w, h := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	x, y := float64(r.Min.X), float64(r.Min.Y)
	sw, sh := float64(r.Dx()), float64(r.Dy())

	dc := gg.NewContextForRGBA(dst)
	dc.SetRGBA(0, 0, 0, selectionShade)
	dc.DrawRectangle(0, 0, w, y)
	dc.DrawRectangle(0, y+sh, w, h-(y+sh))
	dc.DrawRectangle(0, y, x, sh)
	dc.DrawRectangle(x+sw, y, w-(x+sw), sh)
	dc.Fill()

	dc.SetHexColor(selectionColor)
	dc.SetLineWidth(selectionWidth)
	dc.SetDash(8, 4)
	dc.DrawRectangle(x, y, sw, sh)
	dc.Stroke()
	dc.SetDash()

	half := float64(selectionHandle) / 2
	for _, c := range [][2]float64{{x, y}, {x + sw, y}, {x, y + sh}, {x + sw, y + sh}} {
		dc.DrawRectangle(c[0]-half, c[1]-half, selectionHandle, selectionHandle)
	}
	dc.Fill()
}
