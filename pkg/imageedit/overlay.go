package imageedit

import (
	"context"
	"errors"
	"image"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

// Validate checks the overlay color and opacity.
func (o Overlay) Validate() error {
	err := validator.Apply(
		validator.HexColor("color", o.Color),
		validator.InRange("opacity", o.Opacity, 0, 100),
	)
	if err != nil {
		return errors.Join(ErrInvalidStyle, err)
	}
	return nil
}

// PreviewColorOverlay shows o over the working raster without committing
// it. It always starts from the working raster, so repeated previews do not
// stack.
func (s *Session) PreviewColorOverlay(ctx context.Context, o Overlay) error {
	if err := o.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventPreviewOverlay, func() error {
		s.overlay = o
		s.overlayActive = true
		return nil
	})
}

// CommitColorOverlay bakes the previewed overlay into the working raster.
func (s *Session) CommitColorOverlay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventCommitOverlay, func() error {
		s.working = s.composite(false)
		s.overlayActive = false
		return nil
	})
}

// RemoveColorOverlay drops the previewed overlay.
func (s *Session) RemoveColorOverlay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, EventRemoveOverlay, func() error {
		s.overlayActive = false
		return nil
	})
}

// composite returns a copy of the working raster with the active overlay
// and, when withCrop is set, the crop selection feedback.
func (s *Session) composite(withCrop bool) *image.RGBA {
	out := clone(s.working)
	if s.overlayActive {
		if c, err := colorful.Hex(s.overlay.Color); err == nil {
			dc := gg.NewContextForRGBA(out)
			dc.SetRGBA(c.R, c.G, c.B, float64(s.overlay.Opacity)/100)
			dc.DrawRectangle(0, 0, float64(out.Bounds().Dx()), float64(out.Bounds().Dy()))
			dc.Fill()
		}
	}
	if withCrop {
		if r, ok := s.crop.rect(); ok {
			drawSelection(out, r)
		}
	}
	return out
}
