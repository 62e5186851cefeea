// Package imageedit implements the raster editing session behind the
// template image editor.
//
// A Session holds one image for one template slot. It keeps the scaled
// original (the base), the last committed pixels (the working raster) and
// a bounded history of snapshots taken before each text overlay. Every
// operation is an event on a statemachine.Machine, so calling an operation
// from the wrong state returns a *statemachine.NoTransitionError and leaves
// the session untouched:
//
//	Idle --load--> Loaded
//	Loaded --crop--> Cropping --apply/cancel--> Loaded | OverlayPreviewing
//	Loaded --text--> TextEditing --done--> Loaded
//	Loaded --overlay--> OverlayPreviewing --commit/remove--> Loaded
//	any loaded state --save--> Saved
//
// Usage:
//
//	s := imageedit.New("hero-image")
//	if err := s.Load(ctx, dataURL); err != nil { ... }
//	_ = s.AddTextOverlay(ctx, "SALE", imageedit.DefaultTextStyle())
//	out, err := s.Save(ctx)
//
// Sessions are safe for concurrent use. Rendering uses fogleman/gg and
// TrueType faces from the Go font family.
package imageedit
