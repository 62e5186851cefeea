package imageedit

import (
	"errors"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

// Text anchors.
const (
	PositionTop    = "top"
	PositionCenter = "center"
	PositionBottom = "bottom"
)

// Outline settings.
const (
	StrokeNone  = "none"
	StrokeBlack = "black"
	StrokeWhite = "white"
)

// PreviewPlaceholder is shown by RenderTextPreview for blank text.
const PreviewPlaceholder = "Your text here"

// TextStyle describes one text overlay.
type TextStyle struct {
	Family   string  `json:"family"`
	Size     float64 `json:"size"`
	Weight   string  `json:"weight"`
	Style    string  `json:"style"`
	Color    string  `json:"color"`
	Stroke   string  `json:"stroke"`
	Position string  `json:"position"`
}

// DefaultTextStyle returns the editor's initial overlay style.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		Family:   "Arial, sans-serif",
		Size:     48,
		Weight:   "bold",
		Style:    "normal",
		Color:    "#ffffff",
		Stroke:   StrokeBlack,
		Position: PositionCenter,
	}
}

// Validate checks the style fields.
func (s TextStyle) Validate() error {
	err := validator.Apply(
		validator.InRange("size", s.Size, 8, 200),
		validator.HexColor("color", s.Color),
		validator.OneOf("stroke", s.Stroke, StrokeNone, StrokeBlack, StrokeWhite),
		validator.OneOf("position", s.Position, PositionTop, PositionCenter, PositionBottom),
	)
	if err != nil {
		return errors.Join(ErrInvalidStyle, err)
	}
	return nil
}

// strokeWidth mirrors a canvas outline of max(2, size/20) pixels.
func (s TextStyle) strokeWidth() float64 {
	return math.Max(2, s.Size/20)
}

// baseline returns the y of the text baseline on a raster of height h.
func (s TextStyle) baseline(h int) float64 {
	switch s.Position {
	case PositionTop:
		return s.Size + 20
	case PositionBottom:
		return float64(h) - 20
	default:
		return float64(h) / 2
	}
}

// drawText paints text horizontally centered with its baseline at y. The
// outline, if the style has one, extends outline pixels around the glyphs.
func drawText(dst *image.RGBA, bank *FontBank, text string, style TextStyle, size, y, outline float64) error {
	face, err := bank.Face(style.Family, style.Weight, style.Style, size)
	if err != nil {
		return err
	}
	fill, err := colorful.Hex(style.Color)
	if err != nil {
		return errors.Join(ErrInvalidStyle, err)
	}

	dc := gg.NewContextForRGBA(dst)
	dc.SetFontFace(face)
	x := float64(dst.Bounds().Dx()) / 2

	if style.Stroke == StrokeBlack || style.Stroke == StrokeWhite {
		if style.Stroke == StrokeBlack {
			dc.SetRGB(0, 0, 0)
		} else {
			dc.SetRGB(1, 1, 1)
		}
		for i := range 16 {
			a := float64(i) * math.Pi / 8
			dc.DrawStringAnchored(text, x+outline*math.Cos(a), y+outline*math.Sin(a), 0.5, 0)
		}
	}

	dc.SetRGB(fill.R, fill.G, fill.B)
	dc.DrawStringAnchored(text, x, y, 0.5, 0)
	return nil
}

// RenderTextPreview draws text on a transparent swatch at a reduced size of
// min(size/2, 32) and returns it as a PNG data URL. Blank text renders
// PreviewPlaceholder.
func RenderTextPreview(bank *FontBank, text string, style TextStyle) (string, error) {
	if err := style.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		text = PreviewPlaceholder
	}
	size := math.Min(style.Size/2, 32)
	w := 360
	h := int(math.Ceil(size*2)) + 16

	face, err := bank.Face(style.Family, style.Weight, style.Style, size)
	if err != nil {
		return "", err
	}
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	if tw, _ := measure.MeasureString(text); int(tw)+32 > w {
		w = int(tw) + 32
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := drawText(dst, bank, text, style, size, float64(h)/2+size/3, 1); err != nil {
		return "", err
	}
	return EncodeDataURL(dst)
}
