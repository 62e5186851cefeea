package imageedit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dmitrymomot/emailcraft/pkg/cache"
)

const faceCacheSize = 32

type variant struct {
	mono   bool
	bold   bool
	italic bool
}

type faceKey struct {
	variant
	size float64
}

var ttfs = map[variant][]byte{
	{}:                                     goregular.TTF,
	{bold: true}:                           gobold.TTF,
	{italic: true}:                         goitalic.TTF,
	{bold: true, italic: true}:             gobolditalic.TTF,
	{mono: true}:                           gomono.TTF,
	{mono: true, bold: true}:               gomonobold.TTF,
	{mono: true, italic: true}:             gomonoitalic.TTF,
	{mono: true, bold: true, italic: true}: gomonobolditalic.TTF,
}

var parsed = sync.OnceValues(func() (map[variant]*truetype.Font, error) {
	out := make(map[variant]*truetype.Font, len(ttfs))
	for v, data := range ttfs {
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse go font: %w", err)
		}
		out[v] = f
	}
	return out, nil
})

// FontBank resolves CSS-like font settings to faces of the Go font family.
// Monospace families map to Go Mono, everything else to Go proportional.
// Faces are cached; a bank must not be used for drawing concurrently.
type FontBank struct {
	faces *cache.LRU[faceKey, font.Face]
}

// NewFontBank returns a bank with an empty face cache.
func NewFontBank() *FontBank {
	faces := cache.NewLRU[faceKey, font.Face](faceCacheSize)
	faces.OnEvict(func(_ faceKey, f font.Face) { _ = f.Close() })
	return &FontBank{faces: faces}
}

// Face returns the face for a text style at the given pixel size.
func (b *FontBank) Face(family, weight, style string, size float64) (font.Face, error) {
	key := faceKey{
		variant: variant{mono: isMono(family), bold: isBold(weight), italic: isItalic(style)},
		size:    size,
	}
	return b.faces.GetOrCreate(key, func() (font.Face, error) {
		fonts, err := parsed()
		if err != nil {
			return nil, err
		}
		return truetype.NewFace(fonts[key.variant], &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
	})
}

func isMono(family string) bool {
	f := strings.ToLower(family)
	return strings.Contains(f, "mono") || strings.Contains(f, "courier") || strings.Contains(f, "consolas")
}

func isBold(weight string) bool {
	switch w := strings.ToLower(strings.TrimSpace(weight)); w {
	case "bold", "bolder":
		return true
	default:
		n, err := strconv.Atoi(w)
		return err == nil && n >= 600
	}
}

func isItalic(style string) bool {
	s := strings.ToLower(strings.TrimSpace(style))
	return s == "italic" || s == "oblique"
}
