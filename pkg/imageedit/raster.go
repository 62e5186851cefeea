package imageedit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxWidth is the widest working raster; wider images are scaled down.
const DefaultMaxWidth = 800

// Decode reads a data URL or raw image bytes.
func Decode(data []byte) (image.Image, error) {
	if raw, ok, err := fromDataURL(data); ok {
		if err != nil {
			return nil, err
		}
		data = raw
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	return img, nil
}

func fromDataURL(data []byte) ([]byte, bool, error) {
	s := string(data)
	if !strings.HasPrefix(s, "data:") {
		return nil, false, nil
	}
	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return nil, true, fmt.Errorf("%w: malformed data URL", ErrUnsupportedImage)
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, true, fmt.Errorf("%w: data URL is not base64", ErrUnsupportedImage)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	return raw, true, nil
}

// fit converts src to RGBA, scaling it down to maxWidth with the aspect
// ratio kept.
func fit(src image.Image, maxWidth int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxWidth > 0 && w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func clone(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// sub copies r out of src into a raster anchored at the origin.
func sub(src *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

// EncodeDataURL encodes img as a PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
