package editor_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/modules/editor"
	"github.com/dmitrymomot/emailcraft/pkg/imageedit"
	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

type stubProvider struct {
	name    string
	src     string
	err     error
	release chan struct{}
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(ctx context.Context, _ string, _ templateconfig.SlotType, _ string) (string, error) {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return p.src, p.err
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: 120, B: uint8(y * 4), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

func newEditor(t *testing.T, providers ...imagegen.Provider) *editor.Editor {
	t.Helper()
	opts := make([]imagegen.Option, 0, len(providers))
	for _, p := range providers {
		opts = append(opts, imagegen.WithProvider(p))
	}
	e, err := editor.NewEditor(editor.DefaultConfig(), imagegen.New(imagegen.DefaultConfig(), opts...))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func waitGeneration(t *testing.T, g *editor.Generation) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, g.Wait(ctx))
}

func TestEditor_SetFieldAndExport(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	v0 := e.Version()

	require.NoError(t, e.SetField("colors.primary", "#112233"))
	require.NoError(t, e.SetField("content.heroTitle", "ONE\nTWO"))
	assert.Greater(t, e.Version(), v0)

	out, err := e.ExportHTML()
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "#112233")
	assert.Contains(t, html, "ONE<br/>TWO")

	cfg := e.Config()
	assert.Equal(t, "#112233", cfg.Colors["primary"])

	t.Run("declaration-like text survives export", func(t *testing.T) {
		require.NoError(t, e.SetField("content.productName", "Use --primary-color: red here"))
		out, err := e.ExportHTML()
		require.NoError(t, err)
		assert.Contains(t, string(out), ">Use --primary-color: red here</h2>")
	})

	t.Run("invalid value is rejected", func(t *testing.T) {
		err := e.SetField("colors.primary", "red")
		require.Error(t, err)
		assert.Equal(t, "#112233", e.Config().Colors["primary"])
	})

	t.Run("unknown field", func(t *testing.T) {
		err := e.SetField("colors.nope", "#ffffff")
		assert.ErrorIs(t, err, templateconfig.ErrUnknownField)
	})
}

func TestEditor_ImageSlots(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	src := dataURL(testPNG(t, 4, 4))

	require.NoError(t, e.SetField("images.hero-image", src))
	got, ok := e.Image("hero-image")
	require.True(t, ok)
	assert.Equal(t, src, got)

	require.NoError(t, e.UploadImage("product-image", testPNG(t, 4, 4), "image/png"))
	got, ok = e.Image("product-image")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"))

	require.NoError(t, e.SetImage("hero-image", ""))
	_, ok = e.Image("hero-image")
	assert.False(t, ok)

	assert.ErrorIs(t, e.SetImage("banner", src), templateconfig.ErrUnknownField)
}

func TestEditor_Generate(t *testing.T) {
	t.Parallel()

	src := dataURL(testPNG(t, 2, 2))

	t.Run("applies the result", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t, &stubProvider{name: "stub", src: src})

		g, err := e.Generate(context.Background(), "hero-image", imagegen.Request{Provider: "stub", Prompt: "a watch"})
		require.NoError(t, err)
		waitGeneration(t, g)

		got, ok := e.Image("hero-image")
		require.True(t, ok)
		assert.Equal(t, src, got)

		st, ok := e.GenerationStatus("hero-image")
		require.True(t, ok)
		assert.Equal(t, editor.GenerationDone, st.State)
		assert.Equal(t, "stub", st.Provider)
	})

	t.Run("failure keeps the image", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		e := newEditor(t, &stubProvider{name: "broken", err: boom})
		require.NoError(t, e.SetImage("hero-image", src))

		g, err := e.Generate(context.Background(), "hero-image", imagegen.Request{Provider: "broken", Prompt: "a watch"})
		require.NoError(t, err)
		waitGeneration(t, g)

		got, _ := e.Image("hero-image")
		assert.Equal(t, src, got)
		st, ok := e.GenerationStatus("hero-image")
		require.True(t, ok)
		assert.Equal(t, editor.GenerationFailed, st.State)
		assert.ErrorIs(t, st.Err, boom)
	})

	t.Run("manual change wins over a pending result", func(t *testing.T) {
		t.Parallel()
		slow := &stubProvider{name: "slow", src: src, release: make(chan struct{})}
		e := newEditor(t, slow)

		g, err := e.Generate(context.Background(), "product-image", imagegen.Request{Provider: "slow", Prompt: "a watch"})
		require.NoError(t, err)

		manual := dataURL(testPNG(t, 3, 3))
		require.NoError(t, e.SetImage("product-image", manual))
		close(slow.release)
		waitGeneration(t, g)

		got, _ := e.Image("product-image")
		assert.Equal(t, manual, got)
		_, ok := e.GenerationStatus("product-image")
		assert.False(t, ok)
	})

	t.Run("newer generation wins", func(t *testing.T) {
		t.Parallel()
		slow := &stubProvider{name: "slow", src: dataURL(testPNG(t, 5, 5)), release: make(chan struct{})}
		fast := &stubProvider{name: "fast", src: src}
		e := newEditor(t, slow, fast)

		first, err := e.Generate(context.Background(), "feature-icon-1", imagegen.Request{Provider: "slow", Prompt: "icon"})
		require.NoError(t, err)
		second, err := e.Generate(context.Background(), "feature-icon-1", imagegen.Request{Provider: "fast", Prompt: "icon"})
		require.NoError(t, err)
		waitGeneration(t, second)

		close(slow.release)
		waitGeneration(t, first)

		got, _ := e.Image("feature-icon-1")
		assert.Equal(t, src, got)
	})

	t.Run("reset drops pending results", func(t *testing.T) {
		t.Parallel()
		slow := &stubProvider{name: "slow", src: src, release: make(chan struct{})}
		e := newEditor(t, slow)

		g, err := e.Generate(context.Background(), "hero-image", imagegen.Request{Provider: "slow", Prompt: "a watch"})
		require.NoError(t, err)
		e.Reset()
		close(slow.release)
		waitGeneration(t, g)

		_, ok := e.Image("hero-image")
		assert.False(t, ok)
	})

	t.Run("unknown slot", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		_, err := e.Generate(context.Background(), "banner", imagegen.Request{Prompt: "x"})
		assert.ErrorIs(t, err, editor.ErrUnknownSlot)
	})
}

func TestEditor_ImageEditor(t *testing.T) {
	t.Parallel()

	t.Run("empty slot", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		_, err := e.OpenImageEditor(context.Background(), "hero-image")
		assert.ErrorIs(t, err, editor.ErrEmptySlot)

		_, err = e.ImageEditor()
		assert.ErrorIs(t, err, editor.ErrNoEditSession)
	})

	t.Run("edit and save", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		require.NoError(t, e.UploadImage("hero-image", testPNG(t, 60, 40), "image/png"))
		before, _ := e.Image("hero-image")

		s, err := e.OpenImageEditor(context.Background(), "hero-image")
		require.NoError(t, err)
		assert.Equal(t, imageedit.StateLoaded, s.State())

		_, err = e.EditImage(func(s *imageedit.Session) error {
			ctx := context.Background()
			if err := s.StartCrop(ctx); err != nil {
				return err
			}
			if err := s.SetSelection(ctx, image.Rect(5, 5, 45, 35)); err != nil {
				return err
			}
			if err := s.ApplyCrop(ctx); err != nil {
				return err
			}
			style := imageedit.DefaultTextStyle()
			style.Position = imageedit.PositionBottom
			style.Size = 12
			if err := s.AddTextOverlay(ctx, "SALE", style); err != nil {
				return err
			}
			return s.PreviewColorOverlay(ctx, imageedit.Overlay{Color: "#ff0000", Opacity: 40})
		})
		require.NoError(t, err)

		require.NoError(t, e.SaveImage(context.Background()))
		after, ok := e.Image("hero-image")
		require.True(t, ok)
		assert.NotEqual(t, before, after)

		decoded, err := imageedit.Decode([]byte(after))
		require.NoError(t, err)
		assert.Equal(t, 40, decoded.Bounds().Dx())
		assert.Equal(t, 30, decoded.Bounds().Dy())

		_, err = e.ImageEditor()
		assert.ErrorIs(t, err, editor.ErrNoEditSession)
	})

	t.Run("crop then text changes the stored pixels", func(t *testing.T) {
		t.Parallel()
		save := func(text string) image.Image {
			e := newEditor(t)
			require.NoError(t, e.UploadImage("hero-image", testPNG(t, 60, 40), "image/png"))
			_, err := e.OpenImageEditor(context.Background(), "hero-image")
			require.NoError(t, err)
			_, err = e.EditImage(func(s *imageedit.Session) error {
				ctx := context.Background()
				if err := s.StartCrop(ctx); err != nil {
					return err
				}
				if err := s.SetSelection(ctx, image.Rect(5, 5, 45, 35)); err != nil {
					return err
				}
				if err := s.ApplyCrop(ctx); err != nil {
					return err
				}
				if text == "" {
					return nil
				}
				style := imageedit.DefaultTextStyle()
				style.Position = imageedit.PositionBottom
				style.Size = 12
				return s.AddTextOverlay(ctx, text, style)
			})
			require.NoError(t, err)
			require.NoError(t, e.SaveImage(context.Background()))
			stored, ok := e.Image("hero-image")
			require.True(t, ok)
			img, err := imageedit.Decode([]byte(stored))
			require.NoError(t, err)
			return img
		}

		cropped, withText := save(""), save("SALE")
		require.Equal(t, cropped.Bounds(), withText.Bounds())
		differs := false
		for y := cropped.Bounds().Min.Y; y < cropped.Bounds().Max.Y && !differs; y++ {
			for x := cropped.Bounds().Min.X; x < cropped.Bounds().Max.X; x++ {
				if cropped.At(x, y) != withText.At(x, y) {
					differs = true
					break
				}
			}
		}
		assert.True(t, differs, "text overlay is burned into the saved image")
	})

	t.Run("close discards edits", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		require.NoError(t, e.UploadImage("hero-image", testPNG(t, 20, 20), "image/png"))
		before, _ := e.Image("hero-image")

		_, err := e.OpenImageEditor(context.Background(), "hero-image")
		require.NoError(t, err)
		_, err = e.EditImage(func(s *imageedit.Session) error {
			return s.PreviewColorOverlay(context.Background(), imageedit.Overlay{Color: "#000000", Opacity: 50})
		})
		require.NoError(t, err)
		e.CloseImageEditor()

		after, _ := e.Image("hero-image")
		assert.Equal(t, before, after)
		assert.ErrorIs(t, e.SaveImage(context.Background()), editor.ErrNoEditSession)
	})
}

func TestEditor_ImportConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial import keeps defaults for invalid values", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		data := []byte(`{"colors":{"primary":"nope","secondary":"#abcdef"},"content":{"logoText":"ACME"}}`)

		err := e.ImportConfig(data, templateconfig.FormatJSON)
		require.ErrorIs(t, err, editor.ErrPartialImport)

		cfg := e.Config()
		assert.Equal(t, "#000000", cfg.Colors["primary"])
		assert.Equal(t, "#abcdef", cfg.Colors["secondary"])
		assert.Equal(t, "ACME", cfg.Content["logoText"])
	})

	t.Run("malformed input changes nothing", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		require.NoError(t, e.SetField("colors.text", "#123456"))
		v := e.Version()

		err := e.ImportConfig([]byte(`{"colors":`), templateconfig.FormatJSON)
		require.ErrorIs(t, err, templateconfig.ErrMalformedConfig)
		assert.Equal(t, "#123456", e.Config().Colors["text"])
		assert.Equal(t, v, e.Version())
	})

	t.Run("export round trip", func(t *testing.T) {
		t.Parallel()
		e := newEditor(t)
		require.NoError(t, e.SetField("fonts.heading", "Georgia, serif"))
		require.NoError(t, e.SetField("components.footer", "false"))

		data, err := e.ExportConfig(templateconfig.FormatYAML)
		require.NoError(t, err)

		other := newEditor(t)
		require.NoError(t, other.ImportConfig(data, templateconfig.FormatYAML))
		assert.True(t, templateconfig.Equal(e.Config(), other.Config()))
	})
}

func TestEditor_Subscribe(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, unsubscribe := e.Subscribe(ctx)
	defer unsubscribe()

	require.NoError(t, e.SetField("colors.background", "#fafafa"))

	select {
	case ch := <-changes:
		assert.Equal(t, editor.ChangePreview, ch.Kind)
		assert.Equal(t, e.Version(), ch.Version)
	case <-time.After(2 * time.Second):
		t.Fatal("no change published")
	}

	e.Reset()
	select {
	case ch := <-changes:
		assert.Equal(t, editor.ChangeConfig, ch.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no change published")
	}
	assert.True(t, templateconfig.Equal(templateconfig.Defaults(), e.Config()))
}
