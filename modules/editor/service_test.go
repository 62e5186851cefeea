package editor_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/modules/editor"
	"github.com/dmitrymomot/emailcraft/pkg/email"
	"github.com/dmitrymomot/emailcraft/pkg/file"
	"github.com/dmitrymomot/emailcraft/pkg/imageedit"
	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (m *recordingMailer) SendEmail(_ context.Context, p email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, p)
	return nil
}

func newServer(t *testing.T, opts ...editor.ServiceOption) (*editor.Editor, http.Handler) {
	t.Helper()
	e := newEditor(t)
	return e, editor.NewService(e, opts...).Handle()
}

func datastarPost(t *testing.T, h http.Handler, target string, signals map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func multipartPost(t *testing.T, h http.Handler, target, field, filename string, data []byte, datastar bool) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if datastar {
		req.Header.Set("Datastar-Request", "true")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestService_Page(t *testing.T) {
	t.Parallel()

	_, h := newServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="preview-frame"`)
	assert.Contains(t, body, `id="primary-color"`)
	assert.Contains(t, body, `id="slot-hero-image"`)
	assert.Contains(t, body, "Helvetica Neue")

	assert.Contains(t, body, `id="preview-size-label"`)
	assert.Contains(t, body, "Desktop View")
	assert.Contains(t, body, `class="preview-wrapper" style="max-width: 100%"`)
	for _, size := range editor.PreviewSizes {
		assert.Contains(t, body, `data-width="`+size.Width+`"`)
		assert.Contains(t, body, ">"+size.Label+"</button>")
	}
	assert.Contains(t, body, "&#34;previewWidth&#34;:&#34;100%&#34;")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview?v=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GANANCE")
}

func TestService_SetField(t *testing.T) {
	t.Parallel()

	e, h := newServer(t)

	rec := datastarPost(t, h, "/fields?path=colors.primary", map[string]any{"value": "#112233", "genPrompt": "ignored"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, rec.Body.String(), "preview-frame")
	assert.Equal(t, "#112233", e.Config().Colors["primary"])

	t.Run("invalid value shows a toast", func(t *testing.T) {
		rec := datastarPost(t, h, "/fields?path=colors.primary", map[string]any{"value": "blue"})
		assert.Contains(t, rec.Body.String(), "toast")
		assert.Equal(t, "#112233", e.Config().Colors["primary"])
	})

	t.Run("plain form post", func(t *testing.T) {
		form := url.Values{"value": {"#abcdef"}}
		req := httptest.NewRequest(http.MethodPost, "/fields?path=colors.text", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "#abcdef", e.Config().Colors["text"])
	})

	t.Run("unknown field renders the error page", func(t *testing.T) {
		form := url.Values{"value": {"x"}}
		req := httptest.NewRequest(http.MethodPost, "/fields?path=colors.nope", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unknown field.")
	})
}

func TestService_Images(t *testing.T) {
	t.Parallel()

	e, h := newServer(t)

	rec := multipartPost(t, h, "/images/hero-image/upload", "file", "hero.png", testPNG(t, 80, 60), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "slot-hero-image")
	src, ok := e.Image("hero-image")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(src, "data:image/png;base64,"))

	rec = multipartPost(t, h, "/images/hero-image/upload", "file", "notes.txt", []byte("hello"), false)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = multipartPost(t, h, "/images/banner/upload", "file", "hero.png", testPNG(t, 4, 4), false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = datastarPost(t, h, "/images/hero-image/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, ok = e.Image("hero-image")
	assert.False(t, ok)
}

func TestService_ImageEditor(t *testing.T) {
	t.Parallel()

	e, h := newServer(t)

	rec := datastarPost(t, h, "/image-editor/open?slot=hero-image", nil)
	assert.Contains(t, rec.Body.String(), "Please upload or generate an image first before editing.")

	require.NoError(t, e.UploadImage("hero-image", testPNG(t, 100, 80), "image/png"))
	before, _ := e.Image("hero-image")

	rec = datastarPost(t, h, "/image-editor/open?slot=hero-image", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "image-editor-canvas")

	rec = datastarPost(t, h, "/image-editor/crop/apply", nil)
	assert.Contains(t, rec.Body.String(), "toast")

	datastarPost(t, h, "/image-editor/crop/start", nil)
	rec = datastarPost(t, h, "/image-editor/crop/apply", nil)
	assert.Contains(t, rec.Body.String(), "Please select an area to crop first.")

	// The canvas is shown at half size.
	for _, q := range []string{
		"phase=start&x=5&y=5&w=50&h=40",
		"phase=move&x=30&y=20&w=50&h=40",
		"phase=end&x=45&y=35&w=50&h=40",
	} {
		rec = datastarPost(t, h, "/image-editor/crop/drag?"+q, nil)
		require.Equal(t, http.StatusOK, rec.Code, q)
	}
	rec = datastarPost(t, h, "/image-editor/crop/apply", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `width="80" height="60"`)

	rec = datastarPost(t, h, "/image-editor/overlay/preview", map[string]any{
		"overlay": map[string]any{"color": "#336699", "opacity": 25},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "overlay-actions")

	// Nothing to clear after a crop.
	rec = datastarPost(t, h, "/image-editor/text/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "toast")

	rec = datastarPost(t, h, "/image-editor/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image updated successfully!")

	after, _ := e.Image("hero-image")
	assert.NotEqual(t, before, after)
	_, err := e.ImageEditor()
	assert.ErrorIs(t, err, editor.ErrNoEditSession)
}

func TestService_TextOverlay(t *testing.T) {
	t.Parallel()

	e, h := newServer(t)
	require.NoError(t, e.UploadImage("product-image", testPNG(t, 120, 90), "image/png"))
	datastarPost(t, h, "/image-editor/open?slot=product-image", nil)

	rec := datastarPost(t, h, "/image-editor/text/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "overlayText")

	style := map[string]any{
		"family": "Arial, sans-serif", "size": 24, "weight": "bold", "style": "normal",
		"color": "#ffffff", "stroke": "black", "position": "bottom",
	}
	rec = datastarPost(t, h, "/image-editor/text/preview", map[string]any{"overlayText": "", "textStyle": style})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")

	rec = datastarPost(t, h, "/image-editor/text", map[string]any{"overlayText": "  ", "textStyle": style})
	assert.Contains(t, rec.Body.String(), "Please enter text for the overlay.")

	rec = datastarPost(t, h, "/image-editor/text", map[string]any{"overlayText": "SALE", "textStyle": style})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Undo text")

	rec = datastarPost(t, h, "/image-editor/text/clear", nil)
	assert.Contains(t, rec.Body.String(), "Please confirm this action.")

	rec = datastarPost(t, h, "/image-editor/text/clear?confirmed=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Undo text")
	assert.Contains(t, rec.Body.String(), "Start crop")

	rec = datastarPost(t, h, "/image-editor/crop/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Apply crop")
	s, err := e.ImageEditor()
	require.NoError(t, err)
	assert.Equal(t, imageedit.StateCropping, s.State())

	rec = datastarPost(t, h, "/image-editor/crop/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, imageedit.StateLoaded, s.State())

	datastarPost(t, h, "/image-editor/text/start", nil)
	rec = datastarPost(t, h, "/image-editor/text/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = datastarPost(t, h, "/image-editor/close", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err = e.ImageEditor()
	assert.ErrorIs(t, err, editor.ErrNoEditSession)
}

func TestService_Generate(t *testing.T) {
	t.Parallel()

	src := dataURL(testPNG(t, 2, 2))
	e := newEditor(t, &stubProvider{name: imagegen.ProviderPlaceholder, src: src})
	h := editor.NewService(e).Handle()

	rec := datastarPost(t, h, "/generate/prompt", map[string]any{"genSlot": "feature-icon-2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "genPrompt")

	rec = datastarPost(t, h, "/generate", map[string]any{"genSlot": "hero-image", "genProvider": "placeholder", "genPrompt": ""})
	assert.Contains(t, rec.Body.String(), "toast")

	rec = datastarPost(t, h, "/generate", map[string]any{"genSlot": "hero-image", "genProvider": "placeholder", "genPrompt": "a watch"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "generation-status")

	assert.Eventually(t, func() bool {
		got, ok := e.Image("hero-image")
		return ok && got == src
	}, 5*time.Second, 10*time.Millisecond)
}

func TestService_GenerateFailureShowsCause(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{name: imagegen.ProviderPlaceholder, err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}
	e := newEditor(t, stub)
	h := editor.NewService(e).Handle()

	rec := datastarPost(t, h, "/generate", map[string]any{"genSlot": "hero-image", "genProvider": "placeholder", "genPrompt": "a watch"})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Eventually(t, func() bool {
		s, ok := e.GenerationStatus("hero-image")
		return ok && s.State == editor.GenerationFailed
	}, 5*time.Second, 10*time.Millisecond)

	page := httptest.NewRecorder()
	h.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Error generating image: dial tcp 127.0.0.1:1: connect: connection refused")
}

func TestService_ExportImport(t *testing.T) {
	t.Parallel()

	e, h := newServer(t)
	require.NoError(t, e.SetField("colors.primary", "#112233"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "email-template-customized.html")
	assert.Contains(t, rec.Body.String(), "#112233")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/config?format=yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".yaml")
	assert.Contains(t, rec.Body.String(), "primary: '#112233'")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/config?format=xml", nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	t.Run("import", func(t *testing.T) {
		rec := multipartPost(t, h, "/import", "config", "config.json",
			[]byte(`{"colors":{"primary":"#445566"},"content":{"logoText":"ACME"}}`), true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Configuration loaded successfully!")
		assert.Equal(t, "#445566", e.Config().Colors["primary"])
		assert.Equal(t, "ACME", e.Config().Content["logoText"])

		rec = multipartPost(t, h, "/import", "config", "config.json", []byte(`{"colors":{"primary":"bad"}}`), true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "kept their defaults")
		assert.Equal(t, "#000000", e.Config().Colors["primary"])

		rec = multipartPost(t, h, "/import", "config", "config.json", []byte(`not json`), false)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestService_StoreExport(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		_, h := newServer(t)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export/store?kind=html", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("local storage", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		storage, err := file.NewLocalStorage(dir, "/artifacts/")
		require.NoError(t, err)
		_, h := newServer(t, editor.WithStorage(storage))

		rec := datastarPost(t, h, "/export/store?kind=json", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/artifacts/exports/")

		matches, err := filepath.Glob(filepath.Join(dir, "exports", "*", "email-config.json"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), `"colors"`)

		rec = datastarPost(t, h, "/export/store?kind=pdf", nil)
		assert.Contains(t, rec.Body.String(), "toast")
	})
}

func TestService_TestEmail(t *testing.T) {
	t.Parallel()

	mailer := &recordingMailer{}
	_, h := newServer(t, editor.WithMailer(mailer))

	rec := datastarPost(t, h, "/test-email", map[string]any{"emailTo": "not-an-email"})
	assert.Contains(t, rec.Body.String(), "toast")

	rec = datastarPost(t, h, "/test-email", map[string]any{"emailTo": "qa@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Test email sent to qa@example.com")

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "qa@example.com", mailer.sent[0].SendTo)
	assert.Contains(t, mailer.sent[0].BodyHTML, "GANANCE")
	assert.Contains(t, mailer.sent[0].BodyText, "GANANCE")
	assert.NotContains(t, mailer.sent[0].BodyText, "<")

	t.Run("disabled", func(t *testing.T) {
		_, h := newServer(t)
		form := url.Values{"emailTo": {"qa@example.com"}}
		req := httptest.NewRequest(http.MethodPost, "/test-email", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestService_Reset(t *testing.T) {
	t.Parallel()

	e, h := newServer(t)
	require.NoError(t, e.SetField("content.logoText", "ACME"))

	rec := datastarPost(t, h, "/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="controls"`)
	assert.Equal(t, "GANANCE", e.Config().Content["logoText"])
}
