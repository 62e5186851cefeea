package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/handler"
	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

func datastarRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Datastar-Request", "true")
	r.Header.Set("Accept", "text/event-stream")
	return r
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain request renders html", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		err := handler.Templ(text("<p>preview</p>")).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>preview</p>", w.Body.String())
	})

	t.Run("datastar request sends element patches", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		resp := handler.TemplMulti(
			handler.Patch(text(`<div id="a">one</div>`)),
			handler.Patch(text(`<li>two</li>`), handler.WithTarget("#list"), handler.WithPatchMode(handler.PatchAppend)),
		)
		require.NoError(t, resp.Render(w, datastarRequest(http.MethodPost, "/")))

		body := w.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, `<div id="a">one</div>`)
		assert.Contains(t, body, "#list")
		assert.Contains(t, body, "<li>two</li>")
	})

	t.Run("signals follow patches", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		resp := handler.TemplWithSignals(map[string]any{"busy": false}, handler.Patch(text(`<span id="s">ok</span>`)))
		require.NoError(t, resp.Render(w, datastarRequest(http.MethodPost, "/")))
		assert.Contains(t, w.Body.String(), "datastar-patch-signals")
		assert.Contains(t, w.Body.String(), `"busy":false`)
	})
}

func TestDownload(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	resp := handler.Download("email-config.json", "application/json", []byte(`{"colors":{}}`))
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, `attachment; filename="email-config.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"colors":{}}`, w.Body.String())
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"http error", handler.ErrNotFound, http.StatusNotFound, "http_error", ""},
		{"validation error", handler.NewValidationError("prompt", "is required"), http.StatusUnprocessableEntity, "validation_error", "prompt"},
		{"validator errors", validator.Apply(validator.HexColor("color", "red")), http.StatusUnprocessableEntity, "validation_error", "color"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body handler.JSONResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			if tt.wantField != "" {
				assert.Contains(t, body.Error.Details, tt.wantField)
			}
		})
	}
}

func TestSSE_RequiresDatastar(t *testing.T) {
	t.Parallel()

	called := false
	resp := handler.SSE(func(handler.StreamContext) error {
		called = true
		return nil
	})

	err := resp.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	var httpErr handler.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.False(t, called)

	w := httptest.NewRecorder()
	resp = handler.SSE(func(stream handler.StreamContext) error {
		called = true
		if err := stream.SendComponent(text(`<div id="preview">x</div>`)); err != nil {
			return err
		}
		return stream.SendSignals(map[string]any{"state": "loaded"})
	})
	require.NoError(t, resp.Render(w, datastarRequest(http.MethodGet, "/stream")))
	assert.True(t, called)
	assert.Contains(t, w.Body.String(), `<div id="preview">x</div>`)
	assert.Contains(t, w.Body.String(), `"state":"loaded"`)
}
