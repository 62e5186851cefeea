package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/emailcraft/handler"
	"github.com/dmitrymomot/emailcraft/pkg/logger"
)

func errorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "page: "+p.Error)
		return err
	})
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="toast `+p.Type+`">`+p.Message+`</div>`)
		return err
	})
}

func TestErrorHandler_Page(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"generic", assert.AnError, http.StatusInternalServerError, "page: An error occurred processing your request"},
		{"http error", handler.NewHTTPError(http.StatusNotFound, "Slot not found"), http.StatusNotFound, "page: Slot not found"},
		{"validation", handler.NewValidationError("colors.primary", "must be a color like #112233"), http.StatusUnprocessableEntity, "page: colors.primary: must be a color like #112233"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{ErrorPage: errorPage})
			w := httptest.NewRecorder()
			eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/editor", nil)), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestErrorHandler_Toast(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{ErrorToast: errorToast})
	w := httptest.NewRecorder()
	eh(handler.NewContext(w, datastarRequest(http.MethodPost, "/editor/crop")), handler.ErrConflict)

	body := w.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "#toast-container")
	assert.Contains(t, body, `<div class="toast warning">The action is not available right now</div>`)
}

func TestErrorHandler_FallbackWithoutViews(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
	w := httptest.NewRecorder()
	eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrBadGateway)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Upstream service failed")
}
