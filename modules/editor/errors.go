package editor

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/emailcraft/handler"
	"github.com/dmitrymomot/emailcraft/pkg/email"
	"github.com/dmitrymomot/emailcraft/pkg/file"
	"github.com/dmitrymomot/emailcraft/pkg/imageedit"
	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
	"github.com/dmitrymomot/emailcraft/pkg/statemachine"
	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

var (
	ErrEmptySlot         = errors.New("image slot is empty")
	ErrUnknownSlot       = errors.New("unknown image slot")
	ErrNoEditSession     = errors.New("no image edit session")
	ErrPartialImport     = errors.New("some imported values were invalid and kept their defaults")
	ErrStorageDisabled   = errors.New("artifact storage is not configured")
	ErrMailerDisabled    = errors.New("test email is not configured")
	ErrUnknownExportKind = errors.New("unknown export kind")
	ErrUnknownDragPhase  = errors.New("unknown drag phase")
)

// User-facing messages.
const (
	msgEmptySlot      = "Please upload or generate an image first before editing."
	msgNoSelection    = "Please select an area to crop first."
	msgCropTooSmall   = "Crop area is too small."
	msgEmptyText      = "Please enter text for the overlay."
	msgAPIKey         = "Please enter your OpenAI API key"
	msgGenerateFailed = "Failed to generate image"
	msgBadConfig      = "Error loading configuration file. Please check the file format."
)

type errorMapping struct {
	target error
	err    handler.HTTPError
}

var errorMappings = []errorMapping{
	{ErrEmptySlot, handler.NewHTTPError(http.StatusConflict, msgEmptySlot)},
	{ErrNoEditSession, handler.NewHTTPError(http.StatusConflict, "The image editor is not open.")},
	{ErrUnknownSlot, handler.NewHTTPError(http.StatusNotFound, "Unknown image slot.")},
	{ErrUnknownExportKind, handler.NewHTTPError(http.StatusBadRequest, "Unknown export kind.")},
	{ErrUnknownDragPhase, handler.ErrBadRequest},
	{ErrStorageDisabled, handler.NewHTTPError(http.StatusServiceUnavailable, "Artifact storage is not configured.")},
	{ErrMailerDisabled, handler.NewHTTPError(http.StatusServiceUnavailable, "Test email is not configured.")},

	{imageedit.ErrNoSelection, handler.NewHTTPError(http.StatusBadRequest, msgNoSelection)},
	{imageedit.ErrCropTooSmall, handler.NewHTTPError(http.StatusBadRequest, msgCropTooSmall)},
	{imageedit.ErrEmptyText, handler.NewHTTPError(http.StatusBadRequest, msgEmptyText)},
	{imageedit.ErrConfirmationRequired, handler.NewHTTPError(http.StatusConflict, "Please confirm this action.")},
	{imageedit.ErrUnsupportedImage, handler.NewHTTPError(http.StatusUnsupportedMediaType, "This image format is not supported.")},
	{imageedit.ErrNotLoaded, handler.NewHTTPError(http.StatusConflict, msgEmptySlot)},
	{statemachine.ErrNoTransition, handler.ErrConflict},
	{statemachine.ErrRejected, handler.ErrConflict},

	{imagegen.ErrEmptyPrompt, handler.NewHTTPError(http.StatusBadRequest, "Please enter a prompt.")},
	{imagegen.ErrUnknownProvider, handler.NewHTTPError(http.StatusBadRequest, "Unknown image provider.")},
	{imagegen.ErrAPIKeyRequired, handler.NewHTTPError(http.StatusBadRequest, msgAPIKey)},
	{imagegen.ErrRateLimitExceeded, handler.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")},
	{imagegen.ErrFetchFailed, handler.NewHTTPError(http.StatusBadGateway, "Could not download the image.")},
	{imagegen.ErrNotAnImage, handler.NewHTTPError(http.StatusBadGateway, "Could not download the image.")},
	{imagegen.ErrImageTooLarge, handler.NewHTTPError(http.StatusRequestEntityTooLarge, "The image is too large.")},
	{imagegen.ErrGenerationFailed, handler.NewHTTPError(http.StatusBadGateway, msgGenerateFailed)},

	{templateconfig.ErrMalformedConfig, handler.NewHTTPError(http.StatusUnprocessableEntity, msgBadConfig)},
	{templateconfig.ErrUnknownFormat, handler.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported configuration format.")},
	{templateconfig.ErrUnknownField, handler.NewHTTPError(http.StatusNotFound, "Unknown field.")},

	{file.ErrNilFileHeader, handler.NewHTTPError(http.StatusBadRequest, "Please choose a file.")},
	{file.ErrFileTooLarge, handler.NewHTTPError(http.StatusRequestEntityTooLarge, "The file is too large.")},
	{file.ErrMIMETypeNotAllowed, handler.NewHTTPError(http.StatusUnsupportedMediaType, "Please upload an image file.")},

	{email.ErrFailedToSendEmail, handler.NewHTTPError(http.StatusBadGateway, "Failed to send the test email.")},
}

// httpError attaches the user-facing HTTPError for err. Validation errors
// and errors that already carry an HTTPError pass through.
func httpError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := validator.AsErrors(err); ok {
		return err
	}
	var he handler.HTTPError
	if errors.As(err, &he) {
		return err
	}
	var apiErr *imagegen.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && !errors.Is(err, imagegen.ErrRateLimitExceeded) {
		return errors.Join(handler.NewHTTPError(http.StatusBadGateway, apiErr.Message), err)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return errors.Join(m.err, err)
		}
	}
	return err
}

// generationMessage is the status line shown for a failed generation. The
// underlying error text is shown unless a friendlier message is known.
func generationMessage(err error) string {
	msg := msgGenerateFailed
	var apiErr *imagegen.APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr) && apiErr.Message != "":
		msg = apiErr.Message
	case errors.Is(err, imagegen.ErrAPIKeyRequired):
		msg = msgAPIKey
	case errors.Is(err, context.DeadlineExceeded):
		msg = "the request timed out"
	default:
		msg = strings.TrimPrefix(err.Error(), imagegen.ErrGenerationFailed.Error()+": ")
	}
	return "Error generating image: " + msg
}
