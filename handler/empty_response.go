package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty responds 204 No Content.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the route's error handler.
func Error(err error) Response {
	return errorResponse{err: err}
}

type downloadResponse struct {
	filename    string
	contentType string
	data        []byte
}

func (d downloadResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", d.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(d.data)
	return err
}

// Download sends data as a file attachment.
func Download(filename, contentType string, data []byte) Response {
	return downloadResponse{filename: filename, contentType: contentType, data: data}
}
