package handler

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope of every JSON response.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v in the data envelope with status 200.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
}

// JSONError renders err in the error envelope with the classified status.
func JSONError(err error) Response {
	info := classifyError(err)
	detail := &ErrorDetail{Code: info.Code, Message: info.Message}
	if ve, ok := asValidationError(err); ok {
		detail.Details = ve
	}
	return jsonResponse{status: info.StatusCode, body: JSONResponse{Error: detail}}
}
