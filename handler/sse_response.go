package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is the Context of a long-lived SSE response.
type StreamContext interface {
	Context
	SendComponent(component templ.Component, opts ...TemplOption) error
	SendMultiple(patches ...TemplPatch) error
	SendSignals(signals map[string]any) error
}

// SSEHandler runs for the lifetime of the stream. Returning ends the stream.
type SSEHandler func(stream StreamContext) error

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (s *streamContext) SendComponent(component templ.Component, opts ...TemplOption) error {
	return s.sse.PatchElementTempl(component, opts...)
}

func (s *streamContext) SendMultiple(patches ...TemplPatch) error {
	for _, p := range patches {
		if err := s.sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (s *streamContext) SendSignals(signals map[string]any) error {
	return patchSignals(s.sse, signals)
}

func patchSignals(sse *datastar.ServerSentEventGenerator, signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return sse.PatchSignals(data)
}

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "This endpoint requires a datastar connection")
	}
	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE keeps the connection open and hands a StreamContext to fn.
func SSE(fn SSEHandler) Response {
	return sseResponse{handler: fn}
}
