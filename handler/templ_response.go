package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the component is patched into.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the target.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component with its patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

// Patch builds a TemplPatch for TemplMulti and StreamContext.SendMultiple.
func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	patches []TemplPatch
	signals map[string]any
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		if len(t.signals) > 0 {
			return patchSignals(sse, t.signals)
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders a component: as an element patch for datastar requests,
// as an HTML document otherwise.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplMulti sends several patches in one response. Plain requests receive
// the components concatenated in order.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{patches: patches}
}

// TemplWithSignals sends patches followed by a signal update.
// Plain requests ignore the signals.
func TemplWithSignals(signals map[string]any, patches ...TemplPatch) Response {
	return templResponse{patches: patches, signals: signals}
}
