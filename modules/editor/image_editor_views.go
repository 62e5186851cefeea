package editor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/emailcraft/pkg/imageedit"
)

// EditorView feeds the image editor modal.
type EditorView struct {
	Snapshot    imageedit.Snapshot
	Canvas      string
	TextPreview string
	Style       imageedit.TextStyle
}

func imageEditorView(v EditorView) templ.Component {
	return component(func(b *strings.Builder) {
		s := v.Snapshot
		fmt.Fprintf(b, `<div id="%s" class="modal"><div class="modal-body">`, idImageEditor)
		fmt.Fprintf(b, `<h2>Edit image: %s</h2>`, esc(s.Slot))
		writeCanvas(b, v)

		b.WriteString(`<div class="tools"><h3>Crop</h3>`)
		if s.State == imageedit.StateCropping {
			b.WriteString(`<p class="muted">Drag over the image to select the area to keep.</p>` +
				`<button data-on:click="@post('/image-editor/crop/apply')">Apply crop</button>` +
				`<button data-on:click="@post('/image-editor/crop/cancel')">Cancel crop</button></div>`)
			writeEditorActions(b)
			return
		}
		b.WriteString(`<button data-on:click="@post('/image-editor/crop/start')">Start crop</button>`)

		b.WriteString(`<h3>Text</h3>`)
		switch s.State {
		case imageedit.StateTextEditing, imageedit.StateOverlayPreviewing:
			writeTextTool(b, v)
		default:
			b.WriteString(`<button data-on:click="@post('/image-editor/text/start')">Add text</button>`)
			writeTextHistory(b, s)
		}

		ov := s.Overlay
		if ov.Color == "" {
			ov = imageedit.Overlay{Color: "#000000", Opacity: 30}
		}
		ovSignals, _ := json.Marshal(map[string]any{"overlay": ov})
		fmt.Fprintf(b, `<h3>Color overlay</h3><div data-signals__ifmissing="%s">`, esc(string(ovSignals)))
		b.WriteString(`<input type="color" data-bind="overlay.color" data-on:input__throttle.100ms="@post('/image-editor/overlay/preview')">` +
			`<input type="range" min="0" max="100" data-bind="overlay.opacity" data-on:input__throttle.100ms="@post('/image-editor/overlay/preview')">` +
			`<span data-text="$overlay.opacity + '%'"></span>`)
		writeOverlayActions(b, s.OverlayActive)
		b.WriteString(`</div></div>`)
		writeEditorActions(b)
	})
}

func writeCanvas(b *strings.Builder, v EditorView) {
	s := v.Snapshot
	events := ""
	if s.State == imageedit.StateCropping {
		drag := func(phase string) string {
			return fmt.Sprintf(`@post('/image-editor/crop/drag?phase=%s&x=' + evt.offsetX + '&y=' + evt.offsetY + '&w=' + el.clientWidth + '&h=' + el.clientHeight)`, phase)
		}
		events = fmt.Sprintf(` class="cropping" data-on:mousedown="%s" data-on:mousemove__throttle.60ms="%s" data-on:mouseup="%s"`,
			esc(drag("start")), esc(drag("move")), esc(drag("end")))
	}
	fmt.Fprintf(b, `<img id="%s" src="%s" width="%d" height="%d" draggable="false" alt="Image being edited"%s>`,
		idCanvas, esc(v.Canvas), s.Width, s.Height, events)
}

func canvasView(v EditorView) templ.Component {
	return component(func(b *strings.Builder) { writeCanvas(b, v) })
}

func writeTextTool(b *strings.Builder, v EditorView) {
	st, _ := json.Marshal(v.Style)
	fmt.Fprintf(b, `<div data-signals__ifmissing="%s">`, esc(fmt.Sprintf(`{"overlayText":"","textStyle":%s}`, st)))
	b.WriteString(`<input type="text" placeholder="Overlay text" data-bind="overlayText" data-on:input__debounce.300ms="@post('/image-editor/text/preview')">` +
		`<input type="number" min="8" max="200" data-bind="textStyle.size" data-on:change="@post('/image-editor/text/preview')">` +
		`<select data-bind="textStyle.family" data-on:change="@post('/image-editor/text/preview')">`)
	for _, c := range FontChoices {
		fmt.Fprintf(b, `<option value="%s">%s</option>`, esc(c), esc(fontLabel(c)))
	}
	b.WriteString(`</select>` +
		`<select data-bind="textStyle.weight" data-on:change="@post('/image-editor/text/preview')"><option value="normal">Normal</option><option value="bold">Bold</option></select>` +
		`<select data-bind="textStyle.style" data-on:change="@post('/image-editor/text/preview')"><option value="normal">Normal</option><option value="italic">Italic</option></select>` +
		`<input type="color" data-bind="textStyle.color" data-on:change="@post('/image-editor/text/preview')">` +
		`<select data-bind="textStyle.stroke" data-on:change="@post('/image-editor/text/preview')"><option value="none">No outline</option><option value="black">Black outline</option><option value="white">White outline</option></select>` +
		`<select data-bind="textStyle.position"><option value="top">Top</option><option value="center">Center</option><option value="bottom">Bottom</option></select>`)
	textPreviewWrite(b, v.TextPreview)
	b.WriteString(`<button data-on:click="@post('/image-editor/text')">Add to image</button>`)
	if v.Snapshot.State == imageedit.StateTextEditing {
		b.WriteString(`<button data-on:click="@post('/image-editor/text/finish')">Done</button>`)
	}
	b.WriteString(`</div>`)
	writeTextHistory(b, v.Snapshot)
}

func writeTextHistory(b *strings.Builder, s imageedit.Snapshot) {
	if s.HistoryDepth > 0 {
		b.WriteString(`<button data-on:click="@post('/image-editor/text/undo')">Undo text</button>`)
	}
	if s.Clearable {
		b.WriteString(`<button data-on:click="confirm('Clear all text overlays? This will remove all text you\'ve added.') && @post('/image-editor/text/clear?confirmed=1')">Clear all text</button>`)
	}
}

func writeOverlayActions(b *strings.Builder, active bool) {
	fmt.Fprintf(b, `<div id="%s">`, idOverlayActions)
	if active {
		b.WriteString(`<button data-on:click="@post('/image-editor/overlay/commit')">Apply overlay</button>` +
			`<button data-on:click="@post('/image-editor/overlay/remove')">Remove overlay</button>`)
	}
	b.WriteString(`</div>`)
}

func overlayActionsView(active bool) templ.Component {
	return component(func(b *strings.Builder) { writeOverlayActions(b, active) })
}

func writeEditorActions(b *strings.Builder) {
	b.WriteString(`<div class="modal-actions">` +
		`<button class="danger" data-on:click="confirm('Reset to original image? This will remove all edits (crops, text, overlays).') && @post('/image-editor/reset?confirmed=1')">Reset</button>` +
		`<button data-on:click="@post('/image-editor/close')">Cancel</button>` +
		`<button class="primary" data-on:click="@post('/image-editor/save')">Save image</button>` +
		`</div></div></div>`)
}

func textPreviewWrite(b *strings.Builder, src string) {
	if src == "" {
		fmt.Fprintf(b, `<div id="%s" class="text-preview"></div>`, idTextPreview)
		return
	}
	fmt.Fprintf(b, `<div id="%s" class="text-preview"><img src="%s" alt="Text preview"></div>`, idTextPreview, esc(src))
}

func textPreviewView(src string) templ.Component {
	return component(func(b *strings.Builder) { textPreviewWrite(b, src) })
}

func closedImageEditorView() templ.Component {
	return component(func(b *strings.Builder) {
		fmt.Fprintf(b, `<div id="%s"></div>`, idImageEditor)
	})
}
