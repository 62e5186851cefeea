package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/emailcraft/pkg/imagegen"
	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

// PageData feeds the editor page.
type PageData struct {
	Config    templateconfig.TemplateConfig
	Version   uint64
	Providers []string
	Status    map[string]GenerationStatus
}

func pageView(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, _ := json.Marshal(map[string]any{
			"value":        "",
			"genSlot":      defaultGenSlot,
			"genProvider":  imagegen.ProviderPlaceholder,
			"genPrompt":    imagegen.DefaultPrompt(templateconfig.SlotHero),
			"genApiKey":    "",
			"emailTo":      "",
			"previewWidth": PreviewSizes[0].Width,
			"previewLabel": PreviewSizes[0].Label,
		})
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>Email Template Editor</title>`+
			`<script type="module" src="%s"></script>`+
			`<style>%s</style></head>`+
			`<body data-signals="%s"><div id="%s" class="toasts"></div><main class="layout">`,
			datastarScript, pageCSS, esc(string(signals)), idToasts); err != nil {
			return err
		}
		if err := controlsView(d).Render(ctx, w); err != nil {
			return err
		}
		if err := previewPaneView(d.Version).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `</main><div id="%s"></div></body></html>`, idImageEditor)
		return err
	})
}

// PreviewSize is a preview width offered above the preview.
type PreviewSize struct {
	Label string
	Width string
}

// PreviewSizes lists the preview widths; the first is the initial one.
var PreviewSizes = []PreviewSize{
	{Label: "Desktop", Width: "100%"},
	{Label: "Mobile", Width: "375px"},
}

// previewPaneView renders the width switcher and the preview frame. The
// width lives in the previewWidth signal only, so switching needs no request.
func previewPaneView(version uint64) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString(`<section class="preview"><div class="preview-toolbar">`)
		fmt.Fprintf(b, `<span id="%s" data-text="$previewLabel + ' View'">%s View</span>`, idPreviewSize, esc(PreviewSizes[0].Label))
		for _, size := range PreviewSizes {
			fmt.Fprintf(b, `<button class="preview-btn" data-width="%s" data-class:active="$previewWidth == %s" data-on:click="$previewWidth = %s; $previewLabel = %s">%s</button>`,
				esc(size.Width), jsString(size.Width), jsString(size.Width), jsString(size.Label), esc(size.Label))
		}
		fmt.Fprintf(b, `</div><div class="preview-wrapper" style="max-width: %s" data-attr:style="'max-width: ' + $previewWidth">`, esc(PreviewSizes[0].Width))
		writePreviewFrame(b, version)
		b.WriteString(`</div><div data-init="@get('/preview/stream')"></div></section>`)
	})
}

func writePreviewFrame(b *strings.Builder, version uint64) {
	fmt.Fprintf(b, `<iframe id="%s" title="Email preview" src="/preview?v=%d"></iframe>`, idPreview, version)
}

func previewFrameView(version uint64) templ.Component {
	return component(func(b *strings.Builder) { writePreviewFrame(b, version) })
}

func controlsView(d PageData) templ.Component {
	return component(func(b *strings.Builder) {
		fmt.Fprintf(b, `<aside id="%s" class="controls">`, idControls)

		b.WriteString(`<h2>Colors</h2>`)
		for _, f := range templateconfig.FieldsOf(templateconfig.KindColor) {
			v, _ := d.Config.Value(f)
			fmt.Fprintf(b, `<label for="%s">%s</label><input type="color" id="%s" value="%s" data-on:change="$value = el.value; @post('/fields?path=%s')">`,
				f.Control, esc(f.Label), f.Control, esc(v), f.Path)
		}

		b.WriteString(`<h2>Fonts</h2>`)
		for _, f := range templateconfig.FieldsOf(templateconfig.KindFont) {
			v, _ := d.Config.Value(f)
			fmt.Fprintf(b, `<label for="%s">%s</label><select id="%s" data-on:change="$value = el.value; @post('/fields?path=%s')">`,
				f.Control, esc(f.Label), f.Control, f.Path)
			choices := FontChoices
			if !containsString(choices, v) {
				choices = append([]string{v}, choices...)
			}
			for _, c := range choices {
				sel := ""
				if c == v {
					sel = " selected"
				}
				fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, esc(c), sel, esc(fontLabel(c)))
			}
			b.WriteString(`</select>`)
		}

		b.WriteString(`<h2>Content</h2>`)
		for _, f := range templateconfig.FieldsOf(templateconfig.KindText) {
			v, _ := d.Config.Value(f)
			fmt.Fprintf(b, `<label for="%s">%s</label>`, f.Control, esc(f.Label))
			action := fmt.Sprintf(`$value = el.value; @post('/fields?path=%s')`, f.Path)
			if f.LineBreaks || f.Key == "productDescription" {
				fmt.Fprintf(b, `<textarea id="%s" rows="3" data-on:input__debounce.300ms="%s">%s</textarea>`, f.Control, action, esc(v))
				continue
			}
			fmt.Fprintf(b, `<input type="text" id="%s" value="%s" data-on:input__debounce.300ms="%s">`, f.Control, esc(v), action)
		}

		b.WriteString(`<h2>Sections</h2>`)
		for _, f := range templateconfig.FieldsOf(templateconfig.KindVisibility) {
			v, _ := d.Config.Value(f)
			checked := ""
			if v == "true" {
				checked = " checked"
			}
			fmt.Fprintf(b, `<label class="toggle"><input type="checkbox" id="%s"%s data-on:change="$value = String(el.checked); @post('/fields?path=%s')"> %s</label>`,
				f.Control, checked, f.Path, esc(f.Label))
		}

		b.WriteString(`<h2>Images</h2>`)
		for _, f := range templateconfig.FieldsOf(templateconfig.KindImage) {
			src, _ := d.Config.Value(f)
			writeSlotCard(b, f, src)
		}

		writeGenerationPanel(b, d)

		b.WriteString(`<h2>Export</h2><div class="actions">` +
			`<a class="button" href="/export/html" download>Download HTML</a>` +
			`<a class="button" href="/export/config?format=json" download>Save config (JSON)</a>` +
			`<a class="button" href="/export/config?format=yaml" download>Save config (YAML)</a>` +
			`<button data-on:click="@post('/export/store?kind=html')">Store HTML</button>` +
			`</div>` +
			`<form id="import-form" class="import" enctype="multipart/form-data" data-on:submit="@post('/import', {contentType: 'form'})">` +
			`<input type="file" name="config" accept=".json,.yaml,.yml"><button type="submit">Load config</button></form>` +
			`<div class="email"><input type="email" placeholder="you@example.com" data-bind="emailTo">` +
			`<button data-on:click="@post('/test-email')">Send test email</button></div>` +
			`<button class="danger" data-on:click="confirm('Reset every setting to its default?') && @post('/reset')">Reset to defaults</button>`)

		b.WriteString(`</aside>`)
	})
}

func writeSlotCard(b *strings.Builder, f templateconfig.Field, src string) {
	fmt.Fprintf(b, `<div id="%s" class="slot"><div class="slot-head">%s</div>`, slotID(f.Key), esc(f.Label))
	if src != "" {
		fmt.Fprintf(b, `<img class="thumb" src="%s" alt="%s">`, esc(src), esc(f.Label))
	} else {
		b.WriteString(`<div class="thumb empty">No image</div>`)
	}
	fmt.Fprintf(b, `<form id="%s-form" enctype="multipart/form-data" data-on:change="@post('/images/%s/upload', {contentType: 'form'})">`+
		`<input type="file" id="%s" name="file" accept="image/*"></form>`, f.Control, f.Key, f.Control)
	fmt.Fprintf(b, `<div class="slot-actions">`+
		`<button data-on:click="@post('/image-editor/open?slot=%s')">Edit</button>`+
		`<button data-on:click="$genSlot = %s; @post('/generate/prompt')">Generate</button>`,
		f.Key, jsString(f.Key))
	if src != "" {
		fmt.Fprintf(b, `<button data-on:click="@post('/images/%s/clear')">Remove</button>`, f.Key)
	}
	b.WriteString(`</div></div>`)
}

func slotCardView(f templateconfig.Field, src string) templ.Component {
	return component(func(b *strings.Builder) { writeSlotCard(b, f, src) })
}

func writeGenerationPanel(b *strings.Builder, d PageData) {
	fmt.Fprintf(b, `<div id="%s" class="generate"><h2>Generate image</h2>`, idGenerationPrompts)
	b.WriteString(`<label>Slot</label><select data-bind="genSlot" data-on:change="@post('/generate/prompt')">`)
	for _, f := range templateconfig.FieldsOf(templateconfig.KindImage) {
		fmt.Fprintf(b, `<option value="%s">%s</option>`, f.Key, esc(f.Label))
	}
	b.WriteString(`</select><label>Provider</label><select data-bind="genProvider">`)
	for _, p := range d.Providers {
		fmt.Fprintf(b, `<option value="%s">%s</option>`, esc(p), esc(providerLabel(p)))
	}
	b.WriteString(`</select>` +
		`<label>Prompt</label><textarea rows="3" data-bind="genPrompt"></textarea>` +
		`<label data-show="$genProvider == 'openai'">API key</label>` +
		`<input type="password" autocomplete="off" data-show="$genProvider == 'openai'" data-bind="genApiKey">` +
		`<button data-on:click="@post('/generate')">Generate</button>`)
	writeGenerationStatus(b, d.Status[defaultGenSlot])
	b.WriteString(`</div>`)
}

func providerLabel(p string) string {
	switch p {
	case imagegen.ProviderPlaceholder:
		return "Placeholder"
	case imagegen.ProviderStock:
		return "Stock photo"
	case imagegen.ProviderOpenAI:
		return "OpenAI"
	}
	return titleCase.String(p)
}

func writeGenerationStatus(b *strings.Builder, s GenerationStatus) {
	class, msg := "", ""
	switch s.State {
	case GenerationPending:
		class, msg = "info", "Generating image..."
	case GenerationDone:
		class, msg = "success", "Image generated."
	case GenerationFailed:
		class, msg = "error", generationMessage(s.Err)
	}
	fmt.Fprintf(b, `<div id="%s" class="generation-status %s">%s</div>`, idGenerationStatus, class, esc(msg))
}

func generationStatusView(s GenerationStatus) templ.Component {
	return component(func(b *strings.Builder) { writeGenerationStatus(b, s) })
}
