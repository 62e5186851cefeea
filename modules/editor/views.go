package editor

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Element ids patched by the handlers.
const (
	idControls          = "controls"
	idPreview           = "preview-frame"
	idGenerationStatus  = "generation-status"
	idImageEditor       = "image-editor"
	idTextPreview       = "text-preview"
	idToasts            = "toast-container"
	idGenerationPrompts = "generation-panel"
	idCanvas            = "image-editor-canvas"
	idOverlayActions    = "overlay-actions"
	idPreviewSize       = "preview-size-label"
)

// FontChoices are the font stacks offered by the font pickers.
var FontChoices = []string{
	"'Helvetica Neue', Helvetica, Arial, sans-serif",
	"Arial, sans-serif",
	"Georgia, 'Times New Roman', serif",
	"'Courier New', Courier, monospace",
	"Verdana, Geneva, sans-serif",
	"'trebuchet ms', sans-serif",
	"'palatino linotype', Palatino, serif",
}

// defaultGenSlot is preselected in the generation panel.
const defaultGenSlot = "hero-image"

var titleCase = cases.Title(language.English)

// fontLabel names a font stack by its first family.
func fontLabel(stack string) string {
	first, _, _ := strings.Cut(stack, ",")
	return titleCase.String(strings.Trim(strings.TrimSpace(first), `'"`))
}

func slotID(slot string) string { return "slot-" + slot }

func esc(s string) string { return templ.EscapeString(s) }

// jsString quotes s for use inside a datastar expression attribute.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return esc(string(b))
}

func component(fn func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

const pageCSS = `*{box-sizing:border-box}body{margin:0;font-family:system-ui,sans-serif;background:#f4f5fb;color:#222}` +
	`.layout{display:grid;grid-template-columns:360px 1fr;height:100vh}` +
	`.controls{overflow-y:auto;padding:16px;background:#fff;border-right:1px solid #e2e4f0}` +
	`.controls h2{font-size:14px;text-transform:uppercase;color:#667eea;margin:20px 0 8px}` +
	`.controls label{display:block;font-size:12px;margin:8px 0 4px}` +
	`.controls input[type=text],.controls textarea,.controls select{width:100%;padding:6px}` +
	`.preview{padding:16px;display:flex;flex-direction:column;height:100vh}` +
	`.preview-toolbar{display:flex;align-items:center;gap:4px;margin-bottom:8px}.preview-toolbar span{margin-right:auto;font-size:13px;color:#555}` +
	`.preview-btn.active{background:#667eea;color:#fff}` +
	`.preview-wrapper{flex:1;width:100%;margin:0 auto;transition:max-width .2s}.preview iframe{width:100%;height:100%;border:0;background:#fff}` +
	`.slot{border:1px solid #e2e4f0;border-radius:6px;padding:8px;margin-bottom:8px}` +
	`.thumb{max-width:100%;max-height:80px;display:block}.thumb.empty{color:#999;font-size:12px}` +
	`.generation-status{font-size:12px;margin-top:8px}.generation-status.error{color:#c0392b}.generation-status.success{color:#27ae60}` +
	`.toasts{position:fixed;top:12px;right:12px;z-index:20}.toast{padding:10px 14px;margin-bottom:8px;border-radius:4px;background:#333;color:#fff;cursor:pointer}` +
	`.toast.error{background:#c0392b}.toast.warning{background:#e67e22}.toast.success{background:#27ae60}` +
	`.modal{position:fixed;inset:0;background:rgba(0,0,0,.6);display:flex;align-items:center;justify-content:center;z-index:10}` +
	`.modal-body{background:#fff;padding:16px;max-height:95vh;overflow:auto;border-radius:8px}` +
	`#image-editor-canvas{max-width:100%;height:auto;display:block}#image-editor-canvas.cropping{cursor:crosshair}` +
	`button,.button{margin:4px 4px 0 0;padding:6px 10px;border:1px solid #667eea;background:#fff;color:#667eea;border-radius:4px;text-decoration:none;cursor:pointer}` +
	`button.primary{background:#667eea;color:#fff}button.danger{border-color:#c0392b;color:#c0392b}` +
	`.error-page{max-width:480px;margin:80px auto;text-align:center}.muted{color:#888;font-size:12px}`
