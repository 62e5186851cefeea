package editor

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/emailcraft/handler"
)

func toastView(p handler.ErrorToastParams) templ.Component {
	return component(func(b *strings.Builder) {
		fmt.Fprintf(b, `<div class="toast %s" data-on:click="el.remove()">%s</div>`, esc(p.Type), esc(p.Message))
	})
}

func noticeView(message, kind string) templ.Component {
	return toastView(handler.ErrorToastParams{Message: message, Type: kind})
}

func errorPageView(p handler.ErrorPageParams) templ.Component {
	return component(func(b *strings.Builder) {
		fmt.Fprintf(b, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error %d</title><style>%s</style></head>`+
			`<body><main class="error-page"><h1>%d</h1><p>%s</p>`,
			p.StatusCode, pageCSS, p.StatusCode, esc(p.Error))
		if p.RequestID != "" {
			fmt.Fprintf(b, `<p class="muted">Request %s</p>`, esc(p.RequestID))
		}
		b.WriteString(`<p><a href="/">Back to the editor</a></p></main></body></html>`)
	})
}
