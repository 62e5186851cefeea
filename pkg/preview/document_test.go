package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/pkg/preview"
)

const testTemplate = `<!DOCTYPE html>
<html>
<head><style>:root { --primary-color: #000000; } .cta { background: var(--primary-color); }</style></head>
<body>
<div data-component="header"><span data-editable="logo-text">GANANCE</span></div>
<div data-component="hero" style="padding: 10px;">
<h1 data-editable="hero-title">MAKE YOUR FAVORITE<br>WATCH SMART</h1>
<div data-editable="hero-image"><img src="https://example.com/hero.jpg" alt="hero"></div>
</div>
<a data-editable="cta-button" href="#">PRE-ORDER NOW</a>
<input data-editable="subject" value="old">
</body>
</html>`

func newDocument(t *testing.T) *preview.HTMLDocument {
	t.Helper()
	doc, err := preview.NewHTMLDocument([]byte(testTemplate))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, doc preview.Preview) string {
	t.Helper()
	out, err := doc.HTML()
	require.NoError(t, err)
	return string(out)
}

func TestHTMLDocument_SetVariable(t *testing.T) {
	t.Parallel()

	doc := newDocument(t)
	require.NoError(t, doc.SetVariable("--primary-color", "#112233"))
	require.NoError(t, doc.SetVariable("--primary-color", "#445566"))

	out := render(t, doc)
	assert.Contains(t, out, `<html style="--primary-color: #445566;">`)
}

func TestHTMLDocument_SetText(t *testing.T) {
	t.Parallel()

	t.Run("line breaks", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(t)
		require.NoError(t, doc.SetText("hero-title", "NEW\nLINE", true))
		assert.Contains(t, render(t, doc), `<h1 data-editable="hero-title">NEW<br/>LINE</h1>`)
	})

	t.Run("plain text is escaped", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(t)
		require.NoError(t, doc.SetText("logo-text", "<b>ACME</b>", false))
		assert.Contains(t, render(t, doc), `&lt;b&gt;ACME&lt;/b&gt;`)
	})

	t.Run("anchor text", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(t)
		require.NoError(t, doc.SetText("cta-button", "BUY", false))
		assert.Contains(t, render(t, doc), `<a data-editable="cta-button" href="#">BUY</a>`)
	})

	t.Run("input value", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(t)
		require.NoError(t, doc.SetText("subject", "new", false))
		assert.Contains(t, render(t, doc), `value="new"`)
	})

	t.Run("unknown marker", func(t *testing.T) {
		t.Parallel()
		doc := newDocument(t)
		assert.ErrorIs(t, doc.SetText("missing", "x", false), preview.ErrTargetNotFound)
	})
}

func TestHTMLDocument_SetVisibility(t *testing.T) {
	t.Parallel()

	doc := newDocument(t)

	require.NoError(t, doc.SetVisibility("header", false))
	require.NoError(t, doc.SetVisibility("hero", false))
	out := render(t, doc)
	assert.Contains(t, out, `<div data-component="header" style="display: none;">`)
	assert.Contains(t, out, `<div data-component="hero" style="padding: 10px; display: none;">`)

	require.NoError(t, doc.SetVisibility("header", true))
	require.NoError(t, doc.SetVisibility("hero", true))
	out = render(t, doc)
	assert.Contains(t, out, `<div data-component="header">`)
	assert.Contains(t, out, `<div data-component="hero" style="padding: 10px;">`)

	assert.ErrorIs(t, doc.SetVisibility("sidebar", true), preview.ErrTargetNotFound)
}

func TestHTMLDocument_SetImage(t *testing.T) {
	t.Parallel()

	doc := newDocument(t)

	require.NoError(t, doc.SetImage("hero-image", "data:image/png;base64,AAAA"))
	assert.Contains(t, render(t, doc), `src="data:image/png;base64,AAAA"`)

	require.NoError(t, doc.SetImage("hero-image", ""))
	assert.Contains(t, render(t, doc), `src="https://example.com/hero.jpg"`)

	assert.ErrorIs(t, doc.SetImage("logo-text", "x"), preview.ErrTargetNotFound)
}

func TestHTMLDocument_Unloaded(t *testing.T) {
	t.Parallel()

	var doc preview.HTMLDocument
	assert.False(t, doc.Loaded())
	assert.ErrorIs(t, doc.SetVariable("--primary-color", "#000000"), preview.ErrDocumentUnavailable)
	assert.ErrorIs(t, doc.SetText("logo-text", "x", false), preview.ErrDocumentUnavailable)
	assert.ErrorIs(t, doc.SetVisibility("header", true), preview.ErrDocumentUnavailable)
	assert.ErrorIs(t, doc.SetImage("hero-image", ""), preview.ErrDocumentUnavailable)
	_, err := doc.HTML()
	assert.ErrorIs(t, err, preview.ErrDocumentUnavailable)

	require.NoError(t, doc.Load([]byte(testTemplate)))
	assert.True(t, doc.Loaded())
}
