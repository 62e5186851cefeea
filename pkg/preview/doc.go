// Package preview mirrors template config changes into a rendered email
// document and exports the final standalone HTML.
//
// Binder is the only writer: it validates through templateconfig.Store and
// then pushes the change to a Preview through the Adapter methods. Preview
// failures (missing marker, document not loaded) are logged and skipped, so
// callers only ever see validation errors.
//
// HTMLDocument is the server-side Preview over golang.org/x/net/html. It
// finds targets by their data-editable and data-component attributes and
// keeps CSS variables in the style attribute of the root element, the same
// place a browser's documentElement.style.setProperty would put them.
//
// ExportHTML inlines those variables: only <style> text and style
// attributes are rewritten, so user text that looks like CSS is kept as is.
package preview
