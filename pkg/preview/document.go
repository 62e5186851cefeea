package preview

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	editableAttr  = "data-editable"
	componentAttr = "data-component"
)

// HTMLDocument is a parsed template that accepts preview changes.
// The zero value is an unloaded document; every change on it fails with
// ErrDocumentUnavailable until Load succeeds.
type HTMLDocument struct {
	mu        sync.RWMutex
	root      *html.Node
	imageSrcs map[string]string
}

// NewHTMLDocument parses src into a loaded document.
func NewHTMLDocument(src []byte) (*HTMLDocument, error) {
	d := &HTMLDocument{}
	if err := d.Load(src); err != nil {
		return nil, err
	}
	return d, nil
}

// Load replaces the document with src.
func (d *HTMLDocument) Load(src []byte) error {
	root, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("parse preview document: %w", err)
	}
	srcs := map[string]string{}
	walk(root, func(n *html.Node) bool {
		if marker := attr(n, editableAttr); marker != "" {
			if img := findImage(n); img != nil {
				srcs[marker] = attr(img, "src")
			}
		}
		return false
	})

	d.mu.Lock()
	d.root = root
	d.imageSrcs = srcs
	d.mu.Unlock()
	return nil
}

// Loaded reports whether a document has been loaded.
func (d *HTMLDocument) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.root != nil
}

// SetVariable sets the CSS custom property name on the <html> element's
// style attribute, replacing an earlier declaration of the same property.
// It returns ErrTargetNotFound when the document has no <html> element.
func (d *HTMLDocument) SetVariable(name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.root == nil {
		return ErrDocumentUnavailable
	}
	el := find(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Html })
	if el == nil {
		return fmt.Errorf("%w: document root", ErrTargetNotFound)
	}
	setAttr(el, "style", setProperty(attr(el, "style"), name, value))
	return nil
}

// SetText replaces the children of the element marked data-editable=marker
// with text. Inputs get their value attribute set instead. With lineBreaks,
// each newline becomes a <br> element; links and textareas always receive a
// single text node. The text is stored as a text node and escaped on render.
func (d *HTMLDocument) SetText(marker, text string, lineBreaks bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, err := d.target(editableAttr, marker)
	if err != nil {
		return err
	}

	switch el.DataAtom {
	case atom.Input:
		setAttr(el, "value", text)
	case atom.Textarea, atom.A:
		replaceChildren(el, &html.Node{Type: html.TextNode, Data: text})
	default:
		if !lineBreaks {
			replaceChildren(el, &html.Node{Type: html.TextNode, Data: text})
			return nil
		}
		var nodes []*html.Node
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				nodes = append(nodes, &html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br})
			}
			nodes = append(nodes, &html.Node{Type: html.TextNode, Data: line})
		}
		replaceChildren(el, nodes...)
	}
	return nil
}

// SetVisibility hides the element marked data-component=component with
// display:none, or removes that declaration to show it again. A style
// attribute left empty is removed.
func (d *HTMLDocument) SetVisibility(component string, visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, err := d.target(componentAttr, component)
	if err != nil {
		return err
	}
	display := "none"
	if visible {
		display = ""
	}
	style := setProperty(attr(el, "style"), "display", display)
	if style == "" {
		removeAttr(el, "style")
		return nil
	}
	setAttr(el, "style", style)
	return nil
}

// SetImage points the first <img> inside the element marked
// data-editable=marker at src. An empty src restores the image the template
// had when it was loaded. It returns ErrTargetNotFound when the marked
// element holds no image.
func (d *HTMLDocument) SetImage(marker, src string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, err := d.target(editableAttr, marker)
	if err != nil {
		return err
	}
	img := findImage(el)
	if img == nil {
		return fmt.Errorf("%w: no image in %s=%q", ErrTargetNotFound, editableAttr, marker)
	}
	if src == "" {
		src = d.imageSrcs[marker]
	}
	setAttr(img, "src", src)
	return nil
}

// HTML renders the current document.
func (d *HTMLDocument) HTML() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.root == nil {
		return nil, ErrDocumentUnavailable
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *HTMLDocument) target(key, value string) (*html.Node, error) {
	if d.root == nil {
		return nil, ErrDocumentUnavailable
	}
	el := find(d.root, func(n *html.Node) bool { return attr(n, key) == value })
	if el == nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrTargetNotFound, key, value)
	}
	return el, nil
}

// walk visits n and its descendants depth first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func find(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return true
		}
		return false
	})
	return found
}

func findImage(n *html.Node) *html.Node {
	return find(n, func(c *html.Node) bool { return c.DataAtom == atom.Img })
}

func attr(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

func replaceChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		n.AppendChild(c)
	}
}
