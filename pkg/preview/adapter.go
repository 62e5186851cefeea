package preview

// Adapter applies single changes to a preview.
type Adapter interface {
	// SetVariable sets a CSS custom property on the document root.
	SetVariable(name, value string) error
	// SetText replaces the text of the element marked data-editable=marker.
	// With lineBreaks, newlines become <br> elements.
	SetText(marker, text string, lineBreaks bool) error
	// SetVisibility shows or hides the element marked data-component=component.
	SetVisibility(component string, visible bool) error
	// SetImage sets the image source of the slot marked data-editable=marker.
	// An empty src restores the template's own image.
	SetImage(marker, src string) error
}

// Preview is an Adapter that can serialize its current document.
type Preview interface {
	Adapter
	HTML() ([]byte, error)
}
