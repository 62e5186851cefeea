package templateconfig

// Kind tells how a field reaches the preview.
type Kind int

const (
	KindColor Kind = iota + 1
	KindFont
	KindText
	KindVisibility
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindText:
		return "text"
	case KindVisibility:
		return "visibility"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// SlotType is the image generation class of an image slot.
type SlotType string

const (
	SlotHero    SlotType = "hero"
	SlotProduct SlotType = "product"
	SlotIcon    SlotType = "icon"
)

// Field is one row of the field table.
type Field struct {
	Path       string // dotted config path, e.g. "colors.primary"
	Group      string // top-level config key
	Key        string // key inside the group
	Kind       Kind
	Label      string   // control label
	Variable   string   // CSS custom property, colors and fonts only
	Marker     string   // data-editable or data-component value in the template
	Control    string   // editor control id
	LineBreaks bool     // newlines become <br> in the preview
	SlotType   SlotType // image slots only
}

var fields = []Field{
	{Path: "colors.primary", Group: GroupColors, Key: "primary", Kind: KindColor, Label: "Primary", Variable: "--primary-color", Control: "primary-color"},
	{Path: "colors.secondary", Group: GroupColors, Key: "secondary", Kind: KindColor, Label: "Secondary", Variable: "--secondary-color", Control: "secondary-color"},
	{Path: "colors.text", Group: GroupColors, Key: "text", Kind: KindColor, Label: "Text", Variable: "--text-color", Control: "text-color"},
	{Path: "colors.background", Group: GroupColors, Key: "background", Kind: KindColor, Label: "Background", Variable: "--background-color", Control: "background-color"},

	{Path: "fonts.heading", Group: GroupFonts, Key: "heading", Kind: KindFont, Label: "Heading font", Variable: "--heading-font", Control: "heading-font"},
	{Path: "fonts.body", Group: GroupFonts, Key: "body", Kind: KindFont, Label: "Body font", Variable: "--body-font", Control: "body-font"},

	{Path: "content.logoText", Group: GroupContent, Key: "logoText", Kind: KindText, Label: "Logo text", Marker: "logo-text", Control: "logo-text"},
	{Path: "content.heroTitle", Group: GroupContent, Key: "heroTitle", Kind: KindText, Label: "Hero title", Marker: "hero-title", Control: "hero-title", LineBreaks: true},
	{Path: "content.productName", Group: GroupContent, Key: "productName", Kind: KindText, Label: "Product name", Marker: "product-name", Control: "product-name"},
	{Path: "content.productDescription", Group: GroupContent, Key: "productDescription", Kind: KindText, Label: "Product description", Marker: "product-description", Control: "product-description"},
	{Path: "content.ctaText", Group: GroupContent, Key: "ctaText", Kind: KindText, Label: "Button text", Marker: "cta-button", Control: "cta-text"},
	{Path: "content.featuresTitle", Group: GroupContent, Key: "featuresTitle", Kind: KindText, Label: "Features title", Marker: "features-title", Control: "features-title"},

	{Path: "components.header", Group: GroupComponents, Key: "header", Kind: KindVisibility, Label: "Header", Marker: "header", Control: "show-header"},
	{Path: "components.hero", Group: GroupComponents, Key: "hero", Kind: KindVisibility, Label: "Hero", Marker: "hero", Control: "show-hero"},
	{Path: "components.productIntro", Group: GroupComponents, Key: "productIntro", Kind: KindVisibility, Label: "Product intro", Marker: "product-intro", Control: "show-product-intro"},
	{Path: "components.productDetail", Group: GroupComponents, Key: "productDetail", Kind: KindVisibility, Label: "Product detail", Marker: "product-detail", Control: "show-product-detail"},
	{Path: "components.features", Group: GroupComponents, Key: "features", Kind: KindVisibility, Label: "Features", Marker: "features", Control: "show-features"},
	{Path: "components.footer", Group: GroupComponents, Key: "footer", Kind: KindVisibility, Label: "Footer", Marker: "footer", Control: "show-footer"},

	{Path: "images.hero-image", Group: GroupImages, Key: "hero-image", Kind: KindImage, Label: "Hero image", Marker: "hero-image", Control: "hero-image-upload", SlotType: SlotHero},
	{Path: "images.product-image", Group: GroupImages, Key: "product-image", Kind: KindImage, Label: "Product image", Marker: "product-image", Control: "product-image-upload", SlotType: SlotProduct},
	{Path: "images.feature-icon-1", Group: GroupImages, Key: "feature-icon-1", Kind: KindImage, Label: "Feature icon 1", Marker: "feature-icon-1", Control: "feature-icon-1-upload", SlotType: SlotIcon},
	{Path: "images.feature-icon-2", Group: GroupImages, Key: "feature-icon-2", Kind: KindImage, Label: "Feature icon 2", Marker: "feature-icon-2", Control: "feature-icon-2-upload", SlotType: SlotIcon},
	{Path: "images.feature-icon-3", Group: GroupImages, Key: "feature-icon-3", Kind: KindImage, Label: "Feature icon 3", Marker: "feature-icon-3", Control: "feature-icon-3-upload", SlotType: SlotIcon},
}

var (
	byPath    = index(func(f Field) string { return f.Path })
	byControl = index(func(f Field) string { return f.Control })
	byMarker  = index(func(f Field) string { return f.Marker })
)

func index(key func(Field) string) map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		if k := key(f); k != "" {
			m[k] = f
		}
	}
	return m
}

// Fields returns the field table in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldsOf returns the fields of one kind in display order.
func FieldsOf(kind Kind) []Field {
	var out []Field
	for _, f := range fields {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Lookup finds a field by config path.
func Lookup(path string) (Field, bool) {
	f, ok := byPath[path]
	return f, ok
}

// LookupControl finds a field by editor control id.
func LookupControl(id string) (Field, bool) {
	f, ok := byControl[id]
	return f, ok
}

// LookupMarker finds a field by preview marker.
func LookupMarker(marker string) (Field, bool) {
	f, ok := byMarker[marker]
	return f, ok
}

// ImageSlot finds an image slot by name, e.g. "hero-image".
func ImageSlot(name string) (Field, bool) {
	f, ok := byPath[GroupImages+"."+name]
	return f, ok
}
