package templateconfig

import "maps"

// Config groups.
const (
	GroupColors     = "colors"
	GroupFonts      = "fonts"
	GroupContent    = "content"
	GroupComponents = "components"
	GroupImages     = "images"
)

const defaultFont = "'Helvetica Neue', Helvetica, Arial, sans-serif"

// TemplateConfig is the full set of template settings. A decoded file may
// hold only some keys; see Merge.
type TemplateConfig struct {
	Colors     map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Fonts      map[string]string `json:"fonts,omitempty" yaml:"fonts,omitempty"`
	Content    map[string]string `json:"content,omitempty" yaml:"content,omitempty"`
	Components map[string]bool   `json:"components,omitempty" yaml:"components,omitempty"`
	Images     map[string]string `json:"images,omitempty" yaml:"images,omitempty"`
}

// Defaults returns the built-in template settings.
func Defaults() TemplateConfig {
	return TemplateConfig{
		Colors: map[string]string{
			"primary":    "#000000",
			"secondary":  "#ffffff",
			"text":       "#333333",
			"background": "#ffffff",
		},
		Fonts: map[string]string{
			"heading": defaultFont,
			"body":    defaultFont,
		},
		Content: map[string]string{
			"logoText":    "GANANCE",
			"heroTitle":   "MAKE YOUR FAVORITE\nWATCH SMART",
			"productName": "Ganance Heir (Pre-Order)",
			"productDescription": "Transform any traditional watch into a smart timepiece with the Ganance Heir. " +
				"Our innovative technology seamlessly integrates with your favorite watches, " +
				"adding smart features without compromising their classic design.",
			"ctaText":       "PRE-ORDER NOW",
			"featuresTitle": "Your Style. Our Tech.",
		},
		Components: map[string]bool{
			"header":        true,
			"hero":          true,
			"productIntro":  true,
			"productDetail": true,
			"features":      true,
			"footer":        true,
		},
		Images: map[string]string{},
	}
}

// Clone returns a deep copy.
func (c TemplateConfig) Clone() TemplateConfig {
	return TemplateConfig{
		Colors:     maps.Clone(c.Colors),
		Fonts:      maps.Clone(c.Fonts),
		Content:    maps.Clone(c.Content),
		Components: maps.Clone(c.Components),
		Images:     maps.Clone(c.Images),
	}
}

// Value returns the string form of the value at f, and whether it is set.
func (c TemplateConfig) Value(f Field) (string, bool) {
	switch f.Group {
	case GroupColors:
		v, ok := c.Colors[f.Key]
		return v, ok
	case GroupFonts:
		v, ok := c.Fonts[f.Key]
		return v, ok
	case GroupContent:
		v, ok := c.Content[f.Key]
		return v, ok
	case GroupComponents:
		v, ok := c.Components[f.Key]
		if !ok {
			return "", false
		}
		if v {
			return "true", true
		}
		return "false", true
	case GroupImages:
		v, ok := c.Images[f.Key]
		return v, ok && v != ""
	}
	return "", false
}

// set stores an already validated value.
func (c *TemplateConfig) set(f Field, value string, visible bool) {
	switch f.Group {
	case GroupColors:
		c.Colors = ensure(c.Colors)
		c.Colors[f.Key] = value
	case GroupFonts:
		c.Fonts = ensure(c.Fonts)
		c.Fonts[f.Key] = value
	case GroupContent:
		c.Content = ensure(c.Content)
		c.Content[f.Key] = value
	case GroupComponents:
		if c.Components == nil {
			c.Components = map[string]bool{}
		}
		c.Components[f.Key] = visible
	case GroupImages:
		c.Images = ensure(c.Images)
		if value == "" {
			delete(c.Images, f.Key)
			return
		}
		c.Images[f.Key] = value
	}
}

func ensure(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
