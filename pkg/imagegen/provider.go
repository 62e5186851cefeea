package imagegen

import (
	"context"

	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

// Provider names.
const (
	ProviderPlaceholder = "placeholder"
	ProviderStock       = "stock"
	ProviderOpenAI      = "openai"
)

// Size is the pixel size of a generated image.
type Size struct {
	Width  int
	Height int
}

// Request asks a provider for one image.
type Request struct {
	Provider string
	Slot     templateconfig.SlotType
	Prompt   string
	// APIKey overrides the configured credential for providers that need one.
	APIKey string
}

// Provider turns a prompt into an image URL.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, slot templateconfig.SlotType, apiKey string) (string, error)
}

// DisplaySize is the size placeholder and stock images are requested at.
func DisplaySize(slot templateconfig.SlotType) Size {
	if slot == templateconfig.SlotIcon {
		return Size{Width: 60, Height: 60}
	}
	return Size{Width: 600, Height: 400}
}

// DefaultPrompt returns the prompt the editor suggests for a slot type.
func DefaultPrompt(slot templateconfig.SlotType) string {
	switch slot {
	case templateconfig.SlotHero:
		return "A luxury smartwatch on a wrist, modern and elegant, professional product photography"
	case templateconfig.SlotProduct:
		return "Close-up of a smartwatch device, sleek design, high quality product shot"
	default:
		return "Simple minimalist icon, flat design, modern"
	}
}
