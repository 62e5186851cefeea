package imagegen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

// PlaceholderColors are the background colors placeholders pick from.
var PlaceholderColors = []string{"667eea", "764ba2", "f093fb", "4facfe"}

// PlaceholderProvider builds placeholder image URLs. It makes no requests.
type PlaceholderProvider struct {
	baseURL string
	pick    func(n int) int
}

// NewPlaceholderProvider returns a provider rooted at baseURL.
func NewPlaceholderProvider(baseURL string) *PlaceholderProvider {
	return &PlaceholderProvider{baseURL: strings.TrimRight(baseURL, "/"), pick: rand.IntN}
}

func (p *PlaceholderProvider) Name() string { return ProviderPlaceholder }

// Generate ignores the prompt; the image only carries a caption.
func (p *PlaceholderProvider) Generate(_ context.Context, _ string, slot templateconfig.SlotType, _ string) (string, error) {
	size := DisplaySize(slot)
	color := PlaceholderColors[p.pick(len(PlaceholderColors))]
	return fmt.Sprintf("%s/%dx%d/%s/ffffff?text=Generated+Image", p.baseURL, size.Width, size.Height, color), nil
}
