package imagegen

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

const stockKeywords = 3

// StockProvider builds keyword search URLs for a stock photo service.
type StockProvider struct {
	baseURL string
}

// NewStockProvider returns a provider rooted at baseURL.
func NewStockProvider(baseURL string) *StockProvider {
	return &StockProvider{baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *StockProvider) Name() string { return ProviderStock }

// Generate searches by the first three words of the prompt.
func (p *StockProvider) Generate(_ context.Context, prompt string, slot templateconfig.SlotType, _ string) (string, error) {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return "", ErrEmptyPrompt
	}
	words = words[:min(len(words), stockKeywords)]
	size := DisplaySize(slot)
	return fmt.Sprintf("%s/%dx%d/?%s", p.baseURL, size.Width, size.Height,
		url.QueryEscape(strings.Join(words, ","))), nil
}
