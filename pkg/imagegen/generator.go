package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/emailcraft/pkg/logger"
	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

// Image is a generated image.
type Image struct {
	Provider string
	// SourceURL is where the provider put the image.
	SourceURL string
	// Src is a data URL, or SourceURL when inlining failed.
	Src string
	// Inlined reports whether Src is a data URL.
	Inlined bool
}

// Generator dispatches requests to providers.
type Generator struct {
	providers       map[string]Provider
	defaultProvider string
	fetcher         *Fetcher
	log             *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithProvider adds or replaces a provider under its name.
func WithProvider(p Provider) Option {
	return func(g *Generator) {
		g.providers[p.Name()] = p
	}
}

// WithFetcher replaces the fetcher used to inline results.
func WithFetcher(f *Fetcher) Option {
	return func(g *Generator) {
		g.fetcher = f
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// New returns a generator with the built-in providers configured from cfg.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		providers: map[string]Provider{
			ProviderPlaceholder: NewPlaceholderProvider(cfg.PlaceholderURL),
			ProviderStock:       NewStockProvider(cfg.StockURL),
			ProviderOpenAI: NewOpenAIProvider(OpenAIConfig{
				APIKey:     cfg.OpenAIAPIKey,
				Model:      cfg.OpenAIModel,
				BaseURL:    cfg.OpenAIBaseURL,
				HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
			}),
		},
		defaultProvider: cfg.DefaultProvider,
		fetcher:         NewFetcher(&http.Client{Timeout: cfg.FetchTimeout}, cfg.MaxImageSize),
		log:             logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.defaultProvider == "" {
		g.defaultProvider = ProviderPlaceholder
	}
	g.log = g.log.With(logger.Component("imagegen"))
	return g
}

// Providers lists the registered provider names in sorted order.
func (g *Generator) Providers() []string {
	return slices.Sorted(maps.Keys(g.providers))
}

// Generate validates req, asks the provider for an image and inlines it.
func (g *Generator) Generate(ctx context.Context, req Request) (Image, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := validator.Apply(validator.Required("prompt", req.Prompt)); err != nil {
		return Image{}, errors.Join(ErrEmptyPrompt, err)
	}
	name := req.Provider
	if name == "" {
		name = g.defaultProvider
	}
	p, ok := g.providers[name]
	if !ok {
		return Image{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	start := time.Now()
	src, err := p.Generate(ctx, req.Prompt, req.Slot, req.APIKey)
	if err != nil {
		g.log.WarnContext(ctx, "image generation failed",
			logger.Provider(name),
			logger.Error(err),
			logger.Duration(time.Since(start)),
		)
		return Image{}, err
	}

	img := Image{Provider: name, SourceURL: src, Src: src}
	if data, err := g.fetcher.DataURL(ctx, src); err != nil {
		g.log.WarnContext(ctx, "keeping image URL, inlining failed",
			logger.Provider(name),
			logger.Error(err),
		)
	} else {
		img.Src, img.Inlined = data, true
	}

	g.log.InfoContext(ctx, "image generated",
		logger.Provider(name),
		slog.Bool("inlined", img.Inlined),
		logger.Duration(time.Since(start)),
	)
	return img, nil
}
