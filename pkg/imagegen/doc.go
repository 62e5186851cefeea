// Package imagegen produces images for template slots from a text prompt.
//
// Three providers are built in:
//
//   - placeholder – a solid-color placeholder image service
//   - stock       – a keyword-based stock photo service
//   - openai      – the OpenAI image generation API (needs an API key)
//
// Every provider returns an image URL. The Generator validates the prompt,
// picks the provider, sizes the request for the slot (icons are small, hero
// and product images are large) and converts the URL into a data URL so the
// exported template does not depend on the provider. When the conversion
// fails the URL is used as is.
//
// Basic usage:
//
//	gen := imagegen.New(cfg, imagegen.WithLogger(log))
//	img, err := gen.Generate(ctx, imagegen.Request{
//		Provider: imagegen.ProviderStock,
//		Slot:     templateconfig.SlotHero,
//		Prompt:   imagegen.DefaultPrompt(templateconfig.SlotHero),
//	})
package imagegen
