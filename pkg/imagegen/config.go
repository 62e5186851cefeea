package imagegen

import "time"

// Config holds provider endpoints and credentials.
type Config struct {
	DefaultProvider string        `env:"IMAGEGEN_DEFAULT_PROVIDER" envDefault:"placeholder"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIModel     string        `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	PlaceholderURL  string        `env:"IMAGEGEN_PLACEHOLDER_URL" envDefault:"https://via.placeholder.com"`
	StockURL        string        `env:"IMAGEGEN_STOCK_URL" envDefault:"https://source.unsplash.com"`
	RequestTimeout  time.Duration `env:"IMAGEGEN_REQUEST_TIMEOUT" envDefault:"60s"`
	FetchTimeout    time.Duration `env:"IMAGEGEN_FETCH_TIMEOUT" envDefault:"20s"`
	MaxImageSize    int64         `env:"IMAGEGEN_MAX_IMAGE_SIZE" envDefault:"10485760"`
}

// DefaultConfig returns the settings used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		DefaultProvider: ProviderPlaceholder,
		OpenAIModel:     "dall-e-3",
		OpenAIBaseURL:   "https://api.openai.com/v1",
		PlaceholderURL:  "https://via.placeholder.com",
		StockURL:        "https://source.unsplash.com",
		RequestTimeout:  60 * time.Second,
		FetchTimeout:    20 * time.Second,
		MaxImageSize:    10 << 20,
	}
}
