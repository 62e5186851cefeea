package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/emailcraft/pkg/templateconfig"
)

// OpenAIProvider generates images with the OpenAI images API.
type OpenAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// OpenAIConfig configures the OpenAI provider.
type OpenAIConfig struct {
	// APIKey is the default credential; requests may carry their own.
	APIKey string
	// Model defaults to dall-e-3.
	Model string
	// BaseURL defaults to https://api.openai.com/v1.
	BaseURL string
	// HTTPClient defaults to a client with a 60s timeout.
	HTTPClient *http.Client
}

// NewOpenAIProvider returns a provider. The API key may be empty when every
// request supplies one.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	d := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = d.OpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = d.OpenAIBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: d.RequestTimeout}
	}
	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  cfg.HTTPClient,
	}
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// Generate requests one image and returns its URL.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, slot templateconfig.SlotType, apiKey string) (string, error) {
	if apiKey == "" {
		apiKey = p.apiKey
	}
	if apiKey == "" {
		return "", ErrAPIKeyRequired
	}

	size := "1024x1024"
	if slot == templateconfig.SlotIcon {
		size = "256x256"
	}
	body, err := json.Marshal(openAIRequest{Model: p.model, Prompt: prompt, N: 1, Size: size})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openAIErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
			if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(errResp.Error.Message, "rate limit") {
				return "", fmt.Errorf("%w: %w: %s", ErrGenerationFailed, ErrRateLimitExceeded, errResp.Error.Message)
			}
			return "", &APIError{Status: resp.StatusCode, Message: errResp.Error.Message}
		}
		return "", &APIError{Status: resp.StatusCode}
	}

	var out openAIResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %w", ErrGenerationFailed, err)
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return out.Data[0].URL, nil
}

// APIError is a non-2xx answer from the images API. Message is the API's
// own explanation when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrGenerationFailed, e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return ErrGenerationFailed }

type openAIRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type openAIResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
