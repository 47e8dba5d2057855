package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"google.golang.org/genai"

	"github.com/heartmarshall/writeassist-backend/internal/config"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

// SDKClient implements the AI client on top of the official genai SDK.
// A genai.Client is bound to one API key, so one is built per call.
type SDKClient struct {
	baseURL         string
	model           string
	maxOutputTokens int32
	httpClient      *http.Client
	log             *slog.Logger
}

// NewSDKClient creates an SDKClient from the gemini config section.
func NewSDKClient(cfg config.GeminiConfig, logger *slog.Logger) *SDKClient {
	return &SDKClient{
		baseURL:         cfg.BaseURL,
		model:           cfg.Model,
		maxOutputTokens: int32(cfg.MaxOutputTokens),
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		log:             logger.With("adapter", "gemini-sdk"),
	}
}

// Generate has the same contract as Client.Generate.
func (c *SDKClient) Generate(ctx context.Context, prompt string, temperature float64, cred domain.UserCredential) (string, error) {
	if !cred.HasAPIKey() {
		return "", domain.ErrCredentialMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cred.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL + "/"},
	})
	if err != nil {
		return "", fmt.Errorf("gemini sdk: create client: %w", err)
	}

	temp := float32(temperature)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	res, err := client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: c.maxOutputTokens,
	})
	if err != nil {
		return "", c.mapError(ctx, err)
	}

	text := res.Text()
	if text == "" {
		return "", domain.NewProviderError("")
	}

	c.log.DebugContext(ctx, "gemini sdk response", slog.Int("completion_len", len(text)))
	return text, nil
}

func (c *SDKClient) mapError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		c.log.ErrorContext(ctx, "gemini sdk request failed", slog.String("error", redact(err)))
		return fmt.Errorf("gemini sdk: %w", domain.ErrNetwork)
	}
	c.log.WarnContext(ctx, "gemini sdk error response", slog.String("error", err.Error()))
	return domain.NewProviderError(err.Error())
}
