// Package gemini calls the Gemini generateContent endpoint on behalf of a user.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/writeassist-backend/internal/config"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

// maxResponseBytes caps how much of a completion response is read.
const maxResponseBytes = 4 << 20

// Client is the REST implementation of the AI client.
type Client struct {
	baseURL         string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	log             *slog.Logger
}

// NewClient creates a REST Client from the gemini config section.
func NewClient(cfg config.GeminiConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:         cfg.BaseURL,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		log:             logger.With("adapter", "gemini"),
	}
}

// Generate sends prompt as a single user turn and returns the raw completion.
// It makes exactly one attempt.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64, cred domain.UserCredential) (string, error) {
	if !cred.HasAPIKey() {
		return "", domain.ErrCredentialMissing
	}

	body, err := json.Marshal(newGenerateRequest(prompt, temperature, c.maxOutputTokens))
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(cred.APIKey), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "gemini request",
		slog.String("model", c.model),
		slog.Float64("temperature", temperature),
		slog.Int("prompt_len", len(prompt)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "gemini request failed", slog.String("error", redact(err)))
		return "", fmt.Errorf("gemini: %w", domain.ErrNetwork)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.log.ErrorContext(ctx, "gemini read body failed", slog.String("error", redact(err)))
		return "", fmt.Errorf("gemini: %w", domain.ErrNetwork)
	}

	text, err := parseResponse(raw)
	if err != nil {
		c.log.WarnContext(ctx, "gemini error response",
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	c.log.DebugContext(ctx, "gemini response",
		slog.Int("status", resp.StatusCode),
		slog.Int("completion_len", len(text)),
	)

	return text, nil
}

func (c *Client) endpoint(apiKey string) string {
	return c.baseURL + "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent?key=" + url.QueryEscape(apiKey)
}

// parseResponse extracts the completion text. A provider error envelope wins
// over the HTTP status; anything without a completion is an invalid response.
func parseResponse(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", domain.NewProviderError("")
	}

	if msg := gjson.GetBytes(raw, pathErrorMessage); msg.Exists() {
		return "", domain.NewProviderError(msg.String())
	}

	text := gjson.GetBytes(raw, pathText)
	if !text.Exists() || text.Type != gjson.String {
		return "", domain.NewProviderError("")
	}

	return text.String(), nil
}

// redact drops the request URL from transport errors; it carries the API key.
func redact(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Op + ": " + urlErr.Err.Error()
	}
	return err.Error()
}
