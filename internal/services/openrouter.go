package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"licitaciones-backend/internal/config"
	"licitaciones-backend/internal/models"
)

// OpenRouterClient talks to the OpenRouter chat-completions endpoint.
// It makes exactly one attempt per call.
type OpenRouterClient struct {
	apiKey  string
	url     string
	referer string
	title   string
	client  *http.Client
}

func NewOpenRouterClient(cfg *config.Config) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:  cfg.APIKey,
		url:     cfg.OpenRouterURL,
		referer: cfg.AppReferer,
		title:   cfg.AppTitle,
		client:  &http.Client{Timeout: cfg.UpstreamTimeout},
	}
}

func (c *OpenRouterClient) Complete(ctx context.Context, payload models.ChatCompletionPayload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	log.Ctx(ctx).Debug().
		Str("model", payload.Model).
		Str("url", c.url).
		Msg("sending request to OpenRouter")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
