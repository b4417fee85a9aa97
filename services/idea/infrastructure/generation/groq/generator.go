// Package groq implements the idea generation capability against Groq's
// OpenAI-compatible chat completions API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ghuser/trendforge/pkg/config"
	"github.com/ghuser/trendforge/pkg/logger"
	"github.com/ghuser/trendforge/services/idea/domain"
	"github.com/ghuser/trendforge/services/idea/domain/models"
	domainsvcs "github.com/ghuser/trendforge/services/idea/domain/services"
)

const (
	maxAttempts    = 4
	retryBaseDelay = 500 * time.Millisecond

	promptTemplate = "Generate a simple, funny, and addictive video game idea based on the trend: '%s'. " +
		"Return ONLY a JSON object with the following properties: title, description, genre, platform. " +
		"Do not include any markdown formatting or extra text."
)

// Generator calls Groq chat completions and parses the reply into an IdeaDraft.
//
// Failure classification follows the domain taxonomy: HTTP 429/5xx, transport
// failures, and timeouts are transient and retried with bounded exponential
// backoff; when the attempts run out the error converts to
// ErrGenerationExhausted. A reply that does not parse into the required
// schema is ErrGenerationInvalid and never retried.
type Generator struct {
	client  *http.Client
	apiURL  string
	apiKey  string
	model   string
	timeout time.Duration
	log     logger.Logger
}

// New returns a Generator configured from cfg.
func New(cfg *config.Config, log logger.Logger) *Generator {
	return &Generator{
		client:  &http.Client{},
		apiURL:  cfg.GroqAPIURL,
		apiKey:  cfg.GroqAPIKey,
		model:   cfg.GroqModel,
		timeout: cfg.GenerationTimeout,
		log:     log,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type draftPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Platform    string `json:"platform"`
}

// Generate produces a draft for the trend, retrying transient backend
// failures up to 4 attempts with exponential backoff.
func (g *Generator) Generate(ctx context.Context, trend string) (*models.IdeaDraft, error) {
	var draft *models.IdeaDraft

	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(retryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		d, err := g.attempt(ctx, trend)
		if err != nil {
			if errors.Is(err, domain.ErrGenerationUnavailable) {
				g.log.WarnContext(ctx, "groq: transient generation failure, will retry",
					"trend", trend, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		draft = d
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrGenerationUnavailable) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %d attempts: %w", domain.ErrGenerationExhausted, maxAttempts, err)
		}
		return nil, err
	}
	return draft, nil
}

// attempt performs one generation call, bounded by the configured timeout.
func (g *Generator) attempt(ctx context.Context, trend string) (*models.IdeaDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:    g.model,
		Messages: []chatMessage{{Role: "user", Content: fmt.Sprintf(promptTemplate, trend)}},
	})
	if err != nil {
		return nil, fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrGenerationUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parsing
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", domain.ErrGenerationUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("groq: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("%w: decode completion: %w", domain.ErrGenerationInvalid, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", domain.ErrGenerationInvalid)
	}

	return parseDraft(chat.Choices[0].Message.Content)
}

// parseDraft extracts an IdeaDraft from the model's reply, tolerating the
// markdown code fences models emit despite instructions.
func parseDraft(content string) (*models.IdeaDraft, error) {
	cleaned := strings.ReplaceAll(content, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var payload draftPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: parse content: %w", domain.ErrGenerationInvalid, err)
	}

	draft := models.IdeaDraft{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Genre:       strings.TrimSpace(payload.Genre),
		Platform:    strings.TrimSpace(payload.Platform),
	}
	if err := domainsvcs.ValidateDraft(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationInvalid, err)
	}
	return &draft, nil
}
