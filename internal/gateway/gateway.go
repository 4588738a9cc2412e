package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	GROQ_BASE_URL = "https://api.groq.com/openai/v1"

	MODEL_REQUEST_TIMEOUT   = 20 * time.Second
	MODEL_CALL_MAX_ATTEMPTS = 3
	MODEL_CALL_BACKOFF_STEP = 700 * time.Millisecond
	MODEL_MAX_TOKENS        = 900

	SYSTEM_PROMPT = "You are a JSON-only political bias API."
)

type Config struct {
	APIKey        string
	BaseURL       string
	ModelOverride string
	HTTPClient    *http.Client
}

// Client talks to Groq's OpenAI-compatible API: model discovery plus
// JSON-only bias completions. Retries are handled here, not in the SDK.
type Client struct {
	client *openai.Client
	model  *ModelConfig
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GROQ_BASE_URL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: MODEL_REQUEST_TIMEOUT}
	}

	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithHTTPClient(cfg.HTTPClient),
			option.WithMaxRetries(0),
		),
		model: NewModelConfig(cfg.ModelOverride),
	}, nil
}

func NewFromEnv() (*Client, error) {
	return New(Config{
		APIKey:        os.Getenv("GROQ_API_KEY"),
		BaseURL:       os.Getenv("GROQ_BASE_URL"),
		ModelOverride: os.Getenv("GROQ_MODEL"),
	})
}

// Model exposes the model id holder, mainly so health monitoring can
// force re-resolution.
func (c *Client) Model() *ModelConfig { return c.model }

// ResolveModel returns the model id completions should use, discovering
// one from the model list on first use.
func (c *Client) ResolveModel(ctx context.Context) (string, error) {
	if id, ok := c.model.Current(); ok {
		return id, nil
	}

	page, err := c.client.Models.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing models: %w", err)
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}

	id := preferredModel(ids)
	if id == "" {
		return "", ErrNoModels
	}

	c.model.Store(id)
	slog.Info("[Gateway] Resolved completion model", slog.String("model", id))
	return id, nil
}

// Complete sends the prompt and returns the raw completion content.
// Blank content counts as a failure. After every attempt is used up the
// last error comes back wrapped as a ModelCallError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= MODEL_CALL_MAX_ATTEMPTS; attempt++ {
		modelID, err := c.ResolveModel(ctx)
		if err != nil {
			lastErr = err
		} else {
			content, err := c.complete(ctx, modelID, prompt)
			if err == nil {
				return content, nil
			}
			lastErr = err
		}

		if attempt < MODEL_CALL_MAX_ATTEMPTS {
			slog.Warn("[Gateway] Model call failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", lastErr.Error()))
			time.Sleep(MODEL_CALL_BACKOFF_STEP * time.Duration(attempt))
		}
	}

	return "", &ModelCallError{Err: lastErr}
}

func (c *Client) complete(ctx context.Context, modelID, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SYSTEM_PROMPT),
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(openai.ChatModel(modelID)),
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(MODEL_MAX_TOKENS),
	})
	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("empty model response")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty model response")
	}
	return content, nil
}

// Ping verifies the model API answers a listing call. Used by the worker
// health monitor.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.Models.List(ctx)
	return err
}
