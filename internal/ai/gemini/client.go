// Package gemini implements expense extraction and the finance assistant on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultTimeout = 10 * time.Second

// generator is the part of *genai.GenerativeModel the client relies on.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	client    *genai.Client
	extractor generator
	chat      generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewClient connects to Gemini and prepares one model for extraction and one for chat.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}

	extractor := client.GenerativeModel(cfg.Model)
	extractor.SetTemperature(0.1)
	extractor.ResponseMIMEType = "application/json"

	chat := client.GenerativeModel(cfg.Model)
	chat.SetTemperature(0.2)

	logger.Info("Gemini client initialized", "model", cfg.Model)
	c := newClient(extractor, chat, cfg.Timeout, logger)
	c.client = client
	return c, nil
}

func newClient(extractor, chat generator, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		extractor: extractor,
		chat:      chat,
		timeout:   timeout,
		logger:    logger,
	}
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// generate runs one call under the client timeout and returns the text parts of the first
// candidate.
func (c *Client) generate(ctx context.Context, model generator, prompt string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	c.logger.DebugContext(ctx, "gemini call finished", "duration_ms", time.Since(start).Milliseconds())

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			texts = append(texts, string(txt))
		}
	}
	return texts, nil
}

// stripFences removes a Markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
