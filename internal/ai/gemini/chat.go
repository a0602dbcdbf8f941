package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/finflow/internal/assistant"
)

var ErrEmptyAnswer = errors.New("empty AI response")

func chatPrompt(req assistant.ChatRequest) (string, error) {
	contextJSON, err := json.Marshal(req.Context)
	if err != nil {
		return "", fmt.Errorf("encode chat context: %w", err)
	}

	return strings.Join([]string{
		"You are FinFlow AI, a concise personal finance assistant.",
		"Always answer in plain text and be practical.",
		"Currency is Rs. Use amounts from provided context only.",
		"If context is insufficient, say what is missing and suggest one follow-up question.",
		"Keep response under 140 words.",
		"",
		"User question: " + strings.TrimSpace(req.Question),
		"",
		"Finance context JSON:",
		string(contextJSON),
	}, "\n"), nil
}

// Chat answers a question about the user's finances.
func (c *Client) Chat(ctx context.Context, req assistant.ChatRequest) (string, error) {
	prompt, err := chatPrompt(req)
	if err != nil {
		return "", err
	}

	texts, err := c.generate(ctx, c.chat, prompt)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(strings.Join(texts, "\n"))
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
