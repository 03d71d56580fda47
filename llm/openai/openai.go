// Package openai implements llm.Client using the OpenAI Chat Completions
// API. It is the fallback provider when no Groq key is configured.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DakshC17/reciperecommendation/llm"
)

// Client implements llm.Client using the OpenAI Chat Completions API.
type Client struct {
	apiKey string
	model  string
	client *http.Client
}

// New creates a client for the OpenAI API.
// Model defaults to "gpt-4o-mini" if empty.
func New(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	reqBody := map[string]any{
		"model": c.model,
		// Classification and recipe payloads are small JSON objects.
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	err := llm.DoJSONRoundTrip(ctx, c.client, "POST", "https://api.openai.com/v1/chat/completions",
		map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + c.apiKey,
		},
		reqBody, &result)
	if err != nil {
		return "", fmt.Errorf("openai API: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI API")
	}
	return result.Choices[0].Message.Content, nil
}
