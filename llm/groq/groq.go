// Package groq implements llm.Client using the Groq Chat Completions API.
// Groq exposes an OpenAI-compatible endpoint, so the wire format matches
// the Chat Completions schema.
package groq

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DakshC17/reciperecommendation/llm"
)

// Client implements llm.Client using the Groq Chat Completions API.
type Client struct {
	apiKey string
	model  string
	client *http.Client
}

// New creates a client for the Groq API.
// Model defaults to "llama3-70b-8192" if empty.
func New(apiKey, model string) *Client {
	if model == "" {
		model = "llama3-70b-8192"
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 15 * time.Second},
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
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	err := llm.DoJSONRoundTrip(ctx, c.client, "POST", "https://api.groq.com/openai/v1/chat/completions",
		map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + c.apiKey,
		},
		reqBody, &result)
	if err != nil {
		return "", fmt.Errorf("groq API: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response from Groq API")
	}
	return result.Choices[0].Message.Content, nil
}
