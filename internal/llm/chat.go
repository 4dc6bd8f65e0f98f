// internal/llm/chat.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	"planflow/internal/common/errors"
	"planflow/internal/common/http"
	"planflow/internal/common/logger"
)

// ChatConfig configures one OpenAI-compatible chat-completions backend
// (Groq exposes this shape).
type ChatConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatClient implements Client against a chat-completions endpoint. One
// instance per tier; the shared transport is injected.
type ChatClient struct {
	config ChatConfig
	client *http.Client
	logger logger.Logger
}

func NewChatClient(config ChatConfig, client *http.Client, log logger.Logger) *ChatClient {
	return &ChatClient{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{
			"model": config.Model,
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends the prompt as a single user message and returns the first
// choice's content. There is no retry here: one call per tier, and the
// caller's context carries the per-tier deadline.
func (c *ChatClient) Invoke(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature:    c.config.Temperature,
		MaxTokens:      c.config.MaxTokens,
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	resp, err := c.client.PostJSON(ctx, strings.TrimRight(c.config.BaseURL, "/")+"/chat/completions", headers, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.NewModelTimeoutError(ctx.Err().Error())
		}
		return "", errors.NewModelUnavailableError(err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == nethttp.StatusTooManyRequests:
		return "", errors.NewModelRateLimitedError(fmt.Sprintf("model %s: status 429", c.config.Model))
	case resp.StatusCode == nethttp.StatusRequestTimeout || resp.StatusCode == nethttp.StatusGatewayTimeout:
		return "", errors.NewModelTimeoutError(fmt.Sprintf("model %s: status %d", c.config.Model, resp.StatusCode))
	case resp.StatusCode >= 500:
		return "", errors.NewModelUnavailableError(fmt.Sprintf("model %s: status %d", c.config.Model, resp.StatusCode))
	case resp.StatusCode != nethttp.StatusOK:
		return "", errors.NewModelMalformedError(fmt.Sprintf("model %s: unexpected status %d", c.config.Model, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.NewModelTimeoutError(ctx.Err().Error())
		}
		return "", errors.NewModelUnavailableError(fmt.Sprintf("read body: %v", err))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.NewModelMalformedError(fmt.Sprintf("decode reply: %v", err))
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errors.NewModelMalformedError("reply contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
