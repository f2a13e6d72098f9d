// Package coach turns training history into chat replies by calling an
// OpenAI-compatible chat completions endpoint with a summary of the user's
// recent workouts as context.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lynx-zenchar/builtbuff/internal/analytics"
	"github.com/lynx-zenchar/builtbuff/internal/config"
	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// FallbackReply is returned when the upstream model cannot be reached, so
// the chat surface degrades instead of erroring.
const FallbackReply = "I'm having trouble connecting right now. Please try again in a moment."

const systemPromptHeader = "You are an experienced strength training coach. " +
	"Give specific, actionable advice grounded in the athlete's training history below. " +
	"Keep answers concise.\n\n"

// Client calls a chat completions endpoint such as Groq's.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	temp       float64
	httpClient *http.Client
}

// NewClient creates a Client from coach configuration.
func NewClient(cfg config.CoachConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		temp:       cfg.Temp,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends the user's message with their recent training summary as system
// context and returns the model's reply.
func (c *Client) Chat(ctx context.Context, message string, history []models.SetRecord) (string, error) {
	summary := analytics.Summarize(analytics.RecentRecords(history, analytics.RecentWindow))

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPromptHeader + summary},
			{Role: "user", Content: message},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temp,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("coach: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("coach: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("coach: chat completions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("coach: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("coach: chat completions returned %d: %s", resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("coach: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("coach: empty choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
