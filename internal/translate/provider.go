package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/houhuawei23/text-processing-tool/internal/config"
)

// chatRequest is the OpenAI-compatible chat completion payload both
// supported providers accept
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Service) callProvider(ctx context.Context, svc config.ServiceConfig, text, prompt string, timeout time.Duration) (string, error) {
	fullPrompt := fmt.Sprintf("%s\n\nText to translate:\n```%s```", prompt, text)

	// Scale the completion budget with input length, within bounds
	maxTokens := len(text) * 2
	if maxTokens < 2000 {
		maxTokens = 2000
	}
	if maxTokens > 8000 {
		maxTokens = 8000
	}

	body, err := json.Marshal(chatRequest{
		Model:       svc.Model,
		Messages:    []chatMessage{{Role: "user", Content: fullPrompt}},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("invalid provider response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("provider error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
