package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vanskyhawk/kanban/internal/config"
)

var ErrAINotConfigured = errors.New("OpenAI API key not configured")

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

const promptSystemMessage = `You are an AI assistant that helps developers create detailed prompts for an AI coding assistant.
Your job is to take a feature title and optional notes from a kanban card and transform it into a clear, detailed prompt that can be given to the coding assistant to implement that feature.

The prompt should:
- Be specific and actionable
- Include technical details when relevant
- Break down complex features into clear steps
- Include any relevant context from the notes
- Be written in a clear, professional tone

Keep the prompt concise but comprehensive, typically 2-5 sentences.`

// PromptService turns a card's title and notes into an implementation
// prompt via the OpenAI chat completions API.
type PromptService struct {
	cfg    *config.Config
	client *http.Client
	apiURL string
}

func NewPromptService(cfg *config.Config) *PromptService {
	return &PromptService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.AITimeout},
		apiURL: openAIChatURL,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces an implementation prompt for the given card content.
func (s *PromptService) Generate(ctx context.Context, title, notes string) (string, error) {
	if s.cfg.OpenAIAPIKey == "" {
		return "", ErrAINotConfigured
	}

	userMessage := "Feature Title: " + title
	if notes != "" {
		userMessage += "\n\nAdditional Context: " + notes
	}
	userMessage += "\n\nGenerate a prompt I can give to the coding assistant to implement this feature."

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.OpenAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: promptSystemMessage},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.OpenAIAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("openai error: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("openai returned no content")
	}
	return parsed.Choices[0].Message.Content, nil
}
