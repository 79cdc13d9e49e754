package service

import (
	"context"
	"fmt"
	"strings"

	"faqbot/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAICompleter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAICompleter(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAICompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	logger.Info("Using OpenAI model", zap.String("model", model))

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt, systemInstruction string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	return content, nil
}
