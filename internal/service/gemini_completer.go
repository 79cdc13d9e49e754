package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"faqbot/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiCompleter struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiCompleter(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	logger.Info("Using Gemini model", zap.String("model", model))

	return &GeminiCompleter{client: client, model: model, logger: logger}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, prompt, systemInstruction string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	content := strings.TrimSpace(resp.Text())
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	return content, nil
}
