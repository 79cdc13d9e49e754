package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"faqbot/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

var (
	ErrNetwork           = errors.New("completion request failed")
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Completer is a remote text-completion endpoint consulted when local
// matching finds nothing.
type Completer interface {
	Complete(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// NewCompleter builds the completer selected by cfg.Provider. It returns a nil
// Completer for ProviderNone.
func NewCompleter(ctx context.Context, cfg *config.CompletionConfig, logger *zap.Logger) (Completer, func(), error) {
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, func() {}, nil
	case config.ProviderGigaChat:
		c, err := NewGigaChatCompleter(ctx, &cfg.GigaChat, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case config.ProviderOpenAI:
		return NewOpenAICompleter(&cfg.OpenAI, logger), func() {}, nil
	case config.ProviderGemini:
		c, err := NewGeminiCompleter(ctx, &cfg.Gemini, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

// GigaChatCompleter talks to the GigaChat API through gigago.
type GigaChatCompleter struct {
	client    *gigago.Client
	modelName string
	logger    *zap.Logger
}

func NewGigaChatCompleter(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatCompleter, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, gigago.WithCustomURLAI(cfg.BaseURL))
	}
	if cfg.AuthURL != "" {
		opts = append(opts, gigago.WithCustomURLOauth(cfg.AuthURL))
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "GigaChat"
	}
	logger.Info("Using GigaChat model", zap.String("model", modelName))

	return &GigaChatCompleter{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

func (c *GigaChatCompleter) Complete(ctx context.Context, prompt, systemInstruction string) (string, error) {
	// A model value per call keeps the instruction out of shared state.
	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.3

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := model.Generate(ctx, messages)
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

func (c *GigaChatCompleter) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
