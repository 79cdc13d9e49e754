package main

import (
	"context"
	"fmt"

	"faqbot/internal/knowledge"
	"faqbot/internal/repository"
	"faqbot/internal/service"
	"faqbot/pkg/config"
	"faqbot/pkg/logger"
	"faqbot/pkg/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "faqbot",
		Short: "Iron Lady FAQ chatbot",
		Long: `faqbot answers questions about Iron Lady leadership programs.

It matches questions against a fixed FAQ list and keyword categories and, when
configured, falls back to an LLM completion provider.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newAskCmd(), newChatCmd())
	return root
}

// app holds everything a command needs, built once per process.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	kb        *knowledge.Base
	responses *service.ResponseService
	chat      *service.ChatService
	closers   []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger := logger.Get()
	a := &app{cfg: cfg, logger: appLogger, closers: []func(){logger.Sync}}

	a.kb, err = loadKnowledge(ctx, cfg, appLogger)
	if err != nil {
		a.Close()
		return nil, err
	}

	completer, closeCompleter, err := service.NewCompleter(ctx, &cfg.Completion, appLogger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize completion provider: %w", err)
	}
	a.closers = append(a.closers, closeCompleter)

	a.responses, err = service.NewResponseService(a.kb, completer, &cfg.Completion, nil, appLogger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.chat = service.NewChatService(a.responses, a.kb.Welcome(), &cfg.Chat, appLogger)
	a.closers = append(a.closers, a.chat.Close)

	appLogger.Info("FAQ bot ready",
		zap.String("knowledge_source", cfg.Knowledge.Source),
		zap.String("completion_provider", cfg.Completion.Provider),
		zap.Int("faqs", len(a.kb.ListFaqs())),
	)
	return a, nil
}

func loadKnowledge(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (*knowledge.Base, error) {
	switch cfg.Knowledge.Source {
	case config.KnowledgeSourceFile:
		kb, err := knowledge.LoadFile(cfg.Knowledge.Path)
		if err != nil {
			return nil, err
		}
		appLogger.Info("Knowledge base loaded from file", zap.String("path", cfg.Knowledge.Path))
		return kb, nil

	case config.KnowledgeSourcePostgres:
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		// The knowledge base is read once; the pool is not needed afterwards.
		defer db.Close()

		data, err := repository.NewKnowledgeRepository(db, appLogger).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load knowledge base: %w", err)
		}
		return knowledge.New(data)

	default:
		return knowledge.Default(), nil
	}
}
