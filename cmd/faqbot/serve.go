package main

import (
	"context"
	"os/signal"
	"syscall"

	"faqbot/internal/api"
	"faqbot/internal/api/handlers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title Iron Lady FAQ Bot API
// @version 1.0
// @description FAQ chatbot for Iron Lady leadership programs

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and chat widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			chatHandler := handlers.NewChatHandler(a.chat, a.responses, a.cfg.Chat.DefaultFormat, a.logger)
			knowledgeHandler := handlers.NewKnowledgeHandler(a.kb, a.chat)
			server := api.SetupRouter(chatHandler, knowledgeHandler, &a.cfg.Server, a.logger)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				addr := ":" + a.cfg.Server.Port
				a.logger.Info("Server starting", zap.String("address", addr))
				return server.Listen(addr)
			})
			g.Go(func() error {
				<-ctx.Done()
				a.logger.Info("Shutting down server")
				return server.Shutdown()
			})

			if err := g.Wait(); err != nil && err != context.Canceled {
				a.logger.Error("Server stopped with error", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
