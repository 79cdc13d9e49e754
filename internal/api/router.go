package api

import (
	"os"
	"path/filepath"

	"faqbot/docs"
	"faqbot/internal/api/handlers"
	"faqbot/pkg/config"
	"faqbot/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	cfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "faqbot",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// importing docs registers the swagger document through its init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", knowledgeHandler.Health)

	if staticPath := findWebStaticPath(cfg.StaticDir, appLogger); staticPath != "" {
		appLogger.Info("Serving chat widget", zap.String("path", staticPath))
		app.Static("/static", staticPath)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(staticPath, "index.html"))
		})
	} else {
		appLogger.Warn("Web static directory not found, chat widget will not be served")
	}

	v1 := app.Group("/api/v1")
	v1.Get("/faqs", knowledgeHandler.ListFaqs)
	v1.Post("/ask", chatHandler.Ask)

	sessions := v1.Group("/sessions")
	sessions.Post("", chatHandler.CreateSession)
	sessions.Delete("/:id", chatHandler.DeleteSession)
	sessions.Get("/:id/messages", chatHandler.GetMessages)
	sessions.Post("/:id/messages", chatHandler.SendMessage)
	sessions.Delete("/:id/messages", chatHandler.ClearMessages)
	sessions.Get("/:id/export", chatHandler.ExportSession)

	return app
}

// findWebStaticPath returns configured if it holds an index.html, else the
// first web/static directory found relative to the working directory.
func findWebStaticPath(configured string, logger *zap.Logger) string {
	paths := []string{
		"./web/static",
		"../web/static",
		"../../web/static",
	}
	if configured != "" {
		paths = append([]string{configured}, paths...)
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried static path", zap.String("path", path))
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
