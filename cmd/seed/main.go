package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"faqbot/internal/knowledge"
	"faqbot/internal/repository"
	"faqbot/pkg/config"
	"faqbot/pkg/logger"
	"faqbot/pkg/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newSeedCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var file, cacheFile string
	var force bool

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Write the FAQ knowledge base into Postgres",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, file, cacheFile, force)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML knowledge base to seed (defaults to KNOWLEDGE_PATH, then the built-in data)")
	cmd.Flags().StringVar(&cacheFile, "cache", filepath.Join("cmd", "seed", ".seed_cache.json"), "where the hash of the last seeded data is kept")
	cmd.Flags().BoolVar(&force, "force", false, "seed even if the data has not changed")
	return cmd
}

func run(ctx context.Context, file, cacheFile string, force bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if file == "" {
		file = cfg.Knowledge.Path
	}
	data, err := loadData(file)
	if err != nil {
		return err
	}

	hash, err := dataHash(data)
	if err != nil {
		return err
	}
	cache, err := loadCache(cacheFile)
	if err != nil {
		return err
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := repository.NewKnowledgeRepository(db, appLogger)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	stored, err := repo.CountFaqs(ctx)
	if err != nil {
		return err
	}

	target := seedTarget(&cfg.Database)
	if upToDate(cache, hash, target, stored, force) {
		appLogger.Info("Knowledge base unchanged, skipping",
			zap.String("hash", hash),
			zap.String("target", target),
		)
		return nil
	}

	appLogger.Info("Seeding knowledge base",
		zap.String("source", sourceName(file)),
		zap.Int("faqs", len(data.Faqs)),
		zap.Int("categories", len(data.Categories)),
	)
	if err := repo.Replace(ctx, data); err != nil {
		return err
	}

	if err := saveCache(cacheFile, seedCache{Hash: hash, Target: target, SeededAt: time.Now().UTC()}); err != nil {
		appLogger.Warn("Failed to save seed cache", zap.Error(err))
	}

	appLogger.Info("Knowledge base seeded")
	return nil
}

// loadData returns the knowledge base at path, or the built-in one when path
// is empty. Either way it has passed knowledge.New validation.
func loadData(path string) (knowledge.Data, error) {
	if path == "" {
		return knowledge.Default().Data(), nil
	}
	kb, err := knowledge.LoadFile(path)
	if err != nil {
		return knowledge.Data{}, err
	}
	return kb.Data(), nil
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

type seedCache struct {
	Hash     string    `json:"hash"`
	Target   string    `json:"target"`
	SeededAt time.Time `json:"seeded_at"`
}

// seedTarget names the database the cache entry belongs to.
func seedTarget(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s/%s", cfg.Host, cfg.Port, cfg.DBName)
}

// upToDate reports whether seeding can be skipped: the same data was last
// written to the same database and that database still holds FAQ rows.
func upToDate(cache seedCache, hash, target string, stored int, force bool) bool {
	if force || stored == 0 {
		return false
	}
	return cache.Hash == hash && cache.Target == target
}

func dataHash(d knowledge.Data) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode knowledge base: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(raw)), nil
}

func loadCache(path string) (seedCache, error) {
	var cache seedCache

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return cache, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(raw) == 0 {
		return cache, nil
	}
	if err := json.Unmarshal(raw, &cache); err != nil {
		return cache, fmt.Errorf("failed to parse cache file: %w", err)
	}
	return cache, nil
}

func saveCache(path string, cache seedCache) error {
	raw, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
