package repository

import (
	"context"
	"fmt"
	"time"

	"faqbot/internal/knowledge"
	"faqbot/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	messageKindWelcome = "welcome"
	messageKindDefault = "default"
)

const schema = `
CREATE TABLE IF NOT EXISTS faqs (
	position   INTEGER PRIMARY KEY,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS keyword_categories (
	position   INTEGER PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	keywords   TEXT[] NOT NULL,
	answer     TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS kb_messages (
	kind     TEXT NOT NULL,
	position INTEGER NOT NULL,
	text     TEXT NOT NULL,
	PRIMARY KEY (kind, position)
);`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// KnowledgeRepository stores the knowledge base in Postgres. The bot reads it
// once at startup; only the seed tool writes.
type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create knowledge schema: %w", err)
	}
	return nil
}

// Load reads the whole knowledge base in scan order.
func (r *KnowledgeRepository) Load(ctx context.Context) (knowledge.Data, error) {
	var d knowledge.Data

	faqs, err := r.loadFaqs(ctx)
	if err != nil {
		return d, err
	}
	categories, err := r.loadCategories(ctx)
	if err != nil {
		return d, err
	}
	welcome, defaults, err := r.loadMessages(ctx)
	if err != nil {
		return d, err
	}

	d.Faqs = make([]models.FaqEntry, 0, len(faqs))
	for _, f := range faqs {
		d.Faqs = append(d.Faqs, models.FaqEntry{Question: f.Question, Answer: f.Answer})
	}
	d.CategoryAnswers = make(map[string]string, len(categories))
	for _, c := range categories {
		d.Categories = append(d.Categories, models.KeywordCategory{Name: c.Name, Keywords: c.Keywords})
		d.CategoryAnswers[c.Name] = c.Answer
	}
	d.Welcome = welcome
	d.DefaultResponses = defaults

	r.logger.Info("Knowledge base loaded from database",
		zap.Int("faqs", len(d.Faqs)),
		zap.Int("categories", len(d.Categories)),
	)
	return d, nil
}

// CountFaqs reports how many FAQ rows are stored.
func (r *KnowledgeRepository) CountFaqs(ctx context.Context) (int, error) {
	sql, args, err := countFaqsQuery().ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count faqs: %w", err)
	}
	return n, nil
}

func countFaqsQuery() squirrel.SelectBuilder {
	return psql.Select("COUNT(*)").From("faqs")
}

func selectFaqsQuery() squirrel.SelectBuilder {
	return psql.Select("position", "question", "answer", "updated_at").
		From("faqs").
		OrderBy("position ASC")
}

func selectCategoriesQuery() squirrel.SelectBuilder {
	return psql.Select("position", "name", "keywords", "answer", "updated_at").
		From("keyword_categories").
		OrderBy("position ASC")
}

func selectMessagesQuery() squirrel.SelectBuilder {
	return psql.Select("kind", "text").
		From("kb_messages").
		Where(squirrel.Eq{"kind": []string{messageKindWelcome, messageKindDefault}}).
		OrderBy("kind ASC", "position ASC")
}

func (r *KnowledgeRepository) loadFaqs(ctx context.Context) ([]models.FaqRecord, error) {
	sql, args, err := selectFaqsQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	var out []models.FaqRecord
	for rows.Next() {
		var f models.FaqRecord
		if err := rows.Scan(&f.Position, &f.Question, &f.Answer, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *KnowledgeRepository) loadCategories(ctx context.Context) ([]models.CategoryRecord, error) {
	sql, args, err := selectCategoriesQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword categories: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryRecord
	for rows.Next() {
		var c models.CategoryRecord
		if err := rows.Scan(&c.Position, &c.Name, &c.Keywords, &c.Answer, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan keyword category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *KnowledgeRepository) loadMessages(ctx context.Context) (string, []string, error) {
	sql, args, err := selectMessagesQuery().ToSql()
	if err != nil {
		return "", nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query kb messages: %w", err)
	}
	defer rows.Close()

	var welcome string
	var defaults []string
	for rows.Next() {
		var kind, text string
		if err := rows.Scan(&kind, &text); err != nil {
			return "", nil, fmt.Errorf("failed to scan kb message: %w", err)
		}
		if kind == messageKindWelcome {
			welcome = text
		} else {
			defaults = append(defaults, text)
		}
	}
	return welcome, defaults, rows.Err()
}

// Replace overwrites the stored knowledge base with d in one transaction.
func (r *KnowledgeRepository) Replace(ctx context.Context, d knowledge.Data) error {
	stmts, err := replaceStatements(d, time.Now().UTC())
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := execAll(ctx, tx, stmts); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit knowledge base: %w", err)
	}

	r.logger.Info("Knowledge base stored",
		zap.Int("faqs", len(d.Faqs)),
		zap.Int("categories", len(d.Categories)),
		zap.Int("default_responses", len(d.DefaultResponses)),
	)
	return nil
}

type statement struct {
	sql  string
	args []interface{}
}

func execAll(ctx context.Context, tx pgx.Tx, stmts []statement) error {
	for _, s := range stmts {
		if _, err := tx.Exec(ctx, s.sql, s.args...); err != nil {
			return fmt.Errorf("failed to execute %q: %w", s.sql, err)
		}
	}
	return nil
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

func replaceStatements(d knowledge.Data, now time.Time) ([]statement, error) {
	builders := []sqlizer{
		psql.Delete("faqs"),
		psql.Delete("keyword_categories"),
		psql.Delete("kb_messages"),
	}

	if len(d.Faqs) > 0 {
		q := psql.Insert("faqs").Columns("position", "question", "answer", "updated_at")
		for i, f := range d.Faqs {
			q = q.Values(i, f.Question, f.Answer, now)
		}
		builders = append(builders, q)
	}

	if len(d.Categories) > 0 {
		q := psql.Insert("keyword_categories").Columns("position", "name", "keywords", "answer", "updated_at")
		for i, c := range d.Categories {
			q = q.Values(i, c.Name, c.Keywords, d.CategoryAnswers[c.Name], now)
		}
		builders = append(builders, q)
	}

	q := psql.Insert("kb_messages").Columns("kind", "position", "text")
	q = q.Values(messageKindWelcome, 0, d.Welcome)
	for i, text := range d.DefaultResponses {
		q = q.Values(messageKindDefault, i, text)
	}
	builders = append(builders, q)

	stmts := make([]statement, 0, len(builders))
	for _, b := range builders {
		sql, args, err := b.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build statement: %w", err)
		}
		stmts = append(stmts, statement{sql: sql, args: args})
	}
	return stmts, nil
}
