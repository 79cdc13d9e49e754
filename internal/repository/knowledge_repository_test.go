package repository

import (
	"testing"
	"time"

	"faqbot/internal/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQueries(t *testing.T) {
	sql, args, err := selectFaqsQuery().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT position, question, answer, updated_at FROM faqs ORDER BY position ASC", sql)
	assert.Empty(t, args)

	sql, _, err = selectCategoriesQuery().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT position, name, keywords, answer, updated_at FROM keyword_categories ORDER BY position ASC", sql)

	sql, args, err = selectMessagesQuery().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT kind, text FROM kb_messages WHERE kind IN ($1,$2) ORDER BY kind ASC, position ASC", sql)
	assert.Equal(t, []interface{}{"welcome", "default"}, args)

	sql, args, err = countFaqsQuery().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM faqs", sql)
	assert.Empty(t, args)
}

func TestReplaceStatements(t *testing.T) {
	d := knowledge.DefaultData()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	stmts, err := replaceStatements(d, now)
	require.NoError(t, err)
	require.Len(t, stmts, 6)

	assert.Equal(t, "DELETE FROM faqs", stmts[0].sql)
	assert.Equal(t, "DELETE FROM keyword_categories", stmts[1].sql)
	assert.Equal(t, "DELETE FROM kb_messages", stmts[2].sql)

	// 4 columns per FAQ row
	assert.Len(t, stmts[3].args, 4*len(d.Faqs))
	assert.Equal(t, 0, stmts[3].args[0])
	assert.Equal(t, d.Faqs[0].Question, stmts[3].args[1])

	// 5 columns per category row, answer resolved by name
	assert.Len(t, stmts[4].args, 5*len(d.Categories))
	assert.Equal(t, "programs", stmts[4].args[1])
	assert.Equal(t, d.CategoryAnswers["programs"], stmts[4].args[3])

	assert.Len(t, stmts[5].args, 3*(1+len(d.DefaultResponses)))
	assert.Equal(t, "welcome", stmts[5].args[0])
}
