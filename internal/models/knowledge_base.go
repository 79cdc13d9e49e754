package models

import "time"

// FaqEntry is a fixed question/answer pair. Position in the FAQ list is its
// scan priority.
type FaqEntry struct {
	Question string `json:"question" yaml:"question" db:"question"`
	Answer   string `json:"answer" yaml:"answer" db:"answer"`
}

// KeywordCategory is a named bucket of trigger words.
type KeywordCategory struct {
	Name     string   `json:"name" yaml:"name" db:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" db:"keywords"`
}

// FaqRecord is the stored form of a FAQ entry
type FaqRecord struct {
	Position  int       `db:"position"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CategoryRecord is the stored form of a keyword category and its answer
type CategoryRecord struct {
	Position  int       `db:"position"`
	Name      string    `db:"name"`
	Keywords  []string  `db:"keywords"`
	Answer    string    `db:"answer"`
	UpdatedAt time.Time `db:"updated_at"`
}
