package postgres

// Dates are stored as ISO text so lexical order is chronological order.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS dashboards (
		date       TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routine_articles (
		id           TEXT PRIMARY KEY,
		category     TEXT NOT NULL,
		article_date TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		body         JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS routine_articles_list_idx ON routine_articles (category, article_date DESC)`,
	`CREATE TABLE IF NOT EXISTS page_articles (
		id           TEXT PRIMARY KEY,
		page_type    TEXT NOT NULL,
		category     TEXT NOT NULL,
		is_pinned    BOOLEAN NOT NULL DEFAULT FALSE,
		article_date TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		body         JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS page_articles_list_idx ON page_articles (page_type, is_pinned DESC, article_date DESC)`,
	`CREATE TABLE IF NOT EXISTS subscribers (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL,
		email_key     TEXT NOT NULL UNIQUE,
		subscribed_at TIMESTAMPTZ NOT NULL
	)`,
}
