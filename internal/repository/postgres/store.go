package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
)

// Store implements the content repositories on PostgreSQL. Each row keeps the
// full document as JSONB next to the columns used for filtering and ordering.
type Store struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db, now: time.Now}
}

// Init creates tables and indexes (idempotent).
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domrepo.ErrNotFound
	}
	return err
}

// --- dashboards ---

func (s *Store) GetDashboard(ctx context.Context, date string) (models.DashboardContent, error) {
	var body []byte
	err := s.db.QueryRow(ctx, `SELECT body FROM dashboards WHERE date = $1`, date).Scan(&body)
	if err != nil {
		return models.DashboardContent{}, notFound(err)
	}
	var d models.DashboardContent
	if err := json.Unmarshal(body, &d); err != nil {
		return models.DashboardContent{}, fmt.Errorf("decode dashboard %s: %w", date, err)
	}
	return d, nil
}

func (s *Store) SaveDashboard(ctx context.Context, date string, content models.DashboardContent) (models.DashboardContent, error) {
	content.Date = date
	if content.UpdatedAt.IsZero() {
		content.UpdatedAt = s.now().UTC()
	}
	body, err := json.Marshal(content)
	if err != nil {
		return models.DashboardContent{}, err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO dashboards (date, body, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		date, body, content.UpdatedAt)
	if err != nil {
		return models.DashboardContent{}, fmt.Errorf("save dashboard %s: %w", date, err)
	}
	return content, nil
}

func (s *Store) ListDashboardDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT date FROM dashboards ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

// --- routine articles ---

func (s *Store) ListRoutineArticles(ctx context.Context, category string) ([]models.RoutineArticle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT body FROM routine_articles
		WHERE ($1 = '' OR category = $1)
		ORDER BY article_date DESC, created_at DESC`, category)
	if err != nil {
		return nil, err
	}
	return collectJSON[models.RoutineArticle](rows)
}

func (s *Store) GetRoutineArticle(ctx context.Context, id string) (models.RoutineArticle, error) {
	return getJSON[models.RoutineArticle](ctx, s.db, `SELECT body FROM routine_articles WHERE id = $1`, id)
}

func (s *Store) CreateRoutineArticle(ctx context.Context, a models.RoutineArticle) (models.RoutineArticle, error) {
	now := s.now().UTC()
	a.ID = uuid.NewString()
	a.ContentHTML = ""
	a.CreatedAt, a.UpdatedAt = now, now
	body, err := json.Marshal(a)
	if err != nil {
		return models.RoutineArticle{}, err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO routine_articles (id, category, article_date, created_at, body)
		VALUES ($1, $2, $3, $4, $5)`, a.ID, a.Category, a.Date, a.CreatedAt, body)
	if err != nil {
		return models.RoutineArticle{}, fmt.Errorf("create routine article: %w", err)
	}
	return a, nil
}

func (s *Store) UpdateRoutineArticle(ctx context.Context, id string, patch models.RoutineArticlePatch) (models.RoutineArticle, error) {
	var out models.RoutineArticle
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		a, err := getJSON[models.RoutineArticle](ctx, tx, `SELECT body FROM routine_articles WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if !patch.Apply(&a) {
			out = a
			return nil
		}
		a.UpdatedAt = s.now().UTC()
		body, err := json.Marshal(a)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE routine_articles SET category = $2, article_date = $3, body = $4 WHERE id = $1`,
			id, a.Category, a.Date, body)
		out = a
		return err
	})
	return out, err
}

func (s *Store) DeleteRoutineArticle(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM routine_articles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- page articles ---

func (s *Store) ListPageArticles(ctx context.Context, pageType models.PageType, category string) ([]models.PageArticle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT body FROM page_articles
		WHERE page_type = $1 AND ($2 = '' OR category = $2)
		ORDER BY is_pinned DESC, article_date DESC, created_at DESC`, string(pageType), category)
	if err != nil {
		return nil, err
	}
	return collectJSON[models.PageArticle](rows)
}

func (s *Store) GetPageArticle(ctx context.Context, id string) (models.PageArticle, error) {
	return getJSON[models.PageArticle](ctx, s.db, `SELECT body FROM page_articles WHERE id = $1`, id)
}

func (s *Store) CreatePageArticle(ctx context.Context, a models.PageArticle) (models.PageArticle, error) {
	now := s.now().UTC()
	a.ID = uuid.NewString()
	a.ContentHTML = ""
	a.CreatedAt, a.UpdatedAt = now, now
	if a.Tags == nil {
		a.Tags = []string{}
	}
	body, err := json.Marshal(a)
	if err != nil {
		return models.PageArticle{}, err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO page_articles (id, page_type, category, is_pinned, article_date, created_at, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, string(a.PageType), a.Category, a.IsPinned, a.Date, a.CreatedAt, body)
	if err != nil {
		return models.PageArticle{}, fmt.Errorf("create page article: %w", err)
	}
	return a, nil
}

func (s *Store) UpdatePageArticle(ctx context.Context, id string, patch models.PageArticlePatch) (models.PageArticle, error) {
	var out models.PageArticle
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		a, err := getJSON[models.PageArticle](ctx, tx, `SELECT body FROM page_articles WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if !patch.Apply(&a) {
			out = a
			return nil
		}
		a.UpdatedAt = s.now().UTC()
		body, err := json.Marshal(a)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE page_articles
			SET page_type = $2, category = $3, is_pinned = $4, article_date = $5, body = $6
			WHERE id = $1`,
			id, string(a.PageType), a.Category, a.IsPinned, a.Date, body)
		out = a
		return err
	})
	return out, err
}

func (s *Store) DeletePageArticle(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM page_articles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- subscribers ---

func (s *Store) AddSubscriber(ctx context.Context, name, email string) (models.Subscriber, bool, error) {
	email = strings.TrimSpace(email)
	sub := models.Subscriber{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO subscribers (id, name, email, email_key, subscribed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email_key) DO NOTHING`,
		sub.ID, sub.Name, sub.Email, strings.ToLower(email), sub.SubscribedAt)
	if err != nil {
		return models.Subscriber{}, false, fmt.Errorf("add subscriber: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return sub, true, nil
	}

	var existing models.Subscriber
	err = s.db.QueryRow(ctx, `
		SELECT id, name, email, subscribed_at FROM subscribers WHERE email_key = $1`,
		strings.ToLower(email)).Scan(&existing.ID, &existing.Name, &existing.Email, &existing.SubscribedAt)
	if err != nil {
		return models.Subscriber{}, false, fmt.Errorf("load subscriber: %w", err)
	}
	return existing, false, nil
}

func (s *Store) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, email, subscribed_at FROM subscribers ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Subscriber, error) {
		var sub models.Subscriber
		err := row.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.SubscribedAt)
		return sub, err
	})
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []models.Subscriber{}
	}
	return subs, nil
}

func (s *Store) RemoveSubscriber(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- helpers ---

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getJSON[T any](ctx context.Context, q querier, sql string, args ...any) (T, error) {
	var zero T
	var body []byte
	if err := q.QueryRow(ctx, sql, args...).Scan(&body); err != nil {
		return zero, notFound(err)
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return zero, fmt.Errorf("decode row: %w", err)
	}
	return v, nil
}

func collectJSON[T any](rows pgx.Rows) ([]T, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		var v T
		var body []byte
		if err := row.Scan(&body); err != nil {
			return v, err
		}
		err := json.Unmarshal(body, &v)
		return v, err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

var _ domrepo.ContentStore = (*Store)(nil)
