package repository

import (
	"context"
	"errors"
	"time"

	"MoneyRoutine/internal/domain/models"
)

// ErrNotFound is returned by stores when a key (id, date) is unknown.
var ErrNotFound = errors.New("not found")

type DashboardRepository interface {
	GetDashboard(ctx context.Context, date string) (models.DashboardContent, error)
	// SaveDashboard upserts content under date, stamping date onto it.
	SaveDashboard(ctx context.Context, date string, content models.DashboardContent) (models.DashboardContent, error)
	// ListDashboardDates returns every saved date, most recent first.
	ListDashboardDates(ctx context.Context) ([]string, error)
}

type RoutineArticleRepository interface {
	// ListRoutineArticles filters by exact category when category != "" and sorts by date desc.
	ListRoutineArticles(ctx context.Context, category string) ([]models.RoutineArticle, error)
	GetRoutineArticle(ctx context.Context, id string) (models.RoutineArticle, error)
	CreateRoutineArticle(ctx context.Context, a models.RoutineArticle) (models.RoutineArticle, error)
	UpdateRoutineArticle(ctx context.Context, id string, patch models.RoutineArticlePatch) (models.RoutineArticle, error)
	DeleteRoutineArticle(ctx context.Context, id string) (bool, error)
}

type PageArticleRepository interface {
	// ListPageArticles returns pinned articles first, then date desc within each group.
	ListPageArticles(ctx context.Context, pageType models.PageType, category string) ([]models.PageArticle, error)
	GetPageArticle(ctx context.Context, id string) (models.PageArticle, error)
	CreatePageArticle(ctx context.Context, a models.PageArticle) (models.PageArticle, error)
	UpdatePageArticle(ctx context.Context, id string, patch models.PageArticlePatch) (models.PageArticle, error)
	DeletePageArticle(ctx context.Context, id string) (bool, error)
}

type SubscriberRepository interface {
	// AddSubscriber is idempotent by email; created is false when the email was already known.
	AddSubscriber(ctx context.Context, name, email string) (sub models.Subscriber, created bool, err error)
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
	RemoveSubscriber(ctx context.Context, id string) (bool, error)
}

// ContentStore bundles every content repository behind one backend.
type ContentStore interface {
	DashboardRepository
	RoutineArticleRepository
	PageArticleRepository
	SubscriberRepository
	Close() error
}

// QuoteSource is one live attempt for a market slot.
type QuoteSource interface {
	Name() string
	Fetch(ctx context.Context) (models.Quote, error)
}

// SnapshotCache stores serialized market snapshots.
type SnapshotCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SnapshotHistory records aggregated snapshots and reads back one slot's series.
type SnapshotHistory interface {
	Record(ctx context.Context, at time.Time, data models.MarketData) error
	Recent(ctx context.Context, slot models.Slot, limit int) ([]models.Observation, error)
}

// EventPublisher announces content changes to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.ContentEvent) error
	Close() error
}

type MarketMetrics interface {
	RecordAttempt(slot, source, outcome string, seconds float64)
	RecordFallback(slot string)
	RecordCache(hit bool)
}
