package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	applogger "MoneyRoutine/pkg/logger"
)

const snapshotKey = "market:snapshot"

// ErrHistoryDisabled is returned by History when no history store is configured.
var ErrHistoryDisabled = errors.New("market history disabled")

// Aggregator produces fresh market snapshots.
type Aggregator interface {
	Aggregate(ctx context.Context) (models.MarketData, error)
}

// MarketService serves market snapshots through an optional cache and records
// fresh aggregations to an optional history store.
type MarketService struct {
	agg     Aggregator
	cache   domrepo.SnapshotCache
	ttl     time.Duration
	history domrepo.SnapshotHistory
	metrics domrepo.MarketMetrics
	log     *applogger.Logger
	now     func() time.Time
	group   singleflight.Group
}

type MarketServiceOption func(*MarketService)

// WithSnapshotCache caches aggregations for ttl. ttl <= 0 disables caching.
func WithSnapshotCache(c domrepo.SnapshotCache, ttl time.Duration) MarketServiceOption {
	return func(s *MarketService) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithSnapshotHistory(h domrepo.SnapshotHistory) MarketServiceOption {
	return func(s *MarketService) { s.history = h }
}

func WithMarketMetrics(m domrepo.MarketMetrics) MarketServiceOption {
	return func(s *MarketService) { s.metrics = m }
}

func WithMarketLogger(l *applogger.Logger) MarketServiceOption {
	return func(s *MarketService) { s.log = l }
}

func NewMarketService(agg Aggregator, opts ...MarketServiceOption) *MarketService {
	s := &MarketService{agg: agg, log: applogger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current market data. Concurrent misses share one
// aggregation, which runs detached from the caller's cancellation so an
// abandoned request cannot cut it short for everyone else.
func (s *MarketService) Snapshot(ctx context.Context) (models.MarketData, error) {
	if data, ok := s.cached(ctx); ok {
		return data, nil
	}

	v, err, _ := s.group.Do(snapshotKey, func() (interface{}, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return models.MarketData{}, err
	}
	return v.(models.MarketData), nil
}

// Merged returns the snapshot with manual overrides applied.
func (s *MarketService) Merged(ctx context.Context, manual *models.ManualMarketData) (models.MarketData, error) {
	data, err := s.Snapshot(ctx)
	if err != nil {
		return models.MarketData{}, err
	}
	return models.Merge(data, manual), nil
}

// History returns the newest observations of slot.
func (s *MarketService) History(ctx context.Context, slot models.Slot, limit int) ([]models.Observation, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, slot, limit)
}

func (s *MarketService) cached(ctx context.Context) (models.MarketData, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return models.MarketData{}, false
	}
	b, ok, err := s.cache.GetBytes(ctx, snapshotKey)
	if err != nil {
		s.log.Warn("snapshot cache read failed", applogger.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordCache(ok)
	}
	if !ok {
		return models.MarketData{}, false
	}
	var data models.MarketData
	if err := json.Unmarshal(b, &data); err != nil {
		s.log.Warn("snapshot cache entry corrupt", applogger.Error(err))
		return models.MarketData{}, false
	}
	return data, true
}

func (s *MarketService) refresh(ctx context.Context) (models.MarketData, error) {
	data, err := s.agg.Aggregate(ctx)
	if err != nil {
		return models.MarketData{}, err
	}

	if s.cache != nil && s.ttl > 0 {
		if b, err := json.Marshal(data); err == nil {
			if err := s.cache.SetBytes(ctx, snapshotKey, b, s.ttl); err != nil {
				s.log.Warn("snapshot cache write failed", applogger.Error(err))
			}
		}
	}
	if s.history != nil {
		if err := s.history.Record(ctx, s.now(), data); err != nil {
			s.log.Warn("snapshot history write failed", applogger.Error(err))
		}
	}
	return data, nil
}
