package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	"MoneyRoutine/pkg/util"
)

// Store is the volatile content store. Every map is guarded by one RWMutex and
// every read returns copies.
type Store struct {
	mu          sync.RWMutex
	dashboards  map[string]models.DashboardContent
	routine     map[string]models.RoutineArticle
	pages       map[string]models.PageArticle
	subscribers map[string]models.Subscriber
	now         func() time.Time
	newID       func() string
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		dashboards:  make(map[string]models.DashboardContent),
		routine:     make(map[string]models.RoutineArticle),
		pages:       make(map[string]models.PageArticle),
		subscribers: make(map[string]models.Subscriber),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Close() error { return nil }

// --- dashboards ---

func (s *Store) GetDashboard(_ context.Context, date string) (models.DashboardContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dashboards[date]
	if !ok {
		return models.DashboardContent{}, domrepo.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *Store) SaveDashboard(_ context.Context, date string, content models.DashboardContent) (models.DashboardContent, error) {
	content = content.Clone()
	content.Date = date
	if content.UpdatedAt.IsZero() {
		content.UpdatedAt = s.now().UTC()
	}
	s.mu.Lock()
	s.dashboards[date] = content
	s.mu.Unlock()
	return content.Clone(), nil
}

func (s *Store) ListDashboardDates(_ context.Context) ([]string, error) {
	s.mu.RLock()
	dates := make([]string, 0, len(s.dashboards))
	for d := range s.dashboards {
		dates = append(dates, d)
	}
	s.mu.RUnlock()
	util.SortDatesDesc(dates)
	return dates, nil
}

// --- routine articles ---

func (s *Store) ListRoutineArticles(_ context.Context, category string) ([]models.RoutineArticle, error) {
	s.mu.RLock()
	out := make([]models.RoutineArticle, 0, len(s.routine))
	for _, a := range s.routine {
		if category == "" || a.Category == category {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetRoutineArticle(_ context.Context, id string) (models.RoutineArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.routine[id]
	if !ok {
		return models.RoutineArticle{}, domrepo.ErrNotFound
	}
	return a, nil
}

func (s *Store) CreateRoutineArticle(_ context.Context, a models.RoutineArticle) (models.RoutineArticle, error) {
	now := s.now().UTC()
	a.ID = s.newID()
	a.ContentHTML = ""
	a.CreatedAt, a.UpdatedAt = now, now
	s.mu.Lock()
	s.routine[a.ID] = a
	s.mu.Unlock()
	return a, nil
}

func (s *Store) UpdateRoutineArticle(_ context.Context, id string, patch models.RoutineArticlePatch) (models.RoutineArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.routine[id]
	if !ok {
		return models.RoutineArticle{}, domrepo.ErrNotFound
	}
	if patch.Apply(&a) {
		a.UpdatedAt = s.now().UTC()
		s.routine[id] = a
	}
	return a, nil
}

func (s *Store) DeleteRoutineArticle(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routine[id]; !ok {
		return false, nil
	}
	delete(s.routine, id)
	return true, nil
}

// --- page articles ---

func (s *Store) ListPageArticles(_ context.Context, pageType models.PageType, category string) ([]models.PageArticle, error) {
	s.mu.RLock()
	out := make([]models.PageArticle, 0)
	for _, a := range s.pages {
		if a.PageType != pageType {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a.Clone())
	}
	s.mu.RUnlock()

	SortPageArticles(out)
	return out, nil
}

// SortPageArticles orders pinned articles first, then by date desc within each group.
func SortPageArticles(as []models.PageArticle) {
	sort.SliceStable(as, func(i, j int) bool {
		if as[i].IsPinned != as[j].IsPinned {
			return as[i].IsPinned
		}
		if as[i].Date != as[j].Date {
			return as[i].Date > as[j].Date
		}
		return as[i].CreatedAt.After(as[j].CreatedAt)
	})
}

func (s *Store) GetPageArticle(_ context.Context, id string) (models.PageArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.pages[id]
	if !ok {
		return models.PageArticle{}, domrepo.ErrNotFound
	}
	return a.Clone(), nil
}

func (s *Store) CreatePageArticle(_ context.Context, a models.PageArticle) (models.PageArticle, error) {
	now := s.now().UTC()
	a = a.Clone()
	a.ID = s.newID()
	a.ContentHTML = ""
	a.CreatedAt, a.UpdatedAt = now, now
	if a.Tags == nil {
		a.Tags = []string{}
	}
	s.mu.Lock()
	s.pages[a.ID] = a
	s.mu.Unlock()
	return a.Clone(), nil
}

func (s *Store) UpdatePageArticle(_ context.Context, id string, patch models.PageArticlePatch) (models.PageArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.pages[id]
	if !ok {
		return models.PageArticle{}, domrepo.ErrNotFound
	}
	a = a.Clone()
	if patch.Apply(&a) {
		a.UpdatedAt = s.now().UTC()
		s.pages[id] = a
	}
	return a.Clone(), nil
}

func (s *Store) DeletePageArticle(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return false, nil
	}
	delete(s.pages, id)
	return true, nil
}

// --- subscribers ---

// AddSubscriber is idempotent by email (case-insensitive).
func (s *Store) AddSubscriber(_ context.Context, name, email string) (models.Subscriber, bool, error) {
	email = strings.TrimSpace(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers {
		if strings.EqualFold(sub.Email, email) {
			return sub, false, nil
		}
	}
	sub := models.Subscriber{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}
	s.subscribers[sub.ID] = sub
	return sub, true, nil
}

func (s *Store) ListSubscribers(_ context.Context) ([]models.Subscriber, error) {
	s.mu.RLock()
	out := make([]models.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		out = append(out, sub)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubscribedAt.After(out[j].SubscribedAt)
	})
	return out, nil
}

func (s *Store) RemoveSubscriber(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[id]; !ok {
		return false, nil
	}
	delete(s.subscribers, id)
	return true, nil
}

var _ domrepo.ContentStore = (*Store)(nil)
