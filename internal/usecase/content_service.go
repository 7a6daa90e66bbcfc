package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	applogger "MoneyRoutine/pkg/logger"
)

const publishTimeout = 5 * time.Second

// Renderer turns article markdown into HTML.
type Renderer interface {
	Render(src string) (string, error)
}

// ContentService fronts the content store. Mutations are announced on the
// optional event publisher; publish failures are logged and never fail the call.
type ContentService struct {
	store    domrepo.ContentStore
	events   domrepo.EventPublisher
	renderer Renderer
	log      *applogger.Logger
	now      func() time.Time
}

func NewContentService(store domrepo.ContentStore, events domrepo.EventPublisher, renderer Renderer, log *applogger.Logger) *ContentService {
	if log == nil {
		log = applogger.Nop()
	}
	return &ContentService{store: store, events: events, renderer: renderer, log: log, now: time.Now}
}

// --- dashboard ---

func (s *ContentService) Dashboard(ctx context.Context, date string) (models.DashboardContent, error) {
	return s.store.GetDashboard(ctx, date)
}

func (s *ContentService) SaveDashboard(ctx context.Context, date string, content models.DashboardContent) (models.DashboardContent, error) {
	content.UpdatedAt = s.now().UTC()
	saved, err := s.store.SaveDashboard(ctx, date, content)
	if err != nil {
		return models.DashboardContent{}, err
	}
	s.publish(ctx, "dashboard", models.ActionSaved, date)
	return saved, nil
}

func (s *ContentService) DashboardDates(ctx context.Context) ([]string, error) {
	return s.store.ListDashboardDates(ctx)
}

// --- routine articles ---

func (s *ContentService) RoutineArticles(ctx context.Context, category string) ([]models.RoutineArticle, error) {
	return s.store.ListRoutineArticles(ctx, category)
}

// RoutineArticle returns one article with its rendered body.
func (s *ContentService) RoutineArticle(ctx context.Context, id string) (models.RoutineArticle, error) {
	a, err := s.store.GetRoutineArticle(ctx, id)
	if err != nil {
		return models.RoutineArticle{}, err
	}
	a.ContentHTML = s.render(a.Content)
	return a, nil
}

func (s *ContentService) CreateRoutineArticle(ctx context.Context, a models.RoutineArticle) (models.RoutineArticle, error) {
	created, err := s.store.CreateRoutineArticle(ctx, a)
	if err != nil {
		return models.RoutineArticle{}, err
	}
	s.publish(ctx, "routine_article", models.ActionCreated, created.ID)
	return created, nil
}

func (s *ContentService) UpdateRoutineArticle(ctx context.Context, id string, patch models.RoutineArticlePatch) (models.RoutineArticle, error) {
	updated, err := s.store.UpdateRoutineArticle(ctx, id, patch)
	if err != nil {
		return models.RoutineArticle{}, err
	}
	s.publish(ctx, "routine_article", models.ActionUpdated, id)
	return updated, nil
}

func (s *ContentService) DeleteRoutineArticle(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.DeleteRoutineArticle(ctx, id)
	if err == nil && ok {
		s.publish(ctx, "routine_article", models.ActionDeleted, id)
	}
	return ok, err
}

// --- page articles ---

func (s *ContentService) PageArticles(ctx context.Context, pageType models.PageType, category string) ([]models.PageArticle, error) {
	return s.store.ListPageArticles(ctx, pageType, category)
}

// PageArticle returns one article of pageType. An article filed under another
// page is reported as not found.
func (s *ContentService) PageArticle(ctx context.Context, pageType models.PageType, id string) (models.PageArticle, error) {
	a, err := s.store.GetPageArticle(ctx, id)
	if err != nil {
		return models.PageArticle{}, err
	}
	if a.PageType != pageType {
		return models.PageArticle{}, domrepo.ErrNotFound
	}
	a.ContentHTML = s.render(a.Content)
	return a, nil
}

func (s *ContentService) CreatePageArticle(ctx context.Context, a models.PageArticle) (models.PageArticle, error) {
	created, err := s.store.CreatePageArticle(ctx, a)
	if err != nil {
		return models.PageArticle{}, err
	}
	s.publish(ctx, "page_article", models.ActionCreated, created.ID)
	return created, nil
}

func (s *ContentService) UpdatePageArticle(ctx context.Context, id string, patch models.PageArticlePatch) (models.PageArticle, error) {
	updated, err := s.store.UpdatePageArticle(ctx, id, patch)
	if err != nil {
		return models.PageArticle{}, err
	}
	s.publish(ctx, "page_article", models.ActionUpdated, id)
	return updated, nil
}

func (s *ContentService) DeletePageArticle(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.DeletePageArticle(ctx, id)
	if err == nil && ok {
		s.publish(ctx, "page_article", models.ActionDeleted, id)
	}
	return ok, err
}

// --- subscribers ---

func (s *ContentService) Subscribe(ctx context.Context, name, email string) (models.Subscriber, bool, error) {
	sub, created, err := s.store.AddSubscriber(ctx, name, email)
	if err != nil {
		return models.Subscriber{}, false, err
	}
	if created {
		s.publish(ctx, "subscriber", models.ActionCreated, sub.ID)
	}
	return sub, created, nil
}

func (s *ContentService) Subscribers(ctx context.Context) ([]models.Subscriber, error) {
	return s.store.ListSubscribers(ctx)
}

func (s *ContentService) Unsubscribe(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.RemoveSubscriber(ctx, id)
	if err == nil && ok {
		s.publish(ctx, "subscriber", models.ActionDeleted, id)
	}
	return ok, err
}

func (s *ContentService) render(src string) string {
	if s.renderer == nil || src == "" {
		return ""
	}
	out, err := s.renderer.Render(src)
	if err != nil {
		s.log.Warn("article render failed", applogger.Error(err))
		return ""
	}
	return out
}

func (s *ContentService) publish(ctx context.Context, entity string, action models.ContentAction, key string) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := models.ContentEvent{
		ID:     uuid.NewString(),
		Entity: entity,
		Action: action,
		Key:    key,
		At:     s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("content event publish failed",
			applogger.String("entity", entity),
			applogger.String("action", string(action)),
			applogger.Error(err),
		)
	}
}
