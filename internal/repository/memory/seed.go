package memory

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"MoneyRoutine/internal/domain/models"
)

//go:embed seed.yaml
var seedYAML []byte

type seedDoc struct {
	Dashboards []struct {
		Date                string                `yaml:"date"`
		Thoughts            string                `yaml:"thoughts"`
		IPOSchedules        []models.ScheduleItem `yaml:"ipoSchedules"`
		RealEstateSchedules []models.ScheduleItem `yaml:"realEstateSchedules"`
		NewsPicks           []models.NewsPick     `yaml:"newsPicks"`
		Todos               []models.TodoItem     `yaml:"todos"`
	} `yaml:"dashboards"`
	RoutineArticles []struct {
		Title    string `yaml:"title"`
		Summary  string `yaml:"summary"`
		Content  string `yaml:"content"`
		Category string `yaml:"category"`
		Date     string `yaml:"date"`
		Author   string `yaml:"author"`
	} `yaml:"routineArticles"`
	PageArticles []struct {
		PageType string   `yaml:"pageType"`
		Title    string   `yaml:"title"`
		Summary  string   `yaml:"summary"`
		Content  string   `yaml:"content"`
		Category string   `yaml:"category"`
		Date     string   `yaml:"date"`
		Tags     []string `yaml:"tags"`
		IsPinned bool     `yaml:"isPinned"`
	} `yaml:"pageArticles"`
}

// Seed loads the embedded starter content into s.
func (s *Store) Seed(ctx context.Context) error {
	return s.SeedFrom(ctx, seedYAML)
}

// SeedFrom loads a YAML seed document into s.
func (s *Store) SeedFrom(ctx context.Context, doc []byte) error {
	var seed seedDoc
	if err := yaml.Unmarshal(doc, &seed); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}

	for _, d := range seed.Dashboards {
		_, err := s.SaveDashboard(ctx, d.Date, models.DashboardContent{
			Thoughts:            d.Thoughts,
			IPOSchedules:        d.IPOSchedules,
			RealEstateSchedules: d.RealEstateSchedules,
			NewsPicks:           d.NewsPicks,
			Todos:               d.Todos,
		})
		if err != nil {
			return fmt.Errorf("seed dashboard %s: %w", d.Date, err)
		}
	}
	for _, a := range seed.RoutineArticles {
		_, err := s.CreateRoutineArticle(ctx, models.RoutineArticle{
			Title:    a.Title,
			Summary:  a.Summary,
			Content:  a.Content,
			Category: a.Category,
			Date:     a.Date,
			Author:   a.Author,
		})
		if err != nil {
			return fmt.Errorf("seed routine article %q: %w", a.Title, err)
		}
	}
	for _, a := range seed.PageArticles {
		pt := models.PageType(a.PageType)
		if !models.IsValidPageType(pt) {
			return fmt.Errorf("seed page article %q: invalid page type %q", a.Title, a.PageType)
		}
		_, err := s.CreatePageArticle(ctx, models.PageArticle{
			PageType: pt,
			Title:    a.Title,
			Summary:  a.Summary,
			Content:  a.Content,
			Category: a.Category,
			Date:     a.Date,
			Tags:     a.Tags,
			IsPinned: a.IsPinned,
		})
		if err != nil {
			return fmt.Errorf("seed page article %q: %w", a.Title, err)
		}
	}
	return nil
}
