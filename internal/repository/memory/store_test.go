package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
)

// tickingClock advances one second per call so insertion order is observable.
func tickingClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestSubscriberIdempotentByEmail(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(tickingClock()))

	first, created, err := s.AddSubscriber(ctx, "Alice", "a@example.com")
	if err != nil || !created {
		t.Fatalf("first add: %v %v", created, err)
	}
	second, created, err := s.AddSubscriber(ctx, "Alice", "a@example.com")
	if err != nil || created {
		t.Fatalf("second add: %v %v", created, err)
	}
	if first.ID != second.ID {
		t.Fatalf("ids differ: %s vs %s", first.ID, second.ID)
	}
	subs, _ := s.ListSubscribers(ctx)
	if len(subs) != 1 {
		t.Fatalf("expected one subscriber, got %d", len(subs))
	}
}

func TestSubscribersNewestFirstAndRemove(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(tickingClock()))
	a, _, _ := s.AddSubscriber(ctx, "A", "a@example.com")
	b, _, _ := s.AddSubscriber(ctx, "B", "b@example.com")

	subs, _ := s.ListSubscribers(ctx)
	if subs[0].ID != b.ID || subs[1].ID != a.ID {
		t.Fatalf("unexpected order %+v", subs)
	}

	if ok, _ := s.RemoveSubscriber(ctx, a.ID); !ok {
		t.Fatal("remove returned false")
	}
	if ok, _ := s.RemoveSubscriber(ctx, a.ID); ok {
		t.Fatal("second remove returned true")
	}
}

func TestPageArticlesPinnedFirstThenDateDesc(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(tickingClock()))
	pinned := []bool{true, false, true}
	dates := []string{"2026-01-10", "2026-01-19", "2026-01-05"}
	for i := range dates {
		_, err := s.CreatePageArticle(ctx, models.PageArticle{
			PageType: models.PageInvest,
			Title:    dates[i],
			Date:     dates[i],
			IsPinned: pinned[i],
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	// another page type must not leak in
	_, _ = s.CreatePageArticle(ctx, models.PageArticle{PageType: models.PageRoutine, Date: "2026-02-01"})

	list, err := s.ListPageArticles(ctx, models.PageInvest, "")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, a := range list {
		got = append(got, a.Date)
	}
	want := []string{"2026-01-10", "2026-01-05", "2026-01-19"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestDashboardDatesDesc(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, d := range []string{"2026-01-01", "2026-01-03", "2026-01-02"} {
		saved, err := s.SaveDashboard(ctx, d, models.DashboardContent{Date: "ignored", Thoughts: d})
		if err != nil {
			t.Fatal(err)
		}
		if saved.Date != d {
			t.Fatalf("date not stamped: %s", saved.Date)
		}
	}
	dates, _ := s.ListDashboardDates(ctx)
	want := []string{"2026-01-03", "2026-01-02", "2026-01-01"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("dates = %v", dates)
	}
	if _, err := s.GetDashboard(ctx, "2025-12-31"); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRoutineArticlesFilterAndPatch(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(tickingClock()))
	a, _ := s.CreateRoutineArticle(ctx, models.RoutineArticle{Title: "a", Category: "ipo", Date: "2026-01-02"})
	_, _ = s.CreateRoutineArticle(ctx, models.RoutineArticle{Title: "b", Category: "general", Date: "2026-01-05"})
	_, _ = s.CreateRoutineArticle(ctx, models.RoutineArticle{Title: "c", Category: "ipo", Date: "2026-01-09"})

	ipo, _ := s.ListRoutineArticles(ctx, "ipo")
	if len(ipo) != 2 || ipo[0].Title != "c" || ipo[1].Title != "a" {
		t.Fatalf("filtered list %+v", ipo)
	}
	all, _ := s.ListRoutineArticles(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3, got %d", len(all))
	}

	title := "renamed"
	updated, err := s.UpdateRoutineArticle(ctx, a.ID, models.RoutineArticlePatch{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "renamed" || updated.Category != "ipo" {
		t.Fatalf("patch did not merge: %+v", updated)
	}
	if _, err := s.UpdateRoutineArticle(ctx, "missing", models.RoutineArticlePatch{Title: &title}); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if ok, _ := s.DeleteRoutineArticle(ctx, "missing"); ok {
		t.Fatal("delete of unknown id returned true")
	}
}

func TestListsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	created, _ := s.CreatePageArticle(ctx, models.PageArticle{PageType: models.PageInvest, Title: "t", Tags: []string{"x"}})
	_, _ = s.SaveDashboard(ctx, "2026-01-01", models.DashboardContent{Todos: []models.TodoItem{{ID: "1", Text: "a"}}})

	list, _ := s.ListPageArticles(ctx, models.PageInvest, "")
	list[0].Title = "mutated"
	list[0].Tags[0] = "mutated"

	got, _ := s.GetPageArticle(ctx, created.ID)
	if got.Title != "t" || got.Tags[0] != "x" {
		t.Fatalf("store mutated through list: %+v", got)
	}

	d, _ := s.GetDashboard(ctx, "2026-01-01")
	d.Todos[0].Text = "mutated"
	d2, _ := s.GetDashboard(ctx, "2026-01-01")
	if d2.Todos[0].Text != "a" {
		t.Fatal("store mutated through dashboard")
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	dates, _ := s.ListDashboardDates(ctx)
	if len(dates) == 0 {
		t.Fatal("no seeded dashboards")
	}
	invest, _ := s.ListPageArticles(ctx, models.PageInvest, "")
	if len(invest) == 0 {
		t.Fatal("no seeded invest articles")
	}
}
