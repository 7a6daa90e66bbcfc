package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"MoneyRoutine/internal/domain/models"
	"MoneyRoutine/internal/service/cache"
)

type countingAggregator struct {
	calls atomic.Int32
	data  models.MarketData
	err   error
	delay time.Duration
}

func (a *countingAggregator) Aggregate(ctx context.Context) (models.MarketData, error) {
	a.calls.Add(1)
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	if ctx.Err() != nil {
		return models.MarketData{}, ctx.Err()
	}
	return a.data, a.err
}

type memHistory struct {
	mu   sync.Mutex
	recs []models.MarketData
}

func (h *memHistory) Record(_ context.Context, _ time.Time, data models.MarketData) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = append(h.recs, data)
	return nil
}

func (h *memHistory) Recent(_ context.Context, slot models.Slot, limit int) ([]models.Observation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []models.Observation
	for i := len(h.recs) - 1; i >= 0 && len(out) < limit; i-- {
		q := h.recs[i].Get(slot)
		out = append(out, models.Observation{Slot: slot, Value: q.Value, Change: q.Change})
	}
	return out, nil
}

func TestSnapshotUsesCache(t *testing.T) {
	agg := &countingAggregator{data: models.FallbackMarketData()}
	m := &recordingMetrics{}
	svc := NewMarketService(agg, WithSnapshotCache(cache.NewTTLCache(), time.Minute), WithMarketMetrics(m))

	for i := 0; i < 3; i++ {
		data, err := svc.Snapshot(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if data != agg.data {
			t.Fatalf("unexpected data %+v", data)
		}
	}
	if n := agg.calls.Load(); n != 1 {
		t.Fatalf("aggregate called %d times", n)
	}
	if m.hits != 2 || m.misses != 1 {
		t.Fatalf("hits=%d misses=%d", m.hits, m.misses)
	}
}

func TestSnapshotWithoutCacheAlwaysAggregates(t *testing.T) {
	agg := &countingAggregator{data: models.FallbackMarketData()}
	svc := NewMarketService(agg)
	for i := 0; i < 2; i++ {
		if _, err := svc.Snapshot(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if n := agg.calls.Load(); n != 2 {
		t.Fatalf("aggregate called %d times", n)
	}
}

func TestSnapshotIgnoresCallerCancellation(t *testing.T) {
	agg := &countingAggregator{data: models.FallbackMarketData(), delay: 50 * time.Millisecond}
	svc := NewMarketService(agg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatalf("a cancelled caller must still get a snapshot: %v", err)
	}
}

func TestSnapshotPropagatesCompositionError(t *testing.T) {
	agg := &countingAggregator{err: errors.New("bug")}
	svc := NewMarketService(agg)
	if _, err := svc.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestMergedAndHistory(t *testing.T) {
	agg := &countingAggregator{data: models.FallbackMarketData()}
	h := &memHistory{}
	svc := NewMarketService(agg, WithSnapshotHistory(h))

	got, err := svc.Merged(context.Background(), &models.ManualMarketData{
		Gold: models.ManualMarketItem{Enabled: true, Value: "130,000", Change: 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Gold.Value != "130,000" {
		t.Fatalf("gold = %+v", got.Gold)
	}

	obs, err := svc.History(context.Background(), models.SlotGold, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 1 || obs[0].Value != models.Fallbacks[models.SlotGold].Value {
		t.Fatalf("history = %+v", obs)
	}
}

func TestHistoryDisabled(t *testing.T) {
	svc := NewMarketService(&countingAggregator{})
	if _, err := svc.History(context.Background(), models.SlotGold, 1); !errors.Is(err, ErrHistoryDisabled) {
		t.Fatalf("err = %v", err)
	}
}
