package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
)

type fakeSource struct {
	name  string
	quote models.Quote
	err   error
	block bool
	calls int
	mu    sync.Mutex
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) (models.Quote, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return models.Quote{}, ctx.Err()
	}
	return f.quote, f.err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stubbornSource struct{}

func (stubbornSource) Name() string { return "stubborn" }

// Fetch ignores its context entirely.
func (stubbornSource) Fetch(context.Context) (models.Quote, error) {
	time.Sleep(2 * time.Second)
	return models.Quote{Value: "late"}, nil
}

type panicSource struct{}

func (panicSource) Name() string { return "panic" }

func (panicSource) Fetch(context.Context) (models.Quote, error) { panic("boom") }

func failing(name string) *fakeSource {
	return &fakeSource{name: name, err: errors.New("down")}
}

func allSlots(sources func(models.Slot) []domrepo.QuoteSource, timeout time.Duration) []Strategy {
	var out []Strategy
	for _, s := range models.Slots() {
		out = append(out, Strategy{Slot: s, Sources: sources(s), Timeout: timeout, Fallback: models.Fallbacks[s]})
	}
	return out
}

func assertComplete(t *testing.T, data models.MarketData) {
	t.Helper()
	for _, s := range models.Slots() {
		if data.Get(s).Value == "" {
			t.Errorf("slot %s has empty value", s)
		}
	}
	items := []models.MarketDataItem{data.USDKRW, data.Gold, data.SP500, data.Bitcoin, data.Nasdaq, data.KOSPI, data.SCFI}
	for _, it := range items {
		if it.Loading {
			t.Errorf("item %+v still loading", it)
		}
	}
	if data.FearGreed.Loading {
		t.Error("fearGreed still loading")
	}
}

func TestAggregateAllSourcesFail(t *testing.T) {
	agg := NewMarketAggregator(allSlots(func(s models.Slot) []domrepo.QuoteSource {
		return []domrepo.QuoteSource{failing(string(s) + "-a"), failing(string(s) + "-b")}
	}, time.Second), nil, nil)

	data, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	assertComplete(t, data)
	if data != models.FallbackMarketData() {
		t.Fatalf("expected fallbacks, got %+v", data)
	}
}

func TestAggregateChainStopsAtFirstSuccess(t *testing.T) {
	primary := failing("upbit")
	secondary := &fakeSource{name: "bithumb", quote: models.Quote{Value: "100,000,000", Change: 2}}
	tertiary := &fakeSource{name: "never", quote: models.Quote{Value: "x"}}

	agg := NewMarketAggregator([]Strategy{{
		Slot:    models.SlotBitcoin,
		Sources: []domrepo.QuoteSource{primary, secondary, tertiary},
		Timeout: time.Second,
	}}, nil, nil)

	data, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if data.Bitcoin.Value != "100,000,000" || data.Bitcoin.Change != 2 {
		t.Fatalf("bitcoin = %+v", data.Bitcoin)
	}
	if tertiary.Calls() != 0 {
		t.Fatal("chain continued after a success")
	}
	// slots without a strategy keep their static values
	if data.SCFI.Value != models.Fallbacks[models.SlotSCFI].Value {
		t.Fatalf("scfi = %+v", data.SCFI)
	}
	assertComplete(t, data)
}

func TestAggregateIndependentFailures(t *testing.T) {
	ok := func(v string) *fakeSource { return &fakeSource{name: "ok", quote: models.Quote{Value: v, Change: 1}} }
	agg := NewMarketAggregator([]Strategy{
		{Slot: models.SlotGold, Sources: []domrepo.QuoteSource{failing("goldapi")}},
		{Slot: models.SlotNasdaq, Sources: []domrepo.QuoteSource{ok("20,000.00")}},
		{Slot: models.SlotFearGreed, Sources: []domrepo.QuoteSource{&fakeSource{name: "fng", quote: models.Quote{Value: "70", Status: "탐욕"}}}},
	}, nil, nil)

	data, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if data.Gold.Value != models.Fallbacks[models.SlotGold].Value {
		t.Fatalf("gold = %+v", data.Gold)
	}
	if data.Nasdaq.Value != "20,000.00" {
		t.Fatalf("nasdaq = %+v", data.Nasdaq)
	}
	if data.FearGreed.Value != "70" || data.FearGreed.Status != "탐욕" {
		t.Fatalf("fearGreed = %+v", data.FearGreed)
	}
	assertComplete(t, data)
}

func TestAggregateHangingSourceBoundedByTimeout(t *testing.T) {
	timeout := 100 * time.Millisecond
	agg := NewMarketAggregator([]Strategy{
		{Slot: models.SlotKOSPI, Sources: []domrepo.QuoteSource{&fakeSource{name: "naver", block: true}}, Timeout: timeout},
		{Slot: models.SlotSP500, Sources: []domrepo.QuoteSource{stubbornSource{}}, Timeout: timeout},
	}, nil, nil)

	start := time.Now()
	data, err := agg.Aggregate(context.Background())
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if elapsed > timeout+time.Second {
		t.Fatalf("aggregate took %v", elapsed)
	}
	if data.KOSPI.Value != models.Fallbacks[models.SlotKOSPI].Value || data.SP500.Value != models.Fallbacks[models.SlotSP500].Value {
		t.Fatalf("expected fallbacks, got %+v %+v", data.KOSPI, data.SP500)
	}
}

func TestAggregatePanickingSourceFallsBack(t *testing.T) {
	agg := NewMarketAggregator([]Strategy{
		{Slot: models.SlotGold, Sources: []domrepo.QuoteSource{panicSource{}}, Timeout: time.Second},
	}, nil, nil)
	data, err := agg.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if data.Gold.Value != models.Fallbacks[models.SlotGold].Value {
		t.Fatalf("gold = %+v", data.Gold)
	}
}

type recordingMetrics struct {
	mu        sync.Mutex
	attempts  map[string]string
	fallbacks []string
	hits      int
	misses    int
}

func (m *recordingMetrics) RecordAttempt(slot, source, outcome string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attempts == nil {
		m.attempts = map[string]string{}
	}
	m.attempts[slot+"/"+source] = outcome
}

func (m *recordingMetrics) RecordFallback(slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, slot)
}

func (m *recordingMetrics) RecordCache(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func TestAggregateRecordsMetrics(t *testing.T) {
	m := &recordingMetrics{}
	agg := NewMarketAggregator([]Strategy{
		{Slot: models.SlotGold, Sources: []domrepo.QuoteSource{failing("goldapi")}},
		{Slot: models.SlotSCFI},
	}, m, nil)
	if _, err := agg.Aggregate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.attempts["gold/goldapi"] != "unknown" {
		t.Fatalf("attempts = %v", m.attempts)
	}
	if len(m.fallbacks) != 1 || m.fallbacks[0] != "gold" {
		t.Fatalf("fallbacks = %v (static slots must not count)", m.fallbacks)
	}
}
