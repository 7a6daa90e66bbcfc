package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	"MoneyRoutine/internal/service/quotes"
	applogger "MoneyRoutine/pkg/logger"
)

const defaultSourceTimeout = 5 * time.Second

// Strategy resolves one slot: live sources are tried in order, each bounded by
// Timeout, and Fallback is used when all of them fail. A strategy without
// sources always yields Fallback.
type Strategy struct {
	Slot     models.Slot
	Sources  []domrepo.QuoteSource
	Timeout  time.Duration
	Fallback models.Quote
}

// MarketAggregator builds one complete MarketData per call.
type MarketAggregator struct {
	strategies []Strategy
	metrics    domrepo.MarketMetrics
	log        *applogger.Logger
}

func NewMarketAggregator(strategies []Strategy, metrics domrepo.MarketMetrics, log *applogger.Logger) *MarketAggregator {
	if log == nil {
		log = applogger.Nop()
	}
	return &MarketAggregator{strategies: strategies, metrics: metrics, log: log}
}

// Aggregate resolves every strategy concurrently and waits for all of them.
// Slots with no strategy keep their static fallback. Source failures never
// surface here; the only error is a panic in the composition itself.
func (a *MarketAggregator) Aggregate(ctx context.Context) (models.MarketData, error) {
	results := make([]models.Quote, len(a.strategies))

	var wg conc.WaitGroup
	for i, s := range a.strategies {
		i, s := i, s
		wg.Go(func() {
			results[i] = a.resolve(ctx, s)
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		return models.MarketData{}, fmt.Errorf("market aggregation: %w", r.AsError())
	}

	out := models.FallbackMarketData()
	for i, s := range a.strategies {
		out.Set(s.Slot, results[i])
	}
	return out, nil
}

func (a *MarketAggregator) resolve(ctx context.Context, s Strategy) models.Quote {
	for _, src := range s.Sources {
		q, err := a.attempt(ctx, s, src)
		if err == nil {
			return q
		}
		a.log.Debug("market source failed",
			applogger.String("slot", string(s.Slot)),
			applogger.String("source", src.Name()),
			applogger.Error(err),
		)
	}

	fb := s.Fallback
	if fb.Value == "" {
		fb = models.Fallbacks[s.Slot]
	}
	if len(s.Sources) > 0 {
		a.log.Info("market slot using fallback", applogger.String("slot", string(s.Slot)))
		if a.metrics != nil {
			a.metrics.RecordFallback(string(s.Slot))
		}
	}
	return fb
}

type fetchResult struct {
	q   models.Quote
	err error
}

// attempt runs one source under its own deadline. The select keeps the bound
// even when a source ignores its context; a panicking source counts as a failure.
func (a *MarketAggregator) attempt(ctx context.Context, s Strategy, src domrepo.QuoteSource) (models.Quote, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	ch := make(chan fetchResult, 1)
	go func() {
		var res fetchResult
		var pc panics.Catcher
		pc.Try(func() { res.q, res.err = src.Fetch(ctx) })
		if r := pc.Recovered(); r != nil {
			res.err = r.AsError()
		}
		ch <- res
	}()

	var res fetchResult
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.err = fmt.Errorf("%s: %w", src.Name(), ctx.Err())
	}
	if res.err == nil && res.q.Value == "" {
		res.err = fmt.Errorf("%s: empty value", src.Name())
	}

	if a.metrics != nil {
		outcome := "ok"
		if res.err != nil {
			outcome = quotes.Class(res.err)
		}
		a.metrics.RecordAttempt(string(s.Slot), src.Name(), outcome, time.Since(start).Seconds())
	}
	return res.q, res.err
}
