package quotes

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"MoneyRoutine/internal/domain/models"
	"MoneyRoutine/pkg/util"
)

type erLatest struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// ExchangeRateSource reads USD based rates from open.er-api.com. The feed has
// no change field, so the change is measured against the last rate this
// process saw on an earlier calendar day.
type ExchangeRateSource struct {
	provider
	currency string
	ref      *referenceRate
}

func NewExchangeRateSource(baseURL, currency string, limiter Limiter, now func() time.Time) *ExchangeRateSource {
	if now == nil {
		now = time.Now
	}
	return &ExchangeRateSource{
		provider: newProvider("exchangerate", baseURL, limiter),
		currency: currency,
		ref:      &referenceRate{now: now},
	}
}

func (s *ExchangeRateSource) Name() string { return "exchangerate" }

func (s *ExchangeRateSource) Fetch(ctx context.Context) (models.Quote, error) {
	var body erLatest
	if err := s.get(ctx, s.client.R(), "/v6/latest/USD", &body); err != nil {
		return models.Quote{}, err
	}
	if body.Result != "" && body.Result != "success" {
		return models.Quote{}, newValidationError(s.Name(), "result %q", body.Result)
	}
	rate, ok := body.Rates[s.currency]
	if !ok || rate <= 0 {
		return models.Quote{}, newValidationError(s.Name(), "missing rate for %s", s.currency)
	}
	d := decimal.NewFromFloat(rate)
	return models.Quote{Value: FormatFixed2(d), Change: s.ref.observe(d)}, nil
}

// referenceRate remembers the last rate per Asia/Seoul day.
type referenceRate struct {
	mu      sync.Mutex
	now     func() time.Time
	day     string
	last    decimal.Decimal
	prev    decimal.Decimal
	hasPrev bool
}

// observe records rate and returns its percent change against the previous day's last rate, or 0.
func (r *referenceRate) observe(rate decimal.Decimal) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := util.DayKey(r.now())
	if r.day != "" && r.day != day {
		r.prev = r.last
		r.hasPrev = true
	}
	r.day = day
	r.last = rate

	if !r.hasPrev {
		return 0
	}
	change, _ := PercentChange(rate, r.prev)
	return change
}
