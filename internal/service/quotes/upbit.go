package quotes

import (
	"context"

	"github.com/shopspring/decimal"

	"MoneyRoutine/internal/domain/models"
)

type upbitTicker struct {
	Market           string   `json:"market"`
	TradePrice       *float64 `json:"trade_price"`
	SignedChangeRate *float64 `json:"signed_change_rate"`
}

// UpbitSource reads the KRW spot price of a coin.
type UpbitSource struct {
	provider
	market string
}

func NewUpbitSource(baseURL, market string, limiter Limiter) *UpbitSource {
	return &UpbitSource{provider: newProvider("upbit", baseURL, limiter), market: market}
}

func (s *UpbitSource) Name() string { return "upbit" }

func (s *UpbitSource) Fetch(ctx context.Context) (models.Quote, error) {
	var tickers []upbitTicker
	req := s.client.R().SetQueryParam("markets", s.market)
	if err := s.get(ctx, req, "/v1/ticker", &tickers); err != nil {
		return models.Quote{}, err
	}
	if len(tickers) == 0 {
		return models.Quote{}, newValidationError(s.Name(), "empty ticker list")
	}
	t := tickers[0]
	if t.TradePrice == nil || *t.TradePrice <= 0 {
		return models.Quote{}, newValidationError(s.Name(), "missing trade_price")
	}
	var change float64
	if t.SignedChangeRate != nil {
		change = Ratio(decimal.NewFromFloat(*t.SignedChangeRate))
	}
	return models.Quote{Value: FormatInteger(decimal.NewFromFloat(*t.TradePrice)), Change: change}, nil
}
