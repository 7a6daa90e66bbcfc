package quotes

import (
	"context"

	"MoneyRoutine/internal/domain/models"
)

type bithumbTicker struct {
	Status string `json:"status"`
	Data   struct {
		ClosingPrice   string `json:"closing_price"`
		FluctateRate24 string `json:"fluctate_rate_24H"`
	} `json:"data"`
}

// BithumbSource is the secondary KRW spot source for a coin.
type BithumbSource struct {
	provider
	pair string
}

func NewBithumbSource(baseURL, pair string, limiter Limiter) *BithumbSource {
	return &BithumbSource{provider: newProvider("bithumb", baseURL, limiter), pair: pair}
}

func (s *BithumbSource) Name() string { return "bithumb" }

func (s *BithumbSource) Fetch(ctx context.Context) (models.Quote, error) {
	var body bithumbTicker
	req := s.client.R().SetPathParam("pair", s.pair)
	if err := s.get(ctx, req, "/public/ticker/{pair}", &body); err != nil {
		return models.Quote{}, err
	}
	if body.Status != "0000" {
		return models.Quote{}, newValidationError(s.Name(), "status %q", body.Status)
	}
	price, err := ParseNumber(body.Data.ClosingPrice)
	if err != nil || !price.IsPositive() {
		return models.Quote{}, newValidationError(s.Name(), "closing_price %q", body.Data.ClosingPrice)
	}
	var change float64
	if rate, err := ParseNumber(body.Data.FluctateRate24); err == nil {
		change = Round2(rate)
	}
	return models.Quote{Value: FormatInteger(price), Change: change}, nil
}
