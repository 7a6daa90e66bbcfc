package quotes

import (
	"context"

	"MoneyRoutine/internal/domain/models"
)

type naverBasic struct {
	StockName         string `json:"stockName"`
	ClosePrice        string `json:"closePrice"`
	FluctuationsRatio string `json:"fluctuationsRatio"`
}

// NaverSource reads a KRX listing from the Naver mobile stock API. Prices
// arrive as grouped text ("35,120").
type NaverSource struct {
	provider
	code string
}

func NewNaverSource(baseURL, code string, limiter Limiter) *NaverSource {
	return &NaverSource{provider: newProvider("naver", baseURL, limiter), code: code}
}

func (s *NaverSource) Name() string { return "naver:" + s.code }

func (s *NaverSource) Fetch(ctx context.Context) (models.Quote, error) {
	var body naverBasic
	req := s.client.R().SetPathParam("code", s.code)
	if err := s.get(ctx, req, "/api/stock/{code}/basic", &body); err != nil {
		return models.Quote{}, err
	}
	price, err := ParseNumber(body.ClosePrice)
	if err != nil || !price.IsPositive() {
		return models.Quote{}, newValidationError(s.Name(), "closePrice %q", body.ClosePrice)
	}
	ratio, err := ParseNumber(body.FluctuationsRatio)
	if err != nil {
		return models.Quote{}, newValidationError(s.Name(), "fluctuationsRatio %q", body.FluctuationsRatio)
	}
	return models.Quote{Value: FormatInteger(price), Change: Round2(ratio)}, nil
}
