package quotes

import (
	"context"

	"github.com/shopspring/decimal"

	"MoneyRoutine/internal/domain/models"
)

// GramsPerTroyOunce converts per-ounce spot quotes to per-gram prices.
var GramsPerTroyOunce = decimal.RequireFromString("31.1035")

type goldAPIQuote struct {
	Price *float64 `json:"price"`
	CHP   *float64 `json:"chp"`
}

// GoldAPISource reads the XAU spot price in a quote currency from goldapi.io.
type GoldAPISource struct {
	provider
	apiKey   string
	currency string
}

func NewGoldAPISource(baseURL, apiKey, currency string, limiter Limiter) *GoldAPISource {
	return &GoldAPISource{
		provider: newProvider("goldapi", baseURL, limiter),
		apiKey:   apiKey,
		currency: currency,
	}
}

func (s *GoldAPISource) Name() string { return "goldapi" }

func (s *GoldAPISource) Fetch(ctx context.Context) (models.Quote, error) {
	if s.apiKey == "" {
		return models.Quote{}, newValidationError(s.Name(), "api key not configured")
	}
	var body goldAPIQuote
	req := s.client.R().
		SetHeader("x-access-token", s.apiKey).
		SetPathParam("currency", s.currency)
	if err := s.get(ctx, req, "/api/XAU/{currency}", &body); err != nil {
		return models.Quote{}, err
	}
	if body.Price == nil || *body.Price <= 0 {
		return models.Quote{}, newValidationError(s.Name(), "missing price")
	}
	perGram := decimal.NewFromFloat(*body.Price).Div(GramsPerTroyOunce)
	var change float64
	if body.CHP != nil {
		change = Round2(decimal.NewFromFloat(*body.CHP))
	}
	return models.Quote{Value: FormatInteger(perGram), Change: change}, nil
}
