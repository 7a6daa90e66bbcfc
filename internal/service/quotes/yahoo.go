package quotes

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"MoneyRoutine/internal/domain/models"
)

const (
	yahooPricePath     = "$.chart.result[0].meta.regularMarketPrice"
	yahooPrevClosePath = "$.chart.result[0].meta.chartPreviousClose"
)

// YahooSource reads the chart endpoint of one symbol. The chart payload is
// deeply nested and varies per instrument, so it is decoded loosely and read
// with JSON paths.
type YahooSource struct {
	provider
	symbol string
	style  Style
}

func NewYahooSource(baseURL, symbol string, style Style, limiter Limiter) *YahooSource {
	return &YahooSource{
		provider: newProvider("yahoo", baseURL, limiter),
		symbol:   symbol,
		style:    style,
	}
}

func (s *YahooSource) Name() string { return "yahoo:" + s.symbol }

func (s *YahooSource) Fetch(ctx context.Context) (models.Quote, error) {
	var body map[string]any
	req := s.client.R().
		SetPathParam("symbol", s.symbol).
		SetQueryParams(map[string]string{"interval": "1d", "range": "1d"})
	if err := s.get(ctx, req, "/v8/finance/chart/{symbol}", &body); err != nil {
		return models.Quote{}, err
	}

	price, err := jsonNumber(body, yahooPricePath)
	if err != nil {
		return models.Quote{}, newValidationError(s.Name(), "price: %v", err)
	}
	prev, err := jsonNumber(body, yahooPrevClosePath)
	if err != nil {
		return models.Quote{}, newValidationError(s.Name(), "previous close: %v", err)
	}
	change, ok := PercentChange(price, prev)
	if !ok {
		return models.Quote{}, newValidationError(s.Name(), "previous close is zero")
	}
	return models.Quote{Value: s.style.Format(price), Change: change}, nil
}

// jsonNumber evaluates path against a decoded JSON document and expects a positive number.
func jsonNumber(doc any, path string) (decimal.Decimal, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, err
	}
	// jsonpath may wrap a single match in a list
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, fmt.Errorf("no match for %s", path)
		}
		v = list[0]
	}
	f, ok := v.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s is not a number: %v", path, v)
	}
	if f <= 0 {
		return decimal.Zero, fmt.Errorf("%s is not positive: %v", path, f)
	}
	return decimal.NewFromFloat(f), nil
}
