package quotes

import (
	"context"
	"strconv"
	"strings"

	"MoneyRoutine/internal/domain/models"
)

// sentimentLabels maps the index's English buckets to the displayed vocabulary.
var sentimentLabels = map[string]string{
	"Extreme Fear":  "극단적 공포",
	"Fear":          "공포",
	"Neutral":       "중립",
	"Greed":         "탐욕",
	"Extreme Greed": "극단적 탐욕",
}

// LocalizeSentiment translates a classification label. Unknown labels pass through.
func LocalizeSentiment(label string) string {
	if v, ok := sentimentLabels[label]; ok {
		return v
	}
	return label
}

type fngResponse struct {
	Data []struct {
		Value               string `json:"value"`
		ValueClassification string `json:"value_classification"`
	} `json:"data"`
}

// FearGreedSource reads the latest crypto fear and greed index from alternative.me.
type FearGreedSource struct {
	provider
}

func NewFearGreedSource(baseURL string, limiter Limiter) *FearGreedSource {
	return &FearGreedSource{provider: newProvider("feargreed", baseURL, limiter)}
}

func (s *FearGreedSource) Name() string { return "feargreed" }

func (s *FearGreedSource) Fetch(ctx context.Context) (models.Quote, error) {
	var body fngResponse
	req := s.client.R().SetQueryParam("limit", "1")
	if err := s.get(ctx, req, "/fng/", &body); err != nil {
		return models.Quote{}, err
	}
	if len(body.Data) == 0 {
		return models.Quote{}, newValidationError(s.Name(), "empty data")
	}
	d := body.Data[0]
	value := strings.TrimSpace(d.Value)
	if n, err := strconv.Atoi(value); err != nil || n < 0 || n > 100 {
		return models.Quote{}, newValidationError(s.Name(), "value %q", d.Value)
	}
	return models.Quote{Value: value, Status: LocalizeSentiment(d.ValueClassification)}, nil
}
