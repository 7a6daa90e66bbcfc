package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecorderRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.RecordAttempt("bitcoin", "upbit", "ok", 0.2)
	r.RecordFallback("gold")
	r.RecordCache(true)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"moneyroutine_market_source_attempts_total",
		"moneyroutine_market_source_duration_seconds",
		"moneyroutine_market_fallbacks_total",
		"moneyroutine_market_cache_requests_total",
	} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
