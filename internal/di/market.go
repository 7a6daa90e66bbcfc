package di

import (
	"time"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	"MoneyRoutine/internal/service/quotes"
	"MoneyRoutine/internal/service/ratelimit"
	"MoneyRoutine/internal/usecase"
	"MoneyRoutine/pkg/config"
)

// ProvideLimiter creates the per-provider outbound rate limiter.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Market.RateLimit.RPS, cfg.Market.RateLimit.Burst)
}

// ProvideStrategies lists the live sources of every slot in the order they
// are tried. scfi has none and always shows its static reading.
func ProvideStrategies(cfg *config.Config, limiter *ratelimit.Limiter) []usecase.Strategy {
	src := cfg.Market.Sources
	timeout := cfg.Market.Timeout

	strategy := func(slot models.Slot, t time.Duration, sources ...domrepo.QuoteSource) usecase.Strategy {
		return usecase.Strategy{Slot: slot, Sources: sources, Timeout: t, Fallback: models.Fallbacks[slot]}
	}

	return []usecase.Strategy{
		strategy(models.SlotUSDKRW, timeout,
			quotes.NewExchangeRateSource(src.ExchangeRateURL, "KRW", limiter, time.Now),
			quotes.NewYahooSource(src.YahooURL, "KRW=X", quotes.StyleFixed2, limiter),
		),
		strategy(models.SlotGold, cfg.Market.GoldTimeout,
			quotes.NewGoldAPISource(src.GoldAPIURL, src.GoldAPIKey, "KRW", limiter),
		),
		strategy(models.SlotSP500, timeout,
			quotes.NewYahooSource(src.YahooURL, "SPY", quotes.StyleFixed2, limiter),
		),
		strategy(models.SlotBitcoin, timeout,
			quotes.NewUpbitSource(src.UpbitURL, "KRW-BTC", limiter),
			quotes.NewBithumbSource(src.BithumbURL, "BTC_KRW", limiter),
		),
		strategy(models.SlotNasdaq, timeout,
			quotes.NewYahooSource(src.YahooURL, "^IXIC", quotes.StyleFixed2, limiter),
		),
		strategy(models.SlotKOSPI, timeout,
			quotes.NewNaverSource(src.NaverURL, "069500", limiter),
			quotes.NewYahooSource(src.YahooURL, "069500.KS", quotes.StyleInteger, limiter),
		),
		strategy(models.SlotFearGreed, timeout,
			quotes.NewFearGreedSource(src.FearGreedURL, limiter),
		),
		strategy(models.SlotSCFI, 0),
	}
}
