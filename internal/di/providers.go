package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domrepo "MoneyRoutine/internal/domain/repository"
	domsvc "MoneyRoutine/internal/domain/service"
	"MoneyRoutine/internal/handler/api"
	internalrepo "MoneyRoutine/internal/repository"
	"MoneyRoutine/internal/repository/memory"
	pgstore "MoneyRoutine/internal/repository/postgres"
	"MoneyRoutine/internal/service/auth"
	icache "MoneyRoutine/internal/service/cache"
	sinkmetrics "MoneyRoutine/internal/service/metrics"
	"MoneyRoutine/internal/service/render"
	"MoneyRoutine/internal/usecase"
	pkgch "MoneyRoutine/pkg/clickhouse"
	"MoneyRoutine/pkg/config"
	xhttp "MoneyRoutine/pkg/http"
	pkgkafka "MoneyRoutine/pkg/kafka"
	applogger "MoneyRoutine/pkg/logger"
	"MoneyRoutine/pkg/metrics"
	"MoneyRoutine/pkg/postgres"
	"MoneyRoutine/pkg/server"
)

const historyTable = "market_snapshots"

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMarketMetrics registers the market recorder when metrics are on.
func ProvideMarketMetrics(cfg *config.Config) domrepo.MarketMetrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	sinkmetrics.Register()
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideNoMarketMetrics is used by one-shot commands that expose nothing.
func ProvideNoMarketMetrics() domrepo.MarketMetrics {
	return nil
}

func ProvideMarketAggregator(strategies []usecase.Strategy, m domrepo.MarketMetrics, log *applogger.Logger) *usecase.MarketAggregator {
	return usecase.NewMarketAggregator(strategies, m, log.With(applogger.String("component", "market")))
}

// ProvideSnapshotCache selects the snapshot cache backend.
func ProvideSnapshotCache(ctx context.Context, cfg *config.Config) (domrepo.SnapshotCache, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := icache.NewRedisCache(ctx, icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	default:
		return icache.NewTTLCache(), func() {}, nil
	}
}

// ProvideSnapshotHistory connects to ClickHouse when history is enabled; a nil
// history disables the endpoint.
func ProvideSnapshotHistory(ctx context.Context, cfg *config.Config) (domrepo.SnapshotHistory, func(), error) {
	if !cfg.History.Enabled {
		return nil, func() {}, nil
	}
	ch := cfg.History.ClickHouse
	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithHTTP(ch.UseHTTP),
		pkgch.WithDialTimeout(ch.DialTimeout),
		pkgch.WithAsyncInsert(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.InitSchema(schemaCtx, internalrepo.HistorySchema(historyTable)); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return internalrepo.NewClickHouseHistory(client.DB(), historyTable), func() { _ = client.Close() }, nil
}

func ProvideMarketService(
	agg *usecase.MarketAggregator,
	cache domrepo.SnapshotCache,
	history domrepo.SnapshotHistory,
	m domrepo.MarketMetrics,
	cfg *config.Config,
	log *applogger.Logger,
) *usecase.MarketService {
	return usecase.NewMarketService(agg,
		usecase.WithSnapshotCache(cache, cfg.Market.CacheTTL),
		usecase.WithSnapshotHistory(history),
		usecase.WithMarketMetrics(m),
		usecase.WithMarketLogger(log),
	)
}

// ProvideContentStore opens the configured content backend.
func ProvideContentStore(ctx context.Context, cfg *config.Config, log *applogger.Logger) (domrepo.ContentStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Store.Postgres.DSN, postgres.WithMaxConns(cfg.Store.Postgres.MaxConns))
		if err != nil {
			return nil, nil, err
		}
		store := pgstore.New(pool)
		if err := store.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("content store: postgres")
		return store, func() { _ = store.Close() }, nil
	default:
		store := memory.New()
		if cfg.Store.Seed {
			if err := store.Seed(ctx); err != nil {
				return nil, nil, fmt.Errorf("seed content: %w", err)
			}
		}
		log.Info("content store: memory", applogger.Bool("seeded", cfg.Store.Seed))
		return store, func() {}, nil
	}
}

// ProvideEventPublisher creates the Kafka publisher when events are enabled.
func ProvideEventPublisher(cfg *config.Config) (domrepo.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		return internalrepo.NopEvents{}, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithTopic(cfg.Events.Topic),
		pkgkafka.WithWriteTimeout(cfg.Events.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaEvents(producer)
	return pub, func() { _ = pub.Close() }, nil
}

func ProvideRenderer() usecase.Renderer {
	return render.NewMarkdown()
}

func ProvideContentService(store domrepo.ContentStore, events domrepo.EventPublisher, r usecase.Renderer, log *applogger.Logger) *usecase.ContentService {
	return usecase.NewContentService(store, events, r, log.With(applogger.String("component", "content")))
}

// ProvideAuthenticator uses ADMIN_PASSWORD (via config) or the built-in default.
func ProvideAuthenticator(cfg *config.Config) domsvc.Authenticator {
	return auth.NewSharedSecret(cfg.Admin.Password)
}

func ProvideRouter(cfg *config.Config, log *applogger.Logger, market *usecase.MarketService, content *usecase.ContentService, a domsvc.Authenticator) xhttp.Handler {
	return api.NewRouter(
		api.NewMarketHandler(log, market, cfg.Market.StreamInterval),
		api.NewContentHandler(log, content),
		api.NewAdminHandler(log, a),
	)
}

func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, log *applogger.Logger) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORSOrigins...),
		xhttp.WithLogger(log),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(prometheus.DefaultGatherer))
	}
	return xhttp.NewServer(h, opts...)
}

func ProvideApp(srv *xhttp.Server, log *applogger.Logger) *server.App {
	return server.New(srv, log)
}
