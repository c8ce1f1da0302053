package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"eats-backend/internal/cache"
	"eats-backend/internal/config"
	"eats-backend/internal/events"
	"eats-backend/internal/gateway/payment"
	"eats-backend/internal/http/handlers"
	"eats-backend/internal/http/middleware/ratelimit"
	"eats-backend/internal/http/router"
	"eats-backend/internal/logx"
	"eats-backend/internal/metrics"
	"eats-backend/internal/repository"
	"eats-backend/internal/service/account"
	"eats-backend/internal/service/menu"
	"eats-backend/internal/service/order"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerInfra(container); err != nil {
		return nil, fmt.Errorf("infra: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type metricsOut struct {
	dig.Out

	OrdersCreated     prometheus.Counter `name:"orders_created_total"`
	PaymentCaptures   *prometheus.CounterVec
	PaymentRetries    prometheus.Counter `name:"payment_retries_total"`
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func newMetrics() metricsOut {
	return metricsOut{
		OrdersCreated:     registerCounter(metrics.NewOrdersCreatedTotal()),
		PaymentCaptures:   registerCounterVec(metrics.NewPaymentCapturesTotal()),
		PaymentRetries:    registerCounter(metrics.NewPaymentRetriesTotal()),
		RateLimitExceeded: registerCounter(metrics.NewRateLimitExceededTotal()),
	}
}

// registerCounter registers c, reusing the existing collector when the
// container is built more than once in a process (tests do this).
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

func registerCounterVec(v *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(v); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return v
}

type gatewayIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"payment_retries_total"`
}

func newPaymentGateway(in gatewayIn) payment.Gateway {
	client := &http.Client{Timeout: in.Cfg.Payment.Timeout}
	base := payment.NewHTTPGateway(in.Cfg.Payment.BaseURL, in.Cfg.Payment.Currency, client)
	return payment.NewRetryingGateway(base, in.Logger, in.Retries, payment.RetryConfig{
		MaxAttempts: in.Cfg.Payment.MaxAttempts,
		BaseDelay:   in.Cfg.Payment.BaseDelay,
		MaxDelay:    in.Cfg.Payment.MaxDelay,
	})
}

func registerInfra(container *dig.Container) error {
	return provideAll(container,
		newMetrics,
		newPaymentGateway,
		func(cfg *config.Config) *cache.MenuCache {
			return cache.NewMenuCache(cfg.Redis.Addr, cfg.Redis.MenuTTL)
		},
		func(cfg *config.Config) (*events.Publisher, error) {
			return events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

type orderServiceIn struct {
	dig.In

	Repo      *repository.OrderRepo
	Accounts  *repository.AccountRepo
	Menu      *menu.Service
	Gateway   payment.Gateway
	Publisher *events.Publisher
	Logger    logx.Logger
	Timeout   time.Duration

	Created  prometheus.Counter `name:"orders_created_total"`
	Captures *prometheus.CounterVec
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewAccountRepo,
		repository.NewDishRepo,
		repository.NewOrderRepo,
		func() time.Duration { return 10 * time.Second },
		// Orders read menus through menu.Service so the cache covers
		// the order-validation hot path, not just GET /menu.
		func(in orderServiceIn) *order.Service {
			return order.NewService(
				in.Repo, in.Accounts, in.Menu,
				in.Gateway, in.Publisher, in.Logger, in.Timeout,
			).WithMetrics(in.Created, in.Captures)
		},
		func(
			dishes *repository.DishRepo,
			accounts *repository.AccountRepo,
			menuCache *cache.MenuCache,
			logger logx.Logger,
			timeout time.Duration,
		) *menu.Service {
			return menu.NewService(dishes, accounts, menuCache, logger, timeout)
		},
		func(repo *repository.AccountRepo, logger logx.Logger, timeout time.Duration) *account.Service {
			return account.NewService(repo, logger, timeout)
		},
	)
}

type routerIn struct {
	dig.In

	Cfg       *config.Config
	Logger    logx.Logger
	Base      *handlers.Handlers
	Orders    *handlers.OrderHandler
	Menu      *handlers.MenuHandler
	Accounts  *handlers.AccountHandler
	RateLimit *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	deps := router.Deps{
		Logger:   in.Logger,
		Base:     in.Base,
		Orders:   in.Orders,
		Menu:     in.Menu,
		Accounts: in.Accounts,
	}
	if in.Cfg.RateLimit.Enabled {
		deps.OrderCreateLimit = in.RateLimit.Handler()
	}
	return router.New(deps)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewOrderUsecase,
		handlers.NewOrderHandler,
		handlers.NewMenuUsecase,
		handlers.NewMenuHandler,
		handlers.NewAccountUsecase,
		handlers.NewAccountHandler,
		newRouter,
		serverProvider,
	)
}
