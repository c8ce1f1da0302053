package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"eats-backend/internal/cache"
	"eats-backend/internal/config"
	"eats-backend/internal/events"
	"eats-backend/internal/http/pprofserver"
)

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx       context.Context
	Cfg       *config.Config
	Server    *http.Server
	Pool      *pgxpool.Pool
	Publisher *events.Publisher
	MenuCache *cache.MenuCache
	Logger    *log.Logger
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger)
		startPprof(in.Cfg, in.Logger)
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in, in.Logger)
		return nil
	})
}

func startServer(server *http.Server, logger *log.Logger) {
	go func() {
		logger.Printf("eats-server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprof(cfg *config.Config, logger *log.Logger) {
	if !cfg.Pprof.Enabled {
		return
	}
	go func() {
		logger.Printf("pprof listening on %s", cfg.Pprof.Addr)
		h := pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		})
		srv := &http.Server{
			Addr:              cfg.Pprof.Addr,
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("pprof listen error: %v", err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger *log.Logger) {
	<-ctx.Done()
	logger.Println("shutting down eats-server...")
}

func gracefulShutdown(srv *http.Server, logger *log.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
}

func closeResources(in runIn, logger *log.Logger) {
	if err := in.Server.Close(); err != nil {
		logger.Printf("server close error: %v", err)
	}
	if err := in.Publisher.Close(); err != nil {
		logger.Printf("kafka close error: %v", err)
	}
	if err := in.MenuCache.Close(); err != nil {
		logger.Printf("redis close error: %v", err)
	}
	in.Pool.Close()
}
