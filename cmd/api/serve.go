package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wrp-ops/opsconsole/internal/adapters/httpapi"
	memcatalog "github.com/wrp-ops/opsconsole/internal/adapters/memory/catalog"
	memidempotency "github.com/wrp-ops/opsconsole/internal/adapters/memory/idempotency"
	memrepo "github.com/wrp-ops/opsconsole/internal/adapters/memory/servicerequestrepo"
	postgres "github.com/wrp-ops/opsconsole/internal/adapters/postgres"
	pgidempotency "github.com/wrp-ops/opsconsole/internal/adapters/postgres/idempotency"
	pgrepo "github.com/wrp-ops/opsconsole/internal/adapters/postgres/servicerequestrepo"
	redisadapter "github.com/wrp-ops/opsconsole/internal/adapters/redis"
	redisidempotency "github.com/wrp-ops/opsconsole/internal/adapters/redis/idempotency"
	intakeclient "github.com/wrp-ops/opsconsole/internal/adapters/upstream/intake"
	"github.com/wrp-ops/opsconsole/internal/app/access"
	"github.com/wrp-ops/opsconsole/internal/app/ops"
	"github.com/wrp-ops/opsconsole/internal/app/servicerequests"
	platformclock "github.com/wrp-ops/opsconsole/internal/platform/clock"
	"github.com/wrp-ops/opsconsole/internal/platform/config"
	"github.com/wrp-ops/opsconsole/internal/platform/logging"
	"github.com/wrp-ops/opsconsole/internal/platform/session"
	idempotencyport "github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
	intakeport "github.com/wrp-ops/opsconsole/internal/ports/out/intake"
	servicerequestrepoport "github.com/wrp-ops/opsconsole/internal/ports/out/servicerequestrepo"
)

func runServe(cmd *cobra.Command) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := session.New()
	handler, cleanup, err := buildHandler(ctx, cfg, sess, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		watchSession(gctx, sess, logger.Named("session"))
		return nil
	})
	g.Go(func() error {
		logger.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildHandler wires adapters for the configured backends. cleanup releases
// connections and is safe to call once.
func buildHandler(ctx context.Context, cfg config.Config, sess *session.Provider, logger *zap.Logger) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (http.Handler, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	rules, err := config.LoadAccessRules(cfg.AccessConfig)
	if err != nil {
		return fail(err)
	}
	routes, err := access.NewRouteTable(rules)
	if err != nil {
		return fail(fmt.Errorf("invalid access rules: %w", err))
	}

	clk := platformclock.NewSystemClock()

	var (
		repo      servicerequestrepoport.Repository
		idemStore idempotencyport.Store
	)

	if cfg.StorageBackend == config.StoragePostgres || cfg.IdempotencyBackend == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			return fail(fmt.Errorf("invalid postgres config: %w", err))
		}
		closers = append(closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fail(fmt.Errorf("migrate: %w", err))
		}
		if cfg.StorageBackend == config.StoragePostgres {
			repo = pgrepo.NewRepo(pool)
		}
		if cfg.IdempotencyBackend == config.StoragePostgres {
			idemStore = pgidempotency.NewStore(pool)
		}
	}
	if repo == nil {
		repo = memrepo.NewRepo()
	}

	switch cfg.IdempotencyBackend {
	case config.StorageRedis:
		rdb, err := redisadapter.NewClient(ctx, redisadapter.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return fail(fmt.Errorf("redis: %w", err))
		}
		closers = append(closers, func() { _ = rdb.Close() })
		idemStore = redisidempotency.NewStore(rdb, cfg.IdempotencyTTL)
	case config.StorageMemory:
		idemStore = memidempotency.NewStore(memidempotency.WithTTL(cfg.IdempotencyTTL, clk))
	}

	var fwd intakeport.Forwarder = intakeclient.NewLogForwarder(logger.Named("intake"))
	if cfg.IntakeURL != "" {
		fwd = intakeclient.NewClient(cfg.IntakeURL, nil, cfg.IntakeTimeout)
	}

	api := httpapi.NewServer(
		sess,
		ops.NewService(memcatalog.New(clk)),
		servicerequests.NewService(repo, fwd, clk, logger.Named("servicerequests")),
		idemStore,
		logger,
	)
	handler := httpapi.NewRouter(api, httpapi.RouterOptions{
		Routes: routes,
		Logger: logger.Named("http"),
	})
	return handler, cleanup, nil
}

// watchSession logs every identity the console switches to until ctx is done.
func watchSession(ctx context.Context, sess *session.Provider, logger *zap.Logger) {
	for id := range sess.Subscribe(ctx) {
		logger.Info("identity changed",
			zap.String("id", id.ID),
			zap.String("role", string(id.Role)),
		)
	}
}
