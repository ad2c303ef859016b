package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coffeecraft/coffeecraft-backend/config"
	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
	authrepo "github.com/coffeecraft/coffeecraft-backend/internal/auth/repository"
	authservice "github.com/coffeecraft/coffeecraft-backend/internal/auth/service"
	"github.com/coffeecraft/coffeecraft-backend/internal/bootstrap"
	"github.com/coffeecraft/coffeecraft-backend/internal/logging"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/catalog"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/customizer"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/daily"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/enhancer"
	recipehttp "github.com/coffeecraft/coffeecraft-backend/internal/recipes/http"
	reciperepo "github.com/coffeecraft/coffeecraft-backend/internal/recipes/repository"
	recipeservice "github.com/coffeecraft/coffeecraft-backend/internal/recipes/service"
	"github.com/coffeecraft/coffeecraft-backend/internal/storage/postgres"
)

const serviceName = "coffeecraft-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not built yet
		panic(err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	selector := catalog.NewSelector(cat)
	logger.Info("catalog loaded", zap.Int("recipes", cat.Len()), zap.String("path", cfg.Catalog.Path))

	opts := []recipeservice.Option{recipeservice.WithLogger(logger)}

	switch cfg.Generator.Mode {
	case config.GeneratorLocal:
		opts = append(opts, recipeservice.WithEnhancer(enhancer.NewLocalEnhancer(enhancer.NewFlavorGenerator())))
	case config.GeneratorRemote:
		opts = append(opts, recipeservice.WithEnhancer(enhancer.NewHTTPClient(
			cfg.Generator.URL, cfg.Generator.Timeout, cfg.Generator.RPS, cfg.Generator.Burst,
		)))
	}
	logger.Info("recipe generator", zap.String("mode", cfg.Generator.Mode))

	var (
		pool  *pgxpool.Pool
		sqlDB *sql.DB
		rdb   *redis.Client
		feed  recipehttp.DailyFeed
		authS *authservice.AuthService
	)

	if cfg.Database.Enabled {
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      postgres.DSN(&cfg.Database),
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		sqlDB, err = postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		opts = append(opts, recipeservice.WithHistory(reciperepo.NewHistoryRepository(sqlDB)))
	} else {
		logger.Warn("postgres disabled: history and accounts unavailable")
	}

	if cfg.Redis.Enabled {
		rdb, err = bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()

		opts = append(opts, recipeservice.WithFavorites(reciperepo.NewFavoriteRepository(rdb)))

		publisher := daily.NewPublisher(rdb, selector, logger.Named("daily"))
		feed = publisher

		if cfg.Daily.Enabled {
			scheduler, err := daily.NewScheduler(cfg.Daily.Schedule, publisher, logger.Named("daily"))
			if err != nil {
				return err
			}
			scheduler.Start()
			defer scheduler.Stop()
		}
	} else {
		logger.Warn("redis disabled: favorites and daily feed unavailable")
	}

	var verifier auth.TokenVerifier = auth.DevVerifier{}
	var creator authservice.UserCreator
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return err
		}
		verifier = auth.NewFirebaseVerifier(client)
		creator = client
	} else {
		logger.Warn("firebase not configured: accepting bearer tokens as user ids")
	}

	if sqlDB != nil {
		authS = authservice.NewAuthService(authrepo.NewUserRepository(sqlDB), creator)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.App.CORSOrigins,
		Logger:      logger,
		DB:          pool,
		Redis:       rdb,
		Recipes:     recipeservice.NewRecipeService(selector, customizer.New(), opts...),
		CatalogSize: cat.Len(),
		Daily:       feed,
		Auth:        authS,
		Verifier:    verifier,
	})

	srv := bootstrap.NewServer(":"+cfg.Server.Port, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
