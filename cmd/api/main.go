package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/api/handlers"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/auth"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/cache"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/config"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/db"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/feed"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/fx"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/logger"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/metrics"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/middleware"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/repository/postgres"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/services"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/store"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	local, err := store.OpenLocal(cfg.LocalStorePath)
	if err != nil {
		log.Error("local fallback store", "err", err)
		os.Exit(1)
	}
	defer local.Close()

	var rateCache cache.Cache
	if cfg.RedisAddr != "" {
		rateCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	} else {
		rateCache = cache.NewMemory()
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	balances := services.NewBalanceStore(repos.Profiles, local, cfg.CallTimeout, cfg.ReadRetries, log)
	expenseSvc := services.NewExpenseService(repos.Expenses, balances, cfg.CallTimeout, log)
	studySvc := services.NewStudyService(repos.StudyItems, cfg.CallTimeout)
	fxSvc := fx.NewService(rateCache, cfg.FxRateURL, cfg.FxFallbackRate, log)

	listener := feed.NewListener(pool, wp, log)
	feedDone := make(chan struct{})
	go func() {
		listener.Run(ctx)
		close(feedDone)
	}()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		Auth:    handlers.NewAuthHandler(tm, repos.Profiles, cfg),
		Expense: handlers.NewExpenseHandler(expenseSvc, repos.Profiles, listener),
		Study:   handlers.NewStudyHandler(studySvc),
		Fx:      handlers.NewFxHandler(fxSvc),
		AuthMW:  middleware.NewAuthMiddleware(tm),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	// the listener submits to the pool; wait for it before Stop closes the queue
	<-feedDone
}
