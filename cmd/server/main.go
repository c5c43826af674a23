package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/fuelstation/internal/api"
	"github.com/Spok95/fuelstation/internal/config"
	"github.com/Spok95/fuelstation/internal/domain/equipment"
	"github.com/Spok95/fuelstation/internal/domain/meters"
	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/domain/stock"
	"github.com/Spok95/fuelstation/internal/infra/db"
	httpx "github.com/Spok95/fuelstation/internal/infra/http"
	"github.com/Spok95/fuelstation/internal/infra/logger"
	"github.com/Spok95/fuelstation/internal/metrics"
	"github.com/Spok95/fuelstation/internal/scheduler"
	"github.com/Spok95/fuelstation/internal/service"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	mets := metrics.New(prometheus.DefaultRegisterer)

	equipRepo := equipment.NewRepo(pool)
	meterRepo := meters.NewRepo(pool)
	stockRepo := stock.NewRepo(pool)
	reconRepo := reconcile.NewRepo(pool)

	svc := service.New(log, equipRepo, meterRepo, stockRepo, reconRepo, mets)

	if cfg.Scheduler.Enabled {
		sch := scheduler.New(svc, log)
		if err := sch.Start(cfg.Scheduler.StockCron); err != nil {
			log.Error("scheduler start failed", "err", err)
			return
		}
		defer sch.Stop()
		log.Info("stock scan scheduled", "cron", cfg.Scheduler.StockCron)
	}

	handler := api.NewHandler(svc, equipRepo, log)
	router := api.NewRouter(handler, log, cfg.Metrics.Enabled)

	srv := httpx.New(cfg.HTTP.Addr, router)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
