package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "millcreek_parks/internal/adapters/http_server"
	"millcreek_parks/internal/adapters/mymemory"
	"millcreek_parks/internal/adapters/observability"
	redisad "millcreek_parks/internal/adapters/redis"
	"millcreek_parks/internal/app"
	"millcreek_parks/internal/langid"
	"millcreek_parks/internal/sentiment"
	"millcreek_parks/internal/shared"
	mysqlrepo "millcreek_parks/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	translator := mymemory.New(cfg.TranslateBase, cfg.TranslateUA, cfg.TranslateRPS)
	hub := app.NewHub()
	ing := app.NewIngestionService(langid.New(), translator, repo, cache, hub)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL, sentiment.SchemeFromString(cfg.Scheme), shared.Parks)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Ing: ing, Hub: hub})

	log.Info().Str("addr", cfg.HTTPAddr).Str("scheme", cfg.Scheme).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
