package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"millcreek_parks/internal/adapters/mymemory"
	"millcreek_parks/internal/adapters/observability"
	"millcreek_parks/internal/app"
	"millcreek_parks/internal/langid"
	"millcreek_parks/internal/shared"
	mysqlrepo "millcreek_parks/internal/storage/mysql"
)

// Reconciliation pass: re-annotates stored reviews that are still missing a
// sentiment score, a detected language, or a translation. Runs to completion
// and exits; scheduling is external (cron).
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.TranslateBase).
		Dur("delay", cfg.BackfillDelay).
		Msg("backfill starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	translator := app.PaceTranslator(
		mymemory.New(cfg.TranslateBase, cfg.TranslateUA, cfg.TranslateRPS),
		cfg.BackfillDelay,
	)
	ing := app.NewIngestionService(langid.New(), translator, repo, nil, nil)

	n, err := ing.Backfill(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("backfill failed")
	}
	log.Info().Int("updated", n).Msg("backfill completed")
}
