package main

import (
	"context"
	"database/sql"
	"math/rand"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"millcreek_parks/internal/adapters/mymemory"
	"millcreek_parks/internal/adapters/observability"
	"millcreek_parks/internal/app"
	"millcreek_parks/internal/domain"
	"millcreek_parks/internal/langid"
	"millcreek_parks/internal/shared"
	mysqlrepo "millcreek_parks/internal/storage/mysql"
)

// Seeds multilingual sample reviews through the real ingestion pipeline so
// seeded rows carry the same annotations a live submission would.

var sampleComments = map[string][]string{
	"en": {
		"The park is huge, lots to explore!",
		"Loved the walking trails and the fresh air.",
		"Great place to bring the kids on weekends.",
		"Peaceful and clean, ideal for a morning run.",
		"Plenty of open space for picnics and sports.",
		"Nice facilities and friendly environment.",
		"Good shade and lots of benches to relax.",
		"Not very crowded on weekdays, love it!",
		"Would recommend for a casual weekend outing.",
		"Trash bins could be more frequent but still a great park.",
	},
	"es": {
		"El parque es enorme, ¡mucho por explorar!",
		"Me encantaron los senderos y el aire fresco.",
		"Un gran lugar para llevar a los niños los fines de semana.",
		"Muy tranquilo y limpio, perfecto para correr por la mañana.",
		"Buena sombra y muchas zonas verdes para descansar.",
	},
	"fr": {
		"Le parc est immense, plein de choses à explorer !",
		"J'ai adoré les sentiers et l'air frais.",
		"Super endroit pour amener les enfants le week-end.",
		"Très calme, parfait pour une promenade.",
		"Des bancs partout, très pratique.",
	},
	"de": {
		"Der Park ist riesig, viel zu entdecken!",
		"Ich liebte die Wanderwege und die frische Luft.",
		"Toller Ort, um am Wochenende mit den Kindern hinzugehen.",
		"Ruhig und gepflegt, ideal für Spaziergänge.",
		"Viele Sitzgelegenheiten und Spielplätze.",
	},
	"hi": {
		"यह पार्क बहुत बड़ा है, घूमने के लिए बेहतरीन जगह है।",
		"सुबह की दौड़ के लिए एक शांत और स्वच्छ जगह।",
		"बच्चों के लिए अच्छा मनोरंजन स्थल।",
	},
	"ar": {
		"الحديقة كبيرة جدًا، الكثير لاكتشافه!",
		"مكان رائع لقضاء عطلة نهاية الأسبوع مع العائلة.",
		"مناسب للجري والتنزه الصباحي.",
	},
}

var langCounts = map[string]int{
	"en": 60,
	"es": 15,
	"fr": 10,
	"de": 10,
	"hi": 5,
	"ar": 5,
}

// 60% positive, 25% neutral, 15% negative, matching the observed rating mix.
func biasedRating(rng *rand.Rand) int {
	roll := rng.Float64()
	switch {
	case roll < 0.6:
		return 4 + rng.Intn(2)
	case roll < 0.85:
		return 3
	default:
		return 1 + rng.Intn(2)
	}
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	// sequential, paced translation: the seeder is a batch like the backfill
	translator := app.PaceTranslator(
		mymemory.New(cfg.TranslateBase, cfg.TranslateUA, cfg.TranslateRPS),
		cfg.BackfillDelay,
	)
	ing := app.NewIngestionService(langid.New(), translator, repo, nil, nil)

	rng := rand.New(rand.NewSource(42)) // reproducible sample set
	seeded := 0
	for lang, count := range langCounts {
		comments := sampleComments[lang]
		for i := 0; i < count; i++ {
			park := shared.Parks[rng.Intn(len(shared.Parks))]
			comment := comments[rng.Intn(len(comments))]

			draft, err := domain.NewReview(park.Name, "", biasedRating(rng), comment)
			if err != nil {
				log.Fatal().Err(err).Msg("bad sample review")
			}
			if _, err := ing.Submit(ctx, draft); err != nil {
				log.Warn().Err(err).Str("park", park.Name).Msg("seed insert failed")
				continue
			}
			seeded++
		}
	}
	log.Info().Int("seeded", seeded).Msg("seeding completed")
}
