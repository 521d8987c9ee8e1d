// Command seeder bulk-loads the pronouncing dictionary into the words
// table. Each entry is converted to its canonical phonetic pair and
// upserted in chunks, so re-running the seeder is safe.
//
// Flags:
//
//	--chunk-size  words per batch (default 500)
//	--dry-run     parse and convert without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/phonetics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/phonetics-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/phonetics-backend/internal/app"
	"github.com/heartmarshall/phonetics-backend/internal/config"
	"github.com/heartmarshall/phonetics-backend/internal/domain"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/arpabet"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/cmudict"
)

func main() {
	chunkSizeFlag := flag.Int("chunk-size", 500, "words per batch")
	dryRunFlag := flag.Bool("dry-run", false, "parse and convert without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	dict, err := cmudict.Load(cfg.Phonetics.DictionaryPath)
	if err != nil {
		logger.Error("load dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("dictionary parsed", slog.Int("words", dict.Len()))

	words := make([]domain.Word, 0, dict.Len())
	dict.Each(func(w, phonemes string) {
		pair := arpabet.Pair(phonemes)
		words = append(words, domain.Word{
			Text:           w,
			TextNormalized: w,
			Phonetic:       &pair,
		})
	})

	if *dryRunFlag {
		logger.Info("dry run, skipping writes", slog.Int("words", len(words)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		logger.Error("run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := word.New(pool)
	txm := postgres.NewTxManager(pool)

	var written int64
	for start := 0; start < len(words); start += *chunkSizeFlag {
		end := start + *chunkSizeFlag
		if end > len(words) {
			end = len(words)
		}
		chunk := words[start:end]

		err := txm.RunInTx(ctx, func(txCtx context.Context) error {
			n, batchErr := repo.UpsertCanonicalBatch(txCtx, chunk)
			written += n
			return batchErr
		})
		if err != nil {
			logger.Error("write batch",
				slog.Int("offset", start),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	logger.Info("seeding completed", slog.Int64("words_written", written))
}
