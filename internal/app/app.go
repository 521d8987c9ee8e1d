package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/phonetics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/phonetics-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/phonetics-backend/internal/config"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/cmudict"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/g2p"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/rules"
	phoneticssvc "github.com/heartmarshall/phonetics-backend/internal/service/phonetics"
)

// App holds the wired application dependencies. Construction order:
// config, logger, database pool, migrations, engine resources, service.
type App struct {
	Log       *slog.Logger
	Cfg       *config.Config
	Pool      *pgxpool.Pool
	Dict      *cmudict.Dict
	Phonetics *phoneticssvc.Service
}

// New builds the application. Missing engine resource files (dictionary,
// rules) degrade the corresponding tier with a warning instead of failing
// startup; only configuration and database errors are fatal.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	dict := loadDict(logger, cfg.Phonetics)
	svc := buildPhonetics(logger, cfg, pool, dict)

	return &App{
		Log:       logger,
		Cfg:       cfg,
		Pool:      pool,
		Dict:      dict,
		Phonetics: svc,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() {
	a.Pool.Close()
}

// Run builds the application and blocks until the context is canceled.
// The transcription service has no transport of its own here; callers
// reach it through the CLI binaries.
func Run(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Log.Info("application ready")
	<-ctx.Done()
	a.Log.Info("shutting down")

	return nil
}

func buildPhonetics(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool, dict *cmudict.Dict) *phoneticssvc.Service {
	generator := rules.NewGenerator(loadRules(logger, cfg.Phonetics))
	transcriber := g2p.New(logger, g2p.Config{
		ModelPath:      cfg.Phonetics.ModelPath,
		CharMapPath:    cfg.Phonetics.CharMapPath,
		PhonemeMapPath: cfg.Phonetics.PhonemeMapPath,
	}, dict)

	repo := word.New(pool)
	txm := postgres.NewTxManager(pool)

	return phoneticssvc.NewService(
		logger,
		phoneticssvc.Config{UseML: cfg.Phonetics.UseML},
		repo,
		txm,
		dict,
		transcriber,
		generator,
	)
}

// loadDict loads the pronouncing dictionary, degrading to an empty
// dictionary with a warning when the file is absent or unreadable.
func loadDict(logger *slog.Logger, cfg config.PhoneticsConfig) *cmudict.Dict {
	dict, err := cmudict.Load(cfg.DictionaryPath)
	if err != nil {
		logger.Warn("pronouncing dictionary unavailable, exact lookups disabled",
			slog.String("path", cfg.DictionaryPath),
			slog.String("error", err.Error()),
		)
		return nil
	}

	stats := dict.Stats()
	logger.Info("pronouncing dictionary loaded",
		slog.String("path", cfg.DictionaryPath),
		slog.Int("words", stats.UniqueWords),
		slog.Int("lines", stats.TotalLines),
	)
	return dict
}

// loadRules loads the rule set, degrading the rule-based tier with a
// warning when the file is absent or invalid.
func loadRules(logger *slog.Logger, cfg config.PhoneticsConfig) *rules.RuleSet {
	rs, err := rules.Load(cfg.RulesPath)
	if err != nil {
		logger.Warn("phonetic rules unavailable, rule-based tier disabled",
			slog.String("path", cfg.RulesPath),
			slog.String("error", err.Error()),
		)
		return nil
	}

	logger.Info("phonetic rules loaded",
		slog.String("path", cfg.RulesPath),
		slog.Int("version", rs.Version),
		slog.Int("skipped", rs.Skipped),
	)
	return rs
}
