package phonetics

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

type wordRepo interface {
	FindByNormalizedWord(ctx context.Context, textNormalized string) (*domain.Word, error)
	UpsertCanonicalPhonetics(ctx context.Context, text string, pair domain.PhoneticPair, isGenerated bool) (*domain.Word, error)
	UpsertVariantPhonetics(ctx context.Context, text string, accent domain.Accent, pair domain.PhoneticPair) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type exactDictionary interface {
	Lookup(word string) (string, bool)
	HasMultiple(word string) bool
}

type mlTranscriber interface {
	Transcribe(word string) (domain.PhoneticPair, bool)
}

type ruleGenerator interface {
	Generate(word string) (domain.PhoneticPair, bool)
}

// Config carries the orchestration switches. The service never reads
// ambient state: everything it needs arrives through the constructor.
type Config struct {
	// UseML enables the model tier for words the exact dictionary misses.
	UseML bool
}

// Service orchestrates transcription tiers: cached result, exact
// dictionary, model inference, rule-based fallback, then accent
// adaptation and write-through persistence.
type Service struct {
	log         *slog.Logger
	cfg         Config
	words       wordRepo
	tx          txManager
	dict        exactDictionary
	transcriber mlTranscriber
	generator   ruleGenerator
}

// NewService creates a new Phonetics service.
func NewService(
	logger *slog.Logger,
	cfg Config,
	words wordRepo,
	tx txManager,
	dict exactDictionary,
	transcriber mlTranscriber,
	generator ruleGenerator,
) *Service {
	return &Service{
		log:         logger.With("service", "phonetics"),
		cfg:         cfg,
		words:       words,
		tx:          tx,
		dict:        dict,
		transcriber: transcriber,
		generator:   generator,
	}
}
