package phonetics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/accent"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/arpabet"
)

// GetOrGenerate returns the phonetic pair for a word under the given
// accent, producing and persisting one if the store has no cached value.
// Tier order: exact dictionary, model inference (when enabled), rule
// based generation. Accent adaptation applies to whichever tier
// produced the pair. Exhausting every tier returns ErrNotTranscribable.
func (s *Service) GetOrGenerate(ctx context.Context, text string, acc domain.Accent) (domain.PhoneticPair, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return domain.PhoneticPair{}, domain.NewValidationError("word", "required")
	}

	// 1. Cached result: stored pairs are already accent-adapted, so they
	// are returned as is.
	word, err := s.words.FindByNormalizedWord(ctx, normalized)
	if err == nil {
		if pair, ok := word.PhoneticFor(acc); ok {
			return pair, nil
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.PhoneticPair{}, fmt.Errorf("find word: %w", err)
	}

	// 2. Exact dictionary hit bypasses both generation tiers.
	base, exactHit := s.lookupExact(normalized)

	// 3. Model tier, then rule fallback. A tier producing nothing is not
	// an error; it just falls through.
	if base.IsZero() && s.cfg.UseML {
		if pair, ok := s.transcriber.Transcribe(normalized); ok {
			base = pair
		}
	}
	if base.IsZero() {
		if pair, ok := s.generator.Generate(normalized); ok {
			base = pair
		}
	}
	if base.IsZero() {
		return domain.PhoneticPair{}, ErrNotTranscribable
	}

	adapted := accent.Adapt(base, acc)

	// 4. Write-through. A concurrent request for the same word may have
	// persisted first; the upserts make that race a harmless overwrite.
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if acc.IsDefault() {
			_, upsertErr := s.words.UpsertCanonicalPhonetics(txCtx, normalized, adapted, !exactHit)
			return upsertErr
		}
		return s.words.UpsertVariantPhonetics(txCtx, normalized, acc, adapted)
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrAlreadyExists) {
			existing, findErr := s.words.FindByNormalizedWord(ctx, normalized)
			if findErr != nil {
				return domain.PhoneticPair{}, fmt.Errorf("find word after conflict: %w", findErr)
			}
			if pair, ok := existing.PhoneticFor(acc); ok {
				return pair, nil
			}
		}
		return domain.PhoneticPair{}, fmt.Errorf("persist phonetics: %w", txErr)
	}

	s.log.InfoContext(ctx, "phonetics generated",
		slog.String("word", normalized),
		slog.String("accent", string(acc)),
		slog.Bool("generated", !exactHit),
	)

	return adapted, nil
}

// lookupExact converts a dictionary phoneme string into a base pair.
func (s *Service) lookupExact(normalized string) (domain.PhoneticPair, bool) {
	phonemes, ok := s.dict.Lookup(normalized)
	if !ok {
		return domain.PhoneticPair{}, false
	}
	return arpabet.Pair(phonemes), true
}
