// Package word implements the word store over PostgreSQL. A word row holds
// the canonical (default-accent) phonetic pair; accent variants live in the
// phonetic_variants table keyed by (word_id, accent).
package word

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/phonetics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var wordColumns = []string{
	"id", "text", "text_normalized", "ipa", "simplified",
	"is_generated", "created_at", "updated_at",
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// FindByNormalizedWord returns a word with its accent variants.
// Returns domain.ErrNotFound if no row matches.
func (r *Repo) FindByNormalizedWord(ctx context.Context, textNormalized string) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := qb.Select(wordColumns...).
		From("words").
		Where(squirrel.Eq{"text_normalized": textNormalized}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	w, err := scanWord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", textNormalized)
	}

	variants, err := r.loadVariants(ctx, q, w.ID)
	if err != nil {
		return nil, postgres.MapError(err, "word", textNormalized)
	}
	w.Variants = variants

	return w, nil
}

// UpsertCanonicalPhonetics inserts the word with its canonical pair or
// refreshes the pair on an existing row.
func (r *Repo) UpsertCanonicalPhonetics(ctx context.Context, text string, pair domain.PhoneticPair, isGenerated bool) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := qb.Insert("words").
		Columns("text", "text_normalized", "ipa", "simplified", "is_generated").
		Values(text, domain.NormalizeText(text), pair.IPA, pair.Simplified, isGenerated).
		Suffix(`ON CONFLICT (text_normalized) DO UPDATE SET
			ipa = EXCLUDED.ipa,
			simplified = EXCLUDED.simplified,
			is_generated = EXCLUDED.is_generated,
			updated_at = now()
		RETURNING id, text, text_normalized, ipa, simplified, is_generated, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert query: %w", err)
	}

	w, err := scanWord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", text)
	}

	return w, nil
}

// UpsertVariantPhonetics stores an accent-specific pair, creating the word
// row first if it does not exist yet. The word's canonical fields are left
// untouched.
func (r *Repo) UpsertVariantPhonetics(ctx context.Context, text string, accent domain.Accent, pair domain.PhoneticPair) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	wordQuery, wordArgs, err := qb.Insert("words").
		Columns("text", "text_normalized").
		Values(text, domain.NormalizeText(text)).
		Suffix(`ON CONFLICT (text_normalized) DO UPDATE SET updated_at = now()
		RETURNING id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build word insert query: %w", err)
	}

	var wordID uuid.UUID
	if err := q.QueryRow(ctx, wordQuery, wordArgs...).Scan(&wordID); err != nil {
		return postgres.MapError(err, "word", text)
	}

	variantQuery, variantArgs, err := qb.Insert("phonetic_variants").
		Columns("word_id", "accent", "ipa", "simplified").
		Values(wordID, string(accent), pair.IPA, pair.Simplified).
		Suffix(`ON CONFLICT (word_id, accent) DO UPDATE SET
			ipa = EXCLUDED.ipa,
			simplified = EXCLUDED.simplified`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build variant upsert query: %w", err)
	}

	if _, err := q.Exec(ctx, variantQuery, variantArgs...); err != nil {
		return postgres.MapError(err, "phonetic_variant", text+"/"+string(accent))
	}

	return nil
}

func (r *Repo) loadVariants(ctx context.Context, q postgres.Querier, wordID uuid.UUID) ([]domain.PhoneticVariant, error) {
	query, args, err := qb.Select("id", "word_id", "accent", "ipa", "simplified", "created_at").
		From("phonetic_variants").
		Where(squirrel.Eq{"word_id": wordID}).
		OrderBy("accent").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build variants query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.PhoneticVariant
	for rows.Next() {
		var v domain.PhoneticVariant
		var accent string
		if err := rows.Scan(&v.ID, &v.WordID, &accent, &v.Phonetic.IPA, &v.Phonetic.Simplified, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		v.Accent = domain.Accent(accent)
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}

	return variants, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	var ipa, simplified *string
	if err := row.Scan(
		&w.ID, &w.Text, &w.TextNormalized, &ipa, &simplified,
		&w.IsGenerated, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if ipa != nil && simplified != nil {
		w.Phonetic = &domain.PhoneticPair{IPA: *ipa, Simplified: *simplified}
	}
	return &w, nil
}
