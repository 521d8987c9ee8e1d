package word

import (
	"context"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/phonetics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

const upsertCanonicalSQL = `INSERT INTO words (text, text_normalized, ipa, simplified, is_generated)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (text_normalized) DO UPDATE SET
	ipa = EXCLUDED.ipa,
	simplified = EXCLUDED.simplified,
	is_generated = EXCLUDED.is_generated,
	updated_at = now()`

// UpsertCanonicalBatch writes many canonical pairs in a single round trip.
// Used by the seeder for dictionary bulk loads. Returns the number of rows
// written.
func (r *Repo) UpsertCanonicalBatch(ctx context.Context, words []domain.Word) (int64, error) {
	if len(words) == 0 {
		return 0, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	batch := &pgx.Batch{}
	for _, w := range words {
		var ipa, simplified *string
		if w.Phonetic != nil && !w.Phonetic.IsZero() {
			ipa = &w.Phonetic.IPA
			simplified = &w.Phonetic.Simplified
		}
		batch.Queue(upsertCanonicalSQL, w.Text, w.TextNormalized, ipa, simplified, w.IsGenerated)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	var written int64
	for i := range words {
		tag, err := br.Exec()
		if err != nil {
			return written, postgres.MapError(err, "word", words[i].TextNormalized)
		}
		written += tag.RowsAffected()
	}

	return written, nil
}
