package domain

import (
	"time"

	"github.com/google/uuid"
)

// Accent identifies a pronunciation accent. The default accent's phonetics
// are stored on the word record itself; other accents live in variants.
type Accent string

const (
	AccentAmerican   Accent = "american"
	AccentBritish    Accent = "british"
	AccentAustralian Accent = "australian"
)

// DefaultAccent is the canonical accent when none is requested.
const DefaultAccent = AccentAmerican

// ParseAccent normalizes a raw accent tag. Unknown tags map to the default
// accent so that callers never take an error path over a cosmetic input.
func ParseAccent(raw string) Accent {
	switch Accent(NormalizeText(raw)) {
	case AccentBritish:
		return AccentBritish
	case AccentAustralian:
		return AccentAustralian
	default:
		return AccentAmerican
	}
}

// IsDefault reports whether the accent is the canonical (default) one.
func (a Accent) IsDefault() bool {
	return a == DefaultAccent
}

// PhoneticPair couples an IPA transcription with its ASCII respelling.
// The simplified form uses '-' as syllable separator and an uppercased
// syllable to mark primary stress.
type PhoneticPair struct {
	IPA        string
	Simplified string
}

// IsZero reports whether either half of the pair is missing.
// A pair with only one populated field is never stored or returned.
func (p PhoneticPair) IsZero() bool {
	return p.IPA == "" || p.Simplified == ""
}

// Word is a stored word record with its canonical (default-accent) phonetics.
type Word struct {
	ID             uuid.UUID
	Text           string
	TextNormalized string
	Phonetic       *PhoneticPair
	// IsGenerated marks phonetics produced by the ML or rule-based tier
	// rather than taken from the pronouncing dictionary.
	IsGenerated bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []PhoneticVariant
}

// PhoneticVariant is an accent-specific phonetic pair attached to a word.
type PhoneticVariant struct {
	ID        uuid.UUID
	WordID    uuid.UUID
	Accent    Accent
	Phonetic  PhoneticPair
	CreatedAt time.Time
}

// PhoneticFor returns the stored pair for the given accent, if any.
// The default accent resolves to the canonical pair on the record.
func (w *Word) PhoneticFor(accent Accent) (PhoneticPair, bool) {
	if accent.IsDefault() {
		if w.Phonetic == nil || w.Phonetic.IsZero() {
			return PhoneticPair{}, false
		}
		return *w.Phonetic, true
	}
	for _, v := range w.Variants {
		if v.Accent == accent && !v.Phonetic.IsZero() {
			return v.Phonetic, true
		}
	}
	return PhoneticPair{}, false
}
