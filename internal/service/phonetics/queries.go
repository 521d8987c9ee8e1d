package phonetics

import (
	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

// HasMultiplePronunciations reports whether the exact dictionary carries
// variant entries for the word. Words outside the dictionary report false.
func (s *Service) HasMultiplePronunciations(text string) bool {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return false
	}
	return s.dict.HasMultiple(normalized)
}
