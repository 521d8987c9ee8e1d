// Package accent applies phonological transformation rules to a generated
// phonetic pair. Adapt is pure and total: accents it does not know leave
// the pair untouched.
package accent

import (
	"strings"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

// britishIPA rewrites American IPA into British: vowel+r sequences lose
// their rhoticity, the oʊ diphthong shifts to əʊ, and a yod appears after
// alveolars before long u. Pair order matters: vowel+r collapses run
// before single-symbol substitutions.
var britishIPA = []struct{ from, to string }{
	{"oʊ", "əʊ"},
	{"ɑr", "ɑː"},
	{"ɔr", "ɔː"},
	{"ɝr", "ɜː"},
	{"ɝ", "ɜː"},
	{"ɚr", "ə"},
	{"ɚ", "ə"},
	{"nu", "nju"},
	{"tu", "tju"},
	{"du", "dju"},
}

var australianIPA = []struct{ from, to string }{
	{"oʊ", "əʊ"},
	{"æ", "æː"},
}

// Adapt transforms a base pair for the target accent. The default accent
// and unknown tags are identity. Stress marking survives every rule: the
// substitutions never add or remove a stress diacritic, and simplified
// rewrites keep each syllable's case.
func Adapt(pair domain.PhoneticPair, accent domain.Accent) domain.PhoneticPair {
	switch accent {
	case domain.AccentBritish:
		return domain.PhoneticPair{
			IPA:        applyAll(pair.IPA, britishIPA),
			Simplified: adaptSimplifiedBritish(pair.Simplified),
		}
	case domain.AccentAustralian:
		return domain.PhoneticPair{
			IPA:        applyAll(pair.IPA, australianIPA),
			Simplified: pair.Simplified,
		}
	default:
		return pair
	}
}

func applyAll(s string, rules []struct{ from, to string }) string {
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// adaptSimplifiedBritish rewrites the "ow" respelling token to "oh",
// matching the oʊ→əʊ shift in the IPA half.
func adaptSimplifiedBritish(s string) string {
	s = strings.ReplaceAll(s, "ow", "oh")
	return strings.ReplaceAll(s, "OW", "OH")
}
