package rules

import (
	"strings"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/ipa"
)

// vowelChars is the fixed vowel set used for grapheme-level syllabification.
const vowelChars = "aeiouy"

func isVowelChar(r rune) bool {
	return strings.ContainsRune(vowelChars, r)
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// Generator synthesizes phonetic pairs for words missing from the exact
// dictionary. Deterministic and side-effect-free once constructed.
type Generator struct {
	rules *RuleSet
}

// NewGenerator wraps a loaded rule set. A nil rule set produces a generator
// that always reports no result.
func NewGenerator(rs *RuleSet) *Generator {
	return &Generator{rules: rs}
}

// Generate produces a phonetic pair for the word. It returns false only
// when no rule set is loaded or the word normalizes to nothing; unknown
// characters pass through literally rather than failing.
func (g *Generator) Generate(word string) (domain.PhoneticPair, bool) {
	if g == nil || g.rules == nil {
		return domain.PhoneticPair{}, false
	}
	normalized := domain.NormalizeText(word)
	if normalized == "" {
		return domain.PhoneticPair{}, false
	}

	syllables := syllabify(normalized)
	template := g.rules.stressTemplate(len(syllables))

	var ipaOut strings.Builder
	simplified := make([]string, len(syllables))

	for i, syl := range syllables {
		ipaPart, simplePart := g.transcribeSyllable(syl)
		if template[i] == 1 {
			ipaOut.WriteString(ipa.PrimaryMark)
			simplified[i] = strings.ToUpper(simplePart)
		} else {
			simplified[i] = strings.ToLower(simplePart)
		}
		ipaOut.WriteString(ipaPart)
	}

	return domain.PhoneticPair{
		IPA:        ipaOut.String(),
		Simplified: strings.Join(simplified, "-"),
	}, true
}

// syllabify splits a word before the consonant of a vowel-consonant-vowel
// run, keeping a word-final silent 'e' attached to its syllable so the
// silent-e vowel context can still see it.
func syllabify(word string) []string {
	runes := []rune(word)
	var parts []string
	var cur []rune

	for i, r := range runes {
		cur = append(cur, r)
		if !isVowelChar(r) || i+2 >= len(runes) {
			continue
		}
		if isVowelChar(runes[i+1]) || !isLetter(runes[i+1]) {
			continue
		}
		if !isVowelChar(runes[i+2]) {
			continue
		}
		if runes[i+2] == 'e' && i+2 == len(runes)-1 {
			continue // final silent e stays put
		}
		parts = append(parts, string(cur))
		cur = nil
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}

// transcribeSyllable scans one syllable, preferring two-letter consonant
// digraphs, then vowel rules with their contexts, then single consonants.
// Unknown characters land in both outputs unchanged.
func (g *Generator) transcribeSyllable(syl string) (string, string) {
	runes := []rune(syl)
	var ipaOut, simpleOut strings.Builder
	silentIdx := -1

	for i := 0; i < len(runes); {
		if i == silentIdx {
			i++
			continue
		}

		if i+1 < len(runes) {
			if rule, ok := g.rules.Consonants[string(runes[i:i+2])]; ok {
				ipaOut.WriteString(rule.IPA)
				simpleOut.WriteString(rule.Simplified)
				i += 2
				continue
			}
		}

		ch := string(runes[i])
		if rule, ok := g.rules.Vowels[ch]; ok {
			sound, simple, consumed, silent := g.applyVowel(rule, runes, i)
			ipaOut.WriteString(sound)
			simpleOut.WriteString(simple)
			if silent >= 0 {
				silentIdx = silent
			}
			i += consumed
			continue
		}

		if rule, ok := g.rules.Consonants[ch]; ok {
			ipaOut.WriteString(rule.IPA)
			simpleOut.WriteString(rule.Simplified)
			i++
			continue
		}

		ipaOut.WriteString(ch)
		simpleOut.WriteString(ch)
		i++
	}

	return ipaOut.String(), simpleOut.String()
}

// applyVowel resolves a vowel rule at position i, checking contexts in
// priority order: silent e, before r, doubled letter. It returns the IPA
// sound, its respelling, how many runes were consumed, and the index of a
// letter made silent (-1 if none).
func (g *Generator) applyVowel(rule VowelRule, runes []rune, i int) (string, string, int, int) {
	if override, ok := rule.Contexts[ContextSilentE]; ok {
		if i+2 == len(runes)-1 && !isVowelChar(runes[i+1]) && isLetter(runes[i+1]) && runes[i+2] == 'e' {
			return override, ipa.Simplify(override), 1, i + 2
		}
	}
	if override, ok := rule.Contexts[ContextBeforeR]; ok {
		if i+1 < len(runes) && runes[i+1] == 'r' {
			return override, ipa.Simplify(override), 1, -1
		}
	}
	if override, ok := rule.Contexts[ContextDoubled]; ok {
		if i+1 < len(runes) && runes[i+1] == runes[i] {
			return override, ipa.Simplify(override), 2, -1
		}
	}
	return rule.IPA, rule.Simplified, 1, -1
}
