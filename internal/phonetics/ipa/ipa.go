// Package ipa splits IPA transcriptions into syllables and derives the
// simplified ASCII respelling ('-' separated syllables, primary-stressed
// syllable uppercased).
package ipa

import "strings"

// Stress is the stress level carried by a syllable.
type Stress int

const (
	NoStress Stress = iota
	Primary
	Secondary
)

// Stress diacritics and the length mark as strings, for builders.
const (
	PrimaryMark   = "ˈ" // ˈ
	SecondaryMark = "ˌ" // ˌ
	LengthMark    = "ː" // ː
)

const (
	primaryMark   = 'ˈ' // ˈ
	secondaryMark = 'ˌ' // ˌ
	lengthMark    = 'ː' // ː
)

// vowels contains every IPA vowel rune the engine emits. Diphthongs are
// covered rune-wise (both halves are in the set).
var vowels = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true,
	'æ': true, // æ
	'ɑ': true, // ɑ
	'ɒ': true, // ɒ
	'ɔ': true, // ɔ
	'ə': true, // ə
	'ɚ': true, // ɚ
	'ɛ': true, // ɛ
	'ɜ': true, // ɜ
	'ɝ': true, // ɝ
	'ɪ': true, // ɪ
	'ʊ': true, // ʊ
	'ʌ': true, // ʌ
}

// Syllable is one IPA syllable with its stress diacritics stripped.
type Syllable struct {
	Text   string
	Stress Stress
}

func isStressMark(r rune) bool { return r == primaryMark || r == secondaryMark }

func isVowel(r rune) bool { return vowels[r] }

// isConsonant reports whether r is a sounding non-vowel. Stress and length
// marks are neither.
func isConsonant(r rune) bool {
	return !isVowel(r) && !isStressMark(r) && r != lengthMark
}

// nextSounding returns the first vowel/consonant rune at or after i.
func nextSounding(runes []rune, i int) (rune, bool) {
	for ; i < len(runes); i++ {
		if !isStressMark(runes[i]) && runes[i] != lengthMark {
			return runes[i], true
		}
	}
	return 0, false
}

// lastSounding returns the last vowel/consonant rune of the slice.
func lastSounding(runes []rune) (rune, bool) {
	for i := len(runes) - 1; i >= 0; i-- {
		if !isStressMark(runes[i]) && runes[i] != lengthMark {
			return runes[i], true
		}
	}
	return 0, false
}

// Syllables splits an IPA string into syllables. A boundary is placed in
// front of a lone consonant sitting between two vowels, so the consonant
// opens the following syllable; stress diacritics travel with the syllable
// they introduce. Any non-empty input yields at least one syllable.
func Syllables(s string) []Syllable {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	var raw [][]rune
	var cur []rune

	for i, r := range runes {
		if isConsonant(r) && len(cur) > 0 {
			prev, okPrev := lastSounding(cur)
			next, okNext := nextSounding(runes, i+1)
			if okPrev && okNext && isVowel(prev) && isVowel(next) {
				// Trailing stress marks belong to the syllable being opened.
				cut := len(cur)
				for cut > 0 && isStressMark(cur[cut-1]) {
					cut--
				}
				raw = append(raw, cur[:cut])
				cur = append([]rune{}, cur[cut:]...)
			}
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		raw = append(raw, cur)
	}

	out := make([]Syllable, 0, len(raw))
	for _, part := range raw {
		var b strings.Builder
		stress := NoStress
		for _, r := range part {
			switch r {
			case primaryMark:
				stress = Primary
			case secondaryMark:
				if stress != Primary {
					stress = Secondary
				}
			default:
				b.WriteRune(r)
			}
		}
		out = append(out, Syllable{Text: b.String(), Stress: stress})
	}
	return out
}

// respellSequences maps multi-rune IPA sequences to their ASCII respelling.
// Checked before single-rune mappings, longest first.
var respellSequences = []struct {
	ipa string
	out string
}{
	{"oʊ", "ow"},         // oʊ
	{"əʊ", "oh"},    // əʊ
	{"aʊ", "ou"},         // aʊ
	{"aɪ", "ai"},         // aɪ
	{"eɪ", "ay"},         // eɪ
	{"ɔɪ", "oy"},    // ɔɪ
	{"tʃ", "ch"},         // tʃ
	{"dʒ", "j"},          // dʒ
	{"æː", "aa"},    // æː
	{"ɜː", "ur"},    // ɜː
	{"ɑː", "ah"},    // ɑː
	{"ɔː", "aw"},    // ɔː
}

// respellRunes maps single IPA runes to their ASCII respelling.
var respellRunes = map[rune]string{
	'a':      "ah",
	'ə': "uh", // ə
	'ʌ': "uh", // ʌ
	'æ': "a",  // æ
	'ɑ': "ah", // ɑ
	'ɒ': "o",  // ɒ
	'ɔ': "aw", // ɔ
	'ɛ': "e",  // ɛ
	'ɪ': "i",  // ɪ
	'i':      "ee",
	'ʊ': "u",  // ʊ
	'u':      "oo",
	'ɝ': "ur", // ɝ
	'ɜ': "ur", // ɜ
	'ɚ': "er", // ɚ
	'ŋ': "ng", // ŋ
	'ʃ': "sh", // ʃ
	'ʒ': "zh", // ʒ
	'θ': "th", // θ
	'ð': "th", // ð
	'j':      "y",
	'ɹ': "r",  // ɹ
	'ː': "",   // ː (covered by sequences; dropped when alone)
}

// respell converts one stress-stripped IPA syllable to ASCII. Runes with no
// mapping pass through as-is.
func respell(text string) string {
	var b strings.Builder
	for text != "" {
		matched := false
		for _, seq := range respellSequences {
			if strings.HasPrefix(text, seq.ipa) {
				b.WriteString(seq.out)
				text = text[len(seq.ipa):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		r := []rune(text)[0]
		if out, ok := respellRunes[r]; ok {
			b.WriteString(out)
		} else {
			b.WriteRune(r)
		}
		text = text[len(string(r)):]
	}
	return b.String()
}

// Simplify derives the ASCII respelling of an IPA transcription: syllables
// joined with '-', the primary-stressed syllable uppercased, everything
// else lowercased.
func Simplify(ipaText string) string {
	sylls := Syllables(ipaText)
	if len(sylls) == 0 {
		return ""
	}

	parts := make([]string, len(sylls))
	for i, s := range sylls {
		t := respell(s.Text)
		if s.Stress == Primary {
			t = strings.ToUpper(t)
		} else {
			t = strings.ToLower(t)
		}
		parts[i] = t
	}
	return strings.Join(parts, "-")
}
