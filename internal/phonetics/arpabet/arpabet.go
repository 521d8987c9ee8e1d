// Package arpabet maps ARPAbet phoneme symbols (CMU dictionary notation)
// to IPA. Pure tables and conversion functions, no state.
package arpabet

import (
	"strings"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/ipa"
)

// IPA stress diacritics emitted for ARPAbet stress digits 1 and 2.
const (
	PrimaryStress   = "ˈ" // ˈ
	SecondaryStress = "ˌ" // ˌ
)

// baseMap maps ARPAbet phonemes (stress digit stripped) to IPA symbols.
var baseMap = map[string]string{
	"AA": "ɑ",         // ɑ
	"AE": "æ",         // æ
	"AH": "ʌ",         // ʌ
	"AO": "ɔ",         // ɔ
	"AW": "aʊ",        // aʊ
	"AY": "aɪ",        // aɪ
	"B":  "b",
	"CH": "tʃ",        // tʃ
	"D":  "d",
	"DH": "ð",         // ð
	"EH": "ɛ",         // ɛ
	"ER": "ɝ",         // ɝ
	"EY": "eɪ",        // eɪ
	"F":  "f",
	"G":  "g",
	"HH": "h",
	"IH": "ɪ",         // ɪ
	"IY": "i",
	"JH": "dʒ",        // dʒ
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",         // ŋ
	"OW": "oʊ",        // oʊ
	"OY": "ɔɪ",   // ɔɪ
	"P":  "p",
	"R":  "r",
	"S":  "s",
	"SH": "ʃ",         // ʃ
	"T":  "t",
	"TH": "θ",         // θ
	"UH": "ʊ",         // ʊ
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",         // ʒ
}

// unstressedMap overrides baseMap for vowels whose quality reduces when
// the stress digit is 0: unstressed AH is a schwa, unstressed ER is ɚ.
var unstressedMap = map[string]string{
	"AH": "ə", // ə
	"ER": "ɚ", // ɚ
}

// splitStress separates an ARPAbet symbol into its base phoneme and stress
// digit. Digit -1 means no stress marker was present.
func splitStress(symbol string) (string, int) {
	if symbol == "" {
		return symbol, -1
	}
	switch symbol[len(symbol)-1] {
	case '0':
		return symbol[:len(symbol)-1], 0
	case '1':
		return symbol[:len(symbol)-1], 1
	case '2':
		return symbol[:len(symbol)-1], 2
	}
	return symbol, -1
}

// SymbolToIPA converts a single ARPAbet symbol (stress digit included) to
// IPA. Stress 1 and 2 prefix the primary/secondary diacritic. Unmapped
// symbols are returned unchanged.
func SymbolToIPA(symbol string) string {
	base, stress := splitStress(symbol)

	ipa, ok := baseMap[base]
	if !ok {
		return symbol
	}
	if stress == 0 {
		if reduced, ok := unstressedMap[base]; ok {
			ipa = reduced
		}
	}

	switch stress {
	case 1:
		return PrimaryStress + ipa
	case 2:
		return SecondaryStress + ipa
	}
	return ipa
}

// ToIPA converts a space-separated ARPAbet phoneme sequence to an IPA string.
func ToIPA(phonemes string) string {
	var b strings.Builder
	for _, symbol := range strings.Fields(phonemes) {
		b.WriteString(SymbolToIPA(symbol))
	}
	return b.String()
}

// Pair converts an ARPAbet phoneme sequence to a full phonetic pair.
// Shared by the exact-dictionary tier and the ML transcriber's fast path.
func Pair(phonemes string) domain.PhoneticPair {
	ipaText := ToIPA(phonemes)
	return domain.PhoneticPair{
		IPA:        ipaText,
		Simplified: ipa.Simplify(ipaText),
	}
}
