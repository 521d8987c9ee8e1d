// Package rules implements the hand-written grapheme-to-phoneme fallback:
// a versioned JSON rule file (consonant digraphs, vowel rules with
// context overrides, stress templates) and a deterministic generator that
// syllabifies a word and transcribes it rule by rule.
package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

// Context names a vowel rule may override.
const (
	ContextSilentE = "silent_e"
	ContextBeforeR = "before_r"
	ContextDoubled = "doubled"
)

// knownContexts is the closed set of context names accepted at load time.
var knownContexts = map[string]bool{
	ContextSilentE: true,
	ContextBeforeR: true,
	ContextDoubled: true,
}

// ConsonantRule maps a consonant grapheme (single letter or digraph) to its
// IPA sound and ASCII respelling.
type ConsonantRule struct {
	IPA        string `json:"ipa"`
	Simplified string `json:"simplified"`
}

// VowelRule maps a vowel grapheme to its default sound plus context-specific
// IPA overrides.
type VowelRule struct {
	IPA        string            `json:"ipa"`
	Simplified string            `json:"simplified"`
	Contexts   map[string]string `json:"contexts,omitempty"`
}

// RuleSet is an immutable, validated set of transcription rules.
type RuleSet struct {
	Version    int
	Consonants map[string]ConsonantRule
	Vowels     map[string]VowelRule
	// Stress maps syllable count to a stress template; template[i] == 1
	// marks syllable i as primary-stressed.
	Stress map[int][]int

	// Skipped counts rules rejected at load time (bad key, unknown context).
	Skipped int
}

type rulesFile struct {
	Version    int                      `json:"version"`
	Consonants map[string]ConsonantRule `json:"consonants"`
	Vowels     map[string]VowelRule     `json:"vowels"`
	Stress     map[string][]int         `json:"stress"`
}

// validKey reports whether a rule key belongs to the closed grapheme
// alphabet: one or two lowercase ASCII letters.
func validKey(key string) bool {
	if len(key) == 0 || len(key) > 2 {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 'a' || key[i] > 'z' {
			return false
		}
	}
	return true
}

// Parse reads and validates a rule file. Individual malformed rules are
// skipped; an unsupported version or unreadable JSON fails the whole load.
func Parse(r io.Reader) (*RuleSet, error) {
	var raw rulesFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if raw.Version < 1 {
		return nil, fmt.Errorf("rules version %d: %w", raw.Version, domain.ErrValidation)
	}

	rs := &RuleSet{
		Version:    raw.Version,
		Consonants: make(map[string]ConsonantRule, len(raw.Consonants)),
		Vowels:     make(map[string]VowelRule, len(raw.Vowels)),
		Stress:     make(map[int][]int, len(raw.Stress)),
	}

	for key, rule := range raw.Consonants {
		if !validKey(key) || rule.IPA == "" {
			rs.Skipped++
			continue
		}
		rs.Consonants[key] = rule
	}

	for key, rule := range raw.Vowels {
		if !validKey(key) || rule.IPA == "" {
			rs.Skipped++
			continue
		}
		for name := range rule.Contexts {
			if !knownContexts[name] {
				rs.Skipped++
				delete(rule.Contexts, name)
			}
		}
		rs.Vowels[key] = rule
	}

	for key, template := range raw.Stress {
		count, err := strconv.Atoi(key)
		if err != nil || count < 1 || len(template) != count {
			rs.Skipped++
			continue
		}
		rs.Stress[count] = template
	}

	return rs, nil
}

// Load parses a rule file from disk.
func Load(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("rules %s: %w", path, domain.ErrResourceMissing)
		}
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// stressTemplate returns the template for a syllable count. Counts beyond
// the configured templates stress syllable 0; this mirrors the documented
// simplification rather than real English stress assignment.
func (rs *RuleSet) stressTemplate(count int) []int {
	if t, ok := rs.Stress[count]; ok {
		return t
	}
	t := make([]int, count)
	if count > 0 {
		t[0] = 1
	}
	return t
}
