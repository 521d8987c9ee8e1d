package rules

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

func TestParse(t *testing.T) {
	t.Parallel()

	const input = `{
		"version": 1,
		"consonants": {
			"ch": {"ipa": "tʃ", "simplified": "ch"},
			"b": {"ipa": "b", "simplified": "b"},
			"BAD": {"ipa": "x", "simplified": "x"},
			"toolong": {"ipa": "x", "simplified": "x"},
			"q": {"ipa": "", "simplified": "kw"}
		},
		"vowels": {
			"a": {"ipa": "æ", "simplified": "a",
			      "contexts": {"silent_e": "eɪ", "bogus": "zzz"}}
		},
		"stress": {
			"1": [1],
			"2": [1, 0],
			"3": [0, 1],
			"x": [1]
		}
	}`

	rs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, rs.Version)
	assert.Len(t, rs.Consonants, 2, "uppercase, overlong and empty-IPA keys skipped")
	assert.Contains(t, rs.Consonants, "ch")
	assert.Contains(t, rs.Consonants, "b")

	require.Contains(t, rs.Vowels, "a")
	assert.Equal(t, "eɪ", rs.Vowels["a"].Contexts[ContextSilentE])
	assert.NotContains(t, rs.Vowels["a"].Contexts, "bogus")

	assert.Equal(t, []int{1}, rs.Stress[1])
	assert.Equal(t, []int{1, 0}, rs.Stress[2])
	assert.NotContains(t, rs.Stress, 3, "template length must match syllable count")

	assert.Equal(t, 6, rs.Skipped)
}

func TestParse_BadVersion(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(`{"version": 0}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestParse_BadJSON(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(`{nope`))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "rules.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceMissing))
}

func TestRuleSet_StressTemplateFallback(t *testing.T) {
	t.Parallel()

	rs := &RuleSet{Stress: map[int][]int{2: {0, 1}}}

	assert.Equal(t, []int{0, 1}, rs.stressTemplate(2))
	// Beyond the configured templates: stress forced onto syllable 0.
	assert.Equal(t, []int{1, 0, 0, 0}, rs.stressTemplate(4))
}
