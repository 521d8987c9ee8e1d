package accent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/accent"
)

func TestAdapt_British(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   domain.PhoneticPair
		want domain.PhoneticPair
	}{
		{
			name: "goat vowel shifts",
			in:   domain.PhoneticPair{IPA: "həlˈoʊ", Simplified: "huh-LOW"},
			want: domain.PhoneticPair{IPA: "həlˈəʊ", Simplified: "huh-LOH"},
		},
		{
			name: "rhotic ar collapses",
			in:   domain.PhoneticPair{IPA: "kˈɑr", Simplified: "KAHR"},
			want: domain.PhoneticPair{IPA: "kˈɑː", Simplified: "KAHR"},
		},
		{
			name: "stressed er becomes long central vowel",
			in:   domain.PhoneticPair{IPA: "bˈɝd", Simplified: "BURD"},
			want: domain.PhoneticPair{IPA: "bˈɜːd", Simplified: "BURD"},
		},
		{
			name: "unstressed er reduces to schwa",
			in:   domain.PhoneticPair{IPA: "tˈaɪgɚ", Simplified: "TI-gur"},
			want: domain.PhoneticPair{IPA: "tˈaɪgə", Simplified: "TI-gur"},
		},
		{
			name: "yod insertion after alveolar",
			in:   domain.PhoneticPair{IPA: "mˈɛnu", Simplified: "ME-noo"},
			want: domain.PhoneticPair{IPA: "mˈɛnju", Simplified: "ME-noo"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := accent.Adapt(tc.in, domain.AccentBritish)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAdapt_Australian(t *testing.T) {
	t.Parallel()

	got := accent.Adapt(domain.PhoneticPair{IPA: "kˈæt", Simplified: "KAT"}, domain.AccentAustralian)
	assert.Equal(t, "kˈæːt", got.IPA)
	assert.Equal(t, "KAT", got.Simplified)

	got = accent.Adapt(domain.PhoneticPair{IPA: "gˈoʊ", Simplified: "GOW"}, domain.AccentAustralian)
	assert.Equal(t, "gˈəʊ", got.IPA)
}

func TestAdapt_DefaultAccentIsIdentity(t *testing.T) {
	t.Parallel()

	in := domain.PhoneticPair{IPA: "həlˈoʊ", Simplified: "huh-LOW"}
	assert.Equal(t, in, accent.Adapt(in, domain.AccentAmerican))
}

func TestAdapt_UnknownAccentIsIdentity(t *testing.T) {
	t.Parallel()

	in := domain.PhoneticPair{IPA: "kˈɑr", Simplified: "KAHR"}
	assert.Equal(t, in, accent.Adapt(in, domain.Accent("martian")))
}

func TestAdapt_PreservesStressMarks(t *testing.T) {
	t.Parallel()

	inputs := []domain.PhoneticPair{
		{IPA: "həlˈoʊ", Simplified: "huh-LOW"},
		{IPA: "ˌæbsəlˈut", Simplified: "ab-suh-LOOT"},
		{IPA: "tˈaɪgɚ", Simplified: "TI-gur"},
		{IPA: "kˈɑrgoʊ", Simplified: "KAHR-gow"},
	}
	accents := []domain.Accent{domain.AccentBritish, domain.AccentAustralian}

	for _, in := range inputs {
		for _, a := range accents {
			got := accent.Adapt(in, a)
			assert.Equal(t, strings.Count(in.IPA, "ˈ"), strings.Count(got.IPA, "ˈ"), "primary marks for %q under %s", in.IPA, a)
			assert.Equal(t, strings.Count(in.IPA, "ˌ"), strings.Count(got.IPA, "ˌ"), "secondary marks for %q under %s", in.IPA, a)
		}
	}
}
