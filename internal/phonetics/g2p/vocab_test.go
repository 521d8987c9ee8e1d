package g2p

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCharMap(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "chars.txt", "<pad>\t0\n<unk>\t1\na\t2\nb\t3\nbad line\nxy\t4\nc\tnope\n'\t5\n")

	m, err := LoadCharMap(path)
	require.NoError(t, err)

	assert.Equal(t, map[rune]int{'a': 2, 'b': 3, '\'': 5}, m)
}

func TestLoadPhonemeMap(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "phonemes.txt", "0\t<pad>\n1\t<unk>\n2\tə\n3\toʊ\nnope\tx\n4\t\n")

	m, err := LoadPhonemeMap(path)
	require.NoError(t, err)

	assert.Equal(t, map[int]string{2: "ə", 3: "oʊ"}, m)
}

func TestLoadCharMap_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadCharMap(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceMissing))
}

func TestVocabulary_IndexFor(t *testing.T) {
	t.Parallel()

	v := Vocabulary{CharToIndex: map[rune]int{'a': 2}}

	assert.Equal(t, 2, v.IndexFor('a'))
	assert.Equal(t, 0, v.IndexFor('ß'), "unknown char maps to index 0")
}

func TestVocabulary_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, Vocabulary{}.Empty())
	assert.True(t, Vocabulary{CharToIndex: map[rune]int{'a': 1}}.Empty())
	assert.False(t, Vocabulary{
		CharToIndex:   map[rune]int{'a': 1},
		IndexToSymbol: map[int]string{1: "ə"},
	}.Empty())
}
