package g2p

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

// Vocabulary maps input characters to model indices and output class
// indices back to IPA phoneme symbols. Immutable after load.
type Vocabulary struct {
	CharToIndex   map[rune]int
	IndexToSymbol map[int]string
}

// Empty reports whether either mapping is unusable.
func (v Vocabulary) Empty() bool {
	return len(v.CharToIndex) == 0 || len(v.IndexToSymbol) == 0
}

// IndexFor returns the model input index for a character. Unknown
// characters map to index 0.
func (v Vocabulary) IndexFor(r rune) int {
	return v.CharToIndex[r]
}

// isControlToken reports whether a mapping-file field is a bracketed
// control token like "<pad>" or "<unk>" rather than a real symbol.
func isControlToken(s string) bool {
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

// LoadCharMap reads a "char<TAB>index" mapping file. Malformed lines and
// control-token entries are skipped; a missing file is reported as
// domain.ErrResourceMissing.
func LoadCharMap(path string) (map[rune]int, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	m := make(map[rune]int)
	for _, line := range lines {
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			continue
		}
		char := fields[0]
		if isControlToken(char) || utf8.RuneCountInString(char) != 1 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || idx < 0 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(char)
		m[r] = idx
	}
	return m, nil
}

// LoadPhonemeMap reads an "index<TAB>phoneme" mapping file with the same
// tolerance as LoadCharMap.
func LoadPhonemeMap(path string) (map[int]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	m := make(map[int]string)
	for _, line := range lines {
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || idx < 0 {
			continue
		}
		symbol := fields[1]
		if symbol == "" || isControlToken(symbol) {
			continue
		}
		m[idx] = symbol
	}
	return m, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mapping %s: %w", path, domain.ErrResourceMissing)
		}
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mapping: %w", err)
	}
	return lines, nil
}
