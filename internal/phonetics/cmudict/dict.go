// Package cmudict loads a CMU-format pronouncing dictionary and provides
// O(1) lookup of raw ARPAbet phoneme sequences by normalized word.
// A loaded Dict is immutable and safe for concurrent readers.
package cmudict

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
)

// errSkipLine signals that a line should be skipped (comment, empty, malformed).
var errSkipLine = errors.New("skip line")

type entry struct {
	phonemes string // primary pronunciation, space-separated ARPAbet symbols
	variants int    // total pronunciations seen for the word, including primary
}

// Stats holds loader statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

// Dict is an in-memory pronouncing dictionary. Built once by Load and never
// mutated afterwards.
type Dict struct {
	entries map[string]entry
	stats   Stats
}

// Load reads a CMU-format dictionary file. Comment lines (";;;" prefix),
// blank lines and lines with fewer than two whitespace-delimited tokens are
// skipped without failing the load. For duplicate keys the first occurrence
// wins; later ones only count as variant pronunciations. The returned Dict
// is fully built before it becomes visible to callers.
func Load(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("dictionary %s: %w", path, domain.ErrResourceMissing)
		}
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	d := &Dict{entries: make(map[string]entry)}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		d.stats.TotalLines++
		line := scanner.Text()

		word, phonemes, err := parseLine(line)
		if err != nil {
			if strings.HasPrefix(line, ";;;") {
				d.stats.CommentLines++
			}
			continue
		}

		d.stats.ParsedLines++
		if e, ok := d.entries[word]; ok {
			e.variants++
			d.entries[word] = e
			continue
		}
		d.entries[word] = entry{phonemes: phonemes, variants: 1}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dictionary: %w", err)
	}

	d.stats.UniqueWords = len(d.entries)
	return d, nil
}

// Lookup returns the primary ARPAbet phoneme sequence for a word.
func (d *Dict) Lookup(word string) (string, bool) {
	if d == nil {
		return "", false
	}
	e, ok := d.entries[domain.NormalizeText(word)]
	if !ok {
		return "", false
	}
	return e.phonemes, true
}

// HasMultiple reports whether the dictionary lists more than one
// pronunciation for the word (variant "(N)" entries or duplicate keys).
func (d *Dict) HasMultiple(word string) bool {
	if d == nil {
		return false
	}
	return d.entries[domain.NormalizeText(word)].variants > 1
}

// Each calls fn for every word with its primary pronunciation. Iteration
// order is unspecified.
func (d *Dict) Each(fn func(word, phonemes string)) {
	if d == nil {
		return
	}
	for w, e := range d.entries {
		fn(w, e.phonemes)
	}
}

// Stats returns loader statistics.
func (d *Dict) Stats() Stats {
	if d == nil {
		return Stats{}
	}
	return d.stats
}

// Len returns the number of unique words loaded.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// parseLine parses a single dictionary line into a normalized word and its
// phoneme sequence. Returns errSkipLine for anything unusable.
func parseLine(line string) (string, string, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", "", errSkipLine
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", errSkipLine
	}

	word := stripVariantSuffix(fields[0])
	if word == "" {
		return "", "", errSkipLine
	}

	return domain.NormalizeText(word), strings.Join(fields[1:], " "), nil
}

// stripVariantSuffix removes a trailing "(N)" variant marker, e.g.
// "HOUSE(2)" → "HOUSE".
func stripVariantSuffix(raw string) string {
	idx := strings.IndexByte(raw, '(')
	if idx == -1 {
		return raw
	}
	if !strings.HasSuffix(raw, ")") {
		return raw
	}
	return raw[:idx]
}
