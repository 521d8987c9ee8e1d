// Package g2p runs the statistical grapheme-to-phoneme tier: a pre-trained
// per-position classifier over character indices, with an exact-dictionary
// fast path that skips inference entirely.
package g2p

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/phonetics-backend/internal/domain"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/arpabet"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/cmudict"
	"github.com/heartmarshall/phonetics-backend/internal/phonetics/ipa"
)

// Config holds the resource paths for the ML tier.
type Config struct {
	ModelPath      string
	CharMapPath    string
	PhonemeMapPath string
}

// Transcriber produces phonetic pairs via dictionary fast path or model
// inference. Resources are loaded once, on first use; after that the
// transcriber is read-only and safe for concurrent calls.
type Transcriber struct {
	log  *slog.Logger
	cfg  Config
	dict *cmudict.Dict

	done    atomic.Bool
	mu      sync.Mutex
	initErr error

	model *Model
	vocab Vocabulary
}

// New creates a Transcriber. The pronouncing dictionary is injected so the
// exact tier and the fast path share one loaded copy; it may be nil when
// the dictionary resource is unavailable.
func New(logger *slog.Logger, cfg Config, dict *cmudict.Dict) *Transcriber {
	return &Transcriber{
		log:  logger.With("component", "g2p"),
		cfg:  cfg,
		dict: dict,
	}
}

// Initialize loads the model artifact and vocabulary mappings. Idempotent:
// concurrent callers serialize on the init lock and the load runs at most
// once; later calls return the recorded result. A missing model or
// malformed vocabulary is a degraded mode, reported via
// domain.ErrResourceMissing, never a hard failure.
func (t *Transcriber) Initialize() error {
	if t.done.Load() {
		return t.initErr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done.Load() {
		return t.initErr
	}

	t.initErr = t.loadResources()
	t.done.Store(true)
	return t.initErr
}

func (t *Transcriber) loadResources() error {
	var problems []error

	charMap, err := LoadCharMap(t.cfg.CharMapPath)
	if err != nil {
		t.log.Warn("char map unavailable, ml tier degraded", slog.String("error", err.Error()))
		problems = append(problems, err)
		charMap = map[rune]int{}
	}
	phonemeMap, err := LoadPhonemeMap(t.cfg.PhonemeMapPath)
	if err != nil {
		t.log.Warn("phoneme map unavailable, ml tier degraded", slog.String("error", err.Error()))
		problems = append(problems, err)
		phonemeMap = map[int]string{}
	}
	t.vocab = Vocabulary{CharToIndex: charMap, IndexToSymbol: phonemeMap}

	f, err := os.Open(t.cfg.ModelPath)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("model %s: %w", t.cfg.ModelPath, domain.ErrResourceMissing)
		}
		t.log.Warn("model unavailable, ml tier degraded", slog.String("error", err.Error()))
		return errors.Join(append(problems, err)...)
	}
	defer f.Close()

	model, err := LoadModel(f)
	if err != nil {
		t.log.Warn("model unreadable, ml tier degraded", slog.String("error", err.Error()))
		return errors.Join(append(problems, err)...)
	}
	t.model = model

	t.log.Info("g2p model loaded",
		slog.Int("max_input_len", model.MaxInputLen),
		slog.Int("output_dim", model.OutputDim),
	)
	return errors.Join(problems...)
}

// Transcribe resolves a word to a phonetic pair: dictionary fast path
// first, then model inference. Returns false when neither tier can
// produce a result.
func (t *Transcriber) Transcribe(word string) (domain.PhoneticPair, bool) {
	_ = t.Initialize()

	normalized := domain.NormalizeText(word)
	if normalized == "" {
		return domain.PhoneticPair{}, false
	}

	if phonemes, ok := t.dict.Lookup(normalized); ok {
		return arpabet.Pair(phonemes), true
	}

	return t.infer(normalized)
}

// infer runs model inference. Any panic from the numeric path is treated
// as an inference failure: logged, no result.
func (t *Transcriber) infer(word string) (pair domain.PhoneticPair, ok bool) {
	if t.model == nil || t.vocab.Empty() {
		return domain.PhoneticPair{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			t.log.Error("inference failed", slog.String("word", word), slog.Any("panic", r))
			pair, ok = domain.PhoneticPair{}, false
		}
	}()

	indices := make([]int, t.model.MaxInputLen)
	for i, r := range []rune(word) {
		if i >= t.model.MaxInputLen {
			break
		}
		indices[i] = t.vocab.IndexFor(r)
	}

	var ipaText string
	for _, class := range t.model.Predict(indices) {
		if class == 0 {
			continue // padding/unknown class
		}
		symbol, known := t.vocab.IndexToSymbol[class]
		if !known {
			continue
		}
		ipaText += symbol
	}
	if ipaText == "" {
		return domain.PhoneticPair{}, false
	}

	return domain.PhoneticPair{
		IPA:        ipaText,
		Simplified: ipa.Simplify(ipaText),
	}, true
}

// HasMultiplePronunciations reports whether the pronouncing dictionary
// lists more than one pronunciation for the word.
func (t *Transcriber) HasMultiplePronunciations(word string) bool {
	return t.dict.HasMultiple(word)
}
