package phonetics

import "errors"

// ErrNotTranscribable indicates every transcription tier was exhausted
// without producing a pair. A normal negative result, not a failure.
var ErrNotTranscribable = errors.New("word is not transcribable")
