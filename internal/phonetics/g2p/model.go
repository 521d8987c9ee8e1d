package g2p

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
)

// Layer holds weights and biases for one fully-connected layer.
// W is [OutDim × InDim] row-major, B is [OutDim].
type Layer struct {
	W      []float64
	B      []float64
	InDim  int
	OutDim int
}

// Model is a per-position grapheme-to-phoneme classifier. Each of the
// MaxInputLen positions is classified independently from a context window
// of character embeddings: embedding lookup → hidden layers (ReLU) →
// output layer (log-softmax over phoneme classes). Read-only after load;
// safe for concurrent Predict calls.
type Model struct {
	MaxInputLen int
	ContextLen  int // positions on each side included in the input window
	VocabSize   int
	EmbedDim    int
	Embedding   []float64 // [VocabSize × EmbedDim] row-major
	Layers      []Layer
	OutputDim   int
}

type serializedModel struct {
	Version     int
	MaxInputLen int
	ContextLen  int
	VocabSize   int
	EmbedDim    int
	Embedding   []float64
	Layers      []Layer
	OutputDim   int
}

// Save serializes the model with gob encoding.
func (m *Model) Save(w io.Writer) error {
	sm := serializedModel{
		Version:     1,
		MaxInputLen: m.MaxInputLen,
		ContextLen:  m.ContextLen,
		VocabSize:   m.VocabSize,
		EmbedDim:    m.EmbedDim,
		Embedding:   m.Embedding,
		Layers:      m.Layers,
		OutputDim:   m.OutputDim,
	}
	return gob.NewEncoder(w).Encode(sm)
}

// LoadModel deserializes a model and checks its dimensions.
func LoadModel(r io.Reader) (*Model, error) {
	var sm serializedModel
	if err := gob.NewDecoder(r).Decode(&sm); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if sm.Version != 1 {
		return nil, fmt.Errorf("unsupported model version %d", sm.Version)
	}

	m := &Model{
		MaxInputLen: sm.MaxInputLen,
		ContextLen:  sm.ContextLen,
		VocabSize:   sm.VocabSize,
		EmbedDim:    sm.EmbedDim,
		Embedding:   sm.Embedding,
		Layers:      sm.Layers,
		OutputDim:   sm.OutputDim,
	}

	if m.MaxInputLen <= 0 || m.VocabSize <= 0 || m.EmbedDim <= 0 || len(m.Layers) == 0 {
		return nil, fmt.Errorf("model dimensions invalid")
	}
	if len(m.Embedding) != m.VocabSize*m.EmbedDim {
		return nil, fmt.Errorf("embedding size %d does not match %d×%d",
			len(m.Embedding), m.VocabSize, m.EmbedDim)
	}
	wantIn := (2*m.ContextLen + 1) * m.EmbedDim
	for i, l := range m.Layers {
		if l.InDim != wantIn || l.OutDim <= 0 ||
			len(l.W) != l.OutDim*l.InDim || len(l.B) != l.OutDim {
			return nil, fmt.Errorf("layer %d dimensions invalid", i)
		}
		wantIn = l.OutDim
	}
	if m.OutputDim != m.Layers[len(m.Layers)-1].OutDim {
		return nil, fmt.Errorf("output dim %d does not match final layer", m.OutputDim)
	}

	return m, nil
}

// embeddingAt returns the embedding row for a character index. Out-of-range
// indices use row 0 (the padding embedding).
func (m *Model) embeddingAt(idx int) []float64 {
	if idx < 0 || idx >= m.VocabSize {
		idx = 0
	}
	return m.Embedding[idx*m.EmbedDim : (idx+1)*m.EmbedDim]
}

// forwardPosition classifies one position and returns its log-probability
// distribution over the OutputDim phoneme classes.
func (m *Model) forwardPosition(indices []int, pos int) []float64 {
	// Build the context window input. Positions outside the sequence use
	// the padding embedding.
	input := make([]float64, 0, (2*m.ContextLen+1)*m.EmbedDim)
	for off := -m.ContextLen; off <= m.ContextLen; off++ {
		p := pos + off
		idx := 0
		if p >= 0 && p < len(indices) {
			idx = indices[p]
		}
		input = append(input, m.embeddingAt(idx)...)
	}

	act := input
	for i := range m.Layers {
		layer := &m.Layers[i]
		next := make([]float64, layer.OutDim)
		for j := 0; j < layer.OutDim; j++ {
			sum := layer.B[j]
			row := layer.W[j*layer.InDim : (j+1)*layer.InDim]
			for k, v := range act {
				sum += row[k] * v
			}
			next[j] = sum
		}
		if i < len(m.Layers)-1 {
			relu(next)
		} else {
			logSoftmax(next)
		}
		act = next
	}
	return act
}

// Predict returns the argmax phoneme class for every input position.
// indices must already be padded/truncated to MaxInputLen.
func (m *Model) Predict(indices []int) []int {
	classes := make([]int, m.MaxInputLen)
	for pos := 0; pos < m.MaxInputLen; pos++ {
		dist := m.forwardPosition(indices, pos)
		classes[pos] = argmax(dist)
	}
	return classes
}

func relu(z []float64) {
	for i, v := range z {
		if v < 0 {
			z[i] = 0
		}
	}
}

// logSoftmax normalizes logits in place, max-shifted for stability.
func logSoftmax(z []float64) {
	maxVal := math.Inf(-1)
	for _, v := range z {
		if v > maxVal {
			maxVal = v
		}
	}
	sumExp := 0.0
	for _, v := range z {
		sumExp += math.Exp(v - maxVal)
	}
	logSum := maxVal + math.Log(sumExp)
	for i := range z {
		z[i] -= logSum
	}
}

func argmax(z []float64) int {
	best := 0
	for i, v := range z {
		if v > z[best] {
			best = i
		}
	}
	return best
}
