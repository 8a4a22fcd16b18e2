// Package classifier wraps the pre-trained iris model behind a small port.
package classifier

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/irispredictor/internal/server/models"
)

// Classifier maps a feature vector to a class label. Implementations must be
// pure and deterministic: the prediction cache relies on it.
type Classifier interface {
	Classify(f models.FeatureVector) (int, error)
}

//go:embed iris_logreg.json
var defaultModel []byte

// modelFile is the JSON layout of an exported linear model: one coefficient
// row and one intercept per class.
type modelFile struct {
	Name      string      `json:"name"`
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// LogisticRegression is a multinomial linear classifier: the predicted class
// is argmax(coef·x + intercept). The softmax is monotonic and is skipped.
type LogisticRegression struct {
	name      string
	classes   []int
	coef      [][]float64
	intercept []float64
}

var _ Classifier = (*LogisticRegression)(nil)

// Load reads a model from path, or the embedded iris model when path is "".
func Load(path string) (*LogisticRegression, error) {
	if path == "" {
		return Parse(defaultModel)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model file not found at %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON model.
func Parse(data []byte) (*LogisticRegression, error) {
	var m modelFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}

	if len(m.Classes) == 0 {
		return nil, errors.New("model has no classes")
	}
	if len(m.Coef) != len(m.Classes) || len(m.Intercept) != len(m.Classes) {
		return nil, fmt.Errorf("model shape mismatch: %d classes, %d coef rows, %d intercepts",
			len(m.Classes), len(m.Coef), len(m.Intercept))
	}
	for i, row := range m.Coef {
		if len(row) != 4 {
			return nil, fmt.Errorf("coef row %d has %d weights, want 4", i, len(row))
		}
	}

	return &LogisticRegression{name: m.Name, classes: m.Classes, coef: m.Coef, intercept: m.Intercept}, nil
}

// Name returns the model name recorded in the file.
func (lr *LogisticRegression) Name() string {
	return lr.name
}

func (lr *LogisticRegression) Classify(f models.FeatureVector) (int, error) {
	x := f.Slice()

	best, bestScore := 0, 0.0
	for k, row := range lr.coef {
		score := lr.intercept[k]
		for i, w := range row {
			score += w * x[i]
		}
		if k == 0 || score > bestScore {
			best, bestScore = k, score
		}
	}
	return lr.classes[best], nil
}
