package predict

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/serenby/mindwell/internal/features"
)

// artifactSchema constrains the model artifact file: a 3x18 weight
// matrix, 3 biases, and a version tag.
const artifactSchema = `{
	"type": "object",
	"required": ["version", "weights", "biases"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"weights": {
			"type": "array",
			"minItems": 3,
			"maxItems": 3,
			"items": {
				"type": "array",
				"minItems": 18,
				"maxItems": 18,
				"items": {"type": "number"}
			}
		},
		"biases": {
			"type": "array",
			"minItems": 3,
			"maxItems": 3,
			"items": {"type": "number"}
		}
	}
}`

// Model is a softmax-linear classifier over the 18-slot standardized
// vector, loaded from a JSON artifact.
type Model struct {
	Version string
	Weights [ClassCount][features.SlotCount]float64
	Biases  [ClassCount]float64
}

type artifactFile struct {
	Version string      `json:"version"`
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// LoadModel reads and validates the artifact at path.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return parseModel(raw)
}

func parseModel(raw []byte) (*Model, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	schema, err := compileArtifactSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("model artifact schema: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	m := &Model{Version: file.Version}
	for c := 0; c < ClassCount; c++ {
		copy(m.Weights[c][:], file.Weights[c])
		m.Biases[c] = file.Biases[c]
	}
	return m, nil
}

func compileArtifactSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(artifactSchema), &def); err != nil {
		return nil, fmt.Errorf("parse artifact schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://model-artifact.json", def); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema://model-artifact.json")
	if err != nil {
		return nil, fmt.Errorf("compile artifact schema: %w", err)
	}
	return compiled, nil
}

// Score returns the argmax class and softmax probabilities for v.
func (m *Model) Score(v features.Vector) (int, []float64, error) {
	var logits [ClassCount]float64
	for c := 0; c < ClassCount; c++ {
		sum := m.Biases[c]
		for i, x := range v {
			sum += m.Weights[c][i] * x
		}
		logits[c] = sum
	}

	// Softmax with max-shift for stability.
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	var total float64
	probs := make([]float64, ClassCount)
	for c, l := range logits {
		probs[c] = math.Exp(l - maxLogit)
		total += probs[c]
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, nil, fmt.Errorf("degenerate logits %v", logits)
	}

	best := 0
	for c := range probs {
		probs[c] /= total
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best, probs, nil
}

// DefaultModelPath resolves the artifact location: MINDWELL_MODEL, or
// model.json next to the database directory.
func DefaultModelPath(dbPath string) string {
	if p := os.Getenv("MINDWELL_MODEL"); p != "" {
		return p
	}
	dir := dbPath
	if i := strings.LastIndexByte(dir, '/'); i >= 0 {
		dir = dir[:i]
	} else {
		dir = "."
	}
	return dir + "/model.json"
}
