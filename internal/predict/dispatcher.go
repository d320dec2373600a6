// Package predict scores a prepared feature vector with the trained
// classifier and normalizes the outcome into a Result, degrading to a
// deterministic rule-based estimate whenever the classifier is absent
// or misbehaves. Scoring failures never propagate to callers.
package predict

import (
	"math"
	"math/rand"
	"sync"

	"github.com/serenby/mindwell/internal/advice"
	"github.com/serenby/mindwell/internal/features"
	"github.com/serenby/mindwell/internal/scales"
)

// ClassCount is the number of classes the trained artifact emits.
const ClassCount = 3

// Pipeline version tags, recorded on every Result so callers can tell
// genuine model output from the degraded path.
const (
	ModelVersion    = "stacking_ensemble_v1.0"
	FallbackVersion = "fallback_v1.0"
)

// defaultConfidence is used when the scorer exposes neither
// probabilities nor a decision margin.
const defaultConfidence = 0.75

// fallbackConfidence is the fixed confidence of rule-based estimates.
const fallbackConfidence = 0.65

// Scorer is the opaque classifier contract: one 18-slot vector in, a
// class index in {0,1,2} out, optionally with class probabilities.
type Scorer interface {
	Score(v features.Vector) (class int, probs []float64, err error)
}

// MarginScorer is optionally implemented by scorers that expose a
// decision-function margin instead of probabilities.
type MarginScorer interface {
	Margin(v features.Vector) (float64, error)
}

// classMapping translates an artifact class index into a severity
// level and label. The order is a fixed contract of the trained
// artifact (alphabetical label encoding); do not re-derive it.
var classMapping = [ClassCount]struct {
	Level int
	Name  string
}{
	{Level: 9, Name: "High"},
	{Level: 2, Name: "Low"},
	{Level: 6, Name: "Medium"},
}

// mediumClass is the mapping used for out-of-range class indices.
const mediumClass = 2

// Result is the normalized prediction record handed to presentation
// and storage.
type Result struct {
	SeverityLevel   int
	ClassName       string
	Confidence      float64
	Advice          string
	Category        scales.Category
	PipelineVersion string
}

// Dispatcher owns the lazily-loaded scorer and the fallback path. The
// zero value is not usable; construct with NewDispatcher.
type Dispatcher struct {
	load func() (Scorer, error)

	once    sync.Once
	scorer  Scorer
	loadErr error

	// jitter returns the fallback variation in {-1,0,+1}. Swappable
	// in tests.
	jitter func() int
}

// NewDispatcher builds a dispatcher around a scorer loader. The loader
// runs at most once, on first use; a load failure pins the dispatcher
// to the fallback path for its lifetime.
func NewDispatcher(load func() (Scorer, error)) *Dispatcher {
	return &Dispatcher{
		load:   load,
		jitter: func() int { return rand.Intn(3) - 1 },
	}
}

// NewDispatcherWithScorer wraps an already-constructed scorer. A nil
// scorer yields a permanently-fallback dispatcher.
func NewDispatcherWithScorer(s Scorer) *Dispatcher {
	return NewDispatcher(func() (Scorer, error) { return s, nil })
}

// Predict scores the inputs, or degrades to the rule-based estimate.
// It never returns an error: every failure mode has a defined result.
func (d *Dispatcher) Predict(in features.Inputs) Result {
	scorer := d.scorerOnce()
	if scorer == nil {
		return d.fallback(in)
	}

	vec, err := features.Build(in)
	if err != nil {
		return d.fallback(in)
	}

	class, probs, err := safeScore(scorer, vec)
	if err != nil {
		return d.fallback(in)
	}

	mapping := classMapping[mediumClass]
	if class >= 0 && class < ClassCount {
		mapping = classMapping[class]
	}

	return assemble(mapping.Level, mapping.Name, confidence(scorer, vec, class, probs), ModelVersion)
}

func (d *Dispatcher) scorerOnce() Scorer {
	d.once.Do(func() {
		if d.load == nil {
			return
		}
		d.scorer, d.loadErr = d.load()
		if d.loadErr != nil {
			d.scorer = nil
		}
	})
	return d.scorer
}

// LoadErr reports the scorer load failure, if any, for operability
// logging. It forces the lazy load.
func (d *Dispatcher) LoadErr() error {
	d.scorerOnce()
	return d.loadErr
}

// safeScore invokes the scorer, converting panics into errors so a
// misbehaving artifact can never take down the caller.
func safeScore(s Scorer, v features.Vector) (class int, probs []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			class, probs = 0, nil
			err = &scorePanicError{value: r}
		}
	}()
	return s.Score(v)
}

type scorePanicError struct{ value any }

func (e *scorePanicError) Error() string { return "scorer panicked" }

// confidence derives the score confidence: max class probability when
// available, else the sigmoid of the decision margin, else the fixed
// default. Always clamped to [0,1].
func confidence(s Scorer, v features.Vector, class int, probs []float64) float64 {
	if len(probs) > 0 {
		best := probs[0]
		for _, p := range probs[1:] {
			if p > best {
				best = p
			}
		}
		return clamp01(best)
	}
	if ms, ok := s.(MarginScorer); ok {
		if margin, err := ms.Margin(v); err == nil {
			return clamp01(1 / (1 + math.Exp(-margin)))
		}
	}
	return defaultConfidence
}

// fallback applies the rule-based estimate: the self-reported anxiety
// level with a one-step pseudo-random variation, clamped to the scale.
func (d *Dispatcher) fallback(in features.Inputs) Result {
	anxiety := 5
	if in.Anxiety != nil {
		anxiety = *in.Anxiety
	}
	level := anxiety + d.jitter()
	if level < 1 {
		level = 1
	}
	if level > 10 {
		level = 10
	}

	name := "Medium"
	switch scales.CategoryFor(level) {
	case scales.CategoryLow:
		name = "Low"
	case scales.CategoryHigh:
		name = "High"
	}

	r := assemble(level, name, fallbackConfidence, FallbackVersion)
	return r
}

// assemble packages a severity outcome into the uniform Result record.
func assemble(level int, name string, conf float64, version string) Result {
	cat := scales.CategoryFor(level)
	return Result{
		SeverityLevel:   level,
		ClassName:       name,
		Confidence:      clamp01(conf),
		Advice:          advice.ForCategory(cat),
		Category:        cat,
		PipelineVersion: version,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
