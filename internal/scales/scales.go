// Package scales holds the static rating-scale and option registries
// shared by the interview flows and the feature pipeline, plus the
// small pure validators that gate every answer.
package scales

// ScaleDefinition describes an integer rating scale with per-value
// display labels. Registries are immutable and process-lifetime.
type ScaleDefinition struct {
	Low    int
	High   int
	Labels map[int]string
}

// Contains reports whether v falls inside the scale's range.
func (s ScaleDefinition) Contains(v int) bool {
	return v >= s.Low && v <= s.High
}

// Label returns the display label for v, or an empty string when the
// scale has no label at that point.
func (s ScaleDefinition) Label(v int) string {
	return s.Labels[v]
}

// Stress is the 1-10 stress rating used by daily and weekly flows.
var Stress = ScaleDefinition{
	Low:  1,
	High: 10,
	Labels: map[int]string{
		1:  "Completely calm",
		2:  "Very relaxed",
		3:  "Relaxed",
		4:  "Mostly at ease",
		5:  "Neutral",
		6:  "Slightly tense",
		7:  "Tense",
		8:  "Stressed",
		9:  "Very stressed",
		10: "Overwhelmed",
	},
}

// Anxiety is the 1-10 self-reported anxiety rating. Its value also
// seeds the rule-based fallback estimate.
var Anxiety = ScaleDefinition{
	Low:  1,
	High: 10,
	Labels: map[int]string{
		1:  "None at all",
		3:  "Mild",
		5:  "Moderate",
		7:  "Strong",
		10: "Severe",
	},
}

// Mood is the 1-10 mood rating collected by the extended daily flow.
var Mood = ScaleDefinition{
	Low:  1,
	High: 10,
	Labels: map[int]string{
		1:  "Terrible",
		5:  "Okay",
		10: "Excellent",
	},
}

// Energy is the 1-10 energy rating collected by the extended daily flow.
var Energy = ScaleDefinition{
	Low:  1,
	High: 10,
	Labels: map[int]string{
		1:  "Exhausted",
		5:  "Average",
		10: "Full of energy",
	},
}

// Sweating is the 1-5 sweating severity rating.
var Sweating = ScaleDefinition{
	Low:  1,
	High: 5,
	Labels: map[int]string{
		1: "None",
		2: "Slight",
		3: "Noticeable",
		4: "Heavy",
		5: "Profuse",
	},
}

// WeekRating is the 1-10 overall week rating from the weekly flow.
var WeekRating = ScaleDefinition{
	Low:  1,
	High: 10,
	Labels: map[int]string{
		1:  "Awful",
		5:  "Mixed",
		10: "Great",
	},
}

// DietQuality is the 1-10 diet quality rating from onboarding.
var DietQuality = ScaleDefinition{
	Low:  1,
	High: 10,
	Labels: map[int]string{
		1:  "Very poor",
		5:  "Average",
		10: "Excellent",
	},
}

// Numeric input bounds for non-scale fields. These mirror the ranges
// the classifier artifact was trained against.
const (
	AgeMin = 13
	AgeMax = 120

	HeartRateMin = 40
	HeartRateMax = 200

	BreathingMin = 8
	BreathingMax = 30

	AlcoholMin = 0
	AlcoholMax = 19

	CaffeineCupsMin = 0
	CaffeineCupsMax = 15

	SleepHoursMin = 0.0
	SleepHoursMax = 16.0
)
