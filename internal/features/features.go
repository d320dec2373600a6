// Package features turns a completed check-in (optionally merged with
// a stored profile) into the fixed 18-slot standardized vector the
// anxiety classifier was trained on. The slot order, categorical
// encodings, and scaler parameters are contracts of the trained
// artifact and must not be re-derived.
package features

import (
	"fmt"
	"math"

	"github.com/serenby/mindwell/internal/scales"
)

// SlotCount is the fixed width of every feature vector.
const SlotCount = 18

// Vector is one model-ready observation. Slots are position-sensitive.
type Vector [SlotCount]float64

// Slot indices, in the exact order the artifact expects.
const (
	SlotAge = iota
	SlotGender
	SlotOccupation
	SlotSleepHours
	SlotActivity
	SlotCaffeine
	SlotAlcohol
	SlotSmoking
	SlotFamilyHistory
	SlotStress
	SlotHeartRate
	SlotBreathing
	SlotSweating
	SlotDizziness
	SlotMedication
	SlotTherapy
	SlotLifeEvent
	SlotDiet
)

// SlotNames are the training-time column names, kept for debug output.
var SlotNames = [SlotCount]string{
	"Age",
	"Gender",
	"Occupation",
	"Sleep Hours",
	"Physical Activity (hrs/week)",
	"Caffeine Intake (mg/day)",
	"Alcohol Consumption (drinks/week)",
	"Smoking",
	"Family History of Anxiety",
	"Stress Level (1-10)",
	"Heart Rate (bpm)",
	"Breathing Rate (breaths/min)",
	"Sweating Level (1-5)",
	"Dizziness",
	"Medication",
	"Therapy Sessions (per month)",
	"Recent Major Life Event",
	"Diet Quality (1-10)",
}

// scalerParams holds the per-slot standardization (mean, std) pairs
// used at training time. A zero or negative std maps the slot to 0.0
// instead of faulting.
var scalerParams = [SlotCount][2]float64{
	SlotAge:           {35.0, 12.0},
	SlotGender:        {0.5, 0.5},
	SlotOccupation:    {1.5, 1.2},
	SlotSleepHours:    {7.0, 1.5},
	SlotActivity:      {4.0, 3.0},
	SlotCaffeine:      {150.0, 100.0},
	SlotAlcohol:       {3.0, 4.0},
	SlotSmoking:       {0.3, 0.5},
	SlotFamilyHistory: {0.3, 0.45},
	SlotStress:        {5.0, 2.5},
	SlotHeartRate:     {72.0, 12.0},
	SlotBreathing:     {16.0, 3.0},
	SlotSweating:      {2.0, 1.0},
	SlotDizziness:     {0.2, 0.4},
	SlotMedication:    {0.2, 0.4},
	SlotTherapy:       {0.5, 1.0},
	SlotLifeEvent:     {0.25, 0.43},
	SlotDiet:          {6.0, 2.0},
}

// caffeineMgPerCup converts a cup count into the mg/day unit the
// artifact expects.
const caffeineMgPerCup = 95

// Neutral defaults applied when a field was never answered. Defaults
// are applied before encoding and scaling, never after.
const (
	defaultAge          = 35.0
	defaultSleepHours   = 7.0
	defaultActivity     = 3.0
	defaultCaffeineCups = 2.0
	defaultStress       = 5.0
	defaultHeartRate    = 72.0
	defaultBreathing    = 16.0
	defaultSweating     = 2.0
	defaultDiet         = 6.0
)

// PreparationError reports that a raw field could not be encoded into
// its slot. Callers are expected to fall back rather than surface it.
type PreparationError struct {
	Field string
	Err   error
}

func (e *PreparationError) Error() string {
	return fmt.Sprintf("prepare feature %q: %v", e.Field, e.Err)
}

func (e *PreparationError) Unwrap() error { return e.Err }

// Inputs carries the raw answers feeding one prediction. Nil pointers
// and empty tokens mean the field was never answered and take the
// documented default. Anxiety is the self-reported level used only by
// the rule-based fallback, never by the vector itself.
type Inputs struct {
	Age           *int
	Gender        string
	Occupation    string
	SleepHours    *float64
	Activity      string
	CaffeineCups  *float64
	AlcoholDrinks *float64
	Smoking       *int
	FamilyHistory *bool
	Stress        *int
	HeartRate     *int
	Breathing     *int
	Sweating      *int
	Dizziness     *bool
	Medication    *bool
	Therapy       string
	LifeEvents    string
	DietQuality   *float64

	Anxiety *int
}

// Build derives the standardized 18-slot vector for in. The result is
// deterministic for identical inputs and contains no NaN or Inf.
func Build(in Inputs) (Vector, error) {
	var raw Vector

	raw[SlotAge] = floatOr(intPtrToFloat(in.Age), defaultAge)
	raw[SlotGender] = scales.CodeFor(scales.Genders, in.Gender, 2)
	raw[SlotOccupation] = scales.CodeFor(scales.Occupations, in.Occupation, 1)
	raw[SlotSleepHours] = floatOr(in.SleepHours, defaultSleepHours)
	raw[SlotActivity] = scales.CodeFor(scales.ActivityLevels, in.Activity, defaultActivity)
	raw[SlotCaffeine] = floatOr(in.CaffeineCups, defaultCaffeineCups) * caffeineMgPerCup
	raw[SlotAlcohol] = floatOr(in.AlcoholDrinks, 0)

	if in.Smoking != nil && (*in.Smoking < 0 || *in.Smoking > 2) {
		return Vector{}, &PreparationError{
			Field: SlotNames[SlotSmoking],
			Err:   fmt.Errorf("ordinal %d outside 0-2", *in.Smoking),
		}
	}
	raw[SlotSmoking] = floatOr(intPtrToFloat(in.Smoking), 0)

	raw[SlotFamilyHistory] = boolToFloat(in.FamilyHistory)
	raw[SlotStress] = floatOr(intPtrToFloat(in.Stress), defaultStress)
	raw[SlotHeartRate] = floatOr(intPtrToFloat(in.HeartRate), defaultHeartRate)
	raw[SlotBreathing] = floatOr(intPtrToFloat(in.Breathing), defaultBreathing)
	raw[SlotSweating] = floatOr(intPtrToFloat(in.Sweating), defaultSweating)
	raw[SlotDizziness] = boolToFloat(in.Dizziness)
	raw[SlotMedication] = boolToFloat(in.Medication)

	therapy := in.Therapy
	if therapy == "" {
		therapy = "no"
	}
	raw[SlotTherapy] = scales.CodeFor(scales.TherapyFrequencies, therapy, 0)

	if in.LifeEvents != "" {
		raw[SlotLifeEvent] = 1
	}
	raw[SlotDiet] = floatOr(in.DietQuality, defaultDiet)

	return scale(raw), nil
}

// scale applies z = (raw - mean) / std per slot, mapping non-finite
// values and zero-std slots to 0.0.
func scale(raw Vector) Vector {
	var out Vector
	for i, v := range raw {
		if !isFinite(v) {
			out[i] = 0
			continue
		}
		mean, std := scalerParams[i][0], scalerParams[i][1]
		if std <= 0 {
			out[i] = 0
			continue
		}
		z := (v - mean) / std
		if !isFinite(z) {
			z = 0
		}
		out[i] = z
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intPtrToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}

func boolToFloat(p *bool) float64 {
	if p != nil && *p {
		return 1
	}
	return 0
}
