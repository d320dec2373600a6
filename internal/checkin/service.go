// Package checkin orchestrates flow completion: it maps accepted
// interview answers onto permanent records, runs the prediction
// pipeline for daily and weekly flows, and appends history events.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serenby/mindwell/internal/features"
	"github.com/serenby/mindwell/internal/interview"
	"github.com/serenby/mindwell/internal/predict"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/store"
)

// ErrNoProfile is returned when a profile edit targets a user who has
// not completed onboarding.
var ErrNoProfile = errors.New("no profile exists yet; complete onboarding first")

// Service completes check-in flows against storage and the prediction
// dispatcher.
type Service struct {
	profiles    store.ProfileRepo
	checkins    store.CheckinRepo
	predictions store.PredictionRepo
	events      store.EventRepo
	dispatcher  *predict.Dispatcher
}

// NewService wires the completion service. All dependencies are
// required.
func NewService(
	profiles store.ProfileRepo,
	checkins store.CheckinRepo,
	predictions store.PredictionRepo,
	events store.EventRepo,
	dispatcher *predict.Dispatcher,
) *Service {
	return &Service{
		profiles:    profiles,
		checkins:    checkins,
		predictions: predictions,
		events:      events,
		dispatcher:  dispatcher,
	}
}

// Result is the outcome of a completed daily or weekly flow.
type Result struct {
	Prediction   predict.Result
	PredictionID int64
}

// CompleteOnboarding stores the confirmed profile. Onboarding runs no
// prediction.
func (s *Service) CompleteOnboarding(ctx context.Context, userID int64, a interview.OnboardingAnswers) (*store.Profile, error) {
	p := &store.Profile{
		UserID:         userID,
		Age:            a.Age,
		Gender:         a.Gender,
		Occupation:     a.Occupation,
		FamilyStatus:   a.FamilyStatus,
		SleepHours:     a.SleepHours,
		Activity:       a.Activity,
		DietRating:     a.DietRating,
		AlcoholDrinks:  a.AlcoholDrinks,
		CaffeineCups:   a.CaffeineCups,
		Smoking:        a.Smoking,
		BaselineStress: a.Stress,
		FamilyHistory:  a.FamilyHistory,
		Therapy:        a.Therapy,
		LifeEvents:     a.LifeEvents,
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}
	_ = s.events.Append(ctx, userID, store.EventOnboarding, nil)
	return p, nil
}

// ProfileUpdate carries the settings-editable profile fields. Nil
// fields are left untouched; set fields are validated against the
// documented ranges before anything is written.
type ProfileUpdate struct {
	SleepHours        *float64
	CaffeineCups      *int
	AlcoholDrinks     *int
	BaselineStress    *int
	Therapy           *string
	LifeEvents        *string
	MedicationUse     *bool
	BaselineHeartRate *int
	BaselineBreathing *int
	SweatingLevel     *int
	DizzinessFreq     *string
}

// UpdateProfile applies a partial edit to the stored profile. The
// baseline vitals it can set are what the weekly merge backfills from.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, u ProfileUpdate) (*store.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if p == nil {
		return nil, ErrNoProfile
	}

	changed := map[string]any{}
	if u.SleepHours != nil {
		if *u.SleepHours < scales.SleepHoursMin || *u.SleepHours > scales.SleepHoursMax {
			return nil, fmt.Errorf("sleep hours must be between %g and %g", scales.SleepHoursMin, scales.SleepHoursMax)
		}
		p.SleepHours = u.SleepHours
		changed["sleep_hours"] = *u.SleepHours
	}
	if u.CaffeineCups != nil {
		if *u.CaffeineCups < scales.CaffeineCupsMin || *u.CaffeineCups > scales.CaffeineCupsMax {
			return nil, fmt.Errorf("caffeine must be between %d and %d cups", scales.CaffeineCupsMin, scales.CaffeineCupsMax)
		}
		p.CaffeineCups = u.CaffeineCups
		changed["caffeine_intake"] = *u.CaffeineCups
	}
	if u.AlcoholDrinks != nil {
		if *u.AlcoholDrinks < scales.AlcoholMin || *u.AlcoholDrinks > scales.AlcoholMax {
			return nil, fmt.Errorf("alcohol must be between %d and %d drinks", scales.AlcoholMin, scales.AlcoholMax)
		}
		p.AlcoholDrinks = u.AlcoholDrinks
		changed["alcohol_intake"] = *u.AlcoholDrinks
	}
	if u.BaselineStress != nil {
		if !scales.Stress.Contains(*u.BaselineStress) {
			return nil, fmt.Errorf("stress must be between %d and %d", scales.Stress.Low, scales.Stress.High)
		}
		p.BaselineStress = u.BaselineStress
		changed["baseline_stress"] = *u.BaselineStress
	}
	if u.Therapy != nil {
		if !scales.ValidToken(scales.TherapyFrequencies, *u.Therapy) {
			return nil, fmt.Errorf("unknown therapy frequency %q", *u.Therapy)
		}
		p.Therapy = *u.Therapy
		changed["therapy_frequency"] = *u.Therapy
	}
	if u.LifeEvents != nil {
		p.LifeEvents = *u.LifeEvents
		changed["recent_life_events"] = *u.LifeEvents
	}
	if u.MedicationUse != nil {
		p.MedicationUse = u.MedicationUse
		changed["medication_use"] = *u.MedicationUse
	}
	if u.BaselineHeartRate != nil {
		if *u.BaselineHeartRate < scales.HeartRateMin || *u.BaselineHeartRate > scales.HeartRateMax {
			return nil, fmt.Errorf("heart rate must be between %d and %d bpm", scales.HeartRateMin, scales.HeartRateMax)
		}
		p.BaselineHeartRate = u.BaselineHeartRate
		changed["baseline_heart_rate"] = *u.BaselineHeartRate
	}
	if u.BaselineBreathing != nil {
		if *u.BaselineBreathing < scales.BreathingMin || *u.BaselineBreathing > scales.BreathingMax {
			return nil, fmt.Errorf("breathing rate must be between %d and %d", scales.BreathingMin, scales.BreathingMax)
		}
		p.BaselineBreathing = u.BaselineBreathing
		changed["baseline_breathing_rate"] = *u.BaselineBreathing
	}
	if u.SweatingLevel != nil {
		if !scales.Sweating.Contains(*u.SweatingLevel) {
			return nil, fmt.Errorf("sweating level must be between %d and %d", scales.Sweating.Low, scales.Sweating.High)
		}
		p.SweatingLevel = u.SweatingLevel
		changed["sweating_level"] = *u.SweatingLevel
	}
	if u.DizzinessFreq != nil {
		if !scales.ValidToken(scales.DizzinessFrequencies, *u.DizzinessFreq) {
			return nil, fmt.Errorf("unknown dizziness frequency %q", *u.DizzinessFreq)
		}
		p.DizzinessFreq = *u.DizzinessFreq
		changed["dizziness_frequency"] = *u.DizzinessFreq
	}

	if len(changed) == 0 {
		return p, nil
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.events.Append(ctx, userID, store.EventProfileEdit, changed)
	return p, nil
}

// CompleteDaily stores the check-in, runs the prediction pipeline over
// it, and records both. The prediction itself cannot fail; only
// storage errors are returned.
func (s *Service) CompleteDaily(ctx context.Context, userID int64, a interview.DailyAnswers, extended bool) (*Result, error) {
	row := &store.DailyCheckin{
		UserID:       userID,
		Stress:       a.Stress,
		SleepHours:   a.SleepHours,
		HeartRate:    a.HeartRate,
		Breathing:    a.Breathing,
		CaffeineCups: a.CaffeineCups,
		Alcohol:      a.Alcohol,
		Anxiety:      a.Anxiety,
		Mood:         a.Mood,
		Energy:       a.Energy,
		Sweating:     a.Sweating,
		Dizziness:    a.Dizziness,
		Notes:        a.Notes,
		IsExtended:   extended,
	}
	if err := s.checkins.SaveDaily(ctx, row); err != nil {
		return nil, fmt.Errorf("complete daily check-in: %w", err)
	}

	result := s.dispatcher.Predict(DailyInputs(a))

	pred := &store.Prediction{
		UserID:          userID,
		SeverityLevel:   result.SeverityLevel,
		ClassName:       result.ClassName,
		Confidence:      result.Confidence,
		Advice:          result.Advice,
		Category:        string(result.Category),
		PipelineVersion: result.PipelineVersion,
		DailyID:         &row.ID,
	}
	if err := s.predictions.Save(ctx, pred); err != nil {
		return nil, fmt.Errorf("save daily prediction: %w", err)
	}

	_ = s.events.Append(ctx, userID, store.EventDailyCheck, map[string]any{
		"daily_checkin_id": row.ID,
		"prediction_id":    pred.ID,
		"anxiety_level":    result.SeverityLevel,
		"is_extended":      extended,
	})

	return &Result{Prediction: result, PredictionID: pred.ID}, nil
}

// CompleteWeekly stores the assessment, merges the stored profile into
// the feature inputs, and records the prediction.
func (s *Service) CompleteWeekly(ctx context.Context, userID int64, a interview.WeeklyAnswers) (*Result, error) {
	weekStart, weekEnd := WeekRange(time.Now())
	row := &store.WeeklyCheckin{
		UserID:        userID,
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		AvgStress:     a.AvgStress,
		AvgSleep:      a.AvgSleep,
		TotalCaffeine: a.TotalCaffeine,
		TotalAlcohol:  a.TotalAlcohol,
		WeekRating:    a.WeekRating,
		Events:        a.Events,
		Therapy:       a.Therapy,
	}
	if err := s.checkins.SaveWeekly(ctx, row); err != nil {
		return nil, fmt.Errorf("complete weekly assessment: %w", err)
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		// Prediction still works without a profile; demographics take
		// their documented defaults.
		profile = nil
	}

	result := s.dispatcher.Predict(WeeklyInputs(a, profile))

	pred := &store.Prediction{
		UserID:          userID,
		SeverityLevel:   result.SeverityLevel,
		ClassName:       result.ClassName,
		Confidence:      result.Confidence,
		Advice:          result.Advice,
		Category:        string(result.Category),
		PipelineVersion: result.PipelineVersion,
		WeeklyID:        &row.ID,
	}
	if err := s.predictions.Save(ctx, pred); err != nil {
		return nil, fmt.Errorf("save weekly prediction: %w", err)
	}

	_ = s.events.Append(ctx, userID, store.EventWeeklyCheck, map[string]any{
		"weekly_checkin_id": row.ID,
		"prediction_id":     pred.ID,
		"anxiety_level":     result.SeverityLevel,
	})

	return &Result{Prediction: result, PredictionID: pred.ID}, nil
}

// RecordFeedback stores a reaction to a prediction.
func (s *Service) RecordFeedback(ctx context.Context, fb store.FeedbackRepo, userID int64, predictionID int64, reaction, comment string) error {
	f := &store.Feedback{
		UserID:       userID,
		PredictionID: &predictionID,
		Reaction:     reaction,
		Comment:      comment,
	}
	return fb.Save(ctx, f)
}

// DailyInputs maps a daily check-in onto feature inputs. Daily
// predictions intentionally run on the day's answers alone; the
// remaining slots take their documented defaults.
func DailyInputs(a interview.DailyAnswers) features.Inputs {
	return features.Inputs{
		Stress:       a.Stress,
		SleepHours:   a.SleepHours,
		HeartRate:    a.HeartRate,
		Breathing:    a.Breathing,
		CaffeineCups: intToFloat(a.CaffeineCups),
		AlcoholDrinks: intToFloat(a.Alcohol),
		Sweating:     a.Sweating,
		Dizziness:    a.Dizziness,
		Anxiety:      a.Anxiety,
	}
}

// WeeklyInputs merges a weekly assessment with the stored profile.
// The week's caffeine total becomes a daily average; profile
// demographics backfill everything the weekly flow does not ask.
func WeeklyInputs(a interview.WeeklyAnswers, p *store.Profile) features.Inputs {
	in := features.Inputs{
		Stress:     a.AvgStress,
		SleepHours: a.AvgSleep,
	}
	if a.TotalCaffeine != nil {
		daily := float64(*a.TotalCaffeine / 7)
		in.CaffeineCups = &daily
	}
	in.AlcoholDrinks = intToFloat(a.TotalAlcohol)
	in.LifeEvents = a.Events

	if p == nil {
		return in
	}

	in.Age = p.Age
	in.Gender = p.Gender
	in.Occupation = p.Occupation
	in.Activity = p.Activity
	if p.DietRating != "" {
		diet := scales.CodeFor(scales.DietRatings, p.DietRating, 3)
		in.DietQuality = &diet
	}
	if p.Smoking != "" {
		smoking := int(scales.CodeFor(scales.SmokingHabits, p.Smoking, 0))
		in.Smoking = &smoking
	}
	in.FamilyHistory = p.FamilyHistory
	in.Medication = p.MedicationUse
	in.Therapy = p.Therapy
	if in.LifeEvents == "" {
		in.LifeEvents = p.LifeEvents
	}
	in.HeartRate = p.BaselineHeartRate
	in.Breathing = p.BaselineBreathing
	in.Sweating = p.SweatingLevel
	if p.DizzinessFreq != "" {
		dizzy := scales.CodeFor(scales.DizzinessFrequencies, p.DizzinessFreq, 0) >= 1
		in.Dizziness = &dizzy
	}
	return in
}

// WeekRange returns the Monday start and Sunday end of the week
// containing now, in now's location.
func WeekRange(now time.Time) (start, end time.Time) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = day.AddDate(0, 0, -(weekday - 1))
	end = start.AddDate(0, 0, 6)
	return start, end
}

func intToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
