package interview

import (
	"time"

	"github.com/google/uuid"

	"github.com/serenby/mindwell/internal/scales"
)

// InputMode tells the presentation layer what widget a step needs.
type InputMode int

const (
	ModeInt InputMode = iota
	ModeFloat
	ModeOptions
	ModeText
)

// StepSpec describes the current step to the presentation layer.
type StepSpec struct {
	Key       string
	Prompt    string
	Help      string
	Mode      InputMode
	Options   []scales.Option
	Min       float64
	Max       float64
	Skippable bool
}

// Outcome reports the effect of one submitted answer.
type Outcome struct {
	// Accepted is false when validation rejected the value; Err then
	// carries the re-prompt message and the step is unchanged.
	Accepted bool
	Err      string
	// Done is true once the flow reached its terminal step. The
	// session should then be completed and destroyed by the host.
	Done bool
	// Restarted is true when a confirmation review restarted the flow
	// from its first question.
	Restarted bool
}

// BackAction is the result of a back request.
type BackAction int

const (
	// BackToEntry: the session was at its first step and is cleared;
	// the host returns to the pre-flow entry prompt.
	BackToEntry BackAction = iota
	// BackRefused: mid-flow backward navigation is not supported; the
	// host shows a "finish or cancel" message and the step is kept.
	BackRefused
)

// Session is one in-progress flow for one user. It is exclusively
// owned by the in-flight transition; the host serializes access per
// user.
type Session struct {
	ID     uuid.UUID
	UserID int64
	Flow   FlowKind

	Onboarding OnboardingAnswers
	Daily      DailyAnswers
	Weekly     WeeklyAnswers

	// Extended records whether the daily flow entered the optional
	// branch.
	Extended bool

	onb    OnboardingStep
	daily  DailyStep
	weekly WeeklyStep

	StartedAt  time.Time
	LastActive time.Time
}

// NewSession starts a flow at its first step.
func NewSession(userID int64, kind FlowKind) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		UserID:     userID,
		Flow:       kind,
		StartedAt:  now,
		LastActive: now,
	}
}

// AtFirstStep reports whether no answer has been accepted yet.
func (s *Session) AtFirstStep() bool {
	switch s.Flow {
	case FlowOnboarding:
		return s.onb == OnbAge
	case FlowDaily:
		return s.daily == DailyStress
	default:
		return s.weekly == WeeklyStress
	}
}

// Back implements the documented back policy: meaningful only at the
// very first step.
func (s *Session) Back() BackAction {
	if s.AtFirstStep() {
		return BackToEntry
	}
	return BackRefused
}

// Progress returns the 1-based step number and the flow's total step
// count for the current path.
func (s *Session) Progress() (step, total int) {
	switch s.Flow {
	case FlowOnboarding:
		return int(s.onb) + 1, onboardingStepCount + 1
	case FlowDaily:
		total := int(DailyExtendedChoice) + 1
		if s.Extended {
			total = int(DailyNotes) + 1
		}
		return int(s.daily) + 1, total
	default:
		return int(s.weekly) + 1, weeklyStepCount
	}
}

// Spec describes the current step for rendering.
func (s *Session) Spec() StepSpec {
	switch s.Flow {
	case FlowOnboarding:
		return onboardingSpecs[s.onb]
	case FlowDaily:
		return dailySpecs[s.daily]
	default:
		return weeklySpecs[s.weekly]
	}
}

// Submit validates raw for the current step and either stores it and
// advances, or reports a re-prompt without changing state.
func (s *Session) Submit(raw string) Outcome {
	s.LastActive = time.Now()
	switch s.Flow {
	case FlowOnboarding:
		return s.submitOnboarding(raw)
	case FlowDaily:
		return s.submitDaily(raw)
	default:
		return s.submitWeekly(raw)
	}
}

func reject(err error) Outcome {
	return Outcome{Err: err.Error()}
}

func rejectMsg(msg string) Outcome {
	return Outcome{Err: msg}
}

func (s *Session) submitOnboarding(raw string) Outcome {
	a := &s.Onboarding
	switch s.onb {
	case OnbAge:
		v, err := scales.ParseIntInRange(raw, scales.AgeMin, scales.AgeMax)
		if err != nil {
			return reject(err)
		}
		a.Age = &v
	case OnbGender:
		if !scales.ValidToken(scales.Genders, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.Gender = raw
	case OnbOccupation:
		if !scales.ValidToken(scales.Occupations, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.Occupation = raw
	case OnbFamilyStatus:
		if !scales.ValidToken(scales.FamilyStatuses, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.FamilyStatus = raw
	case OnbSleepHours:
		v, err := scales.ParseFloatInRange(raw, scales.SleepHoursMin, scales.SleepHoursMax)
		if err != nil {
			return reject(err)
		}
		a.SleepHours = &v
	case OnbActivity:
		if !scales.ValidToken(scales.ActivityLevels, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.Activity = raw
	case OnbDietQuality:
		if !scales.ValidToken(scales.DietRatings, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.DietRating = raw
	case OnbAlcohol:
		v, err := scales.ParseIntInRange(raw, scales.AlcoholMin, scales.AlcoholMax)
		if err != nil {
			return reject(err)
		}
		a.AlcoholDrinks = &v
	case OnbCaffeine:
		v, err := scales.ParseIntInRange(raw, scales.CaffeineCupsMin, scales.CaffeineCupsMax)
		if err != nil {
			return reject(err)
		}
		a.CaffeineCups = &v
	case OnbSmoking:
		if !scales.ValidToken(scales.SmokingHabits, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.Smoking = raw
	case OnbStress:
		v, err := scales.ParseScale(raw, scales.Stress)
		if err != nil {
			return reject(err)
		}
		a.Stress = &v
	case OnbFamilyHistory:
		if !scales.ValidToken(scales.YesNo, raw) {
			return rejectMsg("answer yes or no")
		}
		yes := raw == "yes"
		a.FamilyHistory = &yes
	case OnbTherapy:
		if !scales.ValidToken(scales.TherapyFrequencies, raw) {
			return rejectMsg("choose one of the listed options")
		}
		a.Therapy = raw
	case OnbLifeEvents:
		text, _ := scales.NormalizeFreeText(raw)
		a.LifeEvents = text
	case OnbConfirm:
		switch raw {
		case "confirm":
			return Outcome{Accepted: true, Done: true}
		case "restart":
			s.Onboarding = OnboardingAnswers{}
			s.onb = OnbAge
			return Outcome{Accepted: true, Restarted: true}
		default:
			return rejectMsg("confirm your answers or restart")
		}
	}
	s.onb++
	return Outcome{Accepted: true}
}

func (s *Session) submitDaily(raw string) Outcome {
	a := &s.Daily
	switch s.daily {
	case DailyStress:
		v, err := scales.ParseScale(raw, scales.Stress)
		if err != nil {
			return reject(err)
		}
		a.Stress = &v
	case DailySleep:
		v, err := scales.ParseFloatInRange(raw, scales.SleepHoursMin, scales.SleepHoursMax)
		if err != nil {
			return reject(err)
		}
		a.SleepHours = &v
	case DailyHeartRate:
		if _, answered := scales.NormalizeFreeText(raw); !answered {
			a.HeartRate = nil
		} else {
			v, err := scales.ParseIntInRange(raw, scales.HeartRateMin, scales.HeartRateMax)
			if err != nil {
				return reject(err)
			}
			a.HeartRate = &v
		}
	case DailyBreathing:
		if _, answered := scales.NormalizeFreeText(raw); !answered {
			a.Breathing = nil
		} else {
			v, err := scales.ParseIntInRange(raw, scales.BreathingMin, scales.BreathingMax)
			if err != nil {
				return reject(err)
			}
			a.Breathing = &v
		}
	case DailyCaffeine:
		v, err := scales.ParseIntInRange(raw, scales.CaffeineCupsMin, scales.CaffeineCupsMax)
		if err != nil {
			return reject(err)
		}
		a.CaffeineCups = &v
	case DailyAlcohol:
		v, err := scales.ParseIntInRange(raw, scales.AlcoholMin, scales.AlcoholMax)
		if err != nil {
			return reject(err)
		}
		a.Alcohol = &v
	case DailyAnxiety:
		v, err := scales.ParseScale(raw, scales.Anxiety)
		if err != nil {
			return reject(err)
		}
		a.Anxiety = &v
	case DailyExtendedChoice:
		switch raw {
		case "extended":
			s.Extended = true
			s.daily = DailyMood
			return Outcome{Accepted: true}
		case "complete":
			return Outcome{Accepted: true, Done: true}
		default:
			return rejectMsg("choose extended questions or complete now")
		}
	case DailyMood:
		v, err := scales.ParseScale(raw, scales.Mood)
		if err != nil {
			return reject(err)
		}
		a.Mood = &v
	case DailyEnergy:
		v, err := scales.ParseScale(raw, scales.Energy)
		if err != nil {
			return reject(err)
		}
		a.Energy = &v
	case DailySweating:
		v, err := scales.ParseScale(raw, scales.Sweating)
		if err != nil {
			return reject(err)
		}
		a.Sweating = &v
	case DailyDizziness:
		if !scales.ValidToken(scales.YesNo, raw) {
			return rejectMsg("answer yes or no")
		}
		yes := raw == "yes"
		a.Dizziness = &yes
	case DailyNotes:
		text, _ := scales.NormalizeFreeText(raw)
		a.Notes = text
		return Outcome{Accepted: true, Done: true}
	}
	s.daily++
	return Outcome{Accepted: true}
}

func (s *Session) submitWeekly(raw string) Outcome {
	a := &s.Weekly
	switch s.weekly {
	case WeeklyStress:
		v, err := scales.ParseScale(raw, scales.Stress)
		if err != nil {
			return reject(err)
		}
		a.AvgStress = &v
	case WeeklySleep:
		v, err := scales.ParseFloatInRange(raw, scales.SleepHoursMin, scales.SleepHoursMax)
		if err != nil {
			return reject(err)
		}
		a.AvgSleep = &v
	case WeeklyCaffeine:
		// Week total, so the daily cup bound scales by seven.
		v, err := scales.ParseIntInRange(raw, scales.CaffeineCupsMin, scales.CaffeineCupsMax*7)
		if err != nil {
			return reject(err)
		}
		a.TotalCaffeine = &v
	case WeeklyAlcohol:
		v, err := scales.ParseIntInRange(raw, scales.AlcoholMin, scales.AlcoholMax)
		if err != nil {
			return reject(err)
		}
		a.TotalAlcohol = &v
	case WeeklyRating:
		v, err := scales.ParseScale(raw, scales.WeekRating)
		if err != nil {
			return reject(err)
		}
		a.WeekRating = &v
	case WeeklyEvents:
		text, _ := scales.NormalizeFreeText(raw)
		a.Events = text
	case WeeklyTherapy:
		if !scales.ValidToken(scales.YesNo, raw) {
			return rejectMsg("answer yes or no")
		}
		yes := raw == "yes"
		a.Therapy = &yes
		return Outcome{Accepted: true, Done: true}
	}
	s.weekly++
	return Outcome{Accepted: true}
}
