// Package interview drives the three guided check-in flows as
// finite-state machines. Each flow is an ordered list of typed steps;
// the engine validates one answer per step, accumulates it in a typed
// per-flow record, and advances strictly forward apart from the daily
// extended branch and the documented back/cancel escapes. The engine
// is presentation-independent and stateless with respect to time.
package interview

// FlowKind identifies one of the three guided interview types.
type FlowKind int

const (
	FlowOnboarding FlowKind = iota
	FlowDaily
	FlowWeekly
)

func (k FlowKind) String() string {
	switch k {
	case FlowOnboarding:
		return "onboarding"
	case FlowDaily:
		return "daily"
	case FlowWeekly:
		return "weekly"
	default:
		return "unknown"
	}
}

// OnboardingStep enumerates the profile wizard in order. The final
// confirmation reviews all answers before the profile is stored.
type OnboardingStep int

const (
	OnbAge OnboardingStep = iota
	OnbGender
	OnbOccupation
	OnbFamilyStatus
	OnbSleepHours
	OnbActivity
	OnbDietQuality
	OnbAlcohol
	OnbCaffeine
	OnbSmoking
	OnbStress
	OnbFamilyHistory
	OnbTherapy
	OnbLifeEvents
	OnbConfirm
)

// onboardingStepCount counts the question steps before confirmation.
const onboardingStepCount = int(OnbConfirm)

// DailyStep enumerates the daily check-in. The first seven steps are
// mandatory; DailyExtendedChoice branches into five optional steps or
// straight to completion.
type DailyStep int

const (
	DailyStress DailyStep = iota
	DailySleep
	DailyHeartRate
	DailyBreathing
	DailyCaffeine
	DailyAlcohol
	DailyAnxiety
	DailyExtendedChoice
	DailyMood
	DailyEnergy
	DailySweating
	DailyDizziness
	DailyNotes
)

// WeeklyStep enumerates the weekly assessment in order.
type WeeklyStep int

const (
	WeeklyStress WeeklyStep = iota
	WeeklySleep
	WeeklyCaffeine
	WeeklyAlcohol
	WeeklyRating
	WeeklyEvents
	WeeklyTherapy
)

const weeklyStepCount = int(WeeklyTherapy) + 1
