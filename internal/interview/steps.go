package interview

import "github.com/serenby/mindwell/internal/scales"

// Step metadata tables, indexed by the step enums. Prompts are short;
// Help carries the scale explanation shown under the prompt.

var onboardingSpecs = map[OnboardingStep]StepSpec{
	OnbAge: {
		Key: "age", Prompt: "How old are you?",
		Mode: ModeInt, Min: scales.AgeMin, Max: scales.AgeMax,
	},
	OnbGender: {
		Key: "gender", Prompt: "How do you identify?",
		Mode: ModeOptions, Options: scales.Genders,
	},
	OnbOccupation: {
		Key: "occupation", Prompt: "What best describes your occupation?",
		Mode: ModeOptions, Options: scales.Occupations,
	},
	OnbFamilyStatus: {
		Key: "family_status", Prompt: "What is your family status?",
		Mode: ModeOptions, Options: scales.FamilyStatuses,
	},
	OnbSleepHours: {
		Key: "sleep_hours", Prompt: "How many hours do you usually sleep per night?",
		Help: "Half hours are fine, e.g. 7.5",
		Mode: ModeFloat, Min: scales.SleepHoursMin, Max: scales.SleepHoursMax,
	},
	OnbActivity: {
		Key: "physical_activity", Prompt: "How physically active are you?",
		Mode: ModeOptions, Options: scales.ActivityLevels,
	},
	OnbDietQuality: {
		Key: "diet_quality", Prompt: "How would you rate your overall diet quality?",
		Mode: ModeOptions, Options: scales.DietRatings,
	},
	OnbAlcohol: {
		Key: "alcohol_intake", Prompt: "How many alcoholic drinks do you have in a typical week?",
		Mode: ModeInt, Min: scales.AlcoholMin, Max: scales.AlcoholMax,
	},
	OnbCaffeine: {
		Key: "caffeine_intake", Prompt: "How many cups of coffee or other caffeinated drinks per day?",
		Mode: ModeInt, Min: scales.CaffeineCupsMin, Max: scales.CaffeineCupsMax,
	},
	OnbSmoking: {
		Key: "smoking_habits", Prompt: "Do you smoke?",
		Mode: ModeOptions, Options: scales.SmokingHabits,
	},
	OnbStress: {
		Key: "baseline_stress", Prompt: "What is your typical stress level?",
		Help: "1 = completely calm, 10 = overwhelmed",
		Mode: ModeInt, Min: float64(scales.Stress.Low), Max: float64(scales.Stress.High),
	},
	OnbFamilyHistory: {
		Key: "family_anxiety_history", Prompt: "Is there a history of anxiety in your family?",
		Mode: ModeOptions, Options: scales.YesNo,
	},
	OnbTherapy: {
		Key: "therapy_frequency", Prompt: "How often do you attend therapy?",
		Mode: ModeOptions, Options: scales.TherapyFrequencies,
	},
	OnbLifeEvents: {
		Key: "recent_life_events", Prompt: "Any major life events recently? (job change, moving, loss...)",
		Help: "Type \"skip\" if nothing significant",
		Mode: ModeText, Skippable: true,
	},
	OnbConfirm: {
		Key: "confirmation", Prompt: "Does everything look right?",
		Mode: ModeOptions, Options: []scales.Option{
			{Token: "confirm", Label: "Save my profile"},
			{Token: "restart", Label: "Start over"},
		},
	},
}

var dailySpecs = map[DailyStep]StepSpec{
	DailyStress: {
		Key: "stress_level", Prompt: "How stressed do you feel right now?",
		Help: "1 = completely calm, 10 = overwhelmed",
		Mode: ModeInt, Min: float64(scales.Stress.Low), Max: float64(scales.Stress.High),
	},
	DailySleep: {
		Key: "sleep_hours", Prompt: "How many hours did you sleep last night?",
		Mode: ModeFloat, Min: scales.SleepHoursMin, Max: scales.SleepHoursMax,
	},
	DailyHeartRate: {
		Key: "heart_rate", Prompt: "What is your resting heart rate (bpm)?",
		Help: "Type \"skip\" if you don't know",
		Mode: ModeInt, Min: scales.HeartRateMin, Max: scales.HeartRateMax, Skippable: true,
	},
	DailyBreathing: {
		Key: "breathing_rate", Prompt: "What is your breathing rate (breaths per minute)?",
		Help: "Type \"skip\" if you don't know",
		Mode: ModeInt, Min: scales.BreathingMin, Max: scales.BreathingMax, Skippable: true,
	},
	DailyCaffeine: {
		Key: "caffeine_intake", Prompt: "How many caffeinated drinks did you have today?",
		Mode: ModeInt, Min: scales.CaffeineCupsMin, Max: scales.CaffeineCupsMax,
	},
	DailyAlcohol: {
		Key: "alcohol_intake", Prompt: "How many alcoholic drinks did you have today?",
		Mode: ModeInt, Min: scales.AlcoholMin, Max: scales.AlcoholMax,
	},
	DailyAnxiety: {
		Key: "anxiety_level", Prompt: "How anxious do you feel today?",
		Help: "1 = none at all, 10 = severe",
		Mode: ModeInt, Min: float64(scales.Anxiety.Low), Max: float64(scales.Anxiety.High),
	},
	DailyExtendedChoice: {
		Key: "show_extended", Prompt: "A few optional questions help sharpen your insights. Continue?",
		Mode: ModeOptions, Options: []scales.Option{
			{Token: "extended", Label: "Answer extended questions"},
			{Token: "complete", Label: "Complete now"},
		},
	},
	DailyMood: {
		Key: "mood_rating", Prompt: "How is your mood today?",
		Help: "1 = terrible, 10 = excellent",
		Mode: ModeInt, Min: float64(scales.Mood.Low), Max: float64(scales.Mood.High),
	},
	DailyEnergy: {
		Key: "energy_level", Prompt: "How is your energy level?",
		Help: "1 = exhausted, 10 = full of energy",
		Mode: ModeInt, Min: float64(scales.Energy.Low), Max: float64(scales.Energy.High),
	},
	DailySweating: {
		Key: "sweating_level", Prompt: "Any unusual sweating today?",
		Help: "1 = none, 5 = profuse",
		Mode: ModeInt, Min: float64(scales.Sweating.Low), Max: float64(scales.Sweating.High),
	},
	DailyDizziness: {
		Key: "dizziness_today", Prompt: "Have you experienced any dizziness today?",
		Mode: ModeOptions, Options: scales.YesNo,
	},
	DailyNotes: {
		Key: "notes", Prompt: "Anything else you'd like to note about today?",
		Help: "Type \"skip\" to finish",
		Mode: ModeText, Skippable: true,
	},
}

var weeklySpecs = map[WeeklyStep]StepSpec{
	WeeklyStress: {
		Key: "avg_stress_level", Prompt: "On average, how stressed were you this week?",
		Help: "1 = completely calm, 10 = overwhelmed",
		Mode: ModeInt, Min: float64(scales.Stress.Low), Max: float64(scales.Stress.High),
	},
	WeeklySleep: {
		Key: "avg_sleep_hours", Prompt: "On average, how many hours did you sleep per night?",
		Mode: ModeFloat, Min: scales.SleepHoursMin, Max: scales.SleepHoursMax,
	},
	WeeklyCaffeine: {
		Key: "total_caffeine", Prompt: "Roughly how many caffeinated drinks did you have this week?",
		Mode: ModeInt, Min: scales.CaffeineCupsMin, Max: scales.CaffeineCupsMax * 7,
	},
	WeeklyAlcohol: {
		Key: "total_alcohol", Prompt: "How many alcoholic drinks did you have this week?",
		Mode: ModeInt, Min: scales.AlcoholMin, Max: scales.AlcoholMax,
	},
	WeeklyRating: {
		Key: "overall_week_rating", Prompt: "How was your week overall?",
		Help: "1 = awful, 10 = great",
		Mode: ModeInt, Min: float64(scales.WeekRating.Low), Max: float64(scales.WeekRating.High),
	},
	WeeklyEvents: {
		Key: "significant_events", Prompt: "Any significant events this week?",
		Help: "Type \"skip\" if nothing significant",
		Mode: ModeText, Skippable: true,
	},
	WeeklyTherapy: {
		Key: "therapy_attended", Prompt: "Did you attend therapy this week?",
		Mode: ModeOptions, Options: scales.YesNo,
	},
}
