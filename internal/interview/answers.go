package interview

// OnboardingAnswers accumulates the profile wizard's answers. Nil
// pointers and empty tokens mean the question was not answered yet.
type OnboardingAnswers struct {
	Age           *int
	Gender        string
	Occupation    string
	FamilyStatus  string
	SleepHours    *float64
	Activity      string
	DietRating    string
	AlcoholDrinks *int
	CaffeineCups  *int
	Smoking       string
	Stress        *int
	FamilyHistory *bool
	Therapy       string
	LifeEvents    string
}

// DailyAnswers accumulates one daily check-in. Heart rate and
// breathing rate may be skipped; the extended fields are only set when
// the user opts into the extended branch.
type DailyAnswers struct {
	Stress       *int
	SleepHours   *float64
	HeartRate    *int
	Breathing    *int
	CaffeineCups *int
	Alcohol      *int
	Anxiety      *int

	Mood      *int
	Energy    *int
	Sweating  *int
	Dizziness *bool
	Notes     string
}

// WeeklyAnswers accumulates one weekly assessment.
type WeeklyAnswers struct {
	AvgStress     *int
	AvgSleep      *float64
	TotalCaffeine *int
	TotalAlcohol  *int
	WeekRating    *int
	Events        string
	Therapy       *bool
}
