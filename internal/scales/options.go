package scales

// Option is one entry of a categorical choice registry: the canonical
// token stored in answers, the label shown to the user, and the numeric
// code the classifier artifact was trained with.
type Option struct {
	Token string
	Label string
	Code  float64
}

// Gender options. The "other" code doubles as the unset default.
var Genders = []Option{
	{Token: "female", Label: "Female", Code: 0},
	{Token: "male", Label: "Male", Code: 1},
	{Token: "other", Label: "Other / prefer not to say", Code: 2},
}

// Occupation options, ordered by their trained encoding.
var Occupations = []Option{
	{Token: "employed", Label: "Employed", Code: 0},
	{Token: "other", Label: "Other", Code: 1},
	{Token: "retired", Label: "Retired", Code: 2},
	{Token: "self-employed", Label: "Self-employed", Code: 3},
	{Token: "student", Label: "Student", Code: 4},
	{Token: "unemployed", Label: "Unemployed", Code: 5},
}

// ActivityLevels map a lifestyle category to hours of exercise per
// week, the unit the classifier expects.
var ActivityLevels = []Option{
	{Token: "sedentary", Label: "Sedentary (little or no exercise)", Code: 0},
	{Token: "light", Label: "Light (1-2 sessions a week)", Code: 2},
	{Token: "moderate", Label: "Moderate (3-4 sessions a week)", Code: 4},
	{Token: "vigorous", Label: "Vigorous (5+ sessions a week)", Code: 7},
}

// SmokingHabits are pre-encoded ordinals passed through unchanged.
var SmokingHabits = []Option{
	{Token: "never", Label: "Never smoked", Code: 0},
	{Token: "former", Label: "Former smoker", Code: 1},
	{Token: "current", Label: "Current smoker", Code: 2},
}

// TherapyFrequencies map an attendance cadence to sessions per month.
var TherapyFrequencies = []Option{
	{Token: "no", Label: "Not attending", Code: 0},
	{Token: "rarely", Label: "Rarely", Code: 0.25},
	{Token: "monthly", Label: "About once a month", Code: 1},
	{Token: "bi_weekly", Label: "Every other week", Code: 2},
	{Token: "weekly", Label: "Weekly", Code: 4},
}

// FamilyStatuses are display-only profile choices; they do not feed
// the feature vector.
var FamilyStatuses = []Option{
	{Token: "single", Label: "Single"},
	{Token: "partnered", Label: "In a relationship"},
	{Token: "married", Label: "Married"},
	{Token: "divorced", Label: "Divorced"},
	{Token: "widowed", Label: "Widowed"},
	{Token: "other", Label: "Other"},
}

// DietRatings map the diet-quality wording onto the 1-5 ordinal used
// when a profile feeds the feature pipeline.
var DietRatings = []Option{
	{Token: "poor", Label: "Poor", Code: 1},
	{Token: "fair", Label: "Fair", Code: 2},
	{Token: "average", Label: "Average", Code: 3},
	{Token: "good", Label: "Good", Code: 4},
	{Token: "excellent", Label: "Excellent", Code: 5},
}

// DizzinessFrequencies describe how often dizziness occurs. Code 1
// marks the frequencies the feature pipeline treats as present.
var DizzinessFrequencies = []Option{
	{Token: "never", Label: "Never", Code: 0},
	{Token: "rarely", Label: "Rarely", Code: 0},
	{Token: "sometimes", Label: "Sometimes", Code: 1},
	{Token: "often", Label: "Often", Code: 1},
}

// YesNo options used by boolean-like questions.
var YesNo = []Option{
	{Token: "no", Label: "No", Code: 0},
	{Token: "yes", Label: "Yes", Code: 1},
}

// CodeFor looks up the numeric code for token within opts, returning
// fallback when the token is unknown or empty.
func CodeFor(opts []Option, token string, fallback float64) float64 {
	for _, o := range opts {
		if o.Token == token {
			return o.Code
		}
	}
	return fallback
}

// LabelFor returns the display label for token, or the token itself
// when no option matches.
func LabelFor(opts []Option, token string) string {
	for _, o := range opts {
		if o.Token == token {
			return o.Label
		}
	}
	return token
}

// ValidToken reports whether token names one of opts.
func ValidToken(opts []Option, token string) bool {
	for _, o := range opts {
		if o.Token == token {
			return true
		}
	}
	return false
}
