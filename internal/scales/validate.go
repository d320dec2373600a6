package scales

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the coarse severity bucket used to select advice.
type Category string

const (
	CategoryLow      Category = "low"
	CategoryModerate Category = "moderate"
	CategoryHigh     Category = "high"
)

// CategoryFor buckets a 1-10 severity level. The thresholds are
// applied uniformly everywhere a severity is bucketed.
func CategoryFor(severity int) Category {
	switch {
	case severity <= 3:
		return CategoryLow
	case severity <= 6:
		return CategoryModerate
	default:
		return CategoryHigh
	}
}

// ParseIntInRange parses s as an integer and checks min <= v <= max.
func ParseIntInRange(s string, min, max int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number between %d and %d", min, max)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return v, nil
}

// ParseFloatInRange parses s as a float and checks min <= v <= max.
func ParseFloatInRange(s string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("enter a number between %g and %g", min, max)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("value must be between %g and %g", min, max)
	}
	return v, nil
}

// ParseScale parses s against a scale definition's range.
func ParseScale(s string, def ScaleDefinition) (int, error) {
	return ParseIntInRange(s, def.Low, def.High)
}

// NormalizeFreeText trims free-form input and collapses the skip
// tokens ("skip", "none", "no", any case) to absent. The second return
// is false when the user declined to answer.
func NormalizeFreeText(s string) (string, bool) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "", "skip", "none", "no":
		return "", false
	}
	return t, true
}
