// Package recommend generates personalized wellbeing recommendations
// from a user's profile and recent predictions using an LLM provider.
// It is strictly supplemental: predictions never wait on it.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/serenby/mindwell/internal/llm"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/store"
)

const systemPrompt = `You are a supportive wellbeing assistant inside a local anxiety check-in app.
Given a user's profile summary and recent anxiety levels, suggest small, concrete,
evidence-informed habits. Never diagnose, never mention medication changes, and
always keep a warm, non-judgmental tone. Respond only with the requested JSON.`

// responseSchema constrains the provider output to a short list of
// recommendation strings.
var responseSchema = &llm.Schema{
	Name:        "wellbeing-recommendations",
	Description: "A short list of personalized wellbeing recommendations.",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"recommendations"},
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
		},
	},
}

// Service turns stored history into recommendation prompts.
type Service struct {
	provider llm.Provider
}

// NewService wires the recommendation service. provider must not be nil.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Generate asks the provider for up to five recommendations based on
// the profile (may be nil) and recent predictions (may be empty).
func (s *Service) Generate(ctx context.Context, profile *store.Profile, recent []store.Prediction) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "recommendations")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(profile, recent)},
		},
		Schema:      responseSchema,
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	var parsed struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("parse recommendations: %w", err)
	}
	if len(parsed.Recommendations) == 0 {
		return nil, fmt.Errorf("provider returned no recommendations")
	}
	return parsed.Recommendations, nil
}

// buildPrompt summarizes what the model needs without leaking free-form
// notes verbatim.
func buildPrompt(profile *store.Profile, recent []store.Prediction) string {
	var b strings.Builder
	b.WriteString("Profile:\n")
	if profile == nil {
		b.WriteString("- not set up yet\n")
	} else {
		if profile.Age != nil {
			fmt.Fprintf(&b, "- age: %d\n", *profile.Age)
		}
		if profile.Occupation != "" {
			fmt.Fprintf(&b, "- occupation: %s\n", scales.LabelFor(scales.Occupations, profile.Occupation))
		}
		if profile.Activity != "" {
			fmt.Fprintf(&b, "- physical activity: %s\n", scales.LabelFor(scales.ActivityLevels, profile.Activity))
		}
		if profile.SleepHours != nil {
			fmt.Fprintf(&b, "- typical sleep: %.1f hours\n", *profile.SleepHours)
		}
		if profile.Therapy != "" {
			fmt.Fprintf(&b, "- therapy attendance: %s\n", scales.LabelFor(scales.TherapyFrequencies, profile.Therapy))
		}
		if profile.CaffeineCups != nil {
			fmt.Fprintf(&b, "- caffeine: %d cups/day\n", *profile.CaffeineCups)
		}
	}

	b.WriteString("\nRecent anxiety levels (newest first):\n")
	if len(recent) == 0 {
		b.WriteString("- no check-ins yet\n")
	}
	for i, p := range recent {
		if i >= 7 {
			break
		}
		fmt.Fprintf(&b, "- %s: %d/10 (%s)\n",
			p.CreatedAt.Format("Jan 2"), p.SeverityLevel, p.Category)
	}

	b.WriteString("\nSuggest 3 to 5 small recommendations tailored to this data.")
	return b.String()
}
