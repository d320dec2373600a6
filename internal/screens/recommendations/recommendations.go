package recommendations

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/serenby/mindwell/internal/recommend"
	"github.com/serenby/mindwell/internal/router"
	"github.com/serenby/mindwell/internal/screen"
	"github.com/serenby/mindwell/internal/store"
	"github.com/serenby/mindwell/internal/ui/theme"
)

type recommendationsMsg struct {
	Items []string
	Err   error
}

// RecommendationsScreen asks the configured LLM provider for
// personalized suggestions based on recent history.
type RecommendationsScreen struct {
	svc         *recommend.Service
	profiles    store.ProfileRepo
	predictions store.PredictionRepo
	userID      int64

	items  []string
	loaded bool
	errMsg string
}

var _ screen.Screen = (*RecommendationsScreen)(nil)

// New creates a new RecommendationsScreen.
func New(svc *recommend.Service, profiles store.ProfileRepo, predictions store.PredictionRepo, userID int64) *RecommendationsScreen {
	return &RecommendationsScreen{
		svc:         svc,
		profiles:    profiles,
		predictions: predictions,
		userID:      userID,
	}
}

func (s *RecommendationsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		// Suggestions still work without a profile; the prompt simply
		// carries less context.
		profile, err := s.profiles.Get(ctx, s.userID)
		if err != nil {
			profile = nil
		}

		recent, err := s.predictions.Recent(ctx, s.userID, 7)
		if err != nil {
			recent = nil
		}

		items, err := s.svc.Generate(ctx, profile, recent)
		if err != nil {
			return recommendationsMsg{Err: err}
		}
		return recommendationsMsg{Items: items}
	}
}

func (s *RecommendationsScreen) Title() string {
	return "Recommendations"
}

func (s *RecommendationsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recommendationsMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Items
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *RecommendationsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Thinking about your recent check-ins...")
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("Could not fetch recommendations:\n" + s.errMsg)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Suggestions for you"))
	b.WriteString("\n\n")

	textWidth := width * 2 / 3
	if textWidth > 72 {
		textWidth = 72
	}

	for i, item := range s.items {
		line := lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(textWidth).
			Render(fmt.Sprintf("%d. %s", i+1, item))
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("These are general wellbeing suggestions, not medical advice."))

	return lipgloss.NewStyle().
		Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
