package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/serenby/mindwell/internal/router"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/screen"
	"github.com/serenby/mindwell/internal/store"
	"github.com/serenby/mindwell/internal/ui/layout"
	"github.com/serenby/mindwell/internal/ui/theme"
)

type historyLoadedMsg struct {
	Predictions []store.Prediction
	Events      []store.Event
	Err         error
}

// HistoryScreen displays past predictions and history events.
type HistoryScreen struct {
	predictions store.PredictionRepo
	events      store.EventRepo
	userID      int64

	items    []store.Prediction
	recent   []store.Event
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(predictions store.PredictionRepo, events store.EventRepo, userID int64) *HistoryScreen {
	return &HistoryScreen{
		predictions: predictions,
		events:      events,
		userID:      userID,
		expanded:    make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		preds, err := s.predictions.Recent(ctx, s.userID, 50)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Events are secondary; a failed load just hides them.
		events, err := s.events.Recent(ctx, s.userID, 10)
		if err != nil {
			events = nil
		}

		return historyLoadedMsg{Predictions: preds, Events: events}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Advice"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Predictions
			s.recent = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No check-ins yet. Run your first daily check-in!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, p := range s.items {
		dateStr := p.CreatedAt.Format("Jan 02, 2006 15:04")

		kind := "daily"
		if p.WeeklyID != nil {
			kind = "weekly"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-6s  severity %2d/10  %-6s  %.0f%% confidence",
			prefix, dateStr, kind, p.SeverityLevel, p.ClassName, p.Confidence*100)

		style := lipgloss.NewStyle().Foreground(categoryColor(scales.Category(p.Category)))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			advice := p.Advice
			if advice == "" {
				advice = "(no advice recorded)"
			}
			wrapped := lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Width(width * 2 / 3).
				Render("    " + advice + "\n    " + p.PipelineVersion)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, wrapped))
			b.WriteString("\n")
		}
	}

	if len(s.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent activity")))
		b.WriteString("\n")
		for _, e := range s.recent {
			line := fmt.Sprintf("  %s  %s", e.CreatedAt.Format("Jan 02 15:04"), eventLabel(e.Type))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func categoryColor(cat scales.Category) color.Color {
	switch cat {
	case scales.CategoryLow:
		return theme.Success
	case scales.CategoryModerate:
		return theme.Accent
	case scales.CategoryHigh:
		return theme.Error
	default:
		return theme.Text
	}
}

func eventLabel(eventType string) string {
	switch eventType {
	case store.EventOnboarding:
		return "profile saved"
	case store.EventDailyCheck:
		return "daily check-in"
	case store.EventWeeklyCheck:
		return "weekly reflection"
	case store.EventReset:
		return "data reset"
	default:
		return eventType
	}
}
