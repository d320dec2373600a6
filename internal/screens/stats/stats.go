package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/serenby/mindwell/internal/analytics"
	"github.com/serenby/mindwell/internal/router"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/screen"
	"github.com/serenby/mindwell/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats *analytics.UserStats
	Trend []analytics.TrendPoint
	Err   error
}

// StatsScreen shows aggregate statistics and a severity trend.
type StatsScreen struct {
	svc    *analytics.Service
	userID int64

	stats  *analytics.UserStats
	trend  []analytics.TrendPoint
	loaded bool
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(svc *analytics.Service, userID int64) *StatsScreen {
	return &StatsScreen{svc: svc, userID: userID}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := s.svc.UserStats(ctx, s.userID)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		trend, err := s.svc.SeverityTrend(ctx, s.userID, 14)
		if err != nil {
			trend = nil
		}

		return statsLoadedMsg{Stats: stats, Trend: trend}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.trend = msg.Trend
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

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading statistics...")
	}
	if s.stats == nil || (s.stats.TotalDaily == 0 && s.stats.TotalWeekly == 0) {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing to show yet. Complete a check-in first.")
	}

	st := s.stats
	var lines []string
	lines = append(lines, fmt.Sprintf("Daily check-ins    %d", st.TotalDaily))
	lines = append(lines, fmt.Sprintf("Weekly reflections %d", st.TotalWeekly))
	if st.Streak > 0 {
		lines = append(lines, fmt.Sprintf("Current streak     %d day(s)", st.Streak))
	}
	if st.AvgAnxiety > 0 {
		lines = append(lines, fmt.Sprintf("Average anxiety    %.1f/10", st.AvgAnxiety))
	}
	if st.AvgStress > 0 {
		lines = append(lines, fmt.Sprintf("Average stress     %.1f/10", st.AvgStress))
	}
	if st.AvgSleep > 0 {
		lines = append(lines, fmt.Sprintf("Average sleep      %.1f h", st.AvgSleep))
	}
	if st.SevenDayAvg > 0 {
		lines = append(lines, fmt.Sprintf("7-day severity     %.1f", st.SevenDayAvg))
	}
	if st.ThirtyDayAvg > 0 {
		lines = append(lines, fmt.Sprintf("30-day severity    %.1f", st.ThirtyDayAvg))
	}

	card := theme.Card.Render(lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(strings.Join(lines, "\n")))

	sections := []string{card}

	if len(s.trend) > 0 {
		sections = append(sections, s.renderTrend())
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderTrend draws one bar per day, colored by severity bucket.
func (s *StatsScreen) renderTrend() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Severity, last 14 days"))
	b.WriteString("\n\n")

	for _, p := range s.trend {
		n := int(p.Severity + 0.5)
		if n < 1 {
			n = 1
		}
		if n > 10 {
			n = 10
		}

		barColor := theme.Success
		switch scales.CategoryFor(n) {
		case scales.CategoryModerate:
			barColor = theme.Accent
		case scales.CategoryHigh:
			barColor = theme.Error
		}

		bar := lipgloss.NewStyle().
			Foreground(barColor).
			Render(strings.Repeat("█", n))

		b.WriteString(fmt.Sprintf("%s  %s %.1f\n", p.Date, bar, p.Severity))
	}

	return b.String()
}
