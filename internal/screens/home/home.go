package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/serenby/mindwell/internal/analytics"
	"github.com/serenby/mindwell/internal/checkin"
	"github.com/serenby/mindwell/internal/interview"
	"github.com/serenby/mindwell/internal/recommend"
	"github.com/serenby/mindwell/internal/router"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/screen"
	checkinscreen "github.com/serenby/mindwell/internal/screens/checkin"
	"github.com/serenby/mindwell/internal/screens/history"
	"github.com/serenby/mindwell/internal/screens/placeholder"
	recscreen "github.com/serenby/mindwell/internal/screens/recommendations"
	statsscreen "github.com/serenby/mindwell/internal/screens/stats"
	"github.com/serenby/mindwell/internal/store"
	"github.com/serenby/mindwell/internal/ui/components"
	"github.com/serenby/mindwell/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	st          *store.Store
	svc         *checkin.Service
	sessions    *interview.Registry
	analytics   *analytics.Service
	recommender *recommend.Service
	userID      int64

	menu       components.Menu
	hasProfile bool
	stats      *analytics.UserStats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen and loads the user's summary.
func New(st *store.Store, svc *checkin.Service, sessions *interview.Registry, stats *analytics.Service, rec *recommend.Service, userID int64) *HomeScreen {
	h := &HomeScreen{
		st:          st,
		svc:         svc,
		sessions:    sessions,
		analytics:   stats,
		recommender: rec,
		userID:      userID,
	}
	h.reload()
	return h
}

// reload refreshes the summary card and rebuilds the menu. The menu
// labels depend on whether a profile exists yet.
func (h *HomeScreen) reload() {
	ctx := context.Background()

	h.hasProfile = false
	if h.st != nil {
		if p, err := h.st.ProfileRepo().Get(ctx, h.userID); err == nil && p != nil {
			h.hasProfile = true
		}
	}

	h.stats = nil
	if h.analytics != nil {
		if s, err := h.analytics.UserStats(ctx, h.userID); err == nil {
			h.stats = s
		}
	}

	profileLabel := "Set Up Profile"
	if h.hasProfile {
		profileLabel = "Update Profile"
	}

	items := []components.MenuItem{
		{Label: "Daily Check-in", Disabled: !h.hasProfile, Action: h.pushFlow(interview.FlowDaily)},
		{Label: "Weekly Reflection", Disabled: !h.hasProfile, Action: h.pushFlow(interview.FlowWeekly)},
		{Label: profileLabel, Action: h.pushFlow(interview.FlowOnboarding)},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.st.PredictionRepo(), h.st.EventRepo(), h.userID)}
			}
		}},
		{Label: "Statistics", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(h.analytics, h.userID)}
			}
		}},
		{Label: "Recommendations", Action: func() tea.Cmd {
			if h.recommender == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("Recommendations")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: recscreen.New(h.recommender, h.st.ProfileRepo(), h.st.PredictionRepo(), h.userID)}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) pushFlow(kind interview.FlowKind) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: checkinscreen.New(h.svc, h.sessions, h.st.FeedbackRepo(), h.userID, kind),
			}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ScreenRevealedMsg); ok {
		h.reload()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("MindWell")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Your anxiety check-in companion")
	sections = append(sections, title+"\n"+subtitle)

	sections = append(sections, h.renderSummaryCard())
	sections = append(sections, h.menu.View())

	if !h.hasProfile {
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Set up your profile to unlock check-ins.")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) renderSummaryCard() string {
	var lines []string

	if h.stats == nil || (h.stats.TotalDaily == 0 && h.stats.TotalWeekly == 0) {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("No check-ins yet"))
	} else {
		s := h.stats
		lines = append(lines, fmt.Sprintf("Check-ins   %d daily · %d weekly", s.TotalDaily, s.TotalWeekly))
		if s.Streak > 0 {
			lines = append(lines, fmt.Sprintf("Streak      %d day(s)", s.Streak))
		}
		if s.LastSeverity > 0 {
			cat := scales.CategoryFor(s.LastSeverity)
			lines = append(lines, fmt.Sprintf("Last result %d/10 (%s)", s.LastSeverity, cat))
		}
		if s.SevenDayAvg > 0 {
			lines = append(lines, fmt.Sprintf("7-day avg   %.1f", s.SevenDayAvg))
		}
	}

	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(strings.Join(lines, "\n"))

	return theme.Card.Render(body)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
