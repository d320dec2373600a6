package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/serenby/mindwell/internal/analytics"
	"github.com/serenby/mindwell/internal/checkin"
	"github.com/serenby/mindwell/internal/interview"
	"github.com/serenby/mindwell/internal/recommend"
	"github.com/serenby/mindwell/internal/router"
	"github.com/serenby/mindwell/internal/screen"
	"github.com/serenby/mindwell/internal/screens/home"
	"github.com/serenby/mindwell/internal/store"
	"github.com/serenby/mindwell/internal/ui/layout"
)

// Options carries the wired services the TUI runs on.
type Options struct {
	Store     *store.Store
	Checkin   *checkin.Service
	Sessions  *interview.Registry
	Analytics *analytics.Service
	// Recommender is nil when no LLM provider is configured; the
	// recommendations entry then degrades to a notice screen.
	Recommender *recommend.Service
	UserID      int64
}

// Abandoned interview sessions are evicted after this much inactivity,
// checked once per sweep interval.
const (
	sessionIdleWindow = 30 * time.Minute
	sessionSweepEvery = time.Minute
)

// streakMsg refreshes the header streak counter.
type streakMsg struct {
	streak int
}

// sessionSweepMsg triggers one pass of the idle-session policy.
type sessionSweepMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
	streak int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Store, opts.Checkin, opts.Sessions, opts.Analytics, opts.Recommender, opts.UserID)
	return AppModel{
		opts:   opts,
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.refreshStreak(), scheduleSessionSweep())
}

func scheduleSessionSweep() tea.Cmd {
	return tea.Tick(sessionSweepEvery, func(time.Time) tea.Msg {
		return sessionSweepMsg{}
	})
}

func (m AppModel) refreshStreak() tea.Cmd {
	svc := m.opts.Analytics
	userID := m.opts.UserID
	return func() tea.Msg {
		if svc == nil {
			return streakMsg{}
		}
		stats, err := svc.UserStats(context.Background(), userID)
		if err != nil {
			return streakMsg{}
		}
		return streakMsg{streak: stats.Streak}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case streakMsg:
		m.streak = msg.streak
		return m, nil

	case sessionSweepMsg:
		if m.opts.Sessions != nil {
			m.opts.Sessions.ClearIdle(sessionIdleWindow)
		}
		return m, scheduleSessionSweep()

	case router.PopScreenMsg:
		// Returning to an underlying screen: re-read the streak and
		// let the revealed screen reload its data.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.refreshStreak(), func() tea.Msg {
			return router.ScreenRevealedMsg{}
		})

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
