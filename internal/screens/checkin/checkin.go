package checkin

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	checkinsvc "github.com/serenby/mindwell/internal/checkin"
	"github.com/serenby/mindwell/internal/interview"
	"github.com/serenby/mindwell/internal/router"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/screen"
	"github.com/serenby/mindwell/internal/store"
	"github.com/serenby/mindwell/internal/ui/components"
	"github.com/serenby/mindwell/internal/ui/layout"
	"github.com/serenby/mindwell/internal/ui/theme"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseSaving
	phaseResult
)

// optionChosenMsg carries the token picked from an options menu.
type optionChosenMsg struct {
	token string
}

// completedMsg reports the outcome of persisting a finished flow.
type completedMsg struct {
	result *checkinsvc.Result
	err    error
}

// feedbackSavedMsg confirms a stored reaction.
type feedbackSavedMsg struct {
	err error
}

// CheckinScreen drives one interview flow from first question to
// saved result.
type CheckinScreen struct {
	svc      *checkinsvc.Service
	sessions *interview.Registry
	feedback store.FeedbackRepo
	userID   int64
	flow     interview.FlowKind

	session *interview.Session
	input   components.TextInput
	options components.Menu

	phase    phase
	errMsg   string
	result   *checkinsvc.Result
	saveErr  string
	reaction string
}

var _ screen.Screen = (*CheckinScreen)(nil)
var _ screen.KeyHintProvider = (*CheckinScreen)(nil)
var _ screen.EscHandler = (*CheckinScreen)(nil)

// New starts (or resumes) the given flow for the user.
func New(svc *checkinsvc.Service, sessions *interview.Registry, feedback store.FeedbackRepo, userID int64, kind interview.FlowKind) *CheckinScreen {
	var session *interview.Session
	if existing, ok := sessions.Get(userID); ok && existing.Flow == kind {
		session = existing
	} else {
		session = sessions.Start(userID, kind)
	}

	s := &CheckinScreen{
		svc:      svc,
		sessions: sessions,
		feedback: feedback,
		userID:   userID,
		flow:     kind,
		session:  session,
	}
	s.buildWidgets()
	return s
}

// buildWidgets prepares the input widget for the current step.
func (s *CheckinScreen) buildWidgets() {
	spec := s.session.Spec()

	switch spec.Mode {
	case interview.ModeOptions:
		items := make([]components.MenuItem, 0, len(spec.Options))
		for _, opt := range spec.Options {
			token := opt.Token
			items = append(items, components.MenuItem{
				Label: opt.Label,
				Action: func() tea.Cmd {
					return func() tea.Msg { return optionChosenMsg{token: token} }
				},
			})
		}
		s.options = components.NewMenu(items)

	case interview.ModeInt:
		// Skippable vitals also accept "skip", so only mandatory
		// numeric steps get the digit filter.
		s.input = components.NewTextInput("enter a number", !spec.Skippable, 6)

	case interview.ModeFloat:
		s.input = components.NewTextInput("enter a number", false, 8)

	default:
		s.input = components.NewTextInput("type your answer", false, 200)
	}
}

func (s *CheckinScreen) Init() tea.Cmd {
	if s.session.Spec().Mode != interview.ModeOptions {
		return s.input.Init()
	}
	return nil
}

func (s *CheckinScreen) Title() string {
	switch s.flow {
	case interview.FlowOnboarding:
		return "Profile Setup"
	case interview.FlowWeekly:
		return "Weekly Reflection"
	default:
		return "Daily Check-in"
	}
}

// HandlesEsc keeps Esc inside the flow while questions are active so
// the back policy applies; once a result is shown Esc pops normally.
func (s *CheckinScreen) HandlesEsc() bool {
	return s.phase == phaseQuestion
}

func (s *CheckinScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseResult:
		if s.result != nil && s.reaction == "" {
			return []layout.KeyHint{
				{Key: "h/n/u", Description: "Rate advice"},
				{Key: "Esc", Description: "Done"},
			}
		}
		return []layout.KeyHint{{Key: "Esc", Description: "Done"}}
	case phaseSaving:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	default:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Answer"}}
		if s.session.AtFirstStep() {
			hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Cancel"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Cancel"})
		}
		return hints
	}
}

func (s *CheckinScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case optionChosenMsg:
		return s, s.submit(msg.token)

	case completedMsg:
		s.sessions.Clear(s.userID)
		s.phase = phaseResult
		if msg.err != nil {
			s.saveErr = msg.err.Error()
		} else {
			s.result = msg.result
		}
		return s, nil

	case feedbackSavedMsg:
		if msg.err != nil {
			s.reaction = ""
		}
		return s, nil

	case tea.KeyMsg:
		return s.updateKey(msg)
	}

	if s.phase == phaseQuestion && s.session.Spec().Mode != interview.ModeOptions {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CheckinScreen) updateKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseResult:
		if s.result != nil && s.result.PredictionID != 0 && s.reaction == "" {
			switch key {
			case "h":
				return s, s.recordFeedback("helpful")
			case "n":
				return s, s.recordFeedback("not_helpful")
			case "u":
				return s, s.recordFeedback("unsure")
			}
		}
		if key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case phaseSaving:
		return s, nil
	}

	switch key {
	case "esc":
		if s.session.Back() == interview.BackToEntry {
			s.sessions.Clear(s.userID)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.errMsg = "Backward navigation is not supported mid-flow. Finish the check-in or press Ctrl+X to cancel."
		return s, nil

	case "ctrl+x":
		s.sessions.Clear(s.userID)
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "enter":
		if s.session.Spec().Mode == interview.ModeOptions {
			var cmd tea.Cmd
			s.options, cmd = s.options.Update(msg)
			return s, cmd
		}
		return s, s.submit(strings.TrimSpace(s.input.Value()))
	}

	if s.session.Spec().Mode == interview.ModeOptions {
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit feeds one raw answer to the session and reacts to the
// outcome: re-prompt, advance, restart, or complete.
func (s *CheckinScreen) submit(raw string) tea.Cmd {
	outcome := s.session.Submit(raw)

	if !outcome.Accepted {
		s.errMsg = outcome.Err
		return nil
	}
	s.errMsg = ""

	if outcome.Done {
		s.phase = phaseSaving
		return s.complete()
	}

	s.buildWidgets()
	if s.session.Spec().Mode != interview.ModeOptions {
		return s.input.Init()
	}
	return nil
}

func (s *CheckinScreen) complete() tea.Cmd {
	svc := s.svc
	sess := s.session
	return func() tea.Msg {
		ctx := context.Background()
		switch sess.Flow {
		case interview.FlowOnboarding:
			_, err := svc.CompleteOnboarding(ctx, sess.UserID, sess.Onboarding)
			return completedMsg{err: err}
		case interview.FlowDaily:
			res, err := svc.CompleteDaily(ctx, sess.UserID, sess.Daily, sess.Extended)
			return completedMsg{result: res, err: err}
		default:
			res, err := svc.CompleteWeekly(ctx, sess.UserID, sess.Weekly)
			return completedMsg{result: res, err: err}
		}
	}
}

func (s *CheckinScreen) recordFeedback(reaction string) tea.Cmd {
	s.reaction = reaction
	svc := s.svc
	repo := s.feedback
	userID := s.userID
	predictionID := s.result.PredictionID
	return func() tea.Msg {
		err := svc.RecordFeedback(context.Background(), repo, userID, predictionID, reaction, "")
		return feedbackSavedMsg{err: err}
	}
}

func (s *CheckinScreen) View(width, height int) string {
	var content string
	switch s.phase {
	case phaseSaving:
		content = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Saving your check-in...")
	case phaseResult:
		content = s.renderResult(width)
	default:
		content = s.renderQuestion(width)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (s *CheckinScreen) renderQuestion(width int) string {
	spec := s.session.Spec()
	step, total := s.session.Progress()

	barWidth := width / 2
	if barWidth > 48 {
		barWidth = 48
	}
	progress := components.NewProgressBar(
		fmt.Sprintf("Step %d of %d", step, total),
		float64(step-1)/float64(total),
		false,
		barWidth,
	).View()

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(spec.Prompt)

	var body string
	if spec.Mode == interview.ModeOptions {
		body = s.options.View()
	} else {
		body = s.input.View()
		if spec.Help != "" {
			body += "\n" + lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(spec.Help)
		}
	}

	sections := []string{progress, prompt, body}

	if spec.Key == "confirmation" && s.flow == interview.FlowOnboarding {
		sections = []string{progress, s.renderReview(), prompt, body}
	}

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return strings.Join(sections, "\n\n")
}

// renderReview summarizes the onboarding answers before saving.
func (s *CheckinScreen) renderReview() string {
	a := s.session.Onboarding

	var lines []string
	if a.Age != nil {
		lines = append(lines, fmt.Sprintf("Age             %d", *a.Age))
	}
	lines = append(lines, fmt.Sprintf("Gender          %s", scales.LabelFor(scales.Genders, a.Gender)))
	lines = append(lines, fmt.Sprintf("Occupation      %s", scales.LabelFor(scales.Occupations, a.Occupation)))
	lines = append(lines, fmt.Sprintf("Family status   %s", scales.LabelFor(scales.FamilyStatuses, a.FamilyStatus)))
	if a.SleepHours != nil {
		lines = append(lines, fmt.Sprintf("Sleep           %.1f h/night", *a.SleepHours))
	}
	lines = append(lines, fmt.Sprintf("Activity        %s", scales.LabelFor(scales.ActivityLevels, a.Activity)))
	lines = append(lines, fmt.Sprintf("Diet            %s", scales.LabelFor(scales.DietRatings, a.DietRating)))
	if a.AlcoholDrinks != nil {
		lines = append(lines, fmt.Sprintf("Alcohol         %d drinks/week", *a.AlcoholDrinks))
	}
	if a.CaffeineCups != nil {
		lines = append(lines, fmt.Sprintf("Caffeine        %d cups/day", *a.CaffeineCups))
	}
	lines = append(lines, fmt.Sprintf("Smoking         %s", scales.LabelFor(scales.SmokingHabits, a.Smoking)))
	if a.Stress != nil {
		lines = append(lines, fmt.Sprintf("Typical stress  %d/10", *a.Stress))
	}
	if a.FamilyHistory != nil {
		v := "no"
		if *a.FamilyHistory {
			v = "yes"
		}
		lines = append(lines, fmt.Sprintf("Family history  %s", v))
	}
	lines = append(lines, fmt.Sprintf("Therapy         %s", scales.LabelFor(scales.TherapyFrequencies, a.Therapy)))
	if a.LifeEvents != "" {
		lines = append(lines, fmt.Sprintf("Life events     %s", a.LifeEvents))
	}

	return theme.Card.Render(lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(strings.Join(lines, "\n")))
}

func (s *CheckinScreen) renderResult(width int) string {
	if s.saveErr != "" {
		return lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("Could not save the check-in:\n"+s.saveErr) +
			"\n\n" + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Press Esc to return home.")
	}

	done := components.NewButton("Done", true, nil).View()

	// Onboarding has no prediction to show.
	if s.result == nil {
		return lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("Profile saved.") +
			"\n\n" + lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("You can now run daily check-ins and weekly reflections.") +
			"\n\n" + done
	}

	p := s.result.Prediction

	catColor := theme.Success
	switch p.Category {
	case scales.CategoryModerate:
		catColor = theme.Accent
	case scales.CategoryHigh:
		catColor = theme.Error
	}

	headline := lipgloss.NewStyle().
		Foreground(catColor).
		Bold(true).
		Render(fmt.Sprintf("%s anxiety — severity %d/10", p.ClassName, p.SeverityLevel))

	gaugeWidth := width / 2
	if gaugeWidth > 48 {
		gaugeWidth = 48
	}
	gauge := components.NewProgressBar("", float64(p.SeverityLevel)/10.0, false, gaugeWidth).View()

	confidence := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Confidence %.0f%%  ·  %s", p.Confidence*100, p.PipelineVersion))

	adviceStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(gaugeWidth + 8)
	if p.Category == scales.CategoryHigh {
		adviceStyle = adviceStyle.Foreground(theme.Error)
	}
	adviceCard := theme.Card.Render(adviceStyle.Render(p.Advice))

	sections := []string{headline, gauge, confidence, adviceCard}

	if s.result.PredictionID != 0 {
		if s.reaction == "" {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("Was this advice helpful?  [h]elpful · [n]ot really · [u]nsure"))
		} else {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.Success).
				Render("Thanks for the feedback."))
		}
	}
	sections = append(sections, done)

	return strings.Join(sections, "\n\n")
}
