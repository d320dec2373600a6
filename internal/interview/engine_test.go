package interview

import (
	"testing"
	"time"
)

// drive submits answers in order and fails the test on any rejection.
func drive(t *testing.T, s *Session, answers []string) Outcome {
	t.Helper()
	var out Outcome
	for i, a := range answers {
		out = s.Submit(a)
		if !out.Accepted {
			t.Fatalf("answer %d (%q) rejected: %s", i, a, out.Err)
		}
	}
	return out
}

var onboardingAnswers = []string{
	"34",        // age
	"female",    // gender
	"employed",  // occupation
	"married",   // family status
	"6.5",       // sleep
	"light",     // activity
	"good",      // diet
	"4",         // alcohol drinks/week
	"3",         // caffeine cups/day
	"never",     // smoking
	"7",         // baseline stress
	"yes",       // family history
	"rarely",    // therapy
	"new job",   // life events
}

func TestOnboardingFlow(t *testing.T) {
	s := NewSession(1, FlowOnboarding)

	if !s.AtFirstStep() {
		t.Fatal("new session should be at its first step")
	}

	out := drive(t, s, onboardingAnswers)
	if out.Done {
		t.Fatal("flow should not complete before confirmation")
	}

	step, total := s.Progress()
	if total != 15 {
		t.Errorf("onboarding total = %d, want 15", total)
	}
	if step != 15 {
		t.Errorf("confirmation step = %d, want 15", step)
	}

	out = s.Submit("confirm")
	if !out.Accepted || !out.Done {
		t.Fatalf("confirm should complete the flow, got %+v", out)
	}

	a := s.Onboarding
	if a.Age == nil || *a.Age != 34 {
		t.Error("age not recorded")
	}
	if a.Gender != "female" || a.Occupation != "employed" {
		t.Error("categorical answers not recorded")
	}
	if a.SleepHours == nil || *a.SleepHours != 6.5 {
		t.Error("sleep hours not recorded")
	}
	if a.FamilyHistory == nil || !*a.FamilyHistory {
		t.Error("family history not recorded")
	}
	if a.LifeEvents != "new job" {
		t.Errorf("life events = %q, want %q", a.LifeEvents, "new job")
	}
}

func TestOnboardingRestart(t *testing.T) {
	s := NewSession(1, FlowOnboarding)
	drive(t, s, onboardingAnswers)

	out := s.Submit("restart")
	if !out.Accepted || !out.Restarted || out.Done {
		t.Fatalf("restart outcome = %+v", out)
	}
	if !s.AtFirstStep() {
		t.Error("restart should return to the first question")
	}
	if s.Onboarding.Age != nil || s.Onboarding.Gender != "" {
		t.Error("restart should discard recorded answers")
	}
}

func TestOnboardingConfirmRejectsUnknownToken(t *testing.T) {
	s := NewSession(1, FlowOnboarding)
	drive(t, s, onboardingAnswers)

	out := s.Submit("maybe")
	if out.Accepted {
		t.Fatal("unknown confirmation token should be rejected")
	}
	if step, _ := s.Progress(); step != 15 {
		t.Error("rejection should keep the session on the confirmation step")
	}
}

func TestDailyFlowCompleteEarly(t *testing.T) {
	s := NewSession(1, FlowDaily)

	_, total := s.Progress()
	if total != 8 {
		t.Errorf("mandatory daily total = %d, want 8", total)
	}

	out := drive(t, s, []string{"6", "7", "80", "16", "2", "0", "5"})
	if out.Done {
		t.Fatal("flow should pause at the extended choice")
	}

	out = s.Submit("complete")
	if !out.Done {
		t.Fatal("complete should finish the flow")
	}
	if s.Extended {
		t.Error("early completion should not mark the session extended")
	}
	if s.Daily.Mood != nil {
		t.Error("extended answers should stay unset")
	}
}

func TestDailyFlowExtendedBranch(t *testing.T) {
	s := NewSession(1, FlowDaily)
	drive(t, s, []string{"6", "7", "80", "16", "2", "0", "5"})

	out := s.Submit("extended")
	if !out.Accepted || out.Done {
		t.Fatalf("extended choice outcome = %+v", out)
	}
	if !s.Extended {
		t.Error("session should be marked extended")
	}

	_, total := s.Progress()
	if total != 13 {
		t.Errorf("extended daily total = %d, want 13", total)
	}

	out = drive(t, s, []string{"4", "5", "2", "no"})
	if out.Done {
		t.Fatal("notes step should still be pending")
	}
	out = s.Submit("rough day at work")
	if !out.Done {
		t.Fatal("notes should complete the extended flow")
	}
	if s.Daily.Notes != "rough day at work" {
		t.Errorf("notes = %q", s.Daily.Notes)
	}
	if s.Daily.Dizziness == nil || *s.Daily.Dizziness {
		t.Error("dizziness should be recorded as no")
	}
}

func TestDailySkippableVitals(t *testing.T) {
	s := NewSession(1, FlowDaily)
	out := drive(t, s, []string{"6", "7", "", "skip", "2", "0", "5"})
	if out.Done {
		t.Fatal("unexpected completion")
	}
	if s.Daily.HeartRate != nil {
		t.Error("empty heart rate should stay unset")
	}
	if s.Daily.Breathing != nil {
		t.Error("skipped breathing rate should stay unset")
	}
}

func TestDailyRejectionKeepsState(t *testing.T) {
	s := NewSession(1, FlowDaily)

	out := s.Submit("11")
	if out.Accepted {
		t.Fatal("out-of-range stress should be rejected")
	}
	if out.Err == "" {
		t.Error("rejection should carry a re-prompt message")
	}
	if !s.AtFirstStep() {
		t.Error("rejection should not advance the step")
	}
	if s.Daily.Stress != nil {
		t.Error("rejection should not record a value")
	}

	// The same step accepts a valid retry.
	out = s.Submit("9")
	if !out.Accepted {
		t.Fatalf("valid retry rejected: %s", out.Err)
	}
}

func TestWeeklyFlow(t *testing.T) {
	s := NewSession(1, FlowWeekly)

	_, total := s.Progress()
	if total != 7 {
		t.Errorf("weekly total = %d, want 7", total)
	}

	out := drive(t, s, []string{"6", "6.5", "20", "5", "4", "none", "yes"})
	if !out.Done {
		t.Fatal("seven answers should complete the weekly flow")
	}
	if s.Weekly.TotalCaffeine == nil || *s.Weekly.TotalCaffeine != 20 {
		t.Error("weekly caffeine total not recorded")
	}
	if s.Weekly.Events != "" {
		t.Error("\"none\" should collapse to an absent events answer")
	}
	if s.Weekly.Therapy == nil || !*s.Weekly.Therapy {
		t.Error("therapy attendance not recorded")
	}
}

func TestWeeklyCaffeineAllowsWeekTotals(t *testing.T) {
	s := NewSession(1, FlowWeekly)
	drive(t, s, []string{"6", "6.5"})

	// 15 cups/day is the daily ceiling; week totals go well past it.
	if out := s.Submit("70"); !out.Accepted {
		t.Errorf("70 cups/week rejected: %s", out.Err)
	}
}

func TestBackPolicy(t *testing.T) {
	s := NewSession(1, FlowDaily)

	if s.Back() != BackToEntry {
		t.Error("back at the first step should return to entry")
	}

	if out := s.Submit("5"); !out.Accepted {
		t.Fatalf("setup answer rejected: %s", out.Err)
	}
	if s.Back() != BackRefused {
		t.Error("back mid-flow should be refused")
	}
	if _, total := s.Progress(); total != 8 {
		t.Error("refused back should not disturb the flow")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	s1 := r.Start(1, FlowDaily)
	if got, ok := r.Get(1); !ok || got != s1 {
		t.Fatal("Get should return the started session")
	}

	// Starting again replaces the session.
	s2 := r.Start(1, FlowWeekly)
	if got, _ := r.Get(1); got != s2 {
		t.Error("Start should replace an in-progress session")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	r.Clear(1)
	if _, ok := r.Get(1); ok {
		t.Error("Clear should remove the session")
	}
	r.Clear(1) // idempotent
}

func TestRegistryClearIdle(t *testing.T) {
	r := NewRegistry()
	stale := r.Start(1, FlowDaily)
	stale.LastActive = time.Now().Add(-time.Hour)
	fresh := r.Start(2, FlowDaily)
	_ = fresh

	if n := r.ClearIdle(30 * time.Minute); n != 1 {
		t.Errorf("ClearIdle = %d, want 1", n)
	}
	if _, ok := r.Get(1); ok {
		t.Error("stale session should be evicted")
	}
	if _, ok := r.Get(2); !ok {
		t.Error("fresh session should survive")
	}
}
