package analytics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/store"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st), st
}

func saveDailyAt(t *testing.T, st *store.Store, userID int64, at time.Time, anxiety, stress int, sleep float64) {
	t.Helper()
	c := &store.DailyCheckin{
		UserID:     userID,
		Anxiety:    intp(anxiety),
		Stress:     intp(stress),
		SleepHours: floatp(sleep),
		CreatedAt:  at,
	}
	if err := st.CheckinRepo().SaveDaily(context.Background(), c); err != nil {
		t.Fatalf("SaveDaily: %v", err)
	}
}

func savePredictionAt(t *testing.T, st *store.Store, userID int64, at time.Time, severity int) {
	t.Helper()
	p := &store.Prediction{
		UserID:          userID,
		SeverityLevel:   severity,
		ClassName:       "Medium",
		Category:        string(scales.CategoryFor(severity)),
		PipelineVersion: "stacking_ensemble_v1.0",
		CreatedAt:       at,
	}
	if err := st.PredictionRepo().Save(context.Background(), p); err != nil {
		t.Fatalf("Save prediction: %v", err)
	}
}

func TestUserStatsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if stats.TotalDaily != 0 || stats.Streak != 0 || stats.LastSeverity != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestUserStatsAggregates(t *testing.T) {
	svc, st := newTestService(t)
	now := time.Now().UTC()

	saveDailyAt(t, st, 1, now.Add(-48*time.Hour), 4, 6, 7)
	saveDailyAt(t, st, 1, now, 6, 8, 5)
	savePredictionAt(t, st, 1, now, 7)

	if err := st.CheckinRepo().SaveWeekly(context.Background(), &store.WeeklyCheckin{
		UserID: 1, WeekStart: now, WeekEnd: now,
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if stats.TotalDaily != 2 || stats.TotalWeekly != 1 {
		t.Errorf("counts = %d daily, %d weekly", stats.TotalDaily, stats.TotalWeekly)
	}
	if stats.AvgAnxiety != 5 {
		t.Errorf("avg anxiety = %v, want 5", stats.AvgAnxiety)
	}
	if stats.AvgStress != 7 {
		t.Errorf("avg stress = %v, want 7", stats.AvgStress)
	}
	if stats.AvgSleep != 6 {
		t.Errorf("avg sleep = %v, want 6", stats.AvgSleep)
	}
	if stats.LastSeverity != 7 {
		t.Errorf("last severity = %d, want 7", stats.LastSeverity)
	}
	if stats.SevenDayAvg != 7 {
		t.Errorf("seven-day avg = %v, want 7", stats.SevenDayAvg)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	svc, st := newTestService(t)
	now := time.Now().UTC()

	// Three consecutive days ending today.
	for i := 0; i < 3; i++ {
		saveDailyAt(t, st, 1, now.AddDate(0, 0, -i), 5, 5, 7)
	}
	// A gap, then an older check-in that must not count.
	saveDailyAt(t, st, 1, now.AddDate(0, 0, -5), 5, 5, 7)

	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if stats.Streak != 3 {
		t.Errorf("streak = %d, want 3", stats.Streak)
	}
}

func TestStreakMayStartYesterday(t *testing.T) {
	svc, st := newTestService(t)
	now := time.Now().UTC()

	saveDailyAt(t, st, 1, now.AddDate(0, 0, -1), 5, 5, 7)
	saveDailyAt(t, st, 1, now.AddDate(0, 0, -2), 5, 5, 7)

	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if stats.Streak != 2 {
		t.Errorf("streak = %d, want 2", stats.Streak)
	}
}

func TestStreakBrokenByGap(t *testing.T) {
	svc, st := newTestService(t)
	now := time.Now().UTC()

	// The newest check-in is three days old: no active streak.
	saveDailyAt(t, st, 1, now.AddDate(0, 0, -3), 5, 5, 7)
	saveDailyAt(t, st, 1, now.AddDate(0, 0, -4), 5, 5, 7)

	stats, err := svc.UserStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if stats.Streak != 0 {
		t.Errorf("streak = %d, want 0", stats.Streak)
	}
}

func TestSeverityTrend(t *testing.T) {
	svc, st := newTestService(t)
	now := time.Now().UTC()

	// Two predictions yesterday average together; one today stands alone.
	savePredictionAt(t, st, 1, now.AddDate(0, 0, -1), 4)
	savePredictionAt(t, st, 1, now.AddDate(0, 0, -1), 7)
	savePredictionAt(t, st, 1, now, 8)

	trend, err := svc.SeverityTrend(context.Background(), 1, 14)
	if err != nil {
		t.Fatalf("SeverityTrend: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("trend points = %d, want 2", len(trend))
	}
	if trend[0].Severity != 5.5 {
		t.Errorf("first point = %v, want 5.5", trend[0].Severity)
	}
	if trend[1].Severity != 8 {
		t.Errorf("second point = %v, want 8", trend[1].Severity)
	}
	if trend[0].Date >= trend[1].Date {
		t.Error("trend should be oldest-first")
	}
}

func TestAdminStatsRequiresPrivilege(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.AdminStats(context.Background(), false); !errors.Is(err, ErrNotPrivileged) {
		t.Fatalf("err = %v, want ErrNotPrivileged", err)
	}
}

func TestAdminStatsAggregates(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := st.ProfileRepo().Save(ctx, &store.Profile{UserID: 1, Gender: "female"}); err != nil {
		t.Fatal(err)
	}
	savePredictionAt(t, st, 1, now, 2)
	savePredictionAt(t, st, 1, now, 6)
	savePredictionAt(t, st, 1, now, 9)
	if err := st.FeedbackRepo().Save(ctx, &store.Feedback{UserID: 1, Reaction: "helpful"}); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.AdminStats(ctx, true)
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	if stats.TotalUsers != 1 || stats.TotalPredictions != 3 {
		t.Errorf("totals = %+v", stats)
	}
	dist := stats.SeverityDistribution
	if dist[scales.CategoryLow] != 1 || dist[scales.CategoryModerate] != 1 || dist[scales.CategoryHigh] != 1 {
		t.Errorf("distribution = %v", dist)
	}
	if stats.FeedbackByReaction["helpful"] != 1 {
		t.Errorf("feedback = %v", stats.FeedbackByReaction)
	}
}
