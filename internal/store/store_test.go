package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func intp(v int) *int           { return &v }
func int64p(v int64) *int64     { return &v }
func floatp(v float64) *float64 { return &v }
func boolp(v bool) *bool        { return &v }

func TestProfileRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.ProfileRepo()

	if p, err := repo.Get(ctx, 1); err != nil || p != nil {
		t.Fatalf("Get before save = (%v, %v), want (nil, nil)", p, err)
	}

	p := &Profile{
		UserID:        1,
		Age:           intp(28),
		Gender:        "female",
		Occupation:    "student",
		FamilyStatus:  "single",
		SleepHours:    floatp(7.5),
		Activity:      "light",
		DietRating:    "fair",
		AlcoholDrinks: intp(2),
		CaffeineCups:  intp(3),
		Smoking:       "never",
		BaselineStress: intp(6),
		FamilyHistory: boolp(false),
		Therapy:       "no",
		LifeEvents:    "started university",
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Age == nil || *got.Age != 28 {
		t.Error("age did not round-trip")
	}
	if got.Gender != "female" || got.DietRating != "fair" {
		t.Error("categorical fields did not round-trip")
	}
	if got.SleepHours == nil || *got.SleepHours != 7.5 {
		t.Error("sleep hours did not round-trip")
	}
	if got.FamilyHistory == nil || *got.FamilyHistory {
		t.Error("false family history did not round-trip")
	}
	if got.BaselineHeartRate != nil {
		t.Error("unset optional field should scan as nil")
	}

	// Save is an upsert: the second write replaces the first.
	p.Age = intp(29)
	p.Occupation = "employed"
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err = repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get after upsert: %v", err)
	}
	if *got.Age != 29 || got.Occupation != "employed" {
		t.Error("upsert did not replace the profile")
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if p, err := repo.Get(ctx, 1); err != nil || p != nil {
		t.Errorf("Get after Delete = (%v, %v), want (nil, nil)", p, err)
	}
}

func TestDailyCheckinRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.CheckinRepo()

	c := &DailyCheckin{
		UserID:     1,
		Stress:     intp(7),
		SleepHours: floatp(6),
		HeartRate:  intp(90),
		Anxiety:    intp(6),
		Mood:       intp(4),
		Dizziness:  boolp(true),
		Notes:      "restless night",
		IsExtended: true,
	}
	if err := repo.SaveDaily(ctx, c); err != nil {
		t.Fatalf("SaveDaily: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("SaveDaily should set the row id")
	}

	rows, err := repo.RecentDaily(ctx, 1, 10)
	if err != nil {
		t.Fatalf("RecentDaily: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d", len(rows))
	}
	got := rows[0]
	if got.Stress == nil || *got.Stress != 7 {
		t.Error("stress did not round-trip")
	}
	if got.Breathing != nil {
		t.Error("skipped breathing should scan as nil")
	}
	if got.Dizziness == nil || !*got.Dizziness {
		t.Error("dizziness did not round-trip")
	}
	if got.Notes != "restless night" || !got.IsExtended {
		t.Error("notes or extended flag did not round-trip")
	}
}

func TestRecentDailyOrderAndScope(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.CheckinRepo()

	base := time.Now().UTC().Add(-3 * 24 * time.Hour)
	for i := 0; i < 3; i++ {
		c := &DailyCheckin{UserID: 1, Stress: intp(i + 1), CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour)}
		if err := repo.SaveDaily(ctx, c); err != nil {
			t.Fatalf("SaveDaily: %v", err)
		}
	}
	if err := repo.SaveDaily(ctx, &DailyCheckin{UserID: 2, Stress: intp(9)}); err != nil {
		t.Fatalf("SaveDaily other user: %v", err)
	}

	rows, err := repo.RecentDaily(ctx, 1, 2)
	if err != nil {
		t.Fatalf("RecentDaily: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("limit ignored: %d rows", len(rows))
	}
	if *rows[0].Stress != 3 || *rows[1].Stress != 2 {
		t.Errorf("rows not newest-first: %d, %d", *rows[0].Stress, *rows[1].Stress)
	}
}

func TestWeeklyCheckinRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.CheckinRepo()

	start := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	c := &WeeklyCheckin{
		UserID:        1,
		WeekStart:     start,
		WeekEnd:       start.AddDate(0, 0, 6),
		AvgStress:     intp(5),
		AvgSleep:      floatp(6.5),
		TotalCaffeine: intp(18),
		WeekRating:    intp(6),
		Events:        "quiet week",
		Therapy:       boolp(false),
	}
	if err := repo.SaveWeekly(ctx, c); err != nil {
		t.Fatalf("SaveWeekly: %v", err)
	}
	if c.ID == 0 {
		t.Error("SaveWeekly should set the row id")
	}
}

func TestPredictionRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.PredictionRepo()

	// Seed the daily check-in referenced by DailyID so the foreign key
	// constraint is satisfied.
	if _, err := st.DB().ExecContext(ctx,
		`INSERT INTO daily_checkins (id, user_id, created_at) VALUES (11, 1, '2025-06-09T00:00:00Z')`,
	); err != nil {
		t.Fatalf("seed daily checkin: %v", err)
	}

	p := &Prediction{
		UserID:          1,
		SeverityLevel:   6,
		ClassName:       "Medium",
		Confidence:      0.82,
		Advice:          "Take a short walk.",
		Category:        "moderate",
		PipelineVersion: "stacking_ensemble_v1.0",
		DailyID:         int64p(11),
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Save should set the row id")
	}

	rows, err := repo.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d", len(rows))
	}
	got := rows[0]
	if got.SeverityLevel != 6 || got.ClassName != "Medium" || got.Confidence != 0.82 {
		t.Errorf("prediction = %+v", got)
	}
	if got.DailyID == nil || *got.DailyID != 11 {
		t.Error("daily link did not round-trip")
	}
	if got.WeeklyID != nil {
		t.Error("unset weekly link should scan as nil")
	}
}

func TestPredictionSince(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.PredictionRepo()

	now := time.Now().UTC()
	for i, age := range []time.Duration{72 * time.Hour, 24 * time.Hour, time.Hour} {
		p := &Prediction{
			UserID: 1, SeverityLevel: i + 1, ClassName: "Low",
			Category: "low", PipelineVersion: "v", CreatedAt: now.Add(-age),
		}
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	rows, err := repo.Since(ctx, 1, now.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("Since: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	if rows[0].SeverityLevel != 2 || rows[1].SeverityLevel != 3 {
		t.Errorf("rows not oldest-first: %d, %d", rows[0].SeverityLevel, rows[1].SeverityLevel)
	}
}

func TestEventAppendAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.EventRepo()

	if err := repo.Append(ctx, 1, EventOnboarding, nil); err != nil {
		t.Fatalf("Append nil payload: %v", err)
	}
	if err := repo.Append(ctx, 1, EventDailyCheck, map[string]any{"anxiety_level": 4}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, 1, EventDailyCheck, map[string]any{"anxiety_level": 7}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	events, err := repo.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("event count = %d", len(events))
	}
	if events[0].Type != EventDailyCheck {
		t.Error("events not newest-first")
	}
	if events[0].EventID == "" {
		t.Error("event id should be assigned")
	}
	// JSON numbers decode as float64.
	if v, ok := events[0].Payload["anxiety_level"].(float64); !ok || v != 7 {
		t.Errorf("payload = %v", events[0].Payload)
	}

	daily, err := repo.RecentByType(ctx, 1, EventDailyCheck, 10)
	if err != nil {
		t.Fatalf("RecentByType: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("typed count = %d", len(daily))
	}
	for _, e := range daily {
		if e.Type != EventDailyCheck {
			t.Errorf("unexpected type %q", e.Type)
		}
	}
}

func TestFeedbackRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.FeedbackRepo()

	// Seed the prediction referenced by PredictionID so the foreign key
	// constraint is satisfied.
	if _, err := st.DB().ExecContext(ctx,
		`INSERT INTO predictions (id, user_id, severity_level, class_name, confidence, advice, category, pipeline_version, created_at)
		 VALUES (1, 1, 1, 'Low', 0.5, '', 'low', 'v', '2025-06-09T00:00:00Z')`,
	); err != nil {
		t.Fatalf("seed prediction: %v", err)
	}

	for _, reaction := range []string{"helpful", "helpful", "not_helpful"} {
		f := &Feedback{UserID: 1, PredictionID: int64p(1), Reaction: reaction}
		if err := repo.Save(ctx, f); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if f.ID == 0 {
			t.Error("Save should set the row id")
		}
	}

	counts, err := repo.CountByReaction(ctx)
	if err != nil {
		t.Fatalf("CountByReaction: %v", err)
	}
	if counts["helpful"] != 2 || counts["not_helpful"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestDeleteAll(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	checkins := st.CheckinRepo()
	predictions := st.PredictionRepo()

	daily := &DailyCheckin{UserID: 1, Stress: intp(5)}
	if err := checkins.SaveDaily(ctx, daily); err != nil {
		t.Fatal(err)
	}
	if err := checkins.SaveWeekly(ctx, &WeeklyCheckin{UserID: 1, WeekStart: time.Now(), WeekEnd: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := predictions.Save(ctx, &Prediction{UserID: 1, ClassName: "Low", Category: "low", PipelineVersion: "v", DailyID: &daily.ID}); err != nil {
		t.Fatal(err)
	}

	// A second user's data survives the wipe.
	if err := checkins.SaveDaily(ctx, &DailyCheckin{UserID: 2, Stress: intp(3)}); err != nil {
		t.Fatal(err)
	}

	if err := checkins.DeleteAll(ctx, 1); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	rows, err := checkins.RecentDaily(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Error("daily check-ins not deleted")
	}
	preds, err := predictions.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 0 {
		t.Error("predictions not deleted")
	}
	other, err := checkins.RecentDaily(ctx, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 {
		t.Error("other user's data should be untouched")
	}
}
