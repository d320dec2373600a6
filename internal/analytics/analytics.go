// Package analytics computes aggregate statistics over stored
// check-ins and predictions.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/serenby/mindwell/internal/scales"
	"github.com/serenby/mindwell/internal/store"
)

// UserStats summarize one user's check-in history.
type UserStats struct {
	TotalDaily   int
	TotalWeekly  int
	AvgAnxiety   float64
	AvgStress    float64
	AvgSleep     float64
	Streak       int
	LastSeverity int
	SevenDayAvg  float64
	ThirtyDayAvg float64
}

// AdminStats summarize activity across all users. Only privileged
// callers may request them.
type AdminStats struct {
	TotalUsers           int
	TotalDaily           int
	TotalWeekly          int
	TotalPredictions     int
	AvgAnxiety           float64
	SeverityDistribution map[scales.Category]int
	FeedbackByReaction   map[string]int
}

// ErrNotPrivileged rejects admin statistics for ordinary callers.
var ErrNotPrivileged = fmt.Errorf("caller is not privileged")

// Service answers statistics queries against the store.
type Service struct {
	db          *sql.DB
	predictions store.PredictionRepo
	feedback    store.FeedbackRepo
}

// NewService builds an analytics service over an open store.
func NewService(s *store.Store) *Service {
	return &Service{
		db:          s.DB(),
		predictions: s.PredictionRepo(),
		feedback:    s.FeedbackRepo(),
	}
}

// UserStats aggregates the user's history.
func (s *Service) UserStats(ctx context.Context, userID int64) (*UserStats, error) {
	out := &UserStats{}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(anxiety_level), 0),
			COALESCE(AVG(stress_level), 0),
			COALESCE(AVG(sleep_hours), 0)
		FROM daily_checkins WHERE user_id = ?`, userID)
	if err := row.Scan(&out.TotalDaily, &out.AvgAnxiety, &out.AvgStress, &out.AvgSleep); err != nil {
		return nil, fmt.Errorf("daily aggregates: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM weekly_checkins WHERE user_id = ?`, userID,
	).Scan(&out.TotalWeekly); err != nil {
		return nil, fmt.Errorf("weekly count: %w", err)
	}

	streak, err := s.streak(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.Streak = streak

	recent, err := s.predictions.Recent(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(recent) > 0 {
		out.LastSeverity = recent[0].SeverityLevel
	}

	out.SevenDayAvg, err = s.severityAvgSince(ctx, userID, 7)
	if err != nil {
		return nil, err
	}
	out.ThirtyDayAvg, err = s.severityAvgSince(ctx, userID, 30)
	if err != nil {
		return nil, err
	}

	out.AvgAnxiety = round1(out.AvgAnxiety)
	out.AvgStress = round1(out.AvgStress)
	out.AvgSleep = round1(out.AvgSleep)
	return out, nil
}

// streak counts consecutive calendar days with a daily check-in,
// ending today or yesterday.
func (s *Service) streak(ctx context.Context, userID int64) (int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT date(created_at) FROM daily_checkins
		WHERE user_id = ? ORDER BY date(created_at) DESC LIMIT 366`, userID)
	if err != nil {
		return 0, fmt.Errorf("streak days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return 0, fmt.Errorf("scan streak day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := time.Now().UTC()
	expected := today
	// A streak may start yesterday if today has no check-in yet.
	if days[0] != dateStr(today) {
		expected = today.AddDate(0, 0, -1)
		if days[0] != dateStr(expected) {
			return 0, nil
		}
	}

	streak := 0
	for _, d := range days {
		if d != dateStr(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

func (s *Service) severityAvgSince(ctx context.Context, userID int64, days int) (float64, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	preds, err := s.predictions.Since(ctx, userID, since)
	if err != nil {
		return 0, err
	}
	if len(preds) == 0 {
		return 0, nil
	}
	sum := 0
	for _, p := range preds {
		sum += p.SeverityLevel
	}
	return round1(float64(sum) / float64(len(preds))), nil
}

// SeverityTrend returns per-day average severity over the last days
// days, oldest first, for chart-style rendering.
type TrendPoint struct {
	Date     string
	Severity float64
}

func (s *Service) SeverityTrend(ctx context.Context, userID int64, days int) ([]TrendPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(created_at), AVG(severity_level)
		FROM predictions WHERE user_id = ? AND created_at >= ?
		GROUP BY date(created_at) ORDER BY date(created_at)`,
		userID, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("severity trend: %w", err)
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Severity); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		p.Severity = round1(p.Severity)
		out = append(out, p)
	}
	return out, rows.Err()
}

// AdminStats aggregates across all users. privileged is supplied by
// the caller; no further authorization happens here.
func (s *Service) AdminStats(ctx context.Context, privileged bool) (*AdminStats, error) {
	if !privileged {
		return nil, ErrNotPrivileged
	}

	out := &AdminStats{
		SeverityDistribution: make(map[scales.Category]int),
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles`).Scan(&out.TotalUsers); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_checkins`).Scan(&out.TotalDaily); err != nil {
		return nil, fmt.Errorf("count daily: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM weekly_checkins`).Scan(&out.TotalWeekly); err != nil {
		return nil, fmt.Errorf("count weekly: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(severity_level), 0) FROM predictions`,
	).Scan(&out.TotalPredictions, &out.AvgAnxiety); err != nil {
		return nil, fmt.Errorf("prediction aggregates: %w", err)
	}
	out.AvgAnxiety = round1(out.AvgAnxiety)

	rows, err := s.db.QueryContext(ctx,
		`SELECT severity_level, COUNT(*) FROM predictions GROUP BY severity_level`)
	if err != nil {
		return nil, fmt.Errorf("severity distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var level, n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		out.SeverityDistribution[scales.CategoryFor(level)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out.FeedbackByReaction, err = s.feedback.CountByReaction(ctx)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
