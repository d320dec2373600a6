package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DailyCheckin is one saved daily check-in row.
type DailyCheckin struct {
	ID           int64
	UserID       int64
	Stress       *int
	SleepHours   *float64
	HeartRate    *int
	Breathing    *int
	CaffeineCups *int
	Alcohol      *int
	Anxiety      *int
	Mood         *int
	Energy       *int
	Sweating     *int
	Dizziness    *bool
	Notes        string
	IsExtended   bool
	CreatedAt    time.Time
}

// WeeklyCheckin is one saved weekly assessment row.
type WeeklyCheckin struct {
	ID            int64
	UserID        int64
	WeekStart     time.Time
	WeekEnd       time.Time
	AvgStress     *int
	AvgSleep      *float64
	TotalCaffeine *int
	TotalAlcohol  *int
	WeekRating    *int
	Events        string
	Therapy       *bool
	CreatedAt     time.Time
}

// CheckinRepo persists daily and weekly check-ins.
type CheckinRepo interface {
	// SaveDaily inserts a daily check-in and sets its ID.
	SaveDaily(ctx context.Context, c *DailyCheckin) error

	// SaveWeekly inserts a weekly assessment and sets its ID.
	SaveWeekly(ctx context.Context, c *WeeklyCheckin) error

	// RecentDaily returns the user's newest daily check-ins, newest
	// first, up to limit.
	RecentDaily(ctx context.Context, userID int64, limit int) ([]DailyCheckin, error)

	// DeleteAll removes every check-in belonging to the user.
	DeleteAll(ctx context.Context, userID int64) error
}

// CheckinRepo returns a CheckinRepo backed by this store.
func (s *Store) CheckinRepo() CheckinRepo {
	return &checkinRepo{db: s.db}
}

type checkinRepo struct {
	db *sql.DB
}

func (r *checkinRepo) SaveDaily(ctx context.Context, c *DailyCheckin) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_checkins (
			user_id, stress_level, sleep_hours, heart_rate, breathing_rate,
			caffeine_intake, alcohol_intake, anxiety_level, mood_rating,
			energy_level, sweating_level, dizziness, notes, is_extended,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, nullInt(c.Stress), nullFloat(c.SleepHours), nullInt(c.HeartRate),
		nullInt(c.Breathing), nullInt(c.CaffeineCups), nullInt(c.Alcohol),
		nullInt(c.Anxiety), nullInt(c.Mood), nullInt(c.Energy),
		nullInt(c.Sweating), nullBool(c.Dizziness), nullString(c.Notes),
		boolToInt(c.IsExtended), c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save daily check-in: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("daily check-in id: %w", err)
	}
	return nil
}

func (r *checkinRepo) SaveWeekly(ctx context.Context, c *WeeklyCheckin) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO weekly_checkins (
			user_id, week_start, week_end, avg_stress_level, avg_sleep_hours,
			total_caffeine, total_alcohol, overall_week_rating,
			significant_events, therapy_attended, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.WeekStart.Format(time.RFC3339), c.WeekEnd.Format(time.RFC3339),
		nullInt(c.AvgStress), nullFloat(c.AvgSleep), nullInt(c.TotalCaffeine),
		nullInt(c.TotalAlcohol), nullInt(c.WeekRating), nullString(c.Events),
		nullBool(c.Therapy), c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save weekly check-in: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("weekly check-in id: %w", err)
	}
	return nil
}

func (r *checkinRepo) RecentDaily(ctx context.Context, userID int64, limit int) ([]DailyCheckin, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, stress_level, sleep_hours, heart_rate,
			breathing_rate, caffeine_intake, alcohol_intake, anxiety_level,
			mood_rating, energy_level, sweating_level, dizziness, notes,
			is_extended, created_at
		FROM daily_checkins WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent daily check-ins: %w", err)
	}
	defer rows.Close()

	var out []DailyCheckin
	for rows.Next() {
		var (
			c                                  DailyCheckin
			stress, hr, br, caffeine, alcohol  sql.NullInt64
			anxiety, mood, energy, sweat, dizz sql.NullInt64
			sleep                              sql.NullFloat64
			notes                              sql.NullString
			extended                           int
			createdAt                          string
		)
		if err := rows.Scan(&c.ID, &c.UserID, &stress, &sleep, &hr, &br,
			&caffeine, &alcohol, &anxiety, &mood, &energy, &sweat, &dizz,
			&notes, &extended, &createdAt); err != nil {
			return nil, fmt.Errorf("scan daily check-in: %w", err)
		}
		c.Stress = scanInt(stress)
		c.SleepHours = scanFloat(sleep)
		c.HeartRate = scanInt(hr)
		c.Breathing = scanInt(br)
		c.CaffeineCups = scanInt(caffeine)
		c.Alcohol = scanInt(alcohol)
		c.Anxiety = scanInt(anxiety)
		c.Mood = scanInt(mood)
		c.Energy = scanInt(energy)
		c.Sweating = scanInt(sweat)
		c.Dizziness = scanBool(dizz)
		c.Notes = scanString(notes)
		c.IsExtended = extended != 0
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *checkinRepo) DeleteAll(ctx context.Context, userID int64) error {
	for _, q := range []string{
		`DELETE FROM predictions WHERE user_id = ?`,
		`DELETE FROM daily_checkins WHERE user_id = ?`,
		`DELETE FROM weekly_checkins WHERE user_id = ?`,
	} {
		if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
			return fmt.Errorf("delete check-ins: %w", err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
