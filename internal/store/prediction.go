package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Prediction is one stored prediction row, linked to the check-in that
// produced it.
type Prediction struct {
	ID              int64
	UserID          int64
	SeverityLevel   int
	ClassName       string
	Confidence      float64
	Advice          string
	Category        string
	PipelineVersion string
	DailyID         *int64
	WeeklyID        *int64
	CreatedAt       time.Time
}

// PredictionRepo persists and lists prediction results.
type PredictionRepo interface {
	// Save inserts a prediction and sets its ID.
	Save(ctx context.Context, p *Prediction) error

	// Recent returns the user's newest predictions, newest first.
	Recent(ctx context.Context, userID int64, limit int) ([]Prediction, error)

	// Since returns the user's predictions created at or after t,
	// oldest first.
	Since(ctx context.Context, userID int64, t time.Time) ([]Prediction, error)
}

// PredictionRepo returns a PredictionRepo backed by this store.
func (s *Store) PredictionRepo() PredictionRepo {
	return &predictionRepo{db: s.db}
}

type predictionRepo struct {
	db *sql.DB
}

func (r *predictionRepo) Save(ctx context.Context, p *Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions (
			user_id, severity_level, class_name, confidence, advice,
			category, pipeline_version, daily_id, weekly_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.SeverityLevel, p.ClassName, p.Confidence, p.Advice,
		p.Category, p.PipelineVersion, nullInt64(p.DailyID), nullInt64(p.WeeklyID),
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("prediction id: %w", err)
	}
	return nil
}

func (r *predictionRepo) Recent(ctx context.Context, userID int64, limit int) ([]Prediction, error) {
	if limit <= 0 {
		limit = 30
	}
	return r.query(ctx, `
		SELECT id, user_id, severity_level, class_name, confidence, advice,
			category, pipeline_version, daily_id, weekly_id, created_at
		FROM predictions WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
}

func (r *predictionRepo) Since(ctx context.Context, userID int64, t time.Time) ([]Prediction, error) {
	return r.query(ctx, `
		SELECT id, user_id, severity_level, class_name, confidence, advice,
			category, pipeline_version, daily_id, weekly_id, created_at
		FROM predictions WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at ASC`, userID, t.UTC().Format(time.RFC3339))
}

func (r *predictionRepo) query(ctx context.Context, q string, args ...any) ([]Prediction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	var out []Prediction
	for rows.Next() {
		var (
			p                Prediction
			dailyID, weeklyID sql.NullInt64
			createdAt        string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.SeverityLevel, &p.ClassName,
			&p.Confidence, &p.Advice, &p.Category, &p.PipelineVersion,
			&dailyID, &weeklyID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		if dailyID.Valid {
			v := dailyID.Int64
			p.DailyID = &v
		}
		if weeklyID.Valid {
			v := weeklyID.Int64
			p.WeeklyID = &v
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
