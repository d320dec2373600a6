package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Feedback is one user reaction to a prediction.
type Feedback struct {
	ID           int64
	UserID       int64
	PredictionID *int64
	Reaction     string
	Comment      string
	CreatedAt    time.Time
}

// FeedbackRepo stores prediction feedback.
type FeedbackRepo interface {
	// Save inserts a feedback row and sets its ID.
	Save(ctx context.Context, f *Feedback) error

	// CountByReaction returns reaction -> count over all users.
	CountByReaction(ctx context.Context) (map[string]int, error)
}

// FeedbackRepo returns a FeedbackRepo backed by this store.
func (s *Store) FeedbackRepo() FeedbackRepo {
	return &feedbackRepo{db: s.db}
}

type feedbackRepo struct {
	db *sql.DB
}

func (r *feedbackRepo) Save(ctx context.Context, f *Feedback) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (user_id, prediction_id, reaction, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.UserID, nullInt64(f.PredictionID), f.Reaction, nullString(f.Comment),
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	f.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("feedback id: %w", err)
	}
	return nil
}

func (r *feedbackRepo) CountByReaction(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT reaction, COUNT(*) FROM feedback GROUP BY reaction`)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			reaction string
			n        int
		)
		if err := rows.Scan(&reaction, &n); err != nil {
			return nil, fmt.Errorf("scan feedback count: %w", err)
		}
		out[reaction] = n
	}
	return out, rows.Err()
}
