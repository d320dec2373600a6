package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types recorded in the append-only history.
const (
	EventOnboarding  = "onboarding_complete"
	EventProfileEdit = "profile_edit"
	EventDailyCheck  = "daily_check"
	EventWeeklyCheck = "weekly_check"
	EventReset       = "data_reset"
	EventLLMRequest  = "llm_request"
)

// Event is one append-only history entry with a free-form JSON payload.
type Event struct {
	ID        int64
	EventID   string
	UserID    int64
	Type      string
	Payload   map[string]any
	CreatedAt time.Time
}

// EventRepo appends and lists history events.
type EventRepo interface {
	// Append records an event. The payload may be nil.
	Append(ctx context.Context, userID int64, eventType string, payload map[string]any) error

	// Recent returns the user's newest events, newest first.
	Recent(ctx context.Context, userID int64, limit int) ([]Event, error)

	// RecentByType returns the user's newest events of one type,
	// newest first.
	RecentByType(ctx context.Context, userID int64, eventType string, limit int) ([]Event, error)
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) Append(ctx context.Context, userID int64, eventType string, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (event_id, user_id, event_type, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, eventType, string(raw),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (r *eventRepo) Recent(ctx context.Context, userID int64, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, user_id, event_type, payload, created_at
		FROM events WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var (
			e         Event
			raw       string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.UserID, &e.Type, &raw, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &e.Payload); err != nil {
			e.Payload = map[string]any{}
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) RecentByType(ctx context.Context, userID int64, eventType string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, user_id, event_type, payload, created_at
		FROM events WHERE user_id = ? AND event_type = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, eventType, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events by type: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}
