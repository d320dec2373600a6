package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Profile is the stored onboarding record plus the settings-editable
// baseline fields. Nil pointers and empty strings mean "not set".
type Profile struct {
	UserID        int64
	Age           *int
	Gender        string
	Occupation    string
	FamilyStatus  string
	SleepHours    *float64
	Activity      string
	DietRating    string
	AlcoholDrinks *int
	CaffeineCups  *int
	Smoking       string
	BaselineStress *int
	FamilyHistory *bool
	Therapy       string
	LifeEvents    string

	MedicationUse     *bool
	BaselineHeartRate *int
	BaselineBreathing *int
	SweatingLevel     *int
	DizzinessFreq     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepo manages stored user profiles.
type ProfileRepo interface {
	// Save inserts or fully replaces the user's profile.
	Save(ctx context.Context, p *Profile) error

	// Get returns the user's profile, or nil when none exists.
	Get(ctx context.Context, userID int64) (*Profile, error)

	// Delete removes the user's profile. Missing rows are not an error.
	Delete(ctx context.Context, userID int64) error
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{db: s.db}
}

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Save(ctx context.Context, p *Profile) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, age, gender, occupation, family_status, sleep_hours,
			physical_activity, diet_quality, alcohol_intake, caffeine_intake,
			smoking_habits, baseline_stress, family_anxiety_history,
			therapy_frequency, recent_life_events, medication_use,
			baseline_heart_rate, baseline_breathing_rate, sweating_level,
			dizziness_frequency, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			age = excluded.age,
			gender = excluded.gender,
			occupation = excluded.occupation,
			family_status = excluded.family_status,
			sleep_hours = excluded.sleep_hours,
			physical_activity = excluded.physical_activity,
			diet_quality = excluded.diet_quality,
			alcohol_intake = excluded.alcohol_intake,
			caffeine_intake = excluded.caffeine_intake,
			smoking_habits = excluded.smoking_habits,
			baseline_stress = excluded.baseline_stress,
			family_anxiety_history = excluded.family_anxiety_history,
			therapy_frequency = excluded.therapy_frequency,
			recent_life_events = excluded.recent_life_events,
			medication_use = excluded.medication_use,
			baseline_heart_rate = excluded.baseline_heart_rate,
			baseline_breathing_rate = excluded.baseline_breathing_rate,
			sweating_level = excluded.sweating_level,
			dizziness_frequency = excluded.dizziness_frequency,
			updated_at = excluded.updated_at`,
		p.UserID, nullInt(p.Age), nullString(p.Gender), nullString(p.Occupation),
		nullString(p.FamilyStatus), nullFloat(p.SleepHours), nullString(p.Activity),
		nullString(p.DietRating), nullInt(p.AlcoholDrinks), nullInt(p.CaffeineCups),
		nullString(p.Smoking), nullInt(p.BaselineStress), nullBool(p.FamilyHistory),
		nullString(p.Therapy), nullString(p.LifeEvents), nullBool(p.MedicationUse),
		nullInt(p.BaselineHeartRate), nullInt(p.BaselineBreathing),
		nullInt(p.SweatingLevel), nullString(p.DizzinessFreq), now, now,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Get(ctx context.Context, userID int64) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, age, gender, occupation, family_status, sleep_hours,
			physical_activity, diet_quality, alcohol_intake, caffeine_intake,
			smoking_habits, baseline_stress, family_anxiety_history,
			therapy_frequency, recent_life_events, medication_use,
			baseline_heart_rate, baseline_breathing_rate, sweating_level,
			dizziness_frequency, created_at, updated_at
		FROM profiles WHERE user_id = ?`, userID)

	var (
		p                                      Profile
		age, alcohol, caffeine, stress         sql.NullInt64
		famHist, medication                    sql.NullInt64
		hr, br, sweat                          sql.NullInt64
		sleep                                  sql.NullFloat64
		gender, occupation, family, activity   sql.NullString
		diet, smoking, therapy, events, dizzy  sql.NullString
		createdAt, updatedAt                   string
	)
	err := row.Scan(&p.UserID, &age, &gender, &occupation, &family, &sleep,
		&activity, &diet, &alcohol, &caffeine, &smoking, &stress, &famHist,
		&therapy, &events, &medication, &hr, &br, &sweat, &dizzy,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.Age = scanInt(age)
	p.Gender = scanString(gender)
	p.Occupation = scanString(occupation)
	p.FamilyStatus = scanString(family)
	p.SleepHours = scanFloat(sleep)
	p.Activity = scanString(activity)
	p.DietRating = scanString(diet)
	p.AlcoholDrinks = scanInt(alcohol)
	p.CaffeineCups = scanInt(caffeine)
	p.Smoking = scanString(smoking)
	p.BaselineStress = scanInt(stress)
	p.FamilyHistory = scanBool(famHist)
	p.Therapy = scanString(therapy)
	p.LifeEvents = scanString(events)
	p.MedicationUse = scanBool(medication)
	p.BaselineHeartRate = scanInt(hr)
	p.BaselineBreathing = scanInt(br)
	p.SweatingLevel = scanInt(sweat)
	p.DizzinessFreq = scanString(dizzy)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

func (r *profileRepo) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
