package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/screener/pkg/models"
)

// ErrSessionNotFound is returned for operations on an unknown session
var ErrSessionNotFound = errors.New("session not found")

// Session operations

// CreateSession starts a new session with a random id
func CreateSession(ctx context.Context, db *sql.DB, name string) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	query := `INSERT INTO sessions (id, name, created_at) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, session.ID, session.Name, session.CreatedAt); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns a session and its record count
func GetSession(ctx context.Context, db *sql.DB, id string) (*models.Session, error) {
	query := `SELECT s.id, s.name, s.created_at, COUNT(sc.id)
			  FROM sessions s LEFT JOIN screenings sc ON sc.session_id = s.id
			  WHERE s.id = ? GROUP BY s.id`
	session := &models.Session{}
	err := db.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.Name, &session.CreatedAt, &session.Records)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, err
}

// ListSessions returns every session, oldest first
func ListSessions(ctx context.Context, db *sql.DB) ([]*models.Session, error) {
	query := `SELECT s.id, s.name, s.created_at, COUNT(sc.id)
			  FROM sessions s LEFT JOIN screenings sc ON sc.session_id = s.id
			  GROUP BY s.id ORDER BY s.created_at, s.id`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.Name, &session.CreatedAt, &session.Records); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession ends a session; its history is removed with it.
// The default session cannot be deleted, only cleared.
func DeleteSession(ctx context.Context, db *sql.DB, id string) error {
	if id == DefaultSessionID {
		return NewHistoryRepository(db, id).Clear(ctx)
	}
	result, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Screening operations

// HistoryRepository is the SQLite-backed history of one session
type HistoryRepository struct {
	db        *sql.DB
	sessionID string
}

// NewHistoryRepository binds a repository to a session
func NewHistoryRepository(db *sql.DB, sessionID string) *HistoryRepository {
	return &HistoryRepository{db: db, sessionID: sessionID}
}

// SessionID reports the session the repository writes to
func (r *HistoryRepository) SessionID() string {
	return r.sessionID
}

func (r *HistoryRepository) Append(ctx context.Context, rec models.ScreeningRecord) error {
	skills := rec.Input.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	source := rec.Source
	if source == "" {
		source = models.SourceManual
	}

	query := `INSERT INTO screenings (session_id, name, skills, experience_years, qualification,
			  score, verdict, source, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, r.sessionID, rec.Input.Name, string(skillsJSON),
		rec.Input.ExperienceYears, string(rec.Input.Qualification), rec.Result.Score,
		string(rec.Result.Verdict), string(source), createdAt)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, r.sessionID)
	}
	return err
}

// List returns the session's records in insertion order
func (r *HistoryRepository) List(ctx context.Context) ([]models.ScreeningRecord, error) {
	query := `SELECT name, skills, experience_years, qualification, score, verdict, source, created_at
			  FROM screenings WHERE session_id=? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, r.sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ScreeningRecord{}
	for rows.Next() {
		var (
			rec                            models.ScreeningRecord
			skillsJSON, qual, verdict, src string
		)
		err := rows.Scan(&rec.Input.Name, &skillsJSON, &rec.Input.ExperienceYears, &qual,
			&rec.Result.Score, &verdict, &src, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(skillsJSON), &rec.Input.Skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
		rec.Input.Qualification = models.Qualification(qual)
		rec.Result.Verdict = models.Verdict(verdict)
		rec.Source = models.Source(src)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes the session's records but keeps the session
func (r *HistoryRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM screenings WHERE session_id=?`, r.sessionID)
	return err
}
