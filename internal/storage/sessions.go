package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is a saved puzzle in the database. HistoryJSON is the serialized
// move log and Fingerprint the hex digest of the state it replays to.
type Session struct {
	SessionID   string
	Name        *string
	Puzzle      string
	Size        int
	HistoryJSON string
	Fingerprint string
	MoveCount   int
	Solved      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `session_id, name, puzzle, size, history_json, fingerprint, move_count, solved, created_at, updated_at`

// Create inserts s with a fresh ID and timestamps, which are written back
// to s. It returns the new ID.
func (r *SessionRepository) Create(s *Session) (string, error) {
	now := time.Now().UTC()
	s.SessionID = uuid.New().String()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.SessionID, s.Name, s.Puzzle, s.Size, s.HistoryJSON, s.Fingerprint,
		s.MoveCount, boolToInt(s.Solved), formatTime(s.CreatedAt), formatTime(s.UpdatedAt))

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return s.SessionID, nil
}

// Update overwrites the history of an existing session.
func (r *SessionRepository) Update(s *Session) error {
	s.UpdatedAt = time.Now().UTC()

	result, err := r.db.Exec(`
		UPDATE sessions
		SET name = ?, history_json = ?, fingerprint = ?, move_count = ?, solved = ?, updated_at = ?
		WHERE session_id = ?
	`, s.Name, s.HistoryJSON, s.Fingerprint, s.MoveCount, boolToInt(s.Solved), formatTime(s.UpdatedAt), s.SessionID)

	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", s.SessionID)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var s Session
	var solved int
	var createdAt, updatedAt string

	err := row.Scan(
		&s.SessionID, &s.Name, &s.Puzzle, &s.Size,
		&s.HistoryJSON, &s.Fingerprint, &s.MoveCount, &solved,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Solved = solved == 1
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.SessionID, err)
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.SessionID, err)
	}
	return &s, nil
}

// Get retrieves a session by ID. It returns nil if there is none.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE session_id = ?
	`, sessionID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return s, nil
}

// GetLast retrieves the most recently saved session.
func (r *SessionRepository) GetLast() (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`
		SELECT ` + sessionColumns + `
		FROM sessions
		ORDER BY updated_at DESC, rowid DESC
		LIMIT 1
	`))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}

	return s, nil
}

// List retrieves recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY updated_at DESC, rowid DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

// Delete deletes a session and its move log (cascading).
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
