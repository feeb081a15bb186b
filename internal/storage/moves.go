package storage

import (
	"database/sql"
	"fmt"
)

// MoveRecord is one interactive move of a saved session.
type MoveRecord struct {
	SessionMoveID int64
	SessionID     string
	MoveIndex     int
	MoveID        int
	Notation      *string
}

// MoveRepository stores the interactive move log of sessions.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Replace swaps the logged moves of a session for moves in a single
// transaction. notations may be nil or parallel to moves.
func (r *MoveRepository) Replace(sessionID string, moves []int, notations []string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM session_moves WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("failed to clear moves: %w", err)
		}
		for i, id := range moves {
			var notation *string
			if i < len(notations) {
				notation = &notations[i]
			}
			_, err := tx.Exec(`
				INSERT INTO session_moves (session_id, move_index, move_id, notation)
				VALUES (?, ?, ?, ?)
			`, sessionID, i, id, notation)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves the logged moves of a session in play order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT session_move_id, session_id, move_index, move_id, notation
		FROM session_moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.SessionMoveID, &m.SessionID, &m.MoveIndex, &m.MoveID, &m.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of logged moves of a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM session_moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}
