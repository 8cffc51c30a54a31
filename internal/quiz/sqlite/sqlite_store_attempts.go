package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz-history/internal/quiz"
)

const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Append stores a completed attempt and returns its assigned id.
//
// Invariants:
//   - ids come from AUTOINCREMENT and are never reused.
//   - session_id is unique, so a session can never be recorded twice; the
//     original row is kept and ErrDuplicateAttempt returned.
func (s *SQLiteStore) Append(ctx context.Context, attempt quiz.Attempt) (int64, error) {
	attempt.PlayerName = quiz.NormalizePlayerName(attempt.PlayerName)
	if err := attempt.Validate(); err != nil {
		return 0, err
	}

	db, err := s.EnsureOpen(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO attempts (session_id, player_name, date, score, total_questions)
		 VALUES (?, ?, ?, ?, ?)`,
		attempt.SessionID,
		attempt.PlayerName,
		attempt.Date.UTC().Format(dateLayout),
		attempt.Score,
		attempt.TotalQuestions,
	)
	if err != nil {
		return 0, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if inserted == 0 {
		return 0, fmt.Errorf("%w: %s", quiz.ErrDuplicateAttempt, attempt.SessionID)
	}

	return result.LastInsertId()
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]quiz.Attempt, error) {
	db, err := s.EnsureOpen(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(
		ctx,
		`SELECT id, session_id, player_name, date, score, total_questions FROM attempts`,
	)
	if err != nil {
		return nil, err
	}
	return scanAttempts(rows)
}

// ListByPlayer returns one player's attempts through the player_name index.
func (s *SQLiteStore) ListByPlayer(ctx context.Context, playerName string) ([]quiz.Attempt, error) {
	db, err := s.EnsureOpen(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(
		ctx,
		`SELECT id, session_id, player_name, date, score, total_questions
		 FROM attempts
		 WHERE player_name = ?`,
		quiz.NormalizePlayerName(playerName),
	)
	if err != nil {
		return nil, err
	}
	return scanAttempts(rows)
}

func scanAttempts(rows *sql.Rows) ([]quiz.Attempt, error) {
	defer rows.Close()

	attempts := make([]quiz.Attempt, 0)
	for rows.Next() {
		var (
			attempt quiz.Attempt
			date    string
		)
		if err := rows.Scan(
			&attempt.ID,
			&attempt.SessionID,
			&attempt.PlayerName,
			&date,
			&attempt.Score,
			&attempt.TotalQuestions,
		); err != nil {
			return nil, err
		}

		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("attempt %d has malformed date %q: %w", attempt.ID, date, err)
		}
		attempt.Date = parsed.UTC()
		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}
