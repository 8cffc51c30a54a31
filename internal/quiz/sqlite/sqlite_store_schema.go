package sqlite

import (
	"context"
	"database/sql"
)

func initSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			-- one row per completed session; INSERT OR IGNORE relies on this.
			session_id TEXT NOT NULL UNIQUE,
			player_name TEXT NOT NULL,
			-- fixed-width UTC timestamp so lexical order is chronological.
			date TEXT NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_player_name ON attempts(player_name);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_date ON attempts(date);`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
