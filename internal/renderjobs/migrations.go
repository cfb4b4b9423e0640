package renderjobs

import (
	"context"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version tracks the last
// applied index.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS render_jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		manifest_path TEXT NOT NULL DEFAULT '',
		output_path TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		frame_rate INTEGER NOT NULL DEFAULT 30,
		total_frames INTEGER NOT NULL DEFAULT 0,
		frames_done INTEGER NOT NULL DEFAULT 0,
		progress_percent REAL NOT NULL DEFAULT 0,
		progress_message TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_render_jobs_status ON render_jobs (status)`,
}

func (s *Store) applyMigrations(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("bump schema version: %w", err)
		}
	}
	return nil
}
