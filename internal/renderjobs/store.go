package renderjobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"montage/internal/config"
)

// Store manages render job persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const jobColumns = `id, manifest_path, output_path, status, frame_rate, total_frames,
	frames_done, progress_percent, progress_message, error_message, created_at, updated_at`

// Open initializes or connects to the render job database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "render_jobs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// NewJob inserts a pending job for a manifest and returns it.
func (s *Store) NewJob(ctx context.Context, manifestPath string, frameRate, totalFrames int) (*Job, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO render_jobs (manifest_path, status, frame_rate, total_frames, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		manifestPath, StatusPending, frameRate, totalFrames, timestamp, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a job by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM render_jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// List returns all jobs, newest first.
func (s *Store) List(ctx context.Context) ([]*Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM render_jobs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Transition moves a job between lifecycle states, enforcing the allowed
// transitions.
func (s *Store) Transition(ctx context.Context, id int64, to Status) (*Job, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(job.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, to)
	}
	if err := s.update(ctx, id, `status = ?`, string(to)); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// UpdateProgress records frame progress for a running job.
func (s *Store) UpdateProgress(ctx context.Context, id int64, framesDone int, percent float64, message string) error {
	return s.update(ctx, id,
		`frames_done = ?, progress_percent = ?, progress_message = ?`,
		framesDone, percent, message,
	)
}

// MarkCompleted finalizes a job with its output location.
func (s *Store) MarkCompleted(ctx context.Context, id int64, outputPath string) (*Job, error) {
	if err := s.update(ctx, id,
		`status = ?, output_path = ?, progress_percent = 100, progress_message = ''`,
		string(StatusCompleted), outputPath,
	); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// MarkFailed moves a job to failed from any non-terminal state.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) (*Job, error) {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status.Terminal() {
		return job, nil
	}
	if err := s.update(ctx, id, `status = ?, error_message = ?`, string(StatusFailed), message); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ClearFinished deletes completed and failed jobs and returns the number
// removed.
func (s *Store) ClearFinished(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM render_jobs WHERE status IN (?, ?)`,
		StatusCompleted, StatusFailed,
	)
	if err != nil {
		return 0, fmt.Errorf("clear finished jobs: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) update(ctx context.Context, id int64, setClause string, args ...any) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	args = append(args, timestamp, id)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE render_jobs SET `+setClause+`, updated_at = ? WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var job Job
	var status, createdAt, updatedAt string
	if err := row.Scan(
		&job.ID, &job.ManifestPath, &job.OutputPath, &status, &job.FrameRate,
		&job.TotalFrames, &job.FramesDone, &job.ProgressPercent,
		&job.ProgressMessage, &job.ErrorMessage, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	job.Status = Status(status)
	job.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	job.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &job, nil
}
