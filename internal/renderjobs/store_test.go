package renderjobs_test

import (
	"context"
	"errors"
	"testing"

	"montage/internal/renderjobs"
	"montage/internal/testsupport"
)

func TestJobLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "/tmp/timeline.toml", 30, 300)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if job.Status != renderjobs.StatusPending {
		t.Fatalf("new job status: %s", job.Status)
	}
	if job.TotalFrames != 300 || job.FrameRate != 30 {
		t.Fatalf("job fields: %+v", job)
	}

	job, err = store.Transition(ctx, job.ID, renderjobs.StatusCompositing)
	if err != nil {
		t.Fatalf("to compositing: %v", err)
	}

	if err := store.UpdateProgress(ctx, job.ID, 150, 50, "frame 150/300"); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	job, err = store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if job.FramesDone != 150 || job.ProgressPercent != 50 {
		t.Fatalf("progress not recorded: %+v", job)
	}

	if _, err := store.Transition(ctx, job.ID, renderjobs.StatusEncoding); err != nil {
		t.Fatalf("to encoding: %v", err)
	}
	job, err = store.MarkCompleted(ctx, job.ID, "/tmp/out.webm")
	if err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if job.Status != renderjobs.StatusCompleted || job.OutputPath != "/tmp/out.webm" {
		t.Fatalf("completed job: %+v", job)
	}
	if job.ProgressPercent != 100 {
		t.Fatalf("completion should pin progress at 100: %v", job.ProgressPercent)
	}
}

func TestInvalidTransitionRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "m.toml", 30, 10)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	if _, err := store.Transition(ctx, job.ID, renderjobs.StatusCompleted); !errors.Is(err, renderjobs.ErrInvalidTransition) {
		t.Fatalf("pending -> completed should be rejected, got %v", err)
	}
}

func TestMarkFailedIsSticky(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	job, _ := store.NewJob(ctx, "m.toml", 30, 10)
	job, err := store.MarkFailed(ctx, job.ID, "encoder exited")
	if err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if job.Status != renderjobs.StatusFailed || job.ErrorMessage != "encoder exited" {
		t.Fatalf("failed job: %+v", job)
	}

	// Failing a terminal job keeps the original message.
	job, err = store.MarkFailed(ctx, job.ID, "other")
	if err != nil {
		t.Fatalf("MarkFailed twice: %v", err)
	}
	if job.ErrorMessage != "encoder exited" {
		t.Fatalf("terminal job mutated: %+v", job)
	}
}

func TestListAndClearFinished(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a, _ := store.NewJob(ctx, "a.toml", 30, 10)
	b, _ := store.NewJob(ctx, "b.toml", 30, 10)
	if _, err := store.MarkFailed(ctx, a.ID, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	jobs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != b.ID {
		t.Fatalf("list order: %+v", jobs)
	}

	removed, err := store.ClearFinished(ctx)
	if err != nil {
		t.Fatalf("ClearFinished: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed: %d", removed)
	}

	if _, err := store.GetByID(ctx, a.ID); !errors.Is(err, renderjobs.ErrNotFound) {
		t.Fatalf("cleared job should be gone, got %v", err)
	}
}
