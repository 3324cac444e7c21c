package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAddIntervalJobValidation(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })

	if _, err := svc.AddIntervalJob("", time.Second, func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("empty name error = %v, want %v", err, ErrEmptyJobName)
	}
	if _, err := svc.AddIntervalJob("tick", 0, func() {}); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("zero interval error = %v, want %v", err, ErrInvalidInterval)
	}
	if _, err := svc.AddJob("cron", " ", func() {}); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("empty cron error = %v, want %v", err, ErrEmptyCronExpr)
	}

	var nilService *Service
	if _, err := nilService.AddIntervalJob("tick", time.Second, func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("nil service error = %v, want %v", err, ErrNotInitialized)
	}
}

func TestIntervalJobRunsAndRemoves(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })
	svc.Start()

	var runs atomic.Int32
	job, err := svc.AddIntervalJob("tick", 20*time.Millisecond, func() {
		runs.Add(1)
	})
	if err != nil {
		t.Fatalf("AddIntervalJob() error = %v", err)
	}
	if svc.JobCount() != 1 {
		t.Fatalf("JobCount() = %d, want 1", svc.JobCount())
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatalf("expected interval job to run")
	}

	if err := svc.RemoveJob(job.ID()); err != nil {
		t.Fatalf("RemoveJob() error = %v", err)
	}
	if svc.JobCount() != 0 {
		t.Fatalf("JobCount() after remove = %d, want 0", svc.JobCount())
	}
	if err := svc.RemoveJob(uuid.New()); err != nil {
		t.Fatalf("RemoveJob() unknown id error = %v", err)
	}
}

func TestAddCronJob(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })

	if _, err := svc.AddJob("nightly", "not a cron", func() {}); err == nil {
		t.Fatalf("expected invalid cron expression to fail")
	}
	job, err := svc.AddJob("nightly", "0 3 * * *", func() {})
	if err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if job.Name() != "nightly" {
		t.Fatalf("job name = %q, want nightly", job.Name())
	}
	if svc.JobCount() != 1 {
		t.Fatalf("JobCount() = %d, want 1", svc.JobCount())
	}
}
