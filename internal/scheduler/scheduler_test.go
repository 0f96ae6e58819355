package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePlans struct {
	repository.TrainingPlanRepository
	active    []domain.TrainingPlan
	progress  map[primitive.ObjectID]int
	completed []primitive.ObjectID
	failOn    primitive.ObjectID
}

func (f *fakePlans) ListActive(context.Context) ([]domain.TrainingPlan, error) {
	return f.active, nil
}

func (f *fakePlans) UpdateProgress(_ context.Context, id primitive.ObjectID, week int) error {
	if id == f.failOn {
		return repository.ErrUpdateFailed
	}
	f.progress[id] = week
	return nil
}

func (f *fakePlans) SetStatus(_ context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	if id == f.failOn {
		return repository.ErrUpdateFailed
	}
	if status == domain.PlanCompleted {
		f.completed = append(f.completed, id)
	}
	return nil
}

func plan(start time.Time, weeks, current int) domain.TrainingPlan {
	return domain.TrainingPlan{
		ID:          primitive.NewObjectID(),
		UserID:      primitive.NewObjectID(),
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7*weeks),
		TotalWeeks:  weeks,
		Status:      domain.PlanActive,
		CurrentWeek: current,
	}
}

func TestProgressJobRun(t *testing.T) {
	now := time.Date(2026, 3, 4, 0, 5, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	behind := plan(start, 12, 3)                  // now in week 9
	current := plan(start, 12, 9)                 // already up to date
	finished := plan(start, 8, 8)                 // ended 2026-03-02
	broken := plan(start.AddDate(0, 0, 7), 12, 1) // now in week 8, update fails

	repo := &fakePlans{
		active:   []domain.TrainingPlan{behind, current, finished, broken},
		progress: map[primitive.ObjectID]int{},
		failOn:   broken.ID,
	}
	job := NewProgressJob(repo, func() time.Time { return now }, slog.New(slog.NewTextHandler(io.Discard, nil)))

	stats, err := job.Run(context.Background())
	if !errors.Is(err, repository.ErrUpdateFailed) {
		t.Fatalf("Run() error = %v, want the failed update", err)
	}
	want := ProgressStats{Checked: 4, Advanced: 1, Completed: 1, Failed: 1}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[primitive.ObjectID]int{behind.ID: 9}, repo.progress); diff != "" {
		t.Errorf("progress updates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]primitive.ObjectID{finished.ID}, repo.completed); diff != "" {
		t.Errorf("completed plans mismatch (-want +got):\n%s", diff)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	job := NewProgressJob(&fakePlans{}, nil, nil)
	if _, err := Start("not a cron spec", job, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("Start() error = nil, want a parse error")
	}
}
