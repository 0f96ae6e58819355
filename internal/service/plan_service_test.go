package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/export"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGeneratePlan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID, plan := env.withPlan(ctx)

	if plan.TotalWeeks != 12 || plan.SessionsPerWeek != 3 {
		t.Fatalf("plan = %d weeks x %d sessions, want 12 x 3", plan.TotalWeeks, plan.SessionsPerWeek)
	}
	if plan.UserID != userID {
		t.Errorf("plan user = %s, want %s", plan.UserID.Hex(), userID.Hex())
	}

	stored, err := env.planSvc.GetActivePlan(ctx, userID)
	if err != nil {
		t.Fatalf("GetActivePlan() error = %v", err)
	}
	if stored.ID != plan.ID || stored.Version != 1 {
		t.Errorf("stored plan = %s v%d, want %s v1", stored.ID.Hex(), stored.Version, plan.ID.Hex())
	}
	for _, w := range stored.Workouts() {
		if len(w.Exercises) == 0 {
			t.Errorf("workout %q on %s has no exercises", w.Name, w.ScheduledDate.Format("2006-01-02"))
		}
	}
}

func TestGeneratePlanAbandonsActivePlan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID, first := env.withPlan(ctx)

	gen, err := env.planSvc.GeneratePlan(ctx, userID)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	active := env.plans.byStatus(userID, domain.PlanActive)
	if len(active) != 1 || active[0].ID != gen.Plan.ID {
		t.Fatalf("active plans = %d, want only the new plan", len(active))
	}
	abandoned := env.plans.byStatus(userID, domain.PlanAbandoned)
	if len(abandoned) != 1 || abandoned[0].ID != first.ID {
		t.Errorf("abandoned plans = %d, want the first plan", len(abandoned))
	}
}

func TestGeneratePlanKeepsActivePlanWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID, first := env.withPlan(ctx)
	env.plans.createErr = errors.New("insert failed")

	if _, err := env.planSvc.GeneratePlan(ctx, userID); err == nil {
		t.Fatal("GeneratePlan() error = nil, want store failure")
	}

	active := env.plans.byStatus(userID, domain.PlanActive)
	if len(active) != 1 || active[0].ID != first.ID {
		t.Fatalf("active plans = %d, want the previous plan restored", len(active))
	}
	if n := len(env.plans.byStatus(userID, domain.PlanAbandoned)); n != 0 {
		t.Errorf("abandoned plans = %d, want 0", n)
	}
	got, err := env.planSvc.GetActivePlan(ctx, userID)
	if err != nil || got.ID != first.ID {
		t.Errorf("GetActivePlan() = %v, %v; want the previous plan", got, err)
	}
}

func TestGeneratePlanErrors(t *testing.T) {
	ctx := context.Background()
	catalogErr := errors.New("catalog offline")

	tests := []struct {
		name    string
		setup   func(env *testEnv, userID primitive.ObjectID)
		wantErr error
	}{
		{
			name:    "no profile",
			setup:   func(*testEnv, primitive.ObjectID) {},
			wantErr: ErrProfileNotFound,
		},
		{
			name: "profile without goals",
			setup: func(env *testEnv, userID primitive.ObjectID) {
				p := raceProfile(userID)
				p.Goals = nil
				_ = env.profiles.Upsert(ctx, p)
			},
			wantErr: ErrValidation,
		},
		{
			name: "catalog failure",
			setup: func(env *testEnv, userID primitive.ObjectID) {
				_ = env.profiles.Upsert(ctx, raceProfile(userID))
				env.exercises.err = catalogErr
			},
			wantErr: catalogErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			userID := primitive.NewObjectID()
			tt.setup(env, userID)

			_, err := env.planSvc.GeneratePlan(ctx, userID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GeneratePlan() error = %v, want %v", err, tt.wantErr)
			}
			if n := len(env.plans.byStatus(userID, domain.PlanActive)); n != 0 {
				t.Errorf("active plans = %d, want 0", n)
			}
		})
	}
}

func TestUpdateWorkoutStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID, plan := env.withPlan(ctx)
	workoutID := plan.Workouts()[0].ID

	w, err := env.planSvc.UpdateWorkoutStatus(ctx, userID, workoutID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateWorkoutStatus() error = %v", err)
	}
	if w.Status != domain.StatusCompleted || w.CompletedAt == nil || !w.CompletedAt.Equal(serviceNow) {
		t.Errorf("workout = %s completed at %v", w.Status, w.CompletedAt)
	}

	stored, _ := env.planSvc.GetActivePlan(ctx, userID)
	if got := stored.FindWorkout(workoutID); got.Status != domain.StatusCompleted {
		t.Errorf("stored status = %s, want completed", got.Status)
	}
	if stored.Version != 2 {
		t.Errorf("version = %d, want 2", stored.Version)
	}

	w, err = env.planSvc.UpdateWorkoutStatus(ctx, userID, workoutID, domain.StatusNotStarted)
	if err != nil {
		t.Fatalf("UpdateWorkoutStatus(not_started) error = %v", err)
	}
	if w.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil after reset", w.CompletedAt)
	}
}

func TestUpdateWorkoutStatusErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		workoutID func(plan *domain.TrainingPlan) primitive.ObjectID
		status    domain.CompletionStatus
		updateErr error
		wantErr   error
	}{
		{
			name:      "unknown status",
			workoutID: func(p *domain.TrainingPlan) primitive.ObjectID { return p.Workouts()[0].ID },
			status:    "done",
			wantErr:   ErrValidation,
		},
		{
			name:      "unknown workout",
			workoutID: func(*domain.TrainingPlan) primitive.ObjectID { return primitive.NewObjectID() },
			status:    domain.StatusSkipped,
			wantErr:   ErrWorkoutNotFound,
		},
		{
			name:      "concurrent write",
			workoutID: func(p *domain.TrainingPlan) primitive.ObjectID { return p.Workouts()[0].ID },
			status:    domain.StatusSkipped,
			updateErr: repository.ErrVersionConflict,
			wantErr:   ErrPlanConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			userID, plan := env.withPlan(ctx)
			env.plans.updateErr = tt.updateErr

			_, err := env.planSvc.UpdateWorkoutStatus(ctx, userID, tt.workoutID(plan), tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateWorkoutStatus() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("no active plan", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.planSvc.UpdateWorkoutStatus(ctx, primitive.NewObjectID(), primitive.NewObjectID(), domain.StatusCompleted)
		if !errors.Is(err, ErrActivePlanNotFound) {
			t.Fatalf("error = %v, want ErrActivePlanNotFound", err)
		}
	})
}

func TestExportPlan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID, _ := env.withPlan(ctx)

	out, err := env.planSvc.ExportPlan(ctx, userID, export.FormatICS)
	if err != nil {
		t.Fatalf("ExportPlan() error = %v", err)
	}
	prefix := "exports/" + userID.Hex() + "/"
	if !strings.HasPrefix(out.ObjectKey, prefix) || !strings.HasSuffix(out.ObjectKey, ".ics") {
		t.Errorf("object key = %q", out.ObjectKey)
	}
	if !strings.Contains(out.DownloadURL, out.ObjectKey) {
		t.Errorf("download URL %q does not reference %q", out.DownloadURL, out.ObjectKey)
	}
	if !out.ExpiresAt.Equal(serviceNow.Add(15 * time.Minute)) {
		t.Errorf("expires at = %v", out.ExpiresAt)
	}
	body := string(env.storage.objects[out.ObjectKey])
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 36 {
		t.Errorf("exported events = %d, want 36", got)
	}
}

func TestExportPlanFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("presign failure removes the upload", func(t *testing.T) {
		env := newTestEnv()
		userID, _ := env.withPlan(ctx)
		env.storage.presignErr = errors.New("signer down")

		if _, err := env.planSvc.ExportPlan(ctx, userID, export.FormatXLSX); err == nil {
			t.Fatal("ExportPlan() error = nil, want presign error")
		}
		if len(env.storage.objects) != 0 || len(env.storage.deleted) != 1 {
			t.Errorf("objects = %d, deleted = %d; want 0 and 1", len(env.storage.objects), len(env.storage.deleted))
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		env := newTestEnv()
		userID, _ := env.withPlan(ctx)
		if _, err := env.planSvc.ExportPlan(ctx, userID, export.Format("pdf")); !errors.Is(err, ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("storage not configured", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPlanService(env.profiles, env.exercises, env.plans, nil, env.locks, PlanServiceConfig{Now: env.clock.Now, Logger: discardLogger()})
		if _, err := svc.ExportPlan(ctx, primitive.NewObjectID(), export.FormatICS); !errors.Is(err, ErrExportUnavailable) {
			t.Fatalf("error = %v, want ErrExportUnavailable", err)
		}
	})
}
