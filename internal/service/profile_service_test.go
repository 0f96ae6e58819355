package service

import (
	"context"
	"errors"
	"testing"

	"alcyxob/fitness-coach/internal/domain"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID := primitive.NewObjectID()

	in := raceProfile(primitive.NewObjectID())
	in.Goals[0].Status = ""
	got, err := env.profileSvc.SaveProfile(ctx, userID, in)
	if err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if got.UserID != userID {
		t.Errorf("profile user = %s, want the caller %s", got.UserID.Hex(), userID.Hex())
	}
	if got.Goals[0].Status != domain.GoalActive {
		t.Errorf("goal status = %q, want active", got.Goals[0].Status)
	}

	if _, _, err := env.profileSvc.AddInjury(ctx, userID, domain.InjuryLimitation{BodyPart: "Knee"}); err != nil {
		t.Fatal(err)
	}
	// saving again without injuries keeps the recorded ones
	again, err := env.profileSvc.SaveProfile(ctx, userID, raceProfile(userID))
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Injuries) != 1 || again.Injuries[0].BodyPart != "knee" {
		t.Errorf("injuries = %+v, want the knee injury kept", again.Injuries)
	}

	invalid := raceProfile(userID)
	invalid.Availability = 0
	if _, err := env.profileSvc.SaveProfile(ctx, userID, invalid); !errors.Is(err, ErrValidation) {
		t.Errorf("SaveProfile(no availability) error = %v, want ErrValidation", err)
	}
}

func TestAddInjury(t *testing.T) {
	ctx := context.Background()

	t.Run("adapts the active plan", func(t *testing.T) {
		env := newTestEnv()
		userID, _ := env.withPlan(ctx)

		profile, res, err := env.profileSvc.AddInjury(ctx, userID, domain.InjuryLimitation{
			BodyPart:     " Knee ",
			Restrictions: []string{"Impact"},
		})
		if err != nil {
			t.Fatalf("AddInjury() error = %v", err)
		}
		want := domain.InjuryLimitation{
			BodyPart:     "knee",
			Class:        domain.InjuryAcute,
			Restrictions: []string{"impact"},
			Status:       domain.InjuryActive,
			ReportedAt:   serviceNow,
		}
		if diff := cmp.Diff(want, profile.Injuries[0]); diff != "" {
			t.Errorf("injury mismatch (-want +got):\n%s", diff)
		}
		if res == nil || res.Trigger != domain.TriggerInjury || !res.Success {
			t.Fatalf("result = %+v, want a successful injury adaptation", res)
		}
	})

	t.Run("without a plan", func(t *testing.T) {
		env := newTestEnv()
		userID := primitive.NewObjectID()
		_ = env.profiles.Upsert(ctx, raceProfile(userID))

		_, res, err := env.profileSvc.AddInjury(ctx, userID, domain.InjuryLimitation{BodyPart: "shoulder"})
		if err != nil || res != nil {
			t.Fatalf("AddInjury() = %+v, %v; want nil result and no error", res, err)
		}
	})

	tests := []struct {
		name    string
		injury  domain.InjuryLimitation
		wantErr error
	}{
		{"missing body part", domain.InjuryLimitation{BodyPart: "  "}, ErrValidation},
		{"unknown class", domain.InjuryLimitation{BodyPart: "knee", Class: "sudden"}, ErrValidation},
		{"unknown status", domain.InjuryLimitation{BodyPart: "knee", Status: "healed"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			userID, _ := env.withPlan(ctx)
			if _, _, err := env.profileSvc.AddInjury(ctx, userID, tt.injury); !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddInjury() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("no profile", func(t *testing.T) {
		env := newTestEnv()
		if _, _, err := env.profileSvc.AddInjury(ctx, primitive.NewObjectID(), domain.InjuryLimitation{BodyPart: "knee"}); !errors.Is(err, ErrProfileNotFound) {
			t.Fatalf("error = %v, want ErrProfileNotFound", err)
		}
	})
}

func TestUpdateInjuryStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	userID, _ := env.withPlan(ctx)
	if _, _, err := env.profileSvc.AddInjury(ctx, userID, domain.InjuryLimitation{BodyPart: "knee"}); err != nil {
		t.Fatal(err)
	}
	records := len(env.adaptRecs.records)

	tests := []struct {
		name        string
		index       int
		status      domain.InjuryStatus
		wantErr     error
		wantAdapted bool
	}{
		{"out of range", 3, domain.InjuryImproving, ErrInjuryNotFound, false},
		{"improving still limits", 0, domain.InjuryImproving, nil, true},
		{"backwards rejected", 0, domain.InjuryActive, ErrValidation, false},
		{"resolved does not adapt", 0, domain.InjuryResolved, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, res, err := env.profileSvc.UpdateInjuryStatus(ctx, userID, tt.index, tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateInjuryStatus() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if profile.Injuries[tt.index].Status != tt.status {
				t.Errorf("status = %s, want %s", profile.Injuries[tt.index].Status, tt.status)
			}
			if adapted := res != nil; adapted != tt.wantAdapted {
				t.Errorf("adapted = %v, want %v", adapted, tt.wantAdapted)
			}
		})
	}

	if len(env.adaptRecs.records) > records+1 {
		t.Errorf("records = %d, want at most %d", len(env.adaptRecs.records), records+1)
	}
}
