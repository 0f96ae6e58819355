package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 2026-01-05 is a Monday.
var serviceNow = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// clone deep-copies through bson so stored documents never alias caller values.
func clone[T any](v *T) *T {
	data, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := bson.Unmarshal(data, out); err != nil {
		panic(err)
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]*domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*domain.UserProfile)}
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := clone(profile)
	if existing, ok := r.profiles[profile.UserID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = primitive.NewObjectID()
		stored.CreatedAt = stored.UpdatedAt
	}
	r.profiles[profile.UserID] = stored
	return nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.Exercise
	err       error
}

func (r *fakeExerciseRepo) Create(_ context.Context, ex *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if strings.EqualFold(e.Name, ex.Name) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	ex.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *ex)
	return ex.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func matches(e domain.Exercise, q repository.ExerciseQuery) bool {
	if q.Discipline != "" && !e.HasDiscipline(q.Discipline) {
		return false
	}
	if q.Difficulty != "" && e.Difficulty != q.Difficulty {
		return false
	}
	return q.SessionType == "" || e.HasSessionType(q.SessionType)
}

func (r *fakeExerciseRepo) Find(_ context.Context, q repository.ExerciseQuery) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.exercises {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) FindSafeFor(_ context.Context, tags []string, q repository.ExerciseQuery) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.exercises {
		if matches(e, q) && e.SafeFor(tags) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) ListByDisciplines(_ context.Context, disciplines []domain.Discipline) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Exercise
	for _, e := range r.exercises {
		if slices.ContainsFunc(disciplines, e.HasDiscipline) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]*domain.TrainingPlan
	// updateErr, when set, is returned by the next Update.
	updateErr error
	// createErr, when set, is returned by the next Create.
	createErr error
	updates   int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.createErr; err != nil {
		r.createErr = nil
		return primitive.NilObjectID, err
	}
	if plan.Status == domain.PlanActive {
		for _, p := range r.plans {
			if p.UserID == plan.UserID && p.Status == domain.PlanActive {
				return primitive.NilObjectID, repository.ErrDuplicate
			}
		}
	}
	if plan.ID == primitive.NilObjectID {
		plan.ID = primitive.NewObjectID()
	}
	plan.Version = 1
	r.plans[plan.ID] = clone(plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(p), nil
}

func (r *fakePlanRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.UserID == userID && p.Status == domain.PlanActive {
			return clone(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.TrainingPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr; err != nil {
		r.updateErr = nil
		return err
	}
	stored, ok := r.plans[plan.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != plan.Version {
		return repository.ErrVersionConflict
	}
	plan.Version++
	r.plans[plan.ID] = clone(plan)
	r.updates++
	return nil
}

func (r *fakePlanRepo) SetStatus(_ context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	p.Version++
	return nil
}

func (r *fakePlanRepo) ListActive(_ context.Context) ([]domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TrainingPlan
	for _, p := range r.plans {
		if p.Status == domain.PlanActive {
			out = append(out, *clone(p))
		}
	}
	return out, nil
}

func (r *fakePlanRepo) UpdateProgress(_ context.Context, id primitive.ObjectID, currentWeek int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.CurrentWeek = currentWeek
	return nil
}

func (r *fakePlanRepo) byStatus(userID primitive.ObjectID, status domain.PlanStatus) []*domain.TrainingPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.TrainingPlan
	for _, p := range r.plans {
		if p.UserID == userID && p.Status == status {
			out = append(out, clone(p))
		}
	}
	return out
}

type fakeAdaptationRepo struct {
	mu      sync.Mutex
	records []domain.PlanAdaptation
	err     error
}

func (r *fakeAdaptationRepo) Create(_ context.Context, a *domain.PlanAdaptation) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	if a.ID == primitive.NilObjectID {
		a.ID = primitive.NewObjectID()
	}
	r.records = append(r.records, *a)
	return a.ID, nil
}

func (r *fakeAdaptationRepo) GetLatestByPlanID(_ context.Context, planID primitive.ObjectID) (*domain.PlanAdaptation, error) {
	list, _ := r.ListByPlanID(context.Background(), planID)
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (r *fakeAdaptationRepo) ListByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.PlanAdaptation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PlanAdaptation
	for _, a := range r.records {
		if a.PlanID == planID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

type fakeStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	presignErr error
	deleted    []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) PutObject(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "https://storage.test/" + key + "?signature=x", nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return errors.New("no such key")
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func exercise(name string, discipline domain.Discipline, sessionTypes []domain.SessionType, patterns, contraindications []string) domain.Exercise {
	return domain.Exercise{
		ID:                primitive.NewObjectID(),
		Name:              name,
		Disciplines:       []domain.Discipline{discipline},
		Difficulty:        domain.DifficultyIntermediate,
		SessionTypes:      sessionTypes,
		MovementPatterns:  patterns,
		Contraindications: contraindications,
	}
}

func testCatalog() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: []domain.Exercise{
		exercise("Wall Ball", domain.DisciplineHybrid, []domain.SessionType{domain.SessionHybridCircuit, domain.SessionRaceSimulation, domain.SessionFullBody, domain.SessionMobility}, []string{"squat", "throw"}, []string{"knee"}),
		exercise("Sled Push", domain.DisciplineHybrid, []domain.SessionType{domain.SessionRaceSimulation}, []string{"push", "carry"}, nil),
		exercise("Farmer Carry", domain.DisciplineHybrid, []domain.SessionType{domain.SessionFullBody}, []string{"carry", "grip"}, nil),
		exercise("Plank", domain.DisciplineHybrid, []domain.SessionType{domain.SessionMobility}, []string{"core"}, nil),
		exercise("Tempo Run", domain.DisciplineEndurance, []domain.SessionType{domain.SessionTempo, domain.SessionEasyRun, domain.SessionLongRun}, []string{"run"}, []string{"knee", "impact"}),
		exercise("Bike Intervals", domain.DisciplineEndurance, []domain.SessionType{domain.SessionIntervals}, []string{"cycle"}, nil),
		exercise("Back Squat", domain.DisciplineStrength, []domain.SessionType{domain.SessionLegs, domain.SessionFullBody}, []string{"squat", "hinge"}, []string{"knee"}),
		exercise("Pull-Up", domain.DisciplineStrength, []domain.SessionType{domain.SessionPull, domain.SessionFullBody}, []string{"pull", "grip"}, nil),
	}}
}

// raceProfile trains Mon/Wed/Fri for a race with no target date.
func raceProfile(userID primitive.ObjectID) *domain.UserProfile {
	return &domain.UserProfile{
		UserID: userID,
		FitnessLevels: map[domain.Discipline]domain.FitnessLevel{
			domain.DisciplineEndurance: domain.LevelIntermediate,
			domain.DisciplineStrength:  domain.LevelIntermediate,
			domain.DisciplineHybrid:    domain.LevelIntermediate,
		},
		Availability:       domain.NewAvailability(domain.Monday, domain.Wednesday, domain.Friday),
		MinSessionsPerWeek: 2,
		MaxSessionsPerWeek: 3,
		Goals: []domain.TrainingGoal{
			{Type: domain.GoalRace, Description: "Spring race", Priority: 1, Status: domain.GoalActive},
		},
	}
}

// testEnv wires every service over shared fakes.
type testEnv struct {
	clock       *clock
	users       *fakeUserRepo
	profiles    *fakeProfileRepo
	exercises   *fakeExerciseRepo
	plans       *fakePlanRepo
	adaptRecs   *fakeAdaptationRepo
	storage     *fakeStorage
	locks       *UserLocks
	planSvc     PlanService
	adaptSvc    AdaptationService
	profileSvc  ProfileService
	exerciseSvc ExerciseService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		clock:     newClock(serviceNow),
		users:     newFakeUserRepo(),
		profiles:  newFakeProfileRepo(),
		exercises: testCatalog(),
		plans:     newFakePlanRepo(),
		adaptRecs: &fakeAdaptationRepo{},
		storage:   newFakeStorage(),
		locks:     NewUserLocks(),
	}
	logger := discardLogger()
	env.planSvc = NewPlanService(env.profiles, env.exercises, env.plans, env.storage, env.locks, PlanServiceConfig{
		RandomSeed: 42,
		Now:        env.clock.Now,
		Logger:     logger,
	})
	env.adaptSvc = NewAdaptationService(env.plans, env.adaptRecs, env.locks, AdaptationServiceConfig{
		Now:    env.clock.Now,
		Logger: logger,
	})
	env.profileSvc = NewProfileService(env.profiles, env.adaptSvc, env.clock.Now, logger)
	env.exerciseSvc = NewExerciseService(env.exercises)
	return env
}

// withPlan stores a profile and generates a plan for a new user.
func (env *testEnv) withPlan(ctx context.Context) (primitive.ObjectID, *domain.TrainingPlan) {
	userID := primitive.NewObjectID()
	profile := raceProfile(userID)
	profile.UpdatedAt = serviceNow
	if err := env.profiles.Upsert(ctx, profile); err != nil {
		panic(err)
	}
	gen, err := env.planSvc.GeneratePlan(ctx, userID)
	if err != nil {
		panic(err)
	}
	return userID, gen.Plan
}
