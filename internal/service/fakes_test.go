package service

import (
	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
	err   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakePlanRepo struct {
	mu      sync.Mutex
	created []domain.Plan
	err     error
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	plan.ID = primitive.NewObjectID()
	r.created = append(r.created, *plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Plan
	for i := len(r.created) - 1; i >= 0; i-- {
		if r.created[i].UserID == userID {
			out = append(out, r.created[i])
		}
	}
	return out, nil
}

// fakeGenerator answers workout and diet prompts separately and records every
// call. Safe for the concurrent use the orchestrator makes of it.
type fakeGenerator struct {
	mu      sync.Mutex
	workout func(ctx context.Context, call int) (string, error)
	diet    func(ctx context.Context, call int) (string, error)
	calls   map[string]int
	configs []ai.GenerationConfig
}

func newFakeGenerator(workout, diet string) *fakeGenerator {
	return &fakeGenerator{
		workout: func(context.Context, int) (string, error) { return workout, nil },
		diet:    func(context.Context, int) (string, error) { return diet, nil },
		calls:   map[string]int{},
	}
}

func (g *fakeGenerator) GenerateText(ctx context.Context, prompt string, cfg ai.GenerationConfig) (string, error) {
	kind := "diet"
	if strings.Contains(prompt, "fitness coach") {
		kind = "workout"
	}
	g.mu.Lock()
	g.calls[kind]++
	n := g.calls[kind]
	g.configs = append(g.configs, cfg)
	g.mu.Unlock()

	if kind == "workout" {
		return g.workout(ctx, n)
	}
	return g.diet(ctx, n)
}

func (g *fakeGenerator) callCount(kind string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[kind]
}

const (
	sampleWorkoutJSON = `{
  "schedule": ["Monday", "Wednesday", "Friday"],
  "exercises": [
    {"day": "Monday", "notes": "drop me", "routines": [
      {"name": "Squat", "sets": 4, "reps": "8", "duration": "10 min"},
      {"name": "Plank", "sets": "three", "reps": "AMRAP"}
    ]}
  ]
}`
	sampleDietJSON = `{"dailyCalories": "2400 kcal", "macros": {"protein": 180},
  "meals": [{"name": "Breakfast", "foods": ["Oats", "Eggs"], "calories": 600}]}`
)
