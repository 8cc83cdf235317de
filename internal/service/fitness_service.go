package service

import (
	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/metrics"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrUserIDRequired = errors.New("user_id is required")
	ErrInvalidUserID  = errors.New("invalid user id")
	ErrUserNotFound   = errors.New("User not found")
)

// Error types reported to callers of the generation endpoint.
const (
	ErrorTypeTimeout         = "timeout"
	ErrorTypeServiceDisabled = "service_disabled"
	ErrorTypeRateLimit       = "rate_limit"
	ErrorTypeValidation      = "validation_error"
	ErrorTypeNotFound        = "not_found"
	ErrorTypeUnknown         = "unknown"
)

// ClassifyGenerationError maps a GeneratePlan error to one of the ErrorType
// constants. Sentinel errors are matched before the provider's error text,
// since caller input such as the user id can appear in a message.
func ClassifyGenerationError(err error) string {
	switch {
	case errors.Is(err, ErrGenerationTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrUserIDRequired), errors.Is(err, ErrInvalidUserID):
		return ErrorTypeValidation
	case errors.Is(err, ErrUserNotFound):
		return ErrorTypeNotFound
	case ai.IsServiceDisabled(err):
		return ErrorTypeServiceDisabled
	case ai.IsRateLimit(err):
		return ErrorTypeRateLimit
	default:
		return ErrorTypeUnknown
	}
}

// GenerationOptions tunes plan generation.
type GenerationOptions struct {
	Timeout     time.Duration
	Temperature float32
	TopP        float32
	Retry       ai.RetryPolicy
}

// DefaultGenerationOptions returns the production settings.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Timeout:     45 * time.Second,
		Temperature: 0.4,
		TopP:        0.9,
		Retry:       ai.RetryPolicy{MaxRetries: ai.DefaultMaxRetries, BaseDelay: ai.DefaultBaseDelay},
	}
}

// --- Service Interface ---
type FitnessService interface {
	// GeneratePlan generates, validates and stores a workout and diet plan.
	GeneratePlan(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

// --- Service Implementation ---

type fitnessService struct {
	userRepo  repository.UserRepository
	planRepo  repository.PlanRepository
	generator ai.TextGenerator
	opts      GenerationOptions
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewFitnessService creates the plan generation service. generator is shared
// across requests and must be safe for concurrent use.
func NewFitnessService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	generator ai.TextGenerator,
	opts GenerationOptions,
	log logrus.FieldLogger,
) FitnessService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultGenerationOptions().Timeout
	}
	opts.Retry = opts.Retry.WithDefaults()
	return &fitnessService{
		userRepo:  userRepo,
		planRepo:  planRepo,
		generator: generator,
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

// GeneratePlan bounds the whole generation by the configured timeout. Losing
// the race cancels the context handed to the provider calls, the backoff
// sleeps and the database operations.
func (s *fitnessService) GeneratePlan(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	start := time.Now()
	result, err := RaceTimeout(ctx, s.opts.Timeout, func(ctx context.Context) (*domain.GenerationResult, error) {
		return s.generate(ctx, req)
	})

	outcome := "success"
	if err != nil {
		outcome = ClassifyGenerationError(err)
	}
	metrics.RecordGeneration(outcome, time.Since(start))
	return result, err
}

func (s *fitnessService) generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	// 1. Validate input before spending any provider quota
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserIDRequired
	}
	userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUserID, req.UserID)
	}
	log := s.log.WithField("user_id", userID.Hex())

	// 2. Generate both halves in parallel; either failing fails the plan
	log.Info("Generating workout and diet plans in parallel")
	var workoutText, dietText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workoutText, err = s.generateText(gctx, log, "workout", BuildWorkoutPrompt(req))
		return err
	})
	g.Go(func() (err error) {
		dietText, err = s.generateText(gctx, log, "diet", BuildDietPrompt(req))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug("Both plans generated")

	// 3. Normalize the generated JSON
	workoutPlan, err := ValidateWorkoutPlan([]byte(workoutText))
	if err != nil {
		return nil, fmt.Errorf("workout plan: %w", err)
	}
	dietPlan, err := ValidateDietPlan([]byte(dietText))
	if err != nil {
		return nil, fmt.Errorf("diet plan: %w", err)
	}

	// 4. Denormalize owner details into the plan
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	plan := &domain.Plan{
		UserID:      userID,
		Name:        domain.PlanName(string(req.FitnessGoal), s.now()),
		Email:       user.Email,
		Image:       user.ProfilePic,
		WorkoutPlan: *workoutPlan,
		DietPlan:    *dietPlan,
		IsActive:    true,
	}

	// 5. Persist
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	log.WithField("plan_id", planID.Hex()).Info("Successfully created plan")

	return &domain.GenerationResult{
		PlanID:      planID.Hex(),
		WorkoutPlan: plan.WorkoutPlan,
		DietPlan:    plan.DietPlan,
	}, nil
}

func (s *fitnessService) generateText(ctx context.Context, log logrus.FieldLogger, call, prompt string) (string, error) {
	cfg := ai.GenerationConfig{
		Temperature:      s.opts.Temperature,
		TopP:             s.opts.TopP,
		ResponseMIMEType: ai.MIMETypeJSON,
	}
	policy := s.opts.Retry
	logRetry := ai.LogRetries(log, call, policy.MaxRetries)
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		metrics.RecordAIAttempt(call, "retry")
		logRetry(attempt, delay, err)
	}

	text, err := ai.RetryWithBackoff(ctx, policy, func(ctx context.Context) (string, error) {
		return s.generator.GenerateText(ctx, prompt, cfg)
	})
	if err != nil {
		metrics.RecordAIAttempt(call, "error")
		return "", fmt.Errorf("generate %s plan: %w", call, err)
	}
	metrics.RecordAIAttempt(call, "ok")
	return text, nil
}
