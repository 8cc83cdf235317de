package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlanService interface {
	ListPlans(ctx context.Context, userID string) ([]domain.Plan, error)
}

type planService struct {
	planRepo repository.PlanRepository
}

func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// ListPlans returns every plan of the user, newest first. An unknown user
// simply has no plans.
func (s *planService) ListPlans(ctx context.Context, userID string) ([]domain.Plan, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}
	plans, err := s.planRepo.ListByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, nil
}
