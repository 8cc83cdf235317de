package repository

import (
	"alcyxob/fitness-planner/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrInsertFailed = RepositoryError("insert failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository reads user accounts. Users are owned by another system, so
// there are no write methods here.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// PlanRepository stores generated fitness plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
}
