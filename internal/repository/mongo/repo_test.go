package mongo

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("GetByEmail found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fitness.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@b.com"},
			{Key: "password", Value: "hash"},
			{Key: "profilePic", Value: "avatars/a.png"},
		}))

		user, err := NewMongoUserRepository(mt.DB).GetByEmail(context.Background(), "a@b.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "a@b.com", user.Email)
		assert.Equal(mt, "hash", user.PasswordHash)
		assert.Equal(mt, "avatars/a.png", user.ProfilePic)
	})

	mt.Run("GetByID missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fitness.users", mtest.FirstBatch))

		user, err := NewMongoUserRepository(mt.DB).GetByID(context.Background(), primitive.NewObjectID())
		assert.Nil(mt, user)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestPlanRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Create assigns id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		plan := &domain.Plan{
			UserID:   primitive.NewObjectID(),
			Name:     "Build muscle Plan - 1/2/2026",
			IsActive: true,
			DietPlan: domain.DietPlan{DailyCalories: 2400},
		}
		id, err := NewMongoPlanRepository(mt.DB).Create(context.Background(), plan)
		require.NoError(mt, err)
		assert.Equal(mt, plan.ID, id)
		assert.False(mt, plan.CreatedAt.IsZero())
		assert.Equal(mt, plan.CreatedAt, plan.UpdatedAt)
		assert.NotNil(mt, plan.DietPlan.Meals)
		assert.NotNil(mt, plan.WorkoutPlan.Schedule)
	})

	mt.Run("Create rejects plan without owner", func(mt *mtest.T) {
		_, err := NewMongoPlanRepository(mt.DB).Create(context.Background(), &domain.Plan{Name: "x"})
		assert.Error(mt, err)
	})

	mt.Run("Create wraps write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := NewMongoPlanRepository(mt.DB).Create(context.Background(), &domain.Plan{
			UserID: primitive.NewObjectID(),
			Name:   "x",
		})
		assert.ErrorIs(mt, err, repository.ErrInsertFailed)
	})

	mt.Run("ListByUserID decodes every plan", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		now := time.Now().UTC().Truncate(time.Millisecond)
		first := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userId", Value: userID},
			{Key: "name", Value: "newest"},
			{Key: "isActive", Value: true},
			{Key: "createdAt", Value: now},
			{Key: "dietPlan", Value: bson.D{{Key: "dailyCalories", Value: 1800}}},
		}
		second := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userId", Value: userID},
			{Key: "name", Value: "older"},
			{Key: "createdAt", Value: now.Add(-time.Hour)},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fitness.plans", mtest.FirstBatch, first, second))

		plans, err := NewMongoPlanRepository(mt.DB).ListByUserID(context.Background(), userID)
		require.NoError(mt, err)
		require.Len(mt, plans, 2)
		assert.Equal(mt, "newest", plans[0].Name)
		assert.Equal(mt, 1800, plans[0].DietPlan.DailyCalories)
		assert.Equal(mt, "older", plans[1].Name)
	})

	mt.Run("ListByUserID empty is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fitness.plans", mtest.FirstBatch))

		plans, err := NewMongoPlanRepository(mt.DB).ListByUserID(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.NotNil(mt, plans)
		assert.Empty(mt, plans)
	})
}
