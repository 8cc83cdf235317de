package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults substituted when the generated plan carries a value that cannot be
// read as an integer.
const (
	DefaultSets          = 1
	DefaultReps          = 10
	DefaultDailyCalories = 2000
)

// planNameDateLayout renders dates as month/day/year without padding.
const planNameDateLayout = "1/2/2006"

// Routine is a single exercise prescription within a day.
type Routine struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps int    `bson:"reps" json:"reps"`
}

// ExerciseDay groups the routines scheduled for one day, in order.
type ExerciseDay struct {
	Day      string    `bson:"day" json:"day"`
	Routines []Routine `bson:"routines" json:"routines"`
}

// WorkoutPlan is the normalized workout half of a generated plan.
// Schedule order is significant (e.g. "Monday", "Wednesday", "Friday").
type WorkoutPlan struct {
	Schedule  []string      `bson:"schedule" json:"schedule"`
	Exercises []ExerciseDay `bson:"exercises" json:"exercises"`
}

// Meal is a named meal and the foods it consists of.
type Meal struct {
	Name  string   `bson:"name" json:"name"`
	Foods []string `bson:"foods" json:"foods"`
}

// DietPlan is the normalized diet half of a generated plan.
type DietPlan struct {
	DailyCalories int    `bson:"dailyCalories" json:"dailyCalories"`
	Meals         []Meal `bson:"meals" json:"meals"`
}

// Plan is a persisted, generated fitness plan. Plans accumulate per user;
// a new generation never overwrites an older one.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"` // Denormalized from the owner
	Image       string             `bson:"image" json:"image"`                     // Denormalized from the owner, "" when unset
	WorkoutPlan WorkoutPlan        `bson:"workoutPlan" json:"workoutPlan"`
	DietPlan    DietPlan           `bson:"dietPlan" json:"dietPlan"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlanName builds the display name of a plan from the goal and creation date,
// e.g. "Lose weight Plan - 10/14/2026".
func PlanName(fitnessGoal string, createdAt time.Time) string {
	return fmt.Sprintf("%s Plan - %s", fitnessGoal, createdAt.Format(planNameDateLayout))
}
