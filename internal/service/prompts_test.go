package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompts(t *testing.T) {
	full := domain.GenerationRequest{
		UserID:              "665f1c2ab8e4a3d9c0a1b2c3",
		Age:                 "34",
		Height:              "172 cm",
		Weight:              "68",
		Injuries:            "left knee",
		WorkoutDays:         `["Mon","Thu"]`,
		FitnessGoal:         "Endurance",
		FitnessLevel:        "Advanced",
		DietaryRestrictions: "vegetarian",
	}
	bare := full
	bare.Injuries = ""
	bare.DietaryRestrictions = ""

	tests := []struct {
		name   string
		prompt string
		want   []string
		absent []string
	}{
		{
			name:   "workout embeds every field",
			prompt: BuildWorkoutPrompt(full),
			want: []string{
				"Age: 34", "Height: 172 cm", "Weight: 68", "Injuries or limitations: left knee",
				`Available days for workout: ["Mon","Thu"]`, "Fitness goal: Endurance", "Fitness level: Advanced",
				`"sets" and "reps" are ALWAYS integers`, `"schedule"`, `"routines"`,
			},
		},
		{
			name:   "workout without injuries",
			prompt: BuildWorkoutPrompt(bare),
			want:   []string{"Injuries or limitations: None"},
			absent: []string{"left knee"},
		},
		{
			name:   "diet embeds its fields",
			prompt: BuildDietPrompt(full),
			want: []string{
				"Age: 34", "Height: 172 cm", "Weight: 68", "Fitness goal: Endurance",
				"Dietary restrictions: vegetarian", `"dailyCalories" is ALWAYS an integer`, `"meals"`, `"foods"`,
			},
		},
		{
			name:   "diet without restrictions",
			prompt: BuildDietPrompt(bare),
			want:   []string{"Dietary restrictions: None"},
			absent: []string{"vegetarian"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.want {
				assert.Contains(t, tt.prompt, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, tt.prompt, a)
			}
			assert.NotContains(t, tt.prompt, full.UserID)
		})
	}
}
