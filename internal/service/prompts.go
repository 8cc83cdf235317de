package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"fmt"
)

const noneProvided = "None"

// BuildWorkoutPrompt asks for a workout plan JSON object in the exact shape
// ValidateWorkoutPlan reads.
func BuildWorkoutPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(`You are an experienced fitness coach. Create a personalized workout plan for this person:
  Age: %s
  Height: %s
  Weight: %s
  Injuries or limitations: %s
  Available days for workout: %s
  Fitness goal: %s
  Fitness level: %s

Coaching guidelines:
- Split muscle groups so the same muscles are not trained on consecutive days
- Match exercise choice and volume to the fitness level and work around any injuries
- Every session must serve the stated fitness goal

OUTPUT RULES (STRICT):
- Output ONLY the fields shown in the example below. Do not add any other field.
- "sets" and "reps" are ALWAYS integers, never strings. Example: "sets": 3, "reps": 10
- Never write text such as "AMRAP", "to failure" or "as many as possible" for reps; pick a number like 12 or 15
- For cardio or timed work use "sets": 1, "reps": 1 or another sensible integer

Return one JSON object with exactly this structure:
{
  "schedule": ["Monday", "Wednesday", "Friday"],
  "exercises": [
    {
      "day": "Monday",
      "routines": [
        {"name": "Exercise Name", "sets": 3, "reps": 10}
      ]
    }
  ]
}

Respond with the JSON object only, no surrounding text.`,
		req.Age, req.Height, req.Weight,
		req.Injuries.OrDefault(noneProvided),
		req.WorkoutDays, req.FitnessGoal, req.FitnessLevel)
}

// BuildDietPrompt asks for a diet plan JSON object in the exact shape
// ValidateDietPlan reads.
func BuildDietPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(`You are an experienced nutrition coach. Create a personalized diet plan for this person:
  Age: %s
  Height: %s
  Weight: %s
  Fitness goal: %s
  Dietary restrictions: %s

Nutrition guidelines:
- Work out a daily calorie target from the stats and the goal
- Balance macronutrients across the day and respect every dietary restriction
- Prefer varied, nutrient-dense foods and time meals around training

OUTPUT RULES (STRICT):
- Output ONLY the fields shown in the example below. Do not add any other field.
- "dailyCalories" is ALWAYS an integer, never a string
- Do not add "macros", "supplements", "notes" or anything similar
- Each meal has only a "name" and a "foods" array of strings

Return one JSON object with exactly this structure:
{
  "dailyCalories": 2000,
  "meals": [
    {"name": "Breakfast", "foods": ["Oatmeal with berries", "Greek yogurt", "Black coffee"]},
    {"name": "Lunch", "foods": ["Grilled chicken salad", "Whole grain bread", "Water"]}
  ]
}

Respond with the JSON object only, no surrounding text.`,
		req.Age, req.Height, req.Weight, req.FitnessGoal,
		req.DietaryRestrictions.OrDefault(noneProvided))
}
