package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformedPlan means the provider output was not a JSON object.
	ErrMalformedPlan = errors.New("generated plan is not valid JSON")
	// ErrIncompletePlan means a required array is missing from the output.
	ErrIncompletePlan = errors.New("generated plan is missing required fields")
)

// ValidateWorkoutPlan normalizes generated workout JSON into a WorkoutPlan.
// Only day, routine name, sets and reps are kept. sets and reps are coerced to
// integers, falling back to DefaultSets / DefaultReps.
func ValidateWorkoutPlan(raw []byte) (*domain.WorkoutPlan, error) {
	root, err := parsePlanObject(raw)
	if err != nil {
		return nil, err
	}

	schedule := root.Get("schedule")
	exercises := root.Get("exercises")
	if !schedule.IsArray() || !exercises.IsArray() {
		return nil, fmt.Errorf("%w: workout plan needs schedule and exercises arrays", ErrIncompletePlan)
	}

	plan := &domain.WorkoutPlan{
		Schedule:  stringArray(schedule),
		Exercises: make([]domain.ExerciseDay, 0, len(exercises.Array())),
	}
	for i, ex := range exercises.Array() {
		routines := ex.Get("routines")
		if !routines.IsArray() {
			return nil, fmt.Errorf("%w: exercises[%d] has no routines array", ErrIncompletePlan, i)
		}
		day := domain.ExerciseDay{
			Day:      ex.Get("day").String(),
			Routines: make([]domain.Routine, 0, len(routines.Array())),
		}
		for _, r := range routines.Array() {
			day.Routines = append(day.Routines, domain.Routine{
				Name: r.Get("name").String(),
				Sets: coerceInt(r.Get("sets"), domain.DefaultSets),
				Reps: coerceInt(r.Get("reps"), domain.DefaultReps),
			})
		}
		plan.Exercises = append(plan.Exercises, day)
	}
	return plan, nil
}

// ValidateDietPlan normalizes generated diet JSON into a DietPlan. Only
// dailyCalories and each meal's name and foods are kept.
func ValidateDietPlan(raw []byte) (*domain.DietPlan, error) {
	root, err := parsePlanObject(raw)
	if err != nil {
		return nil, err
	}

	meals := root.Get("meals")
	if !meals.IsArray() {
		return nil, fmt.Errorf("%w: diet plan needs a meals array", ErrIncompletePlan)
	}

	plan := &domain.DietPlan{
		DailyCalories: coerceInt(root.Get("dailyCalories"), domain.DefaultDailyCalories),
		Meals:         make([]domain.Meal, 0, len(meals.Array())),
	}
	for _, m := range meals.Array() {
		plan.Meals = append(plan.Meals, domain.Meal{
			Name:  m.Get("name").String(),
			Foods: stringArray(m.Get("foods")),
		})
	}
	return plan, nil
}

func parsePlanObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, ErrMalformedPlan
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return gjson.Result{}, ErrMalformedPlan
	}
	return root, nil
}

func stringArray(v gjson.Result) []string {
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

// coerceInt reads v as an integer. Numbers are used directly (fractions are
// truncated). Strings are read by their leading integer, so "12 reps" is 12.
// Anything else, or a string that yields zero, becomes def.
func coerceInt(v gjson.Result, def int) int {
	switch v.Type {
	case gjson.Number:
		if n, ok := parseIntRange(v.Raw); ok {
			return n
		}
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) ||
			v.Num >= float64(math.MaxInt) || v.Num < float64(math.MinInt) {
			return def
		}
		return int(v.Num)
	case gjson.String:
		n, ok := leadingInt(v.Str)
		if !ok || n == 0 {
			return def
		}
		return n
	default:
		return def
	}
}

// leadingInt parses an optionally signed run of digits at the start of s,
// after leading whitespace.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	return parseIntRange(s[:end])
}

// parseIntRange parses a base-10 integer that fits in an int.
func parseIntRange(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}
