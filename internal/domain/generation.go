package domain

import (
	"bytes"
	"encoding/json"
)

// Text is a request field that is embedded verbatim into a prompt. Callers
// (voice assistants in particular) send these as strings, numbers or lists,
// so any JSON value is accepted and kept in its textual form.
type Text string

// UnmarshalJSON accepts strings as-is and keeps any other JSON value as its
// compact source text. null yields the empty string.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

// OrDefault returns the text, or def when it is empty.
func (t Text) OrDefault(def string) string {
	if t == "" {
		return def
	}
	return string(t)
}

// GenerationRequest carries everything needed to generate one plan. It lives
// only for the duration of a single generation.
type GenerationRequest struct {
	UserID              string `json:"user_id"`
	Age                 Text   `json:"age"`
	Height              Text   `json:"height"`
	Weight              Text   `json:"weight"`
	Injuries            Text   `json:"injuries,omitempty"`
	WorkoutDays         Text   `json:"workout_days"`
	FitnessGoal         Text   `json:"fitness_goal"`
	FitnessLevel        Text   `json:"fitness_level"`
	DietaryRestrictions Text   `json:"dietary_restrictions,omitempty"`
}

// GenerationResult is what a successful generation hands back to the caller.
type GenerationResult struct {
	PlanID      string      `json:"planId"`
	WorkoutPlan WorkoutPlan `json:"workoutPlan"`
	DietPlan    DietPlan    `json:"dietPlan"`
}
