package trip

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// CanTransition reports whether moving to next is a legal forward step.
// Pause/resume cycles are allowed; completed is terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusActive:
		return next == StatusPaused || next == StatusCompleted
	case StatusPaused:
		return next == StatusActive || next == StatusCompleted
	default:
		return false
	}
}

// Trip is one monitored driving session. EndTime is set exactly when the
// trip reaches completed.
type Trip struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	Distance         float64    `json:"distance"`
	Duration         int64      `json:"duration"`
	WellnessScore    float64    `json:"wellness_score"`
	AlertnessScore   float64    `json:"alertness_score"`
	StressLevel      float64    `json:"stress_level"`
	DrowsinessEvents int        `json:"drowsiness_events"`
	StressEvents     int        `json:"stress_events"`
	Status           Status     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Snapshot is a single wellness reading captured during a trip.
type Snapshot struct {
	ID                 int64     `json:"id"`
	TripID             string    `json:"trip_id"`
	Timestamp          time.Time `json:"timestamp"`
	HeartRate          *int      `json:"heart_rate"`
	AlertnessScore     float64   `json:"alertness_score"`
	StressLevel        float64   `json:"stress_level"`
	EyeClosureDuration *float64  `json:"eye_closure_duration"`
	HeadPosition       *string   `json:"head_position"`
}
