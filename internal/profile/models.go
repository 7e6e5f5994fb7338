package profile

import "time"

// Profile is the per-user aggregate wellness and trip summary.
type Profile struct {
	ID                   string    `json:"id"`
	DisplayName          string    `json:"display_name"`
	TotalTrips           int       `json:"total_trips"`
	TotalDistance        float64   `json:"total_distance"`
	AverageWellnessScore float64   `json:"average_wellness_score"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
