package badge

import "time"

// Badge categories decide which profile aggregate the requirement
// threshold is compared against.
const (
	CategoryTrips    = "trips"
	CategoryDistance = "distance"
	CategoryWellness = "wellness"
)

type Badge struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Category         string    `json:"category"`
	RequirementValue float64   `json:"requirement_value"`
	CreatedAt        time.Time `json:"created_at"`
}

type UserBadge struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
	Badge    *Badge    `json:"badge,omitempty"`
}
