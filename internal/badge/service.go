package badge

import (
	"context"

	"github.com/google/uuid"

	"github.com/shkshreyas/Meridian/internal/db"
	"github.com/shkshreyas/Meridian/internal/profile"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Catalog returns every badge ordered by creation time ascending.
func (s *Service) Catalog(ctx context.Context) ([]Badge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, icon, category, requirement_value, created_at
		FROM badges
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []Badge
	for rows.Next() {
		var b Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Category, &b.RequirementValue, &b.CreatedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, nil
}

// UserBadges returns the earned set for userID. Each record carries its
// denormalized catalog entry when the referenced badge still exists.
func (s *Service) UserBadges(ctx context.Context, userID string) ([]UserBadge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, badge_id, earned_at
		FROM user_badges
		WHERE user_id=$1
		ORDER BY earned_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []UserBadge
	var ids []string
	for rows.Next() {
		var ub UserBadge
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.EarnedAt); err != nil {
			return nil, err
		}
		ids = append(ids, ub.BadgeID)
		earned = append(earned, ub)
	}

	referenced, err := s.loadBadges(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range earned {
		if b, ok := referenced[earned[i].BadgeID]; ok {
			earned[i].Badge = &b
		}
	}
	return earned, nil
}

func (s *Service) loadBadges(ctx context.Context, badgeIDs []string) (map[string]Badge, error) {
	if len(badgeIDs) == 0 {
		return map[string]Badge{}, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, icon, category, requirement_value, created_at
		FROM badges WHERE id = ANY($1)
	`, badgeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := map[string]Badge{}
	for rows.Next() {
		var b Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Category, &b.RequirementValue, &b.CreatedAt); err != nil {
			return nil, err
		}
		badges[b.ID] = b
	}
	return badges, nil
}

// Award grants a badge to a user. Granting an already earned badge is a
// no-op.
func (s *Service) Award(ctx context.Context, userID, badgeID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_badges (id, user_id, badge_id)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`, uuid.NewString(), userID, badgeID)
	return err
}

// Evaluate awards every catalog badge whose requirement the profile
// aggregates now meet. Returns the badges newly checked as met; awards
// already held are left untouched by Award's conflict clause.
func (s *Service) Evaluate(ctx context.Context, p profile.Profile) ([]Badge, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	var met []Badge
	for _, b := range catalog {
		var value float64
		switch b.Category {
		case CategoryTrips:
			value = float64(p.TotalTrips)
		case CategoryDistance:
			value = p.TotalDistance
		case CategoryWellness:
			value = p.AverageWellnessScore
		default:
			continue
		}
		if value < b.RequirementValue {
			continue
		}
		if err := s.Award(ctx, p.ID, b.ID); err != nil {
			return met, err
		}
		met = append(met, b)
	}
	return met, nil
}
