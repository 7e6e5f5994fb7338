package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shkshreyas/Meridian/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Get returns the profile for id, or found=false when no row exists.
func (s *Service) Get(ctx context.Context, id string) (Profile, bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, display_name, total_trips, total_distance, average_wellness_score, created_at, updated_at
		FROM profiles WHERE id=$1
	`, id)
	var p Profile
	err := row.Scan(&p.ID, &p.DisplayName, &p.TotalTrips, &p.TotalDistance, &p.AverageWellnessScore, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (s *Service) Upsert(ctx context.Context, input Profile) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO profiles (id, display_name, total_trips, total_distance, average_wellness_score)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE
		SET display_name=EXCLUDED.display_name, updated_at=now()
		RETURNING total_trips, total_distance, average_wellness_score, created_at, updated_at
	`, input.ID, input.DisplayName, input.TotalTrips, input.TotalDistance, input.AverageWellnessScore)
	if err := row.Scan(&input.TotalTrips, &input.TotalDistance, &input.AverageWellnessScore, &input.CreatedAt, &input.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return input, nil
}

// RecordTrip folds one completed trip into the profile aggregates. The
// running wellness average is reweighted by the prior trip count.
func (s *Service) RecordTrip(ctx context.Context, id string, distanceKm, wellnessScore float64) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE profiles
		SET total_trips = total_trips + 1,
		    total_distance = total_distance + $2,
		    average_wellness_score = (average_wellness_score * total_trips + $3) / (total_trips + 1),
		    updated_at = now()
		WHERE id=$1
		RETURNING id, display_name, total_trips, total_distance, average_wellness_score, created_at, updated_at
	`, id, distanceKm, wellnessScore)
	var p Profile
	if err := row.Scan(&p.ID, &p.DisplayName, &p.TotalTrips, &p.TotalDistance, &p.AverageWellnessScore, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}
