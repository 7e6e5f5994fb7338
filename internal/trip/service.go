package trip

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shkshreyas/Meridian/internal/badge"
	"github.com/shkshreyas/Meridian/internal/db"
	"github.com/shkshreyas/Meridian/internal/live"
	"github.com/shkshreyas/Meridian/internal/profile"
)

var (
	ErrInvalidTransition = errors.New("invalid trip status transition")
	ErrTripInProgress    = errors.New("a trip is already in progress")
)

// Snapshot readings beyond these bounds count as drowsiness or stress
// events on the trip.
const (
	drowsinessAlertnessFloor = 50.0
	stressEventCeiling       = 70.0
)

type Service struct {
	db       db.Querier
	profiles *profile.Service
	badges   *badge.Service
	hub      *live.Hub
	logger   *zap.Logger
}

func NewService(db db.Querier, profiles *profile.Service, badges *badge.Service, hub *live.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, profiles: profiles, badges: badges, hub: hub, logger: logger}
}

// Start opens a new active trip for userID. A user can have at most one
// unfinished trip at a time.
func (s *Service) Start(ctx context.Context, userID string) (Trip, error) {
	var inProgress bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM trips WHERE user_id=$1 AND status IN ('active','paused')
		)
	`, userID).Scan(&inProgress)
	if err != nil {
		return Trip{}, err
	}
	if inProgress {
		return Trip{}, ErrTripInProgress
	}

	t := Trip{ID: uuid.NewString(), UserID: userID, Status: StatusActive}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, user_id, start_time, status)
		VALUES ($1,$2,now(),$3)
		RETURNING start_time, created_at
	`, t.ID, t.UserID, t.Status)
	if err := row.Scan(&t.StartTime, &t.CreatedAt); err != nil {
		return Trip{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, start_time, end_time, distance, duration, wellness_score,
		       alertness_score, stress_level, drowsiness_events, stress_events, status, created_at
		FROM trips WHERE id=$1
	`, id)
	return scanTrip(row)
}

func (s *Service) Pause(ctx context.Context, id string) (Trip, error) {
	return s.transition(ctx, id, StatusPaused)
}

func (s *Service) Resume(ctx context.Context, id string) (Trip, error) {
	return s.transition(ctx, id, StatusActive)
}

func (s *Service) transition(ctx context.Context, id string, next Status) (Trip, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Trip{}, err
	}
	if !t.Status.CanTransition(next) {
		return Trip{}, ErrInvalidTransition
	}

	if _, err := s.db.Exec(ctx, `UPDATE trips SET status=$2 WHERE id=$1`, id, next); err != nil {
		return Trip{}, err
	}
	t.Status = next
	return t, nil
}

// Complete closes the trip with its final distance, folds the result into
// the owner's profile aggregates and evaluates badge thresholds. The
// updated profile is returned so callers can reflect it immediately
// without waiting for the next refresh.
func (s *Service) Complete(ctx context.Context, id string, distanceKm float64) (Trip, profile.Profile, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Trip{}, profile.Profile{}, err
	}
	if !t.Status.CanTransition(StatusCompleted) {
		return Trip{}, profile.Profile{}, ErrInvalidTransition
	}

	end := time.Now().UTC()
	duration := int64(end.Sub(t.StartTime).Seconds())
	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET status=$2, end_time=$3, duration=$4, distance=$5
		WHERE id=$1
	`, id, StatusCompleted, end, duration, distanceKm)
	if err != nil {
		return Trip{}, profile.Profile{}, err
	}
	t.Status = StatusCompleted
	t.EndTime = &end
	t.Duration = duration
	t.Distance = distanceKm

	p, err := s.profiles.RecordTrip(ctx, t.UserID, t.Distance, t.WellnessScore)
	if err != nil {
		return Trip{}, profile.Profile{}, err
	}

	if _, err := s.badges.Evaluate(ctx, p); err != nil {
		// trip completion must not fail on award bookkeeping
		s.logger.Warn("badge evaluation failed", zap.String("user_id", t.UserID), zap.Error(err))
	}
	return t, p, nil
}

// Active returns the user's unfinished trip, if any.
func (s *Service) Active(ctx context.Context, userID string) (Trip, bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, start_time, end_time, distance, duration, wellness_score,
		       alertness_score, stress_level, drowsiness_events, stress_events, status, created_at
		FROM trips
		WHERE user_id=$1 AND status IN ('active','paused')
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trip{}, false, nil
	}
	if err != nil {
		return Trip{}, false, err
	}
	return t, true, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, start_time, end_time, distance, duration, wellness_score,
		       alertness_score, stress_level, drowsiness_events, stress_events, status, created_at
		FROM trips
		WHERE user_id=$1 AND status='completed'
		ORDER BY start_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// AddSnapshot records one wellness reading, rolls the trip's running
// scores and event counters forward, and broadcasts the reading to live
// subscribers.
func (s *Service) AddSnapshot(ctx context.Context, tripID string, input Snapshot) (Snapshot, error) {
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}
	input.TripID = tripID

	row := s.db.QueryRow(ctx, `
		INSERT INTO wellness_snapshots (trip_id, timestamp, heart_rate, alertness_score, stress_level, eye_closure_duration, head_position)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, input.TripID, input.Timestamp, input.HeartRate, input.AlertnessScore, input.StressLevel, input.EyeClosureDuration, input.HeadPosition)
	if err := row.Scan(&input.ID); err != nil {
		return Snapshot{}, err
	}

	drowsy := 0
	if input.AlertnessScore < drowsinessAlertnessFloor {
		drowsy = 1
	}
	stressed := 0
	if input.StressLevel > stressEventCeiling {
		stressed = 1
	}
	wellness := (input.AlertnessScore + (100 - input.StressLevel)) / 2

	_, err := s.db.Exec(ctx, `
		UPDATE trips
		SET alertness_score=$2, stress_level=$3, wellness_score=$4,
		    drowsiness_events = drowsiness_events + $5,
		    stress_events = stress_events + $6
		WHERE id=$1
	`, tripID, input.AlertnessScore, input.StressLevel, wellness, drowsy, stressed)
	if err != nil {
		return Snapshot{}, err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast(tripID, payload)
	}
	return input, nil
}

func (s *Service) Snapshots(ctx context.Context, tripID string) ([]Snapshot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, timestamp, heart_rate, alertness_score, stress_level, eye_closure_duration, head_position
		FROM wellness_snapshots
		WHERE trip_id=$1
		ORDER BY timestamp
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.TripID, &snap.Timestamp, &snap.HeartRate,
			&snap.AlertnessScore, &snap.StressLevel, &snap.EyeClosureDuration, &snap.HeadPosition); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

func scanTrip(row pgx.Row) (Trip, error) {
	var t Trip
	err := row.Scan(&t.ID, &t.UserID, &t.StartTime, &t.EndTime, &t.Distance, &t.Duration,
		&t.WellnessScore, &t.AlertnessScore, &t.StressLevel, &t.DrowsinessEvents,
		&t.StressEvents, &t.Status, &t.CreatedAt)
	if err != nil {
		return Trip{}, err
	}
	return t, nil
}
