package badge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"github.com/shkshreyas/Meridian/internal/profile"
)

func catalogRows(createdAt time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "description", "icon", "category", "requirement_value", "created_at"}).
		AddRow("b1", "First Journey", "Complete your first trip", "map", CategoryTrips, 1.0, createdAt).
		AddRow("b2", "Road Warrior", "Drive 1000 km", "road", CategoryDistance, 1000.0, createdAt.Add(time.Minute)).
		AddRow("b3", "Zen Driver", "Hold a 90 average wellness score", "heart", CategoryWellness, 90.0, createdAt.Add(2*time.Minute))
}

func TestCatalogOrdered(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description, icon, category, requirement_value, created_at`).
		WillReturnRows(catalogRows(time.Now()))

	svc := NewService(mock)
	badges, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(badges) != 3 || badges[0].ID != "b1" || badges[2].ID != "b3" {
		t.Fatalf("unexpected catalog %+v", badges)
	}
}

func TestUserBadgesJoined(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()

	mock.ExpectQuery(`SELECT id, user_id, badge_id, earned_at`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "badge_id", "earned_at"}).
			AddRow("ub1", "u1", "b1", now).
			AddRow("ub2", "u1", "b-gone", now))

	mock.ExpectQuery(`SELECT id, name, description, icon, category, requirement_value, created_at`).
		WithArgs([]string{"b1", "b-gone"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "icon", "category", "requirement_value", "created_at"}).
			AddRow("b1", "First Journey", "Complete your first trip", "map", CategoryTrips, 1.0, now))

	svc := NewService(mock)
	earned, err := svc.UserBadges(context.Background(), "u1")
	if err != nil {
		t.Fatalf("user badges: %v", err)
	}
	if len(earned) != 2 {
		t.Fatalf("expected 2 user badges, got %d", len(earned))
	}
	if earned[0].Badge == nil || earned[0].Badge.Name != "First Journey" {
		t.Fatalf("expected joined badge, got %+v", earned[0].Badge)
	}
	if earned[1].Badge != nil {
		t.Fatalf("expected nil badge for dangling reference")
	}
}

func TestAwardIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs(pgxmock.AnyArg(), "u1", "b1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs(pgxmock.AnyArg(), "u1", "b1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	svc := NewService(mock)
	if err := svc.Award(context.Background(), "u1", "b1"); err != nil {
		t.Fatalf("award: %v", err)
	}
	if err := svc.Award(context.Background(), "u1", "b1"); err != nil {
		t.Fatalf("second award: %v", err)
	}
}

func TestEvaluateAwardsMetThresholds(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description, icon, category, requirement_value, created_at`).
		WillReturnRows(catalogRows(time.Now()))

	// trips and distance thresholds met, wellness not
	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs(pgxmock.AnyArg(), "u1", "b1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs(pgxmock.AnyArg(), "u1", "b2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock)
	met, err := svc.Evaluate(context.Background(), profile.Profile{
		ID:                   "u1",
		TotalTrips:           5,
		TotalDistance:        1200,
		AverageWellnessScore: 75,
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(met) != 2 || met[0].ID != "b1" || met[1].ID != "b2" {
		t.Fatalf("unexpected met badges %+v", met)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEvaluateCatalogError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description`).
		WillReturnError(errors.New("connection refused"))

	svc := NewService(mock)
	if _, err := svc.Evaluate(context.Background(), profile.Profile{ID: "u1"}); err == nil {
		t.Fatalf("expected error")
	}
}
