package appstate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shkshreyas/Meridian/internal/badge"
	"github.com/shkshreyas/Meridian/internal/profile"
	"github.com/shkshreyas/Meridian/internal/trip"
)

// refreshOutcome classifies what a refresh did to local state. Refreshes
// never fail from the caller's point of view; failures are logged and
// prior state is kept (last known good).
type refreshOutcome int

const (
	outcomeUnchanged refreshOutcome = iota
	outcomeReplaced
	outcomeFailed
)

// Store holds the current user's wellness state: profile, in-progress
// trip, the badge catalog and the earned-badge set. One Store is built at
// process start and handed to every consumer; reads and writes are safe
// from any goroutine. Refreshes replace collections wholesale, never
// merge. In-flight refreshes are not cancelled by newer ones; the later
// completion wins.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu          sync.RWMutex
	profile     *profile.Profile
	currentTrip *trip.Trip
	badges      []badge.Badge
	userBadges  []badge.UserBadge
	loading     bool
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		loading: true,
	}
}

// Initialize runs the profile and badge refreshes concurrently and waits
// for both. Loading settles to false regardless of either outcome.
func (s *Store) Initialize(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.RefreshProfile(ctx)
	}()
	go func() {
		defer wg.Done()
		s.RefreshBadges(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// RefreshProfile pulls the current user's profile and replaces local
// state wholesale. No identity, a missing row, and transport failure all
// leave the prior value in place; none surface to the caller.
func (s *Store) RefreshProfile(ctx context.Context) {
	switch s.refreshProfile(ctx) {
	case outcomeReplaced:
		s.logger.Debug("profile refreshed")
	case outcomeUnchanged:
		s.logger.Debug("profile refresh left state unchanged")
	}
}

func (s *Store) refreshProfile(ctx context.Context) refreshOutcome {
	userID, ok, err := s.backend.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("identity lookup failed", zap.Error(err))
		return outcomeFailed
	}
	if !ok {
		return outcomeUnchanged
	}

	p, found, err := s.backend.FetchProfile(ctx, userID)
	if err != nil {
		s.logger.Warn("profile fetch failed", zap.String("user_id", userID), zap.Error(err))
		return outcomeFailed
	}
	if !found {
		return outcomeUnchanged
	}

	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()
	return outcomeReplaced
}

// RefreshBadges pulls the badge catalog and the current user's earned
// set. The two collections are fetched and replaced independently, not
// transactionally, so they can be momentarily out of sync with each
// other.
func (s *Store) RefreshBadges(ctx context.Context) {
	if s.refreshBadges(ctx) == outcomeReplaced {
		s.logger.Debug("badges refreshed")
	}
}

func (s *Store) refreshBadges(ctx context.Context) refreshOutcome {
	outcome := outcomeUnchanged

	catalog, err := s.backend.FetchBadgeCatalog(ctx)
	if err != nil {
		s.logger.Warn("badge catalog fetch failed", zap.Error(err))
		outcome = outcomeFailed
	} else {
		s.mu.Lock()
		s.badges = catalog
		s.mu.Unlock()
		outcome = outcomeReplaced
	}

	userID, ok, err := s.backend.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("identity lookup failed", zap.Error(err))
		return outcomeFailed
	}
	if !ok {
		return outcome
	}

	earned, err := s.backend.FetchUserBadges(ctx, userID)
	if err != nil {
		s.logger.Warn("user badge fetch failed", zap.String("user_id", userID), zap.Error(err))
		return outcomeFailed
	}

	s.mu.Lock()
	s.userBadges = earned
	s.mu.Unlock()
	return outcomeReplaced
}

// SetProfile replaces the local profile with a known-fresh value, e.g.
// the aggregates returned by completing a trip.
func (s *Store) SetProfile(p profile.Profile) {
	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()
}

func (s *Store) SetCurrentTrip(t trip.Trip) {
	s.mu.Lock()
	s.currentTrip = &t
	s.mu.Unlock()
}

// ClearCurrentTrip drops the current trip, used when monitoring stops.
func (s *Store) ClearCurrentTrip() {
	s.mu.Lock()
	s.currentTrip = nil
	s.mu.Unlock()
}

func (s *Store) Profile() (profile.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return profile.Profile{}, false
	}
	return *s.profile, true
}

func (s *Store) CurrentTrip() (trip.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentTrip == nil {
		return trip.Trip{}, false
	}
	return *s.currentTrip, true
}

func (s *Store) Badges() []badge.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]badge.Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

func (s *Store) UserBadges() []badge.UserBadge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]badge.UserBadge, len(s.userBadges))
	copy(out, s.userBadges)
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// EarnedBadges returns the catalog entries the current user has earned,
// in catalog order. Recomputed on every call; badges and userBadges move
// independently so this view is never cached.
func (s *Store) EarnedBadges() []badge.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	earned := make(map[string]struct{}, len(s.userBadges))
	for _, ub := range s.userBadges {
		earned[ub.BadgeID] = struct{}{}
	}

	var out []badge.Badge
	for _, b := range s.badges {
		if _, ok := earned[b.ID]; ok {
			out = append(out, b)
		}
	}
	return out
}

// LockedBadges returns the catalog entries the current user has not yet
// earned, in catalog order.
func (s *Store) LockedBadges() []badge.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	earned := make(map[string]struct{}, len(s.userBadges))
	for _, ub := range s.userBadges {
		earned[ub.BadgeID] = struct{}{}
	}

	var out []badge.Badge
	for _, b := range s.badges {
		if _, ok := earned[b.ID]; !ok {
			out = append(out, b)
		}
	}
	return out
}
