package appstate

import (
	"context"

	"github.com/shkshreyas/Meridian/internal/badge"
	"github.com/shkshreyas/Meridian/internal/profile"
)

// Backend is the remote wellness service as seen by the store: identity
// resolution plus the read endpoints the refresh operations pull from.
type Backend interface {
	// CurrentUser resolves the authenticated identity. ok is false when
	// the viewer is unauthenticated; err reports transport failure only.
	CurrentUser(ctx context.Context) (id string, ok bool, err error)

	// FetchProfile looks a profile up by id. found is false when no such
	// row exists.
	FetchProfile(ctx context.Context, id string) (p profile.Profile, found bool, err error)

	// FetchBadgeCatalog returns every badge ordered by creation time
	// ascending.
	FetchBadgeCatalog(ctx context.Context) ([]badge.Badge, error)

	// FetchUserBadges returns the badges earned by userID, each
	// optionally carrying its denormalized catalog entry.
	FetchUserBadges(ctx context.Context, userID string) ([]badge.UserBadge, error)
}
