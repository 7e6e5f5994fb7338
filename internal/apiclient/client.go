// Package apiclient is a thin HTTP client for the Meridian API. It
// implements appstate.Backend so the state store can be fed from a
// remote server, and is used by the dashboard command.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shkshreyas/Meridian/internal/badge"
	"github.com/shkshreyas/Meridian/internal/profile"
	"github.com/shkshreyas/Meridian/internal/trip"
)

// Client calls the Meridian API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the API at baseURL authenticating with the
// given access token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

// CurrentUser resolves the token to a user id. An unauthorized
// response means no identity rather than an error.
func (c *Client) CurrentUser(ctx context.Context) (string, bool, error) {
	var body struct {
		UserID string `json:"user_id"`
	}
	status, err := c.get(ctx, "/auth/me", &body)
	if err != nil {
		return "", false, err
	}
	switch status {
	case http.StatusOK:
		return body.UserID, true, nil
	case http.StatusUnauthorized:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("auth/me: unexpected status %d", status)
	}
}

// FetchProfile loads the authenticated user's profile. A not-found
// response reports found=false.
func (c *Client) FetchProfile(ctx context.Context, _ string) (profile.Profile, bool, error) {
	var p profile.Profile
	status, err := c.get(ctx, "/profiles/me", &p)
	if err != nil {
		return profile.Profile{}, false, err
	}
	switch status {
	case http.StatusOK:
		return p, true, nil
	case http.StatusNotFound:
		return profile.Profile{}, false, nil
	default:
		return profile.Profile{}, false, fmt.Errorf("profiles/me: unexpected status %d", status)
	}
}

// FetchBadgeCatalog loads the full badge catalog.
func (c *Client) FetchBadgeCatalog(ctx context.Context) ([]badge.Badge, error) {
	var catalog []badge.Badge
	status, err := c.get(ctx, "/badges/", &catalog)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("badges: unexpected status %d", status)
	}
	return catalog, nil
}

// FetchUserBadges loads the badges the authenticated user has earned.
func (c *Client) FetchUserBadges(ctx context.Context, _ string) ([]badge.UserBadge, error) {
	var earned []badge.UserBadge
	status, err := c.get(ctx, "/badges/mine", &earned)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("badges/mine: unexpected status %d", status)
	}
	return earned, nil
}

// ActiveTrip loads the user's in-progress trip, if any.
func (c *Client) ActiveTrip(ctx context.Context) (trip.Trip, bool, error) {
	var tr trip.Trip
	status, err := c.get(ctx, "/trips/active", &tr)
	if err != nil {
		return trip.Trip{}, false, err
	}
	switch status {
	case http.StatusOK:
		return tr, true, nil
	case http.StatusNotFound:
		return trip.Trip{}, false, nil
	default:
		return trip.Trip{}, false, fmt.Errorf("trips/active: unexpected status %d", status)
	}
}
