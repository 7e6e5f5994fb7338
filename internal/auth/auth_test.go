package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndValidateToken(t *testing.T) {
	svc := NewService("secret")

	token, err := svc.SignToken("user-1")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	userID, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("unexpected user id %q", userID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewService("secret-a").SignToken("user-1")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewService("secret-b").ValidateAccessToken(token); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := NewService("secret").ValidateAccessToken("not-a-token"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	svc := NewService("secret")
	token, err := svc.SignToken("user-1")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := fiber.New()
	app.Get("/protected", svc.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v %v", resp.StatusCode, err)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", NewService("secret").Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401")
	}
}

func TestMiddlewareRejectsInvalidClaims(t *testing.T) {
	old := parseClaimsFn
	defer func() { parseClaimsFn = old }()

	parseClaimsFn = func(_ string, claims jwt.Claims, _ jwt.Keyfunc, _ ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: claims, Valid: false}, nil
	}

	app := fiber.New()
	app.Get("/protected", NewService("secret").Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid claims")
	}
}

func TestMiddlewareRejectsParseError(t *testing.T) {
	old := parseClaimsFn
	defer func() { parseClaimsFn = old }()

	parseClaimsFn = func(_ string, _ jwt.Claims, _ jwt.Keyfunc, _ ...jwt.ParserOption) (*jwt.Token, error) {
		return nil, errors.New("boom")
	}

	app := fiber.New()
	app.Get("/protected", NewService("secret").Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for parse error")
	}
}

func TestMeRoute(t *testing.T) {
	svc := NewService("secret")
	token, err := svc.SignToken("user-42")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc.Middleware())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v %v", resp.StatusCode, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token")
	}
}

func TestBearerFromHeader(t *testing.T) {
	if bearerFromHeader("Bearer abc") != "abc" {
		t.Fatalf("expected token")
	}
	if bearerFromHeader("bearer abc") != "abc" {
		t.Fatalf("expected case-insensitive scheme")
	}
	if bearerFromHeader("Basic abc") != "" {
		t.Fatalf("expected empty for wrong scheme")
	}
	if bearerFromHeader("") != "" {
		t.Fatalf("expected empty for missing header")
	}
}
