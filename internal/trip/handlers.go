package trip

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		t, err := svc.Start(c.Context(), userID)
		if errors.Is(err, ErrTripInProgress) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		trips, err := svc.History(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if trips == nil {
			trips = []Trip{}
		}
		return c.JSON(trips)
	})

	r.Get("/active", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		t, found, err := svc.Active(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !found {
			return fiber.NewError(fiber.StatusNotFound, "no trip in progress")
		}
		return c.JSON(t)
	})

	r.Post("/:id/pause", authMiddleware, func(c *fiber.Ctx) error {
		t, err := svc.Pause(c.Context(), c.Params("id"))
		return respondTransition(c, t, err)
	})

	r.Post("/:id/resume", authMiddleware, func(c *fiber.Ctx) error {
		t, err := svc.Resume(c.Context(), c.Params("id"))
		return respondTransition(c, t, err)
	})

	r.Post("/:id/complete", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Distance float64 `json:"distance"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		t, p, err := svc.Complete(c.Context(), c.Params("id"), body.Distance)
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		if errors.Is(err, ErrInvalidTransition) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"trip": t, "profile": p})
	})

	r.Post("/:id/snapshots", authMiddleware, func(c *fiber.Ctx) error {
		var req Snapshot
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snap, err := svc.AddSnapshot(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(snap)
	})

	r.Get("/:id/snapshots", authMiddleware, func(c *fiber.Ctx) error {
		snapshots, err := svc.Snapshots(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if snapshots == nil {
			snapshots = []Snapshot{}
		}
		return c.JSON(snapshots)
	})
}

func respondTransition(c *fiber.Ctx, t Trip, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fiber.NewError(fiber.StatusNotFound, "trip not found")
	}
	if errors.Is(err, ErrInvalidTransition) {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(t)
}
