package trip

import (
	"errors"

	"github.com/auhide/trips-website/internal/routing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	validate := validator.New()

	r.Post("/international", authMiddleware, func(c *fiber.Ctx) error {
		var req InternationalTripRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, err := userFromLocals(c)
		if err != nil {
			return err
		}
		trip, err := svc.CreateInternationalTrip(c.Context(), userID, req)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Get("/international", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := userFromLocals(c)
		if err != nil {
			return err
		}
		trips, err := svc.ListInternationalTrips(c.Context(), userID)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(trips)
	})

	r.Delete("/international/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := userFromLocals(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteInternationalTrip(c.Context(), c.Params("id"), userID); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req TripRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, err := userFromLocals(c)
		if err != nil {
			return err
		}
		trip, err := svc.CreateTrip(c.Context(), userID, req)
		if err != nil {
			return statusError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := userFromLocals(c)
		if err != nil {
			return err
		}
		trips, err := svc.ListTrips(c.Context(), userID)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(trips)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := userFromLocals(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteTrip(c.Context(), c.Params("id"), userID); err != nil {
			return statusError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func userFromLocals(c *fiber.Ctx) (string, error) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "missing user")
	}
	return userID, nil
}

// statusError maps domain errors to HTTP statuses. Validation and routing
// messages go back verbatim so the user sees the offending value.
func statusError(err error) error {
	var unknownCountry *UnknownCountryError
	var unknownTown *UnknownTownError
	var sameLocation *SameLocationError

	switch {
	case errors.As(err, &unknownCountry), errors.As(err, &unknownTown), errors.As(err, &sameLocation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, routing.ErrRouteNotDrivable):
		return fiber.NewError(fiber.StatusBadRequest, "there is no drivable route between those towns")
	case errors.Is(err, ErrDuplicateTrip):
		return fiber.NewError(fiber.StatusConflict, "you already have this trip in your trips list")
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "trip not found")
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "trip belongs to another user")
	case errors.Is(err, routing.ErrProviderUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, "route provider unavailable, try again later")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
