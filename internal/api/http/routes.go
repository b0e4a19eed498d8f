package httpapi

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weatherdash/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, favorites weather.FavoritesStore) {
	v1 := app.Group("/api/v1")

	// Search flow: resolve a city by name, fetch and normalize its forecast.
	v1.Get("/weather", func(c *fiber.Ctx) error {
		var q cityQuery
		q.City = c.Query("city")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := service.FetchByCity(c.Context(), q.City)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(data)
	})

	// GPS flow: the caller supplies coordinates directly.
	v1.Get("/weather/coordinates", func(c *fiber.Ctx) error {
		q, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := service.FetchByCoordinates(c.Context(), q.Lat, q.Lon)
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(data)
	})

	// Initial-load flow: location inferred from the caller's IP.
	v1.Get("/weather/default", func(c *fiber.Ctx) error {
		data, err := service.FetchDefault(c.Context())
		if err != nil {
			return weatherError(err)
		}
		return c.JSON(data)
	})

	// Session snapshot the presentation layer polls.
	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		return c.JSON(service.Session().Snapshot())
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		cities, err := favorites.List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load saved locations")
		}
		return c.JSON(fiber.Map{"locations": cities})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req favoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cities, err := favorites.Add(req.City)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save location")
		}
		return c.JSON(fiber.Map{"locations": cities})
	})

	v1.Delete("/favorites/:city", func(c *fiber.Ctx) error {
		city, err := unescapeParam(c.Params("city"))
		if err != nil || city == "" {
			return fiber.NewError(fiber.StatusBadRequest, "city path parameter is required")
		}

		cities, err := favorites.Remove(city)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to remove location")
		}
		return c.JSON(fiber.Map{"locations": cities})
	})
}

// cityQuery holds query parameters for the search flow.
type cityQuery struct {
	City string `validate:"required"`
}

// coordsQuery holds query parameters for the GPS flow.
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

type favoriteRequest struct {
	City string `json:"city" validate:"required"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("invalid latitude")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("invalid longitude")
	}

	q.Lat = lat
	q.Lon = lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func unescapeParam(s string) (string, error) {
	return url.PathUnescape(s)
}

// weatherError maps pipeline failures onto HTTP statuses, exposing only the
// flow's user-facing message.
func weatherError(err error) error {
	msg := "failed to fetch weather data"
	var fe *weather.FlowError
	if errors.As(err, &fe) {
		msg = fe.Message
	}

	if errors.Is(err, weather.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return fiber.NewError(fiber.StatusBadGateway, msg)
}
