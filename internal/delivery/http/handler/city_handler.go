package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

// CityHandler exposes the static city table.
type CityHandler struct {
	cities *domain.CityIndex
	logger *zap.Logger
}

func NewCityHandler(cities *domain.CityIndex, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cities: cities,
		logger: logger,
	}
}

// ListCities godoc
// @Summary List cities known to the planner
// @Description Returns every city with a configured center coordinate.
// @Tags Cities
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CityResponse}
// @Router /api/v1/cities [get]
func (h *CityHandler) ListCities(c *fiber.Ctx) error {
	cities := dto.ConvertCities(h.cities.Cities())

	return utils.SendSuccess(c, cities, &utils.Meta{
		Total: len(cities),
	})
}
