package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/pkg/validator"
	"github.com/itinerary-microservice/internal/usecase"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

// PlanHandler serves itinerary planning requests.
type PlanHandler struct {
	plannerUC *usecase.PlannerUseCase
	logger    *zap.Logger
}

func NewPlanHandler(plannerUC *usecase.PlannerUseCase, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		plannerUC: plannerUC,
		logger:    logger,
	}
}

// PlanItinerary godoc
// @Summary Plan a walking itinerary
// @Description Builds an ordered sequence of stops for one city from start, end, interest tags and a duration class. Degrades to a minimal 3-stop plan when too few candidates are known for the city.
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body dto.PlanRequest true "Planning request"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/itineraries/plan [post]
func (h *PlanHandler) PlanItinerary(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	it, err := h.plannerUC.Plan(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertItinerary(it), &utils.Meta{
		Total: it.StopCount,
	})
}
