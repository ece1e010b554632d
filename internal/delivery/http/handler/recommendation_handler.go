package handler

import (
	"errors"
	"fmt"

	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		v := parseQueryInt(c, "limit", -1)
		if v < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, nil)
		}
		limit = v
	}

	res, err := h.uc.GetRecommendations(c.Context(), userID, usecase.RecommendationParams{
		Position: c.Query("position"),
		Limit:    limit,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing position", nil, err)
	case errors.Is(err, usecase.ErrRecommendationLimit):
		msg := fmt.Sprintf("Limit must be between 1 and %d", usecase.MaxRecommendationLimit)
		return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, err)
	case errors.Is(err, usecase.ErrNoRequirementFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No matching job requirement", nil, err)
	case errors.Is(err, usecase.ErrRequirementSkillsEmpty):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job requirement has no skills", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
