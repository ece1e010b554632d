package handler

import (
	"errors"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequirementHandler struct {
	uc usecase.RequirementUsecase
}

type createRequirementRequest struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

func NewRequirementHandler(uc usecase.RequirementUsecase) *RequirementHandler {
	return &RequirementHandler{uc: uc}
}

func (h *RequirementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
}

func (h *RequirementHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapRequirementUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequirementListResponse(items))
}

func (h *RequirementHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createRequirementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateRequirementInput{
		Title:  req.Title,
		Skills: req.Skills,
	})
	if err != nil {
		return mapRequirementUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewRequirementResponse(created))
}

func mapRequirementUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Title and skills are required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
