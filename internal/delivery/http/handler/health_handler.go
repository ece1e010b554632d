package handler

import (
	"hireflow/internal/database"
	"hireflow/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Live)
	r.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", nil)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
