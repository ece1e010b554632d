package handler

import (
	"errors"
	"io"
	"strconv"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"
	"hireflow/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// maxResumeBytes caps resume uploads at 10 MiB.
const maxResumeBytes = 10 << 20

type CandidateHandler struct {
	uc usecase.CandidateUsecase
}

type createCandidateRequest struct {
	Name            string   `json:"name"`
	AppliedPosition string   `json:"applied_position"`
	Skills          []string `json:"skills"`
}

type updateCandidateStatusRequest struct {
	Status string `json:"status"`
}

func NewCandidateHandler(uc usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id/status", h.UpdateStatus)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/resume", h.UploadResume)
	r.Get("/:id/resume", h.DownloadResume)
}

func (h *CandidateHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params := usecase.CandidateListParams{
		Status:   c.Query("status"),
		Position: c.Query("position"),
		Search:   c.Query("search"),
		Limit:    parseQueryInt(c, "limit", 0),
		Offset:   parseQueryInt(c, "offset", 0),
	}

	items, err := h.uc.List(c.Context(), userID, params)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateListResponse(items))
}

func (h *CandidateHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	item, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateResponse(item))
}

func (h *CandidateHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createCandidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateCandidateInput{
		Name:            req.Name,
		AppliedPosition: req.AppliedPosition,
		Skills:          req.Skills,
	})
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	ws.NotifyCandidatesUpdated("candidate_created", created.ID)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewCandidateResponse(created))
}

func (h *CandidateHandler) UpdateStatus(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	var req updateCandidateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), userID, id, req.Status)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	ws.NotifyCandidatesUpdated("candidate_status_changed", updated.ID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateResponse(updated))
}

func (h *CandidateHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapCandidateUsecaseError(err)
	}

	ws.NotifyCandidatesUpdated("candidate_deleted", id)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CandidateHandler) UploadResume(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	if fh.Size > maxResumeBytes {
		return middleware.NewAppError(fiber.StatusBadRequest, "File too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxResumeBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	if len(data) > maxResumeBytes {
		return middleware.NewAppError(fiber.StatusBadRequest, "File too large", nil, nil)
	}

	key, err := h.uc.AttachResume(c.Context(), userID, id, fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, map[string]any{"resume_key": key})
}

func (h *CandidateHandler) DownloadResume(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	data, contentType, err := h.uc.GetResume(c.Context(), userID, id)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(data)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapCandidateUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
