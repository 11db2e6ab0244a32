package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/middleware"
	"github.com/bloodaid/backend/internal/services"
)

type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create files a donation request; status starts pending no matter what the
// body says.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	request, err := h.requests.Create(&req)
	if err != nil {
		slog.Error("request creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to create donation request"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.InsertResult{InsertedID: request.ID})
}

func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	requests, err := h.requests.ListAll()
	if err != nil {
		slog.Error("request listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to list donation requests"})
	}
	return c.JSON(requests)
}

// Dashboard lists requests for the dashboard, filtered to one requester when
// an email query is present.
func (h *RequestHandler) Dashboard(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return h.ListAll(c)
	}

	requests, err := h.requests.ListByRequester(email)
	if err != nil {
		slog.Error("request listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to list donation requests"})
	}
	return c.JSON(requests)
}

func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request id"})
	}

	request, err := h.requests.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "donation request not found"})
		}
		slog.Error("request fetch failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch donation request"})
	}
	return c.JSON(request)
}

// UpdateStatus sets a request status from query params; any value is
// accepted, there is no transition validation.
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	idParam := c.Query("id")
	status := c.Query("status")
	if idParam == "" || status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "id and status are required"})
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request id"})
	}

	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}

	return h.respondMutation(c, h.requests.UpdateStatus(principal.Email, id, status), "failed to update request status")
}

func (h *RequestHandler) UpdateFields(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request id"})
	}

	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}

	var req dto.UpdateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	return h.respondMutation(c, h.requests.UpdateFields(principal.Email, id, &req), "failed to update donation request")
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request id"})
	}

	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}

	if err := h.requests.Delete(principal.Email, id); err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "donation request not found"})
		}
		if errors.Is(err, services.ErrRequestForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "forbidden access"})
		}
		slog.Error("request deletion failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to delete donation request"})
	}

	return c.JSON(dto.DeleteResult{DeletedCount: 1})
}

// MyRequests pages through the caller's own requests.
func (h *RequestHandler) MyRequests(c *fiber.Ctx) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}
	return h.paged(c, principal.Email)
}

// AllRequests pages through every request.
func (h *RequestHandler) AllRequests(c *fiber.Ctx) error {
	return h.paged(c, "")
}

func (h *RequestHandler) paged(c *fiber.Ctx, email string) error {
	size := c.QueryInt("size", 10)
	page := c.QueryInt("page", 0)
	if size < 1 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	requests, total, err := h.requests.ListPaged(email, size, page)
	if err != nil {
		slog.Error("paged request listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to list donation requests"})
	}

	return c.JSON(dto.PagedRequestsResponse{Data: requests, Total: total})
}

func (h *RequestHandler) respondMutation(c *fiber.Ctx, err error, failMsg string) error {
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "donation request not found"})
		}
		if errors.Is(err, services.ErrRequestForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "forbidden access"})
		}
		slog.Error(failMsg, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: failMsg})
	}
	return c.JSON(dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1})
}
