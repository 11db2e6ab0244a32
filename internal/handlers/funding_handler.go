package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/middleware"
	"github.com/bloodaid/backend/internal/services"
)

type FundingHandler struct {
	funding *services.FundingService
}

func NewFundingHandler(funding *services.FundingService) *FundingHandler {
	return &FundingHandler{funding: funding}
}

// CreateCheckout starts a hosted payment session. Unauthenticated on
// purpose: visitors may donate before signing in.
func (h *FundingHandler) CreateCheckout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	url, err := h.funding.InitiateCheckout(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "a positive donation amount is required"})
		}
		slog.Error("checkout initiation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to start payment session"})
	}

	return c.JSON(dto.CheckoutResponse{URL: url})
}

// RecordFunding persists a completed donation under the verified caller's
// email.
func (h *FundingHandler) RecordFunding(c *fiber.Ctx) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}

	var req dto.RecordFundingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	funding, err := h.funding.RecordFunding(principal.Email, &req)
	if err != nil {
		slog.Error("funding record failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to record funding"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.InsertResult{InsertedID: funding.ID})
}

// ListMyFunding returns the caller's funding history, newest first.
func (h *FundingHandler) ListMyFunding(c *fiber.Ctx) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}

	fundings, err := h.funding.ListByDonor(principal.Email)
	if err != nil {
		slog.Error("funding listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to list funding records"})
	}
	return c.JSON(fundings)
}
