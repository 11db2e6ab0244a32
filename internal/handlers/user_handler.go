package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/bloodaid/backend/internal/dto"
	"github.com/bloodaid/backend/internal/middleware"
	"github.com/bloodaid/backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a user with role and status forced server-side.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "email is required"})
	}

	user, err := h.users.Register(&req)
	if err != nil {
		slog.Error("user registration failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to register user"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.InsertResult{InsertedID: user.ID})
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.users.GetAll()
	if err != nil {
		slog.Error("user listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to list users"})
	}
	return c.JSON(users)
}

func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(c.Params("email"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
		}
		slog.Error("user fetch failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to fetch user"})
	}
	return c.JSON(user)
}

// GetRole serves the role-lookup use of the user record.
func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	return h.GetByEmail(c)
}

func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	email := c.Query("email")
	status := c.Query("status")
	if email == "" || status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "email and status are required"})
	}
	return h.respondUpdate(c, h.users.UpdateStatus(email, status), "failed to update user status")
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	email := c.Query("email")
	role := c.Query("role")
	if email == "" || role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "email and role are required"})
	}
	return h.respondUpdate(c, h.users.UpdateRole(email, role), "failed to update user role")
}

// UpdateProfile lets the authenticated user edit their own record only.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "unauthorized access"})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid request body"})
	}

	err = h.users.UpdateProfile(principal.Email, c.Params("email"), &req)
	if errors.Is(err, services.ErrProfileForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "forbidden access"})
	}
	return h.respondUpdate(c, err, "failed to update profile")
}

// SearchDonors filters active donors by optional blood group, district and
// upazila query params.
func (h *UserHandler) SearchDonors(c *fiber.Ctx) error {
	donors, err := h.users.SearchDonors(c.Query("bloodGroup"), c.Query("district"), c.Query("upazila"))
	if err != nil {
		slog.Error("donor search failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "failed to search donors"})
	}
	return c.JSON(donors)
}

func (h *UserHandler) respondUpdate(c *fiber.Ctx, err error, failMsg string) error {
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
		}
		slog.Error(failMsg, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: failMsg})
	}
	return c.JSON(dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1})
}
