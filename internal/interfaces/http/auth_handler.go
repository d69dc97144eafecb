package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turbocafe/turbocafe-api/internal/application/auth"
	"github.com/turbocafe/turbocafe-api/internal/application/dto"
)

// AuthHandler handles registration, login and the own-profile endpoints.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account data"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profile godoc
// @Summary      Get own profile
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "authentication required"})
	}
	out, err := h.uc.Profile(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Fields to change"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "authentication required"})
	}
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.UpdateProfile(c.Context(), actor.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
