package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lot-pos/lot-api/internal/application/auth"
	"github.com/lot-pos/lot-api/internal/application/dto"
)

// AuthHandler maneja sign-up y sign-in (público).
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler construye el handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/authentication/sign-up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.SignUp(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "Credenciales"
// @Success      200   {object}  dto.AuthenticatedUserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/authentication/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.SignIn(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
