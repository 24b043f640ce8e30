package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/auth"
	"github.com/spec-kit/lead-intake/internal/service"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and the current principal.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Company:  req.Company,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessMessage("User registered successfully", authResponse(result)))
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.auth.Login(c.UserContext(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(authResponse(result)))
}

// Me GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	return c.JSON(dto.Success(fiber.Map{"user": principal.User}))
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{User: result.User, Token: result.Token, ExpiresAt: result.ExpiresAt}
}
