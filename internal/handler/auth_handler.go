package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/middleware"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/service"
)

const forgotPasswordMessage = "If a user with that email exists, a password reset link has been sent"

type AuthHandler struct {
	auth  service.AuthService
	users service.UserService
}

func NewAuthHandler(auth service.AuthService, users service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// RegisterRoutes mounts /api/auth. limit guards the unauthenticated endpoints.
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authn, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", h.Register, limit)
	g.POST("/login", h.Login, limit)
	g.POST("/forgot-password", h.ForgotPassword, limit)
	g.POST("/reset-password", h.ResetPassword, limit)

	g.GET("/me", h.Me, authn)
	g.PUT("/update-profile", h.UpdateProfile, authn)
	g.PUT("/update-password", h.UpdatePassword, authn)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    dto.ToUserResponse(user),
		"token":   token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    dto.ToUserResponse(user),
		"token":   token,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, map[string]any{"user": dto.ToUserResponse(user)})
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	user, err := h.users.Update(c.Request().Context(), actor, actor.ID, models.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req dto.UpdatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	if err := h.auth.UpdatePassword(c.Request().Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": forgotPasswordMessage})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
}
