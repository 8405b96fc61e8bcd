package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/middleware"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/spf13/cast"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	g := e.Group("/api/users", authn)
	g.GET("", h.ListUsers, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/:id", h.GetUser)
	g.PUT("/:id", h.UpdateUser)
	g.DELETE("/:id", h.DeleteUser)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	limit := cast.ToInt(c.QueryParam("limit"))

	users, hasMore, err := h.svc.List(c.Request().Context(), middleware.ActorFrom(c), page, limit)
	if err != nil {
		return toHTTPError(err)
	}

	page, limit, _ = service.NormalizePage(page, limit)
	return c.JSON(http.StatusOK, map[string]any{
		"users":      dto.ToUserResponses(users),
		"pagination": dto.PageInfo{Page: page, Limit: limit, HasMore: hasMore},
	})
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	user, err := h.svc.Get(c.Request().Context(), actor, actor.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": dto.ToUserResponse(user)})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	user, err := h.svc.Update(c.Request().Context(), actor, actor.ID, models.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    dto.ToUserResponse(user),
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	user, err := h.svc.Get(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": dto.ToUserResponse(user)})
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := models.UserPatch{Name: req.Name, Email: req.Email, Role: req.Role}
	user, err := h.svc.Update(c.Request().Context(), middleware.ActorFrom(c), id, patch)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    dto.ToUserResponse(user),
	})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "user")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
