package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/middleware"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/spf13/cast"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	g := e.Group("/api/bookings", authn)
	g.GET("", h.ListBookings, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/property-bookings", h.ListPropertyBookings, middleware.RequireRoles(models.RoleOwner, models.RoleAdmin))
	g.POST("", h.CreateBooking)
	g.GET("/:id", h.GetBooking)
	g.PUT("/:id/status", h.UpdateBookingStatus)
	g.DELETE("/:id", h.DeleteBooking)
	g.GET("/:id/history", h.GetBookingHistory)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	page := cast.ToInt(c.QueryParam("page"))
	limit := cast.ToInt(c.QueryParam("limit"))

	list, hasMore, err := h.svc.ListAll(c.Request().Context(), middleware.ActorFrom(c), page, limit)
	if err != nil {
		return toHTTPError(err)
	}

	page, limit, _ = service.NormalizePage(page, limit)
	return c.JSON(http.StatusOK, map[string]any{
		"bookings":   dto.ToBookingResponses(list),
		"pagination": dto.PageInfo{Page: page, Limit: limit, HasMore: hasMore},
	})
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	list, err := h.svc.ListMine(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"bookings": dto.ToBookingResponses(list)})
}

func (h *BookingHandler) ListPropertyBookings(c echo.Context) error {
	list, err := h.svc.ListOwned(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"bookings": dto.ToBookingResponses(list)})
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), middleware.ActorFrom(c), req.PropertyID, start, end, req.Message)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Booking request created successfully",
		"booking": dto.ToBookingResponse(booking),
	})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"booking": dto.ToBookingResponse(booking)})
}

func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.UpdateStatus(c.Request().Context(), middleware.ActorFrom(c), id, req.Status)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Booking %s successfully", booking.Status),
		"booking": dto.ToBookingResponse(booking),
	})
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteBooking(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Booking deleted successfully"})
}

func (h *BookingHandler) GetBookingHistory(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	events, err := h.svc.History(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"events": dto.ToBookingEventResponses(events)})
}
