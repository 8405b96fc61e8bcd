package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/service"
)

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" id")
	}
	return uint(id), nil
}

// parseDate accepts ISO dates and the other layouts dateparse recognizes, in UTC.
func parseDate(field, raw string) (time.Time, error) {
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, field+" is not a valid date")
	}
	return t, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

// toHTTPError maps service errors to responses. Unknown errors are returned as-is so the
// central handler reports them as 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPropertyNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrIncorrectPassword):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyUpdate),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrOwnProperty),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrNotAvailable),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrOperationFailed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
