package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"go.uber.org/zap"
)

// NewErrorHandler renders every error as {message, error: true}. Outside production the
// response also carries the stack recorded by github.com/pkg/errors, when there is one.
func NewErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()
		cause := err

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
			if he.Internal != nil {
				cause = he.Internal
			}
		}

		if code >= http.StatusInternalServerError {
			zap.L().Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(cause),
			)
		}

		resp := dto.ErrorResponse{Message: msg, Error: true}
		if !production && code >= http.StatusInternalServerError {
			resp.Stack = fmt.Sprintf("%+v", cause)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}
