package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/service"
)

const userKey = "user"

// Authenticate resolves the bearer token to a user and stores it on the context.
func Authenticate(svc service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			user, err := svc.Authenticate(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, service.ErrUnauthenticated.Error())
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}
			for _, r := range roles {
				if user.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "role "+string(user.Role)+" is not authorized to access this resource")
		}
	}
}

func SetUser(c echo.Context, user *models.User) {
	c.Set(userKey, user)
}

func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userKey).(*models.User)
	return user
}

// ActorFrom returns the zero Actor when no user is authenticated.
func ActorFrom(c echo.Context) policy.Actor {
	user := CurrentUser(c)
	if user == nil {
		return policy.Actor{}
	}
	return policy.ActorOf(user)
}
