package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers_Handler(t *testing.T) {
	svc := &mockUserService{
		listFn: func(ctx context.Context, actor policy.Actor, page, limit int) ([]models.User, bool, error) {
			assert.True(t, actor.IsAdmin())
			assert.Equal(t, 0, page)
			return []models.User{*admin, *owner, *renter}, false, nil
		},
	}

	e := newEcho()
	rec := httptest.NewRecorder()
	c := asUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users", nil), rec), admin)

	require.NoError(t, NewUserHandler(svc).ListUsers(c))

	var resp struct {
		Users      []dto.UserResponse `json:"users"`
		Pagination dto.PageInfo       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 3)
	assert.Equal(t, dto.PageInfo{Page: 1, Limit: 10, HasMore: false}, resp.Pagination)
}

func TestGetUser_Handler(t *testing.T) {
	svc := &mockUserService{
		getFn: func(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
			if actor.ID != id && !actor.IsAdmin() {
				return nil, service.ErrForbidden
			}
			return owner, nil
		},
	}

	e := newEcho()
	c := asUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users/10", nil), httptest.NewRecorder()), renter)
	c.SetParamNames("id")
	c.SetParamValues("10")
	he, ok := NewUserHandler(svc).GetUser(c).(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	rec := httptest.NewRecorder()
	c = asUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users/10", nil), rec), admin)
	c.SetParamNames("id")
	c.SetParamValues("10")
	require.NoError(t, NewUserHandler(svc).GetUser(c))
	assert.Contains(t, rec.Body.String(), "olga@example.com")
}

func TestGetProfile_Handler(t *testing.T) {
	svc := &mockUserService{
		getFn: func(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
			assert.Equal(t, renter.ID, id)
			return renter, nil
		},
	}

	e := newEcho()
	rec := httptest.NewRecorder()
	c := asUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil), rec), renter)

	require.NoError(t, NewUserHandler(svc).GetProfile(c))
	assert.Contains(t, rec.Body.String(), "Ravi")
}

func TestUpdateUser_Handler_RoleChange(t *testing.T) {
	svc := &mockUserService{
		updateFn: func(ctx context.Context, actor policy.Actor, id uint, patch models.UserPatch) (*models.User, error) {
			require.NotNil(t, patch.Role)
			if !actor.IsAdmin() {
				return nil, service.ErrForbidden
			}
			u := *renter
			u.Role = *patch.Role
			return &u, nil
		},
	}

	for user, code := range map[*models.User]int{admin: http.StatusOK, renter: http.StatusForbidden} {
		e := newEcho()
		rec := httptest.NewRecorder()
		c := asUser(e.NewContext(jsonRequest(http.MethodPut, "/api/users/20", `{"role":"owner"}`), rec), user)
		c.SetParamNames("id")
		c.SetParamValues("20")

		err := NewUserHandler(svc).UpdateUser(c)

		if code == http.StatusOK {
			require.NoError(t, err)
			assert.Contains(t, rec.Body.String(), `"role":"owner"`)
			continue
		}
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, code, he.Code)
	}
}

func TestUpdateUser_Handler_InvalidRole(t *testing.T) {
	e := newEcho()
	c := asUser(e.NewContext(jsonRequest(http.MethodPut, "/api/users/20", `{"role":"superuser"}`), httptest.NewRecorder()), admin)
	c.SetParamNames("id")
	c.SetParamValues("20")

	he, ok := NewUserHandler(&mockUserService{}).UpdateUser(c).(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteUser_Handler(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(ctx context.Context, actor policy.Actor, id uint) error {
			if id == 404 {
				return service.ErrUserNotFound
			}
			return nil
		},
	}

	e := newEcho()
	rec := httptest.NewRecorder()
	c := asUser(e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/users/20", nil), rec), admin)
	c.SetParamNames("id")
	c.SetParamValues("20")
	require.NoError(t, NewUserHandler(svc).DeleteUser(c))
	assert.Contains(t, rec.Body.String(), "User deleted successfully")

	c = asUser(e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/users/404", nil), httptest.NewRecorder()), admin)
	c.SetParamNames("id")
	c.SetParamValues("404")
	he, ok := NewUserHandler(svc).DeleteUser(c).(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
