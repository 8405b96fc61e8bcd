package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestRegister_Handler_Success(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error) {
			assert.Equal(t, models.RoleOwner, role)
			return &models.User{ID: 10, Name: name, Email: email, Role: role, Password: "hashed"}, "signed.token", nil
		},
	}

	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Olga","email":"olga@example.com","password":"secret1","role":"owner"}`), rec)

	require.NoError(t, NewAuthHandler(svc, &mockUserService{}).Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string           `json:"message"`
		User    dto.UserResponse `json:"user"`
		Token   string           `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Equal(t, "signed.token", resp.Token)
	assert.Equal(t, models.RoleOwner, resp.User.Role)
	assert.NotContains(t, rec.Body.String(), "hashed")
}

func TestRegister_Handler_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"admin role", `{"name":"Eve","email":"eve@example.com","password":"secret1","role":"admin"}`, nil, http.StatusBadRequest},
		{"short password", `{"name":"Eve","email":"eve@example.com","password":"123"}`, nil, http.StatusBadRequest},
		{"duplicate email", `{"name":"Eve","email":"eve@example.com","password":"secret1"}`, service.ErrEmailTaken, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthService{
				registerFn: func(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error) {
					return nil, "", tc.err
				},
			}

			e := newEcho()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", tc.body), httptest.NewRecorder())

			err := NewAuthHandler(svc, &mockUserService{}).Register(c)

			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tc.code, he.Code)
		})
	}
}

func TestLogin_Handler(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.User, string, error) {
			if password != "secret1" {
				return nil, "", service.ErrInvalidCredentials
			}
			return renter, "signed.token", nil
		},
	}
	h := NewAuthHandler(svc, &mockUserService{})

	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"ravi@example.com","password":"secret1"}`), rec)
	require.NoError(t, h.Login(c))
	assert.Contains(t, rec.Body.String(), "Login successful")

	c = e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"ravi@example.com","password":"wrong"}`), httptest.NewRecorder())
	he, ok := h.Login(c).(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestMe_Handler(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := asUser(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), rec), renter)

	require.NoError(t, NewAuthHandler(&mockAuthService{}, &mockUserService{}).Me(c))
	assert.Contains(t, rec.Body.String(), `"email":"ravi@example.com"`)
}

func TestUpdateProfile_Handler_UpdatesSelf(t *testing.T) {
	users := &mockUserService{
		updateFn: func(ctx context.Context, actor policy.Actor, id uint, patch models.UserPatch) (*models.User, error) {
			assert.Equal(t, renter.ID, id)
			assert.Equal(t, renter.ID, actor.ID)
			require.NotNil(t, patch.Name)
			assert.Nil(t, patch.Role)
			return &models.User{ID: id, Name: *patch.Name, Email: renter.Email, Role: renter.Role}, nil
		},
	}

	e := newEcho()
	rec := httptest.NewRecorder()
	c := asUser(e.NewContext(jsonRequest(http.MethodPut, "/api/auth/update-profile", `{"name":"Ravi K"}`), rec), renter)

	require.NoError(t, NewAuthHandler(&mockAuthService{}, users).UpdateProfile(c))
	assert.Contains(t, rec.Body.String(), "Ravi K")
}

func TestUpdatePassword_Handler_WrongCurrent(t *testing.T) {
	svc := &mockAuthService{
		updatePasswordFn: func(ctx context.Context, userID uint, current, next string) error {
			return service.ErrIncorrectPassword
		},
	}

	e := newEcho()
	c := asUser(e.NewContext(jsonRequest(http.MethodPut, "/api/auth/update-password",
		`{"currentPassword":"nope","newPassword":"secret2"}`), httptest.NewRecorder()), renter)

	he, ok := NewAuthHandler(svc, &mockUserService{}).UpdatePassword(c).(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestForgotPassword_Handler_SameAnswer(t *testing.T) {
	svc := &mockAuthService{
		forgotFn: func(ctx context.Context, email string) error { return nil },
	}
	h := NewAuthHandler(svc, &mockUserService{})

	for _, email := range []string{"ravi@example.com", "nobody@example.com"} {
		e := newEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/forgot-password", `{"email":"`+email+`"}`), rec)

		require.NoError(t, h.ForgotPassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), forgotPasswordMessage)
	}
}

func TestResetPassword_Handler(t *testing.T) {
	svc := &mockAuthService{
		resetFn: func(ctx context.Context, token, password string) error {
			if token != "good" {
				return service.ErrInvalidResetToken
			}
			return nil
		},
	}
	h := NewAuthHandler(svc, &mockUserService{})

	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/reset-password", `{"token":"good","password":"secret2"}`), rec)
	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c = e.NewContext(jsonRequest(http.MethodPost, "/api/auth/reset-password", `{"token":"bad","password":"secret2"}`), httptest.NewRecorder())
	he, ok := h.ResetPassword(c).(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestToHTTPError_PassesUnknownErrorsThrough(t *testing.T) {
	fault := errors.New("connection reset")
	assert.Same(t, fault, toHTTPError(fault))
}
