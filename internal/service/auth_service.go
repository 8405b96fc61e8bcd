package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/mr-prasai2004/realestate/internal/auth"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/repository"
	"github.com/mr-prasai2004/realestate/pkg/mailer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, current, next string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *auth.TokenIssuer
	mail     mailer.Mailer
	resetURL string
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer, mail mailer.Mailer, resetURL string) AuthService {
	return &authService{users: users, tokens: tokens, mail: mail, resetURL: resetURL}
}

func (s *authService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error) {
	if role == "" {
		role = models.RoleRenter
	}
	if role == models.RoleAdmin || !role.Valid() {
		return nil, "", ErrInvalidRole
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", notFoundAs(err, ErrInvalidCredentials)
	}
	if !auth.CheckPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to the current user row. A valid token for a
// user that no longer exists is rejected.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUnauthenticated)
	}
	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}
	if !auth.CheckPassword(current, user.Password) {
		return ErrIncorrectPassword
	}
	return s.setPassword(ctx, user.ID, next)
}

// ForgotPassword mails a reset link when the address belongs to a user. Unknown
// addresses and delivery failures are not reported to the caller.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return err
	}

	link := s.resetURL + "?token=" + url.QueryEscape(token)
	body := fmt.Sprintf(`<p>Hello %s,</p><p>Use the link below to choose a new password. It expires shortly.</p><p><a href="%s">Reset password</a></p>`,
		user.Name, link)
	if err := s.mail.Send(ctx, user.Email, "Reset your password", body); err != nil {
		zap.L().Error("failed to send password reset mail", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	id, err := s.tokens.ValidateReset(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFoundAs(err, ErrInvalidResetToken)
	}
	return s.setPassword(ctx, id, password)
}

func (s *authService) setPassword(ctx context.Context, userID uint, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return writeFailed(s.users.Update(ctx, userID, map[string]any{"password": hash}))
}
