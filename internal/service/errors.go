package service

import (
	"errors"

	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists with that email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authorized, token failed")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrEmptyUpdate        = errors.New("no fields to update")
	ErrInvalidRole        = errors.New("invalid role")

	ErrPropertyNotFound = errors.New("property not found")
	ErrImageRequired    = errors.New("at least one image is required")
	ErrInvalidImage     = errors.New("invalid image upload")
	ErrInvalidWindow    = errors.New("available_to must be after available_from")

	ErrBookingNotFound   = errors.New("booking not found")
	ErrOwnProperty       = errors.New("you cannot book your own property")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrNotAvailable      = errors.New("property is not available for the selected dates")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("booking status transition is not allowed")

	ErrForbidden       = errors.New("not authorized to perform this action")
	ErrOperationFailed = errors.New("operation failed")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// NormalizePage clamps page and limit and returns the row offset.
func NormalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

// notFoundAs maps a missing row to the given sentinel and passes other errors through.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// writeFailed maps a write that matched no row to ErrOperationFailed.
func writeFailed(err error) error {
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return ErrOperationFailed
	}
	return err
}

func denied(err error) error {
	if errors.Is(err, policy.ErrDenied) {
		return ErrForbidden
	}
	return err
}
