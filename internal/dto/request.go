package dto

import "github.com/mr-prasai2004/realestate/internal/models"

type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=6,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=owner renter guest"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UpdateUserRequest struct {
	Name  *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string      `json:"email" validate:"omitempty,email,max=255"`
	Role  *models.Role `json:"role" validate:"omitempty,oneof=admin owner renter guest"`
}

// Dates are accepted in any layout dateparse understands.
type CreateBookingRequest struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Message    string `json:"message" validate:"max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required"`
}

type CheckAvailabilityRequest struct {
	PropertyID uint   `json:"propertyId" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
}

// PropertyForm holds the decoded text fields of a multipart property create.
type PropertyForm struct {
	Title         string   `validate:"required,max=255"`
	Description   string   `validate:"required"`
	PropertyType  string   `validate:"max=50"`
	Bedrooms      int      `validate:"gte=0"`
	Bathrooms     float64  `validate:"gte=0"`
	SquareFeet    int      `validate:"required,gt=0"`
	Price         float64  `validate:"required,gt=0"`
	Address       string   `validate:"required,max=255"`
	City          string   `validate:"required,max=100"`
	State         string   `validate:"max=100"`
	ZipCode       string   `validate:"max=20"`
	Country       string   `validate:"max=100"`
	Amenities     []string `validate:"dive,max=100"`
	AvailableFrom string   `validate:"required"`
	AvailableTo   string   `validate:"required"`
}
