package dto

import (
	"time"

	"github.com/mr-prasai2004/realestate/internal/models"
)

type UserResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type PropertyResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PropertyType  string    `json:"property_type"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     float64   `json:"bathrooms"`
	SquareFeet    int       `json:"square_feet"`
	Price         float64   `json:"price"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zip_code"`
	Country       string    `json:"country"`
	Amenities     []string  `json:"amenities"`
	Images        []string  `json:"images"`
	AvailableFrom time.Time `json:"available_from"`
	AvailableTo   time.Time `json:"available_to"`
	OwnerID       uint      `json:"owner_id"`
	OwnerName     string    `json:"owner_name,omitempty"`
	OwnerEmail    string    `json:"owner_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BookingResponse struct {
	ID            uint                 `json:"id"`
	PropertyID    uint                 `json:"property_id"`
	PropertyTitle string               `json:"property_title"`
	UserID        uint                 `json:"user_id"`
	UserName      string               `json:"user_name"`
	UserEmail     string               `json:"user_email"`
	OwnerID       uint                 `json:"owner_id"`
	OwnerName     string               `json:"owner_name"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       time.Time            `json:"end_date"`
	TotalPrice    float64              `json:"total_price"`
	Status        models.BookingStatus `json:"status"`
	Message       string               `json:"message"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type BookingEventResponse struct {
	FromStatus models.BookingStatus `json:"from_status,omitempty"`
	Status     models.BookingStatus `json:"status"`
	ActorID    uint                 `json:"actor_id"`
	OccurredAt time.Time            `json:"occurred_at"`
}

type AvailabilityResponse struct {
	IsAvailable bool                 `json:"isAvailable"`
	Property    AvailabilityProperty `json:"property"`
}

type AvailabilityProperty struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	AvailableFrom time.Time `json:"availableFrom"`
	AvailableTo   time.Time `json:"availableTo"`
}

// Pagination describes a counted page of the public listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PageInfo describes an uncounted admin page.
type PageInfo struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponses(users []models.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = ToUserResponse(&users[i])
	}
	return resp
}

func ToPropertyResponse(p *models.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		PropertyType:  p.PropertyType,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		SquareFeet:    p.SquareFeet,
		Price:         p.Price,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Country:       p.Country,
		Amenities:     p.AmenityList(),
		Images:        p.ImageURLs(),
		AvailableFrom: p.AvailableFrom,
		AvailableTo:   p.AvailableTo,
		OwnerID:       p.OwnerID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Owner != nil {
		resp.OwnerName = p.Owner.Name
		resp.OwnerEmail = p.Owner.Email
	}
	return resp
}

func ToPropertyResponses(list []models.Property) []PropertyResponse {
	resp := make([]PropertyResponse, len(list))
	for i := range list {
		resp[i] = ToPropertyResponse(&list[i])
	}
	return resp
}

func ToBookingResponse(b *models.BookingDetail) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		PropertyTitle: b.PropertyTitle,
		UserID:        b.UserID,
		UserName:      b.RenterName,
		UserEmail:     b.RenterEmail,
		OwnerID:       b.OwnerID,
		OwnerName:     b.OwnerName,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		Message:       b.Message,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func ToBookingResponses(list []models.BookingDetail) []BookingResponse {
	resp := make([]BookingResponse, len(list))
	for i := range list {
		resp[i] = ToBookingResponse(&list[i])
	}
	return resp
}

func ToBookingEventResponses(events []models.BookingStatusEvent) []BookingEventResponse {
	resp := make([]BookingEventResponse, len(events))
	for i, e := range events {
		resp[i] = BookingEventResponse{
			FromStatus: e.FromStatus,
			Status:     e.Status,
			ActorID:    e.ActorID,
			OccurredAt: e.OccurredAt,
		}
	}
	return resp
}
