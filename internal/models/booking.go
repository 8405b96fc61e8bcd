package models

import (
	"math"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	PropertyID uint          `gorm:"not null;index" json:"property_id"`
	UserID     uint          `gorm:"not null;index" json:"user_id"`
	StartDate  time.Time     `gorm:"not null" json:"start_date"`
	EndDate    time.Time     `gorm:"not null" json:"end_date"`
	TotalPrice float64       `gorm:"not null" json:"total_price"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message    string        `gorm:"type:text" json:"message"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

const day = 24 * time.Hour

// BookedDays is the number of started days between start and end.
func BookedDays(start, end time.Time) int {
	return int(math.Ceil(float64(end.Sub(start)) / float64(day)))
}

// TotalPrice is the per-day price multiplied by the number of started days.
func TotalPrice(pricePerDay float64, start, end time.Time) float64 {
	return pricePerDay * float64(BookedDays(start, end))
}

// BookingDetail is a booking joined with its property and both parties.
type BookingDetail struct {
	ID            uint          `json:"id"`
	PropertyID    uint          `json:"property_id"`
	UserID        uint          `json:"user_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	Message       string        `json:"message"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	PropertyTitle string        `json:"property_title"`
	OwnerID       uint          `json:"owner_id"`
	OwnerName     string        `json:"owner_name"`
	RenterName    string        `json:"user_name"`
	RenterEmail   string        `json:"user_email"`
}

// BookingStatusEvent records one lifecycle step of a booking. EventKey is the id of the
// broker message that produced the row, so redelivered messages are stored once.
type BookingStatusEvent struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	EventKey   string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	BookingID  uint          `gorm:"not null;index" json:"booking_id"`
	FromStatus BookingStatus `gorm:"type:varchar(20)" json:"from_status,omitempty"`
	Status     BookingStatus `gorm:"type:varchar(20);not null" json:"status"`
	ActorID    uint          `gorm:"not null" json:"actor_id"`
	OccurredAt time.Time     `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
