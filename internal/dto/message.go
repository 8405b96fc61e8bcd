package dto

import (
	"time"

	"github.com/mr-prasai2004/realestate/internal/models"
)

// BookingStatusMessage is the broker payload for booking.created and booking.status_changed.
// FromStatus is empty for creations.
type BookingStatusMessage struct {
	BookingID  uint                 `json:"booking_id"`
	PropertyID uint                 `json:"property_id"`
	FromStatus models.BookingStatus `json:"from_status,omitempty"`
	Status     models.BookingStatus `json:"status"`
	ActorID    uint                 `json:"actor_id"`
	OccurredAt time.Time            `json:"occurred_at"`
}
