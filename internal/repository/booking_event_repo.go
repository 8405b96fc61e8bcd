package repository

import (
	"context"

	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingEventRepository interface {
	Record(ctx context.Context, event *models.BookingStatusEvent) error
	ListByBooking(ctx context.Context, bookingID uint) ([]models.BookingStatusEvent, error)
}

type bookingEventRepository struct {
	db *gorm.DB
}

func NewBookingEventRepository(db *gorm.DB) BookingEventRepository {
	return &bookingEventRepository{db: db}
}

// Record inserts the event unless one with the same key is already stored.
func (r *bookingEventRepository) Record(ctx context.Context, event *models.BookingStatusEvent) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_key"}},
			DoNothing: true,
		}).
		Create(event).Error
	return errors.WithStack(err)
}

func (r *bookingEventRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.BookingStatusEvent, error) {
	var events []models.BookingStatusEvent
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("occurred_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return events, nil
}
