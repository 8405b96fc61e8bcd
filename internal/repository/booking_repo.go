package repository

import (
	"context"

	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.BookingDetail, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.BookingDetail, error)
	ListByUser(ctx context.Context, userID uint) ([]models.BookingDetail, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.BookingDetail, error)
	UpdateStatus(ctx context.Context, bookingID uint, from, to models.BookingStatus) error
	Delete(ctx context.Context, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingDetailColumns = `b.id, b.property_id, b.user_id, b.start_date, b.end_date, b.total_price,
	b.status, b.message, b.created_at, b.updated_at,
	p.title AS property_title, p.owner_id, o.name AS owner_name,
	u.name AS renter_name, u.email AS renter_email`

func (r *bookingRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings AS b").
		Select(bookingDetailColumns).
		Joins("JOIN properties p ON p.id = b.property_id").
		Joins("JOIN users u ON u.id = b.user_id").
		Joins("JOIN users o ON o.id = p.owner_id")
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return errors.WithStack(r.db.WithContext(ctx).Omit("Property", "User").Create(booking).Error)
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.BookingDetail, error) {
	var detail models.BookingDetail
	if err := r.details(ctx).Where("b.id = ?", id).Take(&detail).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &detail, nil
}

func (r *bookingRepository) ListAll(ctx context.Context, limit, offset int) ([]models.BookingDetail, error) {
	var list []models.BookingDetail
	err := r.details(ctx).
		Order("b.created_at DESC, b.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]models.BookingDetail, error) {
	var list []models.BookingDetail
	err := r.details(ctx).
		Where("b.user_id = ?", userID).
		Order("b.start_date DESC, b.id DESC").
		Find(&list).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}

// ListByOwner returns bookings on the owner's properties, pending requests first.
func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.BookingDetail, error) {
	var list []models.BookingDetail
	err := r.details(ctx).
		Where("p.owner_id = ?", ownerID).
		Order("b.status = 'pending' DESC, b.start_date ASC, b.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}

// UpdateStatus moves a booking from one status to another only if it is still in the
// expected status. A concurrent change leaves the row untouched and returns ErrNoRowsAffected.
func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uint, from, to models.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return errors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
