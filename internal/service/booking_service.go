package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/repository"
	"github.com/mr-prasai2004/realestate/pkg/rabbitmq"
	"go.uber.org/zap"
)

// Publisher is satisfied by *rabbitmq.Publisher.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor policy.Actor, propertyID uint, start, end time.Time, message string) (*models.BookingDetail, error)
	GetBooking(ctx context.Context, actor policy.Actor, id uint) (*models.BookingDetail, error)
	ListAll(ctx context.Context, actor policy.Actor, page, limit int) ([]models.BookingDetail, bool, error)
	ListMine(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error)
	ListOwned(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error)
	UpdateStatus(ctx context.Context, actor policy.Actor, id uint, status models.BookingStatus) (*models.BookingDetail, error)
	DeleteBooking(ctx context.Context, actor policy.Actor, id uint) error
	History(ctx context.Context, actor policy.Actor, id uint) ([]models.BookingStatusEvent, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	eventRepo    repository.BookingEventRepository
	publisher    Publisher
	now          func() time.Time
}

// NewBookingService wires the ledger. publisher may be nil, in which case lifecycle
// messages are not emitted.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	eventRepo repository.BookingEventRepository,
	publisher Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		eventRepo:    eventRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// CreateBooking records a pending request for the property. The price is fixed here from
// the property's current rate and never recomputed.
//
// TODO: reject ranges that overlap an approved booking of the same property. Two renters
// can currently hold approved bookings for the same dates.
func (s *bookingService) CreateBooking(ctx context.Context, actor policy.Actor, propertyID uint, start, end time.Time, message string) (*models.BookingDetail, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, notFoundAs(err, ErrPropertyNotFound)
	}
	if err := policy.Check(actor, policy.CreateBooking, policy.ForProperty(property)); err != nil {
		return nil, ErrOwnProperty
	}
	if !property.Covers(start, end) {
		return nil, ErrNotAvailable
	}

	booking := &models.Booking{
		PropertyID: property.ID,
		UserID:     actor.ID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: models.TotalPrice(property.Price, start, end),
		Status:     models.StatusPending,
		Message:    message,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.publish(rabbitmq.RoutingBookingCreated, dto.BookingStatusMessage{
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		Status:     booking.Status,
		ActorID:    actor.ID,
		OccurredAt: s.now(),
	})

	detail, err := s.bookingRepo.FindByID(ctx, booking.ID)
	if err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}
	return detail, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor policy.Actor, id uint) (*models.BookingDetail, error) {
	return s.authorized(ctx, actor, policy.ViewBooking, id)
}

func (s *bookingService) ListAll(ctx context.Context, actor policy.Actor, page, limit int) ([]models.BookingDetail, bool, error) {
	if err := policy.Check(actor, policy.ListAllBookings, policy.Resource{}); err != nil {
		return nil, false, denied(err)
	}
	_, limit, offset := NormalizePage(page, limit)

	list, err := s.bookingRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, false, err
	}
	return list, len(list) == limit, nil
}

func (s *bookingService) ListMine(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error) {
	return s.bookingRepo.ListByUser(ctx, actor.ID)
}

// ListOwned returns bookings on the actor's own properties, pending requests first.
func (s *bookingService) ListOwned(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error) {
	if err := policy.Check(actor, policy.ListOwnerBookings, policy.Resource{}); err != nil {
		return nil, denied(err)
	}
	return s.bookingRepo.ListByOwner(ctx, actor.ID)
}

// UpdateStatus moves a booking along the lifecycle. The transition table decides whether
// the move exists and whether the actor's relation to the booking may make it; the write
// only succeeds if nobody changed the status in between.
func (s *bookingService) UpdateStatus(ctx context.Context, actor policy.Actor, id uint, status models.BookingStatus) (*models.BookingDetail, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}

	rel := policy.RelationTo(actor, policy.ForBooking(booking))
	if rel == policy.RelNone {
		return nil, ErrForbidden
	}
	if err := policy.CanTransition(booking.Status, status, rel); err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidTransition):
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
		default:
			return nil, denied(err)
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, status); err != nil {
		return nil, writeFailed(err)
	}

	s.publish(rabbitmq.RoutingBookingStatusChanged, dto.BookingStatusMessage{
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		FromStatus: booking.Status,
		Status:     status,
		ActorID:    actor.ID,
		OccurredAt: s.now(),
	})

	updated, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}
	return updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor policy.Actor, id uint) error {
	if _, err := s.authorized(ctx, actor, policy.DeleteBooking, id); err != nil {
		return err
	}
	return writeFailed(s.bookingRepo.Delete(ctx, id))
}

func (s *bookingService) History(ctx context.Context, actor policy.Actor, id uint) ([]models.BookingStatusEvent, error) {
	if _, err := s.authorized(ctx, actor, policy.ViewBookingHistory, id); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByBooking(ctx, id)
}

// authorized loads the booking and checks action against the renter and the property owner.
func (s *bookingService) authorized(ctx context.Context, actor policy.Actor, action policy.Action, id uint) (*models.BookingDetail, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}
	if err := policy.Check(actor, action, policy.ForBooking(booking)); err != nil {
		return nil, denied(err)
	}
	return booking, nil
}

func (s *bookingService) publish(routingKey string, msg dto.BookingStatusMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, msg); err != nil {
		zap.L().Warn("failed to publish booking event",
			zap.String("routing_key", routingKey),
			zap.Uint("booking_id", msg.BookingID),
			zap.Error(err))
	}
}
