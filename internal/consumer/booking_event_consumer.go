package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const recordTimeout = 5 * time.Second

// BookingEventConsumer stores booking lifecycle messages as audit rows.
type BookingEventConsumer struct {
	events repository.BookingEventRepository
	done   chan struct{}
}

func NewBookingEventConsumer(events repository.BookingEventRepository) *BookingEventConsumer {
	return &BookingEventConsumer{events: events, done: make(chan struct{})}
}

// Start handles deliveries in the background until msgs is closed.
func (bc *BookingEventConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		defer close(bc.done)
		for msg := range msgs {
			bc.handleMessage(msg)
		}
		zap.L().Info("booking event channel closed, stopping consumer")
	}()
}

// Done is closed once the delivery channel has been drained.
func (bc *BookingEventConsumer) Done() <-chan struct{} {
	return bc.done
}

func (bc *BookingEventConsumer) handleMessage(msg amqp.Delivery) {
	var payload dto.BookingStatusMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil || payload.BookingID == 0 || payload.Status == "" {
		zap.L().Warn("dropping malformed booking event",
			zap.String("routing_key", msg.RoutingKey),
			zap.ByteString("body", msg.Body),
			zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	event := &models.BookingStatusEvent{
		EventKey:   eventKey(msg),
		BookingID:  payload.BookingID,
		FromStatus: payload.FromStatus,
		Status:     payload.Status,
		ActorID:    payload.ActorID,
		OccurredAt: payload.OccurredAt,
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = msg.Timestamp
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := bc.events.Record(ctx, event); err != nil {
		// One retry, then the message goes to the dead-letter queue.
		requeue := !msg.Redelivered
		zap.L().Error("failed to record booking event",
			zap.Uint("booking_id", payload.BookingID),
			zap.Bool("requeue", requeue),
			zap.Error(err))
		_ = msg.Nack(false, requeue)
		return
	}

	zap.L().Debug("recorded booking event",
		zap.Uint("booking_id", payload.BookingID),
		zap.String("status", string(payload.Status)))
	_ = msg.Ack(false)
}

// eventKey prefers the publisher's message id. Messages without one get a key derived
// from the body so redeliveries still collapse into one row.
func eventKey(msg amqp.Delivery) string {
	if _, err := uuid.Parse(msg.MessageId); err == nil {
		return msg.MessageId
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, msg.Body).String()
}
