package notifier

import (
	"context"

	"github.com/google/uuid"

	"hotelier/pkg/kafka"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationNotifier publishes reservation lifecycle events. Publication is
// best effort: the booking has already committed, so a broker outage is
// logged and swallowed rather than failing the request.
type ReservationNotifier interface {
	ReservationConfirmed(ctx context.Context, reservation *model.Reservation)
	ReservationCancelled(ctx context.Context, reservation *model.Reservation)
}

type kafkaNotifier struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaNotifier(producer *kafka.Producer, log *logger.Logger) ReservationNotifier {
	return &kafkaNotifier{
		producer: producer,
		log:      log,
	}
}

func (n *kafkaNotifier) ReservationConfirmed(ctx context.Context, reservation *model.Reservation) {
	n.publish(ctx, EventReservationConfirmed, reservation)
}

func (n *kafkaNotifier) ReservationCancelled(ctx context.Context, reservation *model.Reservation) {
	n.publish(ctx, EventReservationCancelled, reservation)
}

func (n *kafkaNotifier) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	msg := kafka.NewMessage().
		WithKey(reservation.ID).
		WithEventID(uuid.NewString()).
		WithEventType(eventType).
		WithSource("reservations").
		WithValue(reservation).
		Build()

	if err := n.producer.Publish(ctx, msg); err != nil {
		n.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
		return
	}

	n.log.Info("Reservation event published",
		"event_type", eventType,
		"reservation_id", reservation.ID,
	)
}

// NoopNotifier is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) ReservationConfirmed(ctx context.Context, reservation *model.Reservation) {}
func (NoopNotifier) ReservationCancelled(ctx context.Context, reservation *model.Reservation) {}
