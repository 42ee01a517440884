// Package notifications consumes reservation lifecycle events and notifies
// guests. Delivery is a stub that logs the email that would be sent; the
// consumer, retry and DLQ plumbing are real.
package notifications

import (
	"context"
	"fmt"

	"hotelier/internal/reservations/notifier"
	"hotelier/pkg/kafka"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type EmailService struct {
	log *logger.Logger
}

func NewEmailService(log *logger.Logger) *EmailService {
	return &EmailService{log: log}
}

// HandleMessage is the kafka.MessageHandler for reservation events. Unknown
// event types are acknowledged and skipped so they never hit the DLQ.
func (s *EmailService) HandleMessage(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()

	switch eventType {
	case notifier.EventReservationConfirmed, notifier.EventReservationCancelled:
	default:
		s.log.Info("Skipping unhandled event type", "event_type", eventType)
		return nil
	}

	var reservation model.Reservation
	if err := msg.DecodeValue(&reservation); err != nil {
		return fmt.Errorf("failed to decode reservation event: %w", err)
	}

	for _, guest := range reservation.Guests {
		s.sendEmail(eventType, &reservation, &guest)
	}

	return nil
}

func (s *EmailService) sendEmail(eventType string, reservation *model.Reservation, guest *model.Traveler) {
	var subject string
	switch eventType {
	case notifier.EventReservationConfirmed:
		subject = "Your reservation is confirmed"
	case notifier.EventReservationCancelled:
		subject = "Your reservation was cancelled"
	}

	// TODO: wire a real provider once one is selected; until then the
	// consumer only records the delivery.
	s.log.Info("Email sent",
		"to", guest.Email,
		"subject", subject,
		"reservation_id", reservation.ID,
		"hotel_id", reservation.HotelID,
		"room_number", reservation.RoomNumber,
		"check_in", reservation.CheckInDate,
		"check_out", reservation.CheckOutDate,
	)
}
