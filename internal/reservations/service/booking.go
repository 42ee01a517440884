package service

import (
	"context"
	"errors"
	"sync"
	"time"

	reserrors "hotelier/internal/reservations/errors"
	"hotelier/internal/reservations/notifier"
	"hotelier/internal/reservations/validator"
	"hotelier/internal/uow"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
	"hotelier/pkg/sanitizer"
)

const (
	reasonNotBookable = "not_bookable"
	reasonLostRace    = "lost_race"
)

type BookingService interface {
	Search(ctx context.Context, criteria *model.SearchCriteria) ([]*model.Hotel, error)
	CreateReservation(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type bookingService struct {
	uow       uow.UnitOfWork
	validator *validator.ReservationValidator
	notifier  notifier.ReservationNotifier
	cfg       *config.Config
}

func NewBookingService(
	unit uow.UnitOfWork,
	validator *validator.ReservationValidator,
	notifier notifier.ReservationNotifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		uow:       unit,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *bookingService) Search(ctx context.Context, criteria *model.SearchCriteria) ([]*model.Hotel, error) {
	criteria.City = sanitizer.NormalizeCity(criteria.City)

	if err := s.validator.ValidateSearch(criteria); err != nil {
		if errors.Is(err, reserrors.ErrInvalidDateRange) {
			return nil, apperrors.Validation("Check-out must be after check-in", nil)
		}
		s.cfg.Log.Warn("Search validation failed", "error", err)
		return nil, apperrors.Validation("Invalid search criteria", map[string]any{"error": err.Error()})
	}

	hotels, err := s.uow.Reservations().SearchHotels(ctx, criteria)
	if err != nil {
		s.cfg.Log.Error("Hotel search failed", "city", criteria.City, "error", err)
		return nil, apperrors.Internal("Failed to search hotels", err)
	}

	s.cfg.Log.Info("Hotel search completed",
		"city", criteria.City,
		"guests", criteria.GuestsCount,
		"results", len(hotels),
	)
	return hotels, nil
}

// CreateReservation runs the booking workflow. The room hold is a
// conditional update, so two concurrent bookings for the same room cannot
// both succeed: the loser gets a conflict and must pick another room.
func (s *bookingService) CreateReservation(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	s.sanitizeRequest(req)

	if err := s.validator.ValidateRequest(req); err != nil {
		if errors.Is(err, reserrors.ErrInvalidDateRange) {
			return nil, apperrors.Validation("Stay must cover at least one night", map[string]any{
				"check_in_date":  req.CheckInDate,
				"check_out_date": req.CheckOutDate,
			})
		}
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, apperrors.Validation("Invalid reservation request", map[string]any{"error": err.Error()})
	}
	if len(req.Guests) > s.cfg.MaxGuestsPerBooking {
		return nil, apperrors.Validation("Too many guests", map[string]any{
			"max_guests": s.cfg.MaxGuestsPerBooking,
		})
	}

	nights := req.Nights()

	hotel, err := s.uow.Reservations().FindHotelByID(ctx, req.HotelID)
	if err != nil {
		return nil, s.mapHotelError(err, req.HotelID)
	}

	room := hotel.FindRoom(req.RoomNumber)
	if room == nil || !room.IsActive || !room.IsAvailable {
		return nil, apperrors.Conflict("Room is not available for booking").WithDetails(map[string]any{
			"reason":      reasonNotBookable,
			"room_number": req.RoomNumber,
		})
	}

	totalPrice := room.PricePerNight.MulInt(nights)

	held, err := s.uow.Reservations().HoldRoom(ctx, req.HotelID, req.RoomNumber)
	if err != nil {
		s.cfg.Log.Error("Failed to hold room", "hotel_id", req.HotelID, "room_number", req.RoomNumber, "error", err)
		return nil, apperrors.Internal("Failed to reserve room", err)
	}
	if !held {
		// Another booking flipped the room between our read and the hold.
		s.cfg.Log.Info("Room hold lost to concurrent booking",
			"hotel_id", req.HotelID,
			"room_number", req.RoomNumber,
		)
		return nil, apperrors.Conflict("Room was just booked by another request").WithDetails(map[string]any{
			"reason":      reasonLostRace,
			"room_number": req.RoomNumber,
		})
	}

	guests := make([]model.Traveler, 0, len(req.Guests))
	for _, g := range req.Guests {
		guests = append(guests, g.Snapshot())
	}

	reservation := &model.Reservation{
		HotelID:      req.HotelID,
		RoomNumber:   req.RoomNumber,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Guests:       guests,
		TotalPrice:   totalPrice,
		Status:       model.ReservationStatusConfirmed,
	}

	if err := s.uow.Reservations().Create(ctx, reservation); err != nil {
		s.cfg.Log.Error("Failed to insert reservation, releasing held room",
			"hotel_id", req.HotelID,
			"room_number", req.RoomNumber,
			"error", err,
		)
		if _, relErr := s.uow.Reservations().ReleaseRoom(ctx, req.HotelID, req.RoomNumber); relErr != nil {
			s.cfg.Log.Error("Failed to release room after insert failure",
				"hotel_id", req.HotelID,
				"room_number", req.RoomNumber,
				"error", relErr,
			)
		}
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	if err := s.uow.Complete(ctx); err != nil {
		s.cfg.Log.Error("Unit of work completion failed", "reservation_id", reservation.ID, "error", err)
		return nil, apperrors.Internal("Failed to complete booking", err)
	}

	s.cfg.Log.Info("Reservation created",
		"reservation_id", reservation.ID,
		"hotel_id", reservation.HotelID,
		"room_number", reservation.RoomNumber,
		"nights", nights,
		"total_price", totalPrice.String(),
	)

	s.notifier.ReservationConfirmed(ctx, reservation)

	return reservation, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.uow.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, s.mapReservationError(err, id)
	}

	return reservation, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.uow.Reservations().Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.uow.Reservations().FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

// UpdateStatus allows confirmed reservations to be cancelled or completed.
// Both terminal statuses free the room; completion additionally requires the
// stay to be over.
func (s *bookingService) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if status != model.ReservationStatusCancelled && status != model.ReservationStatusCompleted {
		return apperrors.InvalidInput("Status must be 'cancelled' or 'completed'")
	}

	reservation, err := s.uow.Reservations().FindByID(ctx, id)
	if err != nil {
		return s.mapReservationError(err, id)
	}

	if reservation.Status != model.ReservationStatusConfirmed {
		return apperrors.Conflict("Only confirmed reservations can change status").WithDetails(map[string]any{
			"current_status": reservation.Status,
		})
	}
	if status == model.ReservationStatusCompleted && time.Now().UTC().Before(reservation.CheckOutDate) {
		return apperrors.Conflict("Reservation cannot be completed before check-out")
	}

	changed, err := s.uow.Reservations().UpdateStatus(ctx, id, status)
	if err != nil {
		return s.mapReservationError(err, id)
	}

	s.releaseHeldRoom(ctx, id, reservation)

	if status == model.ReservationStatusCancelled {
		reservation.Status = status
		s.notifier.ReservationCancelled(ctx, reservation)
	}

	s.cfg.Log.Info("Reservation status updated", "id", id, "status", status, "changed", changed)
	return nil
}

// releaseHeldRoom puts the room back into inventory once a reservation
// reaches a terminal status. Failures are logged and swallowed; the status
// change already happened and must not be rolled back.
func (s *bookingService) releaseHeldRoom(ctx context.Context, id string, reservation *model.Reservation) {
	released, err := s.uow.Reservations().ReleaseRoom(ctx, reservation.HotelID, reservation.RoomNumber)
	if err != nil {
		s.cfg.Log.Error("Failed to release room",
			"reservation_id", id,
			"hotel_id", reservation.HotelID,
			"room_number", reservation.RoomNumber,
			"error", err,
		)
		return
	}
	if !released {
		s.cfg.Log.Warn("Room was not held at status change",
			"reservation_id", id,
			"room_number", reservation.RoomNumber,
		)
	}
}

func (s *bookingService) sanitizeRequest(req *model.ReservationRequest) {
	req.RoomNumber = sanitizer.NormalizeRoomNumber(req.RoomNumber)
	for i := range req.Guests {
		g := &req.Guests[i]
		g.FullName = sanitizer.NormalizeName(g.FullName)
		g.DocumentNumber = sanitizer.TrimAndNormalize(g.DocumentNumber)
		g.Email = sanitizer.TrimAndNormalize(g.Email)
		if normalized := sanitizer.NormalizePhone(g.ContactPhone); normalized != "" {
			g.ContactPhone = normalized
		}
		if normalized := sanitizer.NormalizePhone(g.EmergencyContact.Phone); normalized != "" {
			g.EmergencyContact.Phone = normalized
		}
	}
}

func (s *bookingService) mapHotelError(err error, hotelID string) error {
	if errors.Is(err, reserrors.ErrHotelNotFound) {
		return apperrors.NotFoundWithID("Hotel", hotelID)
	}
	if errors.Is(err, reserrors.ErrInvalidHotelID) {
		return apperrors.InvalidInput("Invalid hotel ID format")
	}
	return apperrors.Internal("Failed to access hotel", err)
}

func (s *bookingService) mapReservationError(err error, id string) error {
	if errors.Is(err, reserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	if errors.Is(err, reserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid reservation ID format")
	}
	return apperrors.Internal("Failed to access reservation", err)
}
