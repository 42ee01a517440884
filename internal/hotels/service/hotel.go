package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	hotelserrors "hotelier/internal/hotels/errors"
	"hotelier/internal/hotels/repository"
	"hotelier/internal/hotels/validator"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
	"hotelier/pkg/sanitizer"
)

type HotelService interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, int64, error)
	Update(ctx context.Context, id string, updates *model.HotelUpdate) error
	SetHotelActive(ctx context.Context, id string, active bool) error
	SetRoomActive(ctx context.Context, hotelID, roomNumber string, active bool) error
	ReplaceRoom(ctx context.Context, hotelID string, room *model.Room) error
	AppendRoom(ctx context.Context, hotelID string, room *model.Room) error
}

type hotelService struct {
	repo      repository.HotelRepository
	validator *validator.HotelValidator
	cfg       *config.Config
}

func NewHotelService(
	repo repository.HotelRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *hotelService) Create(ctx context.Context, hotel *model.Hotel) error {
	s.sanitizeHotel(hotel)
	s.applyDefaults(hotel)

	if err := s.validate(hotel); err != nil {
		return err
	}
	if len(hotel.Rooms) > s.cfg.MaxRoomsPerHotel {
		return apperrors.Validation("Too many rooms", map[string]any{
			"max_rooms": s.cfg.MaxRoomsPerHotel,
		})
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		s.cfg.Log.Error("Failed to create hotel", "error", err)
		return apperrors.Internal("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created successfully",
		"id", hotel.ID,
		"name", hotel.Name,
		"city", hotel.City,
		"rooms", len(hotel.Rooms),
	)
	return nil
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	hotel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return hotel, nil
}

func (s *hotelService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, int64, error) {
	var count int64
	var hotels []*model.Hotel
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count hotels", "error", errCount)
			errCount = apperrors.Internal("Failed to count hotels", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		hotels, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list hotels", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve hotels", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return hotels, count, nil
}

func (s *hotelService) Update(ctx context.Context, id string, updates *model.HotelUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLookupError(err, id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Hotel update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeHotelUpdates(existing, updates)
	s.sanitizeHotel(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if err := s.repo.Replace(ctx, id, merged); err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Hotel", id)
		}
		s.cfg.Log.Error("Failed to update hotel", "id", id, "error", err)
		return apperrors.Internal("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Hotel updated successfully", "id", id)
	return nil
}

func (s *hotelService) SetHotelActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	changed, err := s.repo.SetHotelActive(ctx, id, active)
	if err != nil {
		return s.mapLookupError(err, id)
	}
	if !changed {
		// Distinguish a missing hotel from a flag that already held the
		// requested value.
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return s.mapLookupError(err, id)
		}
	}

	s.cfg.Log.Info("Hotel active flag set", "id", id, "active", active, "changed", changed)
	return nil
}

func (s *hotelService) SetRoomActive(ctx context.Context, hotelID, roomNumber string, active bool) error {
	if hotelID == "" || roomNumber == "" {
		return apperrors.InvalidInput("Hotel ID and room number are required")
	}
	roomNumber = sanitizer.NormalizeRoomNumber(roomNumber)

	changed, err := s.repo.SetRoomActive(ctx, hotelID, roomNumber, active)
	if err != nil {
		return s.mapLookupError(err, hotelID)
	}
	if !changed {
		return s.explainRoomNoop(ctx, hotelID, roomNumber)
	}

	s.cfg.Log.Info("Room active flag set",
		"hotel_id", hotelID,
		"room_number", roomNumber,
		"active", active,
	)
	return nil
}

func (s *hotelService) ReplaceRoom(ctx context.Context, hotelID string, room *model.Room) error {
	if hotelID == "" {
		return apperrors.InvalidInput("Hotel ID cannot be empty")
	}
	s.sanitizeRoom(room)

	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "hotel_id", hotelID, "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	changed, err := s.repo.ReplaceRoom(ctx, hotelID, room)
	if err != nil {
		return s.mapLookupError(err, hotelID)
	}
	if !changed {
		return s.explainRoomNoop(ctx, hotelID, room.RoomNumber)
	}

	s.cfg.Log.Info("Room replaced", "hotel_id", hotelID, "room_number", room.RoomNumber)
	return nil
}

// AppendRoom enforces per-hotel room-number uniqueness before pushing; the
// store itself treats the number as an opaque key.
func (s *hotelService) AppendRoom(ctx context.Context, hotelID string, room *model.Room) error {
	if hotelID == "" {
		return apperrors.InvalidInput("Hotel ID cannot be empty")
	}
	s.sanitizeRoom(room)

	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "hotel_id", hotelID, "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	hotel, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return s.mapLookupError(err, hotelID)
	}

	if hotel.HasRoom(room.RoomNumber) {
		return apperrors.Conflict(fmt.Sprintf("Room %q already exists in this hotel", room.RoomNumber))
	}
	if len(hotel.Rooms) >= s.cfg.MaxRoomsPerHotel {
		return apperrors.Validation("Too many rooms", map[string]any{
			"max_rooms": s.cfg.MaxRoomsPerHotel,
		})
	}

	changed, err := s.repo.AppendRoom(ctx, hotelID, room)
	if err != nil {
		s.cfg.Log.Error("Failed to append room", "hotel_id", hotelID, "error", err)
		return apperrors.Internal("Failed to add room", err)
	}
	if !changed {
		return apperrors.NotFoundWithID("Hotel", hotelID)
	}

	s.cfg.Log.Info("Room appended", "hotel_id", hotelID, "room_number", room.RoomNumber)
	return nil
}

// --- Helpers ---

func (s *hotelService) sanitizeHotel(h *model.Hotel) {
	h.Name = sanitizer.NormalizeName(h.Name)
	h.City = sanitizer.NormalizeCity(h.City)
	h.Address = sanitizer.TrimAndNormalize(h.Address)
	h.Description = sanitizer.TrimAndNormalize(h.Description)
	for i := range h.Rooms {
		s.sanitizeRoom(&h.Rooms[i])
	}
}

func (s *hotelService) sanitizeRoom(r *model.Room) {
	r.RoomNumber = sanitizer.NormalizeRoomNumber(r.RoomNumber)
	for i, a := range r.Amenities {
		r.Amenities[i] = sanitizer.TrimAndNormalize(a)
	}
}

func (s *hotelService) applyDefaults(h *model.Hotel) {
	h.IsActive = true
	for i := range h.Rooms {
		room := &h.Rooms[i]
		room.IsActive = true
		if room.Status == "" {
			room.SetStatus(model.RoomStatusAvailable)
		}
	}
}

func (s *hotelService) mergeHotelUpdates(existing *model.Hotel, updates *model.HotelUpdate) *model.Hotel {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	return &merged
}

func (s *hotelService) validate(hotel *model.Hotel) error {
	if err := s.validator.Validate(hotel); err != nil {
		s.cfg.Log.Warn("Hotel validation failed", "error", err)
		return apperrors.Validation("Hotel validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *hotelService) mapLookupError(err error, id string) error {
	if errors.Is(err, hotelserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Hotel", id)
	}
	if errors.Is(err, hotelserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid hotel ID format")
	}
	return apperrors.Internal("Failed to access hotel", err)
}

// explainRoomNoop turns a changed=false room mutation into the error the
// caller can act on: missing hotel, missing room, or nothing (the value
// already held).
func (s *hotelService) explainRoomNoop(ctx context.Context, hotelID, roomNumber string) error {
	hotel, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return s.mapLookupError(err, hotelID)
	}
	if !hotel.HasRoom(roomNumber) {
		return apperrors.NotFoundWithID("Room", roomNumber)
	}
	return nil
}
