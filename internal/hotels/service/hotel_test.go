package service

import (
	"context"
	"testing"
	"time"

	hotelserrors "hotelier/internal/hotels/errors"
	"hotelier/internal/hotels/validator"
	"hotelier/pkg/config"
	mongotx "hotelier/pkg/db/mongo"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockHotelRepository struct {
	createFunc        func(ctx context.Context, hotel *model.Hotel) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Hotel, error)
	findAllFunc       func(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error)
	countFunc         func(ctx context.Context) (int64, error)
	setRoomActiveFunc func(ctx context.Context, hotelID, roomNumber string, active bool) (bool, error)
	appendRoomFunc    func(ctx context.Context, hotelID string, room *model.Room) (bool, error)
}

func (m *mockHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, hotel)
	}
	return nil
}

func (m *mockHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, hotelserrors.ErrNotFound
}

func (m *mockHotelRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Hotel{}, nil
}

func (m *mockHotelRepository) Replace(ctx context.Context, id string, hotel *model.Hotel) error {
	return nil
}

func (m *mockHotelRepository) SetHotelActive(ctx context.Context, id string, active bool) (bool, error) {
	return true, nil
}

func (m *mockHotelRepository) SetRoomActive(ctx context.Context, hotelID, roomNumber string, active bool) (bool, error) {
	if m.setRoomActiveFunc != nil {
		return m.setRoomActiveFunc(ctx, hotelID, roomNumber, active)
	}
	return true, nil
}

func (m *mockHotelRepository) ReplaceRoom(ctx context.Context, hotelID string, room *model.Room) (bool, error) {
	return true, nil
}

func (m *mockHotelRepository) AppendRoom(ctx context.Context, hotelID string, room *model.Room) (bool, error) {
	if m.appendRoomFunc != nil {
		return m.appendRoomFunc(ctx, hotelID, room)
	}
	return true, nil
}

func (m *mockHotelRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockHotelRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:              log,
		ReadTimeout:      5 * time.Second,
		MaxRoomsPerHotel: 50,
	}
}

func validRoom(number string) model.Room {
	return model.Room{
		RoomNumber:    number,
		Type:          model.RoomTypeDouble,
		PricePerNight: model.MustMoney("120.00"),
		Taxes:         model.MustMoney("19.00"),
		Capacity:      2,
		IsActive:      true,
		IsAvailable:   true,
		Status:        model.RoomStatusAvailable,
	}
}

func validHotel() *model.Hotel {
	return &model.Hotel{
		Name:    "Hotel Andino",
		City:    "Bogota",
		Address: "Cra 7 # 72-41",
		Rooms:   []model.Room{validRoom("101"), validRoom("102")},
	}
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestCreate_SetsActiveDefaults(t *testing.T) {
	cfg := testConfig()
	var stored *model.Hotel
	repo := &mockHotelRepository{
		createFunc: func(ctx context.Context, hotel *model.Hotel) error {
			stored = hotel
			return nil
		},
	}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	hotel := validHotel()
	hotel.Rooms[0].Status = ""

	if err := svc.Create(context.Background(), hotel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected hotel to reach the repository")
	}
	if !stored.IsActive {
		t.Error("expected hotel to be created active")
	}
	if stored.Rooms[0].Status != model.RoomStatusAvailable {
		t.Errorf("expected defaulted room status %q, got %q", model.RoomStatusAvailable, stored.Rooms[0].Status)
	}
	if !stored.Rooms[0].IsAvailable {
		t.Error("expected defaulted room to be available")
	}
}

func TestCreate_RejectsDuplicateRoomNumbers(t *testing.T) {
	cfg := testConfig()
	repo := &mockHotelRepository{}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	hotel := validHotel()
	hotel.Rooms = append(hotel.Rooms, validRoom("101"))

	err := svc.Create(context.Background(), hotel)
	if err == nil {
		t.Fatal("expected validation error for duplicate room numbers")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreate_RejectsNegativePrice(t *testing.T) {
	cfg := testConfig()
	repo := &mockHotelRepository{}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	hotel := validHotel()
	hotel.Rooms[0].PricePerNight = model.MustMoney("-10.00")

	if err := svc.Create(context.Background(), hotel); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func TestGetAll_ReturnsCountAndPage(t *testing.T) {
	cfg := testConfig()
	repo := &mockHotelRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.Hotel{validHotel(), validHotel()}, nil
		},
	}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	hotels, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(hotels) != 2 {
		t.Errorf("expected 2 hotels, got %d", len(hotels))
	}
}

func TestAppendRoom_RejectsExistingNumber(t *testing.T) {
	cfg := testConfig()
	repo := &mockHotelRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Hotel, error) {
			h := validHotel()
			h.ID = id
			return h, nil
		},
	}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	room := validRoom("101")
	err := svc.AppendRoom(context.Background(), "abc123", &room)
	if err == nil {
		t.Fatal("expected conflict for duplicate room number")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestAppendRoom_NormalizesRoomNumber(t *testing.T) {
	cfg := testConfig()
	var appended *model.Room
	repo := &mockHotelRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Hotel, error) {
			h := validHotel()
			h.ID = id
			return h, nil
		},
		appendRoomFunc: func(ctx context.Context, hotelID string, room *model.Room) (bool, error) {
			appended = room
			return true, nil
		},
	}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	room := validRoom("  201a ")
	if err := svc.AppendRoom(context.Background(), "abc123", &room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appended == nil {
		t.Fatal("expected room to reach the repository")
	}
	if appended.RoomNumber != "201A" {
		t.Errorf("expected normalized room number 201A, got %q", appended.RoomNumber)
	}
}

func TestSetRoomActive_MissingRoom(t *testing.T) {
	cfg := testConfig()
	repo := &mockHotelRepository{
		setRoomActiveFunc: func(ctx context.Context, hotelID, roomNumber string, active bool) (bool, error) {
			return false, nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Hotel, error) {
			h := validHotel()
			h.ID = id
			return h, nil
		},
	}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	err := svc.SetRoomActive(context.Background(), "abc123", "999", false)
	if err == nil {
		t.Fatal("expected not found for missing room")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestSetRoomActive_LeavesOtherRoomsUntouched(t *testing.T) {
	cfg := testConfig()

	stored := validHotel()
	stored.ID = "abc123"
	before := stored.Rooms[1]

	repo := &mockHotelRepository{
		setRoomActiveFunc: func(ctx context.Context, hotelID, roomNumber string, active bool) (bool, error) {
			room := stored.FindRoom(roomNumber)
			if room == nil {
				return false, nil
			}
			room.IsActive = active
			return true, nil
		},
		findByIDFunc: func(ctx context.Context, id string) (*model.Hotel, error) {
			return stored, nil
		},
	}
	svc := NewHotelService(repo, validator.NewHotelValidator(cfg.Log), cfg)

	if err := svc.SetRoomActive(context.Background(), "abc123", "101", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reread, err := svc.GetByID(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error on re-read: %v", err)
	}

	if target := reread.FindRoom("101"); target == nil || target.IsActive {
		t.Error("expected room 101 to be inactive")
	}
	other := reread.FindRoom("102")
	if other == nil {
		t.Fatal("expected room 102 to survive the toggle")
	}
	if !other.IsActive || !other.IsAvailable {
		t.Error("expected room 102 flags to stay untouched")
	}
	if other.Type != before.Type || other.Capacity != before.Capacity {
		t.Error("expected room 102 shape to stay untouched")
	}
	if !other.PricePerNight.Equal(before.PricePerNight) || !other.Taxes.Equal(before.Taxes) {
		t.Error("expected room 102 pricing to stay untouched")
	}
}

func TestGetByID_EmptyID(t *testing.T) {
	cfg := testConfig()
	svc := NewHotelService(&mockHotelRepository{}, validator.NewHotelValidator(cfg.Log), cfg)

	if _, err := svc.GetByID(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty ID")
	}
}
