package service

import (
	"context"
	"sync"
	"testing"
	"time"

	hotelsrepo "hotelier/internal/hotels/repository"
	reserrors "hotelier/internal/reservations/errors"
	resrepo "hotelier/internal/reservations/repository"
	"hotelier/internal/reservations/validator"
	travelersrepo "hotelier/internal/travelers/repository"
	"hotelier/pkg/config"
	mongotx "hotelier/pkg/db/mongo"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repository and unit of work
// ────────────────────────────────────────────────

type mockReservationRepository struct {
	mu sync.Mutex

	hotel        *model.Hotel
	reservations []*model.Reservation

	createErr error
	released  []string
}

func (m *mockReservationRepository) SearchHotels(ctx context.Context, criteria *model.SearchCriteria) ([]*model.Hotel, error) {
	if m.hotel != nil && m.hotel.City == criteria.City {
		return []*model.Hotel{m.hotel}, nil
	}
	return []*model.Hotel{}, nil
}

func (m *mockReservationRepository) FindHotelByID(ctx context.Context, hotelID string) (*model.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hotel == nil || m.hotel.ID != hotelID {
		return nil, reserrors.ErrHotelNotFound
	}
	copied := *m.hotel
	copied.Rooms = append([]model.Room(nil), m.hotel.Rooms...)
	return &copied, nil
}

// HoldRoom mirrors the conditional update: the flip only happens while the
// room is still available, under a lock standing in for Mongo's
// single-document atomicity.
func (m *mockReservationRepository) HoldRoom(ctx context.Context, hotelID, roomNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hotel == nil || m.hotel.ID != hotelID {
		return false, nil
	}
	room := m.hotel.FindRoom(roomNumber)
	if room == nil || !room.IsActive || !room.IsAvailable {
		return false, nil
	}
	room.IsAvailable = false
	room.Status = model.RoomStatusOccupied
	return true, nil
}

func (m *mockReservationRepository) ReleaseRoom(ctx context.Context, hotelID, roomNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = append(m.released, roomNumber)
	if m.hotel == nil || m.hotel.ID != hotelID {
		return false, nil
	}
	room := m.hotel.FindRoom(roomNumber)
	if room == nil || room.IsAvailable {
		return false, nil
	}
	room.IsAvailable = true
	room.Status = model.RoomStatusAvailable
	return true, nil
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	reservation.ID = "res-1"
	reservation.CreatedAt = time.Now().UTC()
	m.reservations = append(m.reservations, reservation)
	return nil
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, reserrors.ErrNotFound
}

func (m *mockReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Reservation(nil), m.reservations...), nil
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ID == id {
			changed := r.Status != status
			r.Status = status
			return changed, nil
		}
	}
	return false, reserrors.ErrNotFound
}

func (m *mockReservationRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.reservations)), nil
}

func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

type mockUnitOfWork struct {
	reservations resrepo.ReservationRepository
}

func (m *mockUnitOfWork) Hotels() hotelsrepo.HotelRepository          { return nil }
func (m *mockUnitOfWork) Reservations() resrepo.ReservationRepository { return m.reservations }
func (m *mockUnitOfWork) Travelers() travelersrepo.TravelerRepository { return nil }
func (m *mockUnitOfWork) Complete(ctx context.Context) error          { return nil }
func (m *mockUnitOfWork) WithinTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (n *recordingNotifier) ReservationConfirmed(ctx context.Context, reservation *model.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, reservation.ID)
}

func (n *recordingNotifier) ReservationCancelled(ctx context.Context, reservation *model.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, reservation.ID)
}

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

const testHotelID = "507f1f77bcf86cd799439011"

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:                 log,
		ReadTimeout:         5 * time.Second,
		WriteTimeout:        5 * time.Second,
		MaxGuestsPerBooking: 10,
	}
}

func testHotel() *model.Hotel {
	return &model.Hotel{
		ID:       testHotelID,
		Name:     "Hotel Andino",
		City:     "Bogota",
		Address:  "Cra 7 # 72-41",
		IsActive: true,
		Rooms: []model.Room{
			{
				RoomNumber:    "101",
				Type:          model.RoomTypeDouble,
				PricePerNight: model.MustMoney("50.00"),
				Taxes:         model.MustMoney("0.00"),
				Capacity:      2,
				IsActive:      true,
				IsAvailable:   true,
				Status:        model.RoomStatusAvailable,
			},
		},
	}
}

func testGuest() model.Traveler {
	return model.Traveler{
		FullName:       "Ana Lopez",
		BirthDate:      time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Gender:         model.GenderFemale,
		DocumentType:   model.DocumentTypePassport,
		DocumentNumber: "AB123456",
		Email:          "ana@example.com",
		ContactPhone:   "+573001234567",
		EmergencyContact: model.EmergencyContact{
			Name:         "Luis Lopez",
			Phone:        "+573007654321",
			Relationship: "brother",
		},
	}
}

func testRequest() *model.ReservationRequest {
	return &model.ReservationRequest{
		HotelID:      testHotelID,
		RoomNumber:   "101",
		CheckInDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Guests:       []model.Traveler{testGuest()},
	}
}

func newTestService(repo *mockReservationRepository) (BookingService, *recordingNotifier) {
	cfg := testConfig()
	noti := &recordingNotifier{}
	svc := NewBookingService(
		&mockUnitOfWork{reservations: repo},
		validator.NewReservationValidator(cfg.Log),
		noti,
		cfg,
	)
	return svc, noti
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestCreateReservation_Success(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, noti := newTestService(repo)

	reservation, err := svc.CreateReservation(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reservation.Status != model.ReservationStatusConfirmed {
		t.Errorf("expected status confirmed, got %q", reservation.Status)
	}
	if got := reservation.TotalPrice.String(); got != "150" && got != "150.00" {
		t.Errorf("expected total price 150.00 for 3 nights at 50.00, got %s", got)
	}
	if len(reservation.Guests) != 1 {
		t.Fatalf("expected 1 guest snapshot, got %d", len(reservation.Guests))
	}
	if room := repo.hotel.FindRoom("101"); room.IsAvailable {
		t.Error("expected room to be held after booking")
	}
	if len(noti.confirmed) != 1 {
		t.Errorf("expected 1 confirmation event, got %d", len(noti.confirmed))
	}
}

func TestCreateReservation_PriceIsExact(t *testing.T) {
	hotel := testHotel()
	hotel.Rooms[0].PricePerNight = model.MustMoney("99.99")
	repo := &mockReservationRepository{hotel: hotel}
	svc, _ := newTestService(repo)

	reservation, err := svc.CreateReservation(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := model.MustMoney("299.97")
	if !reservation.TotalPrice.Equal(want) {
		t.Errorf("expected exact total %s, got %s", want.String(), reservation.TotalPrice.String())
	}
}

func TestCreateReservation_SameDayStayRejected(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	req := testRequest()
	req.CheckOutDate = req.CheckInDate

	_, err := svc.CreateReservation(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for zero-night stay")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(repo.reservations) != 0 {
		t.Error("expected no reservation to be stored")
	}
}

func TestCreateReservation_OneNightMinimum(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	req := testRequest()
	req.CheckOutDate = req.CheckInDate.Add(24 * time.Hour)

	reservation, err := svc.CreateReservation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error for one-night stay: %v", err)
	}
	if !reservation.TotalPrice.Equal(model.MustMoney("50.00")) {
		t.Errorf("expected one night at 50.00, got %s", reservation.TotalPrice.String())
	}
}

func TestCreateReservation_HotelNotFound(t *testing.T) {
	repo := &mockReservationRepository{}
	svc, _ := newTestService(repo)

	_, err := svc.CreateReservation(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error for missing hotel")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestCreateReservation_InactiveRoomNotBookable(t *testing.T) {
	hotel := testHotel()
	hotel.Rooms[0].IsActive = false
	repo := &mockReservationRepository{hotel: hotel}
	svc, _ := newTestService(repo)

	_, err := svc.CreateReservation(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected conflict for inactive room")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if reason := appErr.Details["reason"]; reason != "not_bookable" {
		t.Errorf("expected reason not_bookable, got %v", reason)
	}
}

func TestCreateReservation_LostRaceIsDistinct(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	// First booking wins the room.
	if _, err := svc.CreateReservation(context.Background(), testRequest()); err != nil {
		t.Fatalf("unexpected error on first booking: %v", err)
	}

	_, err := svc.CreateReservation(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected conflict for second booking of the same room")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if reason := appErr.Details["reason"]; reason != "not_bookable" {
		t.Errorf("expected reason not_bookable after the room is occupied, got %v", reason)
	}
}

func TestCreateReservation_NoDoubleBooking(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(context.Background(), testRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		appErr := apperrors.AsAppError(err)
		if appErr != nil && appErr.Code == apperrors.CodeConflict {
			conflicts++
			continue
		}
		t.Errorf("unexpected error kind: %v", err)
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful booking, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
	if len(repo.reservations) != 1 {
		t.Errorf("expected 1 stored reservation, got %d", len(repo.reservations))
	}
}

func TestCreateReservation_InsertFailureReleasesRoom(t *testing.T) {
	repo := &mockReservationRepository{
		hotel:     testHotel(),
		createErr: context.DeadlineExceeded,
	}
	svc, _ := newTestService(repo)

	_, err := svc.CreateReservation(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error when insert fails")
	}

	if room := repo.hotel.FindRoom("101"); !room.IsAvailable {
		t.Error("expected room to be released after insert failure")
	}
	if len(repo.released) != 1 {
		t.Errorf("expected 1 release call, got %d", len(repo.released))
	}
}

func TestCreateReservation_SnapshotIsolation(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	req := testRequest()
	reservation, err := svc.CreateReservation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Guests[0].FullName = "Changed After Booking"
	if reservation.Guests[0].FullName == "Changed After Booking" {
		t.Error("expected guest snapshot to be isolated from the request")
	}
}

func TestUpdateStatus_CancelReleasesRoom(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, noti := newTestService(repo)

	reservation, err := svc.CreateReservation(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), reservation.ID, model.ReservationStatusCancelled); err != nil {
		t.Fatalf("unexpected error on cancel: %v", err)
	}

	if room := repo.hotel.FindRoom("101"); !room.IsAvailable {
		t.Error("expected room to be available after cancellation")
	}
	stored, _ := repo.FindByID(context.Background(), reservation.ID)
	if stored.Status != model.ReservationStatusCancelled {
		t.Errorf("expected stored status cancelled, got %q", stored.Status)
	}
	if len(noti.cancelled) != 1 {
		t.Errorf("expected 1 cancellation event, got %d", len(noti.cancelled))
	}
}

func TestUpdateStatus_CompleteReleasesRoom(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, noti := newTestService(repo)

	req := testRequest()
	req.CheckInDate = time.Now().UTC().AddDate(0, 0, -5)
	req.CheckOutDate = time.Now().UTC().AddDate(0, 0, -2)

	reservation, err := svc.CreateReservation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if room := repo.hotel.FindRoom("101"); room.IsAvailable {
		t.Fatal("expected room to be held while the reservation is confirmed")
	}

	if err := svc.UpdateStatus(context.Background(), reservation.ID, model.ReservationStatusCompleted); err != nil {
		t.Fatalf("unexpected error on completion: %v", err)
	}

	room := repo.hotel.FindRoom("101")
	if !room.IsAvailable {
		t.Error("expected room to return to inventory after the stay completed")
	}
	if room.Status != model.RoomStatusAvailable {
		t.Errorf("expected room status available, got %q", room.Status)
	}
	stored, _ := repo.FindByID(context.Background(), reservation.ID)
	if stored.Status != model.ReservationStatusCompleted {
		t.Errorf("expected stored status completed, got %q", stored.Status)
	}
	if len(noti.cancelled) != 0 {
		t.Errorf("expected no cancellation event on completion, got %d", len(noti.cancelled))
	}
}

func TestUpdateStatus_CompleteBeforeCheckoutRejected(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	req := testRequest()
	req.CheckInDate = time.Now().UTC().AddDate(0, 0, 30)
	req.CheckOutDate = time.Now().UTC().AddDate(0, 0, 33)

	reservation, err := svc.CreateReservation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.UpdateStatus(context.Background(), reservation.ID, model.ReservationStatusCompleted)
	if err == nil {
		t.Fatal("expected conflict for completion before check-out")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestUpdateStatus_CancelledCannotChange(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	reservation, err := svc.CreateReservation(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), reservation.ID, model.ReservationStatusCancelled); err != nil {
		t.Fatalf("unexpected error on cancel: %v", err)
	}

	err = svc.UpdateStatus(context.Background(), reservation.ID, model.ReservationStatusCompleted)
	if err == nil {
		t.Fatal("expected conflict for transition out of cancelled")
	}
}

func TestSearch_RequiresValidDateRange(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	criteria := &model.SearchCriteria{
		City:         "Bogota",
		CheckInDate:  time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		GuestsCount:  2,
	}

	_, err := svc.Search(context.Background(), criteria)
	if err == nil {
		t.Fatal("expected error for inverted date range")
	}
}

func TestSearch_ReturnsMatchingHotels(t *testing.T) {
	repo := &mockReservationRepository{hotel: testHotel()}
	svc, _ := newTestService(repo)

	criteria := &model.SearchCriteria{
		City:         "Bogota",
		CheckInDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		GuestsCount:  2,
	}

	hotels, err := svc.Search(context.Background(), criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hotels) != 1 {
		t.Errorf("expected 1 hotel, got %d", len(hotels))
	}
}
