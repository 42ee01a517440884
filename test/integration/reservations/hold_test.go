package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	hotelsrepo "hotelier/internal/hotels/repository"
	"hotelier/internal/reservations/repository"
	"hotelier/pkg/model"
	"hotelier/test/integration/testutil"
)

func TestHoldRoom_ConcurrentHoldsHaveOneWinner(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, cfg := env.Setup(t)
	defer env.Cleanup(t, mongo)

	hotels := hotelsrepo.NewMongoHotelRepository(cfg)
	reservations := repository.NewMongoReservationRepository(cfg)
	ctx := context.Background()

	hotel := testutil.TwoRoomHotel()
	if err := hotels.Create(ctx, hotel); err != nil {
		t.Fatalf("failed to create hotel: %v", err)
	}

	const attempts = 10
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			held, err := reservations.HoldRoom(ctx, hotel.ID, "101")
			if err != nil {
				t.Errorf("unexpected error holding room: %v", err)
				return
			}
			wins <- held
		}()
	}
	wg.Wait()
	close(wins)

	var winners int
	for held := range wins {
		if held {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", winners)
	}

	stored, err := reservations.FindHotelByID(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("failed to re-read hotel: %v", err)
	}
	room := stored.FindRoom("101")
	if room.IsAvailable || room.Status != model.RoomStatusOccupied {
		t.Errorf("expected room held, got isAvailable=%v status=%q", room.IsAvailable, room.Status)
	}
	if sibling := stored.FindRoom("202"); !sibling.IsAvailable {
		t.Error("expected the sibling room to stay available")
	}
}

func TestHoldRoom_InactiveRoomCannotBeHeld(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, cfg := env.Setup(t)
	defer env.Cleanup(t, mongo)

	hotels := hotelsrepo.NewMongoHotelRepository(cfg)
	reservations := repository.NewMongoReservationRepository(cfg)
	ctx := context.Background()

	hotel := testutil.TwoRoomHotel()
	if err := hotels.Create(ctx, hotel); err != nil {
		t.Fatalf("failed to create hotel: %v", err)
	}
	if _, err := hotels.SetRoomActive(ctx, hotel.ID, "101", false); err != nil {
		t.Fatalf("failed to deactivate room: %v", err)
	}

	held, err := reservations.HoldRoom(ctx, hotel.ID, "101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if held {
		t.Error("expected inactive room not to be holdable")
	}
}

func TestReleaseRoom_ReturnsRoomToInventoryOnce(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, cfg := env.Setup(t)
	defer env.Cleanup(t, mongo)

	hotels := hotelsrepo.NewMongoHotelRepository(cfg)
	reservations := repository.NewMongoReservationRepository(cfg)
	ctx := context.Background()

	hotel := testutil.TwoRoomHotel()
	if err := hotels.Create(ctx, hotel); err != nil {
		t.Fatalf("failed to create hotel: %v", err)
	}
	if held, err := reservations.HoldRoom(ctx, hotel.ID, "101"); err != nil || !held {
		t.Fatalf("failed to hold room: held=%v err=%v", held, err)
	}

	released, err := reservations.ReleaseRoom(ctx, hotel.ID, "101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !released {
		t.Fatal("expected the first release to report a change")
	}

	released, err = reservations.ReleaseRoom(ctx, hotel.ID, "101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released {
		t.Error("expected the second release to be a no-op")
	}

	stored, err := reservations.FindHotelByID(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("failed to re-read hotel: %v", err)
	}
	room := stored.FindRoom("101")
	if !room.IsAvailable || room.Status != model.RoomStatusAvailable {
		t.Errorf("expected room back in inventory, got isAvailable=%v status=%q",
			room.IsAvailable, room.Status)
	}
}

func TestSearchHotels_MatchesCapacityAndAvailability(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, cfg := env.Setup(t)
	defer env.Cleanup(t, mongo)

	hotels := hotelsrepo.NewMongoHotelRepository(cfg)
	reservations := repository.NewMongoReservationRepository(cfg)
	ctx := context.Background()

	big := testutil.SingleRoomHotel("Gran Capital", "Bogota", 4)
	small := testutil.SingleRoomHotel("Posada Chica", "Bogota", 1)
	elsewhere := testutil.SingleRoomHotel("Mar Azul", "Cartagena", 4)
	for _, h := range []*model.Hotel{big, small, elsewhere} {
		if err := hotels.Create(ctx, h); err != nil {
			t.Fatalf("failed to create hotel %s: %v", h.Name, err)
		}
	}

	criteria := &model.SearchCriteria{
		City:         "Bogota",
		CheckInDate:  time.Now().UTC().AddDate(0, 0, 7),
		CheckOutDate: time.Now().UTC().AddDate(0, 0, 9),
		GuestsCount:  3,
	}

	found, err := reservations.SearchHotels(ctx, criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Gran Capital" {
		t.Fatalf("expected only Gran Capital to match, got %d hotels", len(found))
	}

	// Holding the only fitting room takes the hotel out of the results.
	if held, err := reservations.HoldRoom(ctx, big.ID, "1"); err != nil || !held {
		t.Fatalf("failed to hold room: held=%v err=%v", held, err)
	}
	found, err = reservations.SearchHotels(ctx, criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected no hotels after the room was held, got %d", len(found))
	}
}
