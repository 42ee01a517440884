package testutil

import (
	"hotelier/pkg/model"
)

// TwoRoomHotel returns a hotel whose rooms differ in every field, so a test
// can tell a sibling apart from the room it mutated.
func TwoRoomHotel() *model.Hotel {
	return &model.Hotel{
		Name:        "Hotel Tequendama",
		City:        "Bogota",
		Address:     "Cra 10 # 26-21",
		Description: "Two floors, two very different rooms",
		IsActive:    true,
		Rooms: []model.Room{
			{
				RoomNumber:    "101",
				Type:          model.RoomTypeDouble,
				PricePerNight: model.MustMoney("150.00"),
				Taxes:         model.MustMoney("28.50"),
				Capacity:      2,
				IsActive:      true,
				IsAvailable:   true,
				Status:        model.RoomStatusAvailable,
				Amenities:     []string{"wifi", "tv"},
			},
			{
				RoomNumber:    "202",
				Type:          model.RoomTypeSuite,
				PricePerNight: model.MustMoney("310.75"),
				Taxes:         model.MustMoney("59.04"),
				Capacity:      4,
				IsActive:      true,
				IsAvailable:   true,
				Status:        model.RoomStatusAvailable,
				Amenities:     []string{"wifi", "balcony", "minibar"},
			},
		},
	}
}

// SingleRoomHotel returns a one-room hotel in the given city.
func SingleRoomHotel(name, city string, capacity int) *model.Hotel {
	return &model.Hotel{
		Name:     name,
		City:     city,
		Address:  "Calle 1 # 2-3",
		IsActive: true,
		Rooms: []model.Room{
			{
				RoomNumber:    "1",
				Type:          model.RoomTypeSingle,
				PricePerNight: model.MustMoney("90.00"),
				Taxes:         model.MustMoney("17.10"),
				Capacity:      capacity,
				IsActive:      true,
				IsAvailable:   true,
				Status:        model.RoomStatusAvailable,
			},
		},
	}
}
