package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	reserrors "hotelier/internal/reservations/errors"
	"hotelier/pkg/config"
	mongotx "hotelier/pkg/db/mongo"
	"hotelier/pkg/model"
)

type mongoReservationRepository struct {
	cfg          *config.Config
	db           *mongo.Database
	reservations *mongo.Collection
	hotels       *mongo.Collection
	txManager    mongotx.TransactionManager
}

// ReservationRepository owns the reservations collection plus the
// availability side of the hotels collection. HoldRoom is the only place a
// room flips to occupied during booking: a conditional update that matches
// the room only while it is still available, so of two concurrent bookings
// exactly one observes ModifiedCount == 1.
type ReservationRepository interface {
	SearchHotels(ctx context.Context, criteria *model.SearchCriteria) ([]*model.Hotel, error)
	FindHotelByID(ctx context.Context, hotelID string) (*model.Hotel, error)
	HoldRoom(ctx context.Context, hotelID, roomNumber string) (bool, error)
	ReleaseRoom(ctx context.Context, hotelID, roomNumber string) (bool, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:          cfg,
		db:           db,
		reservations: db.Collection(cfg.ReservationsCollection),
		hotels:       db.Collection(cfg.HotelsCollection),
		txManager:    mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// SearchHotels matches active hotels in the city that have at least one
// active, available room with capacity for the whole party.
func (r *mongoReservationRepository) SearchHotels(ctx context.Context, criteria *model.SearchCriteria) ([]*model.Hotel, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"city":     criteria.City,
		"isActive": true,
		"rooms": bson.M{
			"$elemMatch": bson.M{
				"capacity":    bson.M{"$gte": criteria.GuestsCount},
				"isActive":    true,
				"isAvailable": true,
			},
		},
	}

	cursor, err := r.hotels.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []*model.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}

	return hotels, nil
}

func (r *mongoReservationRepository) FindHotelByID(ctx context.Context, hotelID string) (*model.Hotel, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrInvalidHotelID, hotelID)
	}

	var hotel model.Hotel
	err = r.hotels.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	return &hotel, nil
}

// HoldRoom flips the room to occupied with a single conditional update. The
// filter requires the room to still be active and available, so a booking
// that lost the race sees ModifiedCount == 0 and must not proceed.
func (r *mongoReservationRepository) HoldRoom(ctx context.Context, hotelID, roomNumber string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return false, fmt.Errorf("%w: %s", reserrors.ErrInvalidHotelID, hotelID)
	}

	filter := bson.M{
		"_id": objectID,
		"rooms": bson.M{
			"$elemMatch": bson.M{
				"roomNumber":  roomNumber,
				"isActive":    true,
				"isAvailable": true,
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"rooms.$.isAvailable": false,
			"rooms.$.status":      model.RoomStatusOccupied,
			"updatedAt":           time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.hotels.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to hold room: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// ReleaseRoom is the inverse of HoldRoom: occupied back to available. Used
// when a reservation reaches a terminal status and as compensation when the
// reservation insert fails after the hold.
func (r *mongoReservationRepository) ReleaseRoom(ctx context.Context, hotelID, roomNumber string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return false, fmt.Errorf("%w: %s", reserrors.ErrInvalidHotelID, hotelID)
	}

	filter := bson.M{
		"_id": objectID,
		"rooms": bson.M{
			"$elemMatch": bson.M{
				"roomNumber":  roomNumber,
				"isAvailable": false,
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"rooms.$.isAvailable": true,
			"rooms.$.status":      model.RoomStatusAvailable,
			"updatedAt":           time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.hotels.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release room: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.reservations.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	var reservation model.Reservation
	err = r.reservations.FindOne(ctx, bson.M{"_id": objectID}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.reservations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	result, err := r.reservations.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update reservation status: %w", err)
	}
	if result.MatchedCount == 0 {
		return false, reserrors.ErrNotFound
	}

	return result.ModifiedCount > 0, nil
}

func (r *mongoReservationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.reservations.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
