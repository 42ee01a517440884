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

	hotelserrors "hotelier/internal/hotels/errors"
	"hotelier/pkg/config"
	mongotx "hotelier/pkg/db/mongo"
	"hotelier/pkg/model"
)

type mongoHotelRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

// HotelRepository owns the hotels collection. Room-scoped mutations use
// positional filtered updates so that edits to one room never rewrite its
// siblings or hotel-level fields.
type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error)
	Replace(ctx context.Context, id string, hotel *model.Hotel) error
	SetHotelActive(ctx context.Context, id string, active bool) (bool, error)
	SetRoomActive(ctx context.Context, hotelID, roomNumber string, active bool) (bool, error)
	ReplaceRoom(ctx context.Context, hotelID string, room *model.Room) (bool, error)
	AppendRoom(ctx context.Context, hotelID string, room *model.Room) (bool, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoHotelRepository(cfg *config.Config) HotelRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHotelRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(cfg.HotelsCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless we are already inside
// a transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoHotelRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, hotel)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hotel.ID = oid.Hex()
	}
	return nil
}

func (r *mongoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var hotel model.Hotel
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	return &hotel, nil
}

func (r *mongoHotelRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []*model.Hotel
	if err = cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}

	return hotels, nil
}

// Replace rewrites hotel-level fields. Rooms are carried over from the
// supplied document; room state changes must go through the room-scoped
// positional updates instead.
func (r *mongoHotelRepository) Replace(ctx context.Context, id string, hotel *model.Hotel) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	hotel.ID = ""
	hotel.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, hotel)
	if err != nil {
		return fmt.Errorf("failed to replace hotel: %w", err)
	}

	if result.MatchedCount == 0 {
		return hotelserrors.ErrNotFound
	}

	hotel.ID = id
	return nil
}

func (r *mongoHotelRepository) SetHotelActive(ctx context.Context, id string, active bool) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"isActive":  active,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to set hotel active flag: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// SetRoomActive flips the soft-delete flag of exactly the room matching
// roomNumber, via the positional operator. A false return means the hotel
// or room did not match; it is a no-op, not an error.
func (r *mongoHotelRepository) SetRoomActive(ctx context.Context, hotelID, roomNumber string, active bool) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return false, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, hotelID)
	}

	filter := bson.M{
		"_id":              objectID,
		"rooms.roomNumber": roomNumber,
	}
	update := bson.M{"$set": bson.M{
		"rooms.$.isActive": active,
		"updatedAt":        time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to set room active flag: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *mongoHotelRepository) ReplaceRoom(ctx context.Context, hotelID string, room *model.Room) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return false, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, hotelID)
	}

	filter := bson.M{
		"_id":              objectID,
		"rooms.roomNumber": room.RoomNumber,
	}
	update := bson.M{"$set": bson.M{
		"rooms.$":   room,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to replace room: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// AppendRoom pushes a room onto the hotel's embedded list. Room-number
// uniqueness is the caller's precondition; the store does not check it.
func (r *mongoHotelRepository) AppendRoom(ctx context.Context, hotelID string, room *model.Room) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return false, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, hotelID)
	}

	update := bson.M{
		"$push": bson.M{"rooms": room},
		"$set":  bson.M{"updatedAt": time.Now().UTC().Truncate(time.Millisecond)},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to append room: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

func (r *mongoHotelRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	return count, nil
}

func (r *mongoHotelRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
