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

	travelerserrors "hotelier/internal/travelers/errors"
	"hotelier/pkg/config"
	mongotx "hotelier/pkg/db/mongo"
	"hotelier/pkg/model"
)

type mongoTravelerRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

// TravelerRepository owns the travelers collection. Replace and Delete
// report whether a document actually changed so callers can distinguish a
// no-op from a hit.
type TravelerRepository interface {
	Create(ctx context.Context, traveler *model.Traveler) error
	FindByID(ctx context.Context, id string) (*model.Traveler, error)
	FindByDocumentNumber(ctx context.Context, documentNumber string) (*model.Traveler, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Traveler, error)
	Replace(ctx context.Context, id string, traveler *model.Traveler) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoTravelerRepository(cfg *config.Config) TravelerRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTravelerRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(cfg.TravelersCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoTravelerRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoTravelerRepository) Create(ctx context.Context, traveler *model.Traveler) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, traveler)
	if err != nil {
		return fmt.Errorf("failed to create traveler: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		traveler.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTravelerRepository) FindByID(ctx context.Context, id string) (*model.Traveler, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", travelerserrors.ErrInvalidID, id)
	}

	var traveler model.Traveler
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&traveler)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, travelerserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find traveler: %w", err)
	}

	return &traveler, nil
}

func (r *mongoTravelerRepository) FindByDocumentNumber(ctx context.Context, documentNumber string) (*model.Traveler, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var traveler model.Traveler
	err := r.collection.FindOne(ctx, bson.M{"documentNumber": documentNumber}).Decode(&traveler)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, travelerserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find traveler by document: %w", err)
	}

	return &traveler, nil
}

func (r *mongoTravelerRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Traveler, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "fullName", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find travelers: %w", err)
	}
	defer cursor.Close(ctx)

	var travelers []*model.Traveler
	if err = cursor.All(ctx, &travelers); err != nil {
		return nil, fmt.Errorf("failed to decode travelers: %w", err)
	}

	return travelers, nil
}

func (r *mongoTravelerRepository) Replace(ctx context.Context, id string, traveler *model.Traveler) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", travelerserrors.ErrInvalidID, id)
	}

	traveler.ID = ""
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, traveler)
	if err != nil {
		return false, fmt.Errorf("failed to replace traveler: %w", err)
	}

	if result.MatchedCount == 0 {
		return false, travelerserrors.ErrNotFound
	}

	traveler.ID = id
	return result.ModifiedCount > 0, nil
}

func (r *mongoTravelerRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", travelerserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, fmt.Errorf("failed to delete traveler: %w", err)
	}

	return result.DeletedCount > 0, nil
}

func (r *mongoTravelerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count travelers: %w", err)
	}
	return count, nil
}

func (r *mongoTravelerRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
