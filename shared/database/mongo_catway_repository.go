package database

import (
	"context"
	"fmt"

	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var _ interfaces.CatwayRepository = (*mongoCatwayRepository)(nil)

// numericCollation sorts "2" before "10".
var numericCollation = &options.Collation{Locale: "en", NumericOrdering: true}

type mongoCatwayRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewMongoCatwayRepository(db *mongo.Database, logger *zap.Logger) interfaces.CatwayRepository {
	return &mongoCatwayRepository{
		collection: db.Collection(CatwaysCollection),
		logger:     logger.Named("MongoCatwayRepo"),
	}
}

func (r *mongoCatwayRepository) CreateCatway(ctx context.Context, catway *models.Catway) error {
	ts := now()
	catway.ID = primitive.NewObjectID()
	catway.CreatedAt = ts
	catway.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, catway); err != nil {
		catway.ID = primitive.NilObjectID
		if _, dup := duplicateKeyIndex(err); dup {
			r.logger.Warn("Attempted to create duplicate catway", zap.String("number", catway.Number))
			return models.ErrCatwayAlreadyExists
		}
		r.logger.Error("Failed to create catway", zap.String("number", catway.Number), zap.Error(err))
		return fmt.Errorf("failed to create catway: %w", err)
	}
	r.logger.Info("Catway created", zap.String("number", catway.Number))
	return nil
}

func (r *mongoCatwayRepository) GetCatwayByNumber(ctx context.Context, number string) (*models.Catway, error) {
	catway := &models.Catway{}
	if err := r.collection.FindOne(ctx, bson.M{"catwayNumber": number}).Decode(catway); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrCatwayNotFound
		}
		r.logger.Error("Failed to get catway", zap.String("number", number), zap.Error(err))
		return nil, fmt.Errorf("failed to get catway: %w", err)
	}
	return catway, nil
}

// ListCatways returns all catways ordered by number, numerically.
func (r *mongoCatwayRepository) ListCatways(ctx context.Context) ([]models.Catway, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "catwayNumber", Value: 1}}).
		SetCollation(numericCollation)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to query catways", zap.Error(err))
		return nil, fmt.Errorf("failed to list catways: %w", err)
	}
	catways := make([]models.Catway, 0)
	if err := cursor.All(ctx, &catways); err != nil {
		r.logger.Error("Failed to decode catways", zap.Error(err))
		return nil, fmt.Errorf("failed to decode catways: %w", err)
	}
	return catways, nil
}

func (r *mongoCatwayRepository) UpdateCatwayState(ctx context.Context, number, state string) (*models.Catway, error) {
	update := bson.M{"$set": bson.M{"catwayState": state, "updated_at": now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	catway := &models.Catway{}
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"catwayNumber": number}, update, opts).Decode(catway); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrCatwayNotFound
		}
		r.logger.Error("Failed to update catway state", zap.String("number", number), zap.Error(err))
		return nil, fmt.Errorf("failed to update catway: %w", err)
	}
	r.logger.Info("Catway state updated", zap.String("number", number))
	return catway, nil
}

// DeleteCatwayByNumber removes the catway only. Its reservations are kept.
func (r *mongoCatwayRepository) DeleteCatwayByNumber(ctx context.Context, number string) (*models.Catway, error) {
	catway := &models.Catway{}
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"catwayNumber": number}).Decode(catway); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrCatwayNotFound
		}
		r.logger.Error("Failed to delete catway", zap.String("number", number), zap.Error(err))
		return nil, fmt.Errorf("failed to delete catway: %w", err)
	}
	r.logger.Info("Catway deleted", zap.String("number", number))
	return catway, nil
}
