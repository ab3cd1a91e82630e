package database

import (
	"context"
	"fmt"
	"time"

	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var _ interfaces.ReservationRepository = (*mongoReservationRepository)(nil)

type mongoReservationRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewMongoReservationRepository(db *mongo.Database, logger *zap.Logger) interfaces.ReservationRepository {
	return &mongoReservationRepository{
		collection: db.Collection(ReservationsCollection),
		logger:     logger.Named("MongoReservationRepo"),
	}
}

// scopedFilter matches reservation id only under catwayNumber. ok is false for a malformed id.
func scopedFilter(catwayNumber, id string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "catwayNumber": catwayNumber}, true
}

func (r *mongoReservationRepository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	ts := now()
	reservation.ID = primitive.NewObjectID()
	reservation.StartDate = reservation.StartDate.UTC().Truncate(time.Millisecond)
	reservation.EndDate = reservation.EndDate.UTC().Truncate(time.Millisecond)
	reservation.CreatedAt = ts
	reservation.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		reservation.ID = primitive.NilObjectID
		r.logger.Error("Failed to create reservation", zap.String("catwayNumber", reservation.CatwayNumber), zap.Error(err))
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	r.logger.Info("Reservation created",
		zap.String("reservationID", reservation.ID.Hex()),
		zap.String("catwayNumber", reservation.CatwayNumber),
	)
	return nil
}

func (r *mongoReservationRepository) ListReservationsByCatway(ctx context.Context, catwayNumber string) ([]models.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"catwayNumber": catwayNumber}, opts)
	if err != nil {
		r.logger.Error("Failed to query reservations", zap.String("catwayNumber", catwayNumber), zap.Error(err))
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	reservations := make([]models.Reservation, 0)
	if err := cursor.All(ctx, &reservations); err != nil {
		r.logger.Error("Failed to decode reservations", zap.Error(err))
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoReservationRepository) GetReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error) {
	filter, ok := scopedFilter(catwayNumber, id)
	if !ok {
		return nil, models.ErrReservationNotFound
	}
	reservation := &models.Reservation{}
	if err := r.collection.FindOne(ctx, filter).Decode(reservation); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrReservationNotFound
		}
		r.logger.Error("Failed to get reservation", zap.String("reservationID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (r *mongoReservationRepository) UpdateReservation(ctx context.Context, catwayNumber, id string, upd models.ReservationUpdate) (*models.Reservation, error) {
	filter, ok := scopedFilter(catwayNumber, id)
	if !ok {
		return nil, models.ErrReservationNotFound
	}
	set := bson.M{"updated_at": now()}
	if upd.ClientName != nil {
		set["clientName"] = *upd.ClientName
	}
	if upd.BoatName != nil {
		set["boatName"] = *upd.BoatName
	}
	if upd.StartDate != nil {
		set["startDate"] = upd.StartDate.UTC()
	}
	if upd.EndDate != nil {
		set["endDate"] = upd.EndDate.UTC()
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	reservation := &models.Reservation{}
	if err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(reservation); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrReservationNotFound
		}
		r.logger.Error("Failed to update reservation", zap.String("reservationID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	r.logger.Info("Reservation updated", zap.String("reservationID", id))
	return reservation, nil
}

func (r *mongoReservationRepository) DeleteReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error) {
	filter, ok := scopedFilter(catwayNumber, id)
	if !ok {
		return nil, models.ErrReservationNotFound
	}
	reservation := &models.Reservation{}
	if err := r.collection.FindOneAndDelete(ctx, filter).Decode(reservation); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrReservationNotFound
		}
		r.logger.Error("Failed to delete reservation", zap.String("reservationID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to delete reservation: %w", err)
	}
	r.logger.Info("Reservation deleted", zap.String("reservationID", id), zap.String("catwayNumber", catwayNumber))
	return reservation, nil
}

// FindOverlapping uses reservations_catway_period_idx.
func (r *mongoReservationRepository) FindOverlapping(ctx context.Context, catwayNumber string, start, end time.Time, excludeID string) (*models.Reservation, error) {
	filter := bson.M{
		"catwayNumber": catwayNumber,
		"startDate":    bson.M{"$lt": end.UTC()},
		"endDate":      bson.M{"$gt": start.UTC()},
	}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}
	reservation := &models.Reservation{}
	if err := r.collection.FindOne(ctx, filter).Decode(reservation); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		r.logger.Error("Failed to check overlapping reservations", zap.String("catwayNumber", catwayNumber), zap.Error(err))
		return nil, fmt.Errorf("failed to check overlapping reservations: %w", err)
	}
	return reservation, nil
}
