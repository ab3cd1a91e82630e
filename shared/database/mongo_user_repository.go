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

// Compile-time check to ensure mongoUserRepository implements UserRepository
var _ interfaces.UserRepository = (*mongoUserRepository)(nil)

type mongoUserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoUserRepository creates a new MongoDB-backed UserRepository.
func NewMongoUserRepository(db *mongo.Database, logger *zap.Logger) interfaces.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(UsersCollection),
		logger:     logger.Named("MongoUserRepo"),
	}
}

func mapUserDuplicate(err error) error {
	idx, ok := duplicateKeyIndex(err)
	if !ok {
		return nil
	}
	if idx == UsersEmailIndex {
		return models.ErrEmailAlreadyExists
	}
	return models.ErrUserAlreadyExists
}

// CreateUser inserts a new user into the collection.
func (r *mongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ts := now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = ts
	user.UpdatedAt = ts

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		logFields := []zap.Field{zap.String("username", user.Username), zap.String("email", user.Email)}
		if dupErr := mapUserDuplicate(err); dupErr != nil {
			r.logger.Warn("Attempted to create duplicate user", append(logFields, zap.Error(dupErr))...)
			user.ID = primitive.NilObjectID
			return dupErr
		}
		r.logger.Error("Failed to create user in mongo", append(logFields, zap.Error(err))...)
		user.ID = primitive.NilObjectID
		return fmt.Errorf("failed to create user in mongo: %w", err)
	}
	r.logger.Info("User created successfully", zap.String("userID", user.ID.Hex()), zap.String("email", user.Email))
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	user := &models.User{}
	if err := r.collection.FindOne(ctx, filter).Decode(user); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user from mongo", zap.Any("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("failed to get user from mongo: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by the hex form of their ObjectID.
func (r *mongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.logger.Debug("Malformed user ID", zap.String("id", id))
		return nil, models.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetUserByEmail retrieves a user by email.
func (r *mongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to query users from mongo", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		r.logger.Error("Failed to decode users", zap.Error(err))
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) CountUsers(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdateUserByEmail applies the non-nil fields of upd.
func (r *mongoUserRepository) UpdateUserByEmail(ctx context.Context, email string, upd models.UserUpdate) (*models.User, error) {
	set := bson.M{"updated_at": now()}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	user := &models.User{}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts).Decode(user)
	if err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrUserNotFound
		}
		if dupErr := mapUserDuplicate(err); dupErr != nil {
			r.logger.Warn("User update violates unique index", zap.String("email", email), zap.Error(dupErr))
			return nil, dupErr
		}
		r.logger.Error("Failed to update user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	r.logger.Info("User updated", zap.String("userID", user.ID.Hex()))
	return user, nil
}

func (r *mongoUserRepository) DeleteUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"email": email}).Decode(user); err != nil {
		if isNoDocuments(err) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to delete user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	r.logger.Info("User deleted", zap.String("userID", user.ID.Hex()), zap.String("email", email))
	return user, nil
}
