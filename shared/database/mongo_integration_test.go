package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marina-server/pkg/migration"
	"marina-server/shared/database"
	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testDatabase = "marina_test"

// StoreIntegrationTestSuite runs the repositories against real MongoDB and Redis.
type StoreIntegrationTestSuite struct {
	suite.Suite
	ctx             context.Context
	mongoContainer  *mongodb.MongoDBContainer
	redisContainer  *tcredis.RedisContainer
	mongoURI        string
	client          *mongo.Client
	db              *mongo.Database
	redisClient     *redis.Client
	userRepo        interfaces.UserRepository
	catwayRepo      interfaces.CatwayRepository
	reservationRepo interfaces.ReservationRepository
	tokenRepo       interfaces.TokenRepository
	logger          *zap.Logger
}

func TestStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(StoreIntegrationTestSuite))
}

func (s *StoreIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err)

	s.mongoContainer, err = mongodb.Run(s.ctx, "mongo:7")
	require.NoError(s.T(), err, "Failed to start mongo container")

	s.mongoURI, err = s.mongoContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)

	s.client, err = database.Connect(s.ctx, s.mongoURI)
	require.NoError(s.T(), err, "Failed to connect to test mongo")
	s.db = s.client.Database(testDatabase)

	migrator := migration.NewMigrator(migration.Config{
		MongoURI:       s.mongoURI,
		DatabaseName:   testDatabase,
		MigrationsPath: database.MigrationsPath,
		MigrationsFS:   database.MigrationsFS,
	})
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to run migrations")

	s.redisContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.redisContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.redisContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port())})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err())

	s.userRepo = database.NewMongoUserRepository(s.db, s.logger)
	s.catwayRepo = database.NewMongoCatwayRepository(s.db, s.logger)
	s.reservationRepo = database.NewMongoReservationRepository(s.db, s.logger)
	s.tokenRepo = database.NewRedisTokenRepository(s.redisClient, s.logger)
}

func (s *StoreIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.mongoContainer != nil {
		if err := s.mongoContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate mongo container", zap.Error(err))
		}
	}
	if s.redisContainer != nil {
		if err := s.redisContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate redis container", zap.Error(err))
		}
	}
}

// Collections are emptied, not dropped, so the migrated indexes survive.
func (s *StoreIntegrationTestSuite) SetupTest() {
	for _, name := range []string{database.UsersCollection, database.CatwaysCollection, database.ReservationsCollection} {
		_, err := s.db.Collection(name).DeleteMany(s.ctx, bson.M{})
		require.NoError(s.T(), err)
	}
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err())
}

func (s *StoreIntegrationTestSuite) TestMigrationsCreateIndexes() {
	cursor, err := s.db.Collection(database.UsersCollection).Indexes().List(s.ctx)
	s.Require().NoError(err)
	var indexes []bson.M
	s.Require().NoError(cursor.All(s.ctx, &indexes))

	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		names = append(names, idx["name"].(string))
	}
	s.Contains(names, database.UsersEmailIndex)
	s.Contains(names, database.UsersUsernameIndex)

	version, dirty, err := migration.NewMigrator(migration.Config{
		MongoURI:       s.mongoURI,
		DatabaseName:   testDatabase,
		MigrationsPath: database.MigrationsPath,
		MigrationsFS:   database.MigrationsFS,
	}).Version(s.ctx)
	s.Require().NoError(err)
	s.False(dirty)
	s.Equal(uint(1), version)
}

func (s *StoreIntegrationTestSuite) TestUserLifecycle() {
	user := &models.User{Username: "capitaine", Email: "cap@port.fr", PasswordHash: "hash"}
	s.Require().NoError(s.userRepo.CreateUser(s.ctx, user))
	s.False(user.ID.IsZero())

	err := s.userRepo.CreateUser(s.ctx, &models.User{Username: "other", Email: "cap@port.fr", PasswordHash: "x"})
	s.ErrorIs(err, models.ErrEmailAlreadyExists)

	err = s.userRepo.CreateUser(s.ctx, &models.User{Username: "capitaine", Email: "other@port.fr", PasswordHash: "x"})
	s.ErrorIs(err, models.ErrUserAlreadyExists)

	byID, err := s.userRepo.GetUserByID(s.ctx, user.ID.Hex())
	s.Require().NoError(err)
	s.Equal(user.Email, byID.Email)
	s.Equal("hash", byID.PasswordHash)

	_, err = s.userRepo.GetUserByID(s.ctx, "not-an-object-id")
	s.ErrorIs(err, models.ErrUserNotFound)

	updated, err := s.userRepo.UpdateUserByEmail(s.ctx, "cap@port.fr", models.UserUpdate{Username: models.StringPtr("harbour")})
	s.Require().NoError(err)
	s.Equal("harbour", updated.Username)
	s.Equal("hash", updated.PasswordHash)

	count, err := s.userRepo.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	deleted, err := s.userRepo.DeleteUserByEmail(s.ctx, "cap@port.fr")
	s.Require().NoError(err)
	s.Equal(user.ID, deleted.ID)

	_, err = s.userRepo.DeleteUserByEmail(s.ctx, "cap@port.fr")
	s.ErrorIs(err, models.ErrUserNotFound)
}

func (s *StoreIntegrationTestSuite) TestCatwaysSortedNumerically() {
	for _, number := range []string{"10", "2", "1"} {
		s.Require().NoError(s.catwayRepo.CreateCatway(s.ctx, &models.Catway{
			Number: number, Type: models.CatwayTypeShort, State: "ok",
		}))
	}
	err := s.catwayRepo.CreateCatway(s.ctx, &models.Catway{Number: "2", Type: models.CatwayTypeLong, State: "dup"})
	s.ErrorIs(err, models.ErrCatwayAlreadyExists)

	catways, err := s.catwayRepo.ListCatways(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(catways, 3)
	s.Equal("1", catways[0].Number)
	s.Equal("2", catways[1].Number)
	s.Equal("10", catways[2].Number)

	updated, err := s.catwayRepo.UpdateCatwayState(s.ctx, "2", "needs paint")
	s.Require().NoError(err)
	s.Equal("needs paint", updated.State)
	s.Equal(models.CatwayTypeShort, updated.Type)

	_, err = s.catwayRepo.UpdateCatwayState(s.ctx, "99", "x")
	s.ErrorIs(err, models.ErrCatwayNotFound)
}

func (s *StoreIntegrationTestSuite) TestReservationsScopedToCatway() {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	res := &models.Reservation{
		CatwayNumber: "1", ClientName: "Jean", BoatName: "Marie",
		StartDate: start, EndDate: start.AddDate(0, 0, 7),
	}
	s.Require().NoError(s.reservationRepo.CreateReservation(s.ctx, res))

	got, err := s.reservationRepo.GetReservation(s.ctx, "1", res.ID.Hex())
	s.Require().NoError(err)
	s.True(got.StartDate.Equal(start))

	_, err = s.reservationRepo.GetReservation(s.ctx, "2", res.ID.Hex())
	s.ErrorIs(err, models.ErrReservationNotFound)
	_, err = s.reservationRepo.GetReservation(s.ctx, "1", "garbage")
	s.ErrorIs(err, models.ErrReservationNotFound)

	overlap, err := s.reservationRepo.FindOverlapping(s.ctx, "1", start.AddDate(0, 0, 3), start.AddDate(0, 0, 10), "")
	s.Require().NoError(err)
	s.Require().NotNil(overlap)
	s.Equal(res.ID, overlap.ID)

	overlap, err = s.reservationRepo.FindOverlapping(s.ctx, "1", start.AddDate(0, 0, 7), start.AddDate(0, 0, 10), "")
	s.Require().NoError(err)
	s.Nil(overlap)

	overlap, err = s.reservationRepo.FindOverlapping(s.ctx, "1", start, start.AddDate(0, 0, 1), res.ID.Hex())
	s.Require().NoError(err)
	s.Nil(overlap)

	updated, err := s.reservationRepo.UpdateReservation(s.ctx, "1", res.ID.Hex(), models.ReservationUpdate{BoatName: models.StringPtr("Belle")})
	s.Require().NoError(err)
	s.Equal("Belle", updated.BoatName)
	s.Equal("Jean", updated.ClientName)

	list, err := s.reservationRepo.ListReservationsByCatway(s.ctx, "2")
	s.Require().NoError(err)
	s.Empty(list)

	_, err = s.reservationRepo.DeleteReservation(s.ctx, "1", res.ID.Hex())
	s.Require().NoError(err)
	_, err = s.reservationRepo.DeleteReservation(s.ctx, "1", res.ID.Hex())
	s.ErrorIs(err, models.ErrReservationNotFound)
}

func (s *StoreIntegrationTestSuite) TestRedisTokenRevocation() {
	revoked, err := s.tokenRepo.IsTokenRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.tokenRepo.RevokeToken(s.ctx, "jti-1", time.Minute))

	revoked, err = s.tokenRepo.IsTokenRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	ttl, err := s.redisClient.TTL(s.ctx, "revoked_token:jti-1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}
