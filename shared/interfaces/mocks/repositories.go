package mocks

import (
	"context"
	"time"

	"marina-server/shared/models"

	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}
func (m *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
func (m *UserRepository) UpdateUserByEmail(ctx context.Context, email string, upd models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, email, upd)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) DeleteUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// Mock CatwayRepository
type CatwayRepository struct {
	mock.Mock
}

func (m *CatwayRepository) CreateCatway(ctx context.Context, catway *models.Catway) error {
	args := m.Called(ctx, catway)
	return args.Error(0)
}
func (m *CatwayRepository) GetCatwayByNumber(ctx context.Context, number string) (*models.Catway, error) {
	args := m.Called(ctx, number)
	catway, _ := args.Get(0).(*models.Catway)
	return catway, args.Error(1)
}
func (m *CatwayRepository) ListCatways(ctx context.Context) ([]models.Catway, error) {
	args := m.Called(ctx)
	catways, _ := args.Get(0).([]models.Catway)
	return catways, args.Error(1)
}
func (m *CatwayRepository) UpdateCatwayState(ctx context.Context, number, state string) (*models.Catway, error) {
	args := m.Called(ctx, number, state)
	catway, _ := args.Get(0).(*models.Catway)
	return catway, args.Error(1)
}
func (m *CatwayRepository) DeleteCatwayByNumber(ctx context.Context, number string) (*models.Catway, error) {
	args := m.Called(ctx, number)
	catway, _ := args.Get(0).(*models.Catway)
	return catway, args.Error(1)
}

// Mock ReservationRepository
type ReservationRepository struct {
	mock.Mock
}

func (m *ReservationRepository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}
func (m *ReservationRepository) ListReservationsByCatway(ctx context.Context, catwayNumber string) ([]models.Reservation, error) {
	args := m.Called(ctx, catwayNumber)
	reservations, _ := args.Get(0).([]models.Reservation)
	return reservations, args.Error(1)
}
func (m *ReservationRepository) GetReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error) {
	args := m.Called(ctx, catwayNumber, id)
	reservation, _ := args.Get(0).(*models.Reservation)
	return reservation, args.Error(1)
}
func (m *ReservationRepository) UpdateReservation(ctx context.Context, catwayNumber, id string, upd models.ReservationUpdate) (*models.Reservation, error) {
	args := m.Called(ctx, catwayNumber, id, upd)
	reservation, _ := args.Get(0).(*models.Reservation)
	return reservation, args.Error(1)
}
func (m *ReservationRepository) DeleteReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error) {
	args := m.Called(ctx, catwayNumber, id)
	reservation, _ := args.Get(0).(*models.Reservation)
	return reservation, args.Error(1)
}
func (m *ReservationRepository) FindOverlapping(ctx context.Context, catwayNumber string, start, end time.Time, excludeID string) (*models.Reservation, error) {
	args := m.Called(ctx, catwayNumber, start, end, excludeID)
	reservation, _ := args.Get(0).(*models.Reservation)
	return reservation, args.Error(1)
}

// Mock TokenRepository
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}
func (m *TokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
