package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories with the same error contract as the Mongo ones.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User

	// lookupErr, when set, is returned by GetUserByID.
	lookupErr error
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return models.ErrUserAlreadyExists
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.ID.Hex() == id {
			found := *u
			return &found, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) CountUsers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateUserByEmail(_ context.Context, email string, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email != email {
			continue
		}
		if upd.Username != nil {
			u.Username = *upd.Username
		}
		if upd.PasswordHash != nil {
			u.PasswordHash = *upd.PasswordHash
		}
		u.UpdatedAt = time.Now().UTC()
		updated := *u
		return &updated, nil
	}
	return nil, models.ErrUserNotFound
}

func (r *fakeUserRepo) DeleteUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.Email == email {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

type fakeCatwayRepo struct {
	mu      sync.Mutex
	catways map[string]*models.Catway

	// err, when set, is returned by every method.
	err error
}

func newFakeCatwayRepo() *fakeCatwayRepo {
	return &fakeCatwayRepo{catways: make(map[string]*models.Catway)}
}

func (r *fakeCatwayRepo) CreateCatway(_ context.Context, catway *models.Catway) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, exists := r.catways[catway.Number]; exists {
		return models.ErrCatwayAlreadyExists
	}
	catway.ID = primitive.NewObjectID()
	stored := *catway
	r.catways[catway.Number] = &stored
	return nil
}

func (r *fakeCatwayRepo) GetCatwayByNumber(_ context.Context, number string) (*models.Catway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.catways[number]
	if !ok {
		return nil, models.ErrCatwayNotFound
	}
	found := *c
	return &found, nil
}

func (r *fakeCatwayRepo) ListCatways(_ context.Context) ([]models.Catway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	catways := make([]models.Catway, 0, len(r.catways))
	for _, c := range r.catways {
		catways = append(catways, *c)
	}
	sort.Slice(catways, func(i, j int) bool { return catways[i].Number < catways[j].Number })
	return catways, nil
}

func (r *fakeCatwayRepo) UpdateCatwayState(_ context.Context, number, state string) (*models.Catway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.catways[number]
	if !ok {
		return nil, models.ErrCatwayNotFound
	}
	c.State = state
	updated := *c
	return &updated, nil
}

func (r *fakeCatwayRepo) DeleteCatwayByNumber(_ context.Context, number string) (*models.Catway, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.catways[number]
	if !ok {
		return nil, models.ErrCatwayNotFound
	}
	delete(r.catways, number)
	return c, nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*models.Reservation
}

func (r *fakeReservationRepo) find(catwayNumber, id string) (int, bool) {
	for i, res := range r.reservations {
		if res.CatwayNumber == catwayNumber && res.ID.Hex() == id {
			return i, true
		}
	}
	return -1, false
}

func (r *fakeReservationRepo) CreateReservation(_ context.Context, reservation *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation.ID = primitive.NewObjectID()
	stored := *reservation
	r.reservations = append(r.reservations, &stored)
	return nil
}

func (r *fakeReservationRepo) ListReservationsByCatway(_ context.Context, catwayNumber string) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.reservations {
		if res.CatwayNumber == catwayNumber {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) GetReservation(_ context.Context, catwayNumber, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(catwayNumber, id)
	if !ok {
		return nil, models.ErrReservationNotFound
	}
	found := *r.reservations[i]
	return &found, nil
}

func (r *fakeReservationRepo) UpdateReservation(_ context.Context, catwayNumber, id string, upd models.ReservationUpdate) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(catwayNumber, id)
	if !ok {
		return nil, models.ErrReservationNotFound
	}
	res := r.reservations[i]
	if upd.ClientName != nil {
		res.ClientName = *upd.ClientName
	}
	if upd.BoatName != nil {
		res.BoatName = *upd.BoatName
	}
	if upd.StartDate != nil {
		res.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		res.EndDate = *upd.EndDate
	}
	updated := *res
	return &updated, nil
}

func (r *fakeReservationRepo) DeleteReservation(_ context.Context, catwayNumber, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(catwayNumber, id)
	if !ok {
		return nil, models.ErrReservationNotFound
	}
	deleted := r.reservations[i]
	r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
	return deleted, nil
}

func (r *fakeReservationRepo) FindOverlapping(_ context.Context, catwayNumber string, start, end time.Time, excludeID string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.CatwayNumber == catwayNumber && res.ID.Hex() != excludeID &&
			start.Before(res.EndDate) && res.StartDate.Before(end) {
			found := *res
			return &found, nil
		}
	}
	return nil, nil
}

// fakeTokenRepo wraps the in-memory revocation list with a failure switch.
type fakeTokenRepo struct {
	interfaces.TokenRepository
	revokedErr error
}

func (r *fakeTokenRepo) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.revokedErr != nil {
		return false, r.revokedErr
	}
	return r.TokenRepository.IsTokenRevoked(ctx, tokenID)
}
