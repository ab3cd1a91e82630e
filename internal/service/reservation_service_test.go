package service

import (
	"context"
	"testing"
	"time"

	"marina-server/shared/interfaces/mocks"
	"marina-server/shared/messaging"
	"marina-server/shared/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	repo       *mocks.ReservationRepository
	catwayRepo *mocks.CatwayRepository
	svc        ReservationService
}

func TestReservationService(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func (s *ReservationServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(mocks.ReservationRepository)
	s.catwayRepo = new(mocks.CatwayRepository)
	s.svc = NewReservationService(s.repo, s.catwayRepo, messaging.NoopEventPublisher{}, newTestConfig(), zap.NewNop())
}

func (s *ReservationServiceTestSuite) enableOverlapCheck() {
	cfg := newTestConfig()
	cfg.ReservationOverlapCheck = true
	s.svc = NewReservationService(s.repo, s.catwayRepo, messaging.NoopEventPublisher{}, cfg, zap.NewNop())
}

func (s *ReservationServiceTestSuite) TestCreate_UnknownCatway() {
	s.catwayRepo.On("GetCatwayByNumber", s.ctx, "42").Return(nil, models.ErrCatwayNotFound)

	_, err := s.svc.CreateReservation(s.ctx, "42", CreateReservationInput{
		ClientName: "Jean", BoatName: "Marie", StartDate: "2024-06-01", EndDate: "2024-06-08",
	})
	s.ErrorIs(err, models.ErrCatwayNotFound)
	s.repo.AssertNotCalled(s.T(), "CreateReservation", mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestCreate_ForcesCatwayFromURL() {
	s.catwayRepo.On("GetCatwayByNumber", s.ctx, "1").Return(&models.Catway{Number: "1"}, nil)
	s.repo.On("CreateReservation", s.ctx, mock.MatchedBy(func(r *models.Reservation) bool {
		return r.CatwayNumber == "1"
	})).Return(nil)

	res, err := s.svc.CreateReservation(s.ctx, "1", CreateReservationInput{
		CatwayNumber: "99",
		ClientName:   " Jean ",
		BoatName:     "Marie",
		StartDate:    "2024-06-01",
		EndDate:      "2024-06-08T12:00:00+02:00",
	})
	s.Require().NoError(err)
	s.Equal("1", res.CatwayNumber)
	s.Equal("Jean", res.ClientName)
	s.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), res.StartDate)
	s.Equal(time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC), res.EndDate)
	s.repo.AssertExpectations(s.T())
}

func (s *ReservationServiceTestSuite) TestCreate_Validation() {
	s.catwayRepo.On("GetCatwayByNumber", s.ctx, "1").Return(&models.Catway{Number: "1"}, nil)

	cases := map[string]CreateReservationInput{
		"start equals end": {ClientName: "Jean", BoatName: "Marie", StartDate: "2024-06-01", EndDate: "2024-06-01"},
		"start after end":  {ClientName: "Jean", BoatName: "Marie", StartDate: "2024-06-09", EndDate: "2024-06-01"},
		"missing names":    {StartDate: "2024-06-01", EndDate: "2024-06-08"},
		"bad date":         {ClientName: "Jean", BoatName: "Marie", StartDate: "01/06/2024", EndDate: "2024-06-08"},
		"missing dates":    {ClientName: "Jean", BoatName: "Marie"},
	}
	for name, input := range cases {
		_, err := s.svc.CreateReservation(s.ctx, "1", input)
		s.ErrorIs(err, models.ErrInvalidInput, name)
	}
	s.repo.AssertNotCalled(s.T(), "CreateReservation", mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestCreate_OverlapCheckDisabledByDefault() {
	s.catwayRepo.On("GetCatwayByNumber", s.ctx, "1").Return(&models.Catway{Number: "1"}, nil)
	s.repo.On("CreateReservation", s.ctx, mock.Anything).Return(nil)

	_, err := s.svc.CreateReservation(s.ctx, "1", CreateReservationInput{
		ClientName: "Jean", BoatName: "Marie", StartDate: "2024-06-01", EndDate: "2024-06-08",
	})
	s.NoError(err)
	s.repo.AssertNotCalled(s.T(), "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestCreate_OverlapRejected() {
	s.enableOverlapCheck()
	s.catwayRepo.On("GetCatwayByNumber", s.ctx, "1").Return(&models.Catway{Number: "1"}, nil)
	s.repo.On("FindOverlapping", s.ctx, "1", mock.Anything, mock.Anything, "").
		Return(&models.Reservation{ID: primitive.NewObjectID()}, nil)

	_, err := s.svc.CreateReservation(s.ctx, "1", CreateReservationInput{
		ClientName: "Jean", BoatName: "Marie", StartDate: "2024-06-01", EndDate: "2024-06-08",
	})
	s.ErrorIs(err, models.ErrReservationOverlap)
	s.repo.AssertNotCalled(s.T(), "CreateReservation", mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestUpdate_CatwayNumberChangeRejected() {
	_, err := s.svc.UpdateReservation(s.ctx, "1", "abc", UpdateReservationInput{CatwayNumber: models.StringPtr("2")})
	s.ErrorIs(err, models.ErrInvalidInput)
	s.ErrorContains(err, "Catway number cannot be changed")
}

func (s *ReservationServiceTestSuite) TestUpdate_MergedDatesValidated() {
	id := primitive.NewObjectID()
	current := &models.Reservation{
		ID:           id,
		CatwayNumber: "1",
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
	}
	s.repo.On("GetReservation", s.ctx, "1", id.Hex()).Return(current, nil)

	_, err := s.svc.UpdateReservation(s.ctx, "1", id.Hex(), UpdateReservationInput{StartDate: models.StringPtr("2024-06-10")})
	s.ErrorIs(err, models.ErrInvalidInput)
	s.repo.AssertNotCalled(s.T(), "UpdateReservation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	newEnd := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	updated := *current
	updated.EndDate = newEnd
	s.repo.On("UpdateReservation", s.ctx, "1", id.Hex(), models.ReservationUpdate{EndDate: &newEnd}).Return(&updated, nil)

	res, err := s.svc.UpdateReservation(s.ctx, "1", id.Hex(), UpdateReservationInput{
		CatwayNumber: models.StringPtr("1"),
		EndDate:      models.StringPtr("2024-06-12"),
	})
	s.Require().NoError(err)
	s.Equal(newEnd, res.EndDate)
}

func (s *ReservationServiceTestSuite) TestUpdate_NotFound() {
	s.repo.On("GetReservation", s.ctx, "1", "missing").Return(nil, models.ErrReservationNotFound)

	_, err := s.svc.UpdateReservation(s.ctx, "1", "missing", UpdateReservationInput{BoatName: models.StringPtr("Belle")})
	s.ErrorIs(err, models.ErrReservationNotFound)
}

func (s *ReservationServiceTestSuite) TestUpdate_OverlapExcludesItself() {
	s.enableOverlapCheck()
	id := primitive.NewObjectID()
	current := &models.Reservation{
		ID:           id,
		CatwayNumber: "1",
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
	}
	s.repo.On("GetReservation", s.ctx, "1", id.Hex()).Return(current, nil)
	s.repo.On("FindOverlapping", s.ctx, "1", current.StartDate, mock.Anything, id.Hex()).Return(nil, nil)
	s.repo.On("UpdateReservation", s.ctx, "1", id.Hex(), mock.Anything).Return(current, nil)

	_, err := s.svc.UpdateReservation(s.ctx, "1", id.Hex(), UpdateReservationInput{EndDate: models.StringPtr("2024-06-09")})
	s.NoError(err)
	s.repo.AssertExpectations(s.T())
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-06-01T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), d)

	_, err = parseDate("tomorrow")
	assert.Error(t, err)
}
