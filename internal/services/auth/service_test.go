package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/mocks"
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage/memory"
	redisstorage "github.com/kunalgolani-work/kachuful-backend/internal/storage/redis"
	"github.com/kunalgolani-work/kachuful-backend/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{
		Secret:        "test-secret",
		TokenDuration: time.Hour,
	}, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, token, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	s.NotEmpty(user.ID)
	s.Equal("alice", user.Username)
	s.NotEmpty(token)
	s.NotNil(user.PlayerCards)
	s.NotNil(user.Games)
	s.NotEqual("hunter22", user.PasswordHash)
}

func (s *ServiceSuite) TestRegisterPersistsUser() {
	user, _, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	stored, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, stored.ID)
}

func (s *ServiceSuite) TestRegisterRejectsShortUsername() {
	_, _, err := s.service.Register(s.ctx, "a", "hunter22")
	s.ErrorIs(err, ErrBadUsername)
}

func (s *ServiceSuite) TestRegisterRejectsLongUsername() {
	_, _, err := s.service.Register(s.ctx, "abcdefghijklmnopqrstu", "hunter22")
	s.ErrorIs(err, ErrBadUsername)
}

func (s *ServiceSuite) TestRegisterRejectsShortPassword() {
	_, _, err := s.service.Register(s.ctx, "alice", "12345")
	s.ErrorIs(err, ErrWeakPassword)
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateUsername() {
	_, _, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	_, _, err = s.service.Register(s.ctx, "alice", "other-password")
	s.ErrorIs(err, model.ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, _, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	user, token, err := s.service.Login(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.NotEmpty(token)
}

func (s *ServiceSuite) TestLoginRejectsWrongPassword() {
	_, _, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "alice", "wrong-password")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginRejectsUnknownUser() {
	_, _, err := s.service.Login(s.ctx, "nobody", "hunter22")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginAfterRegisterOnRedisStorage() {
	mini := miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	store := redisstorage.NewWithClient(client, redisstorage.DefaultConfig())

	service := New(store, s.clock, Config{
		Secret:        "test-secret",
		TokenDuration: time.Hour,
	}, testutil.NopLogger())

	registered, _, err := service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	// The stored document must carry the hash for the comparison to work
	user, token, err := service.Login(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.NotEmpty(token)
}

// Verify tests

func (s *ServiceSuite) TestVerifyRoundTrip() {
	registered, token, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	user, err := s.service.Verify(s.ctx, token)
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
}

func (s *ServiceSuite) TestVerifyRejectsExpiredToken() {
	_, token, err := s.service.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = s.service.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsGarbage() {
	_, err := s.service.Verify(s.ctx, "not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsWrongSecret() {
	other := New(s.storage, s.clock, Config{
		Secret:        "other-secret",
		TokenDuration: time.Hour,
	}, testutil.NopLogger())

	_, token, err := other.Register(s.ctx, "alice", "hunter22")
	s.Require().NoError(err)

	_, err = s.service.Verify(s.ctx, token)
	s.ErrorIs(err, ErrInvalidToken)
}
