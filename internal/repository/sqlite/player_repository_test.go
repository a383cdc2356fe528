package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lbraga/millionaire/internal/repository"
	"github.com/lbraga/millionaire/internal/repository/sqlite"
	"github.com/lbraga/millionaire/internal/testutil"
)

type PlayerRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.PlayerRepository
}

func (s *PlayerRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewPlayerRepository(s.db)
}

func (s *PlayerRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PlayerRepositorySuite) TestUpsert() {
	ctx := context.Background()

	created, err := s.repo.Upsert(ctx, "vera")
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.Equal("vera", created.Username)
	s.Equal(0, created.Balance)

	// Upserting the same username keeps the row and the balance.
	_, err = s.db.ExecContext(ctx, `UPDATE players SET balance = 500 WHERE id = ?`, created.ID)
	s.Require().NoError(err)

	again, err := s.repo.Upsert(ctx, "vera")
	s.Require().NoError(err)
	s.Equal(created.ID, again.ID)
	s.Equal(500, again.Balance)
}

func (s *PlayerRepositorySuite) TestGetAndList() {
	ctx := context.Background()

	p1, err := s.repo.Upsert(ctx, "vera")
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, "max")
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, p1.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("vera", got.Username)

	missing, err := s.repo.Get(ctx, 999)
	s.Require().NoError(err)
	s.Nil(missing)

	players, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *PlayerRepositorySuite) TestDelete() {
	ctx := context.Background()

	p, err := s.repo.Upsert(ctx, "vera")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, p.ID))

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(got)
}

func TestPlayerRepositorySuite(t *testing.T) {
	suite.Run(t, new(PlayerRepositorySuite))
}
