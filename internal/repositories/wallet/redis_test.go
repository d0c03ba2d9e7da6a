package wallet_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/wallet"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

const testPlayerID = "player_1"

type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	newRepo func() wallet.Repository
	cleanup func()
	repo    wallet.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() wallet.Repository {
		client, cleanup := testutils.CreateTestRedisClient(s.T())
		s.cleanup = cleanup
		repo, err := wallet.NewRedis(&wallet.RedisConfig{
			Client:          client,
			StartingBalance: wallet.DefaultStartingBalance,
		})
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}

func TestInMemoryRepositorySuite(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() wallet.Repository {
		return wallet.NewInMemory(wallet.DefaultStartingBalance)
	}
	suite.Run(t, s)
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cleanup = nil
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *RepositoryTestSuite) TestNewWalletStartsWithStartingBalance() {
	out, err := s.repo.GetBalance(s.ctx, &wallet.GetBalanceInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal(int64(12450), out.Balance)
}

func (s *RepositoryTestSuite) TestCreditIsAppliedOncePerReference() {
	first, err := s.repo.Credit(s.ctx, &wallet.CreditInput{
		PlayerID:  testPlayerID,
		Amount:    1100,
		Reference: "arena_1:victory",
	})
	s.Require().NoError(err)
	s.True(first.Applied)
	s.Equal(int64(13550), first.Balance)

	replay, err := s.repo.Credit(s.ctx, &wallet.CreditInput{
		PlayerID:  testPlayerID,
		Amount:    1100,
		Reference: "arena_1:victory",
	})
	s.Require().NoError(err)
	s.False(replay.Applied)
	s.Equal(int64(13550), replay.Balance)

	next, err := s.repo.Credit(s.ctx, &wallet.CreditInput{
		PlayerID:  testPlayerID,
		Amount:    50,
		Reference: "arena_2:victory",
	})
	s.Require().NoError(err)
	s.True(next.Applied)
	s.Equal(int64(13600), next.Balance)

	balance, err := s.repo.GetBalance(s.ctx, &wallet.GetBalanceInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal(int64(13600), balance.Balance)
}

func (s *RepositoryTestSuite) TestWalletsAreSeparate() {
	_, err := s.repo.Credit(s.ctx, &wallet.CreditInput{PlayerID: "a", Amount: 10, Reference: "r"})
	s.Require().NoError(err)
	out, err := s.repo.Credit(s.ctx, &wallet.CreditInput{PlayerID: "b", Amount: 20, Reference: "r"})
	s.Require().NoError(err)
	s.True(out.Applied)
	s.Equal(int64(12470), out.Balance)
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	testCases := []struct {
		name  string
		input *wallet.CreditInput
	}{
		{"nil input", nil},
		{"missing player", &wallet.CreditInput{Amount: 1, Reference: "r"}},
		{"missing reference", &wallet.CreditInput{PlayerID: "p", Amount: 1}},
		{"zero amount", &wallet.CreditInput{PlayerID: "p", Reference: "r"}},
		{"negative amount", &wallet.CreditInput{PlayerID: "p", Amount: -5, Reference: "r"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Credit(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}

	_, err := s.repo.GetBalance(s.ctx, &wallet.GetBalanceInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisConfigValidation(t *testing.T) {
	_, err := wallet.NewRedis(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	_, err = wallet.NewRedis(&wallet.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestRedisCorruptBalance(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		_ = mr.Set("wallet:"+testPlayerID+":balance", "lots")
	})
	defer cleanup()

	repo, err := wallet.NewRedis(&wallet.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	_, err = repo.GetBalance(context.Background(), &wallet.GetBalanceInput{PlayerID: testPlayerID})
	if !errors.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
