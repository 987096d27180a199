package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/repository"
	"trivia-arena/internal/repository/mocks"
	"trivia-arena/internal/service"
)

func TestUserService_Ranking_PrefersLeaderboardCache(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockLeaderboard := new(mocks.LeaderboardRepository)
	svc := service.NewUserService(mockUserRepo, mockMatchRepo, mockLeaderboard)
	ctx := context.Background()

	cached := []repository.LeaderboardEntry{{UserID: 1, Rating: 1500}, {UserID: 2, Rating: 1400}}
	mockLeaderboard.On("Top", ctx, 10).Return(cached, nil).Once()

	entries, err := svc.Ranking(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, cached, entries)
	mockUserRepo.AssertNotCalled(t, "TopByRating", mock.Anything, mock.Anything)
}

func TestUserService_Ranking_FallsBackToDatabase(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockLeaderboard := new(mocks.LeaderboardRepository)
	svc := service.NewUserService(mockUserRepo, mockMatchRepo, mockLeaderboard)
	ctx := context.Background()

	mockLeaderboard.On("Top", ctx, 10).Return(nil, errors.New("redis down")).Once()
	mockUserRepo.On("TopByRating", ctx, 10).Return([]domain.User{
		{ID: 1, Rating: 1500},
		{ID: 2, Rating: 1400},
	}, nil).Once()

	entries, err := svc.Ranking(ctx, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(1), entries[0].UserID)
	assert.Equal(t, 1500, entries[0].Rating)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_GetProfile_ClearsPassword(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	svc := service.NewUserService(mockUserRepo, mockMatchRepo, nil)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(3)).Return(&domain.User{ID: 3, Username: "ana", Password: "hash", Rating: 1250}, nil).Once()

	user, err := svc.GetProfile(ctx, 3)

	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, 1250, user.Rating)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	svc := service.NewUserService(mockUserRepo, mockMatchRepo, nil)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.GetProfile(ctx, 99)

	assert.True(t, errors.Is(err, service.ErrUserNotFound))
}
