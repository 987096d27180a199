package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/repository"
)

// UserService 负责用户资料、排行榜和比赛历史的查询逻辑。
type UserService struct {
	userRepo        repository.UserRepository
	matchRepo       repository.MatchRepository
	leaderboardRepo repository.LeaderboardRepository // 可为 nil，此时排行榜直接走数据库
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository, matchRepo repository.MatchRepository, leaderboardRepo repository.LeaderboardRepository) *UserService {
	if userRepo == nil || matchRepo == nil {
		panic("UserRepository and MatchRepository cannot be nil for UserService")
	}
	return &UserService{
		userRepo:        userRepo,
		matchRepo:       matchRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// GetProfile 返回用户资料 (密码哈希已清除)。
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to load user profile")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

// GetProfileByName 根据用户名返回用户资料。
func (s *UserService) GetProfileByName(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithField("username", username).WithError(err).Error("Failed to load user profile by name")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

// Ranking 返回按积分降序的前 limit 名。优先读 Redis 排行榜镜像，
// 镜像不可用或为空时回落到数据库。
func (s *UserService) Ranking(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.leaderboardRepo != nil {
		entries, err := s.leaderboardRepo.Top(ctx, limit)
		if err != nil {
			logrus.WithError(err).Warn("Leaderboard cache unavailable, falling back to database")
		} else if len(entries) > 0 {
			return entries, nil
		}
	}

	users, err := s.userRepo.TopByRating(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to load ranking from database")
		return nil, ErrInternalServer
	}
	entries := make([]repository.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, repository.LeaderboardEntry{UserID: u.ID, Rating: u.Rating})
	}
	return entries, nil
}

// MatchHistory 返回用户最近 limit 场已结算的比赛。
func (s *UserService) MatchHistory(ctx context.Context, userID uint, limit int) ([]domain.Match, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	matches, err := s.matchRepo.HistoryForUser(ctx, userID, limit)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to load match history")
		return nil, ErrInternalServer
	}
	return matches, nil
}
