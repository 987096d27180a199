package repository

import (
	"context"

	"trivia-arena/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByUsername 根据用户名查找用户。
	// 如果用户不存在，应返回 repository.ErrUserNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户。
	// 如果用户不存在，应返回 repository.ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save 保存用户信息。
	// 如果用户已存在 (基于 ID)，则更新；否则创建新用户。
	Save(ctx context.Context, user *domain.User) error

	// SetMatchState 原子地更新单个用户的比赛状态标记。
	SetMatchState(ctx context.Context, id uint, state string) error

	// TopByRating 按积分降序返回前 limit 名用户 (排行榜的数据库后备)。
	TopByRating(ctx context.Context, limit int) ([]domain.User, error)
}
