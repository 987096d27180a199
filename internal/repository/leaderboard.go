package repository

import "context"

// LeaderboardEntry 是排行榜中的一行。
type LeaderboardEntry struct {
	UserID uint `json:"id"`
	Rating int  `json:"puntuacion"`
}

// LeaderboardRepository 定义了实时排行榜的操作，通常由 Redis 实现。
// 排行榜是积分的镜像缓存，数据库才是积分的事实来源。
type LeaderboardRepository interface {
	// UpdateScore 写入或更新一名用户的排行榜积分。
	UpdateScore(ctx context.Context, userID uint, rating int) error

	// Top 按积分降序返回前 limit 名。排行榜为空时返回空切片。
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// RemoveUser 从排行榜移除一名用户。
	RemoveUser(ctx context.Context, userID uint) error
}
