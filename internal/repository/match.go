package repository

import (
	"context"

	"trivia-arena/internal/domain"
)

// MatchRepository 定义了比赛记录的存储和检索操作。
type MatchRepository interface {
	// Create 创建一条新的比赛记录 (pending 状态，Player2 为空)。
	// 成功后填充 match.ID。
	Create(ctx context.Context, match *domain.Match) error

	// FindByID 根据比赛 ID 查找记录。
	// 如果记录不存在，应返回 repository.ErrMatchNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Match, error)

	// SetSecondPlayer 填充第二名玩家并将记录置为 in_progress。
	SetSecondPlayer(ctx context.Context, matchID uint, playerID uint) error

	// Void 将未了结的记录标记为作废 (取消或清理)。
	// 记录不存在或已处于终态时返回 repository.ErrMatchNotFound，
	// 已结算的结果不可被作废覆盖。
	Void(ctx context.Context, matchID uint) error

	// Finalize 在单个数据库事务中完成结算：
	// 写入胜者和双方积分变化、置为 finished，并更新两名玩家的
	// 积分、生涯统计和比赛状态标记。任一写入失败则整体回滚。
	Finalize(ctx context.Context, settlement *domain.Settlement) error

	// HistoryForUser 返回用户最近 limit 场已结算的比赛，按时间倒序。
	HistoryForUser(ctx context.Context, userID uint, limit int) ([]domain.Match, error)
}
