package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/repository"
)

// GormMatchRepository 是 MatchRepository 接口的 GORM 实现
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository 创建 GormMatchRepository 实例
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMatchRepository")
	}
	return &GormMatchRepository{db: db}
}

// Create 实现创建新的比赛记录
func (r *GormMatchRepository) Create(ctx context.Context, match *domain.Match) error {
	if match.Status == "" {
		match.Status = domain.MatchStatusPending
	}
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return fmt.Errorf("gorm: create match for player %d: %w", match.Player1ID, err)
	}
	return nil
}

// FindByID 实现根据 ID 查找比赛记录
func (r *GormMatchRepository) FindByID(ctx context.Context, id uint) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMatchNotFound
		}
		return nil, fmt.Errorf("gorm: find match by id %d: %w", id, err)
	}
	return &match, nil
}

// SetSecondPlayer 实现填充第二名玩家并推进状态
func (r *GormMatchRepository) SetSecondPlayer(ctx context.Context, matchID uint, playerID uint) error {
	result := r.db.WithContext(ctx).Model(&domain.Match{}).
		Where("id = ? AND player2_id IS NULL", matchID).
		Updates(map[string]interface{}{
			"player2_id": playerID,
			"status":     domain.MatchStatusInProgress,
		})
	if result.Error != nil {
		return fmt.Errorf("gorm: set second player %d on match %d: %w", playerID, matchID, result.Error)
	}
	if result.RowsAffected == 0 {
		// 记录不存在，或者槽位已被占用
		return repository.ErrMatchNotFound
	}
	return nil
}

// Void 实现作废比赛记录。只有未了结的记录可以作废：
// finished 是终态，清理任务与结算并发时不允许覆盖已结算的结果。
func (r *GormMatchRepository) Void(ctx context.Context, matchID uint) error {
	result := r.db.WithContext(ctx).Model(&domain.Match{}).
		Where("id = ? AND status IN ?", matchID,
			[]string{domain.MatchStatusPending, domain.MatchStatusInProgress}).
		Update("status", domain.MatchStatusVoid)
	if result.Error != nil {
		return fmt.Errorf("gorm: void match %d: %w", matchID, result.Error)
	}
	if result.RowsAffected == 0 {
		// 记录不存在，或已处于终态
		return repository.ErrMatchNotFound
	}
	return nil
}

// Finalize 在单个事务中落库一次结算。
// 比赛记录的最终字段和两名玩家的积分、统计、状态标记要么全部写入，
// 要么全部回滚，避免原始设计中逐字段写入造成的不一致。
func (r *GormMatchRepository) Finalize(ctx context.Context, settlement *domain.Settlement) error {
	if settlement == nil || len(settlement.Players) != 2 {
		return fmt.Errorf("gorm: settlement must contain exactly two players")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		matchUpdates := map[string]interface{}{
			"winner_id":     settlement.WinnerID,
			"delta_player1": settlement.Players[0].Delta,
			"delta_player2": settlement.Players[1].Delta,
			"status":        domain.MatchStatusFinished,
			"finished_at":   now,
		}
		result := tx.Model(&domain.Match{}).
			Where("id = ? AND status = ?", settlement.MatchID, domain.MatchStatusInProgress).
			Updates(matchUpdates)
		if result.Error != nil {
			return fmt.Errorf("finalize match %d: %w", settlement.MatchID, result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrMatchNotFound
		}

		for _, player := range settlement.Players {
			if err := applySettlementToUser(tx, settlement, player); err != nil {
				return err
			}
		}
		return nil
	})
}

// applySettlementToUser 更新单个玩家的积分、生涯统计和状态标记。
func applySettlementToUser(tx *gorm.DB, settlement *domain.Settlement, player domain.PlayerResult) error {
	var user domain.User
	if err := tx.First(&user, player.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("finalize: load user %d: %w", player.UserID, err)
	}

	user.Rating = player.NewRating
	user.MatchState = domain.MatchStateNone
	user.TotalGames++

	switch {
	case settlement.WinnerID == nil:
		user.TotalDraws++
		// 平局时连胜数保持不变
	case *settlement.WinnerID == player.UserID:
		user.TotalWins++
		user.Streak++
		if user.Streak > user.MaxStreak {
			user.MaxStreak = user.Streak
		}
	default:
		user.TotalLosses++
		user.Streak = 0
	}

	if err := tx.Save(&user).Error; err != nil {
		return fmt.Errorf("finalize: save user %d: %w", player.UserID, err)
	}
	return nil
}

// HistoryForUser 实现查询用户最近的已结算比赛
func (r *GormMatchRepository) HistoryForUser(ctx context.Context, userID uint, limit int) ([]domain.Match, error) {
	if limit <= 0 {
		limit = 10
	}
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("status = ? AND (player1_id = ? OR player2_id = ?)",
			domain.MatchStatusFinished, userID, userID).
		Order("finished_at DESC").
		Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: match history for user %d: %w", userID, err)
	}
	return matches, nil
}
