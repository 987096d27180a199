package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trivia-arena/internal/domain"
)

// MigrateDB 执行所有数据库迁移。
// 返回错误以便调用者知道迁移是否成功。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&domain.User{},
		&domain.Match{},
		&domain.Question{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	// 启动时把遗留的中间状态清理掉：进程重启后内存房间全部丢失，
	// 任何仍处于 pending/in_progress 的记录都不可能再完成。
	if err := voidOrphanedMatches(db); err != nil {
		return err
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// voidOrphanedMatches 作废没有对应内存房间的未完成比赛，
// 并把被牵连用户的比赛状态标记复位。
func voidOrphanedMatches(db *gorm.DB) error {
	result := db.Model(&domain.Match{}).
		Where("status IN ?", []string{domain.MatchStatusPending, domain.MatchStatusInProgress}).
		Update("status", domain.MatchStatusVoid)
	if result.Error != nil {
		return fmt.Errorf("failed to void orphaned matches: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logrus.Warnf("Voided %d orphaned matches from a previous run", result.RowsAffected)
	}

	reset := db.Model(&domain.User{}).
		Where("match_state <> ?", domain.MatchStateNone).
		Update("match_state", domain.MatchStateNone)
	if reset.Error != nil {
		return fmt.Errorf("failed to reset user match states: %w", reset.Error)
	}
	if reset.RowsAffected > 0 {
		logrus.Warnf("Reset match state for %d users from a previous run", reset.RowsAffected)
	}
	return nil
}
