package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"trivia-arena/internal/repository"
	"trivia-arena/internal/tasks"
)

// LeaderboardSyncHandler 处理排行榜同步任务：把结算后的新积分
// 写进 Redis 排行榜镜像。数据库已经是事实来源，任务失败重试即可。
type LeaderboardSyncHandler struct {
	leaderboardRepo repository.LeaderboardRepository
}

// NewLeaderboardSyncHandler 创建 Handler 实例
func NewLeaderboardSyncHandler(leaderboardRepo repository.LeaderboardRepository) *LeaderboardSyncHandler {
	if leaderboardRepo == nil {
		panic("LeaderboardRepository cannot be nil for LeaderboardSyncHandler")
	}
	return &LeaderboardSyncHandler{leaderboardRepo: leaderboardRepo}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *LeaderboardSyncHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
	})

	var payload tasks.LeaderboardSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal leaderboard sync payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.leaderboardRepo.UpdateScore(ctx, payload.UserID, payload.Rating); err != nil {
		logCtx.WithError(err).Errorf("Failed to sync leaderboard score for user %d", payload.UserID)
		return fmt.Errorf("failed to sync score for user %d: %w", payload.UserID, err)
	}

	logCtx.WithFields(logrus.Fields{"user_id": payload.UserID, "rating": payload.Rating}).Info("Leaderboard score synced")
	return nil
}
