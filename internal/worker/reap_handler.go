package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"trivia-arena/internal/hub"
	"trivia-arena/internal/service"
)

// Pusher 是清理任务需要的推送能力，由连接网关实现。
type Pusher interface {
	SendTo(userID uint, event string, payload interface{})
}

// RoomReapHandler 处理周期性的超龄房间清理任务。
// 等待太久或进行中太久的房间被作废，受影响的玩家收到取消通知。
type RoomReapHandler struct {
	matchService *service.MatchService
	pusher       Pusher
	waitTimeout  time.Duration
	matchTimeout time.Duration
}

// NewRoomReapHandler 创建 Handler 实例
func NewRoomReapHandler(matchService *service.MatchService, pusher Pusher, waitTimeout, matchTimeout time.Duration) *RoomReapHandler {
	if matchService == nil {
		panic("MatchService cannot be nil for RoomReapHandler")
	}
	if pusher == nil {
		panic("Pusher cannot be nil for RoomReapHandler")
	}
	return &RoomReapHandler{
		matchService: matchService,
		pusher:       pusher,
		waitTimeout:  waitTimeout,
		matchTimeout: matchTimeout,
	}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *RoomReapHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	reaped := h.matchService.ReapStaleRooms(ctx, h.waitTimeout, h.matchTimeout)
	if len(reaped) == 0 {
		logCtx.Debug("No stale rooms found")
		return nil
	}

	for _, room := range reaped {
		for _, playerID := range room.Players {
			h.pusher.SendTo(playerID, hub.EventMatchCancelled, map[string]interface{}{
				"partidaId": room.ID,
				"motivo":    "timeout",
			})
		}
	}

	logCtx.WithField("reaped", len(reaped)).Warn("Stale rooms reaped and players notified")
	return nil
}
