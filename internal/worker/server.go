package worker

import (
	"context"
	"errors"
	"net/http" // 需要导入 http 以检查 ErrServerClosed
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"trivia-arena/internal/repository"
	"trivia-arena/internal/service"
	"trivia-arena/internal/tasks"
)

// WorkerServer 封装了 Asynq Worker Server 的启动和关闭逻辑
type WorkerServer struct {
	server          *asynq.Server
	log             *logrus.Entry
	leaderboardRepo repository.LeaderboardRepository
	matchService    *service.MatchService
	pusher          Pusher
	waitTimeout     time.Duration
	matchTimeout    time.Duration
}

// NewWorkerServer 创建一个新的 WorkerServer 实例
func NewWorkerServer(
	redisOpt asynq.RedisClientOpt,
	leaderboardRepo repository.LeaderboardRepository,
	matchService *service.MatchService,
	pusher Pusher,
	waitTimeout, matchTimeout time.Duration,
	logger *logrus.Logger,
) *WorkerServer {
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10, // 可以从配置读取
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				taskID := ""
				if rw := task.ResultWriter(); rw != nil {
					taskID = rw.TaskID()
				}
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_id":   taskID,
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
		},
	)

	return &WorkerServer{
		server:          server,
		log:             logEntry,
		leaderboardRepo: leaderboardRepo,
		matchService:    matchService,
		pusher:          pusher,
		waitTimeout:     waitTimeout,
		matchTimeout:    matchTimeout,
	}
}

// Start 运行 Worker Server
// 它应该在一个单独的 goroutine 中调用
func (ws *WorkerServer) Start() {
	mux := asynq.NewServeMux()

	// 注册任务处理器
	leaderboardHandler := NewLeaderboardSyncHandler(ws.leaderboardRepo)
	mux.HandleFunc(tasks.TypeLeaderboardSync, leaderboardHandler.ProcessTask)

	reapHandler := NewRoomReapHandler(ws.matchService, ws.pusher, ws.waitTimeout, ws.matchTimeout)
	mux.HandleFunc(tasks.TypeRoomReap, reapHandler.ProcessTask)

	ws.log.Info("Worker server starting...")
	if err := ws.server.Run(mux); err != nil {
		// 检查是否是正常关闭错误
		if !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, asynq.ErrServerClosed) {
			ws.log.Fatalf("Could not run worker server: %v", err)
		} else {
			ws.log.Info("Worker server stopped.")
		}
	}
}

// Shutdown 优雅地停止 Worker Server
func (ws *WorkerServer) Shutdown() {
	ws.server.Shutdown()
}
