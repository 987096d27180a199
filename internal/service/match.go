package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/rating"
	"trivia-arena/internal/repository"
	"trivia-arena/internal/tasks"
)

// MatchConfig 是 Session Manager 的可调参数。
type MatchConfig struct {
	RatingWindow      int // 配对容差窗口 (默认 ±200)
	QuestionsPerMatch int // 每局题目数 (默认 10)
	KFactor           int // ELO K 值 (默认 20)
}

// withDefaults 填充未设置的参数。
func (c MatchConfig) withDefaults() MatchConfig {
	if c.RatingWindow <= 0 {
		c.RatingWindow = 200
	}
	if c.QuestionsPerMatch <= 0 {
		c.QuestionsPerMatch = 10
	}
	if c.KFactor <= 0 {
		c.KFactor = rating.DefaultKFactor
	}
	return c
}

// TaskEnqueuer 抽象 asynq.Client，便于测试。
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PairingResult 是一次匹配请求的结果，由调用方 (Hub) 转换为推送事件。
type PairingResult struct {
	Created bool // true = 新建了等待房间；false = 加入了已有房间
	MatchID uint
	// 以下字段仅在 Created == false (成功加入) 时填充
	Players   []uint // 有序，创建者在前
	Questions []domain.Question
}

// MatchService 是比赛会话管理器：配对、房间生命周期、题目分发、
// 结果收集和 ELO 结算的唯一协调者。
type MatchService struct {
	userRepo     repository.UserRepository
	matchRepo    repository.MatchRepository
	questionRepo repository.QuestionRepository
	registry     *RoomRegistry
	engine       *rating.Engine
	asynqClient  TaskEnqueuer // 可为 nil (测试场景)，入队失败只记日志
	cfg          MatchConfig

	// pairingMu 串行化 搜索+创建/加入 序列，保证两个并发的匹配请求
	// 不会各自创建出都自认为是"那个"等待房间的两个房间。
	// 锁内的存储 I/O 是刻意的取舍：匹配请求频率低，正确性优先。
	pairingMu sync.Mutex
}

// NewMatchService 创建 MatchService 实例。
func NewMatchService(
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
	questionRepo repository.QuestionRepository,
	registry *RoomRegistry,
	asynqClient TaskEnqueuer,
	cfg MatchConfig,
) (*MatchService, error) {
	if userRepo == nil || matchRepo == nil || questionRepo == nil {
		panic("all repositories must be non-nil for MatchService")
	}
	if registry == nil {
		panic("RoomRegistry cannot be nil for MatchService")
	}
	cfg = cfg.withDefaults()
	engine, err := rating.NewEngine(cfg.KFactor)
	if err != nil {
		return nil, err
	}
	return &MatchService{
		userRepo:     userRepo,
		matchRepo:    matchRepo,
		questionRepo: questionRepo,
		registry:     registry,
		engine:       engine,
		asynqClient:  asynqClient,
		cfg:          cfg,
	}, nil
}

// RequestMatch 处理一次匹配请求：扫描等待房间，命中则加入并分发题目，
// 否则新建等待房间。整个 搜索+创建/加入 对其他匹配请求原子。
func (s *MatchService) RequestMatch(ctx context.Context, playerID uint) (*PairingResult, error) {
	logCtx := logrus.WithField("player_id", playerID)

	s.pairingMu.Lock()
	defer s.pairingMu.Unlock()

	// 1. 前置条件：玩家的持久化状态必须是 none
	user, err := s.userRepo.FindByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("RequestMatch: failed to load player")
		return nil, ErrStoreUnavailable
	}
	if user.MatchState != domain.MatchStateNone {
		logCtx.WithField("match_state", user.MatchState).Warn("RequestMatch: player already pairing or in match")
		return nil, ErrAlreadyInMatch
	}

	// 2. 配对扫描：积分容差窗口内的第一个等待房间
	roomID, found := s.registry.FindWaitingWithin(playerID, user.Rating, s.cfg.RatingWindow)
	if found {
		return s.joinRoom(ctx, roomID, user)
	}
	return s.createRoom(ctx, user)
}

// createRoom 新建等待房间：先落库比赛记录，再更新玩家状态，最后登记内存房间。
func (s *MatchService) createRoom(ctx context.Context, user *domain.User) (*PairingResult, error) {
	logCtx := logrus.WithField("player_id", user.ID)

	match := &domain.Match{Player1ID: user.ID}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		logCtx.WithError(err).Error("RequestMatch: failed to create match record")
		return nil, ErrStoreUnavailable
	}
	if err := s.userRepo.SetMatchState(ctx, user.ID, domain.MatchStatePairing); err != nil {
		logCtx.WithError(err).Error("RequestMatch: failed to mark player as pairing, voiding match")
		if voidErr := s.matchRepo.Void(ctx, match.ID); voidErr != nil {
			logCtx.WithError(voidErr).Error("RequestMatch: rollback void failed")
		}
		return nil, ErrStoreUnavailable
	}

	s.registry.Add(match.ID, user.ID, user.Rating)
	logCtx.WithField("match_id", match.ID).Info("Waiting room created")
	return &PairingResult{Created: true, MatchID: match.ID}, nil
}

// joinRoom 加入等待房间。题目在加入落库之前抽取：
// 题库为空时整个加入失败，等待房间原样保留，不会产生
// 没有完成路径的 in_progress 房间。
func (s *MatchService) joinRoom(ctx context.Context, roomID uint, user *domain.User) (*PairingResult, error) {
	logCtx := logrus.WithFields(logrus.Fields{"player_id": user.ID, "match_id": roomID})

	snapshot, ok := s.registry.Snapshot(roomID)
	if !ok || snapshot.State != RoomWaiting {
		// pairingMu 持有期间不应发生，防御
		logCtx.Warn("RequestMatch: candidate room vanished during join")
		return nil, ErrMatchNotFound
	}
	creatorID := snapshot.Players[0]

	// 3. 先抽题
	questions, err := s.questionRepo.FindRandom(ctx, s.cfg.QuestionsPerMatch)
	if err != nil {
		logCtx.WithError(err).Error("RequestMatch: failed to draw questions")
		return nil, ErrStoreUnavailable
	}
	if len(questions) == 0 {
		logCtx.Warn("RequestMatch: question pool is empty, join aborted")
		return nil, ErrNoQuestions
	}

	// 4. 落库：填充第二名玩家，双方状态置为 in_match
	if err := s.matchRepo.SetSecondPlayer(ctx, roomID, user.ID); err != nil {
		logCtx.WithError(err).Error("RequestMatch: failed to persist second player")
		return nil, ErrStoreUnavailable
	}
	if err := s.setMatchStates(ctx, domain.MatchStateInMatch, creatorID, user.ID); err != nil {
		// 记录已推进到 in_progress 但玩家状态写失败：整体作废，避免不一致
		logCtx.WithError(err).Error("RequestMatch: failed to mark players in match, voiding room")
		s.voidRoomBestEffort(ctx, roomID, creatorID, user.ID)
		return nil, ErrStoreUnavailable
	}

	if !s.registry.Join(roomID, user.ID, len(questions)) {
		logCtx.Error("RequestMatch: registry join failed after persistence")
		s.voidRoomBestEffort(ctx, roomID, creatorID, user.ID)
		return nil, ErrStoreUnavailable
	}

	logCtx.WithField("opponent_id", creatorID).Info("Player joined room, match starting")
	return &PairingResult{
		Created:   false,
		MatchID:   roomID,
		Players:   []uint{creatorID, user.ID},
		Questions: questions,
	}, nil
}

// CancelMatch 取消等待中的匹配。房间一旦进入 in_progress 即不可经此
// 路径拆除。
func (s *MatchService) CancelMatch(ctx context.Context, playerID uint) error {
	logCtx := logrus.WithField("player_id", playerID)

	s.pairingMu.Lock()
	defer s.pairingMu.Unlock()

	roomID, state, ok := s.registry.RoomOfPlayer(playerID)
	if !ok {
		return ErrMatchNotFound
	}
	if state != RoomWaiting {
		return ErrMatchAlreadyStarted
	}

	if err := s.matchRepo.Void(ctx, roomID); err != nil {
		logCtx.WithError(err).Error("CancelMatch: failed to void match record")
		return ErrStoreUnavailable
	}
	if err := s.userRepo.SetMatchState(ctx, playerID, domain.MatchStateNone); err != nil {
		logCtx.WithError(err).Error("CancelMatch: failed to reset player state")
		return ErrStoreUnavailable
	}
	s.registry.Remove(roomID)
	logCtx.WithField("match_id", roomID).Info("Waiting room cancelled")
	return nil
}

// ReportResult 记录一名玩家的自报成绩。补齐最后一个缺口的上报触发
// 结算并返回结算结果；否则返回 (nil, nil) 表示继续等待。
// 同一玩家重复上报是幂等覆盖，不报错。
func (s *MatchService) ReportResult(ctx context.Context, matchID uint, playerID uint, correct int) (*domain.Settlement, error) {
	logCtx := logrus.WithFields(logrus.Fields{"match_id": matchID, "player_id": playerID, "correct": correct})

	status, snapshot := s.registry.Report(matchID, playerID, correct)
	switch status {
	case reportUnknownRoom:
		return nil, ErrMatchNotFound
	case reportInvalidCount:
		return nil, ErrInvalidReport
	case reportNotParticipant:
		return nil, ErrPlayerNotInMatch
	case reportNotStarted:
		return nil, ErrMatchNotFound
	case reportFinalizing:
		return nil, ErrRoomFinalized
	case reportRecorded:
		logCtx.Debug("Result recorded, waiting for opponent")
		return nil, nil
	}

	// reportCompleted: 双方成绩齐备，结算恰好触发一次
	settlement, err := s.settle(ctx, snapshot)
	if err != nil {
		// 失败则放回 in_progress，任意一方重发上报可重试结算
		s.registry.Reopen(matchID)
		return nil, err
	}
	s.registry.Remove(matchID)
	s.enqueueLeaderboardSync(settlement)
	return settlement, nil
}

// settle 执行结算算法 (胜负判定 → ELO 期望 → delta → 单事务落库)。
func (s *MatchService) settle(ctx context.Context, room *RoomSnapshot) (*domain.Settlement, error) {
	playerA, playerB := room.Players[0], room.Players[1]
	correctA, correctB := room.Reports[playerA], room.Reports[playerB]
	logCtx := logrus.WithFields(logrus.Fields{
		"match_id": room.ID,
		"player_a": playerA,
		"player_b": playerB,
	})

	ratingA, err := s.currentRating(ctx, playerA)
	if err != nil {
		return nil, err
	}
	ratingB, err := s.currentRating(ctx, playerB)
	if err != nil {
		return nil, err
	}

	outcome := rating.OutcomeFromCounts(correctA, correctB)
	deltaA, deltaB := s.engine.ComputeDeltas(ratingA, ratingB, outcome)

	var winnerID *uint
	switch outcome {
	case rating.OutcomeWinA:
		winnerID = &playerA
	case rating.OutcomeWinB:
		winnerID = &playerB
	}

	settlement := &domain.Settlement{
		MatchID:        room.ID,
		TotalQuestions: room.TotalQuestions,
		WinnerID:       winnerID,
		Players: []domain.PlayerResult{
			{UserID: playerA, Reported: correctA, Delta: deltaA, NewRating: ratingA + deltaA},
			{UserID: playerB, Reported: correctB, Delta: deltaB, NewRating: ratingB + deltaB},
		},
	}

	if err := s.matchRepo.Finalize(ctx, settlement); err != nil {
		logCtx.WithError(err).Error("Settlement transaction failed")
		return nil, ErrStoreUnavailable
	}
	logCtx.WithFields(logrus.Fields{
		"delta_a": deltaA,
		"delta_b": deltaB,
		"draw":    winnerID == nil,
	}).Info("Match settled")
	return settlement, nil
}

// currentRating 读取玩家当前积分，记录缺失时按默认值 1200 处理。
func (s *MatchService) currentRating(ctx context.Context, playerID uint) (int, error) {
	user, err := s.userRepo.FindByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithField("player_id", playerID).Warn("Settlement: player record missing, assuming default rating")
			return domain.DefaultRating, nil
		}
		logrus.WithField("player_id", playerID).WithError(err).Error("Settlement: failed to load rating")
		return 0, ErrStoreUnavailable
	}
	return user.Rating, nil
}

// ReapStaleRooms 作废超龄房间：等待超过 waitTimeout 或进行中超过
// matchTimeout 的房间被移除、记录作废、玩家状态复位。
// 返回被清理房间的快照，调用方负责通知受影响的玩家。
func (s *MatchService) ReapStaleRooms(ctx context.Context, waitTimeout, matchTimeout time.Duration) []*RoomSnapshot {
	s.pairingMu.Lock()
	defer s.pairingMu.Unlock()

	stale := s.registry.Stale(waitTimeout, matchTimeout)
	reaped := make([]*RoomSnapshot, 0, len(stale))
	for _, room := range stale {
		logCtx := logrus.WithFields(logrus.Fields{"match_id": room.ID, "state": room.State})
		if !s.voidRoomBestEffort(ctx, room.ID, room.Players...) {
			// 快照取出后、作废之前完成了结算：结果已落库，
			// 玩家已收到结算推送，这间房不算被清理
			logCtx.Info("Room settled before reap, leaving record untouched")
			continue
		}
		reaped = append(reaped, room)
		logCtx.Warn("Stale room reaped")
	}
	return reaped
}

// voidRoomBestEffort 作废记录、复位玩家、移除房间，逐项记录失败。
// 仅用于清理路径，正常结算走 Finalize 事务。
// 返回 false 表示记录已处于终态，此时不碰玩家状态：
// 结算事务已经把双方复位并写入了新积分。
func (s *MatchService) voidRoomBestEffort(ctx context.Context, matchID uint, players ...uint) bool {
	if err := s.matchRepo.Void(ctx, matchID); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			s.registry.Remove(matchID)
			return false
		}
		logrus.WithField("match_id", matchID).WithError(err).Error("Failed to void match record")
	}
	if err := s.setMatchStates(ctx, domain.MatchStateNone, players...); err != nil {
		logrus.WithField("match_id", matchID).WithError(err).Error("Failed to reset player states")
	}
	s.registry.Remove(matchID)
	return true
}

// setMatchStates 更新一组玩家的比赛状态标记，返回第一个错误。
func (s *MatchService) setMatchStates(ctx context.Context, state string, players ...uint) error {
	for _, playerID := range players {
		if err := s.userRepo.SetMatchState(ctx, playerID, state); err != nil {
			return err
		}
	}
	return nil
}

// enqueueLeaderboardSync 把双方的新积分推进排行榜同步队列。
// 入队失败只记日志：排行榜是镜像，数据库已是事实来源。
func (s *MatchService) enqueueLeaderboardSync(settlement *domain.Settlement) {
	if s.asynqClient == nil {
		return
	}
	for _, player := range settlement.Players {
		payload, err := tasks.NewLeaderboardSyncTask(player.UserID, player.NewRating)
		if err != nil {
			logrus.WithField("user_id", player.UserID).WithError(err).Error("Failed to build leaderboard sync payload")
			continue
		}
		task := asynq.NewTask(tasks.TypeLeaderboardSync, payload)
		if _, err := s.asynqClient.Enqueue(task, asynq.Queue("low")); err != nil {
			logrus.WithField("user_id", player.UserID).WithError(err).Error("Failed to enqueue leaderboard sync task")
		}
	}
}
