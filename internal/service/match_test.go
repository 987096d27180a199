package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/repository"
	"trivia-arena/internal/repository/mocks"
	"trivia-arena/internal/service"
)

// newMatchService 组装一个带全套 Mock 仓库的 MatchService。
// asynq 客户端为 nil：排行榜同步是尽力而为的，不影响结算语义。
func newMatchService(t *testing.T, userRepo *mocks.UserRepository, matchRepo *mocks.MatchRepository, questionRepo *mocks.QuestionRepository, registry *service.RoomRegistry) *service.MatchService {
	t.Helper()
	svc, err := service.NewMatchService(userRepo, matchRepo, questionRepo, registry, nil, service.MatchConfig{})
	require.NoError(t, err, "创建 MatchService 不应失败")
	return svc
}

func idleUser(id uint, ratingValue int) *domain.User {
	return &domain.User{ID: id, Username: "player", Rating: ratingValue, MatchState: domain.MatchStateNone}
}

func sampleQuestions(n int) []domain.Question {
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{ID: uint(i + 1), Text: "q", CorrectAnswer: "a", Topic: "general"}
	}
	return questions
}

// expectCreateRoom 设置 "创建等待房间" 路径的 Mock 预期。
func expectCreateRoom(userRepo *mocks.UserRepository, matchRepo *mocks.MatchRepository, user *domain.User, matchID uint) {
	ctx := context.Background()
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()
	matchRepo.On("Create", ctx, mock.AnythingOfType("*domain.Match")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Match).ID = matchID
		}).
		Return(nil).Once()
	userRepo.On("SetMatchState", ctx, user.ID, domain.MatchStatePairing).Return(nil).Once()
}

// --- RequestMatch ---

func TestMatchService_RequestMatch_CreatesRoomWhenNoneWaiting(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)

	result, err := svc.RequestMatch(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Created, "没有等待房间时应新建")
	assert.Equal(t, uint(42), result.MatchID)
	assert.Equal(t, 1, registry.Len())
	mockUserRepo.AssertExpectations(t)
	mockMatchRepo.AssertExpectations(t)
}

func TestMatchService_RequestMatch_JoinsRoomWithinRatingWindow(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	ctx := context.Background()

	// 玩家 1 (积分 1200) 创建等待房间
	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	// 玩家 2 的积分差恰好在容差边界上 (1200 + 200)
	mockUserRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1400), nil).Once()
	mockQuestionRepo.On("FindRandom", ctx, 10).Return(sampleQuestions(10), nil).Once()
	mockMatchRepo.On("SetSecondPlayer", ctx, uint(42), uint(2)).Return(nil).Once()
	mockUserRepo.On("SetMatchState", ctx, uint(1), domain.MatchStateInMatch).Return(nil).Once()
	mockUserRepo.On("SetMatchState", ctx, uint(2), domain.MatchStateInMatch).Return(nil).Once()

	result, err := svc.RequestMatch(ctx, 2)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Created, "容差窗口内应加入已有房间")
	assert.Equal(t, uint(42), result.MatchID)
	assert.Equal(t, []uint{1, 2}, result.Players, "创建者应排在参与者列表首位")
	assert.Len(t, result.Questions, 10)
	mockUserRepo.AssertExpectations(t)
	mockMatchRepo.AssertExpectations(t)
	mockQuestionRepo.AssertExpectations(t)
}

func TestMatchService_RequestMatch_CreatesNewRoomOutsideRatingWindow(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	ctx := context.Background()

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	// 积分差 201，超出窗口，应另起炉灶
	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(2, 1401), 43)

	result, err := svc.RequestMatch(ctx, 2)

	require.NoError(t, err)
	assert.True(t, result.Created, "超出容差窗口应新建房间")
	assert.Equal(t, uint(43), result.MatchID)
	assert.Equal(t, 2, registry.Len())
	mockQuestionRepo.AssertNotCalled(t, "FindRandom", mock.Anything, mock.Anything)
}

func TestMatchService_RequestMatch_RejectsPlayerAlreadyPairing(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())
	ctx := context.Background()

	pairingUser := idleUser(1, 1200)
	pairingUser.MatchState = domain.MatchStatePairing
	mockUserRepo.On("FindByID", ctx, uint(1)).Return(pairingUser, nil).Once()

	_, err := svc.RequestMatch(ctx, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrAlreadyInMatch))
	mockMatchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMatchService_RequestMatch_EmptyQuestionPoolLeavesWaitingRoomIntact(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	ctx := context.Background()

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	mockUserRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1250), nil).Once()
	mockQuestionRepo.On("FindRandom", ctx, 10).Return([]domain.Question{}, nil).Once()

	_, err = svc.RequestMatch(ctx, 2)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoQuestions))
	// 等待房间保持原样，加入方没有留下任何状态变化
	_, state, ok := registry.RoomOfPlayer(1)
	require.True(t, ok)
	assert.Equal(t, service.RoomWaiting, state)
	mockMatchRepo.AssertNotCalled(t, "SetSecondPlayer", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "SetMatchState", mock.Anything, uint(2), mock.Anything)
}

// --- CancelMatch ---

func TestMatchService_CancelMatch_VoidsWaitingRoom(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	ctx := context.Background()

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	mockMatchRepo.On("Void", ctx, uint(42)).Return(nil).Once()
	mockUserRepo.On("SetMatchState", ctx, uint(1), domain.MatchStateNone).Return(nil).Once()

	err = svc.CancelMatch(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 0, registry.Len(), "取消后房间应被移除")
	mockMatchRepo.AssertExpectations(t)
}

func TestMatchService_CancelMatch_RejectsStartedMatch(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)

	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)

	err := svc.CancelMatch(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrMatchAlreadyStarted))
	assert.Equal(t, 1, registry.Len(), "进行中的房间不应被取消")
	mockMatchRepo.AssertNotCalled(t, "Void", mock.Anything, mock.Anything)
}

func TestMatchService_CancelMatch_UnknownPlayer(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())

	err := svc.CancelMatch(context.Background(), 99)

	assert.True(t, errors.Is(err, service.ErrMatchNotFound))
}

// --- ReportResult ---

// startInProgressMatch 把玩家 1 (1200 分) 和玩家 2 (1200 分) 送进
// 42 号房间并开始比赛，10 道题。
func startInProgressMatch(t *testing.T, svc *service.MatchService, userRepo *mocks.UserRepository, matchRepo *mocks.MatchRepository, questionRepo *mocks.QuestionRepository) {
	t.Helper()
	ctx := context.Background()

	expectCreateRoom(userRepo, matchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1200), nil).Once()
	questionRepo.On("FindRandom", ctx, 10).Return(sampleQuestions(10), nil).Once()
	matchRepo.On("SetSecondPlayer", ctx, uint(42), uint(2)).Return(nil).Once()
	userRepo.On("SetMatchState", ctx, uint(1), domain.MatchStateInMatch).Return(nil).Once()
	userRepo.On("SetMatchState", ctx, uint(2), domain.MatchStateInMatch).Return(nil).Once()
	_, err = svc.RequestMatch(ctx, 2)
	require.NoError(t, err)
}

func TestMatchService_ReportResult_FirstReportWaitsForOpponent(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)

	settlement, err := svc.ReportResult(context.Background(), 42, 1, 7)

	require.NoError(t, err)
	assert.Nil(t, settlement, "首个上报不应触发结算")
	mockMatchRepo.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)
}

func TestMatchService_ReportResult_SecondReportTriggersSettlement(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)
	ctx := context.Background()

	// 结算需要重新读取双方积分
	mockUserRepo.On("FindByID", ctx, uint(1)).Return(idleUser(1, 1200), nil).Once()
	mockUserRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1200), nil).Once()
	mockMatchRepo.On("Finalize", ctx, mock.AnythingOfType("*domain.Settlement")).Return(nil).Once()

	_, err := svc.ReportResult(ctx, 42, 1, 7)
	require.NoError(t, err)
	settlement, err := svc.ReportResult(ctx, 42, 2, 4)

	require.NoError(t, err)
	require.NotNil(t, settlement, "第二个上报应触发结算")
	assert.Equal(t, uint(42), settlement.MatchID)
	assert.Equal(t, 10, settlement.TotalQuestions)
	require.NotNil(t, settlement.WinnerID)
	assert.Equal(t, uint(1), *settlement.WinnerID)
	// 同分对手，K=20: 胜者 +10，负者 -10
	require.Len(t, settlement.Players, 2)
	assert.Equal(t, 10, settlement.Players[0].Delta)
	assert.Equal(t, 1210, settlement.Players[0].NewRating)
	assert.Equal(t, -10, settlement.Players[1].Delta)
	assert.Equal(t, 1190, settlement.Players[1].NewRating)
	assert.Equal(t, 0, registry.Len(), "结算后房间应被移除")
	mockMatchRepo.AssertExpectations(t)
}

func TestMatchService_ReportResult_DrawHasNoWinner(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(1)).Return(idleUser(1, 1200), nil).Once()
	mockUserRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1200), nil).Once()
	mockMatchRepo.On("Finalize", ctx, mock.AnythingOfType("*domain.Settlement")).Return(nil).Once()

	_, err := svc.ReportResult(ctx, 42, 1, 5)
	require.NoError(t, err)
	settlement, err := svc.ReportResult(ctx, 42, 2, 5)

	require.NoError(t, err)
	require.NotNil(t, settlement)
	assert.Nil(t, settlement.WinnerID, "平局没有胜者")
	assert.Equal(t, 0, settlement.Players[0].Delta)
	assert.Equal(t, 0, settlement.Players[1].Delta)
}

func TestMatchService_ReportResult_DuplicateReportOverwrites(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)
	ctx := context.Background()

	// 同一玩家重复上报：幂等覆盖，不报错，不触发结算
	settlement, err := svc.ReportResult(ctx, 42, 1, 3)
	require.NoError(t, err)
	assert.Nil(t, settlement)
	settlement, err = svc.ReportResult(ctx, 42, 1, 8)
	require.NoError(t, err)
	assert.Nil(t, settlement)

	// 对手上报触发结算，采用玩家 1 的最后一次上报 (8)
	mockUserRepo.On("FindByID", ctx, uint(1)).Return(idleUser(1, 1200), nil).Once()
	mockUserRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1200), nil).Once()
	mockMatchRepo.On("Finalize", ctx, mock.AnythingOfType("*domain.Settlement")).Return(nil).Once()

	settlement, err = svc.ReportResult(ctx, 42, 2, 4)
	require.NoError(t, err)
	require.NotNil(t, settlement)
	assert.Equal(t, 8, settlement.Players[0].Reported)
}

func TestMatchService_ReportResult_RejectsNonParticipant(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)

	_, err := svc.ReportResult(context.Background(), 42, 99, 5)

	assert.True(t, errors.Is(err, service.ErrPlayerNotInMatch))
}

func TestMatchService_ReportResult_UnknownRoom(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())

	_, err := svc.ReportResult(context.Background(), 7, 1, 5)

	assert.True(t, errors.Is(err, service.ErrMatchNotFound))
}

func TestMatchService_ReportResult_RejectsInvalidCount(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)

	_, err := svc.ReportResult(context.Background(), 42, 1, -1)
	assert.True(t, errors.Is(err, service.ErrInvalidReport))

	_, err = svc.ReportResult(context.Background(), 42, 1, 11)
	assert.True(t, errors.Is(err, service.ErrInvalidReport), "超过题目总数的上报应被拒绝")
}

func TestMatchService_ReportResult_WaitingRoomIsNotStarted(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, service.NewRoomRegistry())
	ctx := context.Background()

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	// 房间还在等待对手：按未开始处理，而不是成绩非法
	_, err = svc.ReportResult(ctx, 42, 1, 5)
	assert.True(t, errors.Is(err, service.ErrMatchNotFound))
}

func TestMatchService_ReportResult_SettlementFailureAllowsRetry(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(1)).Return(idleUser(1, 1200), nil)
	mockUserRepo.On("FindByID", ctx, uint(2)).Return(idleUser(2, 1200), nil)
	// 第一次结算事务失败，第二次成功
	mockMatchRepo.On("Finalize", ctx, mock.AnythingOfType("*domain.Settlement")).Return(errors.New("deadlock")).Once()
	mockMatchRepo.On("Finalize", ctx, mock.AnythingOfType("*domain.Settlement")).Return(nil).Once()

	_, err := svc.ReportResult(ctx, 42, 1, 7)
	require.NoError(t, err)

	_, err = svc.ReportResult(ctx, 42, 2, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrStoreUnavailable))
	assert.Equal(t, 1, registry.Len(), "结算失败后房间应保留以便重试")

	// 任意一方重发上报即可重试结算
	settlement, err := svc.ReportResult(ctx, 42, 2, 4)
	require.NoError(t, err)
	require.NotNil(t, settlement)
	assert.Equal(t, 0, registry.Len())
	mockMatchRepo.AssertExpectations(t)
}

// --- ReapStaleRooms ---

func TestMatchService_ReapStaleRooms_VoidsExpiredWaitingRoom(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	ctx := context.Background()

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	mockMatchRepo.On("Void", ctx, uint(42)).Return(nil).Once()
	mockUserRepo.On("SetMatchState", ctx, uint(1), domain.MatchStateNone).Return(nil).Once()

	// 负超时让刚创建的房间立即超龄
	reaped := svc.ReapStaleRooms(ctx, -time.Second, time.Hour)

	require.Len(t, reaped, 1)
	assert.Equal(t, uint(42), reaped[0].ID)
	assert.Equal(t, 0, registry.Len())
	mockMatchRepo.AssertExpectations(t)
}

func TestMatchService_ReapStaleRooms_SkipsRoomSettledDuringReap(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	startInProgressMatch(t, svc, mockUserRepo, mockMatchRepo, mockQuestionRepo)
	ctx := context.Background()

	// 记录已被并发的结算写成 finished：作废返回未命中，
	// 清理不得复位玩家状态 (结算事务已经复位并写入了新积分)
	mockMatchRepo.On("Void", ctx, uint(42)).Return(repository.ErrMatchNotFound).Once()

	reaped := svc.ReapStaleRooms(ctx, -time.Second, -time.Second)

	assert.Empty(t, reaped, "已结算的房间不算被清理")
	assert.Equal(t, 0, registry.Len())
	mockUserRepo.AssertNotCalled(t, "SetMatchState", mock.Anything, mock.Anything, domain.MatchStateNone)
	mockMatchRepo.AssertExpectations(t)
}

func TestMatchService_ReapStaleRooms_KeepsFreshRooms(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockMatchRepo := new(mocks.MatchRepository)
	mockQuestionRepo := new(mocks.QuestionRepository)
	registry := service.NewRoomRegistry()
	svc := newMatchService(t, mockUserRepo, mockMatchRepo, mockQuestionRepo, registry)
	ctx := context.Background()

	expectCreateRoom(mockUserRepo, mockMatchRepo, idleUser(1, 1200), 42)
	_, err := svc.RequestMatch(ctx, 1)
	require.NoError(t, err)

	reaped := svc.ReapStaleRooms(ctx, time.Hour, time.Hour)

	assert.Empty(t, reaped)
	assert.Equal(t, 1, registry.Len())
	mockMatchRepo.AssertNotCalled(t, "Void", mock.Anything, mock.Anything)
}
