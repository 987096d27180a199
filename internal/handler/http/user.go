package http

import (
	"net/http"
	"strconv"

	"trivia-arena/internal/domain"
	"trivia-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler 封装了用户资料、排行榜和比赛历史的 HTTP 处理逻辑
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ProfileResponse 定义用户资料的响应结构体
type ProfileResponse struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Rating      int    `json:"puntuacion"`
	MatchState  string `json:"estado_partida"`
	TotalGames  int    `json:"total_games"`
	TotalWins   int    `json:"total_wins"`
	TotalLosses int    `json:"total_losses"`
	TotalDraws  int    `json:"total_draws"`
	Streak      int    `json:"actual_streak"`
	MaxStreak   int    `json:"max_streak"`
}

// Profile 返回当前认证用户的资料
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, profileFromUser(user))
}

// ProfileByID 根据用户 ID 返回公开资料
func (h *UserHandler) ProfileByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, svcErr := h.userService.GetProfile(c.Request.Context(), uint(id))
	if svcErr != nil {
		HandleServiceError(c, svcErr)
		return
	}
	SuccessResponse(c, http.StatusOK, profileFromUser(user))
}

// ProfileByName 根据用户名返回用户资料 (查询参数 ?name=)
func (h *UserHandler) ProfileByName(c *gin.Context) {
	username := c.Query("name")
	if username == "" {
		ErrorResponse(c, http.StatusBadRequest, "name query parameter is required")
		return
	}

	user, err := h.userService.GetProfileByName(c.Request.Context(), username)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, profileFromUser(user))
}

// Ranking 返回积分排行榜
func (h *UserHandler) Ranking(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.userService.Ranking(c.Request.Context(), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"ranking": entries})
}

// MatchHistory 返回当前用户最近的已结算比赛
func (h *UserHandler) MatchHistory(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	matches, err := h.userService.MatchHistory(c.Request.Context(), userID, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"matches": matches})
}

// profileFromUser 把领域模型映射为响应结构体
func profileFromUser(user *domain.User) ProfileResponse {
	return ProfileResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Rating:      user.Rating,
		MatchState:  user.MatchState,
		TotalGames:  user.TotalGames,
		TotalWins:   user.TotalWins,
		TotalLosses: user.TotalLosses,
		TotalDraws:  user.TotalDraws,
		Streak:      user.Streak,
		MaxStreak:   user.MaxStreak,
	}
}

// authenticatedUserID 从 Gin 上下文中取出 Auth 中间件注入的用户 ID。
func authenticatedUserID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		logrus.Warn("Handler: User ID not found in context, middleware missing or failed?")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("Handler: User ID in context is not uint")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error processing user ID"})
		return 0, false
	}
	return userID, true
}
