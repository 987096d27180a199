package tasks

import "encoding/json"

// 定义任务类型常量
const (
	TypeLeaderboardSync = "leaderboard:sync" // 结算后同步 Redis 排行榜
	TypeRoomReap        = "rooms:reap"       // 周期性清理超龄房间
)

// LeaderboardSyncPayload 定义了排行榜同步任务的数据结构
type LeaderboardSyncPayload struct {
	UserID uint `json:"user_id"`
	Rating int  `json:"rating"`
}

// NewLeaderboardSyncTask 构造排行榜同步任务的 payload
func NewLeaderboardSyncTask(userID uint, ratingValue int) ([]byte, error) {
	payload := LeaderboardSyncPayload{
		UserID: userID,
		Rating: ratingValue,
	}
	return json.Marshal(payload)
}

// NewRoomReapTask 构造房间清理任务的 payload (周期任务，无参数)
func NewRoomReapTask() ([]byte, error) {
	return json.Marshal(struct{}{})
}
