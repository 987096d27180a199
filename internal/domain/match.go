package domain

import "time"

// 比赛记录的生命周期状态。
const (
	MatchStatusPending    = "pending"     // 已创建，等待第二名玩家
	MatchStatusInProgress = "in_progress" // 双方已就位，比赛进行中
	MatchStatusFinished   = "finished"    // 已结算，结果字段不可再变
	MatchStatusVoid       = "void"        // 被取消或被清理任务作废
)

// Match 是一场对局的持久化记录 (MatchRecord)。
// 创建时只有 Player1；Player2ID 在对手加入时填充；
// Winner 和两个 Delta 字段在结算时一次性写入，此后不再修改。
type Match struct {
	ID        uint  `gorm:"primaryKey"`
	Player1ID uint  `gorm:"index;not null"`
	Player2ID *uint `gorm:"index"` // 加入前为 NULL

	// WinnerID 为 NULL 表示平局 (仅在 finished 状态下有意义)。
	WinnerID *uint `gorm:"index"`
	// 每名玩家的积分变化，结算时写入。
	DeltaPlayer1 *int
	DeltaPlayer2 *int

	Status string `gorm:"type:varchar(20);index;not null;default:'pending'"`

	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
	FinishedAt *time.Time
}

// HasPlayer 判断给定用户是否是该对局的参与者。
func (m *Match) HasPlayer(userID uint) bool {
	if m.Player1ID == userID {
		return true
	}
	return m.Player2ID != nil && *m.Player2ID == userID
}
