// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// 用户比赛状态标记的取值。
// 不变量: 当且仅当注册表中存在一个包含该用户且未结算的房间时，状态为 MatchStateInMatch。
const (
	MatchStateNone    = "none"     // 空闲，可以发起匹配
	MatchStatePairing = "pairing"  // 已创建房间，等待对手
	MatchStateInMatch = "in_match" // 对局进行中
)

// DefaultRating 是新用户的初始 ELO 积分。
const DefaultRating = 1200

// User 表示应用程序中的用户。
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"type:varchar(191);uniqueIndex:idx_username;not null"`
	Password string `gorm:"type:text;not null"` // 存储的是哈希后的密码，不能为空
	Email    string `gorm:"type:varchar(191);uniqueIndex:idx_email"`

	// Rating 是当前 ELO 积分，结算时由 Session Manager 更新。
	Rating int `gorm:"not null;default:1200"`
	// MatchState 是比赛状态标记 (none/pairing/in_match)。
	MatchState string `gorm:"type:varchar(20);not null;default:'none'"`

	// 生涯统计，仅在结算事务中更新。
	TotalGames  int `gorm:"not null;default:0"`
	TotalWins   int `gorm:"not null;default:0"`
	TotalLosses int `gorm:"not null;default:0"`
	TotalDraws  int `gorm:"not null;default:0"`
	Streak      int `gorm:"not null;default:0"` // 当前连胜数，失败归零，平局不变
	MaxStreak   int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"` // 用户记录创建时间 (GORM 自动填充)
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
