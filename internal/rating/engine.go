// Package rating 实现标准的国际象棋 ELO 积分算法。
// 纯函数计算，无副作用，给定输入结果完全确定。
package rating

import (
	"fmt"
	"math"
)

// Outcome 表示一场对局从 A 方视角的结果。
type Outcome int

const (
	OutcomeWinA Outcome = iota // A 胜
	OutcomeWinB                // B 胜
	OutcomeDraw                // 平局
)

// Engine 是可配置参数的 ELO 积分引擎。
type Engine struct {
	kFactor       int
	initialRating int
}

// DefaultKFactor 是积分变化灵敏度的默认 K 值。
const DefaultKFactor = 20

// NewEngine 创建 ELO 引擎实例。kFactor 必须为正。
func NewEngine(kFactor int) (*Engine, error) {
	if kFactor <= 0 {
		return nil, fmt.Errorf("rating: k-factor must be positive, got %d", kFactor)
	}
	return &Engine{kFactor: kFactor, initialRating: 1200}, nil
}

// expectedScore 计算 A 对 B 的期望得分 (逻辑斯蒂函数)。
// E_a = 1 / (1 + 10^((R_b - R_a)/400))
func expectedScore(ratingA, ratingB int) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, float64(ratingB-ratingA)/400.0))
}

// ComputeDeltas 根据双方赛前积分和结果计算各自的积分变化。
// delta = round(K * (S - E))，每名玩家独立取整，
// 因此两个 delta 不强制互为相反数 (取整带来的小幅不对称是预期行为)。
func (e *Engine) ComputeDeltas(ratingA, ratingB int, outcome Outcome) (deltaA, deltaB int) {
	expectedA := expectedScore(ratingA, ratingB)
	expectedB := expectedScore(ratingB, ratingA)

	var scoreA, scoreB float64
	switch outcome {
	case OutcomeWinA:
		scoreA, scoreB = 1.0, 0.0
	case OutcomeWinB:
		scoreA, scoreB = 0.0, 1.0
	case OutcomeDraw:
		scoreA, scoreB = 0.5, 0.5
	}

	deltaA = int(math.Round(float64(e.kFactor) * (scoreA - expectedA)))
	deltaB = int(math.Round(float64(e.kFactor) * (scoreB - expectedB)))
	return deltaA, deltaB
}

// OutcomeFromCounts 根据双方自报的答对题数判定结果：多者胜，相同为平局。
func OutcomeFromCounts(correctA, correctB int) Outcome {
	switch {
	case correctA > correctB:
		return OutcomeWinA
	case correctB > correctA:
		return OutcomeWinB
	default:
		return OutcomeDraw
	}
}
