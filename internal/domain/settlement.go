package domain

// PlayerResult 是结算后单个玩家的最终结果。
type PlayerResult struct {
	UserID    uint `json:"id"`
	Reported  int  `json:"aciertos"`        // 玩家自报的答对题数
	Delta     int  `json:"variacion"`       // 本局积分变化
	NewRating int  `json:"nuevaPuntuacion"` // 结算后的积分
}

// Settlement 描述一次完整的结算结果，由结算事务一次性落库。
// WinnerID 为 nil 表示平局。
type Settlement struct {
	MatchID        uint           `json:"partidaId"`
	TotalQuestions int            `json:"totalPreguntas"`
	WinnerID       *uint          `json:"ganador"`
	Players        []PlayerResult `json:"jugadores"`
}
