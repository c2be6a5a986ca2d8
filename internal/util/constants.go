package util

// 排行榜扣分权重
const (
	PenaltyWeight  = 10
	HintCostWeight = 5
)
