// file: services/rank_service.go
package services

import (
	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/bytehatacademy/alien-recon-portal/models"
)

type rankThreshold struct {
	Floor uint
	Rank  models.UserRank
}

// 两套阈值表对应两种段位策略，部署时通过 RANK_POLICY 二选一。
// 表必须按 Floor 升序排列
var scoreThresholds = []rankThreshold{
	{0, models.RankRookie},
	{500, models.RankAgent},
	{1000, models.RankAnalyst},
	{1500, models.RankExpert},
	{2000, models.RankElite},
}

var completionThresholds = []rankThreshold{
	{0, models.RankRookie},
	{5, models.RankAgent},
	{10, models.RankAnalyst},
	{15, models.RankExpert},
	{20, models.RankElite},
}

// DeriveRank 根据当前策略推导段位。纯函数：相同输入必得相同段位，
// 段位只能由此推导，任何代码不得直接改写
func DeriveRank(score uint, completedCount uint) models.UserRank {
	if config.App.RankPolicy == config.RankPolicyCompletions {
		return RankFromCompletions(completedCount)
	}
	return RankFromScore(score)
}

// RankFromScore 按总分查表，取 Floor 不超过 score 的最高档
func RankFromScore(score uint) models.UserRank {
	return lookupRank(scoreThresholds, score)
}

// RankFromCompletions 按完成任务数查表
func RankFromCompletions(count uint) models.UserRank {
	return lookupRank(completionThresholds, count)
}

func lookupRank(table []rankThreshold, v uint) models.UserRank {
	rank := table[0].Rank
	for _, t := range table {
		if v >= t.Floor {
			rank = t.Rank
		}
	}
	return rank
}
