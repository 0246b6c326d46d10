// file: services/rank_service_test.go
package services

import (
	"testing"

	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/bytehatacademy/alien-recon-portal/models"
	"github.com/stretchr/testify/assert"
)

func TestRankFromScore(t *testing.T) {
	cases := []struct {
		score uint
		want  models.UserRank
	}{
		{0, models.RankRookie},
		{499, models.RankRookie},
		{500, models.RankAgent},
		{999, models.RankAgent},
		{1000, models.RankAnalyst},
		{1499, models.RankAnalyst},
		{1500, models.RankExpert},
		{2000, models.RankElite},
		{99999, models.RankElite},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RankFromScore(tc.score), "score=%d", tc.score)
	}
}

func TestRankFromCompletions(t *testing.T) {
	cases := []struct {
		count uint
		want  models.UserRank
	}{
		{0, models.RankRookie},
		{4, models.RankRookie},
		{5, models.RankAgent},
		{10, models.RankAnalyst},
		{15, models.RankExpert},
		{20, models.RankElite},
		{100, models.RankElite},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RankFromCompletions(tc.count), "count=%d", tc.count)
	}
}

// 段位必须是决定量的纯函数：同样的输入永远得到同样的段位
func TestDeriveRankIsPure(t *testing.T) {
	config.App.RankPolicy = config.RankPolicyScore

	for i := 0; i < 3; i++ {
		assert.Equal(t, DeriveRank(750, 2), DeriveRank(750, 99))
	}
	// score 策略下完成数不参与判定
	assert.Equal(t, models.RankAgent, DeriveRank(750, 0))
	assert.Equal(t, models.RankAgent, DeriveRank(750, 50))
}

func TestDeriveRankPolicySwitch(t *testing.T) {
	config.App.RankPolicy = config.RankPolicyCompletions
	defer func() { config.App.RankPolicy = config.RankPolicyScore }()

	// completions 策略下分数不参与判定
	assert.Equal(t, models.RankAnalyst, DeriveRank(0, 12))
	assert.Equal(t, models.RankRookie, DeriveRank(99999, 1))
}

// 499 → 500 这一分恰好跨过阈值
func TestRankPromotionBoundary(t *testing.T) {
	assert.Equal(t, models.RankRookie, RankFromScore(499))
	assert.Equal(t, models.RankAgent, RankFromScore(500))
}
