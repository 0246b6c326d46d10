// file: services/leaderboard_service.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/models"
)

// 榜单缓存有效期设置为较短的15秒，保证准实时性
const leaderboardCacheTTL = 15 * time.Second

type LeaderboardEntry struct {
	Position          int             `json:"position"`
	UserID            string          `json:"user_id"`
	Name              string          `json:"name"`
	Rank              models.UserRank `json:"rank"`
	Score             uint            `json:"score"`
	MissionsCompleted uint            `json:"missions_completed"`
}

// GetLeaderboard 按总分降序取榜单，带 Redis 旁路缓存
func GetLeaderboard(page, limit int) ([]LeaderboardEntry, int64, error) {
	cacheKey := fmt.Sprintf("leaderboard:%d:%d", page, limit)
	if val, err := database.RDB.Get(database.Ctx, cacheKey).Result(); err == nil {
		var cached struct {
			Entries []LeaderboardEntry `json:"entries"`
			Total   int64              `json:"total"`
		}
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached.Entries, cached.Total, nil
		}
	}

	var total int64
	if err := database.DB.Model(&models.User{}).
		Where("status = ?", models.StatusActive).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var entries []LeaderboardEntry
	// 注意：rank 是 MySQL 8 保留字，必须加反引号
	err := database.DB.Table("arlab_user u").
		Select("u.id as user_id, u.name, u.`rank`, u.score, COUNT(c.id) as missions_completed").
		Joins("LEFT JOIN arlab_mission_completion c ON c.user_id = u.id").
		Where("u.status = ?", models.StatusActive).
		Group("u.id, u.name, u.`rank`, u.score").
		Order("u.score desc, u.created_at asc").
		Offset(offset).Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range entries {
		entries[i].Position = offset + i + 1
	}

	payload, err := json.Marshal(struct {
		Entries []LeaderboardEntry `json:"entries"`
		Total   int64              `json:"total"`
	}{entries, total})
	if err == nil {
		database.RDB.Set(database.Ctx, cacheKey, payload, leaderboardCacheTTL)
	}

	return entries, total, nil
}

// UserPosition 计算某用户的榜单名次（比他分高的人数 + 1）
func UserPosition(userID string) (int64, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, err
	}
	var above int64
	err := database.DB.Model(&models.User{}).
		Where("status = ? AND score > ?", models.StatusActive, user.Score).
		Count(&above).Error
	return above + 1, err
}

// InvalidateLeaderboardCache 清空榜单相关的全部缓存键，提交成功后调用
func InvalidateLeaderboardCache() {
	keys, err := database.RDB.Keys(database.Ctx, "leaderboard:*").Result()
	if err == nil && len(keys) > 0 {
		database.RDB.Del(database.Ctx, keys...)
		log.Printf("Cleared %d leaderboard cache keys from Redis.", len(keys))
	}
}
