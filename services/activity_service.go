// file: services/activity_service.go
package services

import (
	"encoding/json"
	"fmt"

	"github.com/bytehatacademy/alien-recon-portal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func toMetadata(m map[string]interface{}) datatypes.JSON {
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

// RecordMissionCompleted 通关动态，与通关记录同事务写入
func RecordMissionCompleted(tx *gorm.DB, userID string, mission models.Mission) error {
	points := mission.Points
	activity := models.Activity{
		UserID:      userID,
		Type:        models.ActivityMissionCompleted,
		Title:       fmt.Sprintf("Completed: %s", mission.Title),
		Description: fmt.Sprintf("Successfully completed %s", mission.Title),
		Points:      &points,
		Metadata: toMetadata(map[string]interface{}{
			"mission_id": mission.ID,
			"difficulty": mission.Difficulty,
			"category":   mission.Category,
		}),
	}
	return tx.Create(&activity).Error
}

// RecordRankPromotion 晋升动态，记录新旧段位
func RecordRankPromotion(tx *gorm.DB, userID string, oldRank, newRank models.UserRank, newScore uint) error {
	activity := models.Activity{
		UserID:      userID,
		Type:        models.ActivityRankPromoted,
		Title:       fmt.Sprintf("Rank promoted to %s", newRank),
		Description: fmt.Sprintf("Promoted from %s to %s", oldRank, newRank),
		Metadata: toMetadata(map[string]interface{}{
			"old_rank":    oldRank,
			"new_rank":    newRank,
			"total_score": newScore,
		}),
	}
	return tx.Create(&activity).Error
}

// RecordHintUsed 提示使用动态
func RecordHintUsed(db *gorm.DB, userID string, mission models.Mission, hintIndex int) error {
	activity := models.Activity{
		UserID:      userID,
		Type:        models.ActivityHintUsed,
		Title:       fmt.Sprintf("Hint used: %s", mission.Title),
		Description: fmt.Sprintf("Viewed hint %d of %s", hintIndex+1, mission.Title),
		Metadata: toMetadata(map[string]interface{}{
			"mission_id": mission.ID,
			"hint_index": hintIndex,
		}),
	}
	return db.Create(&activity).Error
}

// RecordLogin 登录动态
func RecordLogin(db *gorm.DB, user models.User) error {
	activity := models.Activity{
		UserID:      user.ID,
		Type:        models.ActivityLogin,
		Title:       "Agent logged in",
		Description: fmt.Sprintf("%s reported for duty", user.Name),
	}
	return db.Create(&activity).Error
}
