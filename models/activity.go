// file: models/activity.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityMissionCompleted ActivityType = "mission_completed"
	ActivityRankPromoted     ActivityType = "rank_promoted"
	ActivityHintUsed         ActivityType = "hint_used"
	ActivityLogin            ActivityType = "login"
)

// Activity 用户动态，只追加不修改
type Activity struct {
	ID          string         `gorm:"primarykey;size:36" json:"id"`
	UserID      string         `gorm:"size:36;not null;index:idx_user_created,priority:1" json:"user_id"`
	Type        ActivityType   `gorm:"type:enum('mission_completed','rank_promoted','hint_used','login');not null;index" json:"type"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Description string         `gorm:"size:500;not null" json:"description"`
	Points      *uint          `json:"points,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"index:idx_user_created,priority:2,sort:desc;index" json:"created_at"`
}

func (Activity) TableName() string {
	return "arlab_activity"
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
