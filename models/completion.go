// file: models/completion.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MissionCompletion 一条通关记录。(UserID, MissionID) 全局唯一，
// 这是防止重复计分的核心约束，必须落在数据库层
type MissionCompletion struct {
	ID          string    `gorm:"primarykey;size:36"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:idx_user_mission;index:idx_user_time,priority:1"`
	MissionID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_mission"`
	CompletedAt time.Time `gorm:"not null;index:idx_user_time,priority:2,sort:desc"`
	Attempts    uint      `gorm:"not null;default:1"`
	HintsUsed   uint      `gorm:"not null;default:0"`
	// PointsEarned 为通关时刻任务分值的快照，任务后续改分不回溯
	PointsEarned  uint   `gorm:"not null"`
	TimeSpent     uint   `gorm:"not null;default:0"` // 分钟
	FlagSubmitted string `gorm:"size:255;not null"`
	IPAddress     string `gorm:"size:45"`
	UserAgent     string `gorm:"size:255"`
	CreatedAt     time.Time
}

func (MissionCompletion) TableName() string {
	return "arlab_mission_completion"
}

func (m *MissionCompletion) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CompletedAt.IsZero() {
		m.CompletedAt = time.Now()
	}
	return
}
