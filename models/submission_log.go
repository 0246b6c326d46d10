// file: models/submission_log.go
package models

import (
	"time"
)

type FlagResult string

const (
	FlagResultCorrect   FlagResult = "correct"
	FlagResultWrong     FlagResult = "wrong"
	FlagResultDuplicate FlagResult = "duplicate"
)

// SubmissionLog 每次 Flag 提交的审计流水，无论对错都记录
type SubmissionLog struct {
	ID            uint64     `gorm:"primarykey"`
	MissionID     string     `gorm:"size:64;not null;index:idx_mission_user,priority:1"`
	UserID        string     `gorm:"size:36;not null;index:idx_mission_user,priority:2"`
	SubmittedFlag string     `gorm:"size:255;not null"`
	FlagResult    FlagResult `gorm:"type:enum('correct','wrong','duplicate');not null"`
	SubmittedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	IPAddress     string     `gorm:"size:45"`
	UserAgent     string     `gorm:"size:255"`
}

func (SubmissionLog) TableName() string {
	return "arlab_flag_log"
}
