// file: models/mission.go
package models

import (
	"time"
)

type MissionDifficulty string
type MissionCategory string

const (
	DifficultyBeginner     MissionDifficulty = "beginner"
	DifficultyIntermediate MissionDifficulty = "intermediate"
	DifficultyAdvanced     MissionDifficulty = "advanced"
	DifficultyExpert       MissionDifficulty = "expert"

	CategoryOSINT       MissionCategory = "OSINT"
	CategoryNetwork     MissionCategory = "Network Analysis"
	CategoryForensics   MissionCategory = "Digital Forensics"
	CategoryThreatIntel MissionCategory = "Threat Intelligence"
	CategoryMalware     MissionCategory = "Malware Analysis"
	CategoryCrypto      MissionCategory = "Cryptography"
)

// MaxMissionPoints 单个任务分值上限
const MaxMissionPoints = 1000

// Mission 任务即一道训练题，ID 为人类可读的 slug（如 recon-rumble）
type Mission struct {
	ID            string            `gorm:"primarykey;size:64"`
	Title         string            `gorm:"size:100;not null"`
	Description   string            `gorm:"type:text;not null"`
	Difficulty    MissionDifficulty `gorm:"type:enum('beginner','intermediate','advanced','expert');not null;default:'intermediate'"`
	Category      MissionCategory   `gorm:"size:50;not null"`
	Points        uint              `gorm:"not null"`
	EstimatedTime string            `gorm:"size:20"`
	FileURL       string            `gorm:"size:255"`
	// Flag 为题目的正确答案，除管理端外任何响应都不得携带
	Flag string `gorm:"size:255;not null"`
	// UnlockRequirement 前置任务 slug，为空表示无前置、直接可做
	UnlockRequirement *string `gorm:"size:64"`
	IsActive          bool    `gorm:"not null;default:true;index"`
	// SortOrder 决定展示顺序。启用任务间的顺序唯一性由应用层保证，
	// MySQL 不支持部分索引，下架任务可以和任意顺序共存
	SortOrder uint   `gorm:"not null;index"`
	Hints     []Hint `gorm:"foreignKey:MissionID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Mission) TableName() string {
	return "arlab_mission"
}
