// file: database/seed.go
package database

import (
	"log"

	"github.com/bytehatacademy/alien-recon-portal/models"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

// SeedMissions 写入初始任务链（已存在则跳过），由 SEED_MISSIONS 环境变量触发
func SeedMissions() {
	missions := []models.Mission{
		{
			ID:            "recon-rumble",
			Title:         "Recon Rumble",
			Description:   "Analyze intercepted alien communication patterns to identify infiltration methods.",
			Category:      models.CategoryOSINT,
			Difficulty:    models.DifficultyBeginner,
			Points:        100,
			EstimatedTime: "30 min",
			Flag:          "ARLab{welcome_agent}",
			IsActive:      true,
			SortOrder:     1,
		},
		{
			ID:                "packet-puzzle",
			Title:             "Packet Puzzle",
			Description:       "Examine network traffic to uncover hidden alien data transmissions.",
			Category:          models.CategoryNetwork,
			Difficulty:        models.DifficultyIntermediate,
			Points:            250,
			EstimatedTime:     "45 min",
			Flag:              "ARLab{packet_master}",
			UnlockRequirement: strPtr("recon-rumble"),
			IsActive:          true,
			SortOrder:         2,
		},
		{
			ID:                "memory-maze",
			Title:             "Memory Maze",
			Description:       "Perform memory forensics on an infected system to find alien artifacts.",
			Category:          models.CategoryForensics,
			Difficulty:        models.DifficultyAdvanced,
			Points:            400,
			EstimatedTime:     "60 min",
			Flag:              "ARLab{memory_hunter}",
			UnlockRequirement: strPtr("packet-puzzle"),
			IsActive:          true,
			SortOrder:         3,
		},
		{
			ID:                "apt-archive",
			Title:             "APT Archive",
			Description:       "Investigate an advanced persistent threat with alien origins.",
			Category:          models.CategoryThreatIntel,
			Difficulty:        models.DifficultyExpert,
			Points:            500,
			EstimatedTime:     "90 min",
			Flag:              "ARLab{apt_master}",
			UnlockRequirement: strPtr("memory-maze"),
			IsActive:          true,
			SortOrder:         4,
		},
		{
			ID:                "alien-osint",
			Title:             "Alien OSINT",
			Description:       "Use open source intelligence to track alien infiltration activities.",
			Category:          models.CategoryOSINT,
			Difficulty:        models.DifficultyIntermediate,
			Points:            300,
			EstimatedTime:     "45 min",
			Flag:              "ARLab{osint_hunter}",
			UnlockRequirement: strPtr("apt-archive"),
			IsActive:          true,
			SortOrder:         5,
		},
	}

	result := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&missions)
	if result.Error != nil {
		log.Fatalf("Failed to seed missions: %v", result.Error)
	}
	log.Printf("Mission seed completed, %d new rows.", result.RowsAffected)
}
